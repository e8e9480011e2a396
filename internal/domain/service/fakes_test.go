package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

// fakeParticipationStorage keeps RSVPs in memory and mimics the upsert of the database:
// ID and CreatedAt are assigned on first insert only.
type fakeParticipationStorage struct {
	mu     sync.Mutex
	events map[string]entity.Event
	rows   map[string]*entity.EventParticipant
	seq    uint
	clock  time.Time

	setErr error
}

func newFakeParticipationStorage(events ...entity.Event) *fakeParticipationStorage {
	s := &fakeParticipationStorage{
		events: map[string]entity.Event{},
		rows:   map[string]*entity.EventParticipant{},
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeParticipationStorage) Get(_ context.Context, eventID, userID string) (*entity.EventParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[eventID+"/"+userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *fakeParticipationStorage) GetByEventID(_ context.Context, eventID string) ([]entity.EventParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(eventID), nil
}

func (s *fakeParticipationStorage) SetStatus(_ context.Context, p *entity.EventParticipant) (*dto.ParticipationChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setErr != nil {
		return nil, s.setErr
	}
	event, ok := s.events[p.EventID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	change := &dto.ParticipationChange{Event: event, Before: s.snapshot(p.EventID)}

	s.clock = s.clock.Add(time.Second)
	key := p.EventID + "/" + p.UserID
	if row, exists := s.rows[key]; exists {
		row.Status = p.Status
		row.Note = p.Note
		row.UpdatedAt = s.clock
	} else {
		s.seq++
		row := *p
		row.ID = s.seq
		row.CreatedAt = s.clock
		row.UpdatedAt = s.clock
		row.User = entity.User{ID: p.UserID, DisplayName: "Member " + p.UserID}
		s.rows[key] = &row
	}

	change.After = s.snapshot(p.EventID)
	return change, nil
}

// snapshot returns rows in map order shuffled by key so callers cannot rely on input order.
func (s *fakeParticipationStorage) snapshot(eventID string) []entity.EventParticipant {
	var out []entity.EventParticipant
	for _, row := range s.rows {
		if row.EventID == eventID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID > out[j].UserID })
	return out
}

type fakeEventStorage struct {
	events map[string]entity.Event
}

func (s *fakeEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

type fakeNotificationStorage struct {
	mu     sync.Mutex
	rows   []entity.Notification
	seq    int
	failOn map[string]bool
}

func (s *fakeNotificationStorage) Create(_ context.Context, n *entity.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOn[n.UserID] {
		return errors.New("insert failed")
	}
	s.seq++
	n.ID = fmt.Sprintf("n-%d", s.seq)
	s.rows = append(s.rows, *n)
	return nil
}

func (s *fakeNotificationStorage) GetByUserID(_ context.Context, userID string, limit int) ([]entity.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Notification
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *fakeNotificationStorage) CountUnread(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, row := range s.rows {
		if row.UserID == userID && row.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStorage) MarkRead(_ context.Context, id, userID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].UserID == userID {
			if s.rows[i].ReadAt == nil {
				s.rows[i].ReadAt = &at
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeNotificationStorage) MarkAllRead(_ context.Context, userID string, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.rows {
		if s.rows[i].UserID == userID && s.rows[i].ReadAt == nil {
			s.rows[i].ReadAt = &at
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStorage) forUser(userID string) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entity.Notification
	for _, row := range s.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out
}

type published struct {
	key string
	msg any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, msg: v})
	return nil
}
