package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/utils/calendar"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	qr "github.com/pubquiz-fans/site/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryEventStorage struct {
	events map[string]*entity.Event
}

func (s *memoryEventStorage) Create(_ context.Context, e *entity.Event) (*entity.Event, error) {
	e.ID = strings.ToLower(strings.ReplaceAll(e.Title, " ", "-"))
	cp := *e
	s.events[e.ID] = &cp
	return e, nil
}

func (s *memoryEventStorage) Get(_ context.Context, id string) (*entity.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *memoryEventStorage) GetAll(_ context.Context) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range s.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *memoryEventStorage) GetUpcoming(ctx context.Context, from time.Time, _, _ int) ([]entity.Event, error) {
	all, _ := s.GetAll(ctx)
	var out []entity.Event
	for _, e := range all {
		if !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryEventStorage) GetPast(ctx context.Context, until time.Time, _, _ int) ([]entity.Event, error) {
	all, _ := s.GetAll(ctx)
	var out []entity.Event
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Date.Before(until) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *memoryEventStorage) Update(_ context.Context, e *entity.Event) (*entity.Event, error) {
	cp := *e
	s.events[e.ID] = &cp
	return e, nil
}

func (s *memoryEventStorage) Delete(_ context.Context, id string) error {
	if _, ok := s.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.events, id)
	return nil
}

func TestEventService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 5, 21, 0, 0, 0, time.UTC)
	service := NewEventService(types.Nop(), &memoryEventStorage{events: map[string]*entity.Event{}}, calendar.Options{SiteName: "Quizzly Bears", Domain: "quiz.example"})
	service.now = func() time.Time { return now }

	for title, date := range map[string]time.Time{
		"Tonight":   now.Add(-2 * time.Hour),
		"Last week": now.AddDate(0, 0, -7),
		"Next week": now.AddDate(0, 0, 7),
	} {
		_, err := service.Create(ctx, dto.EventInput{Title: title, Venue: "The Crown", Date: date})
		require.NoError(t, err)
	}

	upcoming, err := service.List(ctx, EventScopeUpcoming, 0, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Tonight", upcoming[0].Title)

	past, err := service.List(ctx, EventScopePast, 0, 10)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, "Last week", past[0].Title)

	updated, err := service.Update(ctx, "next-week", dto.EventInput{Title: "Next week", Venue: "Old Mill", Date: now.AddDate(0, 0, 8)})
	require.NoError(t, err)
	assert.Equal(t, "Old Mill", updated.Venue)

	feed, err := service.Calendar(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(feed), "BEGIN:VEVENT"))

	single, err := service.EventCalendar(ctx, "tonight")
	require.NoError(t, err)
	assert.Contains(t, string(single), "UID:tonight@quiz.example")

	require.NoError(t, service.Delete(ctx, "tonight"))
	_, err = service.Get(ctx, "tonight")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
	_, err = service.EventCalendar(ctx, "tonight")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}

func TestQrService_GetEventQR(t *testing.T) {
	ctx := context.Background()
	events := &memoryEventStorage{events: map[string]*entity.Event{
		"e1": {ID: "e1", Title: "Quiz"},
	}}
	cfg := qr.Default
	cfg.Size = 128
	service := NewQrService(NewEventService(types.Nop(), events, calendar.Options{}), cfg, "https://quiz.example")

	first, err := service.GetEventQR(ctx, "e1")
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := service.GetEventQR(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = service.GetEventQR(ctx, "missing")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
