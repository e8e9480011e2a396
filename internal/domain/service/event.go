package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/internal/domain/utils/calendar"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetAll(ctx context.Context) ([]entity.Event, error)
	GetUpcoming(ctx context.Context, from time.Time, offset, limit int) ([]entity.Event, error)
	GetPast(ctx context.Context, until time.Time, offset, limit int) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventScope selects which side of now List returns.
type EventScope string

const (
	EventScopeUpcoming EventScope = "upcoming"
	EventScopePast     EventScope = "past"
)

type EventService struct {
	logger       *types.Logger
	eventStorage EventStorage
	calendar     calendar.Options
	now          func() time.Time
}

func NewEventService(logger *types.Logger, storage EventStorage, calendarOpts calendar.Options) *EventService {
	return &EventService{
		logger:       logger,
		eventStorage: storage,
		calendar:     calendarOpts,
		now:          time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, input dto.EventInput) (*entity.Event, error) {
	event, err := s.eventStorage.Create(ctx, &entity.Event{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		Date:        input.Date.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	s.logger.Infof("event created (event_id=%s)", event.ID)
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

// List returns a page of upcoming events, soonest first, or past events, latest first.
// An event stays upcoming for a few hours after it started.
func (s *EventService) List(ctx context.Context, scope EventScope, offset, limit int) ([]entity.Event, error) {
	boundary := s.now().Add(-eventGrace)
	if scope == EventScopePast {
		return s.eventStorage.GetPast(ctx, boundary, offset, limit)
	}
	return s.eventStorage.GetUpcoming(ctx, boundary, offset, limit)
}

func (s *EventService) Update(ctx context.Context, id string, input dto.EventInput) (*entity.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Title = input.Title
	event.Description = input.Description
	event.Venue = input.Venue
	event.Date = input.Date.UTC()

	event, err = s.eventStorage.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	s.logger.Infof("event updated (event_id=%s)", id)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.eventStorage.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.Infof("event deleted (event_id=%s)", id)
	return nil
}

// Calendar returns every event as an iCalendar feed.
func (s *EventService) Calendar(ctx context.Context) ([]byte, error) {
	events, err := s.eventStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.ExportEvents(events, s.calendar)
}

// EventCalendar returns a single event as an .ics file.
func (s *EventService) EventCalendar(ctx context.Context, id string) ([]byte, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return calendar.ExportEvent(*event, s.calendar)
}

const eventGrace = 4 * time.Hour
