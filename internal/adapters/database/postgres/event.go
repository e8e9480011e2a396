package postgres

import (
	"context"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(event).Error
	return event, err
}

// Get skips soft-deleted events.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	return &event, err
}

// GetAll returns every event, soonest first.
func (s *EventStorage) GetAll(ctx context.Context) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Order("date ASC").Find(&events).Error
	return events, err
}

// GetUpcoming returns events starting at or after from, soonest first.
func (s *EventStorage) GetUpcoming(ctx context.Context, from time.Time, offset, limit int) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("date >= ?", from).
		Order("date ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, err
}

// GetPast returns events that started before until, latest first.
func (s *EventStorage) GetPast(ctx context.Context, until time.Time, offset, limit int) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("date < ?", until).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Save(event).Error
	return event, err
}

// Delete soft-deletes the event. RSVPs are kept.
func (s *EventStorage) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
