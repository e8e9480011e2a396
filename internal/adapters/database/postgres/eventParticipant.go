package postgres

import (
	"context"

	"github.com/pubquiz-fans/site/internal/domain/dto"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventParticipantStorage struct {
	db *gorm.DB
}

func NewEventParticipantStorage(db *gorm.DB) *EventParticipantStorage {
	return &EventParticipantStorage{
		db: db,
	}
}

// Get returns the RSVP of userID for eventID.
func (s *EventParticipantStorage) Get(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error) {
	var eventParticipant entity.EventParticipant
	err := s.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&eventParticipant).Error
	return &eventParticipant, err
}

// GetByEventID returns every RSVP of the event together with its member.
func (s *EventParticipantStorage) GetByEventID(ctx context.Context, eventID string) ([]entity.EventParticipant, error) {
	return byEventID(s.db.WithContext(ctx), eventID)
}

// SetStatus writes the RSVP of one member and returns the event's RSVPs as they were
// right before and right after the write.
//
// The event row is locked for the whole transaction, so concurrent calls for the
// same event observe each other's writes in order.
func (s *EventParticipantStorage) SetStatus(ctx context.Context, eventParticipant *entity.EventParticipant) (*dto.ParticipationChange, error) {
	change := &dto.ParticipationChange{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&entity.Event{})
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.Where("id = ?", eventParticipant.EventID).Take(&change.Event).Error; err != nil {
			return err
		}

		var err error
		change.Before, err = byEventID(tx, eventParticipant.EventID)
		if err != nil {
			return err
		}

		err = tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
			}).
			Create(eventParticipant).Error
		if err != nil {
			return err
		}

		change.After, err = byEventID(tx, eventParticipant.EventID)
		return err
	})

	return change, err
}

func byEventID(db *gorm.DB, eventID string) ([]entity.EventParticipant, error) {
	var eventParticipants []entity.EventParticipant
	err := db.Preload("User").Where("event_id = ?", eventID).Find(&eventParticipants).Error
	return eventParticipants, err
}
