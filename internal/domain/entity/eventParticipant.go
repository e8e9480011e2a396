package entity

import "time"

type ParticipationStatus string

const (
	StatusGoing    ParticipationStatus = "going"
	StatusMaybe    ParticipationStatus = "maybe"
	StatusNotGoing ParticipationStatus = "not_going"
)

func (s ParticipationStatus) Valid() bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	}
	return false
}

// EventParticipant is the RSVP of one user for one event.
//
// ID grows with every insert and is used as the tie-break when two rows share CreatedAt.
// CreatedAt is written once, on the first submission, and decides the queue position.
type EventParticipant struct {
	ID        uint                `gorm:"primaryKey;autoIncrement"`
	EventID   string              `gorm:"not null;type:uuid;uniqueIndex:idx_event_participant"`
	UserID    string              `gorm:"not null;uniqueIndex:idx_event_participant"`
	Status    ParticipationStatus `gorm:"not null;type:varchar(16)"`
	Note      *string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}
