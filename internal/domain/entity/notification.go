package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeEventPromoted NotificationType = "event_promoted"
)

// Notification is an append-only inbox entry. EventTitle is a copy taken when the entry was written.
type Notification struct {
	ID         string           `gorm:"primaryKey;type:uuid"`
	UserID     string           `gorm:"not null;index"`
	Type       NotificationType `gorm:"not null;type:varchar(32)"`
	EventID    string           `gorm:"type:uuid;index"`
	EventTitle string
	ReadAt     *time.Time
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
