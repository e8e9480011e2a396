package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Title       string         `gorm:"not null"`
	Description string
	Venue       string    `gorm:"not null"`
	Date        time.Time `gorm:"not null;index"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Link is the public page of the event on the site
func (e *Event) Link(baseURL string) string {
	return fmt.Sprintf("%s/events/%s", baseURL, e.ID)
}
