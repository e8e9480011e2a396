package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is an article; Body holds markdown source rendered by the front end.
type Post struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"not null" json:"title"`
	Slug        string         `gorm:"not null;uniqueIndex" json:"slug"`
	Excerpt     string         `json:"excerpt"`
	Body        string         `gorm:"type:text" json:"body"`
	CoverURL    string         `json:"coverUrl"`
	AuthorID    string         `json:"authorId"`
	Published   bool           `gorm:"index" json:"published"`
	PublishedAt *time.Time     `json:"publishedAt"`
}

func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Comment struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	PostID    string `gorm:"not null;type:uuid;index"`
	UserID    string `gorm:"not null;index"`
	Body      string `gorm:"not null;type:text"`

	User User `gorm:"foreignKey:UserID"`
}

func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Result is the outcome of one quiz night.
type Result struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Venue     string    `gorm:"not null" json:"venue"`
	Position  int       `json:"position"`
	Teams     int       `json:"teams"`
	Score     float64   `json:"score"`
	MaxScore  float64   `json:"maxScore"`
	EventID   *string   `gorm:"type:uuid" json:"eventId,omitempty"`
}

func (r *Result) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Album is a photo gallery; photos live on the image CDN.
type Album struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	Title     string         `gorm:"not null" json:"title"`
	Date      time.Time      `gorm:"index" json:"date"`
	CoverURL  string         `json:"coverUrl"`
	PhotoURLs pq.StringArray `gorm:"type:text[]" json:"photoUrls"`
}

func (a *Album) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
