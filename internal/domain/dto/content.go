package dto

import "time"

type EventInput struct {
	Title       string    `json:"title" binding:"required,notblank,max=120"`
	Description string    `json:"description" binding:"max=4000"`
	Venue       string    `json:"venue" binding:"required,notblank,max=200"`
	Date        time.Time `json:"date" binding:"required"`
}

type PostInput struct {
	Title     string `json:"title" binding:"required,notblank,max=200"`
	Slug      string `json:"slug" binding:"required,slug,max=120"`
	Excerpt   string `json:"excerpt" binding:"max=500"`
	Body      string `json:"body" binding:"required,notblank"`
	CoverURL  string `json:"coverUrl" binding:"omitempty,url"`
	Published bool   `json:"published"`
}

type ResultInput struct {
	Date     time.Time `json:"date" binding:"required"`
	Venue    string    `json:"venue" binding:"required,notblank"`
	Position int       `json:"position" binding:"gte=1"`
	Teams    int       `json:"teams" binding:"gtefield=Position"`
	Score    float64   `json:"score" binding:"gte=0"`
	MaxScore float64   `json:"maxScore" binding:"gtefield=Score"`
	EventID  *string   `json:"eventId" binding:"omitempty,uuid"`
}

type AlbumInput struct {
	Title     string    `json:"title" binding:"required,notblank,max=200"`
	Date      time.Time `json:"date" binding:"required"`
	CoverURL  string    `json:"coverUrl" binding:"omitempty,url"`
	PhotoURLs []string  `json:"photoUrls" binding:"dive,url"`
}

type CommentInput struct {
	Body string `json:"body" binding:"required,notblank,max=2000"`
}

// ProfileInput is what a member may change about themselves
type ProfileInput struct {
	DisplayName string `json:"displayName" binding:"required,notblank,max=80"`
	Bio         string `json:"bio" binding:"max=1000"`
	AvatarURL   string `json:"avatarUrl" binding:"omitempty,url"`
}

// MemberUpdate is what an admin may change about a member
type MemberUpdate struct {
	Role     string `json:"role" binding:"required,memberrole"`
	OnRoster bool   `json:"onRoster"`
}
