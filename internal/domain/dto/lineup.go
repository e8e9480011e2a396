package dto

import (
	"time"

	"github.com/pubquiz-fans/site/internal/domain/entity"
)

type LineupEntry struct {
	UserID      string                     `json:"userId"`
	DisplayName string                     `json:"displayName"`
	AvatarURL   string                     `json:"avatarUrl,omitempty"`
	Status      entity.ParticipationStatus `json:"status"`
	Note        *string                    `json:"note"`
	RespondedAt time.Time                  `json:"respondedAt"`
}

// Lineup is the attendance of an event as shown on its page
type Lineup struct {
	EventID      string        `json:"eventId"`
	Capacity     int           `json:"capacity"`
	Participants []LineupEntry `json:"participants"`
	Substitutes  []LineupEntry `json:"substitutes"`
	Maybe        []LineupEntry `json:"maybe"`
}

func NewLineupEntry(p entity.EventParticipant) LineupEntry {
	return LineupEntry{
		UserID:      p.UserID,
		DisplayName: p.User.DisplayName,
		AvatarURL:   p.User.AvatarURL,
		Status:      p.Status,
		Note:        p.Note,
		RespondedAt: p.CreatedAt,
	}
}

func NewLineupEntries(participants []entity.EventParticipant) []LineupEntry {
	entries := make([]LineupEntry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, NewLineupEntry(p))
	}
	return entries
}
