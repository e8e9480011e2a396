package dto

import "github.com/pubquiz-fans/site/internal/domain/entity"

// ParticipationChange is what a single RSVP write observed inside its transaction.
type ParticipationChange struct {
	Event  entity.Event
	Before []entity.EventParticipant
	After  []entity.EventParticipant
}
