// Package waitlist ranks RSVPs of an event and splits them into the confirmed
// line-up and the substitutes queue.
package waitlist

import (
	"cmp"
	"slices"

	"github.com/pubquiz-fans/site/internal/domain/entity"
)

// DefaultCapacity is the number of confirmed seats at a quiz table
const DefaultCapacity = 8

// Lineup is the result of Partition. All slices keep queue order.
type Lineup struct {
	Participants []entity.EventParticipant
	Substitutes  []entity.EventParticipant
	Maybe        []entity.EventParticipant
}

// Order returns the going RSVPs, earliest first.
// Rows with equal CreatedAt are ordered by insertion sequence, then by user ID.
func Order(participants []entity.EventParticipant) []entity.EventParticipant {
	return byStatus(participants, entity.StatusGoing)
}

// Partition gives the first capacity going RSVPs a seat and queues the rest as substitutes.
// Maybe answers are collected separately and never take a seat.
func Partition(participants []entity.EventParticipant, capacity int) Lineup {
	going := Order(participants)
	capacity = max(capacity, 0)
	split := min(capacity, len(going))

	return Lineup{
		Participants: going[:split:split],
		Substitutes:  going[split:],
		Maybe:        byStatus(participants, entity.StatusMaybe),
	}
}

// ConfirmedIDs lists the user IDs holding a seat, in queue order
func (l Lineup) ConfirmedIDs() []string {
	ids := make([]string, 0, len(l.Participants))
	for _, p := range l.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}

// Promoted returns the users present in after but not in before, keeping the order of after
func Promoted(before, after []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, id := range before {
		seen[id] = struct{}{}
	}

	var promoted []string
	for _, id := range after {
		if _, ok := seen[id]; !ok {
			promoted = append(promoted, id)
		}
	}
	return promoted
}

// Promotions returns the users that held a substitute place in before and a seat in after.
// A user whose own answer put them straight into a free seat is not promoted.
func Promotions(before, after Lineup) []string {
	queued := make(map[string]struct{}, len(before.Substitutes))
	for _, p := range before.Substitutes {
		queued[p.UserID] = struct{}{}
	}

	var promoted []string
	for _, id := range Promoted(before.ConfirmedIDs(), after.ConfirmedIDs()) {
		if _, ok := queued[id]; ok {
			promoted = append(promoted, id)
		}
	}
	return promoted
}

func byStatus(participants []entity.EventParticipant, status entity.ParticipationStatus) []entity.EventParticipant {
	out := make([]entity.EventParticipant, 0, len(participants))
	for _, p := range participants {
		if p.Status == status {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, compare)
	return out
}

func compare(a, b entity.EventParticipant) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	return cmp.Compare(a.UserID, b.UserID)
}
