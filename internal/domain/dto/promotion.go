package dto

import "time"

// Promotion is published on the broker when a substitute moves into the confirmed line-up
type Promotion struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	EventID        string    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	PromotedAt     time.Time `json:"promoted_at"`
}

// PromotionRoutingKey is the broker routing key of Promotion messages
const PromotionRoutingKey = "event.promoted"
