package events

import "time"

// Kafka topics.
const (
	TopicBookingEvents = "booking.events"
	TopicDisplayEvents = "baydisplay.events"
)

// Event types.
const (
	BookingIngested  = "booking.ingested"
	BookingMoved     = "booking.moved"
	BookingCancelled = "booking.cancelled"
	MessageShown     = "baydisplay.message.shown"
)

// BookingLifecycleEvent is published after a webhook mutates the
// booking mirror.
type BookingLifecycleEvent struct {
	BookingID  string    `json:"booking_id"`
	CourtID    string    `json:"court_id"`
	CustomerID string    `json:"customer_id,omitempty"`
	StartTime  time.Time `json:"start_time,omitempty"`
	EndTime    time.Time `json:"end_time,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MessageShownEvent is published when a display message fires for a bay.
type MessageShownEvent struct {
	CourtID     string    `json:"court_id"`
	BookingID   string    `json:"booking_id"`
	RuleName    string    `json:"rule_name"`
	MessageType string    `json:"message_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}
