package booking

import (
	"context"
	"encoding/json"
	"time"
)

// Event is one received webhook delivery, kept as an append-only audit
// log alongside the mirrored booking state.
type Event struct {
	ID         string
	PlatformID string
	EventType  string
	BookingID  string
	OccurredAt string
	ReceivedAt time.Time
	Payload    json.RawMessage
}

// EventRepository defines the persistence contract for the webhook
// event log.
type EventRepository interface {
	// Append stores one received event.
	Append(ctx context.Context, e *Event) error

	// DeleteBefore removes events received before the cutoff, returning
	// the number of rows removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
