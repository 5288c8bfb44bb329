package booking

import (
	"context"
	"time"
)

// Window bounds for the adjacency queries. A booking only counts as
// "next" if it starts within LookaheadWindow of now, and as "previous"
// if it ended within LookbackWindow of now.
const (
	LookaheadWindow = 2 * time.Hour
	LookbackWindow  = 1 * time.Hour
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its platform identifier.
	FindByID(ctx context.Context, id string) (*Booking, error)

	// Upsert inserts the booking, replacing an existing row with the
	// same ID (webhook redeliveries are expected).
	Upsert(ctx context.Context, b *Booking) error

	// UpdateTimes retargets a booking's court and time range.
	UpdateTimes(ctx context.Context, id, courtID, courtName string, startTime, endTime time.Time) error

	// MarkCancelled sets the cancelled flag on a booking.
	MarkCancelled(ctx context.Context, id string) error

	// MarkStartMessageShown unconditionally sets hasShownStartMessage.
	MarkStartMessageShown(ctx context.Context, id string) error

	// MarkEndMessageShown unconditionally sets hasShownEndMessage.
	MarkEndMessageShown(ctx context.Context, id string) error

	// FindCurrent returns the non-cancelled booking for the court with
	// startTime <= now < endTime, earliest start first, or nil if none.
	FindCurrent(ctx context.Context, courtID string, now time.Time) (*Booking, error)

	// FindNext returns the non-cancelled booking for the court with
	// now < startTime < now+LookaheadWindow, earliest start first, or
	// nil if none.
	FindNext(ctx context.Context, courtID string, now time.Time) (*Booking, error)

	// FindPrevious returns the non-cancelled booking for the court with
	// now-LookbackWindow < endTime <= now, latest end first, or nil if
	// none.
	FindPrevious(ctx context.Context, courtID string, now time.Time) (*Booking, error)

	// ListRecent returns the most recently updated bookings.
	ListRecent(ctx context.Context, limit int) ([]*Booking, error)

	// DeleteEndedBefore removes bookings whose end time is before the
	// cutoff, returning the number of rows removed.
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
