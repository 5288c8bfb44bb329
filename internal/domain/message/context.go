package message

import (
	"time"

	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
)

// Margins around a booking's start/end instant within which the engine
// considers a session "about to start" or "near its end". Both bounds
// are inclusive: a booking is still near-end at its exact end instant.
const (
	NearEndMargin   = 5 * time.Minute
	NearStartMargin = 5 * time.Minute
)

// Context holds everything a rule may look at for one evaluation: the
// three window bookings plus the facts derived from them and "now".
// It is rebuilt for every evaluation and never persisted.
type Context struct {
	Current  *booking.Booking
	Next     *booking.Booking
	Previous *booking.Booking

	IsNearEnd              bool
	IsAboutToStart         bool
	NextIsConsecutive      bool
	SameCustomerAsPrevious bool
	SameCustomerAsNext     bool
}

// BuildContext derives the evaluation context from the current, next
// and previous bookings at the reference instant. All facts default to
// false when a required booking is absent.
func BuildContext(current, next, previous *booking.Booking, now time.Time) Context {
	ctx := Context{
		Current:  current,
		Next:     next,
		Previous: previous,
	}

	if current != nil {
		remaining := current.EndTime().Sub(now)
		ctx.IsNearEnd = remaining >= 0 && remaining <= NearEndMargin
		ctx.SameCustomerAsPrevious = current.SameCustomerAs(previous)
		ctx.SameCustomerAsNext = current.SameCustomerAs(next)
		if next != nil {
			ctx.NextIsConsecutive = current.EndTime().Equal(next.StartTime())
		}
	}

	if next != nil {
		untilStart := next.StartTime().Sub(now)
		ctx.IsAboutToStart = untilStart >= 0 && untilStart <= NearStartMargin
	}

	return ctx
}
