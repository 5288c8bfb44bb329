package message_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
)

var bookingCounter int

type bookingInput struct {
	startTime            string
	endTime              string
	customerID           string
	hasShownStartMessage bool
	hasShownEndMessage   bool
}

// at parses "HH:MM" as a UTC instant on a fixed test day.
func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, fmt.Sprintf("2025-06-15T%s:00Z", hhmm))
	require.NoError(t, err)
	return ts
}

func makeBooking(t *testing.T, in bookingInput) *booking.Booking {
	t.Helper()
	bookingCounter++
	customerID := in.customerID
	if customerID == "" {
		customerID = fmt.Sprintf("customer-%d", bookingCounter)
	}
	now := time.Now().UTC()
	return booking.ReconstructBooking(
		fmt.Sprintf("booking-%d", bookingCounter),
		"2068",
		"Bay 1",
		at(t, in.startTime),
		at(t, in.endTime),
		customerID,
		"user-1",
		"test@test.com",
		"Test",
		"User",
		"issuer-1",
		"",
		false,
		false,
		in.hasShownStartMessage,
		in.hasShownEndMessage,
		now,
		now,
	)
}
