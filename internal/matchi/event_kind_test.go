package matchi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/matchi"
)

func TestParseEventKind(t *testing.T) {
	cases := []struct {
		detailType string
		want       matchi.EventKind
	}{
		{"BookingCreated", matchi.EventBookingCreated},
		{"BookingCreatedV1", matchi.EventBookingCreated},
		{"BookingMoved", matchi.EventBookingMoved},
		{"BookingMovedV1", matchi.EventBookingMoved},
		{"BookingCancelled", matchi.EventBookingCancelled},
		{"BookingCancelledV1", matchi.EventBookingCancelled},
		{"FacilityUpdated", matchi.EventUnknown},
		{"bookingcreated", matchi.EventUnknown},
		{"", matchi.EventUnknown},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, matchi.ParseEventKind(tc.detailType), tc.detailType)
	}
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "booking_created", matchi.EventBookingCreated.String())
	assert.Equal(t, "booking_moved", matchi.EventBookingMoved.String())
	assert.Equal(t, "booking_cancelled", matchi.EventBookingCancelled.String())
	assert.Equal(t, "unknown", matchi.EventUnknown.String())
}
