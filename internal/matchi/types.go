// Package matchi holds the wire types for webhook deliveries from the
// Matchi booking platform.
package matchi

import "encoding/json"

// WebhookEnvelope is the outer payload of every Matchi webhook.
// Detail is kept raw until the event kind selects a concrete shape.
type WebhookEnvelope struct {
	ID         string          `json:"id"`
	DetailType string          `json:"detail-type"`
	Timestamp  string          `json:"timestamp"`
	Detail     json.RawMessage `json:"detail"`
}

// CreatedBookingDetail is the detail body for created and moved events.
type CreatedBookingDetail struct {
	IssuerID string   `json:"issuerId"`
	Players  []Player `json:"players"`
	Owner    Owner    `json:"owner"`
	Booking  Booking  `json:"booking"`
	Facility Facility `json:"facility"`
}

// CancelledBookingDetail is the detail body for cancelled events.
type CancelledBookingDetail struct {
	Owner    Owner            `json:"owner"`
	Booking  CancelledBooking `json:"booking"`
	Facility Facility         `json:"facility"`
}

// Owner identifies the customer who made the booking.
type Owner struct {
	CustomerID string `json:"customerId"`
	UserID     string `json:"userId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

// Player is one additional participant on the booking.
type Player struct {
	CustomerID string `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
}

// Booking is the reservation payload with its time range.
type Booking struct {
	BookingID    string `json:"bookingId"`
	CourtID      string `json:"courtId"`
	CourtName    string `json:"courtName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	AccessCode   string `json:"accessCode"`
	SplitPayment bool   `json:"splitPayment"`
}

// CancelledBooking carries only the identity of the cancelled booking.
type CancelledBooking struct {
	BookingID string `json:"bookingId"`
	CourtID   string `json:"courtId"`
	CourtName string `json:"courtName"`
}

// Facility identifies the venue the booking belongs to.
type Facility struct {
	FacilityID string `json:"facilityId"`
	Name       string `json:"name"`
}
