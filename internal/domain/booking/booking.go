package booking

import (
	"time"

	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain"
)

// Booking is the aggregate root for a single bay reservation mirrored
// from the booking platform.
type Booking struct {
	id         string
	courtID    string
	courtName  string
	startTime  time.Time
	endTime    time.Time
	customerID string
	userID     string
	email      string
	firstName  string
	lastName   string
	issuerID   string
	players    string

	splitPayment bool
	cancelled    bool

	// One-way flags: once shown, a message is never shown again for
	// this booking.
	hasShownStartMessage bool
	hasShownEndMessage   bool

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a Booking from a platform webhook, validating the
// fields the decision engine depends on.
func NewBooking(
	id, courtID, courtName string,
	startTime, endTime time.Time,
	customerID, userID, email, firstName, lastName, issuerID, players string,
	splitPayment bool,
) (*Booking, error) {
	if id == "" {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if courtID == "" {
		return nil, domain.NewValidationError("court ID is required")
	}
	if customerID == "" {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if startTime.IsZero() || endTime.IsZero() {
		return nil, domain.NewValidationError("booking time range is required")
	}
	if !startTime.Before(endTime) {
		return nil, domain.NewValidationError("booking start time must be before end time")
	}

	now := time.Now().UTC()
	return &Booking{
		id:           id,
		courtID:      courtID,
		courtName:    courtName,
		startTime:    startTime.UTC(),
		endTime:      endTime.UTC(),
		customerID:   customerID,
		userID:       userID,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		issuerID:     issuerID,
		players:      players,
		splitPayment: splitPayment,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id, courtID, courtName string,
	startTime, endTime time.Time,
	customerID, userID, email, firstName, lastName, issuerID, players string,
	splitPayment, cancelled, hasShownStartMessage, hasShownEndMessage bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                   id,
		courtID:              courtID,
		courtName:            courtName,
		startTime:            startTime,
		endTime:              endTime,
		customerID:           customerID,
		userID:               userID,
		email:                email,
		firstName:            firstName,
		lastName:             lastName,
		issuerID:             issuerID,
		players:              players,
		splitPayment:         splitPayment,
		cancelled:            cancelled,
		hasShownStartMessage: hasShownStartMessage,
		hasShownEndMessage:   hasShownEndMessage,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// --- Getters ---

// ID returns the platform booking identifier.
func (b *Booking) ID() string { return b.id }

// CourtID returns the identifier of the reserved court.
func (b *Booking) CourtID() string { return b.courtID }

// CourtName returns the display name of the reserved court.
func (b *Booking) CourtName() string { return b.courtName }

// StartTime returns the UTC start instant of the reservation.
func (b *Booking) StartTime() time.Time { return b.startTime }

// EndTime returns the UTC end instant of the reservation (exclusive).
func (b *Booking) EndTime() time.Time { return b.endTime }

// CustomerID returns the owning customer's identifier.
func (b *Booking) CustomerID() string { return b.customerID }

// UserID returns the owning user's identifier.
func (b *Booking) UserID() string { return b.userID }

// Email returns the owner's email address.
func (b *Booking) Email() string { return b.email }

// FirstName returns the owner's first name, used in display messages.
func (b *Booking) FirstName() string { return b.firstName }

// LastName returns the owner's last name.
func (b *Booking) LastName() string { return b.lastName }

// IssuerID returns the identifier of the issuing organization.
func (b *Booking) IssuerID() string { return b.issuerID }

// Players returns the comma-separated list of player emails.
func (b *Booking) Players() string { return b.players }

// SplitPayment reports whether the booking uses split payment.
func (b *Booking) SplitPayment() bool { return b.splitPayment }

// Cancelled reports whether the booking has been cancelled.
func (b *Booking) Cancelled() bool { return b.cancelled }

// HasShownStartMessage reports whether the welcome message was shown.
func (b *Booking) HasShownStartMessage() bool { return b.hasShownStartMessage }

// HasShownEndMessage reports whether the ending message was shown.
func (b *Booking) HasShownEndMessage() bool { return b.hasShownEndMessage }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// SameCustomerAs reports whether both bookings belong to one customer.
func (b *Booking) SameCustomerAs(other *Booking) bool {
	return other != nil && b.customerID == other.customerID
}

// --- Behavior ---

// MoveTo retargets the booking to a new court and time range.
func (b *Booking) MoveTo(courtID, courtName string, startTime, endTime time.Time) error {
	if courtID == "" {
		return domain.NewValidationError("court ID is required")
	}
	if !startTime.Before(endTime) {
		return domain.NewValidationError("booking start time must be before end time")
	}
	b.courtID = courtID
	b.courtName = courtName
	b.startTime = startTime.UTC()
	b.endTime = endTime.UTC()
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the booking as cancelled. Cancelled bookings never
// produce display messages.
func (b *Booking) Cancel() {
	b.cancelled = true
	b.updatedAt = time.Now().UTC()
}

// MarkStartMessageShown records that the welcome message was shown.
// The flag is monotonic: it is never reset.
func (b *Booking) MarkStartMessageShown() {
	b.hasShownStartMessage = true
	b.updatedAt = time.Now().UTC()
}

// MarkEndMessageShown records that the ending message was shown.
// The flag is monotonic: it is never reset.
func (b *Booking) MarkEndMessageShown() {
	b.hasShownEndMessage = true
	b.updatedAt = time.Now().UTC()
}
