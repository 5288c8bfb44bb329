package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain"
	bookingDomain "github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID           string    `gorm:"primaryKey;size:64"`
	CourtID      string    `gorm:"not null;size:64;index:booking_query_idx,priority:1"`
	CourtName    string    `gorm:"not null;size:100"`
	StartTime    time.Time `gorm:"not null;index:booking_query_idx,priority:2"`
	EndTime      time.Time `gorm:"not null;index:booking_query_idx,priority:3"`
	CustomerID   string    `gorm:"not null;size:64"`
	UserID       string    `gorm:"size:64"`
	Email        string    `gorm:"size:255"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	IssuerID     string    `gorm:"size:64"`
	Players      string    `gorm:"size:1000"`
	SplitPayment bool      `gorm:"not null;default:false"`
	Cancelled    bool      `gorm:"not null;default:false;index:booking_query_idx,priority:4"`

	HasShownStartMessage bool `gorm:"not null;default:false"`
	HasShownEndMessage   bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its platform identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// Upsert inserts or replaces the booking row keyed by its ID. Webhook
// redeliveries make duplicate inserts routine, so conflicts update in
// place.
func (r *GormBookingRepository) Upsert(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert booking: %w", err)
	}
	return nil
}

// UpdateTimes retargets a booking's court and time range.
func (r *GormBookingRepository) UpdateTimes(ctx context.Context, id, courtID, courtName string, startTime, endTime time.Time) error {
	result := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"court_id":   courtID,
			"court_name": courtName,
			"start_time": startTime.UTC(),
			"end_time":   endTime.UTC(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking times: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id)
	}
	return nil
}

// MarkCancelled sets the cancelled flag on a booking.
func (r *GormBookingRepository) MarkCancelled(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "cancelled")
}

// MarkStartMessageShown unconditionally sets hasShownStartMessage.
// Deliberately not a compare-and-swap: near-simultaneous pollers may
// both observe the flag unset and both deliver the message once, which
// is an accepted trade-off for this best-effort feature.
func (r *GormBookingRepository) MarkStartMessageShown(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "has_shown_start_message")
}

// MarkEndMessageShown unconditionally sets hasShownEndMessage.
func (r *GormBookingRepository) MarkEndMessageShown(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "has_shown_end_message")
}

func (r *GormBookingRepository) setFlag(ctx context.Context, id, column string) error {
	result := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       true,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id)
	}
	return nil
}

// FindCurrent returns the active booking: start_time <= now < end_time.
// A booking ending exactly at now is not current.
func (r *GormBookingRepository) FindCurrent(ctx context.Context, courtID string, now time.Time) (*bookingDomain.Booking, error) {
	return r.findOneWindow(ctx,
		"court_id = ? AND cancelled = ? AND start_time <= ? AND end_time > ?",
		[]interface{}{courtID, false, now.UTC(), now.UTC()},
		"start_time ASC",
	)
}

// FindNext returns the upcoming booking: now < start_time < now + lookahead.
// A booking starting exactly at the lookahead horizon is excluded.
func (r *GormBookingRepository) FindNext(ctx context.Context, courtID string, now time.Time) (*bookingDomain.Booking, error) {
	horizon := now.Add(bookingDomain.LookaheadWindow)
	return r.findOneWindow(ctx,
		"court_id = ? AND cancelled = ? AND start_time > ? AND start_time < ?",
		[]interface{}{courtID, false, now.UTC(), horizon.UTC()},
		"start_time ASC",
	)
}

// FindPrevious returns the most recently ended booking:
// now - lookback < end_time <= now. A booking ending exactly at now is
// a valid previous candidate.
func (r *GormBookingRepository) FindPrevious(ctx context.Context, courtID string, now time.Time) (*bookingDomain.Booking, error) {
	horizon := now.Add(-bookingDomain.LookbackWindow)
	return r.findOneWindow(ctx,
		"court_id = ? AND cancelled = ? AND end_time <= ? AND end_time > ?",
		[]interface{}{courtID, false, now.UTC(), horizon.UTC()},
		"end_time DESC",
	)
}

func (r *GormBookingRepository) findOneWindow(ctx context.Context, cond string, args []interface{}, order string) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order(order).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed window query: %w", err)
	}
	return toDomainBooking(&model), nil
}

// ListRecent returns the most recently updated bookings.
func (r *GormBookingRepository) ListRecent(ctx context.Context, limit int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings, nil
}

// DeleteEndedBefore removes bookings whose end time is before the cutoff.
func (r *GormBookingRepository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("end_time < ?", cutoff.UTC()).
		Delete(&BookingModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old bookings: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:                   b.ID(),
		CourtID:              b.CourtID(),
		CourtName:            b.CourtName(),
		StartTime:            b.StartTime(),
		EndTime:              b.EndTime(),
		CustomerID:           b.CustomerID(),
		UserID:               b.UserID(),
		Email:                b.Email(),
		FirstName:            b.FirstName(),
		LastName:             b.LastName(),
		IssuerID:             b.IssuerID(),
		Players:              b.Players(),
		SplitPayment:         b.SplitPayment(),
		Cancelled:            b.Cancelled(),
		HasShownStartMessage: b.HasShownStartMessage(),
		HasShownEndMessage:   b.HasShownEndMessage(),
		CreatedAt:            b.CreatedAt(),
		UpdatedAt:            b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.CourtID,
		m.CourtName,
		m.StartTime.UTC(),
		m.EndTime.UTC(),
		m.CustomerID,
		m.UserID,
		m.Email,
		m.FirstName,
		m.LastName,
		m.IssuerID,
		m.Players,
		m.SplitPayment,
		m.Cancelled,
		m.HasShownStartMessage,
		m.HasShownEndMessage,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
