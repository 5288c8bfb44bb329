package repository

import (
	"context"
	"fmt"
	"time"

	bookingDomain "github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"gorm.io/gorm"
)

// EventModel is the GORM model for the booking_events audit log.
type EventModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	PlatformID string    `gorm:"not null;size:64;index"`
	EventType  string    `gorm:"not null;size:50"`
	BookingID  string    `gorm:"not null;size:64;index"`
	OccurredAt string    `gorm:"size:40"`
	ReceivedAt time.Time `gorm:"not null;index"`
	Payload    []byte    `gorm:"type:jsonb"`
}

// TableName returns the table name for the GORM model.
func (EventModel) TableName() string {
	return "booking_events"
}

// GormEventRepository is the GORM-based implementation of EventRepository.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append stores one received webhook event.
func (r *GormEventRepository) Append(ctx context.Context, e *bookingDomain.Event) error {
	model := EventModel{
		ID:         e.ID,
		PlatformID: e.PlatformID,
		EventType:  e.EventType,
		BookingID:  e.BookingID,
		OccurredAt: e.OccurredAt,
		ReceivedAt: e.ReceivedAt,
		Payload:    e.Payload,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append booking event: %w", err)
	}
	return nil
}

// DeleteBefore removes events received before the cutoff.
func (r *GormEventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("received_at < ?", cutoff.UTC()).
		Delete(&EventModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
