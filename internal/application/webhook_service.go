package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain"
	bookingDomain "github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/events"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/matchi"
	"go.uber.org/zap"
)

// WebhookService applies booking-lifecycle webhooks to the local
// booking mirror and records every delivery in the event log.
type WebhookService struct {
	repo     bookingDomain.Repository
	eventLog bookingDomain.EventRepository
	producer EventPublisher
	logger   *zap.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(
	repo bookingDomain.Repository,
	eventLog bookingDomain.EventRepository,
	producer EventPublisher,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		repo:     repo,
		eventLog: eventLog,
		producer: producer,
		logger:   logger,
	}
}

// Handle dispatches a webhook envelope to the handler for its event
// kind. Unknown kinds are a validation error so the platform sees a 400
// and can flag the misconfigured subscription.
func (s *WebhookService) Handle(ctx context.Context, env matchi.WebhookEnvelope) error {
	kind := matchi.ParseEventKind(env.DetailType)

	s.logger.Info("webhook received",
		zap.String("event_id", env.ID),
		zap.String("detail_type", env.DetailType),
		zap.Stringer("kind", kind),
	)

	switch kind {
	case matchi.EventBookingCreated:
		return s.handleCreated(ctx, env)
	case matchi.EventBookingMoved:
		return s.handleMoved(ctx, env)
	case matchi.EventBookingCancelled:
		return s.handleCancelled(ctx, env)
	default:
		return domain.NewValidationError("no handler for " + env.DetailType)
	}
}

func (s *WebhookService) handleCreated(ctx context.Context, env matchi.WebhookEnvelope) error {
	var detail matchi.CreatedBookingDetail
	if err := json.Unmarshal(env.Detail, &detail); err != nil {
		return domain.NewValidationError("malformed booking detail: " + err.Error())
	}

	startTime, endTime, err := parseTimeRange(detail.Booking.StartTime, detail.Booking.EndTime)
	if err != nil {
		return err
	}

	playerEmails := make([]string, len(detail.Players))
	for i, p := range detail.Players {
		playerEmails[i] = p.Email
	}

	b, err := bookingDomain.NewBooking(
		detail.Booking.BookingID,
		detail.Booking.CourtID,
		detail.Booking.CourtName,
		startTime,
		endTime,
		detail.Owner.CustomerID,
		detail.Owner.UserID,
		detail.Owner.Email,
		detail.Owner.FirstName,
		detail.Owner.LastName,
		detail.IssuerID,
		strings.Join(playerEmails, ", "),
		detail.Booking.SplitPayment,
	)
	if err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return err
	}

	s.appendEvent(ctx, env, detail.Booking.BookingID)

	s.publishLifecycle(ctx, events.BookingIngested, events.BookingLifecycleEvent{
		BookingID:  b.ID(),
		CourtID:    b.CourtID(),
		CustomerID: b.CustomerID(),
		StartTime:  b.StartTime(),
		EndTime:    b.EndTime(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *WebhookService) handleMoved(ctx context.Context, env matchi.WebhookEnvelope) error {
	var detail matchi.CreatedBookingDetail
	if err := json.Unmarshal(env.Detail, &detail); err != nil {
		return domain.NewValidationError("malformed booking detail: " + err.Error())
	}

	startTime, endTime, err := parseTimeRange(detail.Booking.StartTime, detail.Booking.EndTime)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTimes(ctx,
		detail.Booking.BookingID,
		detail.Booking.CourtID,
		detail.Booking.CourtName,
		startTime,
		endTime,
	); err != nil {
		return err
	}

	s.appendEvent(ctx, env, detail.Booking.BookingID)

	s.publishLifecycle(ctx, events.BookingMoved, events.BookingLifecycleEvent{
		BookingID:  detail.Booking.BookingID,
		CourtID:    detail.Booking.CourtID,
		StartTime:  startTime,
		EndTime:    endTime,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *WebhookService) handleCancelled(ctx context.Context, env matchi.WebhookEnvelope) error {
	var detail matchi.CancelledBookingDetail
	if err := json.Unmarshal(env.Detail, &detail); err != nil {
		return domain.NewValidationError("malformed booking detail: " + err.Error())
	}
	if detail.Booking.BookingID == "" {
		return domain.NewValidationError("booking ID is required")
	}

	if err := s.repo.MarkCancelled(ctx, detail.Booking.BookingID); err != nil {
		return err
	}

	s.appendEvent(ctx, env, detail.Booking.BookingID)

	s.publishLifecycle(ctx, events.BookingCancelled, events.BookingLifecycleEvent{
		BookingID:  detail.Booking.BookingID,
		CourtID:    detail.Booking.CourtID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// appendEvent records the delivery in the audit log. Failures are
// logged but never fail the webhook: the mirror update already took
// effect.
func (s *WebhookService) appendEvent(ctx context.Context, env matchi.WebhookEnvelope, bookingID string) {
	payload, err := json.Marshal(env)
	if err != nil {
		s.logger.Error("failed to marshal webhook payload", zap.Error(err))
		return
	}

	e := &bookingDomain.Event{
		ID:         uuid.New().String(),
		PlatformID: env.ID,
		EventType:  env.DetailType,
		BookingID:  bookingID,
		OccurredAt: env.Timestamp,
		ReceivedAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := s.eventLog.Append(ctx, e); err != nil {
		s.logger.Error("failed to append booking event",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
	}
}

func (s *WebhookService) publishLifecycle(ctx context.Context, eventType string, evt events.BookingLifecycleEvent) {
	ce, err := events.NewCloudEvent("service-baydisplay", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create lifecycle event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, evt.BookingID, ce); err != nil {
		s.logger.Error("failed to publish lifecycle event",
			zap.String("type", eventType),
			zap.String("booking_id", evt.BookingID),
			zap.Error(err),
		)
	}
}

func parseTimeRange(start, end string) (time.Time, time.Time, error) {
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid start time %q", start))
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError(fmt.Sprintf("invalid end time %q", end))
	}
	return startTime.UTC(), endTime.UTC(), nil
}
