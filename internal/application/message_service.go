package application

import (
	"context"
	"strings"
	"time"

	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/message"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/events"
	"go.uber.org/zap"
)

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.CloudEvent) error
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                   string    `json:"id"`
	CourtID              string    `json:"court_id"`
	CourtName            string    `json:"court_name"`
	StartTime            time.Time `json:"start_time"`
	EndTime              time.Time `json:"end_time"`
	CustomerID           string    `json:"customer_id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Cancelled            bool      `json:"cancelled"`
	HasShownStartMessage bool      `json:"has_shown_start_message"`
	HasShownEndMessage   bool      `json:"has_shown_end_message"`
}

// UserMessage is the display payload for one bay: which message to
// render and who it addresses.
type UserMessage struct {
	Type      message.Type `json:"type"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Booking   BookingDTO   `json:"booking"`
}

// MessageService orchestrates the per-court message decision: window
// queries, context building, rule evaluation, flag persistence and the
// final display payload.
type MessageService struct {
	repo     booking.Repository
	producer EventPublisher
	logger   *zap.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo booking.Repository, producer EventPublisher, logger *zap.Logger) *MessageService {
	return &MessageService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ShowMessageForCourt decides which message, if any, the given bay
// display should show at the reference instant. Errors from the store
// are logged and reported as "no message": this feature degrades to
// silence rather than failing the display poller.
func (s *MessageService) ShowMessageForCourt(ctx context.Context, courtID string, now time.Time) *UserMessage {
	now = now.UTC()

	current, err := s.repo.FindCurrent(ctx, courtID, now)
	if err != nil {
		s.logger.Error("current booking query failed",
			zap.String("court_id", courtID),
			zap.Error(err),
		)
		return nil
	}

	next, err := s.repo.FindNext(ctx, courtID, now)
	if err != nil {
		s.logger.Error("next booking query failed",
			zap.String("court_id", courtID),
			zap.Error(err),
		)
		return nil
	}

	if current == nil && next == nil {
		return nil
	}

	// The previous booking only matters for the welcome vs
	// welcome-continuation branch, so skip the lookup otherwise.
	var previous *booking.Booking
	if current != nil && !current.HasShownStartMessage() {
		previous, err = s.repo.FindPrevious(ctx, courtID, now)
		if err != nil {
			s.logger.Error("previous booking query failed",
				zap.String("court_id", courtID),
				zap.Error(err),
			)
			return nil
		}
	}

	mctx := message.BuildContext(current, next, previous, now)
	result := message.EvaluateRules(mctx)
	if result == nil {
		return nil
	}

	s.logger.Info("message rule matched",
		zap.String("court_id", courtID),
		zap.String("rule", result.RuleName),
		zap.String("booking_id", result.Booking.ID()),
		zap.String("type", string(result.Type)),
	)

	// Persist the flag even when the mutation fails; the message is
	// still delivered and may repeat on the next poll (at-least-once).
	s.persistFlag(ctx, result)

	if result.Type == "" {
		return nil
	}

	s.publishMessageShown(ctx, courtID, result)

	return &UserMessage{
		Type:      result.Type,
		FirstName: result.Booking.FirstName(),
		LastName:  result.Booking.LastName(),
		Booking:   toBookingDTO(result.Booking),
	}
}

func (s *MessageService) persistFlag(ctx context.Context, result *message.Result) {
	var err error
	switch {
	case result.RuleName == message.RuleWelcome,
		result.RuleName == message.RuleWelcomeContinuation,
		result.RuleName == message.RuleEarlyWelcome:
		err = s.repo.MarkStartMessageShown(ctx, result.Booking.ID())
	case strings.HasPrefix(result.RuleName, "ending"):
		err = s.repo.MarkEndMessageShown(ctx, result.Booking.ID())
	}
	if err != nil {
		s.logger.Error("failed to persist message flag",
			zap.String("rule", result.RuleName),
			zap.String("booking_id", result.Booking.ID()),
			zap.Error(err),
		)
	}
}

func (s *MessageService) publishMessageShown(ctx context.Context, courtID string, result *message.Result) {
	evt := events.MessageShownEvent{
		CourtID:     courtID,
		BookingID:   result.Booking.ID(),
		RuleName:    result.RuleName,
		MessageType: string(result.Type),
		OccurredAt:  time.Now().UTC(),
	}
	ce, err := events.NewCloudEvent("service-baydisplay", events.MessageShown, evt)
	if err != nil {
		s.logger.Error("failed to create message shown event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicDisplayEvents, result.Booking.ID(), ce); err != nil {
		s.logger.Error("failed to publish message shown event",
			zap.String("booking_id", result.Booking.ID()),
			zap.Error(err),
		)
	}
}

// ListRecentBookings returns the most recently updated bookings.
func (s *MessageService) ListRecentBookings(ctx context.Context, limit int) ([]BookingDTO, error) {
	bookings, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos, nil
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:                   b.ID(),
		CourtID:              b.CourtID(),
		CourtName:            b.CourtName(),
		StartTime:            b.StartTime(),
		EndTime:              b.EndTime(),
		CustomerID:           b.CustomerID(),
		FirstName:            b.FirstName(),
		LastName:             b.LastName(),
		Cancelled:            b.Cancelled(),
		HasShownStartMessage: b.HasShownStartMessage(),
		HasShownEndMessage:   b.HasShownEndMessage(),
	}
}
