package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"go.uber.org/zap"
)

// RetentionJob periodically purges bookings and webhook events older
// than the retention horizon. Past bookings only matter to the decision
// engine within the one-hour lookback window, so anything beyond the
// horizon is dead weight.
type RetentionJob struct {
	repo      booking.Repository
	eventLog  booking.EventRepository
	retention time.Duration
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewRetentionJob creates a retention job keeping retentionDays of data.
func NewRetentionJob(
	repo booking.Repository,
	eventLog booking.EventRepository,
	retentionDays int,
	logger *zap.Logger,
) *RetentionJob {
	return &RetentionJob{
		repo:      repo,
		eventLog:  eventLog,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the nightly sweep. The returned stop function blocks
// until a running sweep finishes.
func (j *RetentionJob) Start() (stop func(), err error) {
	_, err = j.cron.AddFunc("15 3 * * *", j.Sweep)
	if err != nil {
		return nil, err
	}
	j.cron.Start()
	return func() { <-j.cron.Stop().Done() }, nil
}

// Sweep deletes everything past the retention horizon.
func (j *RetentionJob) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-j.retention)

	bookingsRemoved, err := j.repo.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("retention sweep failed for bookings", zap.Error(err))
	}

	eventsRemoved, err := j.eventLog.DeleteBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("retention sweep failed for events", zap.Error(err))
	}

	j.logger.Info("retention sweep completed",
		zap.Time("cutoff", cutoff),
		zap.Int64("bookings_removed", bookingsRemoved),
		zap.Int64("events_removed", eventsRemoved),
	)
}
