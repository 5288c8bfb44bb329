package application_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/domain/booking"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/events"
	"github.com/sweden-indoor-golf/service-baydisplay/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the schema
// migrated. The shared-cache URI keeps the database alive across the
// pooled connections GORM opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&repository.BookingModel{}, &repository.EventModel{}))
	return db
}

// at parses "HH:MM" as a UTC instant on a fixed test day.
func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, fmt.Sprintf("2025-06-15T%s:00Z", hhmm))
	require.NoError(t, err)
	return ts
}

type seedInput struct {
	courtID    string
	startTime  string
	endTime    string
	customerID string
	firstName  string
	lastName   string
	startShown bool
	endShown   bool
}

func seedBooking(t *testing.T, repo booking.Repository, id string, in seedInput) {
	t.Helper()
	courtID := in.courtID
	if courtID == "" {
		courtID = "2068"
	}
	customerID := in.customerID
	if customerID == "" {
		customerID = "cust-alice"
	}
	firstName := in.firstName
	if firstName == "" {
		firstName = "Alice"
	}
	lastName := in.lastName
	if lastName == "" {
		lastName = "Andersson"
	}
	now := time.Now().UTC()
	b := booking.ReconstructBooking(
		id, courtID, "Bay 1",
		at(t, in.startTime), at(t, in.endTime),
		customerID, "user-"+customerID, customerID+"@test.se", firstName, lastName,
		"issuer-1", "",
		false, false, in.startShown, in.endShown,
		now, now,
	)
	require.NoError(t, repo.Upsert(context.Background(), b))
}

// capturingPublisher records every published CloudEvent in order.
type capturingPublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

type publishedEvent struct {
	topic string
	key   string
	event events.CloudEvent
}

func (p *capturingPublisher) PublishEvent(_ context.Context, topic, key string, event events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (p *capturingPublisher) events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.published))
	copy(out, p.published)
	return out
}
