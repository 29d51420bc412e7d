package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-events/internal/models"
	"ms-events/internal/registration/db"
)

// Schema for the in-memory test database, mirroring migrations/ with
// SQLite column types. The constraint names match the Postgres schema so
// the storage error translation recognizes them.
var testSchema = []string{
	`CREATE TABLE events (
		event_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		event_date TIMESTAMP NOT NULL,
		location TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		CONSTRAINT events_capacity_check CHECK (capacity > 0 AND capacity < 1000)
	)`,
	`CREATE TABLE users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE event_registrations (
		user_id INTEGER NOT NULL,
		event_id INTEGER NOT NULL,
		registered_at TIMESTAMP NOT NULL,
		CONSTRAINT unique_user_event UNIQUE (user_id, event_id)
	)`,
}

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	for _, ddl := range testSchema {
		_, err := bunDB.ExecContext(context.Background(), ddl)
		require.NoError(t, err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func seedEvent(t *testing.T, bunDB *bun.DB, capacity int) int64 {
	event := &models.Event{
		Title:     "Tech Conference",
		EventDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Location:  "Amsterdam",
		Capacity:  capacity,
	}
	_, err := bunDB.NewInsert().Model(event).Exec(context.Background())
	require.NoError(t, err)
	return event.EventID
}

func TestGetEventForAdmission(t *testing.T) {
	regDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	eventID := seedEvent(t, bunDB, 50)

	event, err := regDB.GetEventForAdmission(context.Background(), eventID)
	assert.NoError(t, err)
	assert.Equal(t, 50, event.Capacity)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), event.EventDate.UTC())

	// Missing event: the workflow reports details-unavailable, not a
	// generic not-found.
	_, err = regDB.GetEventForAdmission(context.Background(), 9999)
	assert.ErrorIs(t, err, models.ErrDetailsUnavailable)
}

func TestCreateRegistrationDuplicate(t *testing.T) {
	regDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	eventID := seedEvent(t, bunDB, 50)

	reg := &models.Registration{UserID: 1, EventID: eventID, RegisteredAt: time.Now()}
	err := regDB.CreateRegistration(context.Background(), reg)
	assert.NoError(t, err)

	dup := &models.Registration{UserID: 1, EventID: eventID, RegisteredAt: time.Now()}
	err = regDB.CreateRegistration(context.Background(), dup)
	assert.ErrorIs(t, err, models.ErrAlreadyRegistered)

	// A different user registering for the same event is fine.
	other := &models.Registration{UserID: 2, EventID: eventID, RegisteredAt: time.Now()}
	err = regDB.CreateRegistration(context.Background(), other)
	assert.NoError(t, err)
}

func TestDeleteRegistration(t *testing.T) {
	regDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	eventID := seedEvent(t, bunDB, 50)

	// Cancelling a pair that was never registered.
	err := regDB.DeleteRegistration(context.Background(), 1, eventID)
	assert.ErrorIs(t, err, models.ErrRegistrationNotFound)

	reg := &models.Registration{UserID: 1, EventID: eventID, RegisteredAt: time.Now()}
	require.NoError(t, regDB.CreateRegistration(context.Background(), reg))

	err = regDB.DeleteRegistration(context.Background(), 1, eventID)
	assert.NoError(t, err)

	// Repeating the cancellation reports not-found the second time.
	err = regDB.DeleteRegistration(context.Background(), 1, eventID)
	assert.ErrorIs(t, err, models.ErrRegistrationNotFound)
}

func TestCancelThenRegisterLeavesNoResidualState(t *testing.T) {
	regDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	eventID := seedEvent(t, bunDB, 50)
	ctx := context.Background()

	reg := &models.Registration{UserID: 1, EventID: eventID, RegisteredAt: time.Now()}
	require.NoError(t, regDB.CreateRegistration(ctx, reg))
	require.NoError(t, regDB.DeleteRegistration(ctx, 1, eventID))

	again := &models.Registration{UserID: 1, EventID: eventID, RegisteredAt: time.Now()}
	err := regDB.CreateRegistration(ctx, again)
	assert.NoError(t, err)

	count, err := regDB.CountRegistrations(ctx, eventID)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCountRegistrations(t *testing.T) {
	regDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	eventID := seedEvent(t, bunDB, 50)
	otherEventID := seedEvent(t, bunDB, 50)
	ctx := context.Background()

	count, err := regDB.CountRegistrations(ctx, eventID)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	for userID := int64(1); userID <= 3; userID++ {
		reg := &models.Registration{UserID: userID, EventID: eventID, RegisteredAt: time.Now()}
		require.NoError(t, regDB.CreateRegistration(ctx, reg))
	}
	reg := &models.Registration{UserID: 1, EventID: otherEventID, RegisteredAt: time.Now()}
	require.NoError(t, regDB.CreateRegistration(ctx, reg))

	count, err = regDB.CountRegistrations(ctx, eventID)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}
