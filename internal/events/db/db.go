package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-events/internal/models"
	"ms-events/internal/storage"
)

type DB struct {
	Bun *bun.DB
}

// CreateEvent inserts a new event and fills in the generated event_id.
// A capacity check constraint violation comes back as ErrCapacityOutOfRange.
func (d *DB) CreateEvent(ctx context.Context, event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(ctx)
	return storage.Translate(err)
}

func (d *DB) GetEventByID(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns every event ordered by date, then location.
func (d *DB) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("event_date", "location").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// RegisteredUsers returns the users registered for an event.
func (d *DB) RegisteredUsers(ctx context.Context, eventID int64) ([]models.User, error) {
	var users []models.User
	err := d.Bun.NewSelect().
		Model(&users).
		Join("JOIN event_registrations r ON r.user_id = \"user\".user_id").
		Where("r.event_id = ?", eventID).
		Order("user.user_id").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (d *DB) CountRegistrations(ctx context.Context, eventID int64) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Registration)(nil)).
		Where("event_id = ?", eventID).
		Count(ctx)
}
