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

// GetEventForAdmission reads the capacity and date the admission checks
// need. A missing event surfaces as ErrDetailsUnavailable; the workflow
// does not distinguish a bad id from a transient read failure.
func (d *DB) GetEventForAdmission(ctx context.Context, eventID int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Column("event_id", "capacity", "event_date").
		Where("event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrDetailsUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) CountRegistrations(ctx context.Context, eventID int64) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Registration)(nil)).
		Where("event_id = ?", eventID).
		Count(ctx)
}

// CreateRegistration inserts the registration row. The unique constraint on
// (user_id, event_id) is the final backstop against double booking; a
// violation comes back as ErrAlreadyRegistered.
func (d *DB) CreateRegistration(ctx context.Context, registration *models.Registration) error {
	_, err := d.Bun.NewInsert().Model(registration).Exec(ctx)
	return storage.Translate(err)
}

// DeleteRegistration removes the exact (user_id, event_id) pair. Deleting a
// pair that was never registered reports ErrRegistrationNotFound.
func (d *DB) DeleteRegistration(ctx context.Context, userID, eventID int64) error {
	res, err := d.Bun.NewDelete().
		Model((*models.Registration)(nil)).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrRegistrationNotFound
	}
	return nil
}
