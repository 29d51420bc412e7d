package storage_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"ms-events/internal/models"
	"ms-events/internal/storage"
)

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, storage.Translate(nil))
}

func TestTranslateDuplicateRegistration(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "unique_user_event"}
	assert.ErrorIs(t, storage.Translate(err), models.ErrAlreadyRegistered)
}

func TestTranslateCapacityCheck(t *testing.T) {
	err := &pq.Error{Code: "23514", Constraint: "events_capacity_check"}
	assert.ErrorIs(t, storage.Translate(err), models.ErrCapacityOutOfRange)
}

func TestTranslateWrappedPqError(t *testing.T) {
	inner := &pq.Error{Code: "23505", Constraint: "unique_user_event"}
	err := fmt.Errorf("insert registration: %w", inner)
	assert.ErrorIs(t, storage.Translate(err), models.ErrAlreadyRegistered)
}

func TestTranslateUnknownPqError(t *testing.T) {
	err := &pq.Error{Code: "23503", Constraint: "event_registrations_event_id_fkey"}
	assert.Equal(t, err, storage.Translate(err))
}

func TestTranslateUnknownConstraint(t *testing.T) {
	// Right code, wrong constraint: not ours to translate.
	err := &pq.Error{Code: "23505", Constraint: "users_pkey"}
	assert.Equal(t, err, storage.Translate(err))
}

func TestTranslateSQLiteUniqueText(t *testing.T) {
	err := errors.New("constraint failed: UNIQUE constraint failed: event_registrations.user_id, event_registrations.event_id")
	assert.ErrorIs(t, storage.Translate(err), models.ErrAlreadyRegistered)
}

func TestTranslateSQLiteCheckText(t *testing.T) {
	err := errors.New("constraint failed: CHECK constraint failed: events_capacity_check")
	assert.ErrorIs(t, storage.Translate(err), models.ErrCapacityOutOfRange)
}

func TestTranslatePassthrough(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, err, storage.Translate(err))
}
