// Package storage translates datastore errors into the shared error set at
// the persistence boundary, so callers never inspect driver error codes or
// constraint names themselves.
package storage

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"ms-events/internal/models"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"

	constraintUniqueUserEvent = "unique_user_event"
	constraintCapacityCheck   = "events_capacity_check"
)

// Translate maps constraint violations reported by the datastore to typed
// errors. Errors it does not recognize are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == pgUniqueViolation && pqErr.Constraint == constraintUniqueUserEvent:
			return models.ErrAlreadyRegistered
		case pqErr.Code == pgCheckViolation && pqErr.Constraint == constraintCapacityCheck:
			return models.ErrCapacityOutOfRange
		}
		return err
	}

	// The test suite runs against in-memory SQLite, which reports
	// constraint failures as plain text rather than typed errors.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "event_registrations"):
		return models.ErrAlreadyRegistered
	case strings.Contains(msg, "CHECK constraint failed") && strings.Contains(msg, constraintCapacityCheck):
		return models.ErrCapacityOutOfRange
	}

	return err
}
