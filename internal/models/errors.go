package models

import "errors"

// Shared error set for the service layer. Handlers map these to HTTP
// responses with errors.Is; everything not in this set is treated as an
// unexpected error and answered with a generic 500.
var (
	// Validation failures (client-correctable input).
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidDate   = errors.New("date is not a valid YYYY-MM-DD calendar date")

	// Business rule violations (well-formed requests rejected by policy).
	ErrPastDate    = errors.New("event date is in the past")
	ErrEventFull   = errors.New("event is fully booked")
	ErrEventInPast = errors.New("event has already taken place")

	// Datastore constraint violations, translated once by internal/storage.
	ErrCapacityOutOfRange = errors.New("capacity must be between 1 and 999")
	ErrAlreadyRegistered  = errors.New("user is already registered for this event")

	// Absent entities.
	ErrEventNotFound        = errors.New("event not found")
	ErrDetailsUnavailable   = errors.New("event details unavailable")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrNoRegistrants        = errors.New("no users registered for this event")
	ErrNoUpcomingEvents     = errors.New("no upcoming events")
)
