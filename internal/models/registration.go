package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Registration ties a user to an event. The pair is unique; the constraint
// is named unique_user_event in the schema and the storage layer relies on
// that name when translating violations.
type Registration struct {
	bun.BaseModel `bun:"table:event_registrations"`

	UserID       int64     `bun:"user_id,notnull,unique:unique_user_event" json:"user_id"`
	EventID      int64     `bun:"event_id,notnull,unique:unique_user_event" json:"event_id"`
	RegisteredAt time.Time `bun:"registered_at,notnull" json:"-"`
}

// RegistrationRequest is the JSON body of POST /api/register and
// DELETE /api/cancel-registeration.
type RegistrationRequest struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}
