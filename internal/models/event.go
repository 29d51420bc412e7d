package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	EventID   int64     `bun:"event_id,pk,autoincrement" json:"event_id"`
	Title     string    `bun:"title,notnull" json:"title"`
	EventDate time.Time `bun:"event_date,notnull" json:"event_date"`
	Location  string    `bun:"location,notnull" json:"location"`
	Capacity  int       `bun:"capacity,notnull" json:"capacity"`
}

// CreateEventRequest is the JSON body of POST /api/create-events. Date is a
// calendar date in YYYY-MM-DD form.
type CreateEventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
}

// EventStats is the response of GET /api/events-stats/{eventId}. The field
// spellings match the deployed wire contract.
type EventStats struct {
	TotalRegistrations int    `json:"total_registeration"`
	RemainingCapacity  int    `json:"remainig_capacity"`
	PercentageUsed     string `json:"percentage_used"`
}
