// Package clock makes "today" an injected capability instead of a value
// captured at process start, so date comparisons stay correct across
// midnight and are controllable in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Intended for tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// DateOf strips the time-of-day portion, keeping only the calendar date in
// UTC. Event dates are stored as plain DATE columns and scan back as UTC
// midnight, so both sides of every comparison go through this.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
