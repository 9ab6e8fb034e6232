package clock

import (
	"time"
)

// Record sources.
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// Record is one clock-in/clock-out pair for a user on a calendar day.
// A nil ClockOutAt means the session is still open; at most one open
// record may exist per user at any time. A record is closed exactly
// once, either by an explicit clock-out or by the stale-session
// reaper, and never reopened.
type Record struct {
	ID     string
	UserID string

	// Date is the working day, normalized to midnight.
	Date time.Time

	ClockInAt  time.Time
	ClockOutAt *time.Time

	// LateMinutes is fixed at clock-in, relative to the end of the
	// grace window.
	LateMinutes int

	// WorkedMinutes is elapsed wall-clock time from clock-in to
	// clock-out, floored to whole minutes, never negative.
	WorkedMinutes int

	Source string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the session is still in progress.
func (r Record) Open() bool {
	return r.ClockOutAt == nil
}
