package clock

import (
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/service/schedule"
)

// EvaluateClockIn decides whether a clock-in at now is permitted for
// the user and, if so, how many minutes late it is. Pure: callers own
// all storage checks (the already-open rejection in particular).
//
// Lateness is measured from the end of the grace window, not the
// scheduled start: clocking in at amStart+grace exactly is on time.
// When now falls inside the afternoon grace window the afternoon
// start is the anchor instead.
//
// An exempt identity (local-testing escape hatch, configured, never
// hard-coded) bypasses every time check and is never late.
func EvaluateClockIn(u user.User, now time.Time, exempt bool) (int, error) {
	if !u.Configured() {
		return 0, clock.ErrNotConfigured
	}
	if exempt {
		return 0, nil
	}
	if !schedule.IsWorkingDay(u, now) {
		return 0, clock.ErrNonWorkingDay
	}

	sched := schedule.Resolve(u)
	amStart := sched.AMStartAt(now)
	pmStart := sched.PMStartAt(now)
	pmEnd := sched.PMEndAt(now)
	grace := sched.Grace()

	if !now.Before(pmEnd) {
		return 0, clock.ErrPastEndOfDay
	}
	if now.Before(amStart) {
		return 0, clock.ErrOutsideWindow
	}

	// The afternoon window takes priority when it applies; otherwise
	// lateness counts from the morning start even for a midday
	// clock-in.
	anchor := amStart
	if !now.Before(pmStart) && !now.After(pmStart.Add(grace)) {
		anchor = pmStart
	}

	late := int(now.Sub(anchor.Add(grace)) / time.Minute)
	if late < 0 {
		late = 0
	}
	return late, nil
}

// EvaluateClockOut decides whether closing the open record at now is
// permitted and computes the worked minutes. Clock-outs at or after
// the scheduled end of day are rejected; the reaper owns that closure at
// the scheduled boundary.
func EvaluateClockOut(u user.User, rec clock.Record, now time.Time, exempt bool) (int, error) {
	if !exempt {
		pmEnd := schedule.Resolve(u).PMEndAt(rec.Date)
		if !now.Before(pmEnd) {
			return 0, clock.ErrPastEndOfDay
		}
	}
	return WorkedMinutes(rec.ClockInAt, now), nil
}

// WorkedMinutes is elapsed wall-clock time floored to whole minutes,
// clamped at zero. Any midday gap the user did not clock out for is
// counted; the model trusts the manual clock actions.
func WorkedMinutes(in, out time.Time) int {
	mins := int(out.Sub(in) / time.Minute)
	if mins < 0 {
		return 0
	}
	return mins
}
