// Package schedule holds the pure scheduling arithmetic: resolving a
// user's effective daily schedule, deciding working days, and
// computing expected paid hours. Nothing in this package touches
// storage or the clock; everything is computed fresh per call.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
)

// System-wide schedule defaults, overridden per user field by field.
const (
	DefaultAMStart      = "09:00"
	DefaultAMEnd        = "12:00"
	DefaultPMStart      = "13:30"
	DefaultPMEnd        = "17:00"
	DefaultGraceMinutes = 15
)

// defaultWorkingDays is Mon-Fri, weekday numbering 0=Sunday.
var defaultWorkingDays = []int{1, 2, 3, 4, 5}

// Effective is a user's schedule after overlaying overrides onto the
// system defaults. Derived, never persisted.
type Effective struct {
	AMStart      string
	AMEnd        string
	PMStart      string
	PMEnd        string
	GraceMinutes int
}

// Resolve overlays the user's override fields onto the system
// defaults. Each of the four time fields falls back independently;
// partial configuration never forces a full fallback. Never fails.
func Resolve(u user.User) Effective {
	return Effective{
		AMStart:      pick(u.AMStart, DefaultAMStart),
		AMEnd:        pick(u.AMEnd, DefaultAMEnd),
		PMStart:      pick(u.PMStart, DefaultPMStart),
		PMEnd:        pick(u.PMEnd, DefaultPMEnd),
		GraceMinutes: pickInt(u.GraceMinutes, DefaultGraceMinutes),
	}
}

func pick(override *string, fallback string) string {
	if override != nil && strings.TrimSpace(*override) != "" {
		return *override
	}
	return fallback
}

func pickInt(override *int, fallback int) int {
	if override != nil {
		return *override
	}
	return fallback
}

// IsWorkingDay reports whether date falls on one of the user's
// working weekdays. Entries outside [0,6] are ignored; an empty
// result falls back to Mon-Fri.
func IsWorkingDay(u user.User, date time.Time) bool {
	days := make([]int, 0, len(u.WorkingDays))
	for _, d := range u.WorkingDays {
		if d >= 0 && d <= 6 {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		days = defaultWorkingDays
	}

	weekday := int(date.Weekday())
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ExpectedDailyHours computes the contractually expected paid hours
// for the given date. Zero when the user has no contract, any
// schedule override field is unset, or the date is a non-working day.
// A malformed half-day where end precedes start contributes 0, not a
// negative value.
func ExpectedDailyHours(u user.User, date time.Time) float64 {
	if !u.Configured() {
		return 0
	}
	if !IsWorkingDay(u, date) {
		return 0
	}

	sched := Resolve(u)
	am := sched.AMEndAt(date).Sub(sched.AMStartAt(date)).Hours()
	pm := sched.PMEndAt(date).Sub(sched.PMStartAt(date)).Hours()
	if am < 0 {
		am = 0
	}
	if pm < 0 {
		pm = 0
	}
	return am + pm
}

// AMStartAt anchors the morning start onto a calendar date.
func (e Effective) AMStartAt(date time.Time) time.Time { return anchor(date, e.AMStart) }

// AMEndAt anchors the morning end onto a calendar date.
func (e Effective) AMEndAt(date time.Time) time.Time { return anchor(date, e.AMEnd) }

// PMStartAt anchors the afternoon start onto a calendar date.
func (e Effective) PMStartAt(date time.Time) time.Time { return anchor(date, e.PMStart) }

// PMEndAt anchors the afternoon end onto a calendar date.
func (e Effective) PMEndAt(date time.Time) time.Time { return anchor(date, e.PMEnd) }

// Grace returns the grace period as a duration.
func (e Effective) Grace() time.Duration {
	return time.Duration(e.GraceMinutes) * time.Minute
}

// anchor places an "HH:MM" time of day onto the given date, in the
// date's location. A malformed value anchors to midnight.
func anchor(date time.Time, hhmm string) time.Time {
	h, m, ok := parseTimeOfDay(hhmm)
	if !ok {
		h, m = 0, 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

func parseTimeOfDay(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Midnight normalizes a timestamp to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
