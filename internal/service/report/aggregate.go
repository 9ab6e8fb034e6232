package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/service/schedule"
)

const dateLayout = "2006-01-02"

// shift is one (user, calendar day) group of clock records. Lateness
// is carried by the earliest record of the day only; worked minutes
// sum over all of them.
type shift struct {
	userID string
	date   string
	first  clock.Record
}

// Aggregate reduces raw clock records over [from, to] for a set of
// users into the report summary. Pure and read-only; accumulation is
// per composite key, so it is safe to feed records gathered from
// concurrent reads.
func Aggregate(users []user.User, records []clock.Record, from, to time.Time) (report.Summary, error) {
	if from.IsZero() || to.IsZero() {
		return report.Summary{}, report.ErrRangeRequired
	}

	rangeEnd := to
	if rangeEnd.Before(from) {
		rangeEnd = from
	}

	// Restrict to clock-ins inside the range.
	var filtered []clock.Record
	for _, rec := range records {
		if rec.ClockInAt.Before(from) || rec.ClockInAt.After(rangeEnd) {
			continue
		}
		filtered = append(filtered, rec)
	}

	// Group by (user, day), earliest record first within each group.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ClockInAt.Before(filtered[j].ClockInAt)
	})

	shifts := make(map[string]shift)
	workedByDay := make(map[string]int)
	workedTotal := 0
	for _, rec := range filtered {
		day := rec.Date.Format(dateLayout)
		key := rec.UserID + "|" + day
		if _, seen := shifts[key]; !seen {
			shifts[key] = shift{userID: rec.UserID, date: day, first: rec}
		}
		workedByDay[day] += rec.WorkedMinutes
		workedTotal += rec.WorkedMinutes
	}

	lateByDay := make(map[string]int)
	shiftsByDay := make(map[string]int)
	lateCount := 0
	for _, sh := range shifts {
		shiftsByDay[sh.date]++
		if sh.first.LateMinutes > 0 {
			lateByDay[sh.date]++
			lateCount++
		}
	}

	// Expected denominators: one pass over every day of the range and
	// every user.
	expectedShiftCount := 0
	expectedMinutes := 0.0
	expectedShiftsByDay := make(map[string]int)
	expectedMinutesByDay := make(map[string]float64)
	var days []string
	for day := schedule.Midnight(from); !day.After(rangeEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		days = append(days, key)
		for _, u := range users {
			hours := schedule.ExpectedDailyHours(u, day)
			if hours > 0 {
				expectedShiftCount++
				expectedShiftsByDay[key]++
				expectedMinutes += hours * 60
				expectedMinutesByDay[key] += hours * 60
			}
		}
	}

	summary := report.Summary{
		WorkedHours:        float64(workedTotal) / 60,
		TotalHours:         float64(workedTotal) / 60,
		ExpectedHours:      expectedMinutes / 60,
		ShiftCount:         len(shifts),
		ExpectedShiftCount: expectedShiftCount,
		LateCount:          lateCount,
	}

	summary.LatenessRate = rate(float64(lateCount), float64(expectedShiftCount))
	summary.AttendanceRate = rate(float64(workedTotal), expectedMinutes)
	summary.AbsenceCount = max(0, expectedShiftCount-len(shifts))
	summary.AbsenceRate = rate(float64(summary.AbsenceCount), float64(expectedShiftCount))
	if len(users) > 0 {
		summary.AverageHours = summary.TotalHours / float64(len(users))
	}

	for _, day := range days {
		worked := float64(workedByDay[day])
		expected := expectedMinutesByDay[day]

		summary.DailyWorked = append(summary.DailyWorked, report.HoursPoint{
			Date:  day,
			Hours: worked / 60,
		})
		summary.DailyLatenessRate = append(summary.DailyLatenessRate, report.RatePoint{
			Date:  day,
			Value: rate(float64(lateByDay[day]), float64(expectedShiftsByDay[day])),
		})
		summary.DailyAttendanceRate = append(summary.DailyAttendanceRate, report.RatePoint{
			Date:  day,
			Value: rate(worked, expected),
		})

		absence := 0.0
		if expected > 0 {
			absence = (1 - worked/expected) * 100
			if absence < 0 {
				absence = 0
			}
		}
		summary.DailyAbsenceRate = append(summary.DailyAbsenceRate, report.RatePoint{
			Date:  day,
			Value: absence,
		})
	}

	return summary, nil
}

// rate is a percentage with a zero-denominator guard.
func rate(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// DailyTotals reduces records to worked hours per calendar day.
func DailyTotals(records []clock.Record) []report.DayTotal {
	byDay := make(map[string]int)
	for _, rec := range records {
		byDay[rec.Date.Format(dateLayout)] += rec.WorkedMinutes
	}

	totals := make([]report.DayTotal, 0, len(byDay))
	for day, mins := range byDay {
		totals = append(totals, report.DayTotal{Date: day, Hours: float64(mins) / 60})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals
}

// WeeklyTotals reduces records to worked hours per week bucket. The
// bucket key is year-W<ceil(dayOfMonth/7)>: a day-of-month split, not
// a calendar ISO week, kept verbatim for compatibility with the
// historical reports.
func WeeklyTotals(records []clock.Record) []report.WeekTotal {
	byWeek := make(map[string]int)
	for _, rec := range records {
		byWeek[WeekBucket(rec.Date)] += rec.WorkedMinutes
	}

	totals := make([]report.WeekTotal, 0, len(byWeek))
	for week, mins := range byWeek {
		totals = append(totals, report.WeekTotal{Week: week, Hours: float64(mins) / 60})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Week < totals[j].Week })
	return totals
}

// WeekBucket formats the day-of-month week key for a date.
func WeekBucket(date time.Time) string {
	return fmt.Sprintf("%d-W%d", date.Year(), (date.Day()+6)/7)
}
