package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
)

func strPtr(s string) *string { return &s }

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func configuredUser(id string) user.User {
	return user.User{
		ID:           id,
		ContractType: strPtr("full_time"),
		AMStart:      strPtr("09:00"),
		AMEnd:        strPtr("12:00"),
		PMStart:      strPtr("13:30"),
		PMEnd:        strPtr("17:00"),
	}
}

func record(userID string, day time.Time, worked, late int) clock.Record {
	return clock.Record{
		ID:            userID + day.Format("2006-01-02"),
		UserID:        userID,
		Date:          day,
		ClockInAt:     day.Add(9 * time.Hour),
		WorkedMinutes: worked,
		LateMinutes:   late,
		Source:        clock.SourceManual,
	}
}

func TestAggregate_RangeRequired(t *testing.T) {
	_, err := Aggregate(nil, nil, time.Time{}, monday)
	assert.ErrorIs(t, err, report.ErrRangeRequired)

	_, err = Aggregate(nil, nil, monday, time.Time{})
	assert.ErrorIs(t, err, report.ErrRangeRequired)
}

func TestAggregate_SingleFullDay(t *testing.T) {
	users := []user.User{configuredUser("u1")}
	records := []clock.Record{record("u1", monday, 390, 0)}

	sum, err := Aggregate(users, records, monday, monday.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)

	assert.InDelta(t, 6.5, sum.WorkedHours, 1e-9)
	assert.InDelta(t, 6.5, sum.ExpectedHours, 1e-9)
	assert.Equal(t, 1, sum.ShiftCount)
	assert.Equal(t, 1, sum.ExpectedShiftCount)
	assert.Zero(t, sum.LateCount)
	assert.Zero(t, sum.AbsenceCount)
	assert.InDelta(t, 100, sum.AttendanceRate, 1e-9)
	assert.InDelta(t, 0, sum.AbsenceRate, 1e-9)
	assert.InDelta(t, 6.5, sum.AverageHours, 1e-9)

	require.Len(t, sum.DailyWorked, 1)
	assert.Equal(t, "2025-06-02", sum.DailyWorked[0].Date)
	assert.InDelta(t, 6.5, sum.DailyWorked[0].Hours, 1e-9)
}

func TestAggregate_ZeroDenominatorsProduceZeroRates(t *testing.T) {
	// No users means no expected shifts; every rate must be 0, not NaN.
	sum, err := Aggregate(nil, nil, monday, monday.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)

	assert.Zero(t, sum.LatenessRate)
	assert.Zero(t, sum.AttendanceRate)
	assert.Zero(t, sum.AbsenceRate)
	assert.Zero(t, sum.AverageHours)

	require.Len(t, sum.DailyAttendanceRate, 1)
	assert.Zero(t, sum.DailyAttendanceRate[0].Value)
	assert.Zero(t, sum.DailyAbsenceRate[0].Value)
}

func TestAggregate_LatenessCarriedByFirstRecordOnly(t *testing.T) {
	users := []user.User{configuredUser("u1")}

	// Two sessions the same day: the morning one is late, the second
	// carries no lateness of its own.
	first := record("u1", monday, 170, 10)
	second := record("u1", monday, 200, 0)
	second.ID = "second"
	second.ClockInAt = monday.Add(13*time.Hour + 30*time.Minute)

	sum, err := Aggregate(users, []clock.Record{second, first}, monday, monday.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)

	assert.Equal(t, 1, sum.ShiftCount)
	assert.Equal(t, 1, sum.LateCount)
	assert.InDelta(t, 100, sum.LatenessRate, 1e-9)
	assert.InDelta(t, float64(370)/60, sum.WorkedHours, 1e-9)
}

func TestAggregate_AbsenceAcrossWeek(t *testing.T) {
	users := []user.User{configuredUser("u1")}

	// Worked Monday only out of a Mon-Fri week.
	records := []clock.Record{record("u1", monday, 390, 0)}
	weekEnd := monday.AddDate(0, 0, 4).Add(24*time.Hour - time.Nanosecond)

	sum, err := Aggregate(users, records, monday, weekEnd)
	require.NoError(t, err)

	assert.Equal(t, 5, sum.ExpectedShiftCount)
	assert.Equal(t, 1, sum.ShiftCount)
	assert.Equal(t, 4, sum.AbsenceCount)
	assert.InDelta(t, 80, sum.AbsenceRate, 1e-9)
	assert.InDelta(t, 20, sum.AttendanceRate, 1e-9)
	assert.Len(t, sum.DailyWorked, 5)
}

func TestAggregate_OverworkNeverNegativeAbsence(t *testing.T) {
	users := []user.User{configuredUser("u1")}

	// 8 worked hours against 6.5 expected.
	records := []clock.Record{record("u1", monday, 480, 0)}

	sum, err := Aggregate(users, records, monday, monday.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)

	require.Len(t, sum.DailyAbsenceRate, 1)
	assert.Zero(t, sum.DailyAbsenceRate[0].Value)
	assert.Greater(t, sum.DailyAttendanceRate[0].Value, 100.0)
}

func TestAggregate_RecordsOutsideRangeIgnored(t *testing.T) {
	users := []user.User{configuredUser("u1")}
	records := []clock.Record{
		record("u1", monday, 390, 0),
		record("u1", monday.AddDate(0, 0, 7), 390, 0),
	}

	sum, err := Aggregate(users, records, monday, monday.Add(24*time.Hour-time.Nanosecond))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ShiftCount)
	assert.InDelta(t, 6.5, sum.WorkedHours, 1e-9)
}

func TestDailyTotals_SortedByDate(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	totals := DailyTotals([]clock.Record{
		record("u1", tuesday, 120, 0),
		record("u1", monday, 60, 0),
		record("u2", monday, 60, 0),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, report.DayTotal{Date: "2025-06-02", Hours: 2}, totals[0])
	assert.Equal(t, report.DayTotal{Date: "2025-06-03", Hours: 2}, totals[1])
}

func TestWeekBucket(t *testing.T) {
	assert.Equal(t, "2025-W1", WeekBucket(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-W1", WeekBucket(time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-W2", WeekBucket(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-W5", WeekBucket(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeeklyTotals_GroupsByBucket(t *testing.T) {
	totals := WeeklyTotals([]clock.Record{
		record("u1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), 60, 0),
		record("u1", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), 60, 0),
		record("u1", time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), 30, 0),
	})

	require.Len(t, totals, 2)
	assert.Equal(t, report.WeekTotal{Week: "2025-W1", Hours: 2}, totals[0])
	assert.Equal(t, report.WeekTotal{Week: "2025-W2", Hours: 0.5}, totals[1])
}
