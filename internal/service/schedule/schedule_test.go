package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// monday is a known working day for the default Mon-Fri calendar.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func configuredUser() user.User {
	return user.User{
		ID:           "u1",
		ContractType: strPtr("full_time"),
		AMStart:      strPtr("09:00"),
		AMEnd:        strPtr("12:00"),
		PMStart:      strPtr("13:30"),
		PMEnd:        strPtr("17:00"),
	}
}

func TestResolve_Defaults(t *testing.T) {
	sched := Resolve(user.User{})

	assert.Equal(t, DefaultAMStart, sched.AMStart)
	assert.Equal(t, DefaultAMEnd, sched.AMEnd)
	assert.Equal(t, DefaultPMStart, sched.PMStart)
	assert.Equal(t, DefaultPMEnd, sched.PMEnd)
	assert.Equal(t, DefaultGraceMinutes, sched.GraceMinutes)
}

func TestResolve_PartialOverride(t *testing.T) {
	u := user.User{
		AMStart:      strPtr("08:00"),
		GraceMinutes: intPtr(5),
	}
	sched := Resolve(u)

	// Each field falls back independently.
	assert.Equal(t, "08:00", sched.AMStart)
	assert.Equal(t, DefaultAMEnd, sched.AMEnd)
	assert.Equal(t, DefaultPMStart, sched.PMStart)
	assert.Equal(t, DefaultPMEnd, sched.PMEnd)
	assert.Equal(t, 5, sched.GraceMinutes)
}

func TestResolve_BlankOverrideFallsBack(t *testing.T) {
	u := user.User{AMStart: strPtr("  ")}
	assert.Equal(t, DefaultAMStart, Resolve(u).AMStart)
}

func TestResolve_ZeroGraceIsNotFallback(t *testing.T) {
	u := user.User{GraceMinutes: intPtr(0)}
	assert.Equal(t, 0, Resolve(u).GraceMinutes)
}

func TestIsWorkingDay_DefaultMonFri(t *testing.T) {
	u := user.User{}

	assert.True(t, IsWorkingDay(u, monday))
	assert.True(t, IsWorkingDay(u, monday.AddDate(0, 0, 4)))  // Friday
	assert.False(t, IsWorkingDay(u, monday.AddDate(0, 0, 5))) // Saturday
	assert.False(t, IsWorkingDay(u, monday.AddDate(0, 0, 6))) // Sunday
}

func TestIsWorkingDay_CustomDays(t *testing.T) {
	u := user.User{WorkingDays: []int{0, 6}} // weekends only

	assert.False(t, IsWorkingDay(u, monday))
	assert.True(t, IsWorkingDay(u, monday.AddDate(0, 0, 5)))
	assert.True(t, IsWorkingDay(u, monday.AddDate(0, 0, 6)))
}

func TestIsWorkingDay_InvalidEntriesIgnored(t *testing.T) {
	// Only invalid entries left means the default calendar applies.
	u := user.User{WorkingDays: []int{-1, 7, 99}}

	assert.True(t, IsWorkingDay(u, monday))
	assert.False(t, IsWorkingDay(u, monday.AddDate(0, 0, 5)))
}

func TestExpectedDailyHours_DefaultSchedule(t *testing.T) {
	// 09:00-12:00 plus 13:30-17:00 is 6.5 paid hours.
	assert.InDelta(t, 6.5, ExpectedDailyHours(configuredUser(), monday), 1e-9)
}

func TestExpectedDailyHours_Unconfigured(t *testing.T) {
	u := configuredUser()
	u.ContractType = nil
	assert.Zero(t, ExpectedDailyHours(u, monday))

	u = configuredUser()
	u.PMEnd = nil
	assert.Zero(t, ExpectedDailyHours(u, monday))
}

func TestExpectedDailyHours_NonWorkingDay(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	assert.Zero(t, ExpectedDailyHours(configuredUser(), saturday))
}

func TestExpectedDailyHours_InvertedHalfDayContributesZero(t *testing.T) {
	u := configuredUser()
	u.PMStart = strPtr("17:00")
	u.PMEnd = strPtr("13:30")

	assert.InDelta(t, 3.0, ExpectedDailyHours(u, monday), 1e-9)
}

func TestEffective_AnchorsOntoDate(t *testing.T) {
	sched := Resolve(configuredUser())

	amStart := sched.AMStartAt(monday)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), amStart)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), sched.PMEndAt(monday))
	assert.Equal(t, 15*time.Minute, sched.Grace())
}

func TestEffective_MalformedTimeAnchorsToMidnight(t *testing.T) {
	sched := Effective{AMStart: "not-a-time"}
	assert.Equal(t, monday, sched.AMStartAt(monday))
}

func TestMidnight(t *testing.T) {
	at := time.Date(2025, 6, 2, 14, 45, 30, 999, time.UTC)
	assert.Equal(t, monday, Midnight(at))
}
