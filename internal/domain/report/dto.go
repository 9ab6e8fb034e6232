package report

// HoursPoint is one day of a worked-hours series.
type HoursPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// RatePoint is one day of a percentage series.
type RatePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Summary aggregates raw clock records over a date range for a set of
// users. All rates are percentages; a zero denominator yields 0, never
// NaN.
type Summary struct {
	TotalHours         float64 `json:"total_hours"`
	WorkedHours        float64 `json:"worked_hours"`
	ExpectedHours      float64 `json:"expected_hours"`
	AverageHours       float64 `json:"average_hours"`
	ShiftCount         int     `json:"shift_count"`
	ExpectedShiftCount int     `json:"expected_shift_count"`
	LateCount          int     `json:"late_count"`
	LatenessRate       float64 `json:"lateness_rate"`
	AttendanceRate     float64 `json:"attendance_rate"`
	AbsenceCount       int     `json:"absence_count"`
	AbsenceRate        float64 `json:"absence_rate"`

	DailyWorked         []HoursPoint `json:"daily_worked"`
	DailyLatenessRate   []RatePoint  `json:"daily_lateness_rate"`
	DailyAttendanceRate []RatePoint  `json:"daily_attendance_rate"`
	DailyAbsenceRate    []RatePoint  `json:"daily_absence_rate"`
}

// DayTotal is the narrow per-day worked reduction.
type DayTotal struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// WeekTotal is the narrow per-week worked reduction. The key is
// "<year>-W<n>" where n is ceil(dayOfMonth/7) -- a day-of-month
// bucketing kept for compatibility with the historical reports, not a
// calendar ISO week.
type WeekTotal struct {
	Week  string  `json:"week"`
	Hours float64 `json:"hours"`
}

// Request selects the report scope: an explicit user set, a team, or
// (neither) every active user.
type Request struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	UserIDs []string `json:"user_ids,omitempty"`
	TeamID  string   `json:"team_id,omitempty"`
}
