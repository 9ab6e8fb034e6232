package report

import (
	"context"
)

// Service builds attendance reports.
type Service interface {
	// Summary aggregates attendance for the requested scope over
	// [from, to]. Open stale sessions are reaped before reading.
	Summary(ctx context.Context, req Request) (Summary, error)

	// UserDaily returns worked hours per calendar day for one user.
	UserDaily(ctx context.Context, userID, from, to string) ([]DayTotal, error)

	// UserWeekly returns worked hours per week bucket for one user.
	UserWeekly(ctx context.Context, userID, from, to string) ([]WeekTotal, error)
}
