package clock

import (
	"context"
)

// Service defines the clock state machine operations.
type Service interface {
	// ClockIn opens a session for the user at the current time, after
	// reaping any stale open session. Rejections are the sentinel
	// errors in this package.
	ClockIn(ctx context.Context, userID string) (Record, error)

	// ClockOut closes the user's open session at the current time.
	ClockOut(ctx context.Context, userID string) (Record, error)

	// AutoClose closes every open session among the given users whose
	// scheduled end of day has passed, crediting worked time up to the
	// scheduled boundary. Idempotent; per-record failures are logged
	// and skipped.
	AutoClose(ctx context.Context, userIDs []string) (int, error)

	// MyRecords lists the user's clock records within a date range.
	MyRecords(ctx context.Context, userID string, from, to string) ([]Record, error)
}
