package clock

import (
	"context"
	"time"
)

// Repository defines data access for clock records.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	// Update persists the close of a session (clock-out fields).
	Update(ctx context.Context, rec Record) error

	GetByID(ctx context.Context, id string) (Record, error)

	// GetOpenByUser returns the user's open session, or
	// ErrNoOpenSession when every record is closed.
	GetOpenByUser(ctx context.Context, userID string) (Record, error)

	// ListOpenByUsers returns all open sessions for the given users.
	ListOpenByUsers(ctx context.Context, userIDs []string) ([]Record, error)

	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]Record, error)
	ListByUsersAndRange(ctx context.Context, userIDs []string, from, to time.Time) ([]Record, error)
}
