package user

import (
	"context"
)

// Repository defines data access for user accounts.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListActive(ctx context.Context) ([]User, error)
	ListByTeam(ctx context.Context, teamID string) ([]User, error)
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) error
	UpdateSchedule(ctx context.Context, id string, s ScheduleUpdate) error
	SetActive(ctx context.Context, id string, active bool) error
}
