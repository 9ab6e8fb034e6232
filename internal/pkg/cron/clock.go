package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/service/directory"
)

// ClockJobs runs the stale-session reaper and the directory sync on a
// schedule, in addition to their on-demand invocations.
type ClockJobs struct {
	clockSvc     clock.Service
	userRepo     user.Repository
	directorySvc *directory.Service
	syncInterval time.Duration
}

func NewClockJobs(clockSvc clock.Service, userRepo user.Repository, directorySvc *directory.Service, syncInterval time.Duration) *ClockJobs {
	return &ClockJobs{
		clockSvc:     clockSvc,
		userRepo:     userRepo,
		directorySvc: directorySvc,
		syncInterval: syncInterval,
	}
}

func (j *ClockJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
	if j.directorySvc != nil && j.syncInterval > 0 {
		scheduler.AddJob("directory_sync", j.syncInterval, j.SyncDirectory)
	}
}

// AutoCloseStaleSessions reaps open sessions for every active user.
func (j *ClockJobs) AutoCloseStaleSessions(ctx context.Context) error {
	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	closed, err := j.clockSvc.AutoClose(ctx, ids)
	if err != nil {
		return err
	}
	if closed > 0 {
		slog.Info("Cron: auto-closed stale sessions", "count", closed)
	}
	return nil
}

// SyncDirectory provisions users from the directory. An overlapping
// run is skipped, not an error.
func (j *ClockJobs) SyncDirectory(ctx context.Context) error {
	res, err := j.directorySvc.Sync(ctx)
	if err != nil {
		if errors.Is(err, directory.ErrSyncInProgress) {
			slog.Info("Cron: directory sync already running, skipping")
			return nil
		}
		return err
	}
	slog.Info("Cron: directory sync finished",
		"created", res.Created, "updated", res.Updated, "deactivated", res.Deactivated)
	return nil
}
