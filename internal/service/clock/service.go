package clock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/audit"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
	"github.com/stafftrack/timeclock-backend-go/internal/service/schedule"
)

type ServiceImpl struct {
	clockRepo clock.Repository
	userRepo  user.Repository
	auditLog  audit.Logger

	// exemptUserID bypasses schedule and window checks for one
	// configured identity. Empty disables the bypass.
	exemptUserID string

	now func() time.Time
}

func NewClockService(clockRepo clock.Repository, userRepo user.Repository, auditLog audit.Logger, exemptUserID string) *ServiceImpl {
	return &ServiceImpl{
		clockRepo:    clockRepo,
		userRepo:     userRepo,
		auditLog:     auditLog,
		exemptUserID: exemptUserID,
		now:          time.Now,
	}
}

// ClockIn implements clock.Service.
func (s *ServiceImpl) ClockIn(ctx context.Context, userID string) (clock.Record, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return clock.Record{}, fmt.Errorf("failed to load user: %w", err)
	}

	// Reap first so a genuinely stale session never blocks a fresh
	// clock-in.
	if _, err := s.AutoClose(ctx, []string{userID}); err != nil {
		return clock.Record{}, fmt.Errorf("failed to auto-close stale sessions: %w", err)
	}

	now := s.now()

	if _, err := s.clockRepo.GetOpenByUser(ctx, userID); err == nil {
		return clock.Record{}, clock.ErrAlreadyOpen
	} else if !errors.Is(err, clock.ErrNoOpenSession) {
		return clock.Record{}, fmt.Errorf("failed to check open session: %w", err)
	}

	late, err := EvaluateClockIn(u, now, s.exempt(u))
	if err != nil {
		return clock.Record{}, err
	}

	rec := clock.Record{
		ID:            uuid.NewString(),
		UserID:        userID,
		Date:          schedule.Midnight(now),
		ClockInAt:     now,
		ClockOutAt:    nil,
		LateMinutes:   late,
		WorkedMinutes: 0,
		Source:        clock.SourceManual,
	}

	created, err := s.clockRepo.Create(ctx, rec)
	if err != nil {
		return clock.Record{}, fmt.Errorf("failed to create clock record: %w", err)
	}

	go s.auditLog.Record(context.WithoutCancel(ctx), audit.Event{
		Action:    "clock.in",
		ActorID:   userID,
		SubjectID: created.ID,
		Detail:    map[string]any{"late_minutes": late},
	})

	return created, nil
}

// ClockOut implements clock.Service.
func (s *ServiceImpl) ClockOut(ctx context.Context, userID string) (clock.Record, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return clock.Record{}, fmt.Errorf("failed to load user: %w", err)
	}

	// A stale session must be closed by the reaper at the scheduled
	// boundary, not credited until "now".
	if _, err := s.AutoClose(ctx, []string{userID}); err != nil {
		return clock.Record{}, fmt.Errorf("failed to auto-close stale sessions: %w", err)
	}

	rec, err := s.clockRepo.GetOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, clock.ErrNoOpenSession) {
			return clock.Record{}, clock.ErrNoOpenSession
		}
		return clock.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}

	now := s.now()
	worked, err := EvaluateClockOut(u, rec, now, s.exempt(u))
	if err != nil {
		return clock.Record{}, err
	}

	rec.ClockOutAt = &now
	rec.WorkedMinutes = worked
	rec.Source = clock.SourceManual

	if err := s.clockRepo.Update(ctx, rec); err != nil {
		return clock.Record{}, fmt.Errorf("failed to close clock record: %w", err)
	}

	go s.auditLog.Record(context.WithoutCancel(ctx), audit.Event{
		Action:    "clock.out",
		ActorID:   userID,
		SubjectID: rec.ID,
		Detail:    map[string]any{"worked_minutes": worked},
	})

	return rec, nil
}

// AutoClose implements clock.Service. For every open session whose
// scheduled end of day has passed, the record is closed with the
// clock-out pinned to the scheduled boundary and the source marked
// auto. Running it again is a no-op: closed records no longer match
// the open-session query. Failures are per record; one bad row never
// aborts the scan.
func (s *ServiceImpl) AutoClose(ctx context.Context, userIDs []string) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	open, err := s.clockRepo.ListOpenByUsers(ctx, userIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to list open sessions: %w", err)
	}

	now := s.now()
	closed := 0
	for _, rec := range open {
		u, err := s.userRepo.GetByID(ctx, rec.UserID)
		if err != nil {
			slog.Error("reaper: failed to load user", "user_id", rec.UserID, "error", err)
			continue
		}

		pmEnd := schedule.Resolve(u).PMEndAt(rec.Date)
		if now.Before(pmEnd) {
			continue
		}

		out := pmEnd
		rec.ClockOutAt = &out
		rec.WorkedMinutes = WorkedMinutes(rec.ClockInAt, pmEnd)
		rec.Source = clock.SourceAuto

		if err := s.clockRepo.Update(ctx, rec); err != nil {
			slog.Error("reaper: failed to auto-close session",
				"record_id", rec.ID, "user_id", rec.UserID, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("reaper: auto-closed stale sessions", "count", closed)
	}
	return closed, nil
}

// MyRecords implements clock.Service.
func (s *ServiceImpl) MyRecords(ctx context.Context, userID string, from, to string) ([]clock.Record, error) {
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		return nil, report.ErrRangeRequired
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		return nil, report.ErrRangeRequired
	}

	if _, err := s.AutoClose(ctx, []string{userID}); err != nil {
		return nil, fmt.Errorf("failed to auto-close stale sessions: %w", err)
	}

	recs, err := s.clockRepo.ListByUserAndRange(ctx, userID, fromDate, toDate.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records: %w", err)
	}
	return recs, nil
}

func (s *ServiceImpl) exempt(u user.User) bool {
	return s.exemptUserID != "" && s.exemptUserID == u.ID
}

var _ clock.Service = (*ServiceImpl)(nil)
