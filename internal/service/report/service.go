package report

import (
	"context"
	"fmt"
	"time"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/team"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	userRepo  user.Repository
	teamRepo  team.Repository
	clockRepo clock.Repository
	clockSvc  clock.Service
}

func NewReportService(userRepo user.Repository, teamRepo team.Repository, clockRepo clock.Repository, clockSvc clock.Service) report.Service {
	return &ServiceImpl{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		clockRepo: clockRepo,
		clockSvc:  clockSvc,
	}
}

// Summary implements report.Service.
func (s *ServiceImpl) Summary(ctx context.Context, req report.Request) (report.Summary, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return report.Summary{}, err
	}

	users, err := s.scopeUsers(ctx, req)
	if err != nil {
		return report.Summary{}, err
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	// Reap before reading so stale open sessions cannot leak
	// zero-worked rows into the report.
	if _, err := s.clockSvc.AutoClose(ctx, ids); err != nil {
		return report.Summary{}, fmt.Errorf("failed to auto-close stale sessions: %w", err)
	}

	records, err := s.clockRepo.ListByUsersAndRange(ctx, ids, from, to)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to list clock records: %w", err)
	}

	return Aggregate(users, records, from, to)
}

// UserDaily implements report.Service.
func (s *ServiceImpl) UserDaily(ctx context.Context, userID, fromStr, toStr string) ([]report.DayTotal, error) {
	records, err := s.userRecords(ctx, userID, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return DailyTotals(records), nil
}

// UserWeekly implements report.Service.
func (s *ServiceImpl) UserWeekly(ctx context.Context, userID, fromStr, toStr string) ([]report.WeekTotal, error) {
	records, err := s.userRecords(ctx, userID, fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return WeeklyTotals(records), nil
}

func (s *ServiceImpl) userRecords(ctx context.Context, userID, fromStr, toStr string) ([]clock.Record, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if _, err := s.clockSvc.AutoClose(ctx, []string{userID}); err != nil {
		return nil, fmt.Errorf("failed to auto-close stale sessions: %w", err)
	}

	records, err := s.clockRepo.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records: %w", err)
	}
	return records, nil
}

func (s *ServiceImpl) scopeUsers(ctx context.Context, req report.Request) ([]user.User, error) {
	switch {
	case len(req.UserIDs) > 0:
		users, err := s.userRepo.ListByIDs(ctx, req.UserIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return users, nil
	case req.TeamID != "":
		if _, err := s.teamRepo.GetByID(ctx, req.TeamID); err != nil {
			return nil, err
		}
		users, err := s.userRepo.ListByTeam(ctx, req.TeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to list team members: %w", err)
		}
		return users, nil
	default:
		users, err := s.userRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active users: %w", err)
		}
		return users, nil
	}
}

// parseRange turns "YYYY-MM-DD" bounds into an inclusive timestamp
// range covering whole days. Missing or malformed bounds are a
// RangeRequired rejection.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, ok := validator.IsValidDate(fromStr)
	if !ok {
		return time.Time{}, time.Time{}, report.ErrRangeRequired
	}
	to, ok := validator.IsValidDate(toStr)
	if !ok {
		return time.Time{}, time.Time{}, report.ErrRangeRequired
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}
