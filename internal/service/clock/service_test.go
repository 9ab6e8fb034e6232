package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/report"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/audit"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error)       { return nil, nil }
func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByTeam(_ context.Context, _ string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListByIDs(_ context.Context, _ []string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) Update(_ context.Context, _ user.User) error              { return nil }
func (f *fakeUserRepo) UpdateSchedule(_ context.Context, _ string, _ user.ScheduleUpdate) error {
	return nil
}
func (f *fakeUserRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

type fakeClockRepo struct {
	records map[string]clock.Record
}

func newFakeClockRepo() *fakeClockRepo {
	return &fakeClockRepo{records: make(map[string]clock.Record)}
}

func (f *fakeClockRepo) Create(_ context.Context, rec clock.Record) (clock.Record, error) {
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeClockRepo) Update(_ context.Context, rec clock.Record) error {
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeClockRepo) GetByID(_ context.Context, id string) (clock.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return clock.Record{}, clock.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeClockRepo) GetOpenByUser(_ context.Context, userID string) (clock.Record, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.ClockOutAt == nil {
			return rec, nil
		}
	}
	return clock.Record{}, clock.ErrNoOpenSession
}

func (f *fakeClockRepo) ListOpenByUsers(_ context.Context, userIDs []string) ([]clock.Record, error) {
	var out []clock.Record
	for _, rec := range f.records {
		if rec.ClockOutAt != nil {
			continue
		}
		for _, id := range userIDs {
			if rec.UserID == id {
				out = append(out, rec)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeClockRepo) ListByUserAndRange(_ context.Context, userID string, from, to time.Time) ([]clock.Record, error) {
	var out []clock.Record
	for _, rec := range f.records {
		if rec.UserID == userID && !rec.ClockInAt.Before(from) && !rec.ClockInAt.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeClockRepo) ListByUsersAndRange(_ context.Context, userIDs []string, from, to time.Time) ([]clock.Record, error) {
	var out []clock.Record
	for _, id := range userIDs {
		recs, _ := f.ListByUserAndRange(context.Background(), id, from, to)
		out = append(out, recs...)
	}
	return out, nil
}

func newTestService(repo *fakeClockRepo, users *fakeUserRepo, now time.Time) *ServiceImpl {
	svc := NewClockService(repo, users, audit.Discard{}, "")
	svc.now = func() time.Time { return now }
	return svc
}

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{"u1": configuredUser()}}
}

func TestClockService_ClockIn_Success(t *testing.T) {
	repo := newFakeClockRepo()
	svc := newTestService(repo, testUsers(), at(9, 10))

	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, monday, rec.Date)
	assert.Equal(t, at(9, 10), rec.ClockInAt)
	assert.Nil(t, rec.ClockOutAt)
	assert.Zero(t, rec.LateMinutes)
	assert.Equal(t, clock.SourceManual, rec.Source)
}

func TestClockService_ClockIn_RecordsLateness(t *testing.T) {
	repo := newFakeClockRepo()
	svc := newTestService(repo, testUsers(), at(9, 25))

	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, rec.LateMinutes)
}

func TestClockService_ClockIn_AlreadyOpen(t *testing.T) {
	repo := newFakeClockRepo()
	svc := newTestService(repo, testUsers(), at(10, 0))

	_, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), "u1")
	assert.ErrorIs(t, err, clock.ErrAlreadyOpen)
}

func TestClockService_ClockIn_UnknownUser(t *testing.T) {
	svc := newTestService(newFakeClockRepo(), testUsers(), at(9, 0))

	_, err := svc.ClockIn(context.Background(), "nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestClockService_ClockIn_ReapsStaleSessionFirst(t *testing.T) {
	repo := newFakeClockRepo()
	stale := clock.Record{
		ID:        "stale",
		UserID:    "u1",
		Date:      monday.AddDate(0, 0, -3), // previous Friday
		ClockInAt: monday.AddDate(0, 0, -3).Add(9 * time.Hour),
	}
	repo.records[stale.ID] = stale

	svc := newTestService(repo, testUsers(), at(9, 5))

	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, rec.ClockOutAt)

	// The stale Friday session closed at that day's scheduled end.
	reaped := repo.records["stale"]
	require.NotNil(t, reaped.ClockOutAt)
	assert.Equal(t, stale.Date.Add(17*time.Hour), *reaped.ClockOutAt)
	assert.Equal(t, 480, reaped.WorkedMinutes)
	assert.Equal(t, clock.SourceAuto, reaped.Source)
}

func TestClockService_ClockOut_Success(t *testing.T) {
	repo := newFakeClockRepo()
	users := testUsers()

	svc := newTestService(repo, users, at(9, 0))
	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	svc = newTestService(repo, users, at(16, 30))
	closed, err := svc.ClockOut(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, rec.ID, closed.ID)
	require.NotNil(t, closed.ClockOutAt)
	assert.Equal(t, at(16, 30), *closed.ClockOutAt)
	assert.Equal(t, 450, closed.WorkedMinutes)
	assert.Equal(t, clock.SourceManual, closed.Source)
}

func TestClockService_ClockOut_NoOpenSession(t *testing.T) {
	svc := newTestService(newFakeClockRepo(), testUsers(), at(16, 0))

	_, err := svc.ClockOut(context.Background(), "u1")
	assert.ErrorIs(t, err, clock.ErrNoOpenSession)
}

func TestClockService_ClockOut_AfterEndOfDayReapedInstead(t *testing.T) {
	repo := newFakeClockRepo()
	users := testUsers()

	svc := newTestService(repo, users, at(9, 0))
	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	// At 17:05 the reaper closes the session at 17:00 before the
	// manual clock-out can claim the extra minutes.
	svc = newTestService(repo, users, at(17, 5))
	_, err = svc.ClockOut(context.Background(), "u1")
	assert.ErrorIs(t, err, clock.ErrNoOpenSession)

	reaped := repo.records[rec.ID]
	require.NotNil(t, reaped.ClockOutAt)
	assert.Equal(t, at(17, 0), *reaped.ClockOutAt)
	assert.Equal(t, 480, reaped.WorkedMinutes)
	assert.Equal(t, clock.SourceAuto, reaped.Source)
}

func TestClockService_AutoClose_NoOpBeforeEndOfDay(t *testing.T) {
	repo := newFakeClockRepo()
	users := testUsers()

	svc := newTestService(repo, users, at(9, 0))
	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	svc = newTestService(repo, users, at(16, 59))
	closed, err := svc.AutoClose(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Zero(t, closed)
	assert.Nil(t, repo.records[rec.ID].ClockOutAt)
}

func TestClockService_AutoClose_ClosesAtBoundary(t *testing.T) {
	repo := newFakeClockRepo()
	users := testUsers()

	svc := newTestService(repo, users, at(9, 0))
	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	svc = newTestService(repo, users, at(17, 0))
	closed, err := svc.AutoClose(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	reaped := repo.records[rec.ID]
	require.NotNil(t, reaped.ClockOutAt)
	assert.Equal(t, at(17, 0), *reaped.ClockOutAt)
	assert.Equal(t, clock.SourceAuto, reaped.Source)

	// Idempotent: a second run finds nothing open.
	closed, err = svc.AutoClose(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Zero(t, closed)
}

func TestClockService_ExemptUserBypassesWindow(t *testing.T) {
	repo := newFakeClockRepo()
	svc := NewClockService(repo, testUsers(), audit.Discard{}, "u1")
	svc.now = func() time.Time { return monday.AddDate(0, 0, 6).Add(22 * time.Hour) }

	rec, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, rec.LateMinutes)
}

func TestClockService_MyRecords_RequiresValidRange(t *testing.T) {
	svc := newTestService(newFakeClockRepo(), testUsers(), at(12, 0))

	_, err := svc.MyRecords(context.Background(), "u1", "", "2025-06-02")
	assert.ErrorIs(t, err, report.ErrRangeRequired)

	_, err = svc.MyRecords(context.Background(), "u1", "02-06-2025", "2025-06-02")
	assert.ErrorIs(t, err, report.ErrRangeRequired)
}

func TestClockService_MyRecords_ReturnsRange(t *testing.T) {
	repo := newFakeClockRepo()
	users := testUsers()

	svc := newTestService(repo, users, at(9, 0))
	_, err := svc.ClockIn(context.Background(), "u1")
	require.NoError(t, err)

	svc = newTestService(repo, users, at(12, 0))
	recs, err := svc.MyRecords(context.Background(), "u1", "2025-06-02", "2025-06-02")
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = svc.MyRecords(context.Background(), "u1", "2025-06-03", "2025-06-04")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
