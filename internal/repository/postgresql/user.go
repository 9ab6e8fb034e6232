package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `id, username, full_name, email, role, team_id, contract_type,
	   am_start, am_end, pm_start, pm_end, grace_minutes, working_days,
	   dn, active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var days []int32
	err := row.Scan(
		&u.ID, &u.Username, &u.FullName, &u.Email, &u.Role, &u.TeamID, &u.ContractType,
		&u.AMStart, &u.AMEnd, &u.PMStart, &u.PMEnd, &u.GraceMinutes, &days,
		&u.DN, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.WorkingDays = make([]int, 0, len(days))
	for _, d := range days {
		u.WorkingDays = append(u.WorkingDays, int(d))
	}
	return u, nil
}

func toInt32Slice(days []int) []int32 {
	out := make([]int32, 0, len(days))
	for _, d := range days {
		out = append(out, int32(d))
	}
	return out
}

// GetByID implements user.Repository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByUsername implements user.Repository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(q.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return u, nil
}

func (r *userRepository) list(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// List implements user.Repository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
}

// ListActive implements user.Repository.
func (r *userRepository) ListActive(ctx context.Context) ([]user.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE active ORDER BY username`)
}

// ListByTeam implements user.Repository.
func (r *userRepository) ListByTeam(ctx context.Context, teamID string) ([]user.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE team_id = $1 AND active ORDER BY username`, teamID)
}

// ListByIDs implements user.Repository.
func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY username`, ids)
}

// Create implements user.Repository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = user.RoleEmployee
	}

	query := `
		INSERT INTO users (
			id, username, full_name, email, role, team_id, contract_type,
			am_start, am_end, pm_start, pm_end, grace_minutes, working_days,
			dn, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		u.ID, u.Username, u.FullName, u.Email, u.Role, u.TeamID, u.ContractType,
		u.AMStart, u.AMEnd, u.PMStart, u.PMEnd, u.GraceMinutes, toInt32Slice(u.WorkingDays),
		u.DN, u.Active,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// Update implements user.Repository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = $2, email = $3, role = $4, team_id = $5, dn = $6,
		    active = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, u.ID, u.FullName, u.Email, u.Role, u.TeamID, u.DN, u.Active)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateSchedule implements user.Repository.
func (r *userRepository) UpdateSchedule(ctx context.Context, id string, s user.ScheduleUpdate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET contract_type = $2, am_start = $3, am_end = $4, pm_start = $5,
		    pm_end = $6, grace_minutes = $7, working_days = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id,
		s.ContractType, s.AMStart, s.AMEnd, s.PMStart, s.PMEnd,
		s.GraceMinutes, toInt32Slice(s.WorkingDays),
	)
	if err != nil {
		return fmt.Errorf("failed to update user schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// SetActive implements user.Repository.
func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
