package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/database"
)

type clockRecordRepository struct {
	db *database.DB
}

func NewClockRecordRepository(db *database.DB) clock.Repository {
	return &clockRecordRepository{db: db}
}

const clockColumns = `id, user_id, date, clock_in_at, clock_out_at,
	   late_minutes, worked_minutes, source, created_at, updated_at`

func scanRecord(row pgx.Row) (clock.Record, error) {
	var rec clock.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.ClockInAt, &rec.ClockOutAt,
		&rec.LateMinutes, &rec.WorkedMinutes, &rec.Source, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements clock.Repository.
func (r *clockRecordRepository) Create(ctx context.Context, rec clock.Record) (clock.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_records (
			id, user_id, date, clock_in_at, clock_out_at,
			late_minutes, worked_minutes, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.ClockInAt, rec.ClockOutAt,
		rec.LateMinutes, rec.WorkedMinutes, rec.Source,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return clock.Record{}, fmt.Errorf("failed to create clock record: %w", err)
	}
	return rec, nil
}

// Update implements clock.Repository. Only close fields change; a
// record is never reopened.
func (r *clockRecordRepository) Update(ctx context.Context, rec clock.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_records
		SET clock_out_at = $2, worked_minutes = $3, source = $4, updated_at = NOW()
		WHERE id = $1 AND clock_out_at IS NULL
	`
	tag, err := q.Exec(ctx, query, rec.ID, rec.ClockOutAt, rec.WorkedMinutes, rec.Source)
	if err != nil {
		return fmt.Errorf("failed to update clock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return clock.ErrRecordNotFound
	}
	return nil
}

// GetByID implements clock.Repository.
func (r *clockRecordRepository) GetByID(ctx context.Context, id string) (clock.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanRecord(q.QueryRow(ctx, `SELECT `+clockColumns+` FROM clock_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clock.Record{}, clock.ErrRecordNotFound
		}
		return clock.Record{}, fmt.Errorf("failed to get clock record: %w", err)
	}
	return rec, nil
}

// GetOpenByUser implements clock.Repository.
func (r *clockRecordRepository) GetOpenByUser(ctx context.Context, userID string) (clock.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = $1 AND clock_out_at IS NULL
		ORDER BY clock_in_at DESC
		LIMIT 1
	`
	rec, err := scanRecord(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clock.Record{}, clock.ErrNoOpenSession
		}
		return clock.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return rec, nil
}

// ListOpenByUsers implements clock.Repository.
func (r *clockRecordRepository) ListOpenByUsers(ctx context.Context, userIDs []string) ([]clock.Record, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = ANY($1) AND clock_out_at IS NULL
		ORDER BY clock_in_at
	`
	return r.queryRecords(ctx, q, query, userIDs)
}

// ListByUserAndRange implements clock.Repository.
func (r *clockRecordRepository) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]clock.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = $1 AND clock_in_at BETWEEN $2 AND $3
		ORDER BY clock_in_at
	`
	return r.queryRecords(ctx, q, query, userID, from, to)
}

// ListByUsersAndRange implements clock.Repository.
func (r *clockRecordRepository) ListByUsersAndRange(ctx context.Context, userIDs []string, from, to time.Time) ([]clock.Record, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = ANY($1) AND clock_in_at BETWEEN $2 AND $3
		ORDER BY clock_in_at
	`
	return r.queryRecords(ctx, q, query, userIDs, from, to)
}

func (r *clockRecordRepository) queryRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]clock.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records: %w", err)
	}
	defer rows.Close()

	var records []clock.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
