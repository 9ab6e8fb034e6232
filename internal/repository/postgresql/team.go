package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/team"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/database"
)

type teamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.Repository {
	return &teamRepository{db: db}
}

// GetByID implements team.Repository.
func (r *teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	var t team.Team
	err := q.QueryRow(ctx, `
		SELECT id, name, manager_id, created_at, updated_at
		FROM teams WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// List implements team.Repository.
func (r *teamRepository) List(ctx context.Context) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, manager_id, created_at, updated_at
		FROM teams ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Create implements team.Repository.
func (r *teamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO teams (id, name, manager_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, t.ID, t.Name, t.ManagerID).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return team.Team{}, fmt.Errorf("failed to create team: %w", err)
	}
	return t, nil
}

// Update implements team.Repository.
func (r *teamRepository) Update(ctx context.Context, t team.Team) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE teams SET name = $2, manager_id = $3, updated_at = NOW()
		WHERE id = $1
	`, t.ID, t.Name, t.ManagerID)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return team.ErrTeamNotFound
	}
	return nil
}

// Delete implements team.Repository.
func (r *teamRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return team.ErrTeamNotFound
	}
	return nil
}
