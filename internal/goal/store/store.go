package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectGoalColumns = `id, user_id, type, description, amount, start_date, end_date, completed, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (*goal.Goal, error) {
	var (
		g       goal.Goal
		typeStr string
	)

	if err := s.Scan(
		&g.ID, &g.UserID, &typeStr, &g.Description, &g.Amount,
		&g.StartDate, &g.EndDate, &g.Completed, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	g.Type = goal.Type(typeStr)

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, type, description, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.UserID, g.Type, g.Description, g.Amount, g.StartDate, g.EndDate,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, uc.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, uc auth.UserContext) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE user_id = $1 ORDER BY end_date ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	return goals, rows.Err()
}

func (s *Store) UpdateGoal(ctx context.Context, uc auth.UserContext, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET type = $1, description = $2, amount = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7 AND completed = FALSE
	`

	res, err := s.db.ExecContext(ctx, query,
		g.Type, g.Description, g.Amount, g.StartDate, g.EndDate, g.ID, uc.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

// MarkCompleted flips the terminal completed flag. Rows already completed
// are not matched, which keeps completion idempotent at the store level.
func (s *Store) MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `
		UPDATE goals
		SET completed = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND completed = FALSE
	`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("completing goal: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func (s *Store) DeleteGoal(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func noneUpdatedAsNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
