package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/loan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectLoanColumns = `id, user_id, type, description, amount, start_date, end_date, completed, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(s scanner) (*loan.Loan, error) {
	var (
		l       loan.Loan
		typeStr string
		endDate sql.NullTime
	)

	if err := s.Scan(
		&l.ID, &l.UserID, &typeStr, &l.Description, &l.Amount,
		&l.StartDate, &endDate, &l.Completed, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	l.Type = loan.Type(typeStr)

	if endDate.Valid {
		l.EndDate = &endDate.Time
	}

	return &l, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (user_id, type, description, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.UserID, l.Type, l.Description, l.Amount, l.StartDate, l.EndDate,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE id = $1 AND user_id = $2`

	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id, uc.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, uc auth.UserContext) ([]*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	return loans, rows.Err()
}

func (s *Store) UpdateLoan(ctx context.Context, uc auth.UserContext, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET description = $1, amount = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6 AND completed = FALSE
	`

	res, err := s.db.ExecContext(ctx, query,
		l.Description, l.Amount, l.StartDate, l.EndDate, l.ID, uc.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

// MarkCompleted flips the terminal completed flag. Already-completed rows
// are not matched.
func (s *Store) MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `
		UPDATE loans
		SET completed = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND completed = FALSE
	`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("completing loan: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func (s *Store) DeleteLoan(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `DELETE FROM loans WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("deleting loan: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func noneUpdatedAsNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return loan.ErrNotFound
	}

	return nil
}
