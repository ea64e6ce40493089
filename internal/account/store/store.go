package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectAccountColumns = `id, user_id, title, amount, initial_amount, created_at, updated_at`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	if err := s.Scan(
		&a.ID, &a.UserID, &a.Title, &a.Amount, &a.InitialAmount,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (user_id, title, amount, initial_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.UserID, a.Title, a.Amount, a.InitialAmount).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id, uc.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, uc auth.UserContext) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (s *Store) UpdateTitle(ctx context.Context, uc auth.UserContext, id uuid.UUID, title string) error {
	query := `
		UPDATE accounts
		SET title = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, title, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("renaming account: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

// SetAmount persists a recomputed balance. Only the ledger aggregator
// should call this.
func (s *Store) SetAmount(ctx context.Context, uc auth.UserContext, id uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE accounts
		SET amount = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, amount, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("setting account amount: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func (s *Store) DeleteAccount(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return noneUpdatedAsNotFound(res)
}

func noneUpdatedAsNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return account.ErrNotFound
	}

	return nil
}
