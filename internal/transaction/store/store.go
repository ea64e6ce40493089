package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.user_id, t.account_id, t.category_id, t.type, t.date, t.description,
	t.amount, t.latitude, t.longitude, t.created_at, t.updated_at
`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx       transaction.Transaction
		typeStr  string
		lat, lon sql.NullFloat64
	)

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.AccountID, &tx.CategoryID, &typeStr, &tx.Date,
		&tx.Description, &tx.Amount, &lat, &lon, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	if lat.Valid && lon.Valid {
		tx.Location = &transaction.Location{Latitude: lat.Float64, Longitude: lon.Float64}
	}

	return &tx, nil
}

func locationColumns(tx *transaction.Transaction) (lat, lon sql.NullFloat64) {
	if tx.Location != nil {
		lat = sql.NullFloat64{Float64: tx.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: tx.Location.Longitude, Valid: true}
	}

	return lat, lon
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, account_id, category_id, type, date, description, amount, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	lat, lon := locationColumns(tx)

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.AccountID,
		tx.CategoryID,
		tx.Type,
		tx.Date,
		tx.Description,
		tx.Amount,
		lat,
		lon,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.user_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, uc.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ListByAccount returns the full ledger of one account in persisted
// insertion order, so balance recomputation accumulates stably.
func (s *Store) ListByAccount(ctx context.Context, uc auth.UserContext, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.account_id = $1 AND t.user_id = $2
		ORDER BY t.created_at ASC, t.id ASC`

	rows, err := s.db.QueryContext(ctx, query, accountID, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing account transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func (s *Store) ListTransactions(ctx context.Context, uc auth.UserContext, filter transaction.ListFilter) ([]*transaction.Details, error) {
	query := `SELECT ` + selectTransactionColumns + `, a.title, c.description
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`

	args := []any{uc.UserID}
	argIdx := 2

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date DESC, t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var details []*transaction.Details

	for rows.Next() {
		var (
			d        transaction.Details
			typeStr  string
			lat, lon sql.NullFloat64
			catDesc  sql.NullString
		)

		if err := rows.Scan(
			&d.ID, &d.UserID, &d.AccountID, &d.CategoryID, &typeStr, &d.Date,
			&d.Description, &d.Amount, &lat, &lon, &d.CreatedAt, &d.UpdatedAt,
			&d.AccountTitle, &catDesc,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction details: %w", err)
		}

		d.Type = transaction.Type(typeStr)

		if lat.Valid && lon.Valid {
			d.Location = &transaction.Location{Latitude: lat.Float64, Longitude: lon.Float64}
		}

		if catDesc.Valid {
			d.CategoryDescription = &catDesc.String
		}

		details = append(details, &d)
	}

	return details, rows.Err()
}

func (s *Store) UpdateTransaction(ctx context.Context, uc auth.UserContext, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, category_id = $2, type = $3, date = $4, description = $5,
		    amount = $6, latitude = $7, longitude = $8, updated_at = NOW()
		WHERE id = $9 AND user_id = $10
	`

	lat, lon := locationColumns(tx)

	res, err := s.db.ExecContext(ctx, query,
		tx.AccountID,
		tx.CategoryID,
		tx.Type,
		tx.Date,
		tx.Description,
		tx.Amount,
		lat,
		lon,
		tx.ID,
		uc.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
