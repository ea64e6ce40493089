package store

import (
	"context"
	"database/sql"
	"fmt"

	accountStore "github.com/TheXbomber/budgify-server/internal/account/store"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/backup"
	goalStore "github.com/TheXbomber/budgify-server/internal/goal/store"
	loanStore "github.com/TheXbomber/budgify-server/internal/loan/store"
	"github.com/TheXbomber/budgify-server/internal/progress"
	progressStore "github.com/TheXbomber/budgify-server/internal/progress/store"
	"github.com/TheXbomber/budgify-server/internal/transaction"
	transactionStore "github.com/TheXbomber/budgify-server/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Export reads every row the user owns. Reads go through the domain stores
// where one exists; categories keep their system flag, which the category
// store does not surface raw.
func (s *Store) Export(ctx context.Context, uc auth.UserContext) (*backup.Archive, error) {
	archive := &backup.Archive{Version: 1}

	var err error

	archive.Accounts, err = accountStore.New(s.db).ListAccounts(ctx, uc)
	if err != nil {
		return nil, err
	}

	archive.Goals, err = goalStore.New(s.db).ListGoals(ctx, uc)
	if err != nil {
		return nil, err
	}

	archive.Loans, err = loanStore.New(s.db).ListLoans(ctx, uc)
	if err != nil {
		return nil, err
	}

	prog, err := progressStore.New(s.db).GetProgress(ctx, uc)
	if err != nil {
		return nil, err
	}

	archive.Progress = prog

	if err := s.exportCategories(ctx, uc, archive); err != nil {
		return nil, err
	}

	if err := s.exportTransactions(ctx, uc, archive); err != nil {
		return nil, err
	}

	return archive, nil
}

func (s *Store) exportCategories(ctx context.Context, uc auth.UserContext, archive *backup.Archive) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, description, system FROM categories WHERE user_id = $1 ORDER BY created_at ASC`,
		uc.UserID)
	if err != nil {
		return fmt.Errorf("exporting categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c backup.ArchivedCategory
		if err := rows.Scan(&c.ID, &c.Type, &c.Description, &c.System); err != nil {
			return fmt.Errorf("scanning category: %w", err)
		}

		archive.Categories = append(archive.Categories, c)
	}

	return rows.Err()
}

func (s *Store) exportTransactions(ctx context.Context, uc auth.UserContext, archive *backup.Archive) error {
	// Rows in insertion order so a restore reproduces the ledger's
	// accumulation order.
	txStore := transactionStore.New(s.db)

	for _, a := range archive.Accounts {
		txs, err := txStore.ListByAccount(ctx, uc, a.ID)
		if err != nil {
			return err
		}

		archive.Transactions = append(archive.Transactions, txs...)
	}

	return nil
}

// Replace swaps the user's data for the archive's contents. Everything
// happens in one database transaction; a failure leaves prior data intact.
func (s *Store) Replace(ctx context.Context, uc auth.UserContext, a *backup.Archive) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning restore: %w", err)
	}
	defer tx.Rollback()

	// Transactions cascade from accounts; themes and progress from users.
	wipes := []string{
		`DELETE FROM transactions WHERE user_id = $1`,
		`DELETE FROM loans WHERE user_id = $1`,
		`DELETE FROM goals WHERE user_id = $1`,
		`DELETE FROM categories WHERE user_id = $1`,
		`DELETE FROM accounts WHERE user_id = $1`,
		`DELETE FROM user_themes WHERE user_id = $1`,
		`DELETE FROM user_progress WHERE user_id = $1`,
	}
	for _, q := range wipes {
		if _, err := tx.ExecContext(ctx, q, uc.UserID); err != nil {
			return fmt.Errorf("clearing data: %w", err)
		}
	}

	for _, acc := range a.Accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (id, user_id, title, amount, initial_amount, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			acc.ID, uc.UserID, acc.Title, acc.Amount, acc.InitialAmount, acc.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring account: %w", err)
		}
	}

	for _, c := range a.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, user_id, type, description, system)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.ID, uc.UserID, c.Type, c.Description, c.System,
		); err != nil {
			return fmt.Errorf("restoring category: %w", err)
		}
	}

	for _, t := range a.Transactions {
		lat, lon := locationColumns(t)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, user_id, account_id, category_id, type, date, description, amount, latitude, longitude, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			t.ID, uc.UserID, t.AccountID, t.CategoryID, t.Type, t.Date,
			t.Description, t.Amount, lat, lon, t.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring transaction: %w", err)
		}
	}

	for _, g := range a.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO goals (id, user_id, type, description, amount, start_date, end_date, completed, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			g.ID, uc.UserID, g.Type, g.Description, g.Amount, g.StartDate, g.EndDate, g.Completed, g.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring goal: %w", err)
		}
	}

	for _, l := range a.Loans {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO loans (id, user_id, type, description, amount, start_date, end_date, completed, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, uc.UserID, l.Type, l.Description, l.Amount, l.StartDate, l.EndDate, l.Completed, l.CreatedAt,
		); err != nil {
			return fmt.Errorf("restoring loan: %w", err)
		}
	}

	if err := restoreProgress(ctx, tx, uc, a.Progress); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing restore: %w", err)
	}

	return nil
}

func restoreProgress(ctx context.Context, tx *sql.Tx, uc auth.UserContext, p *progress.Progress) error {
	if p == nil {
		return nil
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, level, xp) VALUES ($1, $2, $3)`,
		uc.UserID, p.Level, p.XP,
	); err != nil {
		return fmt.Errorf("restoring progress: %w", err)
	}

	for _, name := range p.UnlockedThemes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_themes (user_id, theme_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			uc.UserID, name,
		); err != nil {
			return fmt.Errorf("restoring theme: %w", err)
		}
	}

	return nil
}

func locationColumns(t *transaction.Transaction) (lat, lon sql.NullFloat64) {
	if t.Location != nil {
		lat = sql.NullFloat64{Float64: t.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: t.Location.Longitude, Valid: true}
	}

	return lat, lon
}
