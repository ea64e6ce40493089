package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/leveling"
	"github.com/TheXbomber/budgify-server/internal/progress"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProgress(ctx context.Context, uc auth.UserContext) (*progress.Progress, error) {
	p := progress.Progress{UserID: uc.UserID, Level: 1, XP: 0}

	err := s.db.QueryRowContext(ctx,
		`SELECT level, xp FROM user_progress WHERE user_id = $1`, uc.UserID).
		Scan(&p.Level, &p.XP)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting progress: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT theme_name FROM user_themes WHERE user_id = $1 ORDER BY theme_name`, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing unlocked themes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning theme: %w", err)
		}

		p.UnlockedThemes = append(p.UnlockedThemes, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// A fresh user still holds the level-1 themes.
	if len(p.UnlockedThemes) == 0 {
		p.UnlockedThemes = leveling.ThemeNamesForLevel(p.Level)
	}

	return &p, nil
}

func (s *Store) SaveProgress(ctx context.Context, p *progress.Progress) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_progress (user_id, level, xp)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET level = EXCLUDED.level, xp = EXCLUDED.xp, updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, query, p.UserID, p.Level, p.XP); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}

	// Unlocks are monotonic: never delete, only add.
	themeQuery := `
		INSERT INTO user_themes (user_id, theme_name)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, name := range p.UnlockedThemes {
		if _, err := tx.ExecContext(ctx, themeQuery, p.UserID, name); err != nil {
			return fmt.Errorf("saving unlocked theme: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing progress: %w", err)
	}

	return nil
}
