package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectCategoryColumns = `id, user_id, type, description, system, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (*category.Category, error) {
	var (
		c       category.Category
		typeStr string
	)

	if err := s.Scan(&c.ID, &c.UserID, &typeStr, &c.Description, &c.System, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Type = category.Type(typeStr)

	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, type, description, system)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Type, c.Description, c.System).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id, uc.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) GetByDescription(ctx context.Context, uc auth.UserContext, description string) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE user_id = $1 AND description = $2`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, uc.UserID, description))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category by description: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, uc auth.UserContext, includeSystem bool) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE user_id = $1`
	if !includeSystem {
		query += ` AND system = FALSE`
	}

	query += ` ORDER BY description ASC`

	rows, err := s.db.QueryContext(ctx, query, uc.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, uc auth.UserContext, c *category.Category) error {
	query := `
		UPDATE categories
		SET type = $1, description = $2
		WHERE id = $3 AND user_id = $4 AND system = FALSE
	`

	res, err := s.db.ExecContext(ctx, query, c.Type, c.Description, c.ID, uc.UserID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1 AND user_id = $2 AND system = FALSE`

	res, err := s.db.ExecContext(ctx, query, id, uc.UserID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}
