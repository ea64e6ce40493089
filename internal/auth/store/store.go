package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var u auth.User
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var u auth.User
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &u, nil
}

func (s *Store) GetSecurity(ctx context.Context, uc auth.UserContext) (*auth.Security, error) {
	query := `SELECT pin_hash, biometric_enabled FROM user_security WHERE user_id = $1`

	sec := auth.Security{UserID: uc.UserID}

	var pinHash sql.NullString

	err := s.db.QueryRowContext(ctx, query, uc.UserID).
		Scan(&pinHash, &sec.BiometricEnabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &sec, nil
		}

		return nil, fmt.Errorf("getting security settings: %w", err)
	}

	if pinHash.Valid {
		sec.PINHash = &pinHash.String
	}

	return &sec, nil
}

func (s *Store) SetPINHash(ctx context.Context, uc auth.UserContext, hash string) error {
	query := `
		INSERT INTO user_security (user_id, pin_hash)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET pin_hash = EXCLUDED.pin_hash, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, uc.UserID, hash); err != nil {
		return fmt.Errorf("setting pin: %w", err)
	}

	return nil
}

func (s *Store) SetBiometric(ctx context.Context, uc auth.UserContext, enabled bool) error {
	query := `
		INSERT INTO user_security (user_id, biometric_enabled)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET biometric_enabled = EXCLUDED.biometric_enabled, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, uc.UserID, enabled); err != nil {
		return fmt.Errorf("setting biometric flag: %w", err)
	}

	return nil
}
