package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPINNotSet          = errors.New("pin not set")
)

// User is a registered owner of a budget. Every query in the system is
// scoped to exactly one user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserContext carries the authenticated user identity. It is passed
// explicitly to every query and command instead of living in shared state.
type UserContext struct {
	UserID uuid.UUID
}

// Security holds the access-lock settings kept outside the main entities.
// PINHash is never exposed to clients.
type Security struct {
	UserID           uuid.UUID
	PINHash          *string
	BiometricEnabled bool
}
