package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("account not found")

// Account is a money container. Amount is a cache derived from
// InitialAmount plus the signed sum of the account's transactions; it is
// recomputed eagerly after every ledger mutation.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Amount        decimal.Decimal
	InitialAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
