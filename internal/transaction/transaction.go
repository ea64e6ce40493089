package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the direction of a transaction. Amounts are stored as
// positive magnitudes; the sign is implied by the type.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Signed returns the amount with the sign implied by the type.
func (t Type) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TypeExpense {
		return amount.Neg()
	}

	return amount
}

// Location is an optional geotag captured when the transaction was recorded.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Transaction is one ledger entry against an account.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Type        Type
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Location    *Location
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Details carries a transaction with the titles its references resolve to,
// for list views. Category fields are nil for uncategorized entries.
type Details struct {
	Transaction
	AccountTitle        string
	CategoryDescription *string
}
