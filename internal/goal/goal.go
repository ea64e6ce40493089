package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("goal not found")
	// ErrCompleted is returned when editing a goal whose completion is
	// already terminal.
	ErrCompleted = errors.New("goal already completed")
)

// Type mirrors the transaction direction the goal settles as.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Goal is a budgeting objective with a target amount and a deadline.
// Completed is terminal; there is no un-complete operation.
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Description string
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
