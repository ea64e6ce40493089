package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("loan not found")
	// ErrCompleted is returned when editing a loan whose completion is
	// already terminal.
	ErrCompleted = errors.New("loan already completed")
)

// Type distinguishes money owed (debt) from money lent out (credit).
type Type string

const (
	TypeDebt   Type = "debt"
	TypeCredit Type = "credit"
)

// Loan is a peer credit or debt. EndDate is optional (open-ended loans).
// Completed is terminal; there is no un-complete operation.
type Loan struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Description string
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
