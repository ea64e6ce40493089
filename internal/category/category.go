package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrSystemCategory is returned when a caller tries to edit or delete
	// one of the reserved settlement categories.
	ErrSystemCategory = errors.New("system categories cannot be modified")
)

// Type classifies a category as spending or earning.
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Description string
	// System marks the reserved categories used for goal and loan
	// settlement transactions. They are hidden from pickers and immutable.
	System    bool
	CreatedAt time.Time
}

// The reserved per-user categories. Settlement transactions are filed under
// these; they are created once per user and never shown in pickers.
const (
	DescGoalExpense      = "Goals (Expense)"
	DescGoalIncome       = "Goals (Income)"
	DescCreditCollected  = "Credits collected"
	DescCreditContracted = "Credits contracted"
	DescDebtRepaid       = "Debts repaid"
	DescDebtContracted   = "Debts contracted"
)

// SystemCategories lists every reserved category with its type.
func SystemCategories() []Category {
	return []Category{
		{Description: DescGoalExpense, Type: TypeExpense, System: true},
		{Description: DescGoalIncome, Type: TypeIncome, System: true},
		{Description: DescCreditCollected, Type: TypeIncome, System: true},
		{Description: DescCreditContracted, Type: TypeExpense, System: true},
		{Description: DescDebtRepaid, Type: TypeExpense, System: true},
		{Description: DescDebtContracted, Type: TypeIncome, System: true},
	}
}
