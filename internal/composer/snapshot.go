package composer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/loan"
	"github.com/TheXbomber/budgify-server/internal/progress"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

// Snapshot is one consistent view of everything a dashboard needs. All
// inputs are loaded in one pass; a snapshot never mixes generations.
type Snapshot struct {
	Accounts     []*account.Account
	Transactions []*transaction.Details
	Goals        []*goal.Goal
	Loans        []*loan.Loan
	Progress     *progress.Status

	TotalBalance      decimal.Decimal
	ActiveCreditTotal decimal.Decimal
	ActiveDebtTotal   decimal.Decimal
	CompletedCredits  int
	CompletedDebts    int

	GeneratedAt time.Time
}

// Source produces snapshots.
type Source interface {
	Load(ctx context.Context, uc auth.UserContext) (*Snapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, uc auth.UserContext) (*Snapshot, error)

func (f SourceFunc) Load(ctx context.Context, uc auth.UserContext) (*Snapshot, error) {
	return f(ctx, uc)
}

type AccountLister interface {
	List(ctx context.Context, uc auth.UserContext) ([]*account.Account, error)
}

type TransactionLister interface {
	List(ctx context.Context, uc auth.UserContext, filter transaction.ListFilter) ([]*transaction.Details, error)
}

type GoalLister interface {
	List(ctx context.Context, uc auth.UserContext) ([]*goal.Goal, error)
}

type LoanLister interface {
	List(ctx context.Context, uc auth.UserContext) ([]*loan.Loan, error)
}

type ProgressReader interface {
	Get(ctx context.Context, uc auth.UserContext) (*progress.Status, error)
}

// Loader assembles snapshots from the domain services and derives the
// aggregate figures the homepage shows.
type Loader struct {
	accounts     AccountLister
	transactions TransactionLister
	goals        GoalLister
	loans        LoanLister
	progress     ProgressReader
}

func NewLoader(
	accounts AccountLister,
	transactions TransactionLister,
	goals GoalLister,
	loans LoanLister,
	progress ProgressReader,
) *Loader {
	return &Loader{
		accounts:     accounts,
		transactions: transactions,
		goals:        goals,
		loans:        loans,
		progress:     progress,
	}
}

func (l *Loader) Load(ctx context.Context, uc auth.UserContext) (*Snapshot, error) {
	accounts, err := l.accounts.List(ctx, uc)
	if err != nil {
		return nil, err
	}

	transactions, err := l.transactions.List(ctx, uc, transaction.ListFilter{})
	if err != nil {
		return nil, err
	}

	goals, err := l.goals.List(ctx, uc)
	if err != nil {
		return nil, err
	}

	loans, err := l.loans.List(ctx, uc)
	if err != nil {
		return nil, err
	}

	prog, err := l.progress.Get(ctx, uc)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Accounts:     accounts,
		Transactions: transactions,
		Goals:        goals,
		Loans:        loans,
		Progress:     prog,
		GeneratedAt:  time.Now(),
	}

	for _, a := range accounts {
		snap.TotalBalance = snap.TotalBalance.Add(a.Amount)
	}

	for _, ln := range loans {
		switch {
		case ln.Type == loan.TypeCredit && !ln.Completed:
			snap.ActiveCreditTotal = snap.ActiveCreditTotal.Add(ln.Amount)
		case ln.Type == loan.TypeDebt && !ln.Completed:
			snap.ActiveDebtTotal = snap.ActiveDebtTotal.Add(ln.Amount)
		case ln.Type == loan.TypeCredit:
			snap.CompletedCredits++
		case ln.Type == loan.TypeDebt:
			snap.CompletedDebts++
		}
	}

	return snap, nil
}
