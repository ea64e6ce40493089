// Package completion turns a settled loan or achieved goal into its ledger
// footprint: exactly one synthesized transaction filed under the matching
// system category, plus the XP reward for the completion.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/category"
	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/leveling"
	"github.com/TheXbomber/budgify-server/internal/loan"
	"github.com/TheXbomber/budgify-server/internal/progress"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

// ErrAlreadyCompleted is returned when completing a loan or goal a second
// time. The second attempt performs no writes.
var ErrAlreadyCompleted = errors.New("already completed")

//go:generate mockgen -source=service.go -destination=deps_mock.go -package=completion

type LoanRepository interface {
	GetLoan(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*loan.Loan, error)
	MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
}

type GoalRepository interface {
	GetGoal(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*goal.Goal, error)
	MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
}

type CategoryFinder interface {
	FindByDescription(ctx context.Context, uc auth.UserContext, description string) (*category.Category, error)
}

// TransactionCreator inserts a transaction and recomputes the affected
// account balance. Satisfied by the transaction service.
type TransactionCreator interface {
	Create(ctx context.Context, uc auth.UserContext, params transaction.CreateParams) (*transaction.Transaction, error)
}

type XPAwarder interface {
	Award(ctx context.Context, uc auth.UserContext, gain int) (*progress.AwardResult, error)
}

type Synthesizer struct {
	loans        LoanRepository
	goals        GoalRepository
	categories   CategoryFinder
	transactions TransactionCreator
	awards       XPAwarder
	now          func() time.Time
}

func NewSynthesizer(
	loans LoanRepository,
	goals GoalRepository,
	categories CategoryFinder,
	transactions TransactionCreator,
	awards XPAwarder,
) *Synthesizer {
	return &Synthesizer{
		loans:        loans,
		goals:        goals,
		categories:   categories,
		transactions: transactions,
		awards:       awards,
		now:          time.Now,
	}
}

// Result reports what a completion produced.
type Result struct {
	Transaction *transaction.Transaction
	// Warning is set when the settlement category was missing and the
	// transaction was created uncategorized. Degraded, not fatal.
	Warning string
	XP      *progress.AwardResult
}

// CompleteLoan marks the loan completed (terminal), synthesizes its
// settlement transaction on the given account dated today, and awards the
// completion XP. Balance sufficiency is the caller's concern; no check
// happens here.
func (s *Synthesizer) CompleteLoan(ctx context.Context, uc auth.UserContext, loanID, accountID uuid.UUID) (*Result, error) {
	l, err := s.loans.GetLoan(ctx, uc, loanID)
	if err != nil {
		return nil, err
	}

	if l.Completed {
		return nil, ErrAlreadyCompleted
	}

	if err := s.loans.MarkCompleted(ctx, uc, loanID); err != nil {
		return nil, err
	}

	var (
		txType  transaction.Type
		catDesc string
	)

	switch l.Type {
	case loan.TypeDebt:
		txType = transaction.TypeExpense
		catDesc = category.DescDebtRepaid
	case loan.TypeCredit:
		txType = transaction.TypeIncome
		catDesc = category.DescCreditCollected
	default:
		return nil, fmt.Errorf("unknown loan type %q", l.Type)
	}

	res, err := s.synthesize(ctx, uc, accountID, txType, catDesc, s.now(), "Loan: "+l.Description, l)
	if err != nil {
		return nil, err
	}

	award, err := s.awards.Award(ctx, uc, leveling.XPForLoanCompletion(l, s.now()))
	if err != nil {
		return nil, fmt.Errorf("awarding xp: %w", err)
	}

	res.XP = award

	return res, nil
}

// CompleteGoal is the goal counterpart of CompleteLoan: the settlement
// keeps the goal's own direction.
func (s *Synthesizer) CompleteGoal(ctx context.Context, uc auth.UserContext, goalID, accountID uuid.UUID) (*Result, error) {
	g, err := s.goals.GetGoal(ctx, uc, goalID)
	if err != nil {
		return nil, err
	}

	if g.Completed {
		return nil, ErrAlreadyCompleted
	}

	if err := s.goals.MarkCompleted(ctx, uc, goalID); err != nil {
		return nil, err
	}

	var (
		txType  transaction.Type
		catDesc string
	)

	switch g.Type {
	case goal.TypeExpense:
		txType = transaction.TypeExpense
		catDesc = category.DescGoalExpense
	case goal.TypeIncome:
		txType = transaction.TypeIncome
		catDesc = category.DescGoalIncome
	default:
		return nil, fmt.Errorf("unknown goal type %q", g.Type)
	}

	res, err := s.synthesizeGoal(ctx, uc, accountID, txType, catDesc, g)
	if err != nil {
		return nil, err
	}

	award, err := s.awards.Award(ctx, uc, leveling.XPForGoalCompletion(g, s.now()))
	if err != nil {
		return nil, fmt.Errorf("awarding xp: %w", err)
	}

	res.XP = award

	return res, nil
}

// SynthesizeLoanOpening records the transaction implied by taking on a new
// loan: contracting a debt brings money in, extending a credit sends it
// out. Dated at the loan's start date; no XP is involved.
func (s *Synthesizer) SynthesizeLoanOpening(ctx context.Context, uc auth.UserContext, l *loan.Loan, accountID uuid.UUID) (string, error) {
	var (
		txType  transaction.Type
		catDesc string
	)

	switch l.Type {
	case loan.TypeDebt:
		txType = transaction.TypeIncome
		catDesc = category.DescDebtContracted
	case loan.TypeCredit:
		txType = transaction.TypeExpense
		catDesc = category.DescCreditContracted
	default:
		return "", fmt.Errorf("unknown loan type %q", l.Type)
	}

	res, err := s.synthesize(ctx, uc, accountID, txType, catDesc, l.StartDate, "Loan: "+l.Description, l)
	if err != nil {
		return "", err
	}

	return res.Warning, nil
}

func (s *Synthesizer) synthesize(
	ctx context.Context,
	uc auth.UserContext,
	accountID uuid.UUID,
	txType transaction.Type,
	catDesc string,
	date time.Time,
	description string,
	l *loan.Loan,
) (*Result, error) {
	categoryID, warning, err := s.resolveCategory(ctx, uc, catDesc)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactions.Create(ctx, uc, transaction.CreateParams{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        txType,
		Date:        date,
		Description: description,
		Amount:      l.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesizing transaction: %w", err)
	}

	return &Result{Transaction: tx, Warning: warning}, nil
}

func (s *Synthesizer) synthesizeGoal(
	ctx context.Context,
	uc auth.UserContext,
	accountID uuid.UUID,
	txType transaction.Type,
	catDesc string,
	g *goal.Goal,
) (*Result, error) {
	categoryID, warning, err := s.resolveCategory(ctx, uc, catDesc)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactions.Create(ctx, uc, transaction.CreateParams{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        txType,
		Date:        s.now(),
		Description: "Goal: " + g.Description,
		Amount:      g.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesizing transaction: %w", err)
	}

	return &Result{Transaction: tx, Warning: warning}, nil
}

// resolveCategory looks up the settlement category. A missing category is
// the degraded path: the transaction proceeds uncategorized with a warning
// for the caller.
func (s *Synthesizer) resolveCategory(ctx context.Context, uc auth.UserContext, desc string) (*uuid.UUID, string, error) {
	cat, err := s.categories.FindByDescription(ctx, uc, desc)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			slog.Warn("settlement category missing, transaction will be uncategorized", "category", desc)

			return nil, fmt.Sprintf("category %q not found; transaction created without category", desc), nil
		}

		return nil, "", err
	}

	return &cat.ID, "", nil
}
