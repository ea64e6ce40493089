package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	CreateLoan(ctx context.Context, l *Loan) error
	GetLoan(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context, uc auth.UserContext) ([]*Loan, error)
	UpdateLoan(ctx context.Context, uc auth.UserContext, l *Loan) error
	MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
	DeleteLoan(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
}

// OpeningSynthesizer records the transaction implied by taking on a new
// loan: money arrives for a debt, leaves for a credit. Implemented by the
// completion package.
type OpeningSynthesizer interface {
	SynthesizeLoanOpening(ctx context.Context, uc auth.UserContext, l *Loan, accountID uuid.UUID) (warning string, err error)
}

type Notifier interface {
	Invalidate(userID uuid.UUID)
}

type Service struct {
	repo     Repository
	opening  OpeningSynthesizer
	notifier Notifier
}

func NewService(repo Repository, opening OpeningSynthesizer, notifier Notifier) *Service {
	return &Service{repo: repo, opening: opening, notifier: notifier}
}

type CreateParams struct {
	AccountID   uuid.UUID
	Type        Type
	Description string
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateResult carries the new loan plus any degraded-path warning from the
// opening transaction (a missing settlement category is recoverable).
type CreateResult struct {
	Loan    *Loan
	Warning string
}

// Create inserts the loan and synthesizes its opening transaction on the
// chosen account, dated at the loan's start date.
func (s *Service) Create(ctx context.Context, uc auth.UserContext, params CreateParams) (*CreateResult, error) {
	l := &Loan{
		UserID:      uc.UserID,
		Type:        params.Type,
		Description: params.Description,
		Amount:      params.Amount,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
	}
	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	warning, err := s.opening.SynthesizeLoanOpening(ctx, uc, l, params.AccountID)
	if err != nil {
		return nil, err
	}

	s.notify(uc)

	return &CreateResult{Loan: l, Warning: warning}, nil
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Loan, error) {
	return s.repo.GetLoan(ctx, uc, id)
}

func (s *Service) List(ctx context.Context, uc auth.UserContext) ([]*Loan, error) {
	return s.repo.ListLoans(ctx, uc)
}

type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
}

// Update edits a loan that has not completed yet. The type is fixed at
// creation; changing it would orphan the opening transaction's direction.
func (s *Service) Update(ctx context.Context, uc auth.UserContext, id uuid.UUID, params UpdateParams) (*Loan, error) {
	l, err := s.repo.GetLoan(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	if l.Completed {
		return nil, ErrCompleted
	}

	if params.Description != nil {
		l.Description = *params.Description
	}

	if params.Amount != nil {
		l.Amount = *params.Amount
	}

	if params.StartDate != nil {
		l.StartDate = *params.StartDate
	}

	if params.ClearEnd {
		l.EndDate = nil
	} else if params.EndDate != nil {
		l.EndDate = params.EndDate
	}

	if err := s.repo.UpdateLoan(ctx, uc, l); err != nil {
		return nil, err
	}

	s.notify(uc)

	return l, nil
}

func (s *Service) Delete(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	if err := s.repo.DeleteLoan(ctx, uc, id); err != nil {
		return err
	}

	s.notify(uc)

	return nil
}

func (s *Service) notify(uc auth.UserContext) {
	if s.notifier != nil {
		s.notifier.Invalidate(uc.UserID)
	}
}
