package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, uc auth.UserContext) ([]*Account, error)
	UpdateTitle(ctx context.Context, uc auth.UserContext, id uuid.UUID, title string) error
	DeleteAccount(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
}

// Notifier is signalled after any mutation so derived state can recompute.
type Notifier interface {
	Invalidate(userID uuid.UUID)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type CreateParams struct {
	Title         string
	InitialAmount decimal.Decimal
}

func (s *Service) Create(ctx context.Context, uc auth.UserContext, params CreateParams) (*Account, error) {
	a := &Account{
		UserID:        uc.UserID,
		Title:         params.Title,
		Amount:        params.InitialAmount,
		InitialAmount: params.InitialAmount,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	s.notify(uc)

	return a, nil
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, uc, id)
}

func (s *Service) List(ctx context.Context, uc auth.UserContext) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, uc)
}

// Rename changes the display title. The initial amount is an immutable
// baseline and the current amount is ledger-derived, so neither is editable.
func (s *Service) Rename(ctx context.Context, uc auth.UserContext, id uuid.UUID, title string) error {
	if err := s.repo.UpdateTitle(ctx, uc, id, title); err != nil {
		return err
	}

	s.notify(uc)

	return nil
}

// Delete removes the account; its transactions go with it.
func (s *Service) Delete(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	if err := s.repo.DeleteAccount(ctx, uc, id); err != nil {
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
