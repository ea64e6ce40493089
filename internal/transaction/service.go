package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, uc auth.UserContext, tx *Transaction) error
	DeleteTransaction(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
	ListTransactions(ctx context.Context, uc auth.UserContext, filter ListFilter) ([]*Details, error)
}

// Recalculator recomputes an account balance from its ledger. Implemented
// by the ledger aggregator.
type Recalculator interface {
	Recalculate(ctx context.Context, uc auth.UserContext, accountID uuid.UUID) (decimal.Decimal, error)
}

type Notifier interface {
	Invalidate(userID uuid.UUID)
}

type Service struct {
	repo     Repository
	ledger   Recalculator
	notifier Notifier
}

func NewService(repo Repository, ledger Recalculator, notifier Notifier) *Service {
	return &Service{repo: repo, ledger: ledger, notifier: notifier}
}

type CreateParams struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Type        Type
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Location    *Location
}

type ListFilter struct {
	AccountID *uuid.UUID
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

// Create inserts the transaction and eagerly recomputes the referenced
// account's balance.
func (s *Service) Create(ctx context.Context, uc auth.UserContext, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		UserID:      uc.UserID,
		AccountID:   params.AccountID,
		CategoryID:  params.CategoryID,
		Type:        params.Type,
		Date:        params.Date,
		Description: params.Description,
		Amount:      params.Amount,
		Location:    params.Location,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Recalculate(ctx, uc, tx.AccountID); err != nil {
		return nil, fmt.Errorf("recomputing balance: %w", err)
	}

	s.notify(uc)

	return tx, nil
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, uc, id)
}

func (s *Service) List(ctx context.Context, uc auth.UserContext, filter ListFilter) ([]*Details, error) {
	return s.repo.ListTransactions(ctx, uc, filter)
}

// Update persists the modified transaction and recomputes the account it
// now references. When the update moved the transaction between accounts,
// the previous account is recomputed as well.
func (s *Service) Update(ctx context.Context, uc auth.UserContext, tx *Transaction) error {
	old, err := s.repo.GetTransaction(ctx, uc, tx.ID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTransaction(ctx, uc, tx); err != nil {
		return err
	}

	if old.AccountID != tx.AccountID {
		if _, err := s.ledger.Recalculate(ctx, uc, old.AccountID); err != nil {
			return fmt.Errorf("recomputing old account balance: %w", err)
		}
	}

	if _, err := s.ledger.Recalculate(ctx, uc, tx.AccountID); err != nil {
		return fmt.Errorf("recomputing balance: %w", err)
	}

	s.notify(uc)

	return nil
}

// Delete removes the transaction and recomputes the account it referenced.
func (s *Service) Delete(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, uc, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTransaction(ctx, uc, id); err != nil {
		return err
	}

	if _, err := s.ledger.Recalculate(ctx, uc, tx.AccountID); err != nil {
		return fmt.Errorf("recomputing balance: %w", err)
	}

	s.notify(uc)

	return nil
}

func (s *Service) notify(uc auth.UserContext) {
	if s.notifier != nil {
		s.notifier.Invalidate(uc.UserID)
	}
}
