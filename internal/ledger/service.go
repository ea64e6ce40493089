// Package ledger recomputes cached account balances from the transaction
// ledger: balance = initial amount + the signed sum of every transaction
// referencing the account.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger

// AccountStore provides the two account operations recomputation needs.
type AccountStore interface {
	GetAccount(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*account.Account, error)
	SetAmount(ctx context.Context, uc auth.UserContext, id uuid.UUID, amount decimal.Decimal) error
}

// TransactionSource lists an account's ledger in persisted insertion order.
type TransactionSource interface {
	ListByAccount(ctx context.Context, uc auth.UserContext, accountID uuid.UUID) ([]*transaction.Transaction, error)
}

type Service struct {
	accounts     AccountStore
	transactions TransactionSource
}

func NewService(accounts AccountStore, transactions TransactionSource) *Service {
	return &Service{accounts: accounts, transactions: transactions}
}

// Recalculate recomputes and persists the account's balance, returning the
// new value. Idempotent: with no intervening ledger mutation it always
// yields the same balance, since the accumulation order is the persisted
// insertion order.
func (s *Service) Recalculate(ctx context.Context, uc auth.UserContext, accountID uuid.UUID) (decimal.Decimal, error) {
	a, err := s.accounts.GetAccount(ctx, uc, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	txs, err := s.transactions.ListByAccount(ctx, uc, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := a.InitialAmount
	for _, tx := range txs {
		balance = balance.Add(tx.Type.Signed(tx.Amount))
	}

	if err := s.accounts.SetAmount(ctx, uc, accountID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("persisting balance: %w", err)
	}

	return balance, nil
}
