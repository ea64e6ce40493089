package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/ledger"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

func TestService_Recalculate(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()

	type testCase struct {
		name          string
		initialAmount decimal.Decimal
		transactions  []*transaction.Transaction
		want          decimal.Decimal
	}

	tests := []testCase{
		{
			name:          "EmptyLedgerKeepsInitialAmount",
			initialAmount: decimal.NewFromInt(500),
			want:          decimal.NewFromInt(500),
		},
		{
			name:          "MixedLedger",
			initialAmount: decimal.NewFromInt(100),
			transactions: []*transaction.Transaction{
				{Type: transaction.TypeIncome, Amount: decimal.NewFromInt(50)},
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(30)},
				{Type: transaction.TypeIncome, Amount: decimal.RequireFromString("0.75")},
			},
			want: decimal.RequireFromString("120.75"),
		},
		{
			name:          "ExpensesCanGoNegative",
			initialAmount: decimal.NewFromInt(10),
			transactions: []*transaction.Transaction{
				{Type: transaction.TypeExpense, Amount: decimal.NewFromInt(40)},
			},
			want: decimal.NewFromInt(-30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accounts := ledger.NewMockAccountStore(ctrl)
			transactions := ledger.NewMockTransactionSource(ctrl)

			accounts.EXPECT().
				GetAccount(gomock.Any(), uc, accountID).
				Return(&account.Account{ID: accountID, InitialAmount: tt.initialAmount}, nil)

			transactions.EXPECT().
				ListByAccount(gomock.Any(), uc, accountID).
				Return(tt.transactions, nil)

			var persisted decimal.Decimal
			accounts.EXPECT().
				SetAmount(gomock.Any(), uc, accountID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ auth.UserContext, _ uuid.UUID, amount decimal.Decimal) error {
					persisted = amount
					return nil
				})

			svc := ledger.NewService(accounts, transactions)

			got, err := svc.Recalculate(context.Background(), uc, accountID)
			require.NoError(t, err)

			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.True(t, tt.want.Equal(persisted), "persisted %s", persisted)
		})
	}
}

func TestService_Recalculate_AccountMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	accounts := ledger.NewMockAccountStore(ctrl)
	transactions := ledger.NewMockTransactionSource(ctrl)

	accounts.EXPECT().
		GetAccount(gomock.Any(), uc, gomock.Any()).
		Return(nil, account.ErrNotFound)

	svc := ledger.NewService(accounts, transactions)

	_, err := svc.Recalculate(context.Background(), uc, uuid.New())
	assert.True(t, errors.Is(err, account.ErrNotFound))
}
