package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

func TestService_Create(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(repo *transaction.MockRepository, ledger *transaction.MockRecalculator, notifier *transaction.MockNotifier)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *transaction.MockRepository, ledger *transaction.MockRecalculator, notifier *transaction.MockNotifier) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
				ledger.EXPECT().
					Recalculate(gomock.Any(), uc, accountID).
					Return(decimal.NewFromInt(90), nil)
				notifier.EXPECT().Invalidate(uc.UserID)
			},
		},
		{
			name: "RepoError",
			setupMock: func(repo *transaction.MockRepository, ledger *transaction.MockRecalculator, notifier *transaction.MockNotifier) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "RecalculateError",
			setupMock: func(repo *transaction.MockRepository, ledger *transaction.MockRecalculator, notifier *transaction.MockNotifier) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
				ledger.EXPECT().
					Recalculate(gomock.Any(), uc, accountID).
					Return(decimal.Zero, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			ledger := transaction.NewMockRecalculator(ctrl)
			notifier := transaction.NewMockNotifier(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, ledger, notifier)
			}

			svc := transaction.NewService(repo, ledger, notifier)

			got, err := svc.Create(context.Background(), uc, transaction.CreateParams{
				AccountID:   accountID,
				Type:        transaction.TypeExpense,
				Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Description: "groceries",
				Amount:      decimal.NewFromInt(10),
			})

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, uc.UserID, got.UserID)
		})
	}
}

func TestService_Update_MovedBetweenAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	oldAccount := uuid.New()
	newAccount := uuid.New()
	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewMockRecalculator(ctrl)
	notifier := transaction.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetTransaction(gomock.Any(), uc, txID).
		Return(&transaction.Transaction{ID: txID, AccountID: oldAccount}, nil)
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), uc, gomock.Any()).
		Return(nil)

	// both the vacated and the receiving account are recomputed
	ledger.EXPECT().Recalculate(gomock.Any(), uc, oldAccount).Return(decimal.Zero, nil)
	ledger.EXPECT().Recalculate(gomock.Any(), uc, newAccount).Return(decimal.Zero, nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := transaction.NewService(repo, ledger, notifier)

	err := svc.Update(context.Background(), uc, &transaction.Transaction{
		ID:        txID,
		AccountID: newAccount,
		Type:      transaction.TypeIncome,
		Amount:    decimal.NewFromInt(5),
	})
	require.NoError(t, err)
}

func TestService_Update_SameAccountRecomputesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()
	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewMockRecalculator(ctrl)
	notifier := transaction.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetTransaction(gomock.Any(), uc, txID).
		Return(&transaction.Transaction{ID: txID, AccountID: accountID}, nil)
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), uc, gomock.Any()).
		Return(nil)
	ledger.EXPECT().Recalculate(gomock.Any(), uc, accountID).Return(decimal.Zero, nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := transaction.NewService(repo, ledger, notifier)

	err := svc.Update(context.Background(), uc, &transaction.Transaction{
		ID:        txID,
		AccountID: accountID,
		Type:      transaction.TypeExpense,
		Amount:    decimal.NewFromInt(12),
	})
	require.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()
	txID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewMockRecalculator(ctrl)
	notifier := transaction.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetTransaction(gomock.Any(), uc, txID).
		Return(&transaction.Transaction{ID: txID, AccountID: accountID}, nil)
	repo.EXPECT().DeleteTransaction(gomock.Any(), uc, txID).Return(nil)
	ledger.EXPECT().Recalculate(gomock.Any(), uc, accountID).Return(decimal.Zero, nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := transaction.NewService(repo, ledger, notifier)

	require.NoError(t, svc.Delete(context.Background(), uc, txID))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := transaction.NewMockRepository(ctrl)
	ledger := transaction.NewMockRecalculator(ctrl)
	notifier := transaction.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetTransaction(gomock.Any(), uc, gomock.Any()).
		Return(nil, transaction.ErrNotFound)

	svc := transaction.NewService(repo, ledger, notifier)

	err := svc.Delete(context.Background(), uc, uuid.New())
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}
