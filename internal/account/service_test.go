package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := account.NewMockRepository(ctrl)
	notifier := account.NewMockNotifier(ctrl)

	repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *account.Account) error {
			a.ID = uuid.New()
			return nil
		})
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := account.NewService(repo, notifier)

	initial := decimal.RequireFromString("250.50")

	a, err := svc.Create(context.Background(), uc, account.CreateParams{
		Title:         "Checking",
		InitialAmount: initial,
	})
	require.NoError(t, err)

	// a fresh account's balance starts at the initial amount
	assert.True(t, initial.Equal(a.Amount))
	assert.True(t, initial.Equal(a.InitialAmount))
	assert.Equal(t, uc.UserID, a.UserID)
}

func TestService_Rename_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		UpdateTitle(gomock.Any(), uc, gomock.Any(), "Savings").
		Return(account.ErrNotFound)

	svc := account.NewService(repo, nil)

	err := svc.Rename(context.Background(), uc, uuid.New(), "Savings")
	assert.ErrorIs(t, err, account.ErrNotFound)
}
