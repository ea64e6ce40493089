package loan_test

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
	"github.com/TheXbomber/budgify-server/internal/loan"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()

	repo := loan.NewMockRepository(ctrl)
	opening := loan.NewMockOpeningSynthesizer(ctrl)
	notifier := loan.NewMockNotifier(ctrl)

	repo.EXPECT().
		CreateLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *loan.Loan) error {
			l.ID = uuid.New()
			return nil
		})

	// the opening transaction is synthesized against the chosen account
	opening.EXPECT().
		SynthesizeLoanOpening(gomock.Any(), uc, gomock.Any(), accountID).
		Return("", nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := loan.NewService(repo, opening, notifier)

	res, err := svc.Create(context.Background(), uc, loan.CreateParams{
		AccountID:   accountID,
		Type:        loan.TypeDebt,
		Description: "rent advance",
		Amount:      decimal.NewFromInt(300),
		StartDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.Loan.ID)
	assert.Empty(t, res.Warning)
}

func TestService_Create_OpeningFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := loan.NewMockRepository(ctrl)
	opening := loan.NewMockOpeningSynthesizer(ctrl)

	repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)
	opening.EXPECT().
		SynthesizeLoanOpening(gomock.Any(), uc, gomock.Any(), gomock.Any()).
		Return("", errors.New("account not found"))

	svc := loan.NewService(repo, opening, nil)

	_, err := svc.Create(context.Background(), uc, loan.CreateParams{
		Type:   loan.TypeCredit,
		Amount: decimal.NewFromInt(50),
	})
	assert.Error(t, err)
}

func TestService_Update(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	end := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	stored := loan.Loan{
		ID:          id,
		UserID:      uc.UserID,
		Type:        loan.TypeCredit,
		Description: "lent to sam",
		Amount:      decimal.NewFromInt(120),
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
	}

	t.Run("ClearEndDate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loan.NewMockRepository(ctrl)
		notifier := loan.NewMockNotifier(ctrl)

		l := stored

		repo.EXPECT().GetLoan(gomock.Any(), uc, id).Return(&l, nil)
		repo.EXPECT().UpdateLoan(gomock.Any(), uc, gomock.Any()).Return(nil)
		notifier.EXPECT().Invalidate(uc.UserID)

		svc := loan.NewService(repo, nil, notifier)

		updated, err := svc.Update(context.Background(), uc, id, loan.UpdateParams{ClearEnd: true})
		require.NoError(t, err)
		assert.Nil(t, updated.EndDate)
	})

	t.Run("CompletedIsTerminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loan.NewMockRepository(ctrl)

		l := stored
		l.Completed = true

		repo.EXPECT().GetLoan(gomock.Any(), uc, id).Return(&l, nil)

		svc := loan.NewService(repo, nil, nil)

		newDesc := "changed"

		_, err := svc.Update(context.Background(), uc, id, loan.UpdateParams{Description: &newDesc})
		assert.ErrorIs(t, err, loan.ErrCompleted)
	})
}
