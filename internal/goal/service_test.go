package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/goal"
)

func TestService_Create(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	notifier := goal.NewMockNotifier(ctrl)

	var created *goal.Goal

	repo.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, g *goal.Goal) error {
			created = g
			return nil
		})
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := goal.NewService(repo, notifier)

	params := goal.CreateParams{
		Type:        goal.TypeIncome,
		Description: "Emergency fund",
		Amount:      decimal.NewFromInt(1000),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	g, err := svc.Create(context.Background(), uc, params)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, uc.UserID, created.UserID)
	assert.Equal(t, goal.TypeIncome, created.Type)
	assert.True(t, params.Amount.Equal(created.Amount))
	assert.False(t, g.Completed)
}

func TestService_Delete(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		notifier := goal.NewMockNotifier(ctrl)

		repo.EXPECT().DeleteGoal(gomock.Any(), uc, id).Return(nil)
		notifier.EXPECT().Invalidate(uc.UserID)

		svc := goal.NewService(repo, notifier)

		require.NoError(t, svc.Delete(context.Background(), uc, id))
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		repo.EXPECT().DeleteGoal(gomock.Any(), uc, id).Return(goal.ErrNotFound)

		svc := goal.NewService(repo, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), uc, id), goal.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	stored := goal.Goal{
		ID:          id,
		UserID:      uc.UserID,
		Type:        goal.TypeExpense,
		Description: "New bike",
		Amount:      decimal.NewFromInt(400),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		notifier := goal.NewMockNotifier(ctrl)

		g := stored

		repo.EXPECT().GetGoal(gomock.Any(), uc, id).Return(&g, nil)
		repo.EXPECT().UpdateGoal(gomock.Any(), uc, gomock.Any()).Return(nil)
		notifier.EXPECT().Invalidate(uc.UserID)

		svc := goal.NewService(repo, notifier)

		newAmount := decimal.NewFromInt(500)

		updated, err := svc.Update(context.Background(), uc, id, goal.UpdateParams{Amount: &newAmount})
		require.NoError(t, err)

		assert.True(t, newAmount.Equal(updated.Amount))
		assert.Equal(t, "New bike", updated.Description)
	})

	t.Run("CompletedIsTerminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)

		g := stored
		g.Completed = true

		repo.EXPECT().GetGoal(gomock.Any(), uc, id).Return(&g, nil)

		svc := goal.NewService(repo, nil)

		newDesc := "changed"

		_, err := svc.Update(context.Background(), uc, id, goal.UpdateParams{Description: &newDesc})
		assert.ErrorIs(t, err, goal.ErrCompleted)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := goal.NewMockRepository(ctrl)
		repo.EXPECT().GetGoal(gomock.Any(), uc, id).Return(nil, goal.ErrNotFound)

		svc := goal.NewService(repo, nil)

		_, err := svc.Update(context.Background(), uc, id, goal.UpdateParams{})
		assert.ErrorIs(t, err, goal.ErrNotFound)
	})
}
