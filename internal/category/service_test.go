package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/category"
)

func TestService_EnsureSystem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := category.NewMockRepository(ctrl)

	// one reserved category already exists, the rest get created
	existing := category.DescGoalExpense

	for _, sys := range category.SystemCategories() {
		if sys.Description == existing {
			repo.EXPECT().
				GetByDescription(gomock.Any(), uc, sys.Description).
				Return(&category.Category{ID: uuid.New(), Description: sys.Description, System: true}, nil)
			continue
		}

		repo.EXPECT().
			GetByDescription(gomock.Any(), uc, sys.Description).
			Return(nil, category.ErrNotFound)
		repo.EXPECT().
			CreateCategory(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *category.Category) error {
				assert.True(t, c.System)
				assert.Equal(t, uc.UserID, c.UserID)
				return nil
			})
	}

	svc := category.NewService(repo, nil)

	require.NoError(t, svc.EnsureSystem(context.Background(), uc))
}

func TestService_Update_SystemCategoryRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		GetCategory(gomock.Any(), uc, id).
		Return(&category.Category{ID: id, Description: category.DescDebtRepaid, System: true}, nil)

	svc := category.NewService(repo, nil)

	newDesc := "Renamed"

	_, err := svc.Update(context.Background(), uc, id, category.UpdateParams{Description: &newDesc})
	assert.ErrorIs(t, err, category.ErrSystemCategory)
}

func TestService_Delete_SystemCategoryRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		GetCategory(gomock.Any(), uc, id).
		Return(&category.Category{ID: id, System: true}, nil)

	svc := category.NewService(repo, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), uc, id), category.ErrSystemCategory)
}

func TestService_Update_UserCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	id := uuid.New()

	repo := category.NewMockRepository(ctrl)
	notifier := category.NewMockNotifier(ctrl)

	repo.EXPECT().
		GetCategory(gomock.Any(), uc, id).
		Return(&category.Category{ID: id, Type: category.TypeExpense, Description: "Food"}, nil)
	repo.EXPECT().
		UpdateCategory(gomock.Any(), uc, gomock.Any()).
		Return(nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := category.NewService(repo, notifier)

	newType := category.TypeIncome

	c, err := svc.Update(context.Background(), uc, id, category.UpdateParams{Type: &newType})
	require.NoError(t, err)
	assert.Equal(t, category.TypeIncome, c.Type)
	assert.Equal(t, "Food", c.Description)
}
