package progress_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/progress"
)

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}

	repo := progress.NewMockRepository(ctrl)
	repo.EXPECT().
		GetProgress(gomock.Any(), uc).
		Return(&progress.Progress{UserID: uc.UserID, Level: 3, XP: 120}, nil)

	svc := progress.NewService(repo, nil)

	status, err := svc.Get(context.Background(), uc)
	require.NoError(t, err)

	assert.Equal(t, 3, status.Level)
	assert.Equal(t, 120, status.XP)
	assert.Equal(t, 450, status.XPForNextLevel)
}

func TestService_Award(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	type testCase struct {
		name         string
		stored       progress.Progress
		gain         int
		wantSave     bool
		wantLevel    int
		wantXP       int
		wantLeveled  bool
		wantUnlocked int
	}

	tests := []testCase{
		{
			name:      "ZeroGainIsNoop",
			stored:    progress.Progress{Level: 2, XP: 40},
			gain:      0,
			wantLevel: 2,
			wantXP:    40,
		},
		{
			name:         "LevelUpUnlocksTheme",
			stored:       progress.Progress{Level: 1, XP: 0, UnlockedThemes: []string{"LIGHT", "DARK"}},
			gain:         250,
			wantSave:     true,
			wantLevel:    2,
			wantXP:       150,
			wantLeveled:  true,
			wantUnlocked: 1,
		},
		{
			name:      "PlainGain",
			stored:    progress.Progress{Level: 2, XP: 10},
			gain:      30,
			wantSave:  true,
			wantLevel: 2,
			wantXP:    40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := progress.NewMockRepository(ctrl)
			notifier := progress.NewMockNotifier(ctrl)

			stored := tt.stored
			stored.UserID = uc.UserID

			repo.EXPECT().GetProgress(gomock.Any(), uc).Return(&stored, nil)

			if tt.wantSave {
				repo.EXPECT().
					SaveProgress(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *progress.Progress) error {
						assert.Equal(t, tt.wantLevel, p.Level)
						assert.Equal(t, tt.wantXP, p.XP)
						return nil
					})
				notifier.EXPECT().Invalidate(uc.UserID)
			}

			svc := progress.NewService(repo, notifier)

			res, err := svc.Award(context.Background(), uc, tt.gain)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLevel, res.Progress.Level)
			assert.Equal(t, tt.wantXP, res.Progress.XP)
			assert.Equal(t, tt.wantLeveled, res.LeveledUp)
			assert.Len(t, res.Unlocked, tt.wantUnlocked)
		})
	}
}
