package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

const testSecret = "test-secret"

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *auth.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *auth.MockRepository) {
				repo.EXPECT().
					GetUserByEmail(gomock.Any(), "new@example.com").
					Return(nil, auth.ErrNotFound)
				repo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *auth.User) error {
						u.ID = uuid.New()

						assert.Equal(t, "new@example.com", u.Email)
						assert.NotEqual(t, "hunter2", u.PasswordHash)
						return nil
					})
			},
		},
		{
			name: "EmailTaken",
			setupMock: func(repo *auth.MockRepository) {
				repo.EXPECT().
					GetUserByEmail(gomock.Any(), "new@example.com").
					Return(&auth.User{ID: uuid.New()}, nil)
			},
			wantErr: auth.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := auth.NewService(repo, testSecret, time.Hour)

			u, err := svc.Register(context.Background(), "new@example.com", "hunter2")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, u.ID)
		})
	}
}

func TestService_LoginAndVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "me@example.com").
		Return(&auth.User{ID: userID, Email: "me@example.com", PasswordHash: string(hash)}, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	token, u, err := svc.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	// the issued token round-trips back to the same user
	uc, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, uc.UserID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), "me@example.com").
		Return(&auth.User{ID: uuid.New(), PasswordHash: string(hash)}, nil)

	svc := auth.NewService(repo, testSecret, time.Hour)

	_, _, err = svc.Login(context.Background(), "me@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_Verify_BadToken(t *testing.T) {
	svc := auth.NewService(nil, testSecret, time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	// token signed with a different secret is rejected
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().
		GetUserByEmail(gomock.Any(), gomock.Any()).
		Return(&auth.User{ID: uuid.New(), PasswordHash: string(hash)}, nil)

	other := auth.NewService(repo, "other-secret", time.Hour)

	token, _, err := other.Login(context.Background(), "x@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_VerifyPIN(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	hash, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.MinCost)
	require.NoError(t, err)

	pinHash := string(hash)

	type testCase struct {
		name     string
		security *auth.Security
		pin      string
		want     bool
		wantErr  error
	}

	tests := []testCase{
		{
			name:     "Match",
			security: &auth.Security{UserID: uc.UserID, PINHash: &pinHash},
			pin:      "12345",
			want:     true,
		},
		{
			name:     "MismatchIsFalseNotError",
			security: &auth.Security{UserID: uc.UserID, PINHash: &pinHash},
			pin:      "54321",
			want:     false,
		},
		{
			name:     "NoPINSet",
			security: &auth.Security{UserID: uc.UserID},
			pin:      "12345",
			wantErr:  auth.ErrPINNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := auth.NewMockRepository(ctrl)
			repo.EXPECT().GetSecurity(gomock.Any(), uc).Return(tt.security, nil)

			svc := auth.NewService(repo, testSecret, time.Hour)

			ok, err := svc.VerifyPIN(context.Background(), uc, tt.pin)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
