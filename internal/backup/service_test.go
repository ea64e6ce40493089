package backup_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/backup"
)

func TestService_Backup(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	archive := &backup.Archive{
		Version:   1,
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []*account.Account{
			{ID: uuid.New(), UserID: uc.UserID, Title: "Checking"},
		},
	}

	var gotMethod, gotPath string
	var gotBody backup.Archive

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := backup.NewMockRepository(ctrl)
	repo.EXPECT().Export(gomock.Any(), uc).Return(archive, nil)

	svc := backup.NewService(repo, ts.URL, time.Second, nil, nil)

	err := svc.Backup(context.Background(), uc)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, fmt.Sprintf("/backups/%s", uc.UserID), gotPath)
	assert.Len(t, gotBody.Accounts, 1)
	assert.Equal(t, "Checking", gotBody.Accounts[0].Title)
}

func TestService_Restore(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	firstID := uuid.New()
	secondID := uuid.New()

	archive := &backup.Archive{
		Version:   1,
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Accounts: []*account.Account{
			{ID: firstID, UserID: uc.UserID, Title: "Checking"},
			{ID: secondID, UserID: uc.UserID, Title: "Savings"},
		},
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, fmt.Sprintf("/backups/%s", uc.UserID), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")

		require.NoError(t, json.NewEncoder(w).Encode(archive))
	}))
	defer ts.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := backup.NewMockRepository(ctrl)
	ledger := backup.NewMockRecalculator(ctrl)
	notifier := backup.NewMockNotifier(ctrl)

	var replaced *backup.Archive

	repo.EXPECT().Replace(gomock.Any(), uc, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ auth.UserContext, a *backup.Archive) error {
			replaced = a
			return nil
		})

	// Archived balances are stale; every restored account is recomputed.
	ledger.EXPECT().Recalculate(gomock.Any(), uc, firstID).Return(decimal.Zero, nil)
	ledger.EXPECT().Recalculate(gomock.Any(), uc, secondID).Return(decimal.Zero, nil)
	notifier.EXPECT().Invalidate(uc.UserID)

	svc := backup.NewService(repo, ts.URL, time.Second, ledger, notifier)

	err := svc.Restore(context.Background(), uc)
	require.NoError(t, err)

	require.NotNil(t, replaced)
	assert.Len(t, replaced.Accounts, 2)
	assert.Equal(t, "Savings", replaced.Accounts[1].Title)
}

func TestService_Restore_NoBackup(t *testing.T) {
	uc := auth.UserContext{UserID: uuid.New()}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := backup.NewMockRepository(ctrl)

	svc := backup.NewService(repo, ts.URL, time.Second, nil, nil)

	err := svc.Restore(context.Background(), uc)
	assert.ErrorIs(t, err, backup.ErrNoBackup)
}
