// Package backup snapshots all of a user's data as one opaque JSON
// document and moves it to and from the remote storage endpoint. The
// storage side only ever sees the blob.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/loan"
	"github.com/TheXbomber/budgify-server/internal/progress"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

var ErrNoBackup = errors.New("no backup found")

// Archive is the full snapshot of one user's data.
type Archive struct {
	Version      int                        `json:"version"`
	CreatedAt    time.Time                  `json:"created_at"`
	Accounts     []*account.Account         `json:"accounts"`
	Categories   []ArchivedCategory         `json:"categories"`
	Transactions []*transaction.Transaction `json:"transactions"`
	Goals        []*goal.Goal               `json:"goals"`
	Loans        []*loan.Loan               `json:"loans"`
	Progress     *progress.Progress         `json:"progress"`
}

// ArchivedCategory keeps the system flag so a restore reproduces the
// reserved categories exactly.
type ArchivedCategory struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	System      bool      `json:"system"`
}

//go:generate mockgen -source=service.go -destination=deps_mock.go -package=backup

// Repository reads and replaces a user's rows wholesale.
type Repository interface {
	Export(ctx context.Context, uc auth.UserContext) (*Archive, error)
	// Replace swaps the user's data for the archive's contents in one
	// database transaction.
	Replace(ctx context.Context, uc auth.UserContext, a *Archive) error
}

// Recalculator rebuilds account balances after a restore.
type Recalculator interface {
	Recalculate(ctx context.Context, uc auth.UserContext, accountID uuid.UUID) (decimal.Decimal, error)
}

type Notifier interface {
	Invalidate(userID uuid.UUID)
}

type Service struct {
	repo     Repository
	endpoint string
	client   *http.Client
	ledger   Recalculator
	notifier Notifier
}

func NewService(repo Repository, endpoint string, timeout time.Duration, ledger Recalculator, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		ledger:   ledger,
		notifier: notifier,
	}
}

func (s *Service) backupURL(uc auth.UserContext) string {
	return fmt.Sprintf("%s/backups/%s", s.endpoint, uc.UserID)
}

// Backup exports the user's data and uploads it.
func (s *Service) Backup(ctx context.Context, uc auth.UserContext) error {
	archive, err := s.repo.Export(ctx, uc)
	if err != nil {
		return fmt.Errorf("exporting snapshot: %w", err)
	}

	body, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.backupURL(uc), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("uploading snapshot: unexpected status %d", resp.StatusCode)
	}

	return nil
}

// Restore downloads the user's snapshot and replaces their data with it.
// Account balances are not trusted from the archive; the ledger recomputes
// them afterwards.
func (s *Service) Restore(ctx context.Context, uc auth.UserContext) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.backupURL(uc), nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoBackup
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading snapshot: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var archive Archive
	if err := json.Unmarshal(body, &archive); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	if err := s.repo.Replace(ctx, uc, &archive); err != nil {
		return fmt.Errorf("replacing data: %w", err)
	}

	for _, a := range archive.Accounts {
		if _, err := s.ledger.Recalculate(ctx, uc, a.ID); err != nil {
			return fmt.Errorf("recomputing restored balance: %w", err)
		}
	}

	if s.notifier != nil {
		s.notifier.Invalidate(uc.UserID)
	}

	return nil
}
