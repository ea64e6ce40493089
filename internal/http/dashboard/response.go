package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/account"
	"github.com/TheXbomber/budgify-server/internal/composer"
	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/loan"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

type accountResponse struct {
	ID     uuid.UUID       `json:"id"`
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
}

type transactionResponse struct {
	ID                  uuid.UUID        `json:"id"`
	AccountID           uuid.UUID        `json:"account_id"`
	AccountTitle        string           `json:"account_title"`
	CategoryDescription *string          `json:"category_description,omitempty"`
	Type                transaction.Type `json:"type"`
	Date                string           `json:"date"`
	Description         string           `json:"description"`
	Amount              decimal.Decimal  `json:"amount"`
}

type goalResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        goal.Type       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Completed   bool            `json:"completed"`
}

type loanResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        loan.Type       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date,omitempty"`
	Completed   bool            `json:"completed"`
}

type progressResponse struct {
	Level          int `json:"level"`
	XP             int `json:"xp"`
	XPForNextLevel int `json:"xp_for_next_level"`
}

type snapshotResponse struct {
	Accounts     []accountResponse     `json:"accounts"`
	Transactions []transactionResponse `json:"transactions"`
	Goals        []goalResponse        `json:"goals"`
	Loans        []loanResponse        `json:"loans"`
	Progress     *progressResponse     `json:"progress,omitempty"`

	TotalBalance      decimal.Decimal `json:"total_balance"`
	ActiveCreditTotal decimal.Decimal `json:"active_credit_total"`
	ActiveDebtTotal   decimal.Decimal `json:"active_debt_total"`
	CompletedCredits  int             `json:"completed_credits"`
	CompletedDebts    int             `json:"completed_debts"`

	GeneratedAt time.Time `json:"generated_at"`
}

func toResponse(snap *composer.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		Accounts:          make([]accountResponse, len(snap.Accounts)),
		Transactions:      make([]transactionResponse, len(snap.Transactions)),
		Goals:             make([]goalResponse, len(snap.Goals)),
		Loans:             make([]loanResponse, len(snap.Loans)),
		TotalBalance:      snap.TotalBalance,
		ActiveCreditTotal: snap.ActiveCreditTotal,
		ActiveDebtTotal:   snap.ActiveDebtTotal,
		CompletedCredits:  snap.CompletedCredits,
		CompletedDebts:    snap.CompletedDebts,
		GeneratedAt:       snap.GeneratedAt,
	}

	for i, a := range snap.Accounts {
		resp.Accounts[i] = toAccount(a)
	}

	for i, tx := range snap.Transactions {
		resp.Transactions[i] = toTransaction(tx)
	}

	for i, g := range snap.Goals {
		resp.Goals[i] = toGoal(g)
	}

	for i, l := range snap.Loans {
		resp.Loans[i] = toLoan(l)
	}

	if snap.Progress != nil {
		resp.Progress = &progressResponse{
			Level:          snap.Progress.Level,
			XP:             snap.Progress.XP,
			XPForNextLevel: snap.Progress.XPForNextLevel,
		}
	}

	return resp
}

func toAccount(a *account.Account) accountResponse {
	return accountResponse{ID: a.ID, Title: a.Title, Amount: a.Amount}
}

func toTransaction(d *transaction.Details) transactionResponse {
	return transactionResponse{
		ID:                  d.ID,
		AccountID:           d.AccountID,
		AccountTitle:        d.AccountTitle,
		CategoryDescription: d.CategoryDescription,
		Type:                d.Type,
		Date:                d.Date.Format(time.DateOnly),
		Description:         d.Description,
		Amount:              d.Amount,
	}
}

func toGoal(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Type:        g.Type,
		Description: g.Description,
		Amount:      g.Amount,
		StartDate:   g.StartDate.Format(time.DateOnly),
		EndDate:     g.EndDate.Format(time.DateOnly),
		Completed:   g.Completed,
	}
}

func toLoan(l *loan.Loan) loanResponse {
	resp := loanResponse{
		ID:          l.ID,
		Type:        l.Type,
		Description: l.Description,
		Amount:      l.Amount,
		StartDate:   l.StartDate.Format(time.DateOnly),
		Completed:   l.Completed,
	}
	if l.EndDate != nil {
		end := l.EndDate.Format(time.DateOnly)
		resp.EndDate = &end
	}

	return resp
}
