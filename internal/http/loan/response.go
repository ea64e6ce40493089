package loan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/completion"
	"github.com/TheXbomber/budgify-server/internal/loan"
)

type loanResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        loan.Type       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date,omitempty"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(l *loan.Loan) loanResponse {
	resp := loanResponse{
		ID:          l.ID,
		Type:        l.Type,
		Description: l.Description,
		Amount:      l.Amount,
		StartDate:   l.StartDate.Format(time.DateOnly),
		Completed:   l.Completed,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.EndDate != nil {
		end := l.EndDate.Format(time.DateOnly)
		resp.EndDate = &end
	}

	return resp
}

func toResponseList(loans []*loan.Loan) []loanResponse {
	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	return resp
}

type createLoanResponse struct {
	loanResponse
	Warning string `json:"warning,omitempty"`
}

func toCreateResponse(res *loan.CreateResult) createLoanResponse {
	return createLoanResponse{
		loanResponse: toResponse(res.Loan),
		Warning:      res.Warning,
	}
}

type unlockedThemeResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type xpResponse struct {
	Level          int                     `json:"level"`
	XP             int                     `json:"xp"`
	XPGained       int                     `json:"xp_gained"`
	LeveledUp      bool                    `json:"leveled_up"`
	UnlockedThemes []unlockedThemeResponse `json:"unlocked_themes,omitempty"`
}

type completionResponse struct {
	TransactionID uuid.UUID   `json:"transaction_id"`
	Warning       string      `json:"warning,omitempty"`
	XP            *xpResponse `json:"xp,omitempty"`
}

func toCompletionResponse(res *completion.Result) completionResponse {
	resp := completionResponse{
		TransactionID: res.Transaction.ID,
		Warning:       res.Warning,
	}
	if res.XP != nil {
		xp := &xpResponse{
			Level:     res.XP.Progress.Level,
			XP:        res.XP.Progress.XP,
			XPGained:  res.XP.XPGained,
			LeveledUp: res.XP.LeveledUp,
		}
		for _, t := range res.XP.Unlocked {
			xp.UnlockedThemes = append(xp.UnlockedThemes, unlockedThemeResponse{
				Name:        t.Name,
				DisplayName: t.DisplayName,
			})
		}

		resp.XP = xp
	}

	return resp
}
