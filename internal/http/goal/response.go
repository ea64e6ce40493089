package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/completion"
	"github.com/TheXbomber/budgify-server/internal/goal"
)

type goalResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        goal.Type       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		Type:        g.Type,
		Description: g.Description,
		Amount:      g.Amount,
		StartDate:   g.StartDate.Format(time.DateOnly),
		EndDate:     g.EndDate.Format(time.DateOnly),
		Completed:   g.Completed,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
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
