package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/transaction"
)

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type transactionResponse struct {
	ID          uuid.UUID         `json:"id"`
	AccountID   uuid.UUID         `json:"account_id"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Type        transaction.Type  `json:"type"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Location    *locationResponse `json:"location,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type detailsResponse struct {
	transactionResponse
	AccountTitle        string  `json:"account_title"`
	CategoryDescription *string `json:"category_description,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		Type:        tx.Type,
		Date:        tx.Date.Format(time.DateOnly),
		Description: tx.Description,
		Amount:      tx.Amount,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
	if tx.Location != nil {
		resp.Location = &locationResponse{
			Latitude:  tx.Location.Latitude,
			Longitude: tx.Location.Longitude,
		}
	}

	return resp
}

func toDetailsList(details []*transaction.Details) []detailsResponse {
	resp := make([]detailsResponse, len(details))
	for i, d := range details {
		resp[i] = detailsResponse{
			transactionResponse: toResponse(&d.Transaction),
			AccountTitle:        d.AccountTitle,
			CategoryDescription: d.CategoryDescription,
		}
	}

	return resp
}
