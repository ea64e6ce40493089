package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/category"
)

type categoryResponse struct {
	ID          uuid.UUID     `json:"id"`
	Type        category.Type `json:"type"`
	Description string        `json:"description"`
	System      bool          `json:"system"`
	CreatedAt   time.Time     `json:"created_at"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Type:        c.Type,
		Description: c.Description,
		System:      c.System,
		CreatedAt:   c.CreatedAt,
	}
}

func toResponseList(categories []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toResponse(c)
	}

	return resp
}
