package ocr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/category"
)

// Draft is a scan result reduced to values safe to prefill a transaction
// form with. Nothing here is persisted until the user confirms it.
type Draft struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  *uuid.UUID
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// Validate sanitizes an untrusted scan result. An unparseable or negative
// amount defaults to zero; a missing description falls back to the first
// non-empty line of the raw text; an unknown date becomes today; the
// category is matched case-insensitively against the user's visible
// categories and dropped otherwise.
func Validate(res *ScanResult, categories []*category.Category, today time.Time) Draft {
	draft := Draft{Date: today}

	if amount, err := decimal.NewFromString(normalizeAmount(res.Amount)); err == nil && !amount.IsNegative() {
		draft.Amount = amount
	}

	draft.Description = strings.TrimSpace(res.Description)
	if draft.Description == "" {
		draft.Description = firstLine(res.RawText)
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, strings.TrimSpace(res.Date)); err == nil {
			draft.Date = d
			break
		}
	}

	if want := strings.TrimSpace(res.Category); want != "" {
		for _, c := range categories {
			if strings.EqualFold(c.Description, want) {
				id := c.ID
				draft.CategoryID = &id

				break
			}
		}
	}

	return draft
}

func normalizeAmount(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
