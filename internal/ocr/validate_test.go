package ocr_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheXbomber/budgify-server/internal/category"
	"github.com/TheXbomber/budgify-server/internal/ocr"
)

func TestValidate(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	groceriesID := uuid.New()
	categories := []*category.Category{
		{ID: groceriesID, Description: "Groceries", Type: category.TypeExpense},
		{ID: uuid.New(), Description: "Salary", Type: category.TypeIncome},
	}

	type testCase struct {
		name       string
		result     ocr.ScanResult
		wantAmount string
		wantDesc   string
		wantDate   time.Time
		wantCatID  *uuid.UUID
	}

	tests := []testCase{
		{
			name: "FullParse",
			result: ocr.ScanResult{
				Amount:      "42.50",
				Description: "SuperMarket receipt",
				Date:        "2024-06-10",
				Category:    "groceries",
			},
			wantAmount: "42.5",
			wantDesc:   "SuperMarket receipt",
			wantDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			wantCatID:  &groceriesID,
		},
		{
			name: "CommaDecimalSeparator",
			result: ocr.ScanResult{
				Amount: "17,90",
			},
			wantAmount: "17.9",
			wantDate:   today,
		},
		{
			name: "UnparseableAmountDefaultsToZero",
			result: ocr.ScanResult{
				Amount: "TOTAL",
			},
			wantAmount: "0",
			wantDate:   today,
		},
		{
			name: "NegativeAmountDefaultsToZero",
			result: ocr.ScanResult{
				Amount: "-5.00",
			},
			wantAmount: "0",
			wantDate:   today,
		},
		{
			name: "DescriptionFallsBackToFirstLine",
			result: ocr.ScanResult{
				RawText: "\n  \nACME Store\n123 Main St",
			},
			wantAmount: "0",
			wantDesc:   "ACME Store",
			wantDate:   today,
		},
		{
			name: "EuropeanDateLayout",
			result: ocr.ScanResult{
				Date: "10/06/2024",
			},
			wantAmount: "0",
			wantDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "UnknownDateBecomesToday",
			result: ocr.ScanResult{
				Date: "June the tenth",
			},
			wantAmount: "0",
			wantDate:   today,
		},
		{
			name: "UnknownCategoryDropped",
			result: ocr.ScanResult{
				Category: "Entertainment",
			},
			wantAmount: "0",
			wantDate:   today,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := ocr.Validate(&tt.result, categories, today)

			want, err := decimal.NewFromString(tt.wantAmount)
			require.NoError(t, err)

			assert.True(t, want.Equal(draft.Amount), "amount: want %s, got %s", want, draft.Amount)
			assert.Equal(t, tt.wantDesc, draft.Description)
			assert.True(t, tt.wantDate.Equal(draft.Date), "date: want %s, got %s", tt.wantDate, draft.Date)

			if tt.wantCatID == nil {
				assert.Nil(t, draft.CategoryID)
			} else {
				require.NotNil(t, draft.CategoryID)
				assert.Equal(t, *tt.wantCatID, *draft.CategoryID)
			}
		})
	}
}
