package completion_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/category"
	"github.com/TheXbomber/budgify-server/internal/completion"
	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/loan"
	"github.com/TheXbomber/budgify-server/internal/progress"
	"github.com/TheXbomber/budgify-server/internal/transaction"
)

type synthMocks struct {
	loans        *completion.MockLoanRepository
	goals        *completion.MockGoalRepository
	categories   *completion.MockCategoryFinder
	transactions *completion.MockTransactionCreator
	awards       *completion.MockXPAwarder
}

func newSynthesizer(ctrl *gomock.Controller) (*completion.Synthesizer, synthMocks) {
	m := synthMocks{
		loans:        completion.NewMockLoanRepository(ctrl),
		goals:        completion.NewMockGoalRepository(ctrl),
		categories:   completion.NewMockCategoryFinder(ctrl),
		transactions: completion.NewMockTransactionCreator(ctrl),
		awards:       completion.NewMockXPAwarder(ctrl),
	}

	return completion.NewSynthesizer(m.loans, m.goals, m.categories, m.transactions, m.awards), m
}

func TestSynthesizer_CompleteLoan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	loanID := uuid.New()
	accountID := uuid.New()
	catID := uuid.New()

	// no end date, so the on-time bonus applies regardless of the clock:
	// max(50/15, 8) = 8, +20 debt, +5% of 28 = 1
	debt := &loan.Loan{
		ID:     loanID,
		Type:   loan.TypeDebt,
		Amount: decimal.NewFromInt(50),
	}

	svc, m := newSynthesizer(ctrl)

	m.loans.EXPECT().GetLoan(gomock.Any(), uc, loanID).Return(debt, nil)
	m.loans.EXPECT().MarkCompleted(gomock.Any(), uc, loanID).Return(nil)
	m.categories.EXPECT().
		FindByDescription(gomock.Any(), uc, category.DescDebtRepaid).
		Return(&category.Category{ID: catID, Description: category.DescDebtRepaid}, nil)

	var created transaction.CreateParams
	m.transactions.EXPECT().
		Create(gomock.Any(), uc, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ auth.UserContext, params transaction.CreateParams) (*transaction.Transaction, error) {
			created = params
			return &transaction.Transaction{ID: uuid.New(), AccountID: params.AccountID}, nil
		})

	m.awards.EXPECT().
		Award(gomock.Any(), uc, 29).
		Return(&progress.AwardResult{XPGained: 29, Progress: progress.Progress{Level: 1, XP: 29}}, nil)

	res, err := svc.CompleteLoan(context.Background(), uc, loanID, accountID)
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)

	assert.Equal(t, accountID, created.AccountID)
	assert.Equal(t, transaction.TypeExpense, created.Type)
	assert.Equal(t, "Loan: ", created.Description)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, catID, *created.CategoryID)
	assert.True(t, debt.Amount.Equal(created.Amount))

	assert.Empty(t, res.Warning)
	require.NotNil(t, res.XP)
	assert.Equal(t, 29, res.XP.XPGained)
}

func TestSynthesizer_CompleteLoan_AlreadyCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	loanID := uuid.New()

	svc, m := newSynthesizer(ctrl)

	m.loans.EXPECT().
		GetLoan(gomock.Any(), uc, loanID).
		Return(&loan.Loan{ID: loanID, Completed: true}, nil)

	_, err := svc.CompleteLoan(context.Background(), uc, loanID, uuid.New())
	assert.ErrorIs(t, err, completion.ErrAlreadyCompleted)
}

func TestSynthesizer_CompleteGoal_MissingCategoryDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	goalID := uuid.New()
	accountID := uuid.New()

	// long past due, so the reward is the time-independent base:
	// max(200/10, 5) = 20
	g := &goal.Goal{
		ID:        goalID,
		Type:      goal.TypeIncome,
		Amount:    decimal.NewFromInt(200),
		StartDate: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	svc, m := newSynthesizer(ctrl)

	m.goals.EXPECT().GetGoal(gomock.Any(), uc, goalID).Return(g, nil)
	m.goals.EXPECT().MarkCompleted(gomock.Any(), uc, goalID).Return(nil)
	m.categories.EXPECT().
		FindByDescription(gomock.Any(), uc, category.DescGoalIncome).
		Return(nil, category.ErrNotFound)

	var created transaction.CreateParams
	m.transactions.EXPECT().
		Create(gomock.Any(), uc, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ auth.UserContext, params transaction.CreateParams) (*transaction.Transaction, error) {
			created = params
			return &transaction.Transaction{ID: uuid.New()}, nil
		})

	m.awards.EXPECT().
		Award(gomock.Any(), uc, 20).
		Return(&progress.AwardResult{XPGained: 20}, nil)

	res, err := svc.CompleteGoal(context.Background(), uc, goalID, accountID)
	require.NoError(t, err)

	assert.Nil(t, created.CategoryID)
	assert.Equal(t, transaction.TypeIncome, created.Type)
	assert.NotEmpty(t, res.Warning)
}

func TestSynthesizer_SynthesizeLoanOpening(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := auth.UserContext{UserID: uuid.New()}
	accountID := uuid.New()
	catID := uuid.New()
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name     string
		loanType loan.Type
		wantType transaction.Type
		wantCat  string
	}

	tests := []testCase{
		{
			name:     "DebtBringsMoneyIn",
			loanType: loan.TypeDebt,
			wantType: transaction.TypeIncome,
			wantCat:  category.DescDebtContracted,
		},
		{
			name:     "CreditSendsMoneyOut",
			loanType: loan.TypeCredit,
			wantType: transaction.TypeExpense,
			wantCat:  category.DescCreditContracted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newSynthesizer(ctrl)

			l := &loan.Loan{
				ID:          uuid.New(),
				Type:        tt.loanType,
				Description: "bike",
				Amount:      decimal.NewFromInt(75),
				StartDate:   start,
			}

			m.categories.EXPECT().
				FindByDescription(gomock.Any(), uc, tt.wantCat).
				Return(&category.Category{ID: catID}, nil)

			var created transaction.CreateParams
			m.transactions.EXPECT().
				Create(gomock.Any(), uc, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ auth.UserContext, params transaction.CreateParams) (*transaction.Transaction, error) {
					created = params
					return &transaction.Transaction{ID: uuid.New()}, nil
				})

			warning, err := svc.SynthesizeLoanOpening(context.Background(), uc, l, accountID)
			require.NoError(t, err)
			assert.Empty(t, warning)

			assert.Equal(t, tt.wantType, created.Type)
			assert.Equal(t, "Loan: bike", created.Description)
			assert.True(t, created.Date.Equal(start))
		})
	}
}
