package leveling_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/leveling"
	"github.com/TheXbomber/budgify-server/internal/loan"
)

func TestXPForNextLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{level: 0, want: 100},
		{level: 1, want: 100},
		{level: 2, want: 250},
		{level: 3, want: 450},
		{level: 10, want: 1450},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, leveling.XPForNextLevel(tt.level), "level %d", tt.level)
	}
}

func TestAddXP(t *testing.T) {
	type testCase struct {
		name          string
		level, xp     int
		gain          int
		unlocked      map[string]bool
		wantLevel     int
		wantXP        int
		wantLeveledUp bool
		wantUnlocked  []string
	}

	tests := []testCase{
		{
			name:      "NoGain",
			level:     3,
			xp:        42,
			gain:      0,
			wantLevel: 3,
			wantXP:    42,
		},
		{
			name:      "NegativeGain",
			level:     2,
			xp:        10,
			gain:      -50,
			wantLevel: 2,
			wantXP:    10,
		},
		{
			name:      "BelowThreshold",
			level:     1,
			xp:        0,
			gain:      99,
			wantLevel: 1,
			wantXP:    99,
		},
		{
			name:          "SingleLevelUpWithCarry",
			level:         1,
			xp:            0,
			gain:          250,
			wantLevel:     2,
			wantXP:        150,
			wantLeveledUp: true,
			wantUnlocked:  []string{"MINTY_FRESH"},
		},
		{
			name:          "DoubleLevelUp",
			level:         1,
			xp:            50,
			gain:          350,
			wantLevel:     3,
			wantXP:        50,
			wantLeveledUp: true,
			wantUnlocked:  []string{"MINTY_FRESH", "OCEAN_BLUE"},
		},
		{
			name:          "AlreadyUnlockedThemeSkipped",
			level:         1,
			xp:            0,
			gain:          100,
			unlocked:      map[string]bool{"MINTY_FRESH": true},
			wantLevel:     2,
			wantXP:        0,
			wantLeveledUp: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := leveling.AddXP(tt.level, tt.xp, tt.gain, tt.unlocked)

			assert.Equal(t, tt.wantLevel, res.Level)
			assert.Equal(t, tt.wantXP, res.XP)
			assert.Equal(t, tt.wantLeveledUp, res.LeveledUp)

			var names []string
			for _, theme := range res.Unlocked {
				names = append(names, theme.Name)
			}

			assert.Equal(t, tt.wantUnlocked, names)
		})
	}
}

func TestXPForLoanCompletion(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	type testCase struct {
		name string
		loan loan.Loan
		want int
	}

	tests := []testCase{
		{
			// amount 300/15 = 20, +20 debt, +5% of 40 = 2
			name: "DebtOnTime",
			loan: loan.Loan{
				Type:    loan.TypeDebt,
				Amount:  decimal.NewFromInt(300),
				EndDate: date(2024, 7, 1),
			},
			want: 42,
		},
		{
			// amount 300/15 = 20, +10 credit, past due: no bonus
			name: "CreditPastDue",
			loan: loan.Loan{
				Type:    loan.TypeCredit,
				Amount:  decimal.NewFromInt(300),
				EndDate: date(2024, 6, 1),
			},
			want: 30,
		},
		{
			// open-ended loans always get the on-time bonus
			name: "OpenEndedGetsBonus",
			loan: loan.Loan{
				Type:   loan.TypeCredit,
				Amount: decimal.NewFromInt(300),
			},
			want: 31,
		},
		{
			// tiny amount floors at 8, +10 credit, +5% of 18 = 0
			name: "FloorsAtFifteen",
			loan: loan.Loan{
				Type:   loan.TypeCredit,
				Amount: decimal.NewFromInt(1),
			},
			want: 18,
		},
		{
			// end date today still counts as on time
			name: "DueTodayOnTime",
			loan: loan.Loan{
				Type:    loan.TypeDebt,
				Amount:  decimal.NewFromInt(150),
				EndDate: date(2024, 6, 15),
			},
			want: 31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leveling.XPForLoanCompletion(&tt.loan, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXPForGoalCompletion(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name string
		goal goal.Goal
		want int
	}

	tests := []testCase{
		{
			// amount 1000/10 = 100; halfway through a 20 day window:
			// 10/20 of the 50% cap = 25% of 100 = 25
			name: "EarlyCompletionScalesBonus",
			goal: goal.Goal{
				Amount:    decimal.NewFromInt(1000),
				StartDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC),
			},
			want: 125,
		},
		{
			// completed on the deadline day: zero days remaining, no bonus
			name: "OnDeadlineNoBonus",
			goal: goal.Goal{
				Amount:    decimal.NewFromInt(1000),
				StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			want: 100,
		},
		{
			// past due: base only
			name: "PastDue",
			goal: goal.Goal{
				Amount:    decimal.NewFromInt(1000),
				StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			want: 100,
		},
		{
			// same-day window gets a flat 10% when not past due
			name: "ZeroDurationFlatBonus",
			goal: goal.Goal{
				Amount:    decimal.NewFromInt(1000),
				StartDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			want: 110,
		},
		{
			// tiny amount floors at 10
			name: "FloorsAtTen",
			goal: goal.Goal{
				Amount:    decimal.NewFromInt(1),
				StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leveling.XPForGoalCompletion(&tt.goal, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThemeNamesForLevel(t *testing.T) {
	names := leveling.ThemeNamesForLevel(1)
	require.Len(t, names, 2)
	assert.Contains(t, names, "LIGHT")
	assert.Contains(t, names, "DARK")

	all := leveling.ThemeNamesForLevel(15)
	assert.Len(t, all, len(leveling.Themes()))
}
