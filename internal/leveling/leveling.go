// Package leveling holds the pure XP arithmetic: level thresholds, XP
// accumulation with carry-over, and completion rewards for loans and goals.
//
// Division semantics: amounts divide as decimals and truncate toward zero
// immediately at each step; every later bonus is computed in integer space
// and truncated individually before being added.
package leveling

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/goal"
	"github.com/TheXbomber/budgify-server/internal/loan"
)

const (
	loanMinAmountXP = 8
	loanDebtBonus   = 20
	loanCreditBonus = 10
	loanMinXP       = 15

	goalMinAmountXP = 5
	goalMinXP       = 10
)

// XPForNextLevel returns the XP needed to advance past the given level:
// 100 for 1→2, 250 for 2→3, 450 for 3→4.
func XPForNextLevel(level int) int {
	if level <= 0 {
		return 100
	}

	return 100*level + (level-1)*50
}

// AddResult reports the outcome of accumulating XP.
type AddResult struct {
	Level     int
	XP        int
	LeveledUp bool
	// Unlocked lists themes whose unlock level was reached during this
	// gain and that were not already held.
	Unlocked []Theme
}

// AddXP accumulates gain into (level, xp), consuming thresholds while the
// running XP covers them and carrying the remainder forward. A gain of zero
// or less changes nothing. alreadyUnlocked guards against re-unlocking a
// theme the user holds.
func AddXP(level, xp, gain int, alreadyUnlocked map[string]bool) AddResult {
	if gain <= 0 {
		return AddResult{Level: level, XP: xp}
	}

	res := AddResult{Level: level, XP: xp + gain}

	for res.XP >= XPForNextLevel(res.Level) {
		res.XP -= XPForNextLevel(res.Level)
		res.Level++
		res.LeveledUp = true

		for _, t := range themes {
			if t.UnlockLevel == res.Level && !alreadyUnlocked[t.Name] {
				res.Unlocked = append(res.Unlocked, t)
			}
		}
	}

	return res
}

// XPForLoanCompletion computes the reward for settling a loan:
// max(8, amount/15), plus 20 for a debt repaid or 10 for a credit
// collected, plus 5% when settled on time (no end date, or the end date has
// not passed). Never less than 15.
func XPForLoanCompletion(l *loan.Loan, today time.Time) int {
	base := amountXP(l.Amount, 15, loanMinAmountXP)

	switch l.Type {
	case loan.TypeDebt:
		base += loanDebtBonus
	case loan.TypeCredit:
		base += loanCreditBonus
	}

	if l.EndDate == nil || daysBetween(today, *l.EndDate) >= 0 {
		base += base * 5 / 100
	}

	return max(base, loanMinXP)
}

// XPForGoalCompletion computes the reward for completing a goal:
// max(5, amount/10) as the base, plus an early-completion bonus. Goals with
// a non-positive duration get a flat 10% when not yet past due; otherwise
// the bonus scales with the fraction of the window remaining, up to 50% of
// the base. Never less than 10.
func XPForGoalCompletion(g *goal.Goal, today time.Time) int {
	base := amountXP(g.Amount, 10, goalMinAmountXP)

	daysRemaining := daysBetween(today, g.EndDate)
	totalDuration := daysBetween(g.StartDate, g.EndDate)

	switch {
	case totalDuration <= 0:
		if daysRemaining >= 0 {
			base += base / 10
		}
	case daysRemaining >= 0:
		earlyRatio := float64(daysRemaining) / float64(totalDuration)
		base += int(earlyRatio * float64(base) * 0.5)
	}

	return max(base, goalMinXP)
}

func amountXP(amount decimal.Decimal, divisor int64, floor int) int {
	xp := int(amount.Div(decimal.NewFromInt(divisor)).IntPart())

	return max(xp, floor)
}

// daysBetween counts whole calendar days from a to b, negative when b is
// before a.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	return int(bd.Sub(ad).Hours() / 24)
}
