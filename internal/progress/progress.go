package progress

import (
	"github.com/google/uuid"
)

// Progress is the per-user gamification state. Invariants: Level >= 1 and
// 0 <= XP < XPForNextLevel(Level); overshoot rolls into further level-ups.
type Progress struct {
	UserID         uuid.UUID
	Level          int
	XP             int
	UnlockedThemes []string
}

func (p *Progress) unlockedSet() map[string]bool {
	set := make(map[string]bool, len(p.UnlockedThemes))
	for _, name := range p.UnlockedThemes {
		set[name] = true
	}

	return set
}
