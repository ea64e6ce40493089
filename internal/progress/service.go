package progress

import (
	"context"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
	"github.com/TheXbomber/budgify-server/internal/leveling"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=progress
type Repository interface {
	// GetProgress returns the stored progress, or the level-1 defaults
	// when the user has no row yet.
	GetProgress(ctx context.Context, uc auth.UserContext) (*Progress, error)
	SaveProgress(ctx context.Context, p *Progress) error
}

type Notifier interface {
	Invalidate(userID uuid.UUID)
}

type Service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Status is the progress plus the XP threshold for the next level.
type Status struct {
	Progress
	XPForNextLevel int
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext) (*Status, error) {
	p, err := s.repo.GetProgress(ctx, uc)
	if err != nil {
		return nil, err
	}

	return &Status{Progress: *p, XPForNextLevel: leveling.XPForNextLevel(p.Level)}, nil
}

// AwardResult reports what an XP gain did to the user's progress.
type AwardResult struct {
	Progress  Progress
	XPGained  int
	LeveledUp bool
	Unlocked  []leveling.Theme
}

// Award applies an XP gain, persisting any level-ups and theme unlocks.
// Gains of zero or less leave the stored state untouched.
func (s *Service) Award(ctx context.Context, uc auth.UserContext, gain int) (*AwardResult, error) {
	p, err := s.repo.GetProgress(ctx, uc)
	if err != nil {
		return nil, err
	}

	if gain <= 0 {
		return &AwardResult{Progress: *p}, nil
	}

	res := leveling.AddXP(p.Level, p.XP, gain, p.unlockedSet())

	p.Level = res.Level
	p.XP = res.XP

	for _, t := range res.Unlocked {
		p.UnlockedThemes = append(p.UnlockedThemes, t.Name)
	}

	if err := s.repo.SaveProgress(ctx, p); err != nil {
		return nil, err
	}

	s.notify(uc)

	return &AwardResult{
		Progress:  *p,
		XPGained:  gain,
		LeveledUp: res.LeveledUp,
		Unlocked:  res.Unlocked,
	}, nil
}

func (s *Service) notify(uc auth.UserContext) {
	if s.notifier != nil {
		s.notifier.Invalidate(uc.UserID)
	}
}
