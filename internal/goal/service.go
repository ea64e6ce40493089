package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context, uc auth.UserContext) ([]*Goal, error)
	UpdateGoal(ctx context.Context, uc auth.UserContext, g *Goal) error
	MarkCompleted(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
	DeleteGoal(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
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

type CreateParams struct {
	Type        Type
	Description string
	Amount      decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

func (s *Service) Create(ctx context.Context, uc auth.UserContext, params CreateParams) (*Goal, error) {
	g := &Goal{
		UserID:      uc.UserID,
		Type:        params.Type,
		Description: params.Description,
		Amount:      params.Amount,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	s.notify(uc)

	return g, nil
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, uc, id)
}

func (s *Service) List(ctx context.Context, uc auth.UserContext) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, uc)
}

type UpdateParams struct {
	Type        *Type
	Description *string
	Amount      *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// Update edits a goal that has not completed yet. Completion itself is
// terminal and only happens through the completion synthesizer.
func (s *Service) Update(ctx context.Context, uc auth.UserContext, id uuid.UUID, params UpdateParams) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	if g.Completed {
		return nil, ErrCompleted
	}

	if params.Type != nil {
		g.Type = *params.Type
	}

	if params.Description != nil {
		g.Description = *params.Description
	}

	if params.Amount != nil {
		g.Amount = *params.Amount
	}

	if params.StartDate != nil {
		g.StartDate = *params.StartDate
	}

	if params.EndDate != nil {
		g.EndDate = *params.EndDate
	}

	if err := s.repo.UpdateGoal(ctx, uc, g); err != nil {
		return nil, err
	}

	s.notify(uc)

	return g, nil
}

func (s *Service) Delete(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	if err := s.repo.DeleteGoal(ctx, uc, id); err != nil {
		return err
	}

	s.notify(uc)

	return nil
}

func (s *Service) notify(uc auth.UserContext) {
	if s.notifier != nil {
		s.notifier.Invalidate(uc.UserID)
	}
}
