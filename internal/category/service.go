package category

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/TheXbomber/budgify-server/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Category, error)
	GetByDescription(ctx context.Context, uc auth.UserContext, description string) (*Category, error)
	ListCategories(ctx context.Context, uc auth.UserContext, includeSystem bool) ([]*Category, error)
	UpdateCategory(ctx context.Context, uc auth.UserContext, c *Category) error
	DeleteCategory(ctx context.Context, uc auth.UserContext, id uuid.UUID) error
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
}

func (s *Service) Create(ctx context.Context, uc auth.UserContext, params CreateParams) (*Category, error) {
	c := &Category{
		UserID:      uc.UserID,
		Type:        params.Type,
		Description: params.Description,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.notify(uc)

	return c, nil
}

// EnsureSystem creates any of the reserved settlement categories the user is
// missing. Safe to call on every login.
func (s *Service) EnsureSystem(ctx context.Context, uc auth.UserContext) error {
	for _, sys := range SystemCategories() {
		_, err := s.repo.GetByDescription(ctx, uc, sys.Description)
		if err == nil {
			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return err
		}

		c := &Category{
			UserID:      uc.UserID,
			Type:        sys.Type,
			Description: sys.Description,
			System:      true,
		}
		if err := s.repo.CreateCategory(ctx, c); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) Get(ctx context.Context, uc auth.UserContext, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, uc, id)
}

// FindByDescription resolves a category by its exact description. Used by
// the completion synthesizer to locate settlement categories.
func (s *Service) FindByDescription(ctx context.Context, uc auth.UserContext, description string) (*Category, error) {
	return s.repo.GetByDescription(ctx, uc, description)
}

// ListVisible returns the categories offered in pickers; the reserved
// settlement categories are excluded.
func (s *Service) ListVisible(ctx context.Context, uc auth.UserContext) ([]*Category, error) {
	return s.repo.ListCategories(ctx, uc, false)
}

// ListAll includes the reserved categories, for display of settled
// transactions.
func (s *Service) ListAll(ctx context.Context, uc auth.UserContext) ([]*Category, error) {
	return s.repo.ListCategories(ctx, uc, true)
}

type UpdateParams struct {
	Type        *Type
	Description *string
}

func (s *Service) Update(ctx context.Context, uc auth.UserContext, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	if c.System {
		return nil, ErrSystemCategory
	}

	if params.Type != nil {
		c.Type = *params.Type
	}

	if params.Description != nil {
		c.Description = *params.Description
	}

	if err := s.repo.UpdateCategory(ctx, uc, c); err != nil {
		return nil, err
	}

	s.notify(uc)

	return c, nil
}

// Delete removes a user category. Transactions that referenced it keep
// running with a null category.
func (s *Service) Delete(ctx context.Context, uc auth.UserContext, id uuid.UUID) error {
	c, err := s.repo.GetCategory(ctx, uc, id)
	if err != nil {
		return err
	}

	if c.System {
		return ErrSystemCategory
	}

	if err := s.repo.DeleteCategory(ctx, uc, id); err != nil {
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
