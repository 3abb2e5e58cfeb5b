package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository"
)

var (
	ErrCategoryNotFound   = repository.ErrCategoryNotFound
	ErrCategoryNameExists = repository.ErrCategoryNameExists
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.EventCategory) (domain.EventCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.EventCategory, error)
	FindByName(ctx context.Context, name string) (domain.EventCategory, error)
	FindAll(ctx context.Context) ([]domain.EventCategory, error)
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.EventCategory, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, session domain.Session, category domain.EventCategory) (domain.EventCategory, error) {
	if !session.IsAdmin() {
		return domain.EventCategory{}, ErrPermissionDenied
	}

	category.Name = strings.TrimSpace(category.Name)

	_, err := s.repo.FindByName(ctx, category.Name)
	if err == nil {
		return domain.EventCategory{}, ErrCategoryNameExists
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return domain.EventCategory{}, fmt.Errorf("s.repo.FindByName -> %w", err)
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return domain.EventCategory{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
