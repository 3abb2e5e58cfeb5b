package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

var (
	ErrCategoryNotFound   = dao.ErrCategoryNotFound
	ErrCategoryNameExists = dao.ErrCategoryNameExists
)

type CategoryDAO interface {
	Insert(ctx context.Context, category dao.EventCategory) (dao.EventCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.EventCategory, error)
	FindByName(ctx context.Context, name string) (dao.EventCategory, error)
	FindAllWithCounts(ctx context.Context) ([]dao.CategoryWithCount, error)
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.EventCategory) (domain.EventCategory, error) {
	created, err := r.dao.Insert(ctx, dao.EventCategory{
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		Icon:        category.Icon,
	})
	if err != nil {
		return domain.EventCategory{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return categoryDaoToDomain(created), nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.EventCategory, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.EventCategory{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return categoryDaoToDomain(found), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (domain.EventCategory, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.EventCategory{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return categoryDaoToDomain(found), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.EventCategory, error) {
	rows, err := r.dao.FindAllWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllWithCounts -> %w", err)
	}

	categories := make([]domain.EventCategory, 0, len(rows))
	for _, row := range rows {
		c := categoryDaoToDomain(row.EventCategory)
		c.EventCount = row.EventCount
		categories = append(categories, c)
	}

	return categories, nil
}

func categoryDaoToDomain(c dao.EventCategory) domain.EventCategory {
	return domain.EventCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
