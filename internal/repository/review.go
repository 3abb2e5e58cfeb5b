package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

type ReviewDAO interface {
	Insert(ctx context.Context, review dao.EventReview) (dao.EventReview, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]dao.EventReview, error)
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.EventReview) (domain.EventReview, error) {
	created, err := r.dao.Insert(ctx, dao.EventReview{
		EventID: review.EventID,
		UserID:  review.UserID,
		Rating:  review.Rating,
		Comment: review.Comment,
	})
	if err != nil {
		return domain.EventReview{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return reviewDaoToDomain(created), nil
}

func (r *ReviewRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.EventReview, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	reviews := make([]domain.EventReview, 0, len(found))
	for _, rv := range found {
		reviews = append(reviews, reviewDaoToDomain(rv))
	}

	return reviews, nil
}

func reviewDaoToDomain(r dao.EventReview) domain.EventReview {
	return domain.EventReview{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		User:      userSummary(r.User),
	}
}
