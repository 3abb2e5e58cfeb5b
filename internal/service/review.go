package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type ReviewRepository interface {
	Create(ctx context.Context, review domain.EventReview) (domain.EventReview, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.EventReview, error)
}

type EventFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

type ReviewService struct {
	repo   ReviewRepository
	events EventFinder
}

func NewReviewService(repo ReviewRepository, events EventFinder) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: events,
	}
}

func (s *ReviewService) ListReviews(ctx context.Context, eventID uuid.UUID) ([]domain.EventReview, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	reviews, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return reviews, nil
}

// AddReview appends a rating by the caller. Several reviews per user are
// allowed.
func (s *ReviewService) AddReview(ctx context.Context, session domain.Session, eventID uuid.UUID, rating int, comment string) (domain.EventReview, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.EventReview{}, ErrInvalidRating
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return domain.EventReview{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.EventReview{
		EventID: eventID,
		UserID:  session.UserID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})
	if err != nil {
		return domain.EventReview{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
