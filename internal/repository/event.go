package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Event, error)
	FindAll(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	FindAllNewest(ctx context.Context) ([]dao.Event, error)
	SeatCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	InscriptionCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	RatingSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]dao.RatingSummary, error)
	Update(ctx context.Context, id uuid.UUID, fn func(current dao.Event, seats int64) (dao.Event, error)) (dao.Event, error)
	Delete(ctx context.Context, id uuid.UUID, fn func(current dao.Event, seats int64) error) error
	Count(ctx context.Context) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

// FindByID returns the event with its seat holding inscriptions, reviews and
// derived counters.
func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	event := eventDaoToDomain(found)

	event.Inscriptions = make([]domain.Inscription, 0, len(found.Inscriptions))
	for _, ins := range found.Inscriptions {
		event.Inscriptions = append(event.Inscriptions, inscriptionDaoToDomain(ins))
	}

	event.Reviews = make([]domain.EventReview, 0, len(found.Reviews))
	var total int
	for _, rv := range found.Reviews {
		event.Reviews = append(event.Reviews, reviewDaoToDomain(rv))
		total += rv.Rating
	}
	event.TotalReviews = int64(len(found.Reviews))
	if event.TotalReviews > 0 {
		event.AverageRating = float64(total) / float64(event.TotalReviews)
	}

	return event.WithSeats(int64(len(found.Inscriptions))), nil
}

func (r *EventRepository) FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx, dao.EventFilter{
		Search:      filter.Search,
		Category:    filter.Category,
		Location:    filter.Location,
		StartFrom:   filter.StartFrom,
		StartUntil:  filter.StartUntil,
		OrganizerID: filter.OrganizerID,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	ids := eventIDs(found)

	seats, err := r.dao.SeatCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SeatCounts -> %w", err)
	}

	ratings, err := r.dao.RatingSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RatingSummaries -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		event := eventDaoToDomain(e).WithSeats(seats[e.ID])
		event.AverageRating = ratings[e.ID].Average
		event.TotalReviews = ratings[e.ID].Count
		events = append(events, event)
	}

	return events, nil
}

func (r *EventRepository) FindAllForAdmin(ctx context.Context) ([]domain.AdminEvent, error) {
	found, err := r.dao.FindAllNewest(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllNewest -> %w", err)
	}

	counts, err := r.dao.InscriptionCounts(ctx, eventIDs(found))
	if err != nil {
		return nil, fmt.Errorf("r.dao.InscriptionCounts -> %w", err)
	}

	events := make([]domain.AdminEvent, 0, len(found))
	for _, e := range found {
		events = append(events, domain.AdminEvent{
			ID:              e.ID,
			Title:           e.Title,
			StartDate:       e.StartDate,
			Status:          domain.EventStatus(e.Status),
			MaxParticipants: e.MaxParticipants,
			Price:           e.Price,
			Organizer:       userSummary(e.Organizer),
			Inscriptions:    counts[e.ID],
			CreatedAt:       e.CreatedAt,
		})
	}

	return events, nil
}

// Update applies fn to the locked event. fn receives the number of held seats.
func (r *EventRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(current domain.Event, seats int64) (domain.Event, error),
) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, id, func(current dao.Event, seats int64) (dao.Event, error) {
		next, err := fn(eventDaoToDomain(current), seats)
		if err != nil {
			return dao.Event{}, err
		}

		return eventDomainToDao(next), nil
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID, fn func(current domain.Event, seats int64) error) error {
	err := r.dao.Delete(ctx, id, func(current dao.Event, seats int64) error {
		return fn(eventDaoToDomain(current), seats)
	})
	if err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return n, nil
}

func eventIDs(events []dao.Event) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	return ids
}

func eventDomainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Location:        e.Location,
		Address:         e.Address,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		MaxParticipants: e.MaxParticipants,
		Price:           e.Price,
		IsPublic:        e.IsPublic,
		Status:          string(e.Status),
		ImageURL:        e.ImageURL,
		OrganizerID:     e.OrganizerID,
		CategoryID:      e.CategoryID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Location:        e.Location,
		Address:         e.Address,
		Latitude:        e.Latitude,
		Longitude:       e.Longitude,
		MaxParticipants: e.MaxParticipants,
		Price:           e.Price,
		IsPublic:        e.IsPublic,
		Status:          domain.EventStatus(e.Status),
		ImageURL:        e.ImageURL,
		OrganizerID:     e.OrganizerID,
		CategoryID:      e.CategoryID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Organizer:       userSummary(e.Organizer),
	}

	if e.Category.ID != uuid.Nil {
		c := categoryDaoToDomain(e.Category)
		event.Category = &c
	}

	return event
}
