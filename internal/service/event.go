package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidEventDates    = errors.New("start date must be before end date")
	ErrEventStartInPast     = errors.New("start date must be in the future")
	ErrInvalidCapacity      = errors.New("max participants must be at least 1")
	ErrInvalidPrice         = errors.New("price cannot be negative")
	ErrInvalidEventStatus   = errors.New("invalid event status")
	ErrCapacityBelowSeats   = errors.New("max participants cannot be lower than the number of active inscriptions")
	ErrEventHasInscriptions = errors.New("cannot delete an event with active inscriptions")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	FindAll(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, fn func(current domain.Event, seats int64) (domain.Event, error)) (domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID, fn func(current domain.Event, seats int64) error) error
}

type CategoryFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.EventCategory, error)
}

type EventService struct {
	repo       EventRepository
	categories CategoryFinder
	now        func() time.Time
}

func NewEventService(repo EventRepository, categories CategoryFinder) *EventService {
	return &EventService{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

func (s *EventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Location = strings.TrimSpace(filter.Location)

	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// CreateEvent publishes a new event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, session domain.Session, event domain.Event) (domain.Event, error) {
	if !session.Role.CanOrganize() {
		return domain.Event{}, ErrPermissionDenied
	}

	event.StartDate = event.StartDate.UTC()
	event.EndDate = event.EndDate.UTC()
	if !event.StartDate.After(s.now()) {
		return domain.Event{}, ErrEventStartInPast
	}
	if err := validateEvent(event); err != nil {
		return domain.Event{}, err
	}

	if _, err := s.categories.FindByID(ctx, event.CategoryID); err != nil {
		return domain.Event{}, fmt.Errorf("s.categories.FindByID -> %w", err)
	}

	if event.Status == "" {
		event.Status = domain.EventPublished
	}
	event.OrganizerID = session.UserID

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return s.GetEvent(ctx, created.ID)
}

// UpdateEvent merges the update into the event while it is locked, so the
// capacity check sees the same seat count registrations do.
func (s *EventService) UpdateEvent(ctx context.Context, session domain.Session, id uuid.UUID, update domain.EventUpdate) (domain.Event, error) {
	if update.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *update.CategoryID); err != nil {
			return domain.Event{}, fmt.Errorf("s.categories.FindByID -> %w", err)
		}
	}

	_, err := s.repo.Update(ctx, id, func(current domain.Event, seats int64) (domain.Event, error) {
		if current.OrganizerID != session.UserID {
			return domain.Event{}, ErrPermissionDenied
		}

		update.Apply(&current)
		current.StartDate = current.StartDate.UTC()
		current.EndDate = current.EndDate.UTC()

		if err := validateEvent(current); err != nil {
			return domain.Event{}, err
		}
		if int64(current.MaxParticipants) < seats {
			return domain.Event{}, ErrCapacityBelowSeats
		}

		return current, nil
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return s.GetEvent(ctx, id)
}

// DeleteEvent removes an event nobody holds a seat for. The owner and admins
// may delete.
func (s *EventService) DeleteEvent(ctx context.Context, session domain.Session, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id, func(current domain.Event, seats int64) error {
		if !session.CanManage(current.OrganizerID) {
			return ErrPermissionDenied
		}
		if seats > 0 {
			return ErrEventHasInscriptions
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func validateEvent(e domain.Event) error {
	if !e.StartDate.Before(e.EndDate) {
		return ErrInvalidEventDates
	}
	if e.MaxParticipants < 1 {
		return ErrInvalidCapacity
	}
	if e.Price < 0 {
		return ErrInvalidPrice
	}
	if e.Status != "" && !e.Status.IsValid() {
		return ErrInvalidEventStatus
	}

	return nil
}
