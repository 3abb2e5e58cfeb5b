package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

var ErrCannotDeleteSelf = errors.New("you cannot delete your own account")

type AdminUserRepository interface {
	FindAllWithCounts(ctx context.Context) ([]domain.UserWithCounts, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type AdminEventRepository interface {
	FindAllForAdmin(ctx context.Context) ([]domain.AdminEvent, error)
	Count(ctx context.Context) (int64, error)
}

type AdminInscriptionRepository interface {
	CountByStatus(ctx context.Context, statuses ...domain.InscriptionStatus) (int64, error)
	Revenue(ctx context.Context) (float64, error)
}

type AdminService struct {
	users        AdminUserRepository
	events       AdminEventRepository
	inscriptions AdminInscriptionRepository
}

func NewAdminService(users AdminUserRepository, events AdminEventRepository, inscriptions AdminInscriptionRepository) *AdminService {
	return &AdminService{
		users:        users,
		events:       events,
		inscriptions: inscriptions,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, session domain.Session) ([]domain.UserWithCounts, error) {
	if !session.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	users, err := s.users.FindAllWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.users.FindAllWithCounts -> %w", err)
	}

	return users, nil
}

// UpdateUserRole changes a role without touching the user's events or
// inscriptions.
func (s *AdminService) UpdateUserRole(ctx context.Context, session domain.Session, userID uuid.UUID, role domain.Role) (domain.User, error) {
	if !session.IsAdmin() {
		return domain.User{}, ErrPermissionDenied
	}
	if !role.IsValid() {
		return domain.User{}, ErrInvalidRole
	}

	user, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.users.UpdateRole -> %w", err)
	}

	return user, nil
}

// DeleteUser removes the user with their inscriptions, reviews and organized
// events atomically.
func (s *AdminService) DeleteUser(ctx context.Context, session domain.Session, userID uuid.UUID) error {
	if !session.IsAdmin() {
		return ErrPermissionDenied
	}
	if userID == session.UserID {
		return ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("s.users.Delete -> %w", err)
	}

	return nil
}

func (s *AdminService) ListEvents(ctx context.Context, session domain.Session) ([]domain.AdminEvent, error) {
	if !session.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	events, err := s.events.FindAllForAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.events.FindAllForAdmin -> %w", err)
	}

	return events, nil
}

func (s *AdminService) Stats(ctx context.Context, session domain.Session) (domain.AdminStats, error) {
	if !session.IsAdmin() {
		return domain.AdminStats{}, ErrPermissionDenied
	}

	var stats domain.AdminStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.users.Count -> %w", err)
	}
	if stats.TotalEvents, err = s.events.Count(ctx); err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.events.Count -> %w", err)
	}
	if stats.TotalInscriptions, err = s.inscriptions.CountByStatus(ctx, domain.SeatHoldingStatuses...); err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.inscriptions.CountByStatus -> %w", err)
	}
	if stats.Revenue, err = s.inscriptions.Revenue(ctx); err != nil {
		return domain.AdminStats{}, fmt.Errorf("s.inscriptions.Revenue -> %w", err)
	}

	return stats, nil
}
