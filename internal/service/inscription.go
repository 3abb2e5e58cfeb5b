package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository"
)

var (
	ErrInscriptionNotFound  = repository.ErrInscriptionNotFound
	ErrEventNotOpen         = errors.New("event is not available for inscription")
	ErrEventPrivate         = errors.New("event is private")
	ErrEventStarted         = errors.New("event has already started")
	ErrEventFull            = errors.New("event is full")
	ErrAlreadyInscribed     = errors.New("user is already inscribed to this event")
	ErrInscriptionCancelled = errors.New("inscription is already cancelled")
	ErrInvalidPaymentStatus = errors.New("payment status must be PAID or PENDING")
)

type InscriptionRepository interface {
	Register(
		ctx context.Context,
		eventID, participantID uuid.UUID,
		fn func(event domain.Event, seats int64, existing *domain.Inscription) (domain.Inscription, error),
	) (domain.Inscription, error)
	Cancel(ctx context.Context, id uuid.UUID, fn func(event domain.Event, ins *domain.Inscription) error) (domain.Inscription, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Inscription, error)
	FindByParticipant(ctx context.Context, participantID uuid.UUID, statuses []domain.InscriptionStatus) ([]domain.Inscription, error)
}

type InscriptionService struct {
	repo InscriptionRepository
	now  func() time.Time
}

func NewInscriptionService(repo InscriptionRepository) *InscriptionService {
	return &InscriptionService{
		repo: repo,
		now:  time.Now,
	}
}

// ListInscriptions returns the non-cancelled inscriptions of userID. Only
// admins may look at someone else's.
func (s *InscriptionService) ListInscriptions(ctx context.Context, session domain.Session, userID uuid.UUID) ([]domain.Inscription, error) {
	if userID != session.UserID && !session.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	inscriptions, err := s.repo.FindByParticipant(ctx, userID, domain.VisibleStatuses)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByParticipant -> %w", err)
	}

	return inscriptions, nil
}

// Register inscribes the caller in the event. outcome is the payment result
// reported for priced events and may be empty. A cancelled inscription is
// reactivated in place and a pending one is settled when outcome is PAID.
func (s *InscriptionService) Register(
	ctx context.Context,
	session domain.Session,
	eventID uuid.UUID,
	outcome domain.PaymentStatus,
) (domain.Inscription, error) {
	if outcome != "" && outcome != domain.PaymentPaid && outcome != domain.PaymentPending {
		return domain.Inscription{}, ErrInvalidPaymentStatus
	}

	saved, err := s.repo.Register(ctx, eventID, session.UserID,
		func(event domain.Event, seats int64, existing *domain.Inscription) (domain.Inscription, error) {
			now := s.now().UTC()

			switch {
			case event.Status != domain.EventPublished:
				return domain.Inscription{}, ErrEventNotOpen
			case !event.IsPublic:
				return domain.Inscription{}, ErrEventPrivate
			case event.HasStarted(now):
				return domain.Inscription{}, ErrEventStarted
			}

			ins := domain.Inscription{TicketCode: domain.NewTicketCode(event.ID, session.UserID, now)}
			if existing != nil {
				settling := existing.Status == domain.InscriptionConfirmed && outcome == domain.PaymentPaid
				if existing.Status != domain.InscriptionCancelled && !settling {
					return domain.Inscription{}, ErrAlreadyInscribed
				}

				ins = *existing
				if ins.TicketCode == "" {
					ins.TicketCode = domain.NewTicketCode(event.ID, session.UserID, now)
				}
			}

			if seats >= int64(event.MaxParticipants) {
				return domain.Inscription{}, ErrEventFull
			}

			ins.ApplyPayment(event, outcome)
			ins.InscriptionDate = now
			ins.CheckedInAt = nil

			return ins, nil
		})
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	return s.getInscription(ctx, saved)
}

// Cancel cancels the caller's inscription before the event starts. A paid
// inscription on a priced event is marked REFUNDED.
func (s *InscriptionService) Cancel(ctx context.Context, session domain.Session, id uuid.UUID) (domain.Inscription, error) {
	saved, err := s.repo.Cancel(ctx, id, func(event domain.Event, ins *domain.Inscription) error {
		if ins.ParticipantID != session.UserID {
			return ErrPermissionDenied
		}
		if ins.Status == domain.InscriptionCancelled {
			return ErrInscriptionCancelled
		}
		if event.HasStarted(s.now()) {
			return ErrEventStarted
		}

		ins.Status = domain.InscriptionCancelled
		if ins.Paid && !event.IsFree() {
			ins.PaymentStatus = domain.PaymentRefunded
		}

		return nil
	})
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("s.repo.Cancel -> %w", err)
	}

	return s.getInscription(ctx, saved)
}

func (s *InscriptionService) getInscription(ctx context.Context, saved domain.Inscription) (domain.Inscription, error) {
	ins, err := s.repo.FindByID(ctx, saved.ID)
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ins, nil
}
