package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

type CheckInRepository interface {
	CheckIn(ctx context.Context, eventID uuid.UUID, ticketCode string, fn func(event domain.Event, ins *domain.Inscription) error) (*domain.Inscription, error)
}

type CheckInService struct {
	repo CheckInRepository
	now  func() time.Time
}

func NewCheckInService(repo CheckInRepository) *CheckInService {
	return &CheckInService{
		repo: repo,
		now:  time.Now,
	}
}

// CheckIn validates a ticket at the door. Only the event owner or an admin may
// scan. Unknown tickets and tickets without a held seat are reported as
// INVALID rather than as errors.
func (s *CheckInService) CheckIn(ctx context.Context, session domain.Session, eventID uuid.UUID, ticketCode string) (domain.CheckInResult, error) {
	result := domain.CheckInResult{
		EventID:   eventID,
		ScannedAt: s.now().UTC(),
		ScannedBy: session.UserID,
		Status:    domain.CheckInInvalid,
	}

	_, err := s.repo.CheckIn(ctx, eventID, strings.TrimSpace(ticketCode), func(event domain.Event, ins *domain.Inscription) error {
		if !session.CanManage(event.OrganizerID) {
			return ErrPermissionDenied
		}
		if ins == nil {
			return nil
		}

		id := ins.ID
		result.InscriptionID = &id

		switch ins.Status {
		case domain.InscriptionCheckedIn:
			result.Status = domain.CheckInAlreadyCheckedIn
		case domain.InscriptionActive:
			at := result.ScannedAt
			ins.Status = domain.InscriptionCheckedIn
			ins.CheckedInAt = &at
			result.Status = domain.CheckInSuccess
		}

		return nil
	})
	if err != nil {
		return domain.CheckInResult{}, fmt.Errorf("s.repo.CheckIn -> %w", err)
	}

	return result, nil
}
