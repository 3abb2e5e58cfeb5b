package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/repository/dao"
)

var (
	ErrInscriptionNotFound = dao.ErrInscriptionNotFound
	ErrInscriptionExists   = dao.ErrInscriptionExists
)

type InscriptionDAO interface {
	Register(
		ctx context.Context,
		eventID, participantID uuid.UUID,
		fn func(event dao.Event, seats int64, existing *dao.Inscription) (dao.Inscription, error),
	) (dao.Inscription, error)
	Cancel(ctx context.Context, id uuid.UUID, fn func(event dao.Event, ins *dao.Inscription) error) (dao.Inscription, error)
	CheckIn(ctx context.Context, eventID uuid.UUID, ticketCode string, fn func(event dao.Event, ins *dao.Inscription) error) (*dao.Inscription, error)
	FindByID(ctx context.Context, id uuid.UUID) (dao.Inscription, error)
	FindByParticipant(ctx context.Context, participantID uuid.UUID, statuses []string) ([]dao.Inscription, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]dao.Inscription, error)
	CountByStatus(ctx context.Context, statuses ...string) (int64, error)
	Revenue(ctx context.Context) (float64, error)
}

type InscriptionRepository struct {
	dao InscriptionDAO
}

func NewInscriptionRepository(dao InscriptionDAO) *InscriptionRepository {
	return &InscriptionRepository{
		dao: dao,
	}
}

// Register decides the stored row with fn while the event is locked. existing
// is the participant's previous row for the event, if any.
func (r *InscriptionRepository) Register(
	ctx context.Context,
	eventID, participantID uuid.UUID,
	fn func(event domain.Event, seats int64, existing *domain.Inscription) (domain.Inscription, error),
) (domain.Inscription, error) {
	saved, err := r.dao.Register(ctx, eventID, participantID,
		func(event dao.Event, seats int64, existing *dao.Inscription) (dao.Inscription, error) {
			var prev *domain.Inscription
			if existing != nil {
				p := inscriptionDaoToDomain(*existing)
				prev = &p
			}

			next, err := fn(eventDaoToDomain(event), seats, prev)
			if err != nil {
				return dao.Inscription{}, err
			}

			return inscriptionDomainToDao(next), nil
		})
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return inscriptionDaoToDomain(saved), nil
}

func (r *InscriptionRepository) Cancel(
	ctx context.Context,
	id uuid.UUID,
	fn func(event domain.Event, ins *domain.Inscription) error,
) (domain.Inscription, error) {
	saved, err := r.dao.Cancel(ctx, id, func(event dao.Event, ins *dao.Inscription) error {
		d := inscriptionDaoToDomain(*ins)
		if err := fn(eventDaoToDomain(event), &d); err != nil {
			return err
		}
		applyInscription(ins, d)

		return nil
	})
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("r.dao.Cancel -> %w", err)
	}

	return inscriptionDaoToDomain(saved), nil
}

// CheckIn hands fn a nil inscription when the ticket is unknown for the event.
func (r *InscriptionRepository) CheckIn(
	ctx context.Context,
	eventID uuid.UUID,
	ticketCode string,
	fn func(event domain.Event, ins *domain.Inscription) error,
) (*domain.Inscription, error) {
	saved, err := r.dao.CheckIn(ctx, eventID, ticketCode, func(event dao.Event, ins *dao.Inscription) error {
		if ins == nil {
			return fn(eventDaoToDomain(event), nil)
		}

		d := inscriptionDaoToDomain(*ins)
		if err := fn(eventDaoToDomain(event), &d); err != nil {
			return err
		}
		applyInscription(ins, d)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.CheckIn -> %w", err)
	}

	if saved == nil {
		return nil, nil
	}

	ins := inscriptionDaoToDomain(*saved)
	return &ins, nil
}

func (r *InscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Inscription, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Inscription{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return inscriptionDaoToDomain(found), nil
}

func (r *InscriptionRepository) FindByParticipant(
	ctx context.Context,
	participantID uuid.UUID,
	statuses []domain.InscriptionStatus,
) ([]domain.Inscription, error) {
	raw := make([]string, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, string(s))
	}

	found, err := r.dao.FindByParticipant(ctx, participantID, raw)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParticipant -> %w", err)
	}

	return inscriptionsDaoToDomain(found), nil
}

func (r *InscriptionRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Inscription, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	return inscriptionsDaoToDomain(found), nil
}

func (r *InscriptionRepository) CountByStatus(ctx context.Context, statuses ...domain.InscriptionStatus) (int64, error) {
	raw := make([]string, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, string(s))
	}

	n, err := r.dao.CountByStatus(ctx, raw...)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return n, nil
}

func (r *InscriptionRepository) Revenue(ctx context.Context) (float64, error) {
	revenue, err := r.dao.Revenue(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Revenue -> %w", err)
	}

	return revenue, nil
}

func inscriptionsDaoToDomain(found []dao.Inscription) []domain.Inscription {
	inscriptions := make([]domain.Inscription, 0, len(found))
	for _, ins := range found {
		inscriptions = append(inscriptions, inscriptionDaoToDomain(ins))
	}

	return inscriptions
}

func inscriptionDaoToDomain(i dao.Inscription) domain.Inscription {
	ins := domain.Inscription{
		ID:              i.ID,
		ParticipantID:   i.ParticipantID,
		EventID:         i.EventID,
		Status:          domain.InscriptionStatus(i.Status),
		Paid:            i.Paid,
		PaymentStatus:   domain.PaymentStatus(i.PaymentStatus),
		TicketCode:      i.TicketCode,
		InscriptionDate: i.InscriptionDate,
		CheckedInAt:     i.CheckedInAt,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
		Participant:     userSummary(i.Participant),
	}

	if i.Event.ID != uuid.Nil {
		e := eventDaoToDomain(i.Event)
		ins.Event = &e
	}

	return ins
}

func inscriptionDomainToDao(i domain.Inscription) dao.Inscription {
	ins := dao.Inscription{
		ID:            i.ID,
		ParticipantID: i.ParticipantID,
		EventID:       i.EventID,
		CreatedAt:     i.CreatedAt,
	}
	applyInscription(&ins, i)

	return ins
}

// applyInscription copies the mutable fields of src onto dst.
func applyInscription(dst *dao.Inscription, src domain.Inscription) {
	dst.Status = string(src.Status)
	dst.Paid = src.Paid
	dst.PaymentStatus = string(src.PaymentStatus)
	dst.TicketCode = src.TicketCode
	dst.InscriptionDate = src.InscriptionDate
	dst.CheckedInAt = src.CheckedInAt
}
