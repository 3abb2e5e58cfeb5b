package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/payment"
)

var (
	ErrInvalidCard     = payment.ErrInvalidCard
	ErrPaymentDeclined = errors.New("payment declined, try again with another card")
)

type Charger interface {
	Charge(ctx context.Context, req payment.Request) (payment.Result, error)
}

type Registrar interface {
	ListInscriptions(ctx context.Context, session domain.Session, userID uuid.UUID) ([]domain.Inscription, error)
	Register(ctx context.Context, session domain.Session, eventID uuid.UUID, outcome domain.PaymentStatus) (domain.Inscription, error)
}

// Checkout is the outcome of paying for an event. Payment is nil for free
// events, which skip the acquirer.
type Checkout struct {
	Payment     *payment.Result     `json:"payment,omitempty"`
	Inscription *domain.Inscription `json:"inscription,omitempty"`
}

type PaymentService struct {
	events    EventFinder
	registrar Registrar
	charger   Charger
	now       func() time.Time
}

func NewPaymentService(events EventFinder, registrar Registrar, charger Charger) *PaymentService {
	return &PaymentService{
		events:    events,
		registrar: registrar,
		charger:   charger,
		now:       time.Now,
	}
}

// Pay charges the caller for the event and inscribes them according to the
// outcome: approved payments become PAID inscriptions, payments under review
// PENDING ones. A declined payment returns ErrPaymentDeclined and creates
// nothing.
func (s *PaymentService) Pay(ctx context.Context, session domain.Session, eventID uuid.UUID, req payment.Request) (Checkout, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return Checkout{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	if err = s.checkAvailable(ctx, session, event); err != nil {
		return Checkout{}, err
	}

	if event.IsFree() {
		ins, err := s.registrar.Register(ctx, session, eventID, domain.PaymentPaid)
		if err != nil {
			return Checkout{}, fmt.Errorf("s.registrar.Register -> %w", err)
		}

		return Checkout{Inscription: &ins}, nil
	}

	req.Amount = event.Price
	res, err := s.charger.Charge(ctx, req)
	if err != nil {
		return Checkout{}, fmt.Errorf("s.charger.Charge -> %w", err)
	}

	var outcome domain.PaymentStatus
	switch res.Outcome {
	case payment.OutcomeSuccess:
		outcome = domain.PaymentPaid
	case payment.OutcomePending:
		outcome = domain.PaymentPending
	default:
		return Checkout{Payment: &res}, ErrPaymentDeclined
	}

	ins, err := s.registrar.Register(ctx, session, eventID, outcome)
	if err != nil {
		zap.L().Warn("charge accepted without inscription",
			zap.String("transaction_id", res.TransactionID),
			zap.String("event_id", eventID.String()),
			zap.String("user_id", session.UserID.String()),
			zap.Error(err),
		)
		return Checkout{Payment: &res}, fmt.Errorf("s.registrar.Register -> %w", err)
	}

	return Checkout{Payment: &res, Inscription: &ins}, nil
}

// checkAvailable rejects a checkout that Register would refuse, so the card
// is not charged for it. Register repeats the checks under the event lock.
// A pending inscription may pay again to settle.
func (s *PaymentService) checkAvailable(ctx context.Context, session domain.Session, event domain.Event) error {
	switch {
	case event.Status != domain.EventPublished:
		return ErrEventNotOpen
	case !event.IsPublic:
		return ErrEventPrivate
	case event.HasStarted(s.now()):
		return ErrEventStarted
	}

	current, err := s.registrar.ListInscriptions(ctx, session, session.UserID)
	if err != nil {
		return fmt.Errorf("s.registrar.ListInscriptions -> %w", err)
	}
	for _, ins := range current {
		if ins.EventID == event.ID && ins.Status != domain.InscriptionConfirmed {
			return ErrAlreadyInscribed
		}
	}

	if event.AvailableSpots <= 0 {
		return ErrEventFull
	}

	return nil
}
