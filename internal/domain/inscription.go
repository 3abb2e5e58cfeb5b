package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type InscriptionStatus string

const (
	InscriptionActive    InscriptionStatus = "ACTIVE"
	InscriptionConfirmed InscriptionStatus = "CONFIRMED"
	InscriptionCancelled InscriptionStatus = "CANCELLED"
	InscriptionCheckedIn InscriptionStatus = "CHECKED_IN"
)

// SeatHoldingStatuses are the statuses counted against an event's capacity.
var SeatHoldingStatuses = []InscriptionStatus{InscriptionActive, InscriptionCheckedIn}

// VisibleStatuses are the statuses listed in a participant's registrations.
var VisibleStatuses = []InscriptionStatus{InscriptionActive, InscriptionConfirmed, InscriptionCheckedIn}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentPending  PaymentStatus = "PENDING"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Inscription struct {
	ID              uuid.UUID         `json:"id"`
	ParticipantID   uuid.UUID         `json:"participantId"`
	EventID         uuid.UUID         `json:"eventId"`
	Status          InscriptionStatus `json:"status"`
	Paid            bool              `json:"paid"`
	PaymentStatus   PaymentStatus     `json:"paymentStatus"`
	TicketCode      string            `json:"ticketCode"`
	InscriptionDate time.Time         `json:"inscriptionDate"`
	CheckedInAt     *time.Time        `json:"checkedInAt,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`

	Event       *Event       `json:"event,omitempty"`
	Participant *UserSummary `json:"participant,omitempty"`
}

func (i Inscription) HoldsSeat() bool {
	return i.Status == InscriptionActive || i.Status == InscriptionCheckedIn
}

// ApplyPayment sets the status, paid flag and payment status for a
// registration against event, given the outcome reported by the caller.
// Free events are always paid. A PENDING outcome leaves the registration
// CONFIRMED without holding a seat.
func (i *Inscription) ApplyPayment(event Event, outcome PaymentStatus) {
	i.Paid = event.IsFree() || outcome == PaymentPaid
	if outcome == PaymentPending && !event.IsFree() {
		i.Status = InscriptionConfirmed
	} else {
		i.Status = InscriptionActive
	}
	if i.Paid {
		i.PaymentStatus = PaymentPaid
	} else {
		i.PaymentStatus = PaymentPending
	}
}

// NewTicketCode builds the opaque code printed on a ticket.
func NewTicketCode(eventID, participantID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("TICKET-%s-%s-%d", tail(eventID), tail(participantID), at.UnixMilli())
}

func tail(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-8:]
}
