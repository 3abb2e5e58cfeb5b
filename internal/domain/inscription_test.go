package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestInscription_ApplyPayment(t *testing.T) {
	free := Event{Price: 0}
	priced := Event{Price: 120}

	tests := []struct {
		name        string
		event       Event
		outcome     PaymentStatus
		wantStatus  InscriptionStatus
		wantPaid    bool
		wantPayment PaymentStatus
	}{
		{"Free event without outcome", free, "", InscriptionActive, true, PaymentPaid},
		{"Free event ignores a pending outcome", free, PaymentPending, InscriptionActive, true, PaymentPaid},
		{"Priced event paid", priced, PaymentPaid, InscriptionActive, true, PaymentPaid},
		{"Priced event pending", priced, PaymentPending, InscriptionConfirmed, false, PaymentPending},
		{"Priced event without outcome", priced, "", InscriptionActive, false, PaymentPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ins Inscription
			ins.ApplyPayment(tt.event, tt.outcome)

			assert.Equal(t, tt.wantStatus, ins.Status)
			assert.Equal(t, tt.wantPaid, ins.Paid)
			assert.Equal(t, tt.wantPayment, ins.PaymentStatus)
		})
	}
}

func TestInscription_HoldsSeat(t *testing.T) {
	assert.True(t, Inscription{Status: InscriptionActive}.HoldsSeat())
	assert.True(t, Inscription{Status: InscriptionCheckedIn}.HoldsSeat())
	assert.False(t, Inscription{Status: InscriptionConfirmed}.HoldsSeat())
	assert.False(t, Inscription{Status: InscriptionCancelled}.HoldsSeat())
}

func TestNewTicketCode(t *testing.T) {
	eventID := uuid.MustParse("6f1c2d3e-0000-4000-8000-0000a1b2c3d4")
	participantID := uuid.MustParse("0a0b0c0d-0000-4000-8000-00000000beef")
	at := time.UnixMilli(1735689600000)

	code := NewTicketCode(eventID, participantID, at)

	assert.Equal(t, "TICKET-a1b2c3d4-0000beef-1735689600000", code)
	assert.True(t, strings.HasPrefix(code, "TICKET-"))
}
