package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/payment"
	"github.com/colaai/colaai-api/internal/service"
)

func cardRequest(number string) payment.Request {
	return payment.Request{
		Method:     payment.MethodCreditCard,
		CardNumber: number,
		CardName:   "MARIA SILVA",
		ExpiryDate: "12/30",
		CVV:        "123",
	}
}

func TestPaymentService_Pay(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		card          string
		wantErr       error
		wantOutcome   payment.Outcome
		wantStatus    domain.InscriptionStatus
		wantPaid      bool
		wantPayStatus domain.PaymentStatus
	}{
		{
			name:          "Approved card",
			card:          payment.CardSuccess,
			wantOutcome:   payment.OutcomeSuccess,
			wantStatus:    domain.InscriptionActive,
			wantPaid:      true,
			wantPayStatus: domain.PaymentPaid,
		},
		{
			name:          "Card under review",
			card:          "5555 5555 5555 4444",
			wantOutcome:   payment.OutcomePending,
			wantStatus:    domain.InscriptionConfirmed,
			wantPayStatus: domain.PaymentPending,
		},
		{
			name:        "Declined card",
			card:        payment.CardDeclined,
			wantErr:     service.ErrPaymentDeclined,
			wantOutcome: payment.OutcomeDeclined,
		},
		{
			name:    "Invalid card",
			card:    "1234 5678 9012 3456",
			wantErr: service.ErrInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			inscriptions := service.NewInscriptionService(f.inscriptions)
			svc := service.NewPaymentService(f.events, inscriptions, payment.NewSimulator(0))
			event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withPrice(99.9))
			participant := f.newUser(t, domain.RoleParticipant)

			checkout, err := svc.Pay(ctx, participant.Session(), event.ID, cardRequest(tt.card))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, checkout.Inscription)
				if tt.wantOutcome != "" {
					require.NotNil(t, checkout.Payment)
					assert.Equal(t, tt.wantOutcome, checkout.Payment.Outcome)
				}

				list, err := inscriptions.ListInscriptions(ctx, participant.Session(), participant.ID)
				require.NoError(t, err)
				assert.Empty(t, list)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, checkout.Payment)
			assert.Equal(t, tt.wantOutcome, checkout.Payment.Outcome)
			assert.NotEmpty(t, checkout.Payment.TransactionID)

			require.NotNil(t, checkout.Inscription)
			assert.Equal(t, tt.wantStatus, checkout.Inscription.Status)
			assert.Equal(t, tt.wantPaid, checkout.Inscription.Paid)
			assert.Equal(t, tt.wantPayStatus, checkout.Inscription.PaymentStatus)
		})
	}
}

func TestPaymentService_Pay_FreeEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := service.NewPaymentService(f.events, service.NewInscriptionService(f.inscriptions), payment.NewSimulator(0))
	event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withCapacity(1))

	checkout, err := svc.Pay(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, cardRequest(payment.CardDeclined))
	require.NoError(t, err)

	assert.Nil(t, checkout.Payment)
	require.NotNil(t, checkout.Inscription)
	assert.Equal(t, domain.InscriptionActive, checkout.Inscription.Status)
	assert.True(t, checkout.Inscription.Paid)

	_, err = svc.Pay(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, cardRequest(payment.CardSuccess))
	assert.ErrorIs(t, err, service.ErrEventFull)
}

func TestPaymentService_Pay_ClosedEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := service.NewPaymentService(f.events, service.NewInscriptionService(f.inscriptions), payment.NewSimulator(0))
	event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withPrice(10), withStart(time.Now().Add(-time.Hour)))

	checkout, err := svc.Pay(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, cardRequest(payment.CardSuccess))
	assert.ErrorIs(t, err, service.ErrEventStarted)
	assert.Nil(t, checkout.Payment)
}

type countingCharger struct {
	next  service.Charger
	calls int
}

func (c *countingCharger) Charge(ctx context.Context, req payment.Request) (payment.Result, error) {
	c.calls++
	return c.next.Charge(ctx, req)
}

func TestPaymentService_Pay_RejectsBeforeCharging(t *testing.T) {
	ctx := context.Background()

	t.Run("Full event", func(t *testing.T) {
		f := newFixture(t)
		inscriptions := service.NewInscriptionService(f.inscriptions)
		charger := &countingCharger{next: payment.NewSimulator(0)}
		svc := service.NewPaymentService(f.events, inscriptions, charger)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withPrice(30), withCapacity(1))

		_, err := svc.Pay(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, cardRequest(payment.CardSuccess))
		require.NoError(t, err)
		require.Equal(t, 1, charger.calls)

		checkout, err := svc.Pay(ctx, f.newUser(t, domain.RoleParticipant).Session(), event.ID, cardRequest(payment.CardSuccess))
		assert.ErrorIs(t, err, service.ErrEventFull)
		assert.Nil(t, checkout.Payment)
		assert.Equal(t, 1, charger.calls)
	})

	t.Run("Already inscribed", func(t *testing.T) {
		f := newFixture(t)
		inscriptions := service.NewInscriptionService(f.inscriptions)
		charger := &countingCharger{next: payment.NewSimulator(0)}
		svc := service.NewPaymentService(f.events, inscriptions, charger)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withPrice(30))
		participant := f.newUser(t, domain.RoleParticipant)

		_, err := svc.Pay(ctx, participant.Session(), event.ID, cardRequest(payment.CardSuccess))
		require.NoError(t, err)

		checkout, err := svc.Pay(ctx, participant.Session(), event.ID, cardRequest(payment.CardSuccess))
		assert.ErrorIs(t, err, service.ErrAlreadyInscribed)
		assert.Nil(t, checkout.Payment)
		assert.Equal(t, 1, charger.calls)
	})

	t.Run("Pending inscription pays again to settle", func(t *testing.T) {
		f := newFixture(t)
		inscriptions := service.NewInscriptionService(f.inscriptions)
		charger := &countingCharger{next: payment.NewSimulator(0)}
		svc := service.NewPaymentService(f.events, inscriptions, charger)
		event := f.newEvent(t, f.newUser(t, domain.RoleOrganizer), withPrice(30))
		participant := f.newUser(t, domain.RoleParticipant)

		pending, err := svc.Pay(ctx, participant.Session(), event.ID, cardRequest("5555 5555 5555 4444"))
		require.NoError(t, err)
		require.NotNil(t, pending.Inscription)
		require.Equal(t, domain.InscriptionConfirmed, pending.Inscription.Status)

		settled, err := svc.Pay(ctx, participant.Session(), event.ID, cardRequest(payment.CardSuccess))
		require.NoError(t, err)
		require.NotNil(t, settled.Inscription)
		assert.Equal(t, pending.Inscription.ID, settled.Inscription.ID)
		assert.Equal(t, domain.InscriptionActive, settled.Inscription.Status)
		assert.Equal(t, 2, charger.calls)
	})
}
