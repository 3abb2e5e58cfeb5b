package request

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colaai/colaai-api/internal/payment"
)

func TestPaymentRequest_Validate(t *testing.T) {
	eventID := uuid.NewString()

	tests := []struct {
		name    string
		req     PaymentRequest
		wantErr bool
	}{
		{
			name: "Credit card",
			req: PaymentRequest{
				EventID: eventID, Method: "credit_card",
				CardNumber: "4111 1111 1111 1111", CardName: "MARIA SILVA", ExpiryDate: "12/30", CVV: "123",
			},
		},
		{
			name: "Pix needs no card",
			req:  PaymentRequest{EventID: eventID, Method: "pix"},
		},
		{
			name:    "Card method without card data",
			req:     PaymentRequest{EventID: eventID, Method: "debit_card"},
			wantErr: true,
		},
		{
			name: "Bad expiry",
			req: PaymentRequest{
				EventID: eventID, Method: "credit_card",
				CardNumber: "4111111111111111", CardName: "MARIA", ExpiryDate: "13/30", CVV: "123",
			},
			wantErr: true,
		},
		{
			name:    "Unknown method",
			req:     PaymentRequest{EventID: eventID, Method: "cash"},
			wantErr: true,
		},
		{
			name:    "Missing event",
			req:     PaymentRequest{Method: "boleto"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaymentRequest_Payment(t *testing.T) {
	req := PaymentRequest{
		EventID: uuid.NewString(), Method: "credit_card",
		CardNumber: "5555 5555 5555 4444", CardName: "JOÃO", ExpiryDate: "01/29", CVV: "999",
	}
	require.NoError(t, req.Validate())

	p := req.Payment()
	assert.Equal(t, payment.MethodCreditCard, p.Method)
	assert.Equal(t, req.CardNumber, p.CardNumber)
	assert.Zero(t, p.Amount)
	assert.Equal(t, req.EventID, req.EventUUID().String())
}
