package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/domain"
)

type CreateInscriptionRequest struct {
	EventID       string `json:"eventId"`
	PaymentStatus string `json:"paymentStatus,omitempty" enums:"PAID,PENDING"`
}

func (req *CreateInscriptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, isUUID),
		validation.Field(&req.PaymentStatus, validation.In(string(domain.PaymentPaid), string(domain.PaymentPending))),
	)
}

func (req *CreateInscriptionRequest) EventUUID() uuid.UUID {
	return uuid.MustParse(req.EventID)
}
