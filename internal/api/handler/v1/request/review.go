package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/colaai/colaai-api/internal/domain"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(domain.MinRating), validation.Max(domain.MaxRating)),
		validation.Field(&req.Comment, validation.Length(0, 1000)),
	)
}

type CheckInRequest struct {
	TicketCode string `json:"ticketCode"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketCode, validation.Required),
	)
}
