package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/payment"
)

var (
	cardNumberExp = regexp.MustCompile(`^[0-9 -]{12,23}$`)
	expiryExp     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvExp        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type PaymentRequest struct {
	EventID    string `json:"eventId"`
	Method     string `json:"method" enums:"credit_card,debit_card,pix,boleto,paypal"`
	CardNumber string `json:"cardNumber,omitempty"`
	CardName   string `json:"cardName,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

func (req *PaymentRequest) Validate() error {
	isCard := payment.Method(req.Method).IsCard()

	cardField := func(rules ...validation.Rule) []validation.Rule {
		if isCard {
			return append([]validation.Rule{validation.Required}, rules...)
		}
		return rules
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, isUUID),
		validation.Field(&req.Method, validation.Required, validation.In(
			string(payment.MethodCreditCard),
			string(payment.MethodDebitCard),
			string(payment.MethodPix),
			string(payment.MethodBoleto),
			string(payment.MethodPaypal),
		)),
		validation.Field(&req.CardNumber, cardField(validation.Match(cardNumberExp))...),
		validation.Field(&req.CardName, cardField()...),
		validation.Field(&req.ExpiryDate, cardField(validation.Match(expiryExp))...),
		validation.Field(&req.CVV, cardField(validation.Match(cvvExp))...),
	)
}

func (req *PaymentRequest) EventUUID() uuid.UUID {
	return uuid.MustParse(req.EventID)
}

func (req *PaymentRequest) Payment() payment.Request {
	return payment.Request{
		Method:     payment.Method(req.Method),
		CardNumber: req.CardNumber,
		CardName:   req.CardName,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	}
}
