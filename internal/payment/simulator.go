// Package payment simulates a card acquirer. Outcomes are fully determined by
// the request so the same card always behaves the same way.
package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodDebitCard  Method = "debit_card"
	MethodPix        Method = "pix"
	MethodBoleto     Method = "boleto"
	MethodPaypal     Method = "paypal"
)

func (m Method) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

type Outcome string

const (
	OutcomeSuccess  Outcome = "SUCCESS"
	OutcomePending  Outcome = "PENDING"
	OutcomeDeclined Outcome = "DECLINED"
)

// Test cards with a fixed outcome.
const (
	CardSuccess  = "4111111111111111"
	CardPending  = "5555555555554444"
	CardDeclined = "4000000000000002"
)

// DefaultLatency approximates an acquirer round trip.
const DefaultLatency = 500 * time.Millisecond

var ErrInvalidCard = errors.New("invalid card number")

type Request struct {
	Method     Method
	CardNumber string
	CardName   string
	ExpiryDate string
	CVV        string
	Amount     float64
}

type Result struct {
	TransactionID string    `json:"transactionId"`
	Outcome       Outcome   `json:"outcome"`
	Message       string    `json:"message"`
	ProcessedAt   time.Time `json:"processedAt"`
}

type Simulator struct {
	// Latency is waited before answering; zero answers immediately.
	Latency time.Duration
}

func NewSimulator(latency time.Duration) *Simulator {
	return &Simulator{Latency: latency}
}

// Charge maps the request to an outcome. The three test cards win over the
// method; other non-card methods succeed; other cards succeed when their
// number passes the Luhn check and fail with ErrInvalidCard otherwise.
func (s *Simulator) Charge(ctx context.Context, req Request) (Result, error) {
	if s.Latency > 0 {
		timer := time.NewTimer(s.Latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	number := NormalizeCardNumber(req.CardNumber)

	var outcome Outcome
	switch {
	case number == CardSuccess:
		outcome = OutcomeSuccess
	case number == CardPending:
		outcome = OutcomePending
	case number == CardDeclined:
		outcome = OutcomeDeclined
	case !req.Method.IsCard():
		outcome = OutcomeSuccess
	case luhnValid(number):
		outcome = OutcomeSuccess
	default:
		return Result{}, ErrInvalidCard
	}

	res := Result{
		TransactionID: uuid.NewString(),
		Outcome:       outcome,
		Message:       messages[outcome],
		ProcessedAt:   time.Now().UTC(),
	}

	zap.L().Debug("payment simulated",
		zap.String("transaction_id", res.TransactionID),
		zap.String("method", string(req.Method)),
		zap.String("outcome", string(outcome)),
		zap.String("card", mask(number)),
	)

	return res, nil
}

var messages = map[Outcome]string{
	OutcomeSuccess:  "payment approved",
	OutcomePending:  "payment under review",
	OutcomeDeclined: "payment declined, try another card",
}

// NormalizeCardNumber strips spaces and dashes.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}

		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

func mask(number string) string {
	if len(number) <= 4 {
		return number
	}

	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
