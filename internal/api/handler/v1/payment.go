package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/colaai/colaai-api/internal/api/handler/v1/request"
	"github.com/colaai/colaai-api/internal/api/handler/v1/response"
	"github.com/colaai/colaai-api/internal/domain"
	"github.com/colaai/colaai-api/internal/payment"
	"github.com/colaai/colaai-api/internal/service"
)

type PaymentService interface {
	Pay(ctx context.Context, session domain.Session, eventID uuid.UUID, req payment.Request) (service.Checkout, error)
}

type PaymentHandler struct {
	svc  PaymentService
	uSvc UserService
}

func NewPaymentHandler(svc PaymentService, uSvc UserService) *PaymentHandler {
	return &PaymentHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandlePay godoc
// @Summary      Pay for an event and inscribe
// @Description  Card 4111 1111 1111 1111 is approved, 5555 5555 5555 4444 stays under review and 4000 0000 0000 0002 is declined.
// @Description  Approved payments answer 201, payments under review 202. Free events are inscribed without a charge.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request   body      request.PaymentRequest true "request body"
// @Success      201      {object}   service.Checkout
// @Success      202      {object}   service.Checkout
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /payments [post]
// @Security BearerAuth
func (h *PaymentHandler) HandlePay(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	checkout, err := h.svc.Pay(ctx.Request.Context(), session, req.EventUUID(), req.Payment())
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		renderServiceErr(ctx, "v1.HandlePay -> h.svc.Pay", err)
		return
	}

	status := http.StatusCreated
	if checkout.Payment != nil && checkout.Payment.Outcome == payment.OutcomePending {
		status = http.StatusAccepted
	}

	ctx.JSON(status, checkout)
}
