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
	"github.com/colaai/colaai-api/internal/service"
)

type InscriptionService interface {
	ListInscriptions(ctx context.Context, session domain.Session, userID uuid.UUID) ([]domain.Inscription, error)
	Register(ctx context.Context, session domain.Session, eventID uuid.UUID, outcome domain.PaymentStatus) (domain.Inscription, error)
	Cancel(ctx context.Context, session domain.Session, id uuid.UUID) (domain.Inscription, error)
}

type InscriptionHandler struct {
	svc  InscriptionService
	uSvc UserService
}

func NewInscriptionHandler(svc InscriptionService, uSvc UserService) *InscriptionHandler {
	return &InscriptionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListInscriptions godoc
// @Summary      List inscriptions of a user
// @Description  Defaults to the authenticated user. Listing another user requires the ADMIN role.
// @Tags         inscriptions
// @Produce      json
// @Param        userId   query     string  false  "user ID"
// @Success      200      {array}    domain.Inscription
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inscriptions [get]
// @Security BearerAuth
func (h *InscriptionHandler) HandleListInscriptions(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := userQuery(ctx, session)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	inscriptions, err := h.svc.ListInscriptions(ctx.Request.Context(), session, userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListInscriptions -> h.svc.ListInscriptions", err)
		return
	}

	ctx.JSON(http.StatusOK, inscriptions)
}

// HandleCreateInscription godoc
// @Summary      Inscribe to an event
// @Description  paymentStatus applies to priced events only. PENDING keeps the inscription CONFIRMED until a PAID inscription settles it.
// @Tags         inscriptions
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateInscriptionRequest true "request body"
// @Success      201      {object}   domain.Inscription
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inscriptions [post]
// @Security BearerAuth
func (h *InscriptionHandler) HandleCreateInscription(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateInscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	inscription, err := h.svc.Register(ctx.Request.Context(), session, req.EventUUID(), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleCreateInscription -> h.svc.Register", err)
		return
	}

	ctx.JSON(http.StatusCreated, inscription)
}

// HandleCancelInscription godoc
// @Summary      Cancel an inscription
// @Tags         inscriptions
// @Produce      json
// @Param        inscriptionID   path      string  true   "inscription ID"
// @Param        userId          query     string  false  "must match the authenticated user"
// @Success      200      {object}   domain.Inscription
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /inscriptions/{inscriptionID} [delete]
// @Security BearerAuth
func (h *InscriptionHandler) HandleCancelInscription(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	inscriptionID, respErr := uuidParam(ctx, "inscriptionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := userQuery(ctx, session)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if userID != session.UserID {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
		return
	}

	inscription, err := h.svc.Cancel(ctx.Request.Context(), session, inscriptionID)
	if err != nil {
		if errors.Is(err, service.ErrInscriptionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("inscription", "ID", inscriptionID))
			return
		}

		renderServiceErr(ctx, "v1.HandleCancelInscription -> h.svc.Cancel", err)
		return
	}

	ctx.JSON(http.StatusOK, inscription)
}

// userQuery reads the optional userId query parameter, defaulting to the
// caller.
func userQuery(ctx *gin.Context, session domain.Session) (uuid.UUID, *response.Err) {
	raw := ctx.Query("userId")
	if raw == "" {
		return session.UserID, nil
	}

	id, err := request.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, response.ErrBadRequest(errors.New("userId must be a valid UUID"))
	}

	return id, nil
}
