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

type ReviewService interface {
	ListReviews(ctx context.Context, eventID uuid.UUID) ([]domain.EventReview, error)
	AddReview(ctx context.Context, session domain.Session, eventID uuid.UUID, rating int, comment string) (domain.EventReview, error)
}

type ReviewHandler struct {
	svc  ReviewService
	uSvc UserService
}

func NewReviewHandler(svc ReviewService, uSvc UserService) *ReviewHandler {
	return &ReviewHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListReviews godoc
// @Summary      List the reviews of an event
// @Tags         reviews
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Success      200      {array}    domain.EventReview
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/reviews [get]
func (h *ReviewHandler) HandleListReviews(ctx *gin.Context) {
	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviews, err := h.svc.ListReviews(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleListReviews -> h.svc.ListReviews", err)
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

// HandleCreateReview godoc
// @Summary      Review an event
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Param        request   body      request.CreateReviewRequest true "request body"
// @Success      201      {object}   domain.EventReview
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/reviews [post]
// @Security BearerAuth
func (h *ReviewHandler) HandleCreateReview(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	review, err := h.svc.AddReview(ctx.Request.Context(), session, eventID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleCreateReview -> h.svc.AddReview", err)
		return
	}

	ctx.JSON(http.StatusCreated, review)
}
