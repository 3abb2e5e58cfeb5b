package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/colaai/colaai-api/internal/api/handler/v1/request"
	"github.com/colaai/colaai-api/internal/api/handler/v1/response"
	"github.com/colaai/colaai-api/internal/domain"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.EventCategory, error)
	CreateCategory(ctx context.Context, session domain.Session, category domain.EventCategory) (domain.EventCategory, error)
}

type CategoryHandler struct {
	svc  CategoryService
	uSvc UserService
}

func NewCategoryHandler(svc CategoryService, uSvc UserService) *CategoryHandler {
	return &CategoryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListCategories godoc
// @Summary      List event categories
// @Description  eventCount counts the published public events of each category.
// @Tags         categories
// @Produce      json
// @Success      200      {array}    domain.EventCategory
// @Failure      500      {object}   response.Err
// @Router       /categories [get]
func (h *CategoryHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCategories -> h.svc.ListCategories", err)
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleCreateCategory godoc
// @Summary      Create an event category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      201      {object}   domain.EventCategory
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories [post]
// @Security BearerAuth
func (h *CategoryHandler) HandleCreateCategory(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), session, req.Category())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateCategory -> h.svc.CreateCategory", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}
