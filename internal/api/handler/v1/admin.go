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

type AdminService interface {
	ListUsers(ctx context.Context, session domain.Session) ([]domain.UserWithCounts, error)
	UpdateUserRole(ctx context.Context, session domain.Session, userID uuid.UUID, role domain.Role) (domain.User, error)
	DeleteUser(ctx context.Context, session domain.Session, userID uuid.UUID) error
	ListEvents(ctx context.Context, session domain.Session) ([]domain.AdminEvent, error)
	Stats(ctx context.Context, session domain.Session) (domain.AdminStats, error)
}

type AdminHandler struct {
	svc  AdminService
	uSvc UserService
}

func NewAdminHandler(svc AdminService, uSvc UserService) *AdminHandler {
	return &AdminHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.UserWithCounts
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context(), session)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListUsers -> h.svc.ListUsers", err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleUpdateUserRole godoc
// @Summary      Change the role of a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.UpdateUserRoleRequest true "request body"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users [patch]
// @Security BearerAuth
func (h *AdminHandler) HandleUpdateUserRole(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateUserRole(ctx.Request.Context(), session, req.UserUUID(), domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
			return
		}

		renderServiceErr(ctx, "v1.HandleUpdateUserRole -> h.svc.UpdateUserRole", err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleDeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the user with their inscriptions, reviews and organized events.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request   body      request.DeleteUserRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/users [delete]
// @Security BearerAuth
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DeleteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteUser(ctx.Request.Context(), session, req.UserUUID()); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
			return
		}

		renderServiceErr(ctx, "v1.HandleDeleteUser -> h.svc.DeleteUser", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "user deleted"})
}

// HandleListAdminEvents godoc
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.AdminEvent
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/events [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListAdminEvents(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), session)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListAdminEvents -> h.svc.ListEvents", err)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetStats godoc
// @Summary      Get platform statistics
// @Tags         admin
// @Produce      json
// @Success      200      {object}   domain.AdminStats
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetStats(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.Stats(ctx.Request.Context(), session)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetStats -> h.svc.Stats", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
