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

type EventService interface {
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error)
	CreateEvent(ctx context.Context, session domain.Session, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, session domain.Session, id uuid.UUID, update domain.EventUpdate) (domain.Event, error)
	DeleteEvent(ctx context.Context, session domain.Session, id uuid.UUID) error
}

type EventStatsService interface {
	EventStats(ctx context.Context, session domain.Session, eventID uuid.UUID) (domain.EventStats, error)
}

type CheckInService interface {
	CheckIn(ctx context.Context, session domain.Session, eventID uuid.UUID, ticketCode string) (domain.CheckInResult, error)
}

type EventHandler struct {
	svc     EventService
	stats   EventStatsService
	checkIn CheckInService
	uSvc    UserService
}

func NewEventHandler(svc EventService, stats EventStatsService, checkIn CheckInService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:     svc,
		stats:   stats,
		checkIn: checkIn,
		uSvc:    uSvc,
	}
}

// HandleListEvents godoc
// @Summary      List events
// @Description  Without organizerId only published public events are listed.
// @Tags         events
// @Produce      json
// @Param        search        query     string  false  "matches title, description or location"
// @Param        category      query     string  false  "category name"
// @Param        location      query     string  false  "location substring"
// @Param        startDate     query     string  false  "earliest start date"
// @Param        endDate       query     string  false  "latest start date"
// @Param        organizerId   query     string  false  "organizer ID"
// @Success      200      {array}    domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	var query request.ListEventsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := query.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), query.Filter())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.ListEvents", err)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := uuidParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.GetEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	session, respErr := getSession(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), session, req.Event())
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", req.CategoryID))
			return
		}

		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.CreateEvent", err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Description  Only the organizer of the event may update it. Omitted fields are left unchanged.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Param        request   body      request.UpdateEventRequest true "request body"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
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

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), session, eventID, req.Update())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
		default:
			renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.UpdateEvent", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event
// @Description  The organizer or an admin may delete an event without active inscriptions.
// @Tags         events
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
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

	if err := h.svc.DeleteEvent(ctx.Request.Context(), session, eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleDeleteEvent -> h.svc.DeleteEvent", err)
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "event deleted"})
}

// HandleGetEventStats godoc
// @Summary      Get event statistics
// @Tags         events
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Success      200      {object}   domain.EventStats
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/stats [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEventStats(ctx *gin.Context) {
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

	stats, err := h.stats.EventStats(ctx.Request.Context(), session, eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleGetEventStats -> h.stats.EventStats", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleCheckIn godoc
// @Summary      Check in a ticket
// @Description  An unknown or cancelled ticket yields status INVALID.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      string  true  "event ID"
// @Param        request   body      request.CheckInRequest true "request body"
// @Success      200      {object}   domain.CheckInResult
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID}/check-in [post]
// @Security BearerAuth
func (h *EventHandler) HandleCheckIn(ctx *gin.Context) {
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

	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.checkIn.CheckIn(ctx.Request.Context(), session, eventID, req.TicketCode)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		renderServiceErr(ctx, "v1.HandleCheckIn -> h.checkIn.CheckIn", err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
