package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/colaai/colaai-api/internal/api/handler/v1/response"
	"github.com/colaai/colaai-api/internal/service"
)

// badRequestErrs are business rule violations reported as 400.
var badRequestErrs = []error{
	service.ErrInvalidRole,
	service.ErrInvalidEventDates,
	service.ErrEventStartInPast,
	service.ErrInvalidCapacity,
	service.ErrInvalidPrice,
	service.ErrInvalidEventStatus,
	service.ErrCapacityBelowSeats,
	service.ErrEventHasInscriptions,
	service.ErrEventNotOpen,
	service.ErrEventPrivate,
	service.ErrEventStarted,
	service.ErrEventFull,
	service.ErrAlreadyInscribed,
	service.ErrInscriptionCancelled,
	service.ErrInvalidPaymentStatus,
	service.ErrInvalidRating,
	service.ErrInvalidCard,
	service.ErrCannotDeleteSelf,
	service.ErrCategoryNameExists,
	service.ErrUserEmailExists,
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// ruleViolation returns the sentinel err wraps so the response carries the
// rule's message rather than the call chain.
func ruleViolation(err error) error {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return target
		}
	}

	return err
}

// renderServiceErr renders the errors every service can return. Not found
// errors carry the resource identity and are handled by the caller.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
	case errors.Is(err, service.ErrPaymentDeclined):
		response.RenderErr(ctx, response.ErrPaymentDeclined(service.ErrPaymentDeclined))
	case isBadRequest(err):
		response.RenderErr(ctx, response.ErrBadRequest(ruleViolation(err)))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}
