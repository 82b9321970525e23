package handlers

import (
	"errors"
	"net/http"

	"cleanslate/database/repository"
	"cleanslate/middleware"
	"cleanslate/services/booking"
	"cleanslate/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var validation *utils.ValidationError
	var illegal *utils.IllegalTransitionError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", validation.Error())
	case errors.Is(err, booking.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
	case errors.As(err, &illegal):
		utils.JSONError(c, http.StatusConflict, "Illegal status transition", illegal.Error())
	case errors.Is(err, booking.ErrWorkerUnavailable):
		utils.JSONError(c, http.StatusConflict, "Worker unavailable", err.Error())
	case errors.Is(err, booking.ErrNoWorkerMatched):
		utils.JSONError(c, http.StatusNotFound, "No worker matched", err.Error())
	case errors.Is(err, utils.ErrAlreadyAssigned):
		utils.JSONError(c, http.StatusConflict, "Already assigned", err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		utils.JSONError(c, http.StatusConflict, "Concurrent modification, please retry", err.Error())
	case errors.Is(err, repository.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "Already exists", err.Error())
	case errors.Is(err, utils.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

func forbidden(c *gin.Context) {
	utils.JSONError(c, http.StatusForbidden, "Forbidden", "you may not access this resource")
}

// callerFrom reads the identity placed on the context by middleware.JWTAuth.
func callerFrom(c *gin.Context) booking.Caller {
	return booking.Caller{
		ID:   c.GetString(middleware.ActorIDKey),
		Role: booking.Actor(c.GetString(middleware.ActorRoleKey)),
	}
}

// isSelfOrAdmin allows admins, or the caller acting on their own id with the given role.
func isSelfOrAdmin(c *gin.Context, role, id string) bool {
	caller := callerFrom(c)
	if caller.Role == booking.ActorAdmin {
		return true
	}
	return string(caller.Role) == role && caller.ID == id
}
