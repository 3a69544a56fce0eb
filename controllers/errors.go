package controllers

import (
	"catering-backend/services"
	"catering-backend/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service errors to HTTP responses.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrPackageNotFound),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrDateInPast),
		errors.Is(err, services.ErrGuestsBelowMinimum):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDateUnavailable),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, "You do not have access to this booking")
	case errors.Is(err, services.ErrUploadsDisabled):
		utils.RespondWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func actorFrom(c *gin.Context) (services.Actor, bool) {
	userID, isAdmin, ok := utils.Identity(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return services.Actor{}, false
	}
	return services.Actor{UserID: userID, IsAdmin: isAdmin}, true
}
