package controllers

import (
	"catering-backend/services"
	"catering-backend/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	bookings *services.BookingService
	log      *zap.Logger
}

func NewAvailabilityController(bookings *services.BookingService, log *zap.Logger) *AvailabilityController {
	return &AvailabilityController{bookings: bookings, log: log}
}

// Month renders the calendar for ?year=&month=, defaulting to the current month.
func (ac *AvailabilityController) Month(c *gin.Context) {
	today := ac.bookings.Today()
	year, month := today.Year(), today.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1970 || y > 9999 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
			return
		}
		month = time.Month(m)
	}

	view, err := ac.bookings.Month(c.Request.Context(), year, month)
	if err != nil {
		ac.log.Error("availability lookup failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load availability")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (ac *AvailabilityController) Occupied(c *gin.Context) {
	set, err := ac.bookings.Occupied(c.Request.Context())
	if err != nil {
		ac.log.Error("availability lookup failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": set.Sorted()})
}
