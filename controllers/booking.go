package controllers

import (
	"catering-backend/billing"
	"catering-backend/models"
	"catering-backend/services"
	"catering-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBookingInput defines the expected JSON structure for a booking request
type CreateBookingInput struct {
	Customer   string         `json:"customer" binding:"required"`
	Email      string         `json:"email" binding:"required,email"`
	Phone      string         `json:"phone" binding:"required,phone"`
	EventType  string         `json:"eventType" binding:"required"`
	Guests     int            `json:"guests" binding:"required,min=1"`
	Date       string         `json:"date" binding:"required,dateonly"`
	Location   string         `json:"location" binding:"required"`
	PackageID  *string        `json:"packageId" binding:"omitempty,uuid"`
	Package    string         `json:"package"`
	Amount     billing.Amount `json:"amount"`
	CustomMenu string         `json:"customMenu"`
	Notes      string         `json:"notes"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,bookingstatus"`
}

type BookingController struct {
	bookings *services.BookingService
	payments *services.PaymentService
	log      *zap.Logger
}

func NewBookingController(bookings *services.BookingService, payments *services.PaymentService, log *zap.Logger) *BookingController {
	return &BookingController{bookings: bookings, payments: payments, log: log}
}

func (bc *BookingController) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.bookings.Create(c.Request.Context(), services.CreateBookingInput{
		CustomerID:  &actor.UserID,
		Customer:    input.Customer,
		Email:       input.Email,
		Phone:       input.Phone,
		EventType:   input.EventType,
		Guests:      input.Guests,
		Date:        input.Date,
		Location:    input.Location,
		PackageID:   input.PackageID,
		PackageName: input.Package,
		Amount:      input.Amount.Float(),
		CustomMenu:  input.CustomMenu,
		Notes:       input.Notes,
	})
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) Mine(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	bookings, err := bc.bookings.ListForCustomer(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	booking, err := bc.bookings.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Payment returns the payment record of a booking the caller can see.
func (bc *BookingController) Payment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	booking, err := bc.bookings.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}

	payment, err := bc.payments.GetForBooking(c.Request.Context(), booking.ID)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (bc *BookingController) Cancel(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	booking, err := bc.bookings.Cancel(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// List returns all bookings, optionally filtered by ?status=.
func (bc *BookingController) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !isBookingStatus(status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
		return
	}

	bookings, err := bc.bookings.List(c.Request.Context(), status)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func isBookingStatus(s string) bool {
	for _, status := range models.BookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (bc *BookingController) UpdateStatus(c *gin.Context) {
	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) Delete(c *gin.Context) {
	if err := bc.bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
