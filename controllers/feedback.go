package controllers

import (
	"catering-backend/models"
	"catering-backend/utils"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateFeedbackInput struct {
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Comment   string  `json:"comment" binding:"max=2000"`
	BookingID *string `json:"bookingId" binding:"omitempty,uuid"`
}

type PublishFeedbackInput struct {
	Published *bool `json:"published" binding:"required"`
}

type FeedbackController struct {
	db *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{db: db}
}

// Create records feedback from the logged-in customer. It stays hidden until published.
func (fc *FeedbackController) Create(c *gin.Context) {
	userID, _, ok := utils.Identity(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := fc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	if input.BookingID != nil {
		var count int64
		if err := fc.db.Model(&models.Booking{}).
			Where("id = ? AND customer_id = ?", *input.BookingID, userID).
			Count(&count).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if count == 0 {
			utils.RespondWithError(c, http.StatusForbidden, "You do not have access to this booking")
			return
		}
	}

	feedback := models.Feedback{
		CustomerID: &user.ID,
		BookingID:  input.BookingID,
		Name:       user.Name,
		Email:      user.Email,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := fc.db.Create(&feedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save feedback")
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (fc *FeedbackController) ListPublished(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.db.Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve feedback")
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (fc *FeedbackController) List(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.db.Order("created_at DESC").Find(&feedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve feedback")
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (fc *FeedbackController) find(c *gin.Context) (*models.Feedback, bool) {
	var feedback models.Feedback
	if err := fc.db.First(&feedback, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Feedback not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &feedback, true
}

func (fc *FeedbackController) Publish(c *gin.Context) {
	var input PublishFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	feedback, ok := fc.find(c)
	if !ok {
		return
	}

	if err := fc.db.Model(feedback).Update("is_published", *input.Published).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update feedback")
		return
	}
	feedback.IsPublished = *input.Published
	c.JSON(http.StatusOK, feedback)
}

func (fc *FeedbackController) Delete(c *gin.Context) {
	feedback, ok := fc.find(c)
	if !ok {
		return
	}
	if err := fc.db.Delete(feedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
