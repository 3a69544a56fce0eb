// controllers/item.go
package controllers

import (
	"catering-backend/models"
	"catering-backend/services"
	"catering-backend/utils"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxImageSize = 5 << 20

// CreateItemInput defines the expected JSON structure for creating a menu item
type CreateItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"min=0,max=9999999999.99"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateItemInput defines the expected JSON structure for updating a menu item
type UpdateItemInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" binding:"omitempty,min=0,max=9999999999.99"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
	IsActive    *bool    `json:"isActive"`
}

type ItemController struct {
	db       *gorm.DB
	uploader services.ImageUploader
	log      *zap.Logger
}

// NewItemController accepts a nil uploader when image hosting is not configured.
func NewItemController(db *gorm.DB, uploader services.ImageUploader, log *zap.Logger) *ItemController {
	return &ItemController{db: db, uploader: uploader, log: log}
}

func (ic *ItemController) findItem(c *gin.Context, query *gorm.DB) (*models.Item, bool) {
	var item models.Item
	if err := query.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &item, true
}

// ListActive returns the public menu.
func (ic *ItemController) ListActive(c *gin.Context) {
	q := ic.db.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var items []models.Item
	if err := q.Order("category, name").Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ic *ItemController) GetActive(c *gin.Context) {
	if item, ok := ic.findItem(c, ic.db.Where("is_active = ?", true)); ok {
		c.JSON(http.StatusOK, item)
	}
}

// List returns every item, inactive ones included, a page at a time.
func (ic *ItemController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := ic.db.Model(&models.Item{}).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}

	var items []models.Item
	if err := ic.db.Order("category, name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"page":     page,
		"pageSize": pageSize,
		"total":    total,
	})
}

func (ic *ItemController) Create(c *gin.Context) {
	var input CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if item.Category == "" {
		item.Category = "General"
	}

	if err := ic.db.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ic *ItemController) Update(c *gin.Context) {
	var input UpdateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, ok := ic.findItem(c, ic.db)
	if !ok {
		return
	}

	// Update fields if provided
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := ic.db.Save(item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete removes an item and its package memberships.
func (ic *ItemController) Delete(c *gin.Context) {
	item, ok := ic.findItem(c, ic.db)
	if !ok {
		return
	}

	err := ic.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM package_items WHERE item_id = ?", item.ID).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// UploadImage stores the multipart "image" file and saves its URL on the item.
func (ic *ItemController) UploadImage(c *gin.Context) {
	if ic.uploader == nil {
		respondServiceError(c, ic.log, services.ErrUploadsDisabled)
		return
	}

	item, ok := ic.findItem(c, ic.db)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Image file is required")
		return
	}
	if header.Size > maxImageSize {
		utils.RespondWithError(c, http.StatusBadRequest, "Image must be 5MB or smaller")
		return
	}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported image type")
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read image")
		return
	}
	defer file.Close()

	url, err := ic.uploader.Upload(c.Request.Context(), file, "item-"+item.ID)
	if err != nil {
		ic.log.Error("image upload failed", zap.String("itemId", item.ID), zap.Error(err))
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to upload image")
		return
	}

	if err := ic.db.Model(item).Update("image_url", url).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update item")
		return
	}
	item.ImageURL = url
	c.JSON(http.StatusOK, item)
}
