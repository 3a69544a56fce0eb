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

type CreatePackageInput struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	PricePerHead float64  `json:"pricePerHead" binding:"min=0,max=9999999999.99"`
	MinGuests    int      `json:"minGuests" binding:"omitempty,min=1"`
	ItemIDs      []string `json:"itemIds" binding:"dive,uuid"`
}

type UpdatePackageInput struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	PricePerHead *float64  `json:"pricePerHead" binding:"omitempty,min=0,max=9999999999.99"`
	MinGuests    *int      `json:"minGuests" binding:"omitempty,min=1"`
	IsActive     *bool     `json:"isActive"`
	ItemIDs      *[]string `json:"itemIds" binding:"omitempty,dive,uuid"`
}

type PackageController struct {
	db *gorm.DB
}

func NewPackageController(db *gorm.DB) *PackageController {
	return &PackageController{db: db}
}

var errUnknownItems = errors.New("one or more items not found")

func (pc *PackageController) loadItems(tx *gorm.DB, ids []string) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}
	var items []models.Item
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) != len(uniqueStrings(ids)) {
		return nil, errUnknownItems
	}
	return items, nil
}

func uniqueStrings(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	return set
}

func (pc *PackageController) find(c *gin.Context, query *gorm.DB) (*models.Package, bool) {
	var pkg models.Package
	if err := query.Preload("Items").First(&pkg, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &pkg, true
}

func (pc *PackageController) ListActive(c *gin.Context) {
	var packages []models.Package
	if err := pc.db.Preload("Items", "is_active = ?", true).
		Where("is_active = ?", true).
		Order("price_per_head").
		Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (pc *PackageController) GetActive(c *gin.Context) {
	if pkg, ok := pc.find(c, pc.db.Where("is_active = ?", true)); ok {
		c.JSON(http.StatusOK, pkg)
	}
}

func (pc *PackageController) List(c *gin.Context) {
	var packages []models.Package
	if err := pc.db.Preload("Items").Order("name").Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (pc *PackageController) Create(c *gin.Context) {
	var input CreatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	items, err := pc.loadItems(pc.db, input.ItemIDs)
	if err != nil {
		if errors.Is(err, errUnknownItems) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pkg := models.Package{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		PricePerHead: input.PricePerHead,
		MinGuests:    input.MinGuests,
		IsActive:     true,
		Items:        items,
	}
	if pkg.MinGuests == 0 {
		pkg.MinGuests = 1
	}

	if err := pc.db.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create package")
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (pc *PackageController) Update(c *gin.Context) {
	var input UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pkg, ok := pc.find(c, pc.db)
	if !ok {
		return
	}

	if input.Name != nil {
		pkg.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.PricePerHead != nil {
		pkg.PricePerHead = *input.PricePerHead
	}
	if input.MinGuests != nil {
		pkg.MinGuests = *input.MinGuests
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(pkg).Error; err != nil {
			return err
		}
		if input.ItemIDs == nil {
			return nil
		}
		items, err := pc.loadItems(tx, *input.ItemIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(pkg).Association("Items").Replace(items); err != nil {
			return err
		}
		pkg.Items = items
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownItems) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package")
		}
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (pc *PackageController) Delete(c *gin.Context) {
	pkg, ok := pc.find(c, pc.db)
	if !ok {
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(pkg).Association("Items").Clear(); err != nil {
			return err
		}
		return tx.Delete(pkg).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
