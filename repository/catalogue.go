package repository

import (
	"catering-backend/models"
	"context"

	"gorm.io/gorm"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// GetActive returns an active package with its items.
func (r *PackageRepository) GetActive(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND is_active = ?", id, true).
		First(&pkg).Error
	if err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}
