package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Package struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	PricePerHead float64 `gorm:"type:decimal(10,2);not null" json:"pricePerHead"`
	MinGuests    int     `gorm:"default:1" json:"minGuests"`
	IsActive     bool    `gorm:"default:true" json:"isActive"`

	Items []Item `gorm:"many2many:package_items;" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return
}
