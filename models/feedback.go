package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  *string `gorm:"type:uuid;index" json:"customerId,omitempty"`
	BookingID   *string `gorm:"type:uuid;index" json:"bookingId,omitempty"`
	Name        string  `gorm:"not null" json:"name"`
	Email       string  `json:"email"`
	Rating      int     `gorm:"not null" json:"rating"`
	Comment     string  `gorm:"type:text" json:"comment"`
	IsPublished bool    `gorm:"default:false" json:"isPublished"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return
}
