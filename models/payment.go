package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string `gorm:"type:uuid;uniqueIndex;not null" json:"bookingId"`

	TotalAmount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"totalAmount"`
	PaidAmount  float64 `gorm:"type:decimal(12,2);not null;default:0" json:"paidAmount"`
	Balance     float64 `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	Status      string  `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	Method string `json:"method"`
	Notes  string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return
}
