package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses. Values are stored and compared exactly as written.
const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingRejected  = "Rejected"
	BookingCancelled = "Cancelled"
)

var BookingStatuses = []string{
	BookingPending,
	BookingConfirmed,
	BookingCompleted,
	BookingRejected,
	BookingCancelled,
}

type Booking struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	Reference  string  `gorm:"uniqueIndex;not null" json:"reference"`
	CustomerID *string `gorm:"type:uuid;index" json:"customerId,omitempty"`

	Customer  string `gorm:"not null" json:"customer"`
	Email     string `gorm:"not null;index" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	EventType string `json:"eventType"`
	Guests    int    `gorm:"not null" json:"guests"`
	// Date is a calendar date in YYYY-MM-DD form.
	Date      string  `gorm:"type:varchar(32);index;not null" json:"date"`
	Location  string  `json:"location"`
	PackageID *string `gorm:"type:uuid;index" json:"packageId,omitempty"`
	Package   string  `json:"package"`

	// Mirrored from the booking's Payment.
	Amount        float64 `gorm:"type:decimal(12,2);default:0" json:"amount"`
	PaidAmount    float64 `gorm:"type:decimal(12,2);default:0" json:"paidAmount"`
	Balance       float64 `gorm:"type:decimal(12,2);default:0" json:"balance"`
	PaymentStatus string  `gorm:"type:varchar(20);default:'Pending'" json:"paymentStatus"`

	Status     string `gorm:"type:varchar(20);index;not null;default:'Pending'" json:"status"`
	CustomMenu string `gorm:"type:text" json:"customMenu"`
	Notes      string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return
}
