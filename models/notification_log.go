// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID    string    `gorm:"type:uuid;index;not null" json:"bookingId"`
	Kind         string    `gorm:"type:varchar(20)" json:"kind"`    // status, reminder
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	To           string    `json:"to"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return
}
