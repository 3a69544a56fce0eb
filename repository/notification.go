package repository

import (
	"catering-backend/models"
	"context"

	"gorm.io/gorm"
)

type NotificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

func (r *NotificationLogRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *NotificationLogRepository) ListByBooking(ctx context.Context, bookingID string) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("sent_at DESC").
		Find(&logs).Error
	return logs, err
}
