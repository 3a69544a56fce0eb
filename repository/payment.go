package repository

import (
	"catering-backend/models"
	"context"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "booking_id = ?", bookingID).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

// Update writes the amounts and derived fields of an existing payment.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"total_amount": p.TotalAmount,
			"paid_amount":  p.PaidAmount,
			"balance":      p.Balance,
			"status":       p.Status,
			"method":       p.Method,
			"notes":        p.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindInBatches walks every payment, batch by batch, in primary key order.
func (r *PaymentRepository) FindInBatches(ctx context.Context, size int, fn func([]models.Payment) error) error {
	var batch []models.Payment
	result := r.db.WithContext(ctx).FindInBatches(&batch, size, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	})
	return result.Error
}
