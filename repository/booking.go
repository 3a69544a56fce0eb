package repository

import (
	"catering-backend/models"
	"context"

	"gorm.io/gorm"
)

type BookingFilter struct {
	Status     string
	CustomerID string
	Email      string
	Date       string
}

// Mirror is the copy of a payment's amounts kept on its booking.
type Mirror struct {
	Amount        float64
	PaidAmount    float64
	Balance       float64
	PaymentStatus string
}

// MirrorOf reads the mirrored fields currently stored on a booking.
func MirrorOf(b *models.Booking) Mirror {
	return Mirror{
		Amount:        b.Amount,
		PaidAmount:    b.PaidAmount,
		Balance:       b.Balance,
		PaymentStatus: b.PaymentStatus,
	}
}

// MirrorFromPayment builds the mirror a booking should hold for p.
func MirrorFromPayment(p *models.Payment) Mirror {
	return Mirror{
		Amount:        p.TotalAmount,
		PaidAmount:    p.PaidAmount,
		Balance:       p.Balance,
		PaymentStatus: p.Status,
	}
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	var bookings []models.Booking
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListOccupancy loads only the fields availability needs, for every booking.
func (r *BookingRepository) ListOccupancy(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("id", "date", "status").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// Create stores a booking together with its payment record.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		payment.BookingID = booking.ID
		return tx.Create(payment).Error
	})
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateMirror(ctx context.Context, id string, m Mirror) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount":         m.Amount,
			"paid_amount":    m.PaidAmount,
			"balance":        m.Balance,
			"payment_status": m.PaymentStatus,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking and its payment.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Booking{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
