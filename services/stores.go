package services

import (
	"catering-backend/models"
	"catering-backend/repository"
	"context"
)

type BookingStore interface {
	List(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error)
	ListOccupancy(ctx context.Context) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking, payment *models.Payment) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateMirror(ctx context.Context, id string, m repository.Mirror) error
	Delete(ctx context.Context, id string) error
}

// BookingMirror is the part of the booking store the payment side writes to.
type BookingMirror interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateMirror(ctx context.Context, id string, m repository.Mirror) error
}

type PaymentStore interface {
	List(ctx context.Context) ([]models.Payment, error)
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	FindInBatches(ctx context.Context, size int, fn func([]models.Payment) error) error
}

type PackageLookup interface {
	GetActive(ctx context.Context, id string) (*models.Package, error)
}

type NotificationLogStore interface {
	Create(ctx context.Context, entry *models.NotificationLog) error
}

// StatusNotifier is told about booking status changes.
type StatusNotifier interface {
	BookingStatusChanged(ctx context.Context, booking models.Booking) error
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}

func (a Actor) owns(b *models.Booking) bool {
	return b.CustomerID != nil && *b.CustomerID == a.UserID
}
