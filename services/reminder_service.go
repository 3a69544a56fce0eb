// services/reminder_service.go
package services

import (
	"catering-backend/availability"
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type BookingLister interface {
	List(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error)
}

type ReminderNotifier interface {
	EventReminder(ctx context.Context, booking models.Booking) error
}

// ReminderService texts customers the day before a confirmed event.
type ReminderService struct {
	bookings BookingLister
	notifier ReminderNotifier
	log      *zap.Logger
	now      func() time.Time
}

func NewReminderService(bookings BookingLister, notifier ReminderNotifier, log *zap.Logger, now func() time.Time) *ReminderService {
	return &ReminderService{
		bookings: bookings,
		notifier: notifier,
		log:      log,
		now:      now,
	}
}

// SendDailyReminders returns how many reminders were delivered.
func (s *ReminderService) SendDailyReminders(ctx context.Context) (int, error) {
	y, m, d := s.now().AddDate(0, 0, 1).Date()
	tomorrow := availability.Key(y, m, d)

	s.log.Info("starting daily reminder processing", zap.String("eventDate", tomorrow))

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{
		Status: models.BookingConfirmed,
		Date:   tomorrow,
	})
	if err != nil {
		return 0, fmt.Errorf("list confirmed bookings: %w", err)
	}

	sent := 0
	for _, b := range bookings {
		if err := s.notifier.EventReminder(ctx, b); err != nil {
			s.log.Warn("reminder failed", zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		sent++
	}

	s.log.Info("daily reminder processing completed", zap.Int("bookings", len(bookings)), zap.Int("sent", sent))
	return sent, nil
}
