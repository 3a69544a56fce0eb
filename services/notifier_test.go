package services

import (
	"catering-backend/dbtest"
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func confirmedBooking(id, phone string) models.Booking {
	return models.Booking{
		ID:        id,
		Reference: "BK-20250601-ABCDEF",
		Customer:  "Jose",
		Phone:     phone,
		EventType: "Birthday",
		Date:      "2025-06-10",
		Location:  "Makati",
		Guests:    40,
		Status:    models.BookingConfirmed,
	}
}

func TestNotifierUsesWhatsAppForE164(t *testing.T) {
	db := dbtest.Open(t)
	logs := repository.NewNotificationLogRepository(db)
	sender := new(mockSender)
	metrics := NewMetrics(prometheus.NewRegistry())
	n := NewNotifier(sender, logs, NotifierConfig{PhoneNumber: "+15550001", WhatsAppNumber: "+15550002"}, metrics, zap.NewNop())

	sender.On("Send", "whatsapp:+639171234567", "whatsapp:+15550002", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "is confirmed")
	})).Return("SM123", nil)

	b := confirmedBooking("b1b1b1b1-0000-4000-8000-000000000001", "+639171234567")
	require.NoError(t, n.BookingStatusChanged(context.Background(), b))

	entries, err := logs.ListByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "whatsapp", entries[0].Channel)
	assert.Equal(t, "sent", entries[0].Status)
	assert.Equal(t, KindStatus, entries[0].Kind)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.notifications.WithLabelValues("whatsapp", "sent")))
	sender.AssertExpectations(t)
}

func TestNotifierFallsBackToSMSAndLogsFailure(t *testing.T) {
	db := dbtest.Open(t)
	logs := repository.NewNotificationLogRepository(db)
	sender := new(mockSender)
	n := NewNotifier(sender, logs, NotifierConfig{PhoneNumber: "+15550001"}, nil, zap.NewNop())

	sender.On("Send", "09171234567", "+15550001", mock.Anything).Return("", errors.New("invalid number"))

	b := confirmedBooking("b1b1b1b1-0000-4000-8000-000000000002", "09171234567")
	err := n.EventReminder(context.Background(), b)
	require.Error(t, err)

	entries, err := logs.ListByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sms", entries[0].Channel)
	assert.Equal(t, "failed", entries[0].Status)
	assert.Equal(t, "invalid number", entries[0].ErrorMessage)
	assert.Equal(t, KindReminder, entries[0].Kind)
}

func TestNotifierDisabledSkips(t *testing.T) {
	n := NewNotifier(nil, nil, NotifierConfig{}, nil, zap.NewNop())
	assert.False(t, n.Enabled())
	assert.NoError(t, n.BookingStatusChanged(context.Background(), confirmedBooking("x", "+1555")))

	var none *Notifier
	assert.NoError(t, none.EventReminder(context.Background(), confirmedBooking("x", "+1555")))
}

func TestNotifierIgnoresPendingStatus(t *testing.T) {
	sender := new(mockSender)
	n := NewNotifier(sender, nil, NotifierConfig{}, nil, zap.NewNop())

	b := confirmedBooking("x", "+1555")
	b.Status = models.BookingPending
	assert.NoError(t, n.BookingStatusChanged(context.Background(), b))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

type mockReminderNotifier struct {
	mock.Mock
}

func (m *mockReminderNotifier) EventReminder(ctx context.Context, b models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func TestSendDailyReminders(t *testing.T) {
	db := dbtest.Open(t)
	bookings := repository.NewBookingRepository(db)
	ctx := context.Background()

	seed := func(date, status, ref string) *models.Booking {
		b := &models.Booking{Reference: ref, Customer: "C", Email: "c@example.com", Phone: "+1555", Guests: 10, Date: date, Status: status}
		require.NoError(t, bookings.Create(ctx, b, &models.Payment{}))
		return b
	}
	tomorrowConfirmed := seed("2025-06-02", models.BookingConfirmed, "R1")
	failing := seed("2025-06-02", models.BookingConfirmed, "R2")
	seed("2025-06-02", models.BookingPending, "R3")
	seed("2025-06-03", models.BookingConfirmed, "R4")

	notifier := new(mockReminderNotifier)
	notifier.On("EventReminder", mock.Anything, mock.MatchedBy(func(b models.Booking) bool { return b.ID == tomorrowConfirmed.ID })).Return(nil)
	notifier.On("EventReminder", mock.Anything, mock.MatchedBy(func(b models.Booking) bool { return b.ID == failing.ID })).Return(errors.New("boom"))

	now := func() time.Time { return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC) }
	svc := NewReminderService(bookings, notifier, zap.NewNop(), now)

	sent, err := svc.SendDailyReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notifier.AssertNumberOfCalls(t, "EventReminder", 2)
}
