package services

import (
	"catering-backend/availability"
	"catering-backend/billing"
	"catering-backend/dbtest"
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func fixedNow() time.Time {
	return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
}

func newBookingService(t *testing.T, db *gorm.DB, cache OccupiedCache, notifier StatusNotifier) *BookingService {
	t.Helper()
	return NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewPackageRepository(db),
		cache,
		notifier,
		zap.NewNop(),
		fixedNow,
	)
}

func strPtr(s string) *string { return &s }

func validInput(date string) CreateBookingInput {
	return CreateBookingInput{
		CustomerID: strPtr("3f1a2c9e-0000-4000-8000-000000000001"),
		Customer:   " Maria Cruz ",
		Email:      "Maria@Example.com",
		Phone:      "+63 917 123 4567",
		EventType:  "Wedding",
		Guests:     120,
		Date:       date,
		Location:   "Quezon City",
		Amount:     45000,
	}
}

func TestCreateBookingWithAmount(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validInput("2025-06-10"))
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, "Maria Cruz", booking.Customer)
	assert.Equal(t, "maria@example.com", booking.Email)
	assert.Equal(t, "+639171234567", booking.Phone)
	assert.Regexp(t, `^BK-20250601-[A-Z0-9]{6}$`, booking.Reference)
	assert.Equal(t, 45000.0, booking.Amount)
	assert.Equal(t, 45000.0, booking.Balance)
	assert.Equal(t, billing.StatusPending, booking.PaymentStatus)

	payment, err := repository.NewPaymentRepository(db).GetByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 45000.0, payment.TotalAmount)
	assert.Equal(t, 0.0, payment.PaidAmount)
	assert.Equal(t, billing.StatusPending, payment.Status)
}

func TestCreateBookingPricesFromPackage(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	pkg := models.Package{Name: "Silver", PricePerHead: 350.5, MinGuests: 50, IsActive: true}
	require.NoError(t, db.Create(&pkg).Error)

	in := validInput("2025-06-20")
	in.PackageID = &pkg.ID
	in.Amount = 1

	booking, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Silver", booking.Package)
	assert.Equal(t, 42060.0, booking.Amount)

	in = validInput("2025-06-21")
	in.PackageID = &pkg.ID
	in.Guests = 10
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrGuestsBelowMinimum)

	in = validInput("2025-06-22")
	in.PackageID = strPtr("00000000-0000-4000-8000-000000000000")
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestCreateBookingRejectsUnavailableDates(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("2025-06-10"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput("2025-06-10"))
	assert.ErrorIs(t, err, ErrDateUnavailable)

	_, err = svc.Create(ctx, validInput("2025-06-01"))
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = svc.Create(ctx, validInput("2025-05-20"))
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = svc.Create(ctx, validInput("10 June"))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCancelledDateCanBeBookedAgain(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	in := validInput("2025-06-12")
	first, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, first.ID, Actor{UserID: *in.CustomerID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	assert.NoError(t, err)
}

func TestMonthUsesCacheAndInvalidatesOnWrite(t *testing.T) {
	db := dbtest.Open(t)
	cache := new(mockCache)
	svc := newBookingService(t, db, cache, nil)
	ctx := context.Background()

	cache.On("Invalidate", mock.Anything).Return(nil)
	_, err := svc.Create(ctx, validInput("2025-06-10"))
	require.NoError(t, err)

	cache.On("Get", mock.Anything).Return(nil, false, nil).Once()
	cache.On("Generation", mock.Anything).Return(int64(3), nil).Once()
	cache.On("Set", mock.Anything, int64(3), availability.Set{"2025-06-10": {}}).Return(nil).Once()

	month, err := svc.Month(ctx, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, availability.StatusBooked, month.Days[9].Status)
	assert.Equal(t, availability.StatusPast, month.Days[0].Status)

	cache.On("Get", mock.Anything).Return(availability.Set{"2025-06-15": {}}, true, nil).Once()
	month, err = svc.Month(ctx, 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, availability.StatusBooked, month.Days[14].Status)
	assert.Equal(t, availability.StatusAvailable, month.Days[9].Status)

	cache.AssertExpectations(t)
}

func TestMonthFallsBackWhenCacheFails(t *testing.T) {
	db := dbtest.Open(t)
	cache := new(mockCache)
	svc := newBookingService(t, db, cache, nil)

	cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis down"))
	cache.On("Generation", mock.Anything).Return(int64(0), errors.New("redis down"))

	month, err := svc.Month(context.Background(), 2025, time.July)
	require.NoError(t, err)
	assert.Len(t, month.Days, 31)
}

// invalidateDuringLoad simulates a booking write that commits while a
// reader is loading occupancy from the store.
type invalidateDuringLoad struct {
	BookingStore
	cache OccupiedCache
	once  bool
}

func (s *invalidateDuringLoad) ListOccupancy(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.BookingStore.ListOccupancy(ctx)
	if !s.once {
		s.once = true
		_ = s.cache.Invalidate(ctx)
	}
	return bookings, err
}

func TestOccupiedDropsFillThatRacedAWrite(t *testing.T) {
	db := dbtest.Open(t)
	cache := &memoryCache{}
	svc := newBookingService(t, db, cache, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput("2025-06-10"))
	require.NoError(t, err)

	svc.bookings = &invalidateDuringLoad{BookingStore: svc.bookings, cache: cache}

	set, err := svc.Occupied(ctx)
	require.NoError(t, err)
	assert.True(t, set.Has("2025-06-10"))

	_, cached, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cached, "stale fill must not be stored")

	// The next read runs under the new generation and fills the cache.
	_, err = svc.Occupied(ctx)
	require.NoError(t, err)
	got, cached, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.True(t, got.Has("2025-06-10"))
}

func TestAdminStatusTransitions(t *testing.T) {
	db := dbtest.Open(t)
	notifier := new(mockStatusNotifier)
	svc := newBookingService(t, db, nil, notifier)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validInput("2025-06-15"))
	require.NoError(t, err)

	notifier.On("BookingStatusChanged", mock.Anything, mock.MatchedBy(func(b models.Booking) bool {
		return b.ID == booking.ID
	})).Return(errors.New("twilio unavailable"))

	_, err = svc.UpdateStatus(ctx, booking.ID, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err := svc.UpdateStatus(ctx, booking.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	_, err = svc.UpdateStatus(ctx, booking.ID, models.BookingRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	updated, err = svc.UpdateStatus(ctx, booking.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, "missing", models.BookingConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	notifier.AssertNumberOfCalls(t, "BookingStatusChanged", 2)
}

func TestCustomerCancel(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	in := validInput("2025-06-18")
	booking, err := svc.Create(ctx, in)
	require.NoError(t, err)
	owner := Actor{UserID: *in.CustomerID}

	_, err = svc.Cancel(ctx, booking.ID, Actor{UserID: "someone-else"})
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := svc.Cancel(ctx, booking.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, booking.ID, owner)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetEnforcesOwnership(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	in := validInput("2025-06-25")
	booking, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Get(ctx, booking.ID, Actor{UserID: *in.CustomerID})
	assert.NoError(t, err)
	_, err = svc.Get(ctx, booking.ID, Actor{UserID: "admin-id", IsAdmin: true})
	assert.NoError(t, err)
	_, err = svc.Get(ctx, booking.ID, Actor{UserID: "stranger"})
	assert.ErrorIs(t, err, ErrForbidden)

	mine, err := svc.ListForCustomer(ctx, *in.CustomerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDeleteBooking(t *testing.T) {
	db := dbtest.Open(t)
	svc := newBookingService(t, db, nil, nil)
	ctx := context.Background()

	booking, err := svc.Create(ctx, validInput("2025-06-28"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))
	assert.ErrorIs(t, svc.Delete(ctx, booking.ID), ErrBookingNotFound)

	set, err := svc.Occupied(ctx)
	require.NoError(t, err)
	assert.False(t, set.Has("2025-06-28"))
}
