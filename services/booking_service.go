package services

import (
	"catering-backend/availability"
	"catering-backend/billing"
	"catering-backend/models"
	"catering-backend/repository"
	"catering-backend/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// adminTransitions lists the status changes an administrator may make.
var adminTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingRejected},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

type BookingService struct {
	bookings BookingStore
	packages PackageLookup
	cache    OccupiedCache
	notifier StatusNotifier
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings BookingStore,
	packages PackageLookup,
	cache OccupiedCache,
	notifier StatusNotifier,
	log *zap.Logger,
	now func() time.Time,
) *BookingService {
	if cache == nil {
		cache = NoopOccupiedCache{}
	}
	return &BookingService{
		bookings: bookings,
		packages: packages,
		cache:    cache,
		notifier: notifier,
		log:      log,
		now:      now,
	}
}

// Today is the current time in the business time zone.
func (s *BookingService) Today() time.Time {
	return s.now()
}

// Occupied returns the occupied-date set, from cache when possible.
func (s *BookingService) Occupied(ctx context.Context) (availability.Set, error) {
	set, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("availability cache read failed", zap.Error(err))
	} else if ok {
		return set, nil
	}

	// Read the generation before the store so a write that lands in
	// between makes the fill a no-op.
	gen, genErr := s.cache.Generation(ctx)

	set, err = s.loadOccupied(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		s.log.Warn("availability cache read failed", zap.Error(genErr))
		return set, nil
	}
	if err := s.cache.Set(ctx, gen, set); err != nil {
		s.log.Warn("availability cache write failed", zap.Error(err))
	}
	return set, nil
}

func (s *BookingService) loadOccupied(ctx context.Context) (availability.Set, error) {
	bookings, err := s.bookings.ListOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return availability.OccupiedDates(bookings), nil
}

// Month projects the availability calendar for one month.
func (s *BookingService) Month(ctx context.Context, year int, month time.Month) (availability.Month, error) {
	set, err := s.Occupied(ctx)
	if err != nil {
		return availability.Month{}, err
	}
	return availability.ProjectOccupied(set, year, month, s.now()), nil
}

type CreateBookingInput struct {
	CustomerID  *string
	Customer    string
	Email       string
	Phone       string
	EventType   string
	Guests      int
	Date        string
	Location    string
	PackageID   *string
	PackageName string
	Amount      float64
	CustomMenu  string
	Notes       string
}

// Create validates the requested date against current bookings and stores
// the booking with a fresh payment record.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	date, ok := availability.NormalizeDate(in.Date)
	if !ok {
		return nil, ErrInvalidDate
	}

	// Validation reads the store directly so a stale cache cannot admit a taken date.
	occupied, err := s.loadOccupied(ctx)
	if err != nil {
		return nil, err
	}
	if bookable, status := availability.IsBookable(occupied, date, s.now()); !bookable {
		if status == availability.StatusPast {
			return nil, ErrDateInPast
		}
		return nil, ErrDateUnavailable
	}

	total := billing.Normalize(in.Amount)
	packageName := strings.TrimSpace(in.PackageName)
	if in.PackageID != nil && *in.PackageID != "" {
		pkg, err := s.packages.GetActive(ctx, *in.PackageID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPackageNotFound
			}
			return nil, fmt.Errorf("load package: %w", err)
		}
		if in.Guests < pkg.MinGuests {
			return nil, fmt.Errorf("%w: minimum is %d", ErrGuestsBelowMinimum, pkg.MinGuests)
		}
		total = billing.Normalize(pkg.PricePerHead * float64(in.Guests))
		packageName = pkg.Name
	} else {
		in.PackageID = nil
	}

	derived := billing.Derive(total, 0)
	booking := &models.Booking{
		Reference:     "BK-" + s.now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		CustomerID:    in.CustomerID,
		Customer:      strings.TrimSpace(in.Customer),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         utils.NormalizePhone(in.Phone),
		EventType:     strings.TrimSpace(in.EventType),
		Guests:        in.Guests,
		Date:          date,
		Location:      strings.TrimSpace(in.Location),
		PackageID:     in.PackageID,
		Package:       packageName,
		Amount:        total,
		PaidAmount:    0,
		Balance:       derived.Balance,
		PaymentStatus: derived.Status,
		Status:        models.BookingPending,
		CustomMenu:    in.CustomMenu,
		Notes:         in.Notes,
	}
	payment := &models.Payment{
		TotalAmount: total,
		PaidAmount:  0,
		Balance:     derived.Balance,
		Status:      derived.Status,
	}

	if err := s.bookings.Create(ctx, booking, payment); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.invalidate(ctx)

	s.log.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("reference", booking.Reference),
		zap.String("date", booking.Date))
	return booking, nil
}

// Get returns a booking visible to the actor.
func (s *BookingService) Get(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && !actor.owns(booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, status string) ([]models.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{Status: status})
}

func (s *BookingService) ListForCustomer(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{CustomerID: userID})
}

// Cancel lets a customer withdraw their own pending booking.
func (s *BookingService) Cancel(ctx context.Context, id string, actor Actor) (*models.Booking, error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.owns(booking) {
		return nil, ErrForbidden
	}
	if booking.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, booking.Status, models.BookingCancelled)
	}
	return s.setStatus(ctx, booking, models.BookingCancelled)
}

// UpdateStatus applies an administrator's status change.
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	booking, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(booking.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, booking.Status, status)
	}
	return s.setStatus(ctx, booking, status)
}

func transitionAllowed(from, to string) bool {
	for _, next := range adminTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *BookingService) setStatus(ctx context.Context, booking *models.Booking, status string) (*models.Booking, error) {
	if err := s.bookings.UpdateStatus(ctx, booking.ID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	previous := booking.Status
	booking.Status = status
	s.invalidate(ctx)

	s.log.Info("booking status changed",
		zap.String("bookingId", booking.ID),
		zap.String("from", previous),
		zap.String("to", status))

	if s.notifier != nil {
		if err := s.notifier.BookingStatusChanged(ctx, *booking); err != nil {
			s.log.Warn("status notification failed", zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("booking deleted", zap.String("bookingId", id))
	return nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}
