package services

import (
	"catering-backend/billing"
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

const mirrorTimeout = 5 * time.Second

type PaymentService struct {
	payments PaymentStore
	bookings BookingMirror
	metrics  *Metrics
	log      *zap.Logger
}

func NewPaymentService(payments PaymentStore, bookings BookingMirror, metrics *Metrics, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		metrics:  metrics,
		log:      log,
	}
}

// Preview derives balance and status without persisting anything.
func (s *PaymentService) Preview(total, paid float64) billing.Derived {
	_, _, derived := billing.DeriveRaw(total, paid)
	return derived
}

func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) GetForBooking(ctx context.Context, bookingID string) (*models.Payment, error) {
	payment, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

// PaymentUpdate is a partial edit. Nil fields keep their stored value.
type PaymentUpdate struct {
	TotalAmount *float64
	PaidAmount  *float64
	Method      *string
	Notes       *string
}

// Update stores new amounts on a payment and then copies them onto the
// owning booking. The booking write is best effort: its failure is logged
// and counted, and the payment update still succeeds.
func (s *PaymentService) Update(ctx context.Context, id string, in PaymentUpdate) (*models.Payment, error) {
	payment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	total, paid := payment.TotalAmount, payment.PaidAmount
	if in.TotalAmount != nil {
		total = *in.TotalAmount
	}
	if in.PaidAmount != nil {
		paid = *in.PaidAmount
	}

	total, paid, derived := billing.DeriveRaw(total, paid)
	payment.TotalAmount = total
	payment.PaidAmount = paid
	payment.Balance = derived.Balance
	payment.Status = derived.Status
	if in.Method != nil {
		payment.Method = *in.Method
	}
	if in.Notes != nil {
		payment.Notes = *in.Notes
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}

	s.log.Info("payment updated",
		zap.String("paymentId", payment.ID),
		zap.String("bookingId", payment.BookingID),
		zap.Float64("totalAmount", payment.TotalAmount),
		zap.Float64("paidAmount", payment.PaidAmount),
		zap.String("status", payment.Status))

	s.syncMirror(ctx, payment)
	return payment, nil
}

// syncMirror runs detached from the request's cancellation so that a client
// disconnect after the payment write does not skip the booking write.
func (s *PaymentService) syncMirror(ctx context.Context, payment *models.Payment) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()

	err := s.bookings.UpdateMirror(ctx, payment.BookingID, repository.MirrorFromPayment(payment))
	s.metrics.MirrorSynced(err == nil)
	if err != nil {
		s.log.Warn("booking mirror sync failed",
			zap.String("paymentId", payment.ID),
			zap.String("bookingId", payment.BookingID),
			zap.Error(err))
		return false
	}
	return true
}

type ReconcileReport struct {
	Scanned          int `json:"scanned"`
	PaymentsRepaired int `json:"paymentsRepaired"`
	MirrorsRepaired  int `json:"mirrorsRepaired"`
	Failures         int `json:"failures"`
}

const reconcileBatchSize = 200

// Reconcile re-derives every payment and re-mirrors bookings that drifted.
// Per-record failures are counted and the run continues.
func (s *PaymentService) Reconcile(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	err := s.payments.FindInBatches(ctx, reconcileBatchSize, func(batch []models.Payment) error {
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.reconcileOne(ctx, &batch[i], &report)
		}
		return nil
	})

	s.metrics.ReconcileFinished(report)
	s.log.Info("payment reconciliation finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("paymentsRepaired", report.PaymentsRepaired),
		zap.Int("mirrorsRepaired", report.MirrorsRepaired),
		zap.Int("failures", report.Failures))

	if err != nil {
		return report, fmt.Errorf("reconcile payments: %w", err)
	}
	return report, nil
}

func (s *PaymentService) reconcileOne(ctx context.Context, payment *models.Payment, report *ReconcileReport) {
	report.Scanned++

	total, paid, derived := billing.DeriveRaw(payment.TotalAmount, payment.PaidAmount)
	if !moneyEqual(total, payment.TotalAmount) ||
		!moneyEqual(paid, payment.PaidAmount) ||
		!moneyEqual(derived.Balance, payment.Balance) ||
		derived.Status != payment.Status {
		payment.TotalAmount = total
		payment.PaidAmount = paid
		payment.Balance = derived.Balance
		payment.Status = derived.Status
		if err := s.payments.Update(ctx, payment); err != nil {
			report.Failures++
			s.log.Warn("reconcile payment failed", zap.String("paymentId", payment.ID), zap.Error(err))
			return
		}
		report.PaymentsRepaired++
	}

	booking, err := s.bookings.GetByID(ctx, payment.BookingID)
	if err != nil {
		report.Failures++
		s.log.Warn("reconcile booking lookup failed",
			zap.String("paymentId", payment.ID),
			zap.String("bookingId", payment.BookingID),
			zap.Error(err))
		return
	}

	if mirrorEqual(repository.MirrorOf(booking), repository.MirrorFromPayment(payment)) {
		return
	}
	if s.syncMirror(ctx, payment) {
		report.MirrorsRepaired++
	} else {
		report.Failures++
	}
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func mirrorEqual(a, b repository.Mirror) bool {
	return moneyEqual(a.Amount, b.Amount) &&
		moneyEqual(a.PaidAmount, b.PaidAmount) &&
		moneyEqual(a.Balance, b.Balance) &&
		a.PaymentStatus == b.PaymentStatus
}
