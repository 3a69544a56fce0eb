package services

import (
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type PaymentLister interface {
	List(ctx context.Context) ([]models.Payment, error)
}

// ExportService writes the admin spreadsheet of bookings and payments.
type ExportService struct {
	bookings BookingLister
	payments PaymentLister
}

func NewExportService(bookings BookingLister, payments PaymentLister) *ExportService {
	return &ExportService{bookings: bookings, payments: payments}
}

var (
	bookingHeaders = []string{
		"Reference", "Customer", "Email", "Phone", "Event Type", "Guests", "Date",
		"Location", "Package", "Status", "Amount", "Paid", "Balance", "Payment Status", "Created",
	}
	paymentHeaders = []string{
		"Payment ID", "Booking Reference", "Total", "Paid", "Balance", "Status", "Method", "Updated",
	}
)

func (s *ExportService) WriteBookingsWorkbook(ctx context.Context, w io.Writer) error {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const bookingSheet, paymentSheet = "Bookings", "Payments"
	if err := f.SetSheetName("Sheet1", bookingSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(paymentSheet); err != nil {
		return err
	}

	if err := writeRow(f, bookingSheet, 1, toCells(bookingHeaders)); err != nil {
		return err
	}
	references := make(map[string]string, len(bookings))
	for i, b := range bookings {
		references[b.ID] = b.Reference
		row := []interface{}{
			b.Reference, b.Customer, b.Email, b.Phone, b.EventType, b.Guests, b.Date,
			b.Location, b.Package, b.Status, b.Amount, b.PaidAmount, b.Balance, b.PaymentStatus,
			b.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, bookingSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, paymentSheet, 1, toCells(paymentHeaders)); err != nil {
		return err
	}
	for i, p := range payments {
		row := []interface{}{
			p.ID, references[p.BookingID], p.TotalAmount, p.PaidAmount, p.Balance, p.Status, p.Method,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		}
		if err := writeRow(f, paymentSheet, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
