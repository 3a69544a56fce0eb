package services

import (
	"bytes"
	"catering-backend/dbtest"
	"catering-backend/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingsWorkbook(t *testing.T) {
	db := dbtest.Open(t)
	booking, _ := seedBooking(t, db, "2025-09-09", 2500)

	svc := NewExportService(repository.NewBookingRepository(db), repository.NewPaymentRepository(db))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsWorkbook(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, bookingHeaders, rows[0])
	assert.Equal(t, booking.Reference, rows[1][0])
	assert.Equal(t, "2025-09-09", rows[1][6])
	assert.Equal(t, "2500", rows[1][10])

	rows, err = f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, booking.Reference, rows[1][1])
}
