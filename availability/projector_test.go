package availability

import (
	"catering-backend/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 15, 4, 5, 0, time.UTC)
}

func statusOf(m Month, d int) Status {
	return m.Days[d-1].Status
}

func TestProjectJuneScenario(t *testing.T) {
	bookings := []models.Booking{
		{Date: "2025-06-10", Status: models.BookingConfirmed},
		{Date: "2025-06-12", Status: models.BookingCancelled},
	}

	m := Project(bookings, 2025, time.June, day(2025, time.June, 1))

	require.Len(t, m.Days, 30)
	assert.Equal(t, StatusPast, statusOf(m, 1))
	assert.Equal(t, StatusBooked, statusOf(m, 10))
	assert.Equal(t, StatusAvailable, statusOf(m, 12))
	assert.Equal(t, StatusAvailable, statusOf(m, 15))
	assert.Equal(t, StatusAvailable, statusOf(m, 2))
	assert.False(t, m.Days[9].Selectable)
	assert.True(t, m.Days[14].Selectable)
	assert.Equal(t, "2025-06-15", m.Days[14].Date)
	assert.Equal(t, 0, m.FirstWeekday)
	assert.Equal(t, 30, m.DaysInMonth)
}

func TestCancelledBookingDoesNotOccupy(t *testing.T) {
	bookings := []models.Booking{{Date: "2025-03-15", Status: models.BookingCancelled}}

	set := OccupiedDates(bookings)
	assert.False(t, set.Has("2025-03-15"))

	m := Project(bookings, 2025, time.March, day(2025, time.January, 1))
	assert.Equal(t, StatusAvailable, statusOf(m, 15))
}

func TestCancelledMatchIsCaseSensitive(t *testing.T) {
	set := OccupiedDates([]models.Booking{{Date: "2025-03-15", Status: "cancelled"}})
	assert.True(t, set.Has("2025-03-15"))
}

func TestPastTakesPrecedenceOverBooked(t *testing.T) {
	bookings := []models.Booking{
		{Date: "2025-06-05", Status: models.BookingConfirmed},
		{Date: "2025-06-20", Status: models.BookingPending},
	}

	m := Project(bookings, 2025, time.June, day(2025, time.June, 5))

	assert.Equal(t, StatusPast, statusOf(m, 5))
	assert.Equal(t, StatusPast, statusOf(m, 4))
	assert.Equal(t, StatusAvailable, statusOf(m, 6))
	assert.Equal(t, StatusBooked, statusOf(m, 20))
}

func TestMalformedDatesAreSkipped(t *testing.T) {
	bookings := []models.Booking{
		{Date: "", Status: models.BookingConfirmed},
		{Date: "garbage", Status: models.BookingConfirmed},
		{Date: "2025-06-31", Status: models.BookingConfirmed},
		{Date: "2025-07-04T10:00:00+02:00", Status: models.BookingCompleted},
	}

	set := OccupiedDates(bookings)
	assert.Equal(t, []string{"2025-07-04"}, set.Sorted())
}

func TestEveryNonCancelledStatusOccupies(t *testing.T) {
	for _, status := range []string{
		models.BookingPending,
		models.BookingConfirmed,
		models.BookingCompleted,
		models.BookingRejected,
	} {
		set := OccupiedDates([]models.Booking{{Date: "2025-08-01", Status: status}})
		assert.True(t, set.Has("2025-08-01"), status)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	bookings := []models.Booking{
		{Date: "2025-06-10", Status: models.BookingConfirmed},
		{Date: "2025-06-11", Status: models.BookingPending},
		{Date: "bad", Status: models.BookingPending},
	}
	today := day(2025, time.June, 3)

	first := Project(bookings, 2025, time.June, today)
	second := Project(bookings, 2025, time.June, today)

	assert.Equal(t, first, second)
}

func TestTodayComparesCalendarDaysOnly(t *testing.T) {
	// Late in the evening of the 9th the 10th is still in the future.
	today := time.Date(2025, time.June, 9, 23, 59, 59, 0, time.UTC)
	m := ProjectOccupied(Set{}, 2025, time.June, today)

	assert.Equal(t, StatusPast, statusOf(m, 9))
	assert.Equal(t, StatusAvailable, statusOf(m, 10))
}

func TestWholeMonthInPastOrFuture(t *testing.T) {
	past := ProjectOccupied(Set{}, 2024, time.February, day(2025, time.June, 1))
	for _, d := range past.Days {
		assert.Equal(t, StatusPast, d.Status)
	}

	future := ProjectOccupied(Set{"2026-01-01": {}}, 2026, time.January, day(2025, time.June, 1))
	assert.Equal(t, StatusBooked, statusOf(future, 1))
	assert.Equal(t, StatusAvailable, statusOf(future, 31))
}

func TestIsBookable(t *testing.T) {
	set := Set{"2025-06-10": {}}
	today := day(2025, time.June, 1)

	ok, status := IsBookable(set, "2025-06-10", today)
	assert.False(t, ok)
	assert.Equal(t, StatusBooked, status)

	ok, status = IsBookable(set, "2025-06-01", today)
	assert.False(t, ok)
	assert.Equal(t, StatusPast, status)

	ok, status = IsBookable(set, "2025-06-11", today)
	assert.True(t, ok)
	assert.Equal(t, StatusAvailable, status)

	ok, _ = IsBookable(set, "soon", today)
	assert.False(t, ok)
}
