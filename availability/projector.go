package availability

import (
	"catering-backend/models"
	"sort"
	"time"
)

type Status string

const (
	StatusPast      Status = "past"
	StatusBooked    Status = "booked"
	StatusAvailable Status = "available"
)

type Day struct {
	Day        int    `json:"day"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
	Selectable bool   `json:"selectable"`
}

type Month struct {
	Year           int   `json:"year"`
	Month          int   `json:"month"`
	FirstWeekday   int   `json:"firstWeekday"`
	DaysInMonth    int   `json:"daysInMonth"`
	LeadingBlanks  int   `json:"leadingBlanks"`
	TrailingBlanks int   `json:"trailingBlanks"`
	Days           []Day `json:"days"`
}

// Set holds occupied YYYY-MM-DD keys.
type Set map[string]struct{}

func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in ascending date order.
func (s Set) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OccupiedDates collects the dates held by bookings that are not cancelled.
// Bookings with an unreadable date are skipped.
func OccupiedDates(bookings []models.Booking) Set {
	set := make(Set, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		key, ok := NormalizeDate(b.Date)
		if !ok {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// Project computes the status of every day of the month from the bookings.
func Project(bookings []models.Booking, year int, month time.Month, today time.Time) Month {
	return ProjectOccupied(OccupiedDates(bookings), year, month, today)
}

// ProjectOccupied is Project over an already collected occupied set.
// A day on or before today is past, whether or not it is occupied.
func ProjectOccupied(occupied Set, year int, month time.Month, today time.Time) Month {
	ty, tm, td := today.Date()
	todayOrd := dayOrdinal(ty, tm, td)

	n := DaysInMonth(year, month)
	leading, trailing := GridBlanks(year, month)

	days := make([]Day, 0, n)
	for d := 1; d <= n; d++ {
		key := Key(year, month, d)
		status := StatusAvailable
		switch {
		case dayOrdinal(year, month, d) <= todayOrd:
			status = StatusPast
		case occupied.Has(key):
			status = StatusBooked
		}
		days = append(days, Day{
			Day:        d,
			Date:       key,
			Status:     status,
			Selectable: status == StatusAvailable,
		})
	}

	return Month{
		Year:           year,
		Month:          int(month),
		FirstWeekday:   int(FirstWeekday(year, month)),
		DaysInMonth:    n,
		LeadingBlanks:  leading,
		TrailingBlanks: trailing,
		Days:           days,
	}
}

// IsBookable reports whether a date key is strictly after today and free.
func IsBookable(occupied Set, date string, today time.Time) (bool, Status) {
	y, m, d, ok := ParseDate(date)
	if !ok {
		return false, ""
	}
	ty, tm, td := today.Date()
	if dayOrdinal(y, m, d) <= dayOrdinal(ty, tm, td) {
		return false, StatusPast
	}
	if occupied.Has(Key(y, m, d)) {
		return false, StatusBooked
	}
	return true, StatusAvailable
}
