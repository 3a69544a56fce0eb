package services

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPackageNotFound    = errors.New("package not found")
	ErrInvalidDate        = errors.New("invalid event date")
	ErrDateInPast         = errors.New("event date must be after today")
	ErrDateUnavailable    = errors.New("event date is already booked")
	ErrInvalidTransition  = errors.New("status change not allowed")
	ErrGuestsBelowMinimum = errors.New("guest count below package minimum")
	ErrForbidden          = errors.New("not allowed")
	ErrUploadsDisabled    = errors.New("image uploads are not configured")
)
