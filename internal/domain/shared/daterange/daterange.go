package daterange

import (
	"errors"
	"time"
)

var (
	ErrMissing      = errors.New("daterange: check-in and check-out are required")
	ErrInvalidOrder = errors.New("daterange: check-out must be after check-in")
	ErrCheckInPast  = errors.New("daterange: check-in date is in the past")
)

// DateRange represents a half-open stay interval [checkIn, checkOut),
// normalized to UTC midnight. Time-of-day on the inputs is discarded.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New validates a check-in/check-out pair against the injected current date.
// The lower bound is today itself: same-day check-in is allowed.
func New(checkIn, checkOut, today time.Time) (DateRange, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return DateRange{}, ErrMissing
	}
	dr := DateRange{CheckIn: truncate(checkIn), CheckOut: truncate(checkOut)}
	if !dr.CheckOut.After(dr.CheckIn) {
		return DateRange{}, ErrInvalidOrder
	}
	if dr.CheckIn.Before(truncate(today)) {
		return DateRange{}, ErrCheckInPast
	}
	return dr, nil
}

// IsZero reports whether the range was never constructed.
func (dr DateRange) IsZero() bool {
	return dr.CheckIn.IsZero() && dr.CheckOut.IsZero()
}

// Nights returns the whole number of nights in the range. A valid range
// always yields at least 1; the zero range yields 0.
func (dr DateRange) Nights() int {
	if dr.IsZero() {
		return 0
	}
	return int(dr.CheckOut.Sub(dr.CheckIn).Round(24*time.Hour) / (24 * time.Hour))
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = truncate(t)
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

func truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
