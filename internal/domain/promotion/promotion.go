package promotion

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCodeRequired    = errors.New("promotion: code is required")
	ErrInvalidDiscount = errors.New("promotion: discount percentage must be within [0, 100]")
	ErrInactive        = errors.New("promotion: code is not active")
	ErrExpired         = errors.New("promotion: code has expired")
	ErrNotFound        = errors.New("promotion: code not found")
)

// Promotion is a discount code as disclosed by the backend. ExpiryDate may be
// zero when the validation endpoint does not reveal it.
type Promotion struct {
	Code               string
	Description        string
	DiscountPercentage decimal.Decimal
	ExpiryDate         time.Time
	Active             bool
}

// New builds a promotion with a canonical upper-case code and a bounded
// discount percentage.
func New(code, description string, discount decimal.Decimal, expiry time.Time, active bool) (Promotion, error) {
	canonical := NormalizeCode(code)
	if canonical == "" {
		return Promotion{}, ErrCodeRequired
	}
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return Promotion{}, ErrInvalidDiscount
	}
	return Promotion{
		Code:               canonical,
		Description:        strings.TrimSpace(description),
		DiscountPercentage: discount,
		ExpiryDate:         expiry,
		Active:             active,
	}, nil
}

// Applicable checks the local gating rules in order: the active flag first,
// then expiry. A promotion expiring today is still applicable; only a date
// strictly before today rejects it. An unset expiry is treated as undisclosed
// and passes.
func (p Promotion) Applicable(today time.Time) error {
	if !p.Active {
		return ErrInactive
	}
	if !p.ExpiryDate.IsZero() && dateOnly(p.ExpiryDate).Before(dateOnly(today)) {
		return ErrExpired
	}
	return nil
}

// NormalizeCode canonicalizes a user-entered promo code. Matching is
// case-insensitive across the system, upper-case is the canonical form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
