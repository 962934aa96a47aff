package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// lookupFailedMessage is what the user sees when the promotions service could
// not be reached or the code was rejected without a reason. A lookup failure
// is never fatal: the quote simply proceeds without a discount.
const lookupFailedMessage = "Could not validate promo code."

// Service is the external promotions lookup. Implementations return
// ErrNotFound for unknown codes; any other error is treated as a transport
// failure.
type Service interface {
	ByCode(ctx context.Context, code string) (Promotion, error)
}

// Result is the transient outcome of validating one specific code. It records
// the code it belongs to so a stale result can never be applied after the
// user edits the code field.
type Result struct {
	Valid              bool
	Code               string
	DiscountPercentage decimal.Decimal
	Message            string
}

// AppliesTo reports whether this result may discount a quote for the given
// code as currently entered.
func (r Result) AppliesTo(code string) bool {
	return r.Valid && r.Code != "" && r.Code == NormalizeCode(code)
}

func accepted(p Promotion) Result {
	return Result{Valid: true, Code: p.Code, DiscountPercentage: p.DiscountPercentage}
}

func rejected(code, message string) Result {
	if message == "" {
		message = lookupFailedMessage
	}
	return Result{Code: NormalizeCode(code), Message: message}
}

// Validator resolves a user-entered code against the promotions service and
// applies the local applicability rules on top of the lookup.
type Validator struct {
	Service Service
}

// Validate canonicalizes the code, fetches it, and gates it on the active
// flag and expiry. The first failing rule determines the rejection message.
func (v Validator) Validate(ctx context.Context, code string, today time.Time) Result {
	canonical := NormalizeCode(code)
	if canonical == "" {
		return rejected(code, "Enter a promo code first.")
	}
	if v.Service == nil {
		return rejected(canonical, "")
	}
	promo, err := v.Service.ByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return rejected(canonical, "Invalid or expired promo code")
		}
		return rejected(canonical, "")
	}
	switch err := promo.Applicable(today); {
	case errors.Is(err, ErrInactive):
		return rejected(canonical, "This promo code is no longer active.")
	case errors.Is(err, ErrExpired):
		return rejected(canonical, "This promo code has expired.")
	case err != nil:
		return rejected(canonical, "")
	}
	return accepted(promo)
}
