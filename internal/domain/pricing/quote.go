package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"stayfront/internal/domain/promotion"
	"stayfront/internal/domain/shared/daterange"
	"stayfront/internal/domain/shared/money"
)

var (
	ErrInvalidRoomCount = errors.New("pricing: rooms booked must be a positive integer")
	ErrCurrencyUnset    = errors.New("pricing: nightly rate currency must be defined")
)

// Quote is the client-side price estimate for a prospective stay. It is a
// view, never persisted: the backend recomputes the same numbers and is
// authoritative at booking time.
type Quote struct {
	Nights      int
	RoomsBooked int
	Base        money.Money
	Discount    money.Money
	Total       money.Money

	// Computable is false while the guest has not yet picked a complete
	// date range. The all-zero quote is a legitimate empty state, not an
	// error.
	Computable bool
}

// Input gathers everything a quote depends on. PromoCode is the code as
// currently entered; Promo is the last validation outcome, which is ignored
// unless it still matches that code.
type Input struct {
	Range     daterange.DateRange
	Nightly   money.Money
	Rooms     int
	PromoCode string
	Promo     *promotion.Result
}

// Calculator turns a validated date range, a nightly rate and an optional
// confirmed promotion into a price breakdown. It is a pure function of its
// input.
type Calculator struct{}

// Quote computes base = nights * nightly * rooms, subtracts the promo
// discount when one legitimately applies, and rounds the discount half-up to
// the currency's smallest unit. The same rounding must hold server-side or
// confirmed totals will not match the estimate.
func (Calculator) Quote(in Input) (Quote, error) {
	nights := in.Range.Nights()
	if nights <= 0 {
		return Quote{}, nil
	}
	if in.Rooms < 1 {
		return Quote{}, ErrInvalidRoomCount
	}
	if in.Nightly.Currency == "" {
		return Quote{}, ErrCurrencyUnset
	}

	base := in.Nightly.Multiply(int64(nights)).Multiply(int64(in.Rooms))

	discount := money.Money{Amount: 0, Currency: base.Currency}
	if in.Promo != nil && in.Promo.AppliesTo(in.PromoCode) {
		discount.Amount = discountAmount(base.Amount, in.Promo.DiscountPercentage)
	}

	total, err := base.Sub(discount)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Nights:      nights,
		RoomsBooked: in.Rooms,
		Base:        base,
		Discount:    discount,
		Total:       total,
		Computable:  true,
	}, nil
}

// discountAmount rounds half-up (away from zero on the .5 boundary, which is
// the same thing for non-negative prices).
func discountAmount(base int64, pct decimal.Decimal) int64 {
	return decimal.NewFromInt(base).
		Mul(pct).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
