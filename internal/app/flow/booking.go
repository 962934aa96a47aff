package flow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"stayfront/internal/api"
	"stayfront/internal/domain/pricing"
	"stayfront/internal/domain/promotion"
	"stayfront/internal/domain/shared/daterange"
)

// State is the client-side lifecycle of one booking attempt. Everything
// before Submitting is advisory; the backend decides acceptance.
type State string

const (
	StateIdle         State = "idle"
	StateDatesChosen  State = "dates_chosen"
	StatePromoPending State = "promo_pending"
	StateSubmitting   State = "submitting"
	StateConfirmed    State = "confirmed"
)

var (
	ErrSubmissionInFlight = errors.New("flow: a submission is already in flight")
	ErrDatesNotChosen     = errors.New("flow: choose valid dates before submitting")
	ErrAbandoned          = errors.New("flow: response discarded after navigation")
)

// BookingAPI is the single backend call a booking submission needs.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req api.BookingRequest) (api.Reservation, error)
}

// PromoValidator validates a code against the promotions service.
type PromoValidator interface {
	Validate(ctx context.Context, code string, today time.Time) promotion.Result
}

// Booking drives one page instance of the booking form. It is meant for a
// single event loop; the mutex only enforces the duplicate-submission guard.
type Booking struct {
	API      BookingAPI
	Promos   PromoValidator
	Calc     pricing.Calculator
	Clock    func() time.Time
	Logger   *slog.Logger
	Currency string

	room api.RoomCategory

	mu         sync.Mutex
	state      State
	stay       daterange.DateRange
	rooms      int
	promoCode  string
	promo      *promotion.Result
	warning    string
	failure    string
	inFlight   bool
	generation uint64
	confirmed  *api.Reservation
}

// NewBooking starts an idle flow for one room category.
func NewBooking(backend BookingAPI, promos PromoValidator, room api.RoomCategory, currency string, clock func() time.Time) *Booking {
	if clock == nil {
		clock = time.Now
	}
	return &Booking{
		API:      backend,
		Promos:   promos,
		Clock:    clock,
		Currency: currency,
		room:     room,
		state:    StateIdle,
		rooms:    1,
	}
}

func (b *Booking) State() State { return b.state }

// Warning is the non-blocking promo message attached to the form, if any.
func (b *Booking) Warning() string { return b.warning }

// Failure is the backend's rejection message from the last submission.
func (b *Booking) Failure() string { return b.failure }

// Confirmed returns the reservation once the backend accepted.
func (b *Booking) Confirmed() *api.Reservation { return b.confirmed }

// SetDates validates the pair against today and moves to DatesChosen. Any
// previously accepted promotion is dropped: it was validated for a different
// stay.
func (b *Booking) SetDates(checkIn, checkOut time.Time) error {
	stay, err := daterange.New(checkIn, checkOut, b.Clock())
	if err != nil {
		return err
	}
	b.stay = stay
	b.promo = nil
	b.warning = ""
	if b.state != StateSubmitting && b.state != StateConfirmed {
		b.state = StateDatesChosen
	}
	return nil
}

// SetRooms records the requested room count. Validation happens in the quote
// calculator so the form can hold transient bad input without erroring here.
func (b *Booking) SetRooms(rooms int) {
	b.rooms = rooms
}

// EditPromoCode replaces the code field and invalidates whatever result the
// previous code earned.
func (b *Booking) EditPromoCode(code string) {
	b.promoCode = promotion.NormalizeCode(code)
	b.promo = nil
	b.warning = ""
}

// ApplyPromo asks the promotions service about the current code. Rejection
// attaches a warning and leaves the flow in DatesChosen; it never blocks
// submission.
func (b *Booking) ApplyPromo(ctx context.Context) promotion.Result {
	if b.state != StateDatesChosen {
		return promotion.Result{Message: "Choose your dates first."}
	}
	b.state = StatePromoPending
	result := b.Promos.Validate(ctx, b.promoCode, b.Clock())
	b.state = StateDatesChosen
	if result.Valid {
		b.promo = &result
		b.warning = ""
	} else {
		b.promo = nil
		b.warning = result.Message
	}
	return result
}

// Quote recomputes the estimate from current form state. Before both dates
// are chosen it returns the non-computable zero quote.
func (b *Booking) Quote() (pricing.Quote, error) {
	return b.Calc.Quote(pricing.Input{
		Range:     b.stay,
		Nightly:   b.room.Nightly(b.Currency),
		Rooms:     b.rooms,
		PromoCode: b.promoCode,
		Promo:     b.promo,
	})
}

// Submit sends the booking. Only one submission may be in flight per flow
// instance; a second call while waiting gets ErrSubmissionInFlight. A
// response that arrives after Reset is discarded, never applied.
func (b *Booking) Submit(ctx context.Context) (api.Reservation, error) {
	gen, req, err := b.beginSubmit()
	if err != nil {
		return api.Reservation{}, err
	}

	reservation, err := b.API.CreateBooking(ctx, req)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight = false
	if b.generation != gen {
		return api.Reservation{}, ErrAbandoned
	}
	if err != nil {
		// Back to an editable form with everything the user typed intact.
		b.state = StateDatesChosen
		b.failure = api.UserMessage(err)
		b.logError("booking rejected", err)
		return api.Reservation{}, err
	}
	b.state = StateConfirmed
	b.confirmed = &reservation
	b.failure = ""
	return reservation, nil
}

// Reset abandons the page instance. Any in-flight response becomes stale.
func (b *Booking) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.state = StateIdle
	b.stay = daterange.DateRange{}
	b.rooms = 1
	b.promoCode = ""
	b.promo = nil
	b.warning = ""
	b.failure = ""
	b.confirmed = nil
}

func (b *Booking) beginSubmit() (uint64, api.BookingRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFlight {
		return 0, api.BookingRequest{}, ErrSubmissionInFlight
	}
	if b.stay.Nights() <= 0 {
		return 0, api.BookingRequest{}, ErrDatesNotChosen
	}
	if b.rooms < 1 {
		return 0, api.BookingRequest{}, pricing.ErrInvalidRoomCount
	}

	req := api.BookingRequest{
		RoomCategoryID: b.room.ID,
		CheckInDate:    b.stay.CheckIn.Format(time.DateOnly),
		CheckOutDate:   b.stay.CheckOut.Format(time.DateOnly),
		RoomsBooked:    b.rooms,
	}
	if b.promo != nil && b.promo.AppliesTo(b.promoCode) {
		code := b.promoCode
		req.PromoCode = &code
	}

	b.inFlight = true
	b.state = StateSubmitting
	b.failure = ""
	return b.generation, req, nil
}

func (b *Booking) logError(msg string, err error) {
	if b.Logger != nil {
		b.Logger.Warn(msg, "error", err)
	}
}
