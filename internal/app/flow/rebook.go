package flow

import (
	"context"
	"sync"
	"time"

	"stayfront/internal/api"
	"stayfront/internal/domain/pricing"
	"stayfront/internal/domain/shared/daterange"
)

// RebookAPI is the single backend call a rebooking needs.
type RebookAPI interface {
	Rebook(ctx context.Context, reservationNumber string, newCheckIn, newCheckOut time.Time) (api.Reservation, error)
}

// Rebook drives the date-change form for an existing reservation. The only
// local work is date validation; the new price is whatever the backend's
// response says, since category and rate may have changed.
type Rebook struct {
	API   RebookAPI
	Clock func() time.Time

	reservationNumber string

	mu         sync.Mutex
	state      State
	dates      daterange.DateRange
	failure    string
	inFlight   bool
	generation uint64
	confirmed  *api.Reservation
}

// NewRebook starts an idle rebooking flow for one reservation.
func NewRebook(backend RebookAPI, reservationNumber string, clock func() time.Time) *Rebook {
	if clock == nil {
		clock = time.Now
	}
	return &Rebook{
		API:               backend,
		Clock:             clock,
		reservationNumber: reservationNumber,
		state:             StateIdle,
	}
}

func (r *Rebook) State() State                { return r.state }
func (r *Rebook) Failure() string             { return r.failure }
func (r *Rebook) Confirmed() *api.Reservation { return r.confirmed }

// SetDates validates the replacement range. The original stay's dates are
// irrelevant here: the lower bound is today, same as a fresh booking.
func (r *Rebook) SetDates(newCheckIn, newCheckOut time.Time) error {
	dates, err := pricing.RebookRange(newCheckIn, newCheckOut, r.Clock())
	if err != nil {
		return err
	}
	r.dates = dates
	if r.state != StateSubmitting && r.state != StateConfirmed {
		r.state = StateDatesChosen
	}
	return nil
}

// Submit sends the rebooking under the same in-flight and staleness rules as
// a booking submission.
func (r *Rebook) Submit(ctx context.Context) (api.Reservation, error) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return api.Reservation{}, ErrSubmissionInFlight
	}
	if r.dates.Nights() <= 0 {
		r.mu.Unlock()
		return api.Reservation{}, ErrDatesNotChosen
	}
	gen := r.generation
	dates := r.dates
	r.inFlight = true
	r.state = StateSubmitting
	r.failure = ""
	r.mu.Unlock()

	reservation, err := r.API.Rebook(ctx, r.reservationNumber, dates.CheckIn, dates.CheckOut)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false
	if r.generation != gen {
		return api.Reservation{}, ErrAbandoned
	}
	if err != nil {
		r.state = StateDatesChosen
		r.failure = api.UserMessage(err)
		return api.Reservation{}, err
	}
	r.state = StateConfirmed
	r.confirmed = &reservation
	return reservation, nil
}

// Reset abandons the page instance; a late response will be discarded.
func (r *Rebook) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.state = StateIdle
	r.dates = daterange.DateRange{}
	r.failure = ""
	r.confirmed = nil
}
