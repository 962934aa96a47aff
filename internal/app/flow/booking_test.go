package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"stayfront/internal/api"
	"stayfront/internal/domain/promotion"
	"stayfront/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type stubBackend struct {
	mu       sync.Mutex
	requests []api.BookingRequest
	resp     api.Reservation
	err      error

	entered chan struct{} // closed when a call starts, if set
	release chan struct{} // call blocks until closed, if set
}

func (s *stubBackend) CreateBooking(_ context.Context, req api.BookingRequest) (api.Reservation, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	entered, release := s.entered, s.release
	s.mu.Unlock()
	if entered != nil {
		close(entered)
		s.mu.Lock()
		s.entered = nil
		s.mu.Unlock()
	}
	if release != nil {
		<-release
	}
	return s.resp, s.err
}

type stubPromos struct {
	result promotion.Result
}

func (s stubPromos) Validate(_ context.Context, code string, _ time.Time) promotion.Result {
	result := s.result
	result.Code = promotion.NormalizeCode(code)
	return result
}

type BookingFlowSuite struct {
	suite.Suite
	backend *stubBackend
	flow    *Booking
}

func (s *BookingFlowSuite) SetupTest() {
	s.backend = &stubBackend{resp: api.Reservation{ReservationNumber: "RES-NEW1"}}
	promos := stubPromos{result: promotion.Result{Valid: true, DiscountPercentage: decimal.NewFromInt(20)}}
	room := api.RoomCategory{ID: 7, Name: "Deluxe", PricePerNight: 2000}
	clock := func() time.Time { return date(2024, time.June, 1) }
	s.flow = NewBooking(s.backend, promos, room, "INR", clock)
}

func (s *BookingFlowSuite) chooseDates() {
	s.Require().NoError(s.flow.SetDates(date(2024, time.June, 10), date(2024, time.June, 13)))
}

func (s *BookingFlowSuite) TestStartsIdle() {
	s.Equal(StateIdle, s.flow.State())

	quote, err := s.flow.Quote()
	s.Require().NoError(err)
	s.False(quote.Computable)
}

func (s *BookingFlowSuite) TestDatesMoveToChosen() {
	s.chooseDates()
	s.Equal(StateDatesChosen, s.flow.State())

	quote, err := s.flow.Quote()
	s.Require().NoError(err)
	s.True(quote.Computable)
	s.EqualValues(6000, quote.Base.Amount) // 3 nights x 2000 x 1 room
}

func (s *BookingFlowSuite) TestInvalidDatesRejected() {
	err := s.flow.SetDates(date(2024, time.June, 10), date(2024, time.June, 10))
	s.ErrorIs(err, daterange.ErrInvalidOrder)
	s.Equal(StateIdle, s.flow.State())

	err = s.flow.SetDates(date(2024, time.May, 20), date(2024, time.June, 10))
	s.ErrorIs(err, daterange.ErrCheckInPast)
}

func (s *BookingFlowSuite) TestSubmitWithoutDates() {
	_, err := s.flow.Submit(context.Background())
	s.ErrorIs(err, ErrDatesNotChosen)
	s.Empty(s.backend.requests)
}

func (s *BookingFlowSuite) TestPromoApplied() {
	s.chooseDates()
	s.flow.SetRooms(2)
	s.flow.EditPromoCode("save20")

	result := s.flow.ApplyPromo(context.Background())
	s.True(result.Valid)
	s.Equal(StateDatesChosen, s.flow.State())

	quote, err := s.flow.Quote()
	s.Require().NoError(err)
	s.EqualValues(12000, quote.Base.Amount)
	s.EqualValues(2400, quote.Discount.Amount)
	s.EqualValues(9600, quote.Total.Amount)
}

func (s *BookingFlowSuite) TestPromoRejectionDoesNotBlock() {
	s.flow.Promos = stubPromos{result: promotion.Result{Message: "Invalid or expired promo code"}}
	s.chooseDates()
	s.flow.EditPromoCode("NOPE")

	result := s.flow.ApplyPromo(context.Background())
	s.False(result.Valid)
	s.Equal(StateDatesChosen, s.flow.State())
	s.Equal("Invalid or expired promo code", s.flow.Warning())

	// Submission proceeds, just without a promo code attached.
	_, err := s.flow.Submit(context.Background())
	s.Require().NoError(err)
	s.Require().Len(s.backend.requests, 1)
	s.Nil(s.backend.requests[0].PromoCode)
}

func (s *BookingFlowSuite) TestEditingCodeDropsAcceptedPromo() {
	s.chooseDates()
	s.flow.EditPromoCode("SAVE20")
	s.flow.ApplyPromo(context.Background())

	s.flow.EditPromoCode("SAVE99")

	quote, err := s.flow.Quote()
	s.Require().NoError(err)
	s.True(quote.Discount.IsZero())

	_, err = s.flow.Submit(context.Background())
	s.Require().NoError(err)
	s.Nil(s.backend.requests[0].PromoCode)
}

func (s *BookingFlowSuite) TestChangingDatesDropsAcceptedPromo() {
	s.chooseDates()
	s.flow.EditPromoCode("SAVE20")
	s.flow.ApplyPromo(context.Background())

	s.Require().NoError(s.flow.SetDates(date(2024, time.June, 11), date(2024, time.June, 14)))

	quote, err := s.flow.Quote()
	s.Require().NoError(err)
	s.True(quote.Discount.IsZero())
}

func (s *BookingFlowSuite) TestSubmitConfirms() {
	s.chooseDates()
	s.flow.SetRooms(2)
	s.flow.EditPromoCode("SAVE20")
	s.flow.ApplyPromo(context.Background())

	reservation, err := s.flow.Submit(context.Background())
	s.Require().NoError(err)
	s.Equal("RES-NEW1", reservation.ReservationNumber)
	s.Equal(StateConfirmed, s.flow.State())
	s.Require().NotNil(s.flow.Confirmed())

	req := s.backend.requests[0]
	s.Equal("2024-06-10", req.CheckInDate)
	s.Equal("2024-06-13", req.CheckOutDate)
	s.Equal(2, req.RoomsBooked)
	s.Require().NotNil(req.PromoCode)
	s.Equal("SAVE20", *req.PromoCode)
}

func (s *BookingFlowSuite) TestRejectionReturnsToEditableForm() {
	s.backend.err = &api.BackendError{Status: 409, Message: "Not enough rooms available for the selected dates."}
	s.chooseDates()
	s.flow.SetRooms(3)

	_, err := s.flow.Submit(context.Background())
	s.Require().Error(err)
	s.Equal(StateDatesChosen, s.flow.State())
	s.Equal("Not enough rooms available for the selected dates.", s.flow.Failure())

	// User-entered values survive the rejection.
	quote, qerr := s.flow.Quote()
	s.Require().NoError(qerr)
	s.Equal(3, quote.RoomsBooked)
}

func (s *BookingFlowSuite) TestDuplicateSubmissionBlocked() {
	s.chooseDates()
	s.backend.entered = make(chan struct{})
	s.backend.release = make(chan struct{})
	entered, release := s.backend.entered, s.backend.release

	done := make(chan error, 1)
	go func() {
		_, err := s.flow.Submit(context.Background())
		done <- err
	}()
	<-entered

	_, err := s.flow.Submit(context.Background())
	s.ErrorIs(err, ErrSubmissionInFlight)

	close(release)
	s.NoError(<-done)
	s.Equal(StateConfirmed, s.flow.State())
}

func (s *BookingFlowSuite) TestLateResponseAfterResetDiscarded() {
	s.chooseDates()
	s.backend.entered = make(chan struct{})
	s.backend.release = make(chan struct{})
	entered, release := s.backend.entered, s.backend.release

	done := make(chan error, 1)
	go func() {
		_, err := s.flow.Submit(context.Background())
		done <- err
	}()
	<-entered

	s.flow.Reset() // user navigated away
	close(release)

	s.ErrorIs(<-done, ErrAbandoned)
	s.Equal(StateIdle, s.flow.State())
	s.Nil(s.flow.Confirmed())
}

func TestBookingFlowSuite(t *testing.T) {
	suite.Run(t, new(BookingFlowSuite))
}

func TestRebookFlow(t *testing.T) {
	clock := func() time.Time { return date(2024, time.June, 15) }

	t.Run("past check-in rejected before any network call", func(t *testing.T) {
		calls := 0
		rebooking := NewRebook(rebookFunc(func(context.Context, string, time.Time, time.Time) (api.Reservation, error) {
			calls++
			return api.Reservation{}, nil
		}), "RES-OLD1", clock)

		err := rebooking.SetDates(date(2024, time.June, 14), date(2024, time.June, 20))
		if !errors.Is(err, daterange.ErrCheckInPast) {
			t.Fatalf("expected ErrCheckInPast, got %v", err)
		}
		if _, err := rebooking.Submit(context.Background()); !errors.Is(err, ErrDatesNotChosen) {
			t.Fatalf("expected ErrDatesNotChosen, got %v", err)
		}
		if calls != 0 {
			t.Fatalf("backend called %d times before valid dates", calls)
		}
	})

	t.Run("confirms with new reservation", func(t *testing.T) {
		rebooking := NewRebook(rebookFunc(func(_ context.Context, number string, in, out time.Time) (api.Reservation, error) {
			if number != "RES-OLD1" {
				t.Fatalf("unexpected reservation number %q", number)
			}
			return api.Reservation{ReservationNumber: "RES-NEW2"}, nil
		}), "RES-OLD1", clock)

		if err := rebooking.SetDates(date(2024, time.June, 20), date(2024, time.June, 22)); err != nil {
			t.Fatal(err)
		}
		reservation, err := rebooking.Submit(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if reservation.ReservationNumber != "RES-NEW2" {
			t.Fatalf("unexpected reservation %+v", reservation)
		}
		if rebooking.State() != StateConfirmed {
			t.Fatalf("unexpected state %s", rebooking.State())
		}
	})

	t.Run("rejection preserves dates for retry", func(t *testing.T) {
		rebooking := NewRebook(rebookFunc(func(context.Context, string, time.Time, time.Time) (api.Reservation, error) {
			return api.Reservation{}, &api.BackendError{Status: 409, Message: "Room not available"}
		}), "RES-OLD1", clock)

		if err := rebooking.SetDates(date(2024, time.June, 20), date(2024, time.June, 22)); err != nil {
			t.Fatal(err)
		}
		if _, err := rebooking.Submit(context.Background()); err == nil {
			t.Fatal("expected rejection")
		}
		if rebooking.State() != StateDatesChosen {
			t.Fatalf("unexpected state %s", rebooking.State())
		}
		if rebooking.Failure() != "Room not available" {
			t.Fatalf("unexpected failure %q", rebooking.Failure())
		}
	})
}

type rebookFunc func(ctx context.Context, reservationNumber string, newCheckIn, newCheckOut time.Time) (api.Reservation, error)

func (f rebookFunc) Rebook(ctx context.Context, n string, in, out time.Time) (api.Reservation, error) {
	return f(ctx, n, in, out)
}
