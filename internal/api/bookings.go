package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CreateBooking submits a booking. All client-side validation is advisory;
// the backend's accept/reject decision here is the authoritative one.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Reservation, error) {
	var out Reservation
	err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &out)
	return out, err
}

// MyBookings returns the caller's booking history, newest first.
func (c *Client) MyBookings(ctx context.Context) ([]Reservation, error) {
	var out []Reservation
	err := c.do(ctx, http.MethodGet, "/api/bookings/my", nil, nil, &out)
	return out, err
}

// Rebook replaces an existing reservation's dates, producing a new
// reservation. Category and rate may differ from the original, so the
// returned price breakdown is the only trustworthy one.
func (c *Client) Rebook(ctx context.Context, reservationNumber string, newCheckIn, newCheckOut time.Time) (Reservation, error) {
	query := url.Values{
		"newCheckIn":  {wireDate(newCheckIn)},
		"newCheckOut": {wireDate(newCheckOut)},
	}
	var out Reservation
	err := c.do(ctx, http.MethodPost, "/api/bookings/"+url.PathEscape(reservationNumber)+"/rebook", query, nil, &out)
	return out, err
}
