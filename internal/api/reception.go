package api

import (
	"context"
	"net/http"
)

// ReceptionBooking is one row of the reception desk's booking list.
type ReceptionBooking struct {
	ID                int64  `json:"id"`
	ReservationNumber string `json:"reservationNumber"`
	GuestName         string `json:"guestName"`
	GuestEmail        string `json:"guestEmail"`
	RoomCategoryName  string `json:"roomCategoryName"`
	CheckInDate       string `json:"checkInDate"`
	CheckOutDate      string `json:"checkOutDate"`
	RoomsBooked       int    `json:"roomsBooked"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
}

// CategoryAvailability is today's availability per room category.
type CategoryAvailability struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	TotalRooms     int     `json:"totalRooms"`
	AvailableToday int     `json:"availableToday"`
	BookedToday    int     `json:"bookedToday"`
	PricePerNight  float64 `json:"pricePerNight"`
}

// RevenueEntry is one day's revenue, grouped by check-in date.
type RevenueEntry struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// ReceptionStats are the dashboard's header numbers.
type ReceptionStats struct {
	TotalBookings int64   `json:"totalBookings"`
	TodayCheckIns int64   `json:"todayCheckIns"`
	TodayRevenue  float64 `json:"todayRevenue"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// ReceptionBookings returns every booking, newest first.
func (c *Client) ReceptionBookings(ctx context.Context) ([]ReceptionBooking, error) {
	var out []ReceptionBooking
	err := c.do(ctx, http.MethodGet, "/api/reception/bookings", nil, nil, &out)
	return out, err
}

// RoomAvailabilityToday returns availability for every category.
func (c *Client) RoomAvailabilityToday(ctx context.Context) ([]CategoryAvailability, error) {
	var out []CategoryAvailability
	err := c.do(ctx, http.MethodGet, "/api/reception/rooms/availability", nil, nil, &out)
	return out, err
}

// DailyRevenue returns per-day revenue grouped by check-in date.
func (c *Client) DailyRevenue(ctx context.Context) ([]RevenueEntry, error) {
	var out []RevenueEntry
	err := c.do(ctx, http.MethodGet, "/api/reception/revenue/daily", nil, nil, &out)
	return out, err
}

// Stats returns the dashboard summary numbers.
func (c *Client) Stats(ctx context.Context) (ReceptionStats, error) {
	var out ReceptionStats
	err := c.do(ctx, http.MethodGet, "/api/reception/stats", nil, nil, &out)
	return out, err
}
