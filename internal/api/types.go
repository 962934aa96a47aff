package api

import (
	"math"
	"time"

	"stayfront/internal/domain/shared/daterange"
	"stayfront/internal/domain/shared/money"
)

// wireDate is the calendar-date format used by every booking endpoint.
func wireDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// RoomCategory is a bookable room type from the catalog. Prices come back as
// JSON numbers of whole currency units.
type RoomCategory struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	PricePerNight float64  `json:"pricePerNight"`
	TotalRooms    int      `json:"totalRooms"`
	Amenities     string   `json:"amenities"`
	ImageURLs     []string `json:"imageUrls"`
}

// Nightly converts the wire price to domain money, rounding away
// representational noise in the JSON double.
func (r RoomCategory) Nightly(currency string) money.Money {
	return money.Must(int64(math.Round(r.PricePerNight)), currency)
}

// RoomFilter narrows the catalog. Zero values mean "not set" and are omitted
// from the query string.
type RoomFilter struct {
	MinPrice float64
	MaxPrice float64
	Amenity  string
	CheckIn  time.Time
	CheckOut time.Time
}

// IsZero reports whether no filter criterion is set, in which case the plain
// catalog endpoint is used.
func (f RoomFilter) IsZero() bool {
	return f.MinPrice == 0 && f.MaxPrice == 0 && f.Amenity == "" && f.CheckIn.IsZero() && f.CheckOut.IsZero()
}

// Validate rejects a misordered date pair before the round trip; the backend
// would refuse it anyway. A single date is allowed through: availability
// filtering needs both, so the backend simply ignores the lone one.
func (f RoomFilter) Validate() error {
	if f.CheckIn.IsZero() || f.CheckOut.IsZero() {
		return nil
	}
	if !f.CheckOut.After(f.CheckIn) {
		return daterange.ErrInvalidOrder
	}
	return nil
}

// BookingRequest is the submission payload. PromoCode stays nil unless a
// validated promotion is attached; the backend re-checks it either way.
type BookingRequest struct {
	RoomCategoryID int64   `json:"roomCategoryId"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	RoomsBooked    int     `json:"roomsBooked"`
	PromoCode      *string `json:"promoCode"`
}

// Reservation is the backend's authoritative booking record. The client
// renders it verbatim and never recomputes its numbers.
type Reservation struct {
	ID                  int64   `json:"id"`
	ReservationNumber   string  `json:"reservationNumber"`
	RoomCategoryName    string  `json:"roomCategoryName"`
	PricePerNight       float64 `json:"pricePerNight"`
	CheckInDate         string  `json:"checkInDate"`
	CheckOutDate        string  `json:"checkOutDate"`
	RoomsBooked         int     `json:"roomsBooked"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
	OriginalPrice       float64 `json:"originalPrice"`
	DiscountAmount      float64 `json:"discountAmount"`
	TotalPrice          float64 `json:"totalPrice"`
	LoyaltyPointsEarned int     `json:"loyaltyPointsEarned"`
	RoomNumbers         string  `json:"roomNumbers"`
}

// Profile is the authenticated user as reported by /api/users/me.
type Profile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}
