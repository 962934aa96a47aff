package reception

import (
	"context"
	"log/slog"
	"time"

	"stayfront/internal/api"
)

// Backend are the four reception endpoints the dashboard renders.
type Backend interface {
	ReceptionBookings(ctx context.Context) ([]api.ReceptionBooking, error)
	RoomAvailabilityToday(ctx context.Context) ([]api.CategoryAvailability, error)
	DailyRevenue(ctx context.Context) ([]api.RevenueEntry, error)
	Stats(ctx context.Context) (api.ReceptionStats, error)
}

// CategoryOccupancy is availability enriched with the derived occupancy
// share the dashboard's bars display.
type CategoryOccupancy struct {
	api.CategoryAvailability
	OccupancyPercent int
}

// Snapshot is everything the reception dashboard shows at once.
type Snapshot struct {
	Bookings     []api.ReceptionBooking
	Availability []CategoryOccupancy
	Revenue      []api.RevenueEntry
	Stats        api.ReceptionStats

	// InHouse counts bookings whose stay covers today.
	InHouse int
}

// Dashboard aggregates the reception view. A failed fetch surfaces as one
// retryable error; partial snapshots are not rendered.
type Dashboard struct {
	Backend Backend
	Clock   func() time.Time
	Logger  *slog.Logger
}

func NewDashboard(backend Backend, clock func() time.Time, logger *slog.Logger) *Dashboard {
	if clock == nil {
		clock = time.Now
	}
	return &Dashboard{Backend: backend, Clock: clock, Logger: logger}
}

// Load fetches all four surfaces and derives the local numbers.
func (d *Dashboard) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Bookings, err = d.Backend.ReceptionBookings(ctx); err != nil {
		return Snapshot{}, err
	}
	availability, err := d.Backend.RoomAvailabilityToday(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Revenue, err = d.Backend.DailyRevenue(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Stats, err = d.Backend.Stats(ctx); err != nil {
		return Snapshot{}, err
	}

	snap.Availability = make([]CategoryOccupancy, 0, len(availability))
	for _, cat := range availability {
		snap.Availability = append(snap.Availability, CategoryOccupancy{
			CategoryAvailability: cat,
			OccupancyPercent:     occupancyPercent(cat),
		})
	}
	snap.InHouse = d.countInHouse(snap.Bookings)
	return snap, nil
}

func occupancyPercent(cat api.CategoryAvailability) int {
	if cat.TotalRooms <= 0 {
		return 0
	}
	return cat.BookedToday * 100 / cat.TotalRooms
}

// countInHouse counts bookings whose [checkIn, checkOut) covers today. Rows
// with unparseable dates are skipped rather than failing the whole snapshot.
func (d *Dashboard) countInHouse(bookings []api.ReceptionBooking) int {
	today := d.Clock()
	count := 0
	for _, b := range bookings {
		stay, err := parseStay(b.CheckInDate, b.CheckOutDate)
		if err != nil {
			if d.Logger != nil {
				d.Logger.Warn("skipping booking with bad dates", "reservation", b.ReservationNumber, "error", err)
			}
			continue
		}
		if stay.ContainsDate(today) {
			count++
		}
	}
	return count
}
