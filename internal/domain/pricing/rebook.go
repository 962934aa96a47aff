package pricing

import (
	"time"

	"stayfront/internal/domain/shared/daterange"
)

// RebookRange validates the replacement dates for an existing reservation.
// The rules are exactly those of a fresh booking: the new check-in may not be
// before today regardless of when the original stay was. No price is computed
// here; after a rebooking the category and rate may have changed, so only the
// backend's response carries the new price.
func RebookRange(newCheckIn, newCheckOut, today time.Time) (daterange.DateRange, error) {
	return daterange.New(newCheckIn, newCheckOut, today)
}
