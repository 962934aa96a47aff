package reception

import (
	"time"

	"stayfront/internal/domain/shared/daterange"
)

// parseStay builds a raw stay interval from wire dates. Historical bookings
// are legitimately in the past, so no lower-bound check applies here.
func parseStay(checkIn, checkOut string) (daterange.DateRange, error) {
	in, err := time.Parse(time.DateOnly, checkIn)
	if err != nil {
		return daterange.DateRange{}, err
	}
	out, err := time.Parse(time.DateOnly, checkOut)
	if err != nil {
		return daterange.DateRange{}, err
	}
	return daterange.DateRange{CheckIn: in.UTC(), CheckOut: out.UTC()}, nil
}
