package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	today := date(2024, time.June, 1)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  error
	}{
		{"valid future range", date(2024, time.June, 10), date(2024, time.June, 13), nil},
		{"same-day check-in allowed", today, date(2024, time.June, 2), nil},
		{"missing check-in", time.Time{}, date(2024, time.June, 13), ErrMissing},
		{"missing check-out", date(2024, time.June, 10), time.Time{}, ErrMissing},
		{"checkout equals checkin", date(2024, time.June, 10), date(2024, time.June, 10), ErrInvalidOrder},
		{"checkout before checkin", date(2024, time.June, 13), date(2024, time.June, 10), ErrInvalidOrder},
		{"checkin in the past", date(2024, time.May, 31), date(2024, time.June, 3), ErrCheckInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr, err := New(tt.checkIn, tt.checkOut, today)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, dr.IsZero())
				return
			}
			require.NoError(t, err)
			assert.GreaterOrEqual(t, dr.Nights(), 1)
		})
	}
}

func TestNewDiscardsTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 1, 23, 50, 0, 0, time.UTC)
	checkIn := time.Date(2024, time.June, 1, 0, 10, 0, 0, time.UTC)
	checkOut := time.Date(2024, time.June, 2, 18, 0, 0, 0, time.UTC)

	dr, err := New(checkIn, checkOut, today)
	require.NoError(t, err)
	assert.Equal(t, 1, dr.Nights())
	assert.Equal(t, date(2024, time.June, 1), dr.CheckIn)
}

func TestNights(t *testing.T) {
	today := date(2024, time.January, 1)

	tests := []struct {
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{date(2024, time.June, 10), date(2024, time.June, 13), 3},
		{date(2024, time.June, 10), date(2024, time.June, 11), 1},
		{date(2024, time.February, 28), date(2024, time.March, 1), 2}, // leap year
		{date(2024, time.December, 30), date(2025, time.January, 2), 3},
	}
	for _, tt := range tests {
		dr, err := New(tt.checkIn, tt.checkOut, today)
		require.NoError(t, err)
		assert.Equal(t, tt.want, dr.Nights())
	}
}

func TestNightsZeroRange(t *testing.T) {
	assert.Equal(t, 0, DateRange{}.Nights())
}

func TestContainsDate(t *testing.T) {
	dr := DateRange{CheckIn: date(2024, time.June, 10), CheckOut: date(2024, time.June, 13)}

	assert.True(t, dr.ContainsDate(date(2024, time.June, 10)))
	assert.True(t, dr.ContainsDate(date(2024, time.June, 12)))
	assert.False(t, dr.ContainsDate(date(2024, time.June, 13))) // checkout day is free
	assert.False(t, dr.ContainsDate(date(2024, time.June, 9)))
}
