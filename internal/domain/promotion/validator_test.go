package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	gotCode string
	promo   Promotion
	err     error
}

func (s *stubService) ByCode(_ context.Context, code string) (Promotion, error) {
	s.gotCode = code
	return s.promo, s.err
}

func TestValidateAccepts(t *testing.T) {
	today := date(2024, time.June, 15)
	promo, err := New("SAVE20", "", twenty, date(2024, time.July, 1), true)
	require.NoError(t, err)

	svc := &stubService{promo: promo}
	result := Validator{Service: svc}.Validate(context.Background(), "save20", today)

	assert.True(t, result.Valid)
	assert.Equal(t, "SAVE20", result.Code)
	assert.True(t, twenty.Equal(result.DiscountPercentage))
	// The lookup must see the canonical code, not the raw input.
	assert.Equal(t, "SAVE20", svc.gotCode)
}

func TestValidateRejections(t *testing.T) {
	today := date(2024, time.June, 15)
	active := func(expiry time.Time, isActive bool) Promotion {
		p, err := New("SAVE20", "", twenty, expiry, isActive)
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name        string
		svc         *stubService
		wantMessage string
	}{
		{"unknown code", &stubService{err: ErrNotFound}, "Invalid or expired promo code"},
		{"transport failure", &stubService{err: errors.New("connection refused")}, "Could not validate promo code."},
		{"inactive", &stubService{promo: active(date(2024, time.July, 1), false)}, "This promo code is no longer active."},
		{"expired", &stubService{promo: active(date(2024, time.June, 14), true)}, "This promo code has expired."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validator{Service: tt.svc}.Validate(context.Background(), "SAVE20", today)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestValidateEmptyCodeSkipsLookup(t *testing.T) {
	svc := &stubService{err: errors.New("must not be called")}
	result := Validator{Service: svc}.Validate(context.Background(), "   ", time.Now())
	assert.False(t, result.Valid)
	assert.Empty(t, svc.gotCode)
}

func TestResultAppliesTo(t *testing.T) {
	result := Result{Valid: true, Code: "SAVE20", DiscountPercentage: twenty}

	assert.True(t, result.AppliesTo("SAVE20"))
	assert.True(t, result.AppliesTo("save20"))
	// A result validated for one code never discounts another.
	assert.False(t, result.AppliesTo("SAVE30"))
	assert.False(t, Result{Code: "SAVE20"}.AppliesTo("SAVE20")) // not valid
	assert.False(t, Result{Valid: true}.AppliesTo(""))
}
