package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"stayfront/internal/domain/promotion"
)

// promoValidation is the backend's verdict on a code. Expiry and active are
// optional: the public endpoint only discloses them for some deployments.
type promoValidation struct {
	Valid              bool            `json:"valid"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Message            string          `json:"message"`
	Description        string          `json:"description"`
	ExpiryDate         string          `json:"expiryDate"`
	Active             *bool           `json:"isActive"`
}

// PromotionLookup adapts the validation endpoint to the domain promotion
// service contract.
type PromotionLookup struct {
	Client *Client
}

// ByCode fetches the backend's verdict for a canonical code. A "valid": false
// verdict maps to promotion.ErrNotFound; transport failures pass through as-is
// so the validator can degrade to a retryable warning.
func (l PromotionLookup) ByCode(ctx context.Context, code string) (promotion.Promotion, error) {
	query := url.Values{"code": {code}}
	var verdict promoValidation
	if err := l.Client.do(ctx, http.MethodGet, "/api/promotions/validate", query, nil, &verdict); err != nil {
		return promotion.Promotion{}, err
	}
	if !verdict.Valid {
		return promotion.Promotion{}, promotion.ErrNotFound
	}

	active := true
	if verdict.Active != nil {
		active = *verdict.Active
	}
	var expiry time.Time
	if verdict.ExpiryDate != "" {
		parsed, err := time.Parse(time.DateOnly, verdict.ExpiryDate)
		if err == nil {
			expiry = parsed
		}
	}
	return promotion.New(code, verdict.Description, verdict.DiscountPercentage, expiry, active)
}

var _ promotion.Service = PromotionLookup{}

// AdminPromotion is the full promotion record on the admin surface.
type AdminPromotion struct {
	ID                 int64           `json:"id"`
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	ExpiryDate         string          `json:"expiryDate"`
	IsActive           bool            `json:"isActive"`
	Description        string          `json:"description"`
}

// Domain converts the record for local applicability checks (status badges).
func (p AdminPromotion) Domain() (promotion.Promotion, error) {
	var expiry time.Time
	if p.ExpiryDate != "" {
		parsed, err := time.Parse(time.DateOnly, p.ExpiryDate)
		if err != nil {
			return promotion.Promotion{}, err
		}
		expiry = parsed
	}
	return promotion.New(p.Code, p.Description, p.DiscountPercentage, expiry, p.IsActive)
}

// AdminPromotions lists every promotion, admin-only.
func (c *Client) AdminPromotions(ctx context.Context) ([]AdminPromotion, error) {
	var out []AdminPromotion
	err := c.do(ctx, http.MethodGet, "/api/promotions/admin/all", nil, nil, &out)
	return out, err
}

// CreatePromotion registers a new code, admin-only. The backend defaults
// isActive to true when unset.
func (c *Client) CreatePromotion(ctx context.Context, promo AdminPromotion) (AdminPromotion, error) {
	var out AdminPromotion
	err := c.do(ctx, http.MethodPost, "/api/promotions/admin", nil, promo, &out)
	return out, err
}
