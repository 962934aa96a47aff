package api

import (
	"context"
	"net/http"
)

// Me fetches the authenticated user's profile, including loyalty points.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &out)
	return out, err
}
