package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Rooms fetches the full room catalog.
func (c *Client) Rooms(ctx context.Context) ([]RoomCategory, error) {
	var out []RoomCategory
	err := c.do(ctx, http.MethodGet, "/api/rooms", nil, nil, &out)
	return out, err
}

// FilterRooms fetches the catalog narrowed by the given filter. An empty
// filter falls back to the plain catalog endpoint.
func (c *Client) FilterRooms(ctx context.Context, filter RoomFilter) ([]RoomCategory, error) {
	if filter.IsZero() {
		return c.Rooms(ctx)
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	query := url.Values{}
	if filter.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Amenity != "" {
		query.Set("amenity", filter.Amenity)
	}
	if !filter.CheckIn.IsZero() {
		query.Set("checkIn", wireDate(filter.CheckIn))
	}
	if !filter.CheckOut.IsZero() {
		query.Set("checkOut", wireDate(filter.CheckOut))
	}
	var out []RoomCategory
	err := c.do(ctx, http.MethodGet, "/api/rooms/filter", query, nil, &out)
	return out, err
}
