package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrRoomNameRequired = errors.New("api: room name is required")
	ErrRoomPriceInvalid = errors.New("api: price per night must be positive")
	ErrRoomCountInvalid = errors.New("api: total rooms must be at least 1")
)

// RoomPayload creates or updates a room category on the admin surface.
type RoomPayload struct {
	Name          string   `json:"name"`
	PricePerNight float64  `json:"pricePerNight"`
	TotalRooms    int      `json:"totalRooms"`
	Amenities     string   `json:"amenities"`
	ImageURLs     []string `json:"imageUrls,omitempty"`
}

// Validate catches malformed payloads before the round trip.
func (p RoomPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrRoomNameRequired
	}
	if p.PricePerNight <= 0 {
		return ErrRoomPriceInvalid
	}
	if p.TotalRooms < 1 {
		return ErrRoomCountInvalid
	}
	return nil
}

// CreateRoom adds a room category, admin-only.
func (c *Client) CreateRoom(ctx context.Context, payload RoomPayload) (RoomCategory, error) {
	if err := payload.Validate(); err != nil {
		return RoomCategory{}, err
	}
	var out RoomCategory
	err := c.do(ctx, http.MethodPost, "/api/admin/rooms", nil, payload, &out)
	return out, err
}

// UpdateRoom replaces a room category, admin-only.
func (c *Client) UpdateRoom(ctx context.Context, id int64, payload RoomPayload) (RoomCategory, error) {
	if err := payload.Validate(); err != nil {
		return RoomCategory{}, err
	}
	var out RoomCategory
	err := c.do(ctx, http.MethodPut, "/api/admin/rooms/"+strconv.FormatInt(id, 10), nil, payload, &out)
	return out, err
}
