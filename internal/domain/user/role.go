package user

import (
	"errors"
	"strings"
)

var ErrInvalidRole = errors.New("user: invalid role")

// Role is the closed set of access levels the backend issues. Gated views
// switch on it exhaustively instead of comparing raw strings.
type Role string

const (
	RoleGuest     Role = "GUEST"
	RoleAdmin     Role = "ADMIN"
	RoleReception Role = "RECEPTION"
)

// ParseRole maps a backend-issued role string onto the closed variant.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleGuest:
		return RoleGuest, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleReception:
		return RoleReception, nil
	default:
		return "", ErrInvalidRole
	}
}

// CanManageRooms reports whether the role may use the admin surface.
func (r Role) CanManageRooms() bool {
	return r == RoleAdmin
}

// CanViewReception reports whether the role may open the reception dashboard.
func (r Role) CanViewReception() bool {
	return r == RoleReception || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
