package hotel

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("hotel not found")
	ErrEmptyName        = errors.New("hotel name cannot be empty")
	ErrMissingFields    = errors.New("name, address, contact and city are required")
	ErrPermissionDenied = errors.New("you are not the owner of this hotel")
)

// Hotel represents a property managed by a hotel owner. The booking core
// reads it only for its OwnerID.
type Hotel struct {
	ID        string
	OwnerID   string
	OwnerName string // joined from users for display
	Name      string
	Address   string
	Contact   string
	City      string
	CreatedAt time.Time
}

// Filter defines parameters for listing hotels.
type Filter struct {
	City    string
	OwnerID string
	Search  string // matches name or address, case-insensitive

	Page     int
	PageSize int
}
