package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrCityRequired       = errors.New("city is required")
)

// Roles a user can hold. Hotel owners may register hotels and manage the
// rooms and bookings under them; regular users book rooms.
const (
	RoleUser       = "user"
	RoleHotelOwner = "hotelOwner"
)

// maxRecentCities caps the recently-searched-cities list kept per user.
const maxRecentCities = 5

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Username     string
	Email        string
	PasswordHash string
	Image        *string
	Role         string
	IsAdmin      bool

	// RecentSearchedCities is most-recent-first, deduplicated, at most
	// maxRecentCities entries.
	RecentSearchedCities []string

	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Username string
	Role     string

	Page     int
	PageSize int
}
