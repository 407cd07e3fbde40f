package http

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/request"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID                   string     `json:"id"`
	Username             string     `json:"username"`
	Email                string     `json:"email"`
	Image                *string    `json:"image"`
	Role                 string     `json:"role"`
	IsAdmin              bool       `json:"is_admin"`
	RecentSearchedCities []string   `json:"recent_searched_cities"`
	CreatedAt            time.Time  `json:"created_at"`
	LastLoginAt          *time.Time `json:"last_login_at"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	cities := u.RecentSearchedCities
	if cities == nil {
		cities = []string{}
	}

	return UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		Image:                u.Image,
		Role:                 u.Role,
		IsAdmin:              u.IsAdmin,
		RecentSearchedCities: cities,
		CreatedAt:            u.CreatedAt,
		LastLoginAt:          u.LastLoginAt,
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and the authenticated profile.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse wraps the current user's profile.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// UpdateProfileRequest defines the payload for profile updates.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Image    *string `json:"image"`
}

// RecentCityRequest defines the payload for recording a searched city.
type RecentCityRequest struct {
	City string `json:"city" binding:"required"`
}

// UpdateRoleRequest defines the payload for role changes (admin only).
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user hotelOwner"`
}

// ListUsersRequest defines query parameters for listing users.
type ListUsersRequest struct {
	request.ListParams
	Email    string `form:"email" binding:"omitempty,email"`
	Username string `form:"username"`
	Role     string `form:"role" binding:"omitempty,oneof=user hotelOwner"`
}
