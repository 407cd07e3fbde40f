package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
)

// UpdateProfileRequest carries optional profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	Username *string
	Image    *string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, email, password, username string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	AddRecentCity(ctx context.Context, id, city string) ([]string, error)
	UpdateRole(ctx context.Context, id, role string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, username string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	username = strings.TrimSpace(username)
	if username == "" {
		// Fall back to the local part of the email.
		username = strings.SplitN(cleanEmail, "@", 2)[0]
	}

	u := &User{
		Username:             username,
		Email:                cleanEmail,
		PasswordHash:         hash,
		Role:                 RoleUser,
		RecentSearchedCities: []string{},
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at, best effort. A failed timestamp write must not
	// fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		log.Printf("failed to update last login for user %s: %v", u.ID, err)
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		u.Username = strings.TrimSpace(*req.Username)
	}
	if req.Image != nil {
		u.Image = req.Image
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AddRecentCity records a searched city, keeping the list most-recent-first,
// deduplicated, and capped.
func (s *service) AddRecentCity(ctx context.Context, id, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, maxRecentCities)
	cities = append(cities, city)
	for _, c := range u.RecentSearchedCities {
		if c == city {
			continue
		}
		cities = append(cities, c)
		if len(cities) == maxRecentCities {
			break
		}
	}
	u.RecentSearchedCities = cities

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.RecentSearchedCities, nil
}

func (s *service) UpdateRole(ctx context.Context, id, role string) (*User, error) {
	if role != RoleUser && role != RoleHotelOwner {
		return nil, ErrInvalidRole
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
