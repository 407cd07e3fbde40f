package hotel

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OwnerID string
	Name    string
	Address string
	Contact string
	City    string
}

type UpdateRequest struct {
	Name    *string
	Address *string
	Contact *string
	City    *string
}

type Service interface {
	Register(ctx context.Context, req CreateRequest) (*Hotel, error)
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	ListCities(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Hotel, error)
	Delete(ctx context.Context, id string, deleterUserID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req CreateRequest) (*Hotel, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	contact := strings.TrimSpace(req.Contact)
	city := strings.TrimSpace(req.City)

	if name == "" || address == "" || contact == "" || city == "" {
		return nil, ErrMissingFields
	}

	h := &Hotel{
		OwnerID: req.OwnerID,
		Name:    name,
		Address: address,
		Contact: contact,
		City:    city,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListCities(ctx context.Context) ([]string, error) {
	return s.repo.ListCities(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Hotel, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.OwnerID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		h.Address = strings.TrimSpace(*req.Address)
	}
	if req.Contact != nil {
		h.Contact = strings.TrimSpace(*req.Contact)
	}
	if req.City != nil {
		h.City = strings.TrimSpace(*req.City)
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string) error {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if h.OwnerID != deleterUserID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
