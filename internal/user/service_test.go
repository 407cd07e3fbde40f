package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter user.Filter) ([]*user.User, int, error) {
	var out []*user.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func newUserService() (user.Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return user.NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login", func(t *testing.T) {
		svc, _ := newUserService()

		u, err := svc.Register(ctx, "Alice@Example.com", "supersecret", "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email, "email is normalized")
		assert.Equal(t, user.RoleUser, u.Role)
		assert.False(t, u.IsAdmin)

		logged, err := svc.Login(ctx, "alice@example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, u.ID, logged.ID)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.Register(ctx, "bob@example.com", "supersecret", "bob")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob@example.com", "othersecret", "bobby")
		assert.ErrorIs(t, err, user.ErrEmailAlreadyUsed)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.Register(ctx, "carol@example.com", "short", "carol")
		assert.ErrorIs(t, err, user.ErrPasswordTooShort)
	})

	t.Run("empty username falls back to email local part", func(t *testing.T) {
		svc, _ := newUserService()

		u, err := svc.Register(ctx, "dave@example.com", "supersecret", "  ")
		require.NoError(t, err)
		assert.Equal(t, "dave", u.Username)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		svc, _ := newUserService()

		_, err := svc.Register(ctx, "erin@example.com", "supersecret", "erin")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "erin@example.com", "wrongsecret")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)

		_, err = svc.Login(ctx, "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestAddRecentCity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	u, err := svc.Register(ctx, "traveler@example.com", "supersecret", "traveler")
	require.NoError(t, err)

	t.Run("cities are most-recent-first and deduplicated", func(t *testing.T) {
		for _, city := range []string{"Hanoi", "Tokyo", "Hanoi", "Paris"} {
			_, err := svc.AddRecentCity(ctx, u.ID, city)
			require.NoError(t, err)
		}

		cities, err := svc.AddRecentCity(ctx, u.ID, "Lisbon")
		require.NoError(t, err)
		assert.Equal(t, []string{"Lisbon", "Paris", "Hanoi", "Tokyo"}, cities)
	})

	t.Run("list is capped at five", func(t *testing.T) {
		for _, city := range []string{"Rome", "Oslo", "Cairo"} {
			_, err := svc.AddRecentCity(ctx, u.ID, city)
			require.NoError(t, err)
		}

		cities, err := svc.AddRecentCity(ctx, u.ID, "Seoul")
		require.NoError(t, err)
		assert.Equal(t, []string{"Seoul", "Cairo", "Oslo", "Rome", "Lisbon"}, cities)
	})

	t.Run("blank city is rejected", func(t *testing.T) {
		_, err := svc.AddRecentCity(ctx, u.ID, "   ")
		assert.ErrorIs(t, err, user.ErrCityRequired)
	})
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService()

	u, err := svc.Register(ctx, "host@example.com", "supersecret", "host")
	require.NoError(t, err)

	t.Run("promote to hotel owner", func(t *testing.T) {
		updated, err := svc.UpdateRole(ctx, u.ID, user.RoleHotelOwner)
		require.NoError(t, err)
		assert.Equal(t, user.RoleHotelOwner, updated.Role)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := svc.UpdateRole(ctx, u.ID, "superadmin")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})
}
