package hotel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, h *Hotel) error
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	ListCities(ctx context.Context) ([]string, error)
	Update(ctx context.Context, h *Hotel) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, h *Hotel) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hotels").
		Columns("owner_id", "name", "address", "contact", "city").
		Values(h.OwnerID, h.Name, h.Address, h.Contact, h.City).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hotel query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"h.id", "h.owner_id", "u.username", "h.name", "h.address", "h.contact", "h.city", "h.created_at",
	).
		From("public.hotels h").
		Join("public.users u ON h.owner_id = u.id").
		Where(squirrel.Eq{"h.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hotel query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var h Hotel
	if err := row.Scan(
		&h.ID, &h.OwnerID, &h.OwnerName, &h.Name, &h.Address, &h.Contact, &h.City, &h.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hotel failed: %w", err)
	}
	return &h, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"h.id", "h.owner_id", "u.username", "h.name", "h.address", "h.contact", "h.city", "h.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.hotels h").
		Join("public.users u ON h.owner_id = u.id")

	if filter.City != "" {
		query = query.Where(squirrel.Eq{"h.city": filter.City})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"h.owner_id": filter.OwnerID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"h.name": pattern},
			squirrel.ILike{"h.address": pattern},
		})
	}

	query = query.OrderBy("h.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hotels query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels failed: %w", err)
	}
	defer rows.Close()

	var hotels []*Hotel
	var total int

	for rows.Next() {
		var h Hotel
		if err := rows.Scan(
			&h.ID, &h.OwnerID, &h.OwnerName, &h.Name, &h.Address, &h.Contact, &h.City, &h.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hotel failed: %w", err)
		}
		hotels = append(hotels, &h)
	}

	return hotels, total, nil
}

func (r *pgxRepository) ListCities(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT city FROM public.hotels ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("list cities failed: %w", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("scan city failed: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *Hotel) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hotels").
		Set("name", h.Name).
		Set("address", h.Address).
		Set("contact", h.Contact).
		Set("city", h.City).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hotel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hotel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hotel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hotel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
