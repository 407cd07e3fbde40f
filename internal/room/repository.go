package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	ListRoomTypes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("hotel_id", "room_type", "price_per_night", "amenities", "images", "max_guests", "is_available").
		Values(rm.HotelID, rm.RoomType, rm.PricePerNight, rm.Amenities, rm.Images, rm.MaxGuests, rm.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&rm.ID, &rm.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"r.id", "r.hotel_id", "h.name", "h.city",
		"r.room_type", "r.price_per_night", "r.amenities", "r.images",
		"r.max_guests", "r.is_available", "r.created_at",
	).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.HotelID, &rm.HotelName, &rm.HotelCity,
		&rm.RoomType, &rm.PricePerNight, &rm.Amenities, &rm.Images,
		&rm.MaxGuests, &rm.IsAvailable, &rm.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.hotel_id", "h.name", "h.city",
		"r.room_type", "r.price_per_night", "r.amenities", "r.images",
		"r.max_guests", "r.is_available", "r.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id")

	if filter.HotelID != "" {
		query = query.Where(squirrel.Eq{"r.hotel_id": filter.HotelID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"h.owner_id": filter.OwnerID})
	}
	if filter.RoomType != "" {
		query = query.Where(squirrel.Eq{"r.room_type": filter.RoomType})
	}
	if filter.City != "" {
		query = query.Where(squirrel.Eq{"h.city": filter.City})
	}
	if filter.MaxPrice > 0 {
		query = query.Where(squirrel.LtOrEq{"r.price_per_night": filter.MaxPrice})
	}
	if filter.OnlyAvailable {
		query = query.Where(squirrel.Eq{"r.is_available": true})
	}

	query = query.OrderBy("r.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.HotelID, &rm.HotelName, &rm.HotelCity,
			&rm.RoomType, &rm.PricePerNight, &rm.Amenities, &rm.Images,
			&rm.MaxGuests, &rm.IsAvailable, &rm.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) ListRoomTypes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT room_type FROM public.rooms ORDER BY room_type`)
	if err != nil {
		return nil, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan room type failed: %w", err)
		}
		types = append(types, t)
	}
	return types, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("room_type", rm.RoomType).
		Set("price_per_night", rm.PricePerNight).
		Set("amenities", rm.Amenities).
		Set("images", rm.Images).
		Set("max_guests", rm.MaxGuests).
		Set("is_available", rm.IsAvailable).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
