package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a booking if and only if no active booking for the same
	// room overlaps the requested range. The check and the insert are atomic
	// with respect to concurrent creates for the same room.
	Create(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus moves a booking from one status to another. The write is
	// conditional on the booking still holding the from status; a booking
	// that exists but changed underneath the caller yields ErrConcurrentUpdate.
	UpdateStatus(ctx context.Context, id string, from, to Status) error

	UpdatePayment(ctx context.Context, id string, isPaid *bool, paymentMethod *string) error
	Delete(ctx context.Context, id string) error

	// HasOverlap checks whether any non-cancelled booking for the room
	// intersects the half-open range [checkIn, checkOut).
	// excludeBookingID is used during updates to ignore the booking itself.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `
	b.id, b.guest_id, u.username, u.email,
	b.room_id, r.room_type, b.hotel_id, h.name, h.city,
	b.check_in, b.check_out, b.guests, b.total_price,
	b.payment_method, b.is_paid, b.status, b.created_at, b.updated_at
`

const bookingJoins = `
	FROM public.bookings b
	JOIN public.users u ON b.guest_id = u.id
	JOIN public.rooms r ON b.room_id = r.id
	JOIN public.hotels h ON b.hotel_id = h.id
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.GuestID, &b.GuestName, &b.GuestEmail,
		&b.RoomID, &b.RoomType, &b.HotelID, &b.HotelName, &b.HotelCity,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice,
		&b.PaymentMethod, &b.IsPaid, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

// Create runs the conflict check and the insert inside one transaction. A
// per-room advisory lock serializes concurrent creates for the same room
// across all service instances sharing the database; creates for different
// rooms proceed in parallel. The bookings table additionally carries an
// exclusion constraint over (room_id, daterange) for non-cancelled rows, so
// even a path that bypasses this method cannot double-book.
func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.RoomID); err != nil {
		return fmt.Errorf("acquire room lock failed: %w", err)
	}

	conflict, err := hasOverlapQuery(ctx, tx, b.RoomID, b.CheckIn, b.CheckOut, "")
	if err != nil {
		return err
	}
	if conflict {
		return ErrDatesUnavailable
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("guest_id", "room_id", "hotel_id", "check_in", "check_out",
			"guests", "total_price", "payment_method", "is_paid", "status").
		Values(b.GuestID, b.RoomID, b.HotelID, b.CheckIn, b.CheckOut,
			b.Guests, b.TotalPrice, b.PaymentMethod, b.IsPaid, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrDatesUnavailable
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE b.id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.guest_id", "u.username", "u.email",
		"b.room_id", "r.room_type", "b.hotel_id", "h.name", "h.city",
		"b.check_in", "b.check_out", "b.guests", "b.total_price",
		"b.payment_method", "b.is_paid", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.users u ON b.guest_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.hotels h ON b.hotel_id = h.id")

	if filter.GuestID != "" {
		query = query.Where(squirrel.Eq{"b.guest_id": filter.GuestID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.HotelID != "" {
		query = query.Where(squirrel.Eq{"b.hotel_id": filter.HotelID})
	}
	if filter.HotelOwnerID != "" {
		query = query.Where(squirrel.Eq{"h.owner_id": filter.HotelOwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.IsPaid != nil {
		query = query.Where(squirrel.Eq{"b.is_paid": *filter.IsPaid})
	}

	query = query.OrderBy("b.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.GuestID, &b.GuestName, &b.GuestEmail,
			&b.RoomID, &b.RoomType, &b.HotelID, &b.HotelName, &b.HotelCity,
			&b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalPrice,
			&b.PaymentMethod, &b.IsPaid, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`

	ct, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: either the booking is gone or its status moved since it was
	// read. Distinguish so the caller can surface the right error.
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check booking existence failed: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConcurrentUpdate
}

func (r *pgxRepository) UpdatePayment(ctx context.Context, id string, isPaid *bool, paymentMethod *string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Update("public.bookings").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if isPaid != nil {
		query = query.Set("is_paid", *isPaid)
	}
	if paymentMethod != nil {
		query = query.Set("payment_method", *paymentMethod)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	return hasOverlapQuery(ctx, r.pool, roomID, checkIn, checkOut, excludeBookingID)
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx so the overlap
// predicate can run standalone or inside the create transaction.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// hasOverlapQuery builds and runs the conflict predicate:
//  1. Room matches
//  2. Status is NOT cancelled
//  3. Half-open ranges intersect: existing.check_in < new.check_out
//     AND existing.check_out > new.check_in
//  4. Optionally excludes a specific booking (for updates)
func hasOverlapQuery(ctx context.Context, q queryRower, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.NotEq{"status": string(StatusCancelled)}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}
