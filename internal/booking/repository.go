package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking after re-checking capacity inside the same
	// transaction, under a lock scoped to the room. Returns
	// ErrCapacityExceeded when the range no longer fits.
	Create(ctx context.Context, b *Booking, unitsCount int) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListActiveForRoom returns capacity-consuming bookings for the room
	// that have not fully elapsed as of the given date.
	ListActiveForRoom(ctx context.Context, roomID string, asOf time.Time) ([]*Booking, error)

	// ListOverlapping returns capacity-consuming bookings for the room whose
	// range overlaps [start, end) under half-open semantics.
	ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*Booking, error)

	// UpdateStatus writes the transition and appends an audit event in one
	// transaction. The update is guarded on the expected previous status;
	// a concurrent transition surfaces as ErrStatusChanged.
	UpdateStatus(ctx context.Context, b *Booking, from Status, actorID string) error

	ListEvents(ctx context.Context, bookingID string) ([]*Event, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking, unitsCount int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize capacity checks per room for the duration of the
	// transaction. The lock is keyed on the room UUID and released
	// automatically at commit/rollback.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, b.RoomID); err != nil {
		return fmt.Errorf("acquire room lock failed: %w", err)
	}

	// Re-check capacity now that we hold the lock. Summing units_booked is
	// deliberate: counting rows would undercount multi-unit bookings.
	const capacityQuery = `
		SELECT COALESCE(SUM(units_booked), 0)
		FROM public.bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date < $2
		  AND end_date > $3
	`
	var taken int
	if err := tx.QueryRow(ctx, capacityQuery, b.RoomID, b.EndDate, b.StartDate).Scan(&taken); err != nil {
		return fmt.Errorf("capacity check failed: %w", err)
	}
	if taken+b.UnitsBooked > unitsCount {
		return ErrCapacityExceeded
	}

	const insert = `
		INSERT INTO public.bookings
			(room_id, property_id, user_id, start_date, end_date, units_booked, total_price, trip_purpose, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, insert,
		b.RoomID, b.PropertyID, b.UserID, b.StartDate, b.EndDate,
		b.UnitsBooked, b.TotalPrice, b.TripPurpose, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}

	// Creation event: from_status is NULL.
	const insertEvent = `
		INSERT INTO public.booking_events (booking_id, from_status, to_status, actor_id)
		VALUES ($1, NULL, $2, $3)
	`
	if _, err := tx.Exec(ctx, insertEvent, b.ID, b.Status, b.UserID); err != nil {
		return fmt.Errorf("insert booking event failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	b.id, b.room_id, r.name, b.property_id, p.title, p.owner_id,
	b.user_id, coalesce(u.full_name, u.email),
	b.start_date, b.end_date, b.units_booked, b.total_price, b.trip_purpose,
	b.status, b.created_at, b.updated_at
`

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.rooms r ON b.room_id = r.id
		JOIN public.properties p ON b.property_id = p.id
		JOIN public.profiles u ON b.user_id = u.id
		WHERE b.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.RoomID, &b.RoomName, &b.PropertyID, &b.PropertyTitle, &b.OwnerID,
		&b.UserID, &b.UserName,
		&b.StartDate, &b.EndDate, &b.UnitsBooked, &b.TotalPrice, &b.TripPurpose,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.room_id", "r.name", "b.property_id", "p.title", "p.owner_id",
		"b.user_id", "coalesce(u.full_name, u.email)",
		"b.start_date", "b.end_date", "b.units_booked", "b.total_price", "b.trip_purpose",
		"b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.properties p ON b.property_id = p.id").
		Join("public.profiles u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"p.owner_id": filter.OwnerID})
	}
	if filter.PropertyID != "" {
		query = query.Where(squirrel.Eq{"b.property_id": filter.PropertyID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.Lt{"b.start_date": filter.DateTo})
	}

	query = query.OrderBy("b.created_at DESC")

	// Pagination
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
			&b.ID, &b.RoomID, &b.RoomName, &b.PropertyID, &b.PropertyTitle, &b.OwnerID,
			&b.UserID, &b.UserName,
			&b.StartDate, &b.EndDate, &b.UnitsBooked, &b.TotalPrice, &b.TripPurpose,
			&b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListActiveForRoom(ctx context.Context, roomID string, asOf time.Time) ([]*Booking, error) {
	// Fully elapsed bookings cannot block future nights; skipping them keeps
	// the scan small. Correctness does not depend on the cutoff.
	const query = `
		SELECT id, room_id, property_id, user_id, start_date, end_date, units_booked, total_price, trip_purpose, status, created_at, updated_at
		FROM public.bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND end_date >= $2
	`
	return r.queryBookings(ctx, query, roomID, asOf)
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]*Booking, error) {
	const query = `
		SELECT id, room_id, property_id, user_id, start_date, end_date, units_booked, total_price, trip_purpose, status, created_at, updated_at
		FROM public.bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date < $3
		  AND end_date > $2
	`
	return r.queryBookings(ctx, query, roomID, start, end)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.PropertyID, &b.UserID,
			&b.StartDate, &b.EndDate, &b.UnitsBooked, &b.TotalPrice, &b.TripPurpose,
			&b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking, from Status, actorID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update status tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Guard on the expected previous status so that two racing decisions
	// (e.g. guest cancel vs. host accept) cannot both take effect.
	const update = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`
	ct, err := tx.Exec(ctx, update, b.Status, b.ID, from)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either the booking vanished or someone else transitioned it first.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)`, b.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check booking existence failed: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStatusChanged
	}

	const insertEvent = `
		INSERT INTO public.booking_events (booking_id, from_status, to_status, actor_id)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insertEvent, b.ID, from, b.Status, actorID); err != nil {
		return fmt.Errorf("insert booking event failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update status tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListEvents(ctx context.Context, bookingID string) ([]*Event, error) {
	const query = `
		SELECT id, booking_id, from_status, to_status, actor_id, created_at
		FROM public.booking_events
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list booking events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.BookingID, &e.FromStatus, &e.ToStatus, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking event failed: %w", err)
		}
		events = append(events, &e)
	}

	return events, nil
}
