package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*Room, error)
	ReplaceForProperty(ctx context.Context, propertyID string, rooms []*Room) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	const query = `
		SELECT id, property_id, name, price_per_night, max_guests, beds, units_count, created_at
		FROM public.rooms
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.PropertyID, &rm.Name, &rm.PricePerNight,
		&rm.MaxGuests, &rm.Beds, &rm.UnitsCount, &rm.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) ListByProperty(ctx context.Context, propertyID string) ([]*Room, error) {
	const query = `
		SELECT id, property_id, name, price_per_night, max_guests, beds, units_count, created_at
		FROM public.rooms
		WHERE property_id = $1
		ORDER BY price_per_night ASC
	`
	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.PropertyID, &rm.Name, &rm.PricePerNight,
			&rm.MaxGuests, &rm.Beds, &rm.UnitsCount, &rm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, nil
}

func (r *pgxRepository) ReplaceForProperty(ctx context.Context, propertyID string, rooms []*Room) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace rooms tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM public.rooms WHERE property_id = $1`, propertyID); err != nil {
		return fmt.Errorf("delete old rooms failed: %w", err)
	}

	const insert = `
		INSERT INTO public.rooms (property_id, name, price_per_night, max_guests, beds, units_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	for _, rm := range rooms {
		err := tx.QueryRow(ctx, insert,
			rm.PropertyID, rm.Name, rm.PricePerNight, rm.MaxGuests, rm.Beds, rm.UnitsCount,
		).Scan(&rm.ID, &rm.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert room failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace rooms tx failed: %w", err)
	}
	return nil
}
