package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServiceRepository defines storage access for offered services.
type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]*Service, int, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id string) error

	// HasActiveBookings reports whether any non-cancelled slot of the
	// service carries a non-cancelled booking. Deleting such a service
	// is blocked.
	HasActiveBookings(ctx context.Context, serviceID string) (bool, error)
}

type pgxServiceRepository struct {
	pool *pgxpool.Pool
}

func NewPgxServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &pgxServiceRepository{pool: pool}
}

func (r *pgxServiceRepository) Create(ctx context.Context, s *Service) error {
	const query = `
		INSERT INTO public.services (provider_id, name, duration_minutes, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, s.ProviderID, s.Name, s.DurationMinutes, s.PriceCents).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxServiceRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	const query = `
		SELECT id, provider_id, name, duration_minutes, price_cents, photo_path, created_at, updated_at
		FROM public.services
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var s Service
	if err := row.Scan(
		&s.ID, &s.ProviderID, &s.Name, &s.DurationMinutes,
		&s.PriceCents, &s.PhotoPath, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return &s, nil
}

func (r *pgxServiceRepository) List(ctx context.Context, filter ServiceFilter) ([]*Service, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "provider_id", "name", "duration_minutes", "price_cents",
		"photo_path", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.services")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"provider_id": filter.ProviderID})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Keyword + "%"})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var services []*Service
	var total int

	for rows.Next() {
		var s Service
		if err := rows.Scan(
			&s.ID, &s.ProviderID, &s.Name, &s.DurationMinutes,
			&s.PriceCents, &s.PhotoPath, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		services = append(services, &s)
	}

	return services, total, nil
}

func (r *pgxServiceRepository) Update(ctx context.Context, s *Service) error {
	// duration_minutes is deliberately absent: slot sizing must not drift
	// under already generated slots.
	const query = `
		UPDATE public.services
		SET name = $2, price_cents = $3, photo_path = $4, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, s.ID, s.Name, s.PriceCents, s.PhotoPath)
	if err != nil {
		return fmt.Errorf("update service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *pgxServiceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.services WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *pgxServiceRepository) HasActiveBookings(ctx context.Context, serviceID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM public.bookings b
			JOIN public.availability_slots s ON b.slot_id = s.id
			WHERE s.service_id = $1
			  AND b.status <> 'cancelled'
			  AND s.status <> 'cancelled'
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, serviceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active bookings failed: %w", err)
	}
	return exists, nil
}
