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

type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates the Postgres-backed Store.
func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (s *pgxStore) Claim(ctx context.Context, slotID, clientID string, now time.Time) (*Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin claim tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Conditional single-statement flip: of N concurrent claims exactly
	// one sees rows affected, the rest fall through to ErrSlotUnavailable.
	const flipSlot = `
		UPDATE public.availability_slots
		SET status = 'booked', updated_at = now()
		WHERE id = $1 AND status = 'open' AND start_at > $2
		RETURNING start_at, end_at, service_id
	`
	var b Booking
	b.SlotID = slotID
	b.ClientID = clientID
	err = tx.QueryRow(ctx, flipSlot, slotID, now).
		Scan(&b.SlotStartAt, &b.SlotEndAt, &b.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("flip slot failed: %w", err)
	}

	const insertBooking = `
		INSERT INTO public.bookings (slot_id, client_id, status)
		VALUES ($1, $2, 'confirmed')
		RETURNING id, status, created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertBooking, slotID, clientID).
		Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		// The partial unique index on bookings(slot_id) is the backstop:
		// a violation here means another booking won, report it as the
		// same business outcome.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.QueryRow(ctx,
		`SELECT name FROM public.services WHERE id = $1`, b.ServiceID,
	).Scan(&b.ServiceName); err != nil {
		return nil, fmt.Errorf("load service name failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claim tx failed: %w", err)
	}
	return &b, nil
}

func (s *pgxStore) Cancel(ctx context.Context, bookingID string, now time.Time) (*Booking, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const cancelBooking = `
		UPDATE public.bookings
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'confirmed'
		RETURNING slot_id, client_id, created_at, updated_at
	`
	var b Booking
	b.ID = bookingID
	b.Status = StatusCancelled
	err = tx.QueryRow(ctx, cancelBooking, bookingID).
		Scan(&b.SlotID, &b.ClientID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cancel booking failed: %w", err)
		}
		// Distinguish missing from wrong-state for the caller.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM public.bookings WHERE id = $1)`, bookingID,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check booking exists failed: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		return nil, ErrInvalidState
	}

	// Revert the slot so it becomes claimable again, but only while it
	// is still booked and has not started yet. For a past slot this
	// matches zero rows and the slot stays booked.
	const revertSlot = `
		UPDATE public.availability_slots
		SET status = 'open', updated_at = now()
		WHERE id = $1 AND status = 'booked' AND start_at > $2
	`
	if _, err := tx.Exec(ctx, revertSlot, b.SlotID, now); err != nil {
		return nil, fmt.Errorf("revert slot failed: %w", err)
	}

	const slotInfo = `
		SELECT s.start_at, s.end_at, s.service_id, sv.name
		FROM public.availability_slots s
		JOIN public.services sv ON s.service_id = sv.id
		WHERE s.id = $1
	`
	if err := tx.QueryRow(ctx, slotInfo, b.SlotID).
		Scan(&b.SlotStartAt, &b.SlotEndAt, &b.ServiceID, &b.ServiceName); err != nil {
		return nil, fmt.Errorf("load slot info failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancel tx failed: %w", err)
	}
	return &b, nil
}

func (s *pgxStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	const query = `
		SELECT b.id, b.slot_id, b.client_id, b.status, b.created_at, b.updated_at,
		       s.start_at, s.end_at, s.service_id, sv.name
		FROM public.bookings b
		JOIN public.availability_slots s ON b.slot_id = s.id
		JOIN public.services sv ON s.service_id = sv.id
		WHERE b.id = $1
	`
	row := s.pool.QueryRow(ctx, query, id)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.SlotID, &b.ClientID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.SlotStartAt, &b.SlotEndAt, &b.ServiceID, &b.ServiceName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (s *pgxStore) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.slot_id", "b.client_id", "b.status", "b.created_at", "b.updated_at",
		"s.start_at", "s.end_at", "s.service_id", "sv.name",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.availability_slots s ON b.slot_id = s.id").
		Join("public.services sv ON s.service_id = sv.id")

	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.ServiceID != "" {
		query = query.Where(squirrel.Eq{"s.service_id": filter.ServiceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"s.start_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"s.start_at": filter.To})
	}

	query = query.OrderBy("s.start_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.SlotID, &b.ClientID, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&b.SlotStartAt, &b.SlotEndAt, &b.ServiceID, &b.ServiceName, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}
