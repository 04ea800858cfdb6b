package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for availability slots. Status
// mutations beyond creation and retirement happen in the booking store,
// which owns the claim/cancel transitions.
type Repository interface {
	// CreateIfFree inserts the slot unless it would overlap a
	// non-cancelled slot for the same staff member (or, for staff-less
	// slots, the same service). The overlap check and the insert are one
	// statement, so concurrent bulk runs cannot race past each other.
	// Returns false when the slot was rejected as overlapping.
	CreateIfFree(ctx context.Context, s *Slot) (bool, error)

	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)

	// Retire moves the slot to cancelled from any non-cancelled state and
	// cancels a live booking riding on it, if any. Returns the client ID
	// of the cancelled booking, or nil.
	Retire(ctx context.Context, id string) (*string, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateIfFree(ctx context.Context, s *Slot) (bool, error) {
	// Conflict scope: same staff member when pinned, otherwise the
	// staff-less slots of the same service.
	const query = `
		INSERT INTO public.availability_slots (service_id, staff_id, start_at, end_at, status)
		SELECT $1, $2, $3, $4, 'open'
		WHERE NOT EXISTS (
			SELECT 1 FROM public.availability_slots
			WHERE status <> 'cancelled'
			  AND start_at < $4
			  AND end_at > $3
			  AND CASE
				WHEN $2::uuid IS NOT NULL THEN staff_id = $2
				ELSE service_id = $1 AND staff_id IS NULL
			  END
		)
		RETURNING id, status, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, s.ServiceID, s.StaffID, s.StartAt, s.EndAt).
		Scan(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create slot failed: %w", err)
	}
	return true, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	const query = `
		SELECT id, service_id, staff_id, start_at, end_at, status, created_at, updated_at
		FROM public.availability_slots
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var s Slot
	if err := row.Scan(
		&s.ID, &s.ServiceID, &s.StaffID, &s.StartAt, &s.EndAt,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "service_id", "staff_id", "start_at", "end_at", "status",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.availability_slots")

	if filter.ServiceID != "" {
		query = query.Where(squirrel.Eq{"service_id": filter.ServiceID})
	}
	if filter.StaffID != "" {
		query = query.Where(squirrel.Eq{"staff_id": filter.StaffID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"start_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"start_at": filter.To})
	}

	query = query.OrderBy("start_at ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	query = query.
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	var total int

	for rows.Next() {
		var s Slot
		if err := rows.Scan(
			&s.ID, &s.ServiceID, &s.StaffID, &s.StartAt, &s.EndAt,
			&s.Status, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, total, nil
}

func (r *pgxRepository) Retire(ctx context.Context, id string) (*string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin retire tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const retireSlot = `
		UPDATE public.availability_slots
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status <> 'cancelled'
	`
	ct, err := tx.Exec(ctx, retireSlot, id)
	if err != nil {
		return nil, fmt.Errorf("retire slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either missing or already cancelled; distinguish for the caller.
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM public.availability_slots WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check slot exists failed: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		// Retiring an already cancelled slot is a no-op.
		return nil, tx.Commit(ctx)
	}

	// A booked slot carries at most one live booking (partial unique
	// index on bookings.slot_id); cancel it alongside.
	const cancelBooking = `
		UPDATE public.bookings
		SET status = 'cancelled', updated_at = now()
		WHERE slot_id = $1 AND status <> 'cancelled'
		RETURNING client_id
	`
	var clientID *string
	var cid string
	err = tx.QueryRow(ctx, cancelBooking, id).Scan(&cid)
	switch {
	case err == nil:
		clientID = &cid
	case errors.Is(err, pgx.ErrNoRows):
		// Slot was open; nothing to cancel.
	default:
		return nil, fmt.Errorf("cancel booking on retire failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit retire tx failed: %w", err)
	}
	return clientID, nil
}
