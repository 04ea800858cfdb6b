package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StaffRepository defines storage access for staff members.
type StaffRepository interface {
	Create(ctx context.Context, st *Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, filter StaffFilter) ([]*Staff, int, error)
	Update(ctx context.Context, st *Staff) error
	Delete(ctx context.Context, id string) error
}

type pgxStaffRepository struct {
	pool *pgxpool.Pool
}

func NewPgxStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &pgxStaffRepository{pool: pool}
}

func (r *pgxStaffRepository) Create(ctx context.Context, st *Staff) error {
	const query = `
		INSERT INTO public.staff (provider_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, st.ProviderID, st.Name).
		Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		return fmt.Errorf("create staff failed: %w", err)
	}
	return nil
}

func (r *pgxStaffRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	const query = `
		SELECT id, provider_id, name, created_at
		FROM public.staff
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var st Staff
	if err := row.Scan(&st.ID, &st.ProviderID, &st.Name, &st.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("get staff failed: %w", err)
	}
	return &st, nil
}

func (r *pgxStaffRepository) List(ctx context.Context, filter StaffFilter) ([]*Staff, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "provider_id", "name", "created_at", "count(*) OVER() as total_count").
		From("public.staff")

	if filter.ProviderID != "" {
		query = query.Where(squirrel.Eq{"provider_id": filter.ProviderID})
	}

	query = query.OrderBy("created_at ASC")

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
		return nil, 0, fmt.Errorf("build list staff query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list staff failed: %w", err)
	}
	defer rows.Close()

	var staff []*Staff
	var total int

	for rows.Next() {
		var st Staff
		if err := rows.Scan(&st.ID, &st.ProviderID, &st.Name, &st.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan staff failed: %w", err)
		}
		staff = append(staff, &st)
	}

	return staff, total, nil
}

func (r *pgxStaffRepository) Update(ctx context.Context, st *Staff) error {
	const query = `UPDATE public.staff SET name = $2 WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, st.ID, st.Name)
	if err != nil {
		return fmt.Errorf("update staff failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}

func (r *pgxStaffRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.staff WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete staff failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrStaffNotFound
	}
	return nil
}
