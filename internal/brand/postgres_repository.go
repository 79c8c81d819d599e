package brand

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// allColumns is the ordered list of columns scanned from the brands table.
const allColumns = `brand_id, name, brand_slug, description,
	COALESCE(config, '{}'::jsonb), COALESCE(enrichment, '{}'::jsonb),
	category_id, created_at, updated_at`

func scanBrand(row pgx.Row) (*Brand, error) {
	var b Brand
	err := row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.Description,
		&b.Config, &b.Enrichment, &b.CategoryID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("scanning brand row: %w", err)
	}
	return &b, nil
}

// Create inserts a new brand record. A duplicate slug fails with
// ErrDuplicateBrandSlug and leaves existing rows untouched.
func (r *PostgresRepository) Create(ctx context.Context, b *Brand) error {
	query := `
		INSERT INTO brands (name, brand_slug, description, config, enrichment, category_id)
		VALUES ($1, $2, $3, COALESCE($4, '{}'::jsonb), COALESCE($5, '{}'::jsonb), $6)
		RETURNING brand_id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.Name, b.Slug, b.Description, b.Config, b.Enrichment, b.CategoryID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBrandSlug
		}
		return fmt.Errorf("inserting brand: %w", err)
	}

	return nil
}

// GetBySlug retrieves a single brand by its unique slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Brand, error) {
	query := fmt.Sprintf(`SELECT %s FROM brands WHERE brand_slug = $1`, allColumns)
	return scanBrand(r.pool.QueryRow(ctx, query, slug))
}

// List retrieves all brands ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Brand, error) {
	query := fmt.Sprintf(`SELECT %s FROM brands ORDER BY name ASC`, allColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		var b Brand
		err := rows.Scan(
			&b.ID, &b.Name, &b.Slug, &b.Description,
			&b.Config, &b.Enrichment, &b.CategoryID,
			&b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning brand row: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating brand rows: %w", err)
	}

	if brands == nil {
		brands = []Brand{}
	}

	return brands, nil
}

// Update modifies non-nil fields on a brand. Returns the updated brand.
func (r *PostgresRepository) Update(ctx context.Context, slug string, fields UpdateFields) (*Brand, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	if fields.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *fields.Name)
		argIdx++
	}
	if fields.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *fields.Description)
		argIdx++
	}
	if fields.Config != nil {
		setClauses = append(setClauses, fmt.Sprintf("config = $%d", argIdx))
		args = append(args, fields.Config)
		argIdx++
	}
	if fields.Enrichment != nil {
		setClauses = append(setClauses, fmt.Sprintf("enrichment = $%d", argIdx))
		args = append(args, fields.Enrichment)
		argIdx++
	}
	if fields.CategoryID != nil {
		setClauses = append(setClauses, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, *fields.CategoryID)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetBySlug(ctx, slug)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, slug)

	query := fmt.Sprintf(`
		UPDATE brands
		SET %s
		WHERE brand_slug = $%d
		RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, allColumns)

	return scanBrand(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a brand by its slug.
func (r *PostgresRepository) Delete(ctx context.Context, slug string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE brand_slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("deleting brand: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBrandNotFound
	}

	return nil
}
