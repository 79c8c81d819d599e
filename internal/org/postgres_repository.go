package org

import (
	"context"
	"errors"
	"fmt"

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

// Create inserts a new org record.
func (r *PostgresRepository) Create(ctx context.Context, o *Org) error {
	query := `
		INSERT INTO orgs (org_slug)
		VALUES ($1)
		RETURNING org_id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, o.Slug).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrgSlug
		}
		return fmt.Errorf("inserting org: %w", err)
	}

	return nil
}

// GetByID retrieves a single org by its id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Org, error) {
	query := `
		SELECT org_id, org_slug, created_at, updated_at
		FROM orgs
		WHERE org_id = $1`

	return scanOrg(r.pool.QueryRow(ctx, query, id))
}

// GetBySlug retrieves a single org by its unique slug.
func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*Org, error) {
	query := `
		SELECT org_id, org_slug, created_at, updated_at
		FROM orgs
		WHERE org_slug = $1`

	return scanOrg(r.pool.QueryRow(ctx, query, slug))
}

// List retrieves all orgs ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]Org, error) {
	query := `
		SELECT org_id, org_slug, created_at, updated_at
		FROM orgs
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing orgs: %w", err)
	}
	defer rows.Close()

	var orgs []Org
	for rows.Next() {
		var o Org
		if err := rows.Scan(&o.ID, &o.Slug, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning org row: %w", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating org rows: %w", err)
	}

	if orgs == nil {
		orgs = []Org{}
	}

	return orgs, nil
}

func scanOrg(row pgx.Row) (*Org, error) {
	var o Org
	err := row.Scan(&o.ID, &o.Slug, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("querying org: %w", err)
	}
	return &o, nil
}
