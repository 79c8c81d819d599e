package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

// allColumns is the ordered list of columns scanned from the profiles table
// with a LEFT JOIN on orgs for the transient OrgSlug field.
const allColumns = `p.id, p.is_superuser, p.org_id, p.is_activated,
	p.created_at, p.updated_at, o.org_slug`

// fromClause is the common FROM + JOIN clause used by all read queries.
const fromClause = `FROM profiles p LEFT JOIN orgs o ON p.org_id = o.org_id`

// Create inserts a new profile record. The id comes from the identity
// provider and is never generated here.
func (r *PostgresRepository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (id, is_superuser, org_id, is_activated)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.IsSuperuser, p.OrgID, p.IsActivated,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}

	return nil
}

// GetByID retrieves a single profile by the identity provider's user id.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, allColumns, fromClause)

	var p Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.IsSuperuser, &p.OrgID, &p.IsActivated,
		&p.CreatedAt, &p.UpdatedAt, &p.OrgSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return &p, nil
}

// AssignOrg sets the org reference of a profile. The write is idempotent:
// repeating it with the same org leaves the row unchanged apart from
// updated_at.
func (r *PostgresRepository) AssignOrg(ctx context.Context, id uuid.UUID, orgID int64) error {
	query := `
		UPDATE profiles
		SET org_id = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("assigning org to profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// ListByOrg returns the profiles belonging to the given org, ordered by
// creation time.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID int64) ([]Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.org_id = $1 ORDER BY p.created_at ASC`,
		allColumns, fromClause)

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing profiles by org: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

// ListAll returns every profile ordered by creation time.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Profile, error) {
	query := fmt.Sprintf(`SELECT %s %s ORDER BY p.created_at ASC`, allColumns, fromClause)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func collectProfiles(rows pgx.Rows) ([]Profile, error) {
	var profiles []Profile
	for rows.Next() {
		var p Profile
		err := rows.Scan(
			&p.ID, &p.IsSuperuser, &p.OrgID, &p.IsActivated,
			&p.CreatedAt, &p.UpdatedAt, &p.OrgSlug,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	if profiles == nil {
		profiles = []Profile{}
	}

	return profiles, nil
}
