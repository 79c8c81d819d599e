package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile record is not found.
var ErrProfileNotFound = errors.New("profile not found")

// Repository provides operations on the profiles table.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// AssignOrg sets the org reference of a profile. Assigning the org the
	// profile already has is a no-op success.
	AssignOrg(ctx context.Context, id uuid.UUID, orgID int64) error
	// ListByOrg returns the profiles belonging to the given org.
	ListByOrg(ctx context.Context, orgID int64) ([]Profile, error)
	// ListAll returns every profile; reserved for superusers.
	ListAll(ctx context.Context) ([]Profile, error)
}
