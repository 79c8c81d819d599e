package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a row in the profiles table. The id is the identity
// provider's user id; a profile belongs to at most one org and OrgID stays
// nil until an invite is accepted or an org is otherwise assigned.
type Profile struct {
	ID          uuid.UUID
	IsSuperuser bool
	OrgID       *int64
	IsActivated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// OrgSlug is populated on reads via a join with orgs; nil when the
	// profile has no org.
	OrgSlug *string
}
