package auth

import "github.com/google/uuid"

// Identity is stored in the request context after authentication. It merges
// what the token says (id, email, metadata) with the durable profile row.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	UserMetadata map[string]any
	OrgID        *int64
	OrgSlug      *string
	IsSuperuser  bool
	IsActivated  bool
}
