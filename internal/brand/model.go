package brand

import (
	"encoding/json"
	"time"
)

// Brand represents a row in the brands table. Config and Enrichment are
// free-form JSON blobs stored as JSONB and passed through untouched.
type Brand struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Config      json.RawMessage
	Enrichment  json.RawMessage
	CategoryID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpdateFields holds optional fields for a partial brand update.
// Nil fields are not updated.
type UpdateFields struct {
	Name        *string
	Description *string
	Config      json.RawMessage
	Enrichment  json.RawMessage
	CategoryID  *int64
}
