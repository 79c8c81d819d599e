package org

import "time"

// Org represents a row in the orgs table: the tenant grouping of profiles.
type Org struct {
	ID        int64
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
