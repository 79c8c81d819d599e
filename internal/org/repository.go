package org

import (
	"context"
	"errors"
)

// ErrOrgNotFound is returned when an org record is not found.
var ErrOrgNotFound = errors.New("org not found")

// ErrDuplicateOrgSlug is returned when an org with the same slug already exists.
var ErrDuplicateOrgSlug = errors.New("org slug already exists")

// Repository provides operations on the orgs table.
type Repository interface {
	Create(ctx context.Context, o *Org) error
	GetByID(ctx context.Context, id int64) (*Org, error)
	GetBySlug(ctx context.Context, slug string) (*Org, error)
	List(ctx context.Context) ([]Org, error)
}
