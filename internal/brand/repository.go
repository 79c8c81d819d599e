package brand

import (
	"context"
	"errors"
)

// ErrBrandNotFound is returned when a brand record is not found.
var ErrBrandNotFound = errors.New("brand not found")

// ErrDuplicateBrandSlug is returned when a brand with the same slug already exists.
var ErrDuplicateBrandSlug = errors.New("brand slug already exists")

// Repository provides CRUD operations on the brands table.
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	GetBySlug(ctx context.Context, slug string) (*Brand, error)
	List(ctx context.Context) ([]Brand, error)
	Update(ctx context.Context, slug string, fields UpdateFields) (*Brand, error)
	Delete(ctx context.Context, slug string) error
}
