package catalog

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by Store implementations.
var (
	ErrPhoneTypeNotFound   = errors.New("catalog: phone type not found")
	ErrPhoneTypeExists     = errors.New("catalog: phone type already exists")
	ErrPhoneTypeReferenced = errors.New("catalog: phone type referenced by inventory")
	ErrCategoryNotFound    = errors.New("catalog: accessory category not found")
	ErrCategoryExists      = errors.New("catalog: accessory category already exists")
	ErrCategoryReferenced  = errors.New("catalog: accessory category referenced by inventory")
)

// Store persists catalog reference rows. Deletes are guarded: a row still
// referenced by inventory returns a Referenced error and removes nothing.
type Store interface {
	CreatePhoneType(ctx context.Context, pt *PhoneType) error
	ListPhoneTypes(ctx context.Context) ([]PhoneType, error)
	DeletePhoneType(ctx context.Context, id int64) error

	CreateCategory(ctx context.Context, c *AccessoryCategory) error
	ListCategories(ctx context.Context) ([]AccessoryCategory, error)
	UpdateCategory(ctx context.Context, c *AccessoryCategory) error
	DeleteCategory(ctx context.Context, id int64) error
}
