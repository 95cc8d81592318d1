package inventory

import (
	"context"
	"errors"

	"github.com/noah-isme/phoneshop-api/internal/ledger"
)

// Sentinel errors surfaced by Store implementations.
var (
	ErrPhoneNotFound     = errors.New("inventory: phone not found")
	ErrAccessoryNotFound = errors.New("inventory: accessory not found")
	ErrSerialTaken       = errors.New("inventory: serial number already exists")
	ErrPhoneNumberTaken  = errors.New("inventory: phone number already exists")
)

// Store is the persistence boundary for phones and accessory stock.
type Store interface {
	// CreatePhone inserts the phone and its buy audit row in one
	// transaction. Uniqueness conflicts map to ErrSerialTaken or
	// ErrPhoneNumberTaken so the caller can retry allocation.
	CreatePhone(ctx context.Context, phone *Phone, audit *ledger.Entry) error
	DeletePhone(ctx context.Context, id int64) error
	GetPhone(ctx context.Context, id int64) (*Phone, error)
	GetPhoneByNumber(ctx context.Context, phoneNumber string) (*Phone, error)
	ListPhones(ctx context.Context) ([]Phone, error)
	// MaxPhoneNumber returns the highest allocated phone number, or ""
	// when no phones exist.
	MaxPhoneNumber(ctx context.Context) (string, error)
	SearchPhones(ctx context.Context, term, condition string) ([]Phone, error)

	CreateAccessory(ctx context.Context, accessory *Accessory) error
	UpdateAccessory(ctx context.Context, accessory *Accessory) error
	DeleteAccessory(ctx context.Context, id int64) error
	GetAccessory(ctx context.Context, id int64) (*Accessory, error)
	ListAccessories(ctx context.Context) ([]Accessory, error)
	SearchAccessories(ctx context.Context, term string) ([]Accessory, error)
}
