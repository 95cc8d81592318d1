package sales

import (
	"context"
	"errors"
	"time"

	"github.com/noah-isme/phoneshop-api/internal/inventory"
)

// Sentinel errors surfaced by Store implementations.
var (
	ErrSaleNotFound    = errors.New("sales: sale not found")
	ErrSaleNumberTaken = errors.New("sales: sale number already exists")
)

// SettleTx is the set of operations available inside one settlement
// transaction. Row locks taken by LockPhone and LockAccessory serialize
// concurrent settlements touching the same stock.
type SettleTx interface {
	LockPhone(ctx context.Context, id int64) (*inventory.Phone, error)
	RemovePhone(ctx context.Context, id int64) error
	LockAccessory(ctx context.Context, id int64) (*inventory.Accessory, error)
	SetAccessoryStock(ctx context.Context, id int64, quantity int) error
	InsertSale(ctx context.Context, sale *Sale) error
	InsertItems(ctx context.Context, saleID int64, items []Item) error
}

// Store persists sales. Settle runs fn inside a single transaction and
// commits only when fn returns nil.
type Store interface {
	Settle(ctx context.Context, fn func(tx SettleTx) error) error
	GetSale(ctx context.Context, id int64) (*Sale, error)
	ListSales(ctx context.Context, from, to time.Time) ([]Sale, error)
}
