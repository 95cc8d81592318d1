// Package ledger keeps the append-only transaction log. Rows are written
// inside the mutating operation's transaction and never updated or deleted.
package ledger

import (
	"context"
	"time"
)

// Transaction types recorded in the ledger.
const (
	TypeBuy = "buy"
)

// Entry is one audit row linking a phone to the event that touched it.
type Entry struct {
	ID              int64     `json:"id"`
	PhoneID         int64     `json:"phone_id"`
	TransactionType string    `json:"transaction_type"`
	SerialNumber    string    `json:"serial_number"`
	Price           float64   `json:"price"`
	PriceWithVAT    float64   `json:"price_with_vat"`
	VATAmount       float64   `json:"vat_amount"`
	UserID          string    `json:"user_id"`
	CustomerName    string    `json:"customer_name,omitempty"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	DateCreated     time.Time `json:"date_created"`
}

// Store lists recorded entries. Writes happen through the owning
// operation's store so they share its transaction.
type Store interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}
