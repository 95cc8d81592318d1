package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 200

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, phone_id, transaction_type, serial_number, price, price_with_vat,
			vat_amount, user_id, customer_name, customer_phone, notes, date_created
		FROM transactions ORDER BY date_created DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.ID, &e.PhoneID, &e.TransactionType, &e.SerialNumber,
			&e.Price, &e.PriceWithVAT, &e.VATAmount, &e.UserID,
			&e.CustomerName, &e.CustomerPhone, &e.Notes, &e.DateCreated)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
