package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/phoneshop-api/internal/inventory"
)

const saleColumns = `id, sale_number, company_name, company_vat_number, company_address,
	company_phone, customer_name, customer_phone, customer_email, customer_address,
	subtotal, vat_amount, total_amount, payment_method, notes, status, user_id, date_created`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Settle(ctx context.Context, fn func(tx SettleTx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgSettleTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetSale(ctx context.Context, id int64) (*Sale, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
	sale, err := scanSale(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, sale_id, product_type, product_name, product_description,
			serial_number, unit_price, quantity, total_price, notes
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item Item
		err := rows.Scan(&item.ID, &item.SaleID, &item.ProductType, &item.ProductName,
			&item.ProductDescription, &item.SerialNumber, &item.UnitPrice,
			&item.Quantity, &item.TotalPrice, &item.Notes)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		sale.Items = append(sale.Items, item)
	}
	return sale, rows.Err()
}

// ListSales returns sales in [from, to), newest first. Zero bounds are open.
func (s *PostgresStore) ListSales(ctx context.Context, from, to time.Time) ([]Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales`
	args := make([]any, 0, 2)
	switch {
	case !from.IsZero() && !to.IsZero():
		query += ` WHERE date_created >= $1 AND date_created < $2`
		args = append(args, from, to)
	case !from.IsZero():
		query += ` WHERE date_created >= $1`
		args = append(args, from)
	case !to.IsZero():
		query += ` WHERE date_created < $1`
		args = append(args, to)
	}
	query += ` ORDER BY date_created DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	out := make([]Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sale)
	}
	return out, rows.Err()
}

// RecentSales returns the newest sales, at most limit of them.
func (s *PostgresStore) RecentSales(ctx context.Context, limit int) ([]Sale, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY date_created DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()

	out := make([]Sale, 0, limit)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sale)
	}
	return out, rows.Err()
}

type pgSettleTx struct {
	tx pgx.Tx
}

func (t *pgSettleTx) LockPhone(ctx context.Context, id int64) (*inventory.Phone, error) {
	var p inventory.Phone
	err := t.tx.QueryRow(ctx, `
		SELECT id, brand, model, condition, selling_price, selling_price_with_vat,
			serial_number, phone_number, description
		FROM phones WHERE id = $1 FOR UPDATE`, id).Scan(
		&p.ID, &p.Brand, &p.Model, &p.Condition, &p.SellingPrice,
		&p.SellingPriceWithVAT, &p.SerialNumber, &p.PhoneNumber, &p.Description,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, inventory.ErrPhoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock phone: %w", err)
	}
	return &p, nil
}

func (t *pgSettleTx) RemovePhone(ctx context.Context, id int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM phones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove sold phone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrPhoneNotFound
	}
	return nil
}

func (t *pgSettleTx) LockAccessory(ctx context.Context, id int64) (*inventory.Accessory, error) {
	var a inventory.Accessory
	err := t.tx.QueryRow(ctx, `
		SELECT id, name, category, description, selling_price, selling_price_with_vat,
			quantity_in_stock
		FROM accessories WHERE id = $1 FOR UPDATE`, id).Scan(
		&a.ID, &a.Name, &a.Category, &a.Description, &a.SellingPrice,
		&a.SellingPriceWithVAT, &a.QuantityInStock,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, inventory.ErrAccessoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock accessory: %w", err)
	}
	return &a, nil
}

func (t *pgSettleTx) SetAccessoryStock(ctx context.Context, id int64, quantity int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE accessories SET quantity_in_stock = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("set accessory stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrAccessoryNotFound
	}
	return nil
}

func (t *pgSettleTx) InsertSale(ctx context.Context, sale *Sale) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO sales (
			sale_number, company_name, company_vat_number, company_address,
			company_phone, customer_name, customer_phone, customer_email,
			customer_address, subtotal, vat_amount, total_amount,
			payment_method, notes, status, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, date_created`,
		sale.SaleNumber, sale.CompanyName, sale.CompanyVATNumber,
		sale.CompanyAddress, sale.CompanyPhone, sale.CustomerName,
		sale.CustomerPhone, sale.CustomerEmail, sale.CustomerAddress,
		sale.Subtotal, sale.VATAmount, sale.TotalAmount,
		sale.PaymentMethod, sale.Notes, sale.Status, sale.UserID,
	).Scan(&sale.ID, &sale.DateCreated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation &&
			pgErr.ConstraintName == "sales_sale_number_key" {
			return ErrSaleNumberTaken
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (t *pgSettleTx) InsertItems(ctx context.Context, saleID int64, items []Item) error {
	for i := range items {
		items[i].SaleID = saleID
		err := t.tx.QueryRow(ctx, `
			INSERT INTO sale_items (
				sale_id, product_type, product_name, product_description,
				serial_number, unit_price, quantity, total_price, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			saleID, items[i].ProductType, items[i].ProductName,
			items[i].ProductDescription, items[i].SerialNumber,
			items[i].UnitPrice, items[i].Quantity, items[i].TotalPrice,
			items[i].Notes,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func scanSale(row pgx.Row) (*Sale, error) {
	var s Sale
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.CompanyName, &s.CompanyVATNumber,
		&s.CompanyAddress, &s.CompanyPhone, &s.CustomerName, &s.CustomerPhone,
		&s.CustomerEmail, &s.CustomerAddress, &s.Subtotal, &s.VATAmount,
		&s.TotalAmount, &s.PaymentMethod, &s.Notes, &s.Status, &s.UserID,
		&s.DateCreated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	return &s, nil
}
