package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/phoneshop-api/internal/ledger"
)

const phoneColumns = `id, brand, model, condition, purchase_price, selling_price,
	purchase_price_with_vat, selling_price_with_vat, serial_number, phone_number,
	barcode_path, description, warranty, phone_condition, age, customer_name,
	customer_id, phone_color, phone_memory, buyer_name, date_added`

const accessoryColumns = `id, name, category, description, purchase_price, selling_price,
	purchase_price_with_vat, selling_price_with_vat, quantity_in_stock, min_quantity,
	supplier, notes, date_added`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreatePhone(ctx context.Context, phone *Phone, audit *ledger.Entry) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO phones (
			brand, model, condition, purchase_price, selling_price,
			purchase_price_with_vat, selling_price_with_vat, serial_number,
			phone_number, barcode_path, description, warranty, phone_condition,
			age, customer_name, customer_id, phone_color, phone_memory, buyer_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, date_added`,
		phone.Brand, phone.Model, phone.Condition,
		phone.PurchasePrice, phone.SellingPrice,
		phone.PurchasePriceWithVAT, phone.SellingPriceWithVAT,
		phone.SerialNumber, phone.PhoneNumber, phone.BarcodePath,
		phone.Description, phone.Warranty, phone.PhoneCondition, phone.Age,
		phone.CustomerName, phone.CustomerID, phone.PhoneColor,
		phone.PhoneMemory, phone.BuyerName,
	).Scan(&phone.ID, &phone.DateAdded)
	if err != nil {
		if uniqueViolation(err, "phones_serial_number_key") {
			return ErrSerialTaken
		}
		if uniqueViolation(err, "phones_phone_number_key") {
			return ErrPhoneNumberTaken
		}
		return fmt.Errorf("insert phone: %w", err)
	}

	audit.PhoneID = phone.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (
			phone_id, transaction_type, serial_number, price, price_with_vat,
			vat_amount, user_id, customer_name, customer_phone, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, date_created`,
		audit.PhoneID, audit.TransactionType, audit.SerialNumber,
		audit.Price, audit.PriceWithVAT, audit.VATAmount, audit.UserID,
		audit.CustomerName, audit.CustomerPhone, audit.Notes,
	).Scan(&audit.ID, &audit.DateCreated)
	if err != nil {
		return fmt.Errorf("insert buy transaction: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) DeletePhone(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM phones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPhoneNotFound
	}
	return nil
}

func (s *PostgresStore) GetPhone(ctx context.Context, id int64) (*Phone, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+phoneColumns+` FROM phones WHERE id = $1`, id)
	return scanPhone(row)
}

func (s *PostgresStore) GetPhoneByNumber(ctx context.Context, phoneNumber string) (*Phone, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+phoneColumns+` FROM phones WHERE phone_number = $1`, phoneNumber)
	return scanPhone(row)
}

func (s *PostgresStore) ListPhones(ctx context.Context) ([]Phone, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+phoneColumns+` FROM phones ORDER BY date_added DESC`)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()
	return collectPhones(rows)
}

func (s *PostgresStore) MaxPhoneNumber(ctx context.Context) (string, error) {
	var max string
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(phone_number), '') FROM phones`).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("max phone number: %w", err)
	}
	return max, nil
}

func (s *PostgresStore) SearchPhones(ctx context.Context, term, condition string) ([]Phone, error) {
	pattern := "%" + term + "%"
	query := `SELECT ` + phoneColumns + ` FROM phones
		WHERE (phone_number LIKE $1 OR serial_number LIKE $1 OR brand LIKE $1
			OR model LIKE $1 OR phone_color LIKE $1 OR phone_memory LIKE $1
			OR description LIKE $1 OR customer_name LIKE $1 OR customer_id LIKE $1)`
	args := []any{pattern}
	if condition != "" {
		query += ` AND condition = $2`
		args = append(args, condition)
	}
	query += ` ORDER BY date_added DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search phones: %w", err)
	}
	defer rows.Close()
	return collectPhones(rows)
}

func (s *PostgresStore) CreateAccessory(ctx context.Context, accessory *Accessory) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accessories (
			name, category, description, purchase_price, selling_price,
			purchase_price_with_vat, selling_price_with_vat, quantity_in_stock,
			min_quantity, supplier, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, date_added`,
		accessory.Name, accessory.Category, accessory.Description,
		accessory.PurchasePrice, accessory.SellingPrice,
		accessory.PurchasePriceWithVAT, accessory.SellingPriceWithVAT,
		accessory.QuantityInStock, accessory.MinQuantity,
		accessory.Supplier, accessory.Notes,
	).Scan(&accessory.ID, &accessory.DateAdded)
	if err != nil {
		return fmt.Errorf("insert accessory: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateAccessory(ctx context.Context, accessory *Accessory) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accessories SET
			name = $1, category = $2, description = $3, purchase_price = $4,
			selling_price = $5, purchase_price_with_vat = $6,
			selling_price_with_vat = $7, quantity_in_stock = $8,
			min_quantity = $9, supplier = $10, notes = $11
		WHERE id = $12`,
		accessory.Name, accessory.Category, accessory.Description,
		accessory.PurchasePrice, accessory.SellingPrice,
		accessory.PurchasePriceWithVAT, accessory.SellingPriceWithVAT,
		accessory.QuantityInStock, accessory.MinQuantity,
		accessory.Supplier, accessory.Notes, accessory.ID,
	)
	if err != nil {
		return fmt.Errorf("update accessory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccessoryNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteAccessory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accessories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete accessory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccessoryNotFound
	}
	return nil
}

func (s *PostgresStore) GetAccessory(ctx context.Context, id int64) (*Accessory, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accessoryColumns+` FROM accessories WHERE id = $1`, id)
	return scanAccessory(row)
}

func (s *PostgresStore) ListAccessories(ctx context.Context) ([]Accessory, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accessoryColumns+` FROM accessories ORDER BY date_added DESC`)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	defer rows.Close()
	return collectAccessories(rows)
}

func (s *PostgresStore) SearchAccessories(ctx context.Context, term string) ([]Accessory, error) {
	pattern := "%" + term + "%"
	rows, err := s.pool.Query(ctx, `SELECT `+accessoryColumns+` FROM accessories
		WHERE name LIKE $1 OR category LIKE $1 OR description LIKE $1
			OR supplier LIKE $1 OR notes LIKE $1
		ORDER BY date_added DESC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search accessories: %w", err)
	}
	defer rows.Close()
	return collectAccessories(rows)
}

func scanPhone(row pgx.Row) (*Phone, error) {
	var p Phone
	err := row.Scan(
		&p.ID, &p.Brand, &p.Model, &p.Condition,
		&p.PurchasePrice, &p.SellingPrice,
		&p.PurchasePriceWithVAT, &p.SellingPriceWithVAT,
		&p.SerialNumber, &p.PhoneNumber, &p.BarcodePath, &p.Description,
		&p.Warranty, &p.PhoneCondition, &p.Age, &p.CustomerName,
		&p.CustomerID, &p.PhoneColor, &p.PhoneMemory, &p.BuyerName,
		&p.DateAdded,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPhoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan phone: %w", err)
	}
	return &p, nil
}

func collectPhones(rows pgx.Rows) ([]Phone, error) {
	phones := make([]Phone, 0)
	for rows.Next() {
		p, err := scanPhone(rows)
		if err != nil {
			return nil, err
		}
		phones = append(phones, *p)
	}
	return phones, rows.Err()
}

func scanAccessory(row pgx.Row) (*Accessory, error) {
	var a Accessory
	err := row.Scan(
		&a.ID, &a.Name, &a.Category, &a.Description,
		&a.PurchasePrice, &a.SellingPrice,
		&a.PurchasePriceWithVAT, &a.SellingPriceWithVAT,
		&a.QuantityInStock, &a.MinQuantity, &a.Supplier, &a.Notes,
		&a.DateAdded,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccessoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan accessory: %w", err)
	}
	return &a, nil
}

func collectAccessories(rows pgx.Rows) ([]Accessory, error) {
	accessories := make([]Accessory, 0)
	for rows.Next() {
		a, err := scanAccessory(rows)
		if err != nil {
			return nil, err
		}
		accessories = append(accessories, *a)
	}
	return accessories, rows.Err()
}

func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}
