package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreatePhoneType(ctx context.Context, pt *PhoneType) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO phone_types (brand, model, category, release_year, is_active, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_added`,
		pt.Brand, pt.Model, pt.Category, pt.ReleaseYear, pt.IsActive, pt.Notes,
	).Scan(&pt.ID, &pt.DateAdded)
	if isUniqueViolation(err) {
		return ErrPhoneTypeExists
	}
	if err != nil {
		return fmt.Errorf("insert phone type: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListPhoneTypes(ctx context.Context) ([]PhoneType, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, brand, model, category, release_year, is_active, notes, date_added
		FROM phone_types ORDER BY brand, model`)
	if err != nil {
		return nil, fmt.Errorf("list phone types: %w", err)
	}
	defer rows.Close()

	out := make([]PhoneType, 0)
	for rows.Next() {
		var pt PhoneType
		err := rows.Scan(&pt.ID, &pt.Brand, &pt.Model, &pt.Category,
			&pt.ReleaseYear, &pt.IsActive, &pt.Notes, &pt.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("scan phone type: %w", err)
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

// DeletePhoneType refuses to remove a type while any phone in stock still
// carries its brand and model.
func (s *PostgresStore) DeletePhoneType(ctx context.Context, id int64) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var brand, model string
	err = tx.QueryRow(ctx,
		`SELECT brand, model FROM phone_types WHERE id = $1`, id).Scan(&brand, &model)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPhoneTypeNotFound
	}
	if err != nil {
		return fmt.Errorf("load phone type: %w", err)
	}

	var refs int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM phones WHERE brand = $1 AND model = $2`, brand, model).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count phone type references: %w", err)
	}
	if refs > 0 {
		return ErrPhoneTypeReferenced
	}

	if _, err := tx.Exec(ctx, `DELETE FROM phone_types WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete phone type: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *AccessoryCategory) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accessory_categories (name, arabic_name, description, is_active, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date_added`,
		c.Name, c.ArabicName, c.Description, c.IsActive, c.Notes,
	).Scan(&c.ID, &c.DateAdded)
	if isUniqueViolation(err) {
		return ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("insert accessory category: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]AccessoryCategory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, arabic_name, description, is_active, notes, date_added
		FROM accessory_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accessory categories: %w", err)
	}
	defer rows.Close()

	out := make([]AccessoryCategory, 0)
	for rows.Next() {
		var c AccessoryCategory
		err := rows.Scan(&c.ID, &c.Name, &c.ArabicName, &c.Description,
			&c.IsActive, &c.Notes, &c.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("scan accessory category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, c *AccessoryCategory) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accessory_categories
		SET name = $1, arabic_name = $2, description = $3, is_active = $4, notes = $5
		WHERE id = $6`,
		c.Name, c.ArabicName, c.Description, c.IsActive, c.Notes, c.ID)
	if isUniqueViolation(err) {
		return ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("update accessory category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory refuses to remove a category while any accessory still
// references its machine name.
func (s *PostgresStore) DeleteCategory(ctx context.Context, id int64) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var name string
	err = tx.QueryRow(ctx,
		`SELECT name FROM accessory_categories WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("load accessory category: %w", err)
	}

	var refs int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM accessories WHERE category = $1`, name).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count category references: %w", err)
	}
	if refs > 0 {
		return ErrCategoryReferenced
	}

	if _, err := tx.Exec(ctx, `DELETE FROM accessory_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete accessory category: %w", err)
	}
	return tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
