package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store computes read-only aggregations over phones, accessories, and sales.
type Store interface {
	Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (*DashboardStats, error)
	ConditionSummaries(ctx context.Context) ([]ConditionSummary, error)
	ModelSummaries(ctx context.Context) ([]ModelSummary, error)
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (*DashboardStats, error) {
	var stats DashboardStats
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM phones),
			(SELECT COUNT(*) FROM phones WHERE condition = 'new'),
			(SELECT COUNT(*) FROM phones WHERE condition = 'used'),
			(SELECT COUNT(*) FROM accessories),
			(SELECT COUNT(*) FROM accessories WHERE quantity_in_stock <= min_quantity),
			(SELECT COALESCE(SUM(purchase_price), 0) FROM phones),
			(SELECT COALESCE(SUM(selling_price), 0) FROM phones),
			(SELECT COALESCE(SUM(selling_price_with_vat), 0) FROM phones)
				+ (SELECT COALESCE(SUM(selling_price_with_vat * quantity_in_stock), 0) FROM accessories),
			(SELECT COUNT(*) FROM sales),
			(SELECT COALESCE(SUM(subtotal), 0) FROM sales),
			(SELECT COALESCE(SUM(vat_amount), 0) FROM sales),
			(SELECT COALESCE(SUM(total_amount), 0) FROM sales),
			(SELECT COUNT(*) FROM sales WHERE date_created >= $1 AND date_created < $2),
			(SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE date_created >= $1 AND date_created < $2)`,
		dayStart, dayEnd,
	).Scan(
		&stats.TotalPhones, &stats.NewPhones, &stats.UsedPhones,
		&stats.TotalAccessories, &stats.LowStockAccessories,
		&stats.PurchaseValue, &stats.SellingValue, &stats.InventoryValue,
		&stats.SalesCount, &stats.SalesSubtotal, &stats.SalesVAT,
		&stats.SalesTotal, &stats.TodaySales, &stats.TodayRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) ConditionSummaries(ctx context.Context) ([]ConditionSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT condition, COUNT(*),
			COALESCE(SUM(purchase_price), 0),
			COALESCE(SUM(selling_price), 0),
			COALESCE(AVG(selling_price), 0)
		FROM phones GROUP BY condition ORDER BY condition`)
	if err != nil {
		return nil, fmt.Errorf("condition summaries: %w", err)
	}
	defer rows.Close()

	out := make([]ConditionSummary, 0, 2)
	for rows.Next() {
		var cs ConditionSummary
		err := rows.Scan(&cs.Condition, &cs.Count, &cs.PurchaseValue,
			&cs.SellingValue, &cs.AvgPrice)
		if err != nil {
			return nil, fmt.Errorf("scan condition summary: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ModelSummaries(ctx context.Context) ([]ModelSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT condition, brand, model, COUNT(*),
			COALESCE(SUM(purchase_price), 0),
			COALESCE(SUM(selling_price), 0),
			COALESCE(AVG(selling_price), 0)
		FROM phones GROUP BY condition, brand, model
		ORDER BY condition, COUNT(*) DESC, brand, model`)
	if err != nil {
		return nil, fmt.Errorf("model summaries: %w", err)
	}
	defer rows.Close()

	out := make([]ModelSummary, 0)
	for rows.Next() {
		var ms ModelSummary
		err := rows.Scan(&ms.Condition, &ms.Brand, &ms.Model, &ms.Count,
			&ms.PurchaseValue, &ms.SellingValue, &ms.AvgPrice)
		if err != nil {
			return nil, fmt.Errorf("scan model summary: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}
