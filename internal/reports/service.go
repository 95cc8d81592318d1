package reports

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/pricing"
	"github.com/noah-isme/phoneshop-api/internal/sales"
)

const (
	dashboardCacheKey = "reports:dashboard:v1"
	summaryCacheKey   = "reports:inventory-summary:v1"
)

// SalesLister is satisfied by the sales store.
type SalesLister interface {
	ListSales(ctx context.Context, from, to time.Time) ([]sales.Sale, error)
	RecentSales(ctx context.Context, limit int) ([]sales.Sale, error)
}

// Sales shown on the dashboard.
const recentSalesLimit = 10

// Service computes reporting views on demand. The cache TTL is short; a
// stale dashboard is acceptable for its lifetime.
type Service struct {
	store Store
	sales SalesLister
	cache *common.Cache
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, salesStore SalesLister, cache *common.Cache, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		sales: salesStore,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if ok, err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := s.store.Dashboard(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.PurchaseValue = pricing.Round2(stats.PurchaseValue)
	stats.SellingValue = pricing.Round2(stats.SellingValue)
	stats.ExpectedProfit = pricing.Round2(stats.SellingValue - stats.PurchaseValue)
	stats.InventoryValue = pricing.Round2(stats.InventoryValue)
	stats.SalesSubtotal = pricing.Round2(stats.SalesSubtotal)
	stats.SalesVAT = pricing.Round2(stats.SalesVAT)
	stats.SalesTotal = pricing.Round2(stats.SalesTotal)
	stats.TodayRevenue = pricing.Round2(stats.TodayRevenue)

	recent, err := s.sales.RecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentSales = recent

	if err := s.cache.SetJSON(ctx, dashboardCacheKey, stats); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return stats, nil
}

func (s *Service) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	var cached InventorySummary
	if ok, err := s.cache.GetJSON(ctx, summaryCacheKey, &cached); err == nil && ok {
		return &cached, nil
	}

	byCondition, err := s.store.ConditionSummaries(ctx)
	if err != nil {
		return nil, err
	}
	byModel, err := s.store.ModelSummaries(ctx)
	if err != nil {
		return nil, err
	}

	summary := &InventorySummary{ByCondition: byCondition, ByModel: byModel}
	for i := range summary.ByCondition {
		cs := &summary.ByCondition[i]
		cs.Profit = pricing.Round2(cs.SellingValue - cs.PurchaseValue)
		summary.TotalPhones += cs.Count
		summary.PurchaseValue = pricing.Round2(summary.PurchaseValue + cs.PurchaseValue)
		summary.SellingValue = pricing.Round2(summary.SellingValue + cs.SellingValue)
	}
	summary.Profit = pricing.Round2(summary.SellingValue - summary.PurchaseValue)
	for i := range summary.ByModel {
		ms := &summary.ByModel[i]
		ms.Profit = pricing.Round2(ms.SellingValue - ms.PurchaseValue)
	}
	if err := s.cache.SetJSON(ctx, summaryCacheKey, summary); err != nil {
		s.log.Warn().Err(err).Msg("inventory summary cache write failed")
	}
	return summary, nil
}

// SalesReport lists sales inside the named period. Supported periods are
// day, month, and year, each anchored on the given date; an empty period
// returns everything.
func (s *Service) SalesReport(ctx context.Context, period string, anchor time.Time) (*SalesReport, error) {
	var from, to time.Time
	if anchor.IsZero() {
		anchor = s.now()
	}
	switch period {
	case "":
	case "day":
		from = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
		to = from.AddDate(0, 0, 1)
	case "month":
		from = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		to = from.AddDate(0, 1, 0)
	case "year":
		from = time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		to = from.AddDate(1, 0, 0)
	default:
		return nil, common.ValidationError("period must be day, month, or year")
	}

	list, err := s.sales.ListSales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &SalesReport{Period: period, Count: len(list), Sales: list}
	if !from.IsZero() {
		report.From = &from
		report.To = &to
	}
	for _, sale := range list {
		report.Subtotal = pricing.Round2(report.Subtotal + sale.Subtotal)
		report.VATAmount = pricing.Round2(report.VATAmount + sale.VATAmount)
		report.Total = pricing.Round2(report.Total + sale.TotalAmount)
	}
	return report, nil
}
