package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/sales"
)

type fakeStore struct {
	stats       DashboardStats
	byCondition []ConditionSummary
	byModel     []ModelSummary
	calls       int
}

func (f *fakeStore) Dashboard(ctx context.Context, dayStart, dayEnd time.Time) (*DashboardStats, error) {
	f.calls++
	stats := f.stats
	return &stats, nil
}

func (f *fakeStore) ConditionSummaries(ctx context.Context) ([]ConditionSummary, error) {
	f.calls++
	return f.byCondition, nil
}

func (f *fakeStore) ModelSummaries(ctx context.Context) ([]ModelSummary, error) {
	return f.byModel, nil
}

type fakeSales struct {
	sales []sales.Sale

	gotFrom  time.Time
	gotTo    time.Time
	gotLimit int
}

func (f *fakeSales) RecentSales(ctx context.Context, limit int) ([]sales.Sale, error) {
	f.gotLimit = limit
	if len(f.sales) > limit {
		return f.sales[:limit], nil
	}
	return f.sales, nil
}

func (f *fakeSales) ListSales(ctx context.Context, from, to time.Time) ([]sales.Sale, error) {
	f.gotFrom, f.gotTo = from, to
	out := make([]sales.Sale, 0)
	for _, s := range f.sales {
		if !from.IsZero() && s.DateCreated.Before(from) {
			continue
		}
		if !to.IsZero() && !s.DateCreated.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func newTestService(t *testing.T, store Store, lister SalesLister) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(store, lister, common.NewCache(client, 30*time.Second), zerolog.Nop())
	return svc
}

func TestDashboardCached(t *testing.T) {
	store := &fakeStore{stats: DashboardStats{TotalPhones: 4, TodayRevenue: 1265.004}}
	svc := newTestService(t, store, &fakeSales{})
	ctx := context.Background()

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalPhones)
	assert.InDelta(t, 1265.0, stats.TodayRevenue, 0.001)
	require.Equal(t, 1, store.calls)

	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestDashboardInventoryAndSalesAggregates(t *testing.T) {
	store := &fakeStore{stats: DashboardStats{
		TotalPhones:   3,
		PurchaseValue: 2400,
		SellingValue:  3000,
		SalesCount:    5,
		SalesSubtotal: 1300,
		SalesVAT:      195,
		SalesTotal:    1495,
	}}
	svc := newTestService(t, store, &fakeSales{})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 600.0, stats.ExpectedProfit, 0.001)
	assert.Equal(t, 5, stats.SalesCount)
	assert.InDelta(t, 1300.0, stats.SalesSubtotal, 0.001)
	assert.InDelta(t, 195.0, stats.SalesVAT, 0.001)
	assert.InDelta(t, 1495.0, stats.SalesTotal, 0.001)
}

func TestDashboardRecentSalesCapped(t *testing.T) {
	lister := &fakeSales{}
	for i := int64(1); i <= 12; i++ {
		lister.sales = append(lister.sales, sales.Sale{ID: i})
	}
	svc := newTestService(t, &fakeStore{}, lister)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, lister.gotLimit)
	require.Len(t, stats.RecentSales, 10)
	assert.Equal(t, int64(1), stats.RecentSales[0].ID)
}

func TestInventorySummary(t *testing.T) {
	store := &fakeStore{
		byCondition: []ConditionSummary{
			{Condition: "new", Count: 3, PurchaseValue: 2400, SellingValue: 3000, AvgPrice: 1000},
			{Condition: "used", Count: 1, PurchaseValue: 400, SellingValue: 500, AvgPrice: 500},
		},
		byModel: []ModelSummary{
			{Condition: "new", Brand: "Samsung", Model: "Galaxy S24",
				Count: 2, PurchaseValue: 1600, SellingValue: 2000, AvgPrice: 1000},
		},
	}
	svc := newTestService(t, store, &fakeSales{})

	summary, err := svc.InventorySummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.ByCondition, 2)
	require.Len(t, summary.ByModel, 1)

	assert.Equal(t, 4, summary.TotalPhones)
	assert.InDelta(t, 2800.0, summary.PurchaseValue, 0.001)
	assert.InDelta(t, 3500.0, summary.SellingValue, 0.001)
	assert.InDelta(t, 700.0, summary.Profit, 0.001)
	assert.InDelta(t, 600.0, summary.ByCondition[0].Profit, 0.001)
	assert.InDelta(t, 100.0, summary.ByCondition[1].Profit, 0.001)
	assert.Equal(t, "new", summary.ByModel[0].Condition)
	assert.InDelta(t, 400.0, summary.ByModel[0].Profit, 0.001)
}

func TestSalesReportPeriods(t *testing.T) {
	loc := time.UTC
	anchor := time.Date(2024, 3, 9, 14, 0, 0, 0, loc)
	lister := &fakeSales{sales: []sales.Sale{
		{ID: 1, Subtotal: 1100, VATAmount: 165, TotalAmount: 1265,
			DateCreated: time.Date(2024, 3, 9, 10, 0, 0, 0, loc)},
		{ID: 2, Subtotal: 200, VATAmount: 30, TotalAmount: 230,
			DateCreated: time.Date(2024, 3, 1, 10, 0, 0, 0, loc)},
		{ID: 3, Subtotal: 100, VATAmount: 15, TotalAmount: 115,
			DateCreated: time.Date(2023, 12, 31, 10, 0, 0, 0, loc)},
	}}
	svc := newTestService(t, &fakeStore{}, lister)
	ctx := context.Background()

	day, err := svc.SalesReport(ctx, "day", anchor)
	require.NoError(t, err)
	assert.Equal(t, 1, day.Count)
	assert.InDelta(t, 1265.0, day.Total, 0.001)

	month, err := svc.SalesReport(ctx, "month", anchor)
	require.NoError(t, err)
	assert.Equal(t, 2, month.Count)
	assert.InDelta(t, 1300.0, month.Subtotal, 0.001)
	assert.InDelta(t, 195.0, month.VATAmount, 0.001)

	year, err := svc.SalesReport(ctx, "year", anchor)
	require.NoError(t, err)
	assert.Equal(t, 2, year.Count)

	all, err := svc.SalesReport(ctx, "", anchor)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	assert.True(t, lister.gotFrom.IsZero())

	_, err = svc.SalesReport(ctx, "week", anchor)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)
}
