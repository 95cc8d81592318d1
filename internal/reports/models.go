package reports

import (
	"time"

	"github.com/noah-isme/phoneshop-api/internal/sales"
)

// DashboardStats is the landing-page snapshot: current inventory value
// and expected profit, all-time sales totals, and the latest sales.
// Purchase and selling values are pre-tax sums over phones in stock.
type DashboardStats struct {
	TotalPhones         int `json:"total_phones"`
	NewPhones           int `json:"new_phones"`
	UsedPhones          int `json:"used_phones"`
	TotalAccessories    int `json:"total_accessories"`
	LowStockAccessories int `json:"low_stock_accessories"`

	PurchaseValue  float64 `json:"purchase_value"`
	SellingValue   float64 `json:"selling_value"`
	ExpectedProfit float64 `json:"expected_profit"`
	InventoryValue float64 `json:"inventory_value"`

	SalesCount    int     `json:"sales_count"`
	SalesSubtotal float64 `json:"sales_subtotal"`
	SalesVAT      float64 `json:"sales_vat"`
	SalesTotal    float64 `json:"sales_total"`
	TodaySales    int     `json:"today_sales"`
	TodayRevenue  float64 `json:"today_revenue"`

	RecentSales []sales.Sale `json:"recent_sales"`
}

// ConditionSummary aggregates phones sharing a condition. Values are
// pre-tax; Profit is selling minus purchase.
type ConditionSummary struct {
	Condition     string  `json:"condition"`
	Count         int     `json:"count"`
	PurchaseValue float64 `json:"purchase_value"`
	SellingValue  float64 `json:"selling_value"`
	Profit        float64 `json:"profit"`
	AvgPrice      float64 `json:"avg_price"`
}

// ModelSummary aggregates phones sharing a condition, brand, and model.
type ModelSummary struct {
	Condition     string  `json:"condition"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Count         int     `json:"count"`
	PurchaseValue float64 `json:"purchase_value"`
	SellingValue  float64 `json:"selling_value"`
	Profit        float64 `json:"profit"`
	AvgPrice      float64 `json:"avg_price"`
}

// InventorySummary bundles both phone groupings with overall totals.
type InventorySummary struct {
	TotalPhones   int                `json:"total_phones"`
	PurchaseValue float64            `json:"purchase_value"`
	SellingValue  float64            `json:"selling_value"`
	Profit        float64            `json:"profit"`
	ByCondition   []ConditionSummary `json:"by_condition"`
	ByModel       []ModelSummary     `json:"by_model"`
}

// SalesReport lists sales inside a period with recomputed totals.
type SalesReport struct {
	Period    string       `json:"period,omitempty"`
	From      *time.Time   `json:"from,omitempty"`
	To        *time.Time   `json:"to,omitempty"`
	Count     int          `json:"count"`
	Subtotal  float64      `json:"subtotal"`
	VATAmount float64      `json:"vat_amount"`
	Total     float64      `json:"total"`
	Sales     []sales.Sale `json:"sales"`
}
