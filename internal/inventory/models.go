package inventory

import "time"

// Phone conditions.
const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

// Phone is one physical, individually serialized device. It is created on
// purchase intake and removed from inventory when sold. serial_number and
// phone_number are globally unique and never change once assigned.
type Phone struct {
	ID                   int64     `json:"id"`
	Brand                string    `json:"brand"`
	Model                string    `json:"model"`
	Condition            string    `json:"condition"`
	PurchasePrice        float64   `json:"purchase_price"`
	SellingPrice         float64   `json:"selling_price"`
	PurchasePriceWithVAT float64   `json:"purchase_price_with_vat"`
	SellingPriceWithVAT  float64   `json:"selling_price_with_vat"`
	SerialNumber         string    `json:"serial_number"`
	PhoneNumber          string    `json:"phone_number"`
	BarcodePath          string    `json:"barcode_path,omitempty"`
	Description          string    `json:"description,omitempty"`
	Warranty             int       `json:"warranty,omitempty"`
	PhoneCondition       string    `json:"phone_condition,omitempty"`
	Age                  int       `json:"age,omitempty"`
	CustomerName         string    `json:"customer_name,omitempty"`
	CustomerID           string    `json:"customer_id,omitempty"`
	PhoneColor           string    `json:"phone_color,omitempty"`
	PhoneMemory          string    `json:"phone_memory,omitempty"`
	BuyerName            string    `json:"buyer_name,omitempty"`
	DateAdded            time.Time `json:"date_added"`
}

// Accessory is a quantity-tracked, non-serialized stock line.
type Accessory struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	Description          string    `json:"description,omitempty"`
	PurchasePrice        float64   `json:"purchase_price"`
	SellingPrice         float64   `json:"selling_price"`
	PurchasePriceWithVAT float64   `json:"purchase_price_with_vat"`
	SellingPriceWithVAT  float64   `json:"selling_price_with_vat"`
	QuantityInStock      int       `json:"quantity_in_stock"`
	MinQuantity          int       `json:"min_quantity"`
	Supplier             string    `json:"supplier,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	DateAdded            time.Time `json:"date_added"`
}

// AccessoryTotals aggregates the stock value of an accessory listing.
type AccessoryTotals struct {
	PurchaseValue float64 `json:"purchase_value"`
	SellingValue  float64 `json:"selling_value"`
	Quantity      int     `json:"quantity"`
}

// SearchResult bundles matches across both inventory kinds.
type SearchResult struct {
	Phones      []Phone     `json:"phones"`
	Accessories []Accessory `json:"accessories"`
}
