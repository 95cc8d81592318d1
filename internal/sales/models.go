package sales

import "time"

// Seller identity printed on every invoice.
const (
	CompanyName      = "Smart Phones Trading Co."
	CompanyVATNumber = "123456789012345"
	CompanyAddress   = "Riyadh, Saudi Arabia"
	CompanyPhone     = "+966-11-123-4567"
)

// Item product types. The non-phone types all settle against accessory
// stock; the submitted type is kept on the sale item.
const (
	ProductPhone           = "phone"
	ProductAccessory       = "accessory"
	ProductCharger         = "charger"
	ProductCase            = "case"
	ProductScreenProtector = "screen_protector"
)

// Sale is a finalized invoice. Monetary fields are computed server side
// from stored prices, never trusted from the client.
type Sale struct {
	ID               int64     `json:"id"`
	SaleNumber       string    `json:"sale_number"`
	CompanyName      string    `json:"company_name"`
	CompanyVATNumber string    `json:"company_vat_number"`
	CompanyAddress   string    `json:"company_address"`
	CompanyPhone     string    `json:"company_phone"`
	CustomerName     string    `json:"customer_name"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	CustomerEmail    string    `json:"customer_email,omitempty"`
	CustomerAddress  string    `json:"customer_address,omitempty"`
	Subtotal         float64   `json:"subtotal"`
	VATAmount        float64   `json:"vat_amount"`
	TotalAmount      float64   `json:"total_amount"`
	PaymentMethod    string    `json:"payment_method"`
	Notes            string    `json:"notes,omitempty"`
	Status           string    `json:"status"`
	UserID           *string   `json:"user_id,omitempty"`
	DateCreated      time.Time `json:"date_created"`
	Items            []Item    `json:"items,omitempty"`
}

// Item is one invoice line. UnitPrice and TotalPrice are pre-tax.
type Item struct {
	ID                 int64   `json:"id"`
	SaleID             int64   `json:"sale_id"`
	ProductType        string  `json:"product_type"`
	ProductName        string  `json:"product_name"`
	ProductDescription string  `json:"product_description,omitempty"`
	SerialNumber       string  `json:"serial_number,omitempty"`
	UnitPrice          float64 `json:"unit_price"`
	Quantity           int     `json:"quantity"`
	TotalPrice         float64 `json:"total_price"`
	Notes              string  `json:"notes,omitempty"`
}
