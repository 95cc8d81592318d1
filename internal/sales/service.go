package sales

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/ident"
	"github.com/noah-isme/phoneshop-api/internal/inventory"
	"github.com/noah-isme/phoneshop-api/internal/pricing"
)

// Retries when a generated sale number collides with a concurrent checkout.
const saleNumberAttempts = 3

// CartItem is one client-submitted cart line. Price fields are display
// values only; settlement reprices every line from the database.
type CartItem struct {
	Type        string  `json:"type" validate:"required,oneof=phone accessory charger case screen_protector"`
	ID          int64   `json:"id" validate:"required,gt=0"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	TotalPrice  float64 `json:"totalPrice"`
}

// CheckoutRequest is the cart settlement payload.
type CheckoutRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerEmail   string     `json:"customer_email" validate:"omitempty,email"`
	CustomerAddress string     `json:"customer_address"`
	PaymentMethod   string     `json:"payment_method"`
	Notes           string     `json:"notes"`
	Items           []CartItem `json:"items" validate:"required,min=1,dive"`
}

// CheckoutResult reports a settled sale.
type CheckoutResult struct {
	Success    bool   `json:"success"`
	SaleID     int64  `json:"sale_id"`
	SaleNumber string `json:"sale_number"`
}

// Service settles carts. A checkout either fully commits, removing sold
// phones and decrementing accessory stock alongside the invoice rows, or
// leaves inventory untouched.
type Service struct {
	store    Store
	pricing  pricing.Engine
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(store Store, engine pricing.Engine, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		pricing:  engine,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
	}
}

// Checkout validates the cart, reprices it from stored selling prices, and
// settles it atomically. Phones are single-unit lines; accessory stock is
// decremented and clamps at zero when the cart asks for more than is left.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.ValidationError(checkoutValidationMessage(err))
	}
	for _, item := range req.Items {
		if item.Type == ProductPhone && item.Quantity != 1 {
			return nil, common.ValidationError("phone lines must have quantity 1")
		}
	}

	userID, _ := common.UserID(ctx)
	var result *CheckoutResult
	for attempt := 0; attempt < saleNumberAttempts; attempt++ {
		sale := s.buildSale(req, userID)
		err := s.store.Settle(ctx, func(tx SettleTx) error {
			return s.settle(ctx, tx, sale, req.Items)
		})
		if errors.Is(err, ErrSaleNumberTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = &CheckoutResult{Success: true, SaleID: sale.ID, SaleNumber: sale.SaleNumber}
		s.log.Info().
			Int64("sale_id", sale.ID).
			Str("sale_number", sale.SaleNumber).
			Int("items", len(req.Items)).
			Float64("total", sale.TotalAmount).
			Msg("sale settled")
		return result, nil
	}
	return nil, common.ConflictError(common.CodeConflict,
		"sale number generation kept colliding", ErrSaleNumberTaken)
}

func (s *Service) GetSale(ctx context.Context, id int64) (*Sale, error) {
	sale, err := s.store.GetSale(ctx, id)
	if errors.Is(err, ErrSaleNotFound) {
		return nil, common.NotFoundError("sale not found")
	}
	return sale, err
}

func (s *Service) ListSales(ctx context.Context, from, to time.Time) ([]Sale, error) {
	return s.store.ListSales(ctx, from, to)
}

func (s *Service) settle(ctx context.Context, tx SettleTx, sale *Sale, cart []CartItem) error {
	subtotal := 0.0
	items := make([]Item, 0, len(cart))

	for _, line := range cart {
		switch line.Type {
		case ProductPhone:
			phone, err := tx.LockPhone(ctx, line.ID)
			if errors.Is(err, inventory.ErrPhoneNotFound) {
				return common.ConflictError(common.CodeConflict,
					fmt.Sprintf("phone %d is no longer in inventory", line.ID), err)
			}
			if err != nil {
				return err
			}
			if err := tx.RemovePhone(ctx, phone.ID); err != nil {
				return err
			}
			lineTotal := pricing.Round2(phone.SellingPrice)
			subtotal += lineTotal
			items = append(items, Item{
				ProductType:        ProductPhone,
				ProductName:        phone.Brand + " " + phone.Model,
				ProductDescription: phone.Description,
				SerialNumber:       phone.SerialNumber,
				UnitPrice:          pricing.Round2(phone.SellingPrice),
				Quantity:           1,
				TotalPrice:         lineTotal,
			})

		case ProductAccessory, ProductCharger, ProductCase, ProductScreenProtector:
			accessory, err := tx.LockAccessory(ctx, line.ID)
			if errors.Is(err, inventory.ErrAccessoryNotFound) {
				return common.NewAppError(common.CodeNotFound,
					fmt.Sprintf("accessory %d not found", line.ID), http.StatusNotFound, err)
			}
			if err != nil {
				return err
			}
			remaining := accessory.QuantityInStock - line.Quantity
			if remaining < 0 {
				remaining = 0
			}
			if err := tx.SetAccessoryStock(ctx, accessory.ID, remaining); err != nil {
				return err
			}
			lineTotal := pricing.Round2(accessory.SellingPrice * float64(line.Quantity))
			subtotal += lineTotal
			items = append(items, Item{
				ProductType:        line.Type,
				ProductName:        accessory.Name,
				ProductDescription: accessory.Description,
				UnitPrice:          pricing.Round2(accessory.SellingPrice),
				Quantity:           line.Quantity,
				TotalPrice:         lineTotal,
			})

		default:
			return common.ValidationError("unknown item type: " + line.Type)
		}
	}

	sale.Subtotal = pricing.Round2(subtotal)
	sale.VATAmount = pricing.Round2(s.pricing.VATAmount(sale.Subtotal))
	sale.TotalAmount = pricing.Round2(sale.Subtotal + sale.VATAmount)

	if err := tx.InsertSale(ctx, sale); err != nil {
		return err
	}
	if err := tx.InsertItems(ctx, sale.ID, items); err != nil {
		return err
	}
	sale.Items = items
	return nil
}

func (s *Service) buildSale(req CheckoutRequest, userID string) *Sale {
	payment := strings.TrimSpace(req.PaymentMethod)
	if payment == "" {
		payment = "cash"
	}
	sale := &Sale{
		SaleNumber:       ident.NewSaleNumber(s.now()),
		CompanyName:      CompanyName,
		CompanyVATNumber: CompanyVATNumber,
		CompanyAddress:   CompanyAddress,
		CompanyPhone:     CompanyPhone,
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		CustomerAddress:  req.CustomerAddress,
		PaymentMethod:    payment,
		Notes:            req.Notes,
		Status:           "completed",
	}
	if userID != "" {
		sale.UserID = &userID
	}
	return sale
}

func checkoutValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return strings.Join(fields, "; ")
	}
	return "invalid checkout payload"
}
