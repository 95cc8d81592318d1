package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/phoneshop-api/internal/barcode"
	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/ident"
	"github.com/noah-isme/phoneshop-api/internal/ledger"
	"github.com/noah-isme/phoneshop-api/internal/pricing"
)

// Retries when a generated phone number loses the insert race. Explicit
// barcodes never retry.
const allocateAttempts = 3

// PhoneInput is the purchase intake payload. Prices are pre-tax.
type PhoneInput struct {
	Brand          string  `json:"brand" validate:"required"`
	Model          string  `json:"model" validate:"required"`
	Condition      string  `json:"condition" validate:"required,oneof=new used"`
	PurchasePrice  float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice   float64 `json:"selling_price" validate:"gte=0"`
	SerialNumber   string  `json:"serial_number" validate:"required"`
	Barcode        string  `json:"barcode"`
	Description    string  `json:"description"`
	Warranty       int     `json:"warranty" validate:"gte=0"`
	PhoneCondition string  `json:"phone_condition"`
	Age            int     `json:"age" validate:"gte=0"`
	CustomerName   string  `json:"customer_name"`
	CustomerID     string  `json:"customer_id"`
	PhoneColor     string  `json:"phone_color"`
	PhoneMemory    string  `json:"phone_memory"`
	BuyerName      string  `json:"buyer_name"`
}

// AccessoryInput is the create/update payload for accessory stock.
type AccessoryInput struct {
	Name            string  `json:"name" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Description     string  `json:"description"`
	PurchasePrice   float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice    float64 `json:"selling_price" validate:"gte=0"`
	QuantityInStock int     `json:"quantity_in_stock" validate:"gte=0"`
	MinQuantity     int     `json:"min_quantity" validate:"gte=0"`
	Supplier        string  `json:"supplier"`
	Notes           string  `json:"notes"`
}

// AccessoryListing pairs the stock lines with their aggregate value.
type AccessoryListing struct {
	Accessories []Accessory     `json:"accessories"`
	Totals      AccessoryTotals `json:"totals"`
}

// Service owns inventory mutations. Every phone intake renders a barcode
// label and writes a buy ledger entry in the same transaction as the row.
type Service struct {
	store    Store
	pricing  pricing.Engine
	labels   barcode.Renderer
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(store Store, engine pricing.Engine, labels barcode.Renderer, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		pricing:  engine,
		labels:   labels,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// AddPhone registers a purchased device. When input.Barcode is empty a new
// sequential phone number is allocated, retrying a bounded number of times
// if a concurrent intake claims the same number first.
func (s *Service) AddPhone(ctx context.Context, input PhoneInput) (*Phone, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError(validationMessage(err))
	}

	number, generated, err := s.resolvePhoneNumber(ctx, input.Barcode)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		phone := s.buildPhone(input, number)
		labelPath, err := s.labels.Render(phone.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("render barcode label: %w", err)
		}
		phone.BarcodePath = labelPath

		audit := s.buildBuyEntry(ctx, phone)
		err = s.store.CreatePhone(ctx, phone, audit)
		if err == nil {
			s.log.Info().
				Str("phone_number", phone.PhoneNumber).
				Str("serial_number", phone.SerialNumber).
				Bool("generated_number", generated).
				Msg("phone added to inventory")
			return phone, nil
		}
		if errors.Is(err, ErrSerialTaken) {
			return nil, common.ConflictError(common.CodeDuplicateSerial, "serial number already exists", err)
		}
		if errors.Is(err, ErrPhoneNumberTaken) {
			if !generated {
				return nil, common.ConflictError(common.CodeDuplicateNumber, "phone number already exists", err)
			}
			if attempt+1 >= allocateAttempts {
				return nil, common.ConflictError(common.CodeDuplicateNumber, "phone number allocation kept colliding", err)
			}
			number, err = s.allocatePhoneNumber(ctx)
			if err != nil {
				return nil, err
			}
			continue
		}
		return nil, err
	}
}

func (s *Service) DeletePhone(ctx context.Context, id int64) error {
	err := s.store.DeletePhone(ctx, id)
	if errors.Is(err, ErrPhoneNotFound) {
		return common.NotFoundError("phone not found")
	}
	return err
}

func (s *Service) GetPhone(ctx context.Context, id int64) (*Phone, error) {
	phone, err := s.store.GetPhone(ctx, id)
	if errors.Is(err, ErrPhoneNotFound) {
		return nil, common.NotFoundError("phone not found")
	}
	return phone, err
}

func (s *Service) ListPhones(ctx context.Context) ([]Phone, error) {
	return s.store.ListPhones(ctx)
}

// GetPhoneByBarcode resolves a scanned label to the phone it identifies.
func (s *Service) GetPhoneByBarcode(ctx context.Context, raw string) (*Phone, error) {
	number, err := ident.NormalizeBarcode(raw)
	if err != nil {
		return nil, common.ValidationError("barcode must contain at least one digit")
	}
	phone, err := s.store.GetPhoneByNumber(ctx, number)
	if errors.Is(err, ErrPhoneNotFound) {
		return nil, common.NotFoundError("no phone carries this barcode")
	}
	return phone, err
}

// Search matches phones and accessories against a free-text term. The
// condition filter applies to phones only.
func (s *Service) Search(ctx context.Context, term, condition string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, common.ValidationError("search term is required")
	}
	if condition != "" && condition != ConditionNew && condition != ConditionUsed {
		return nil, common.ValidationError("condition must be new or used")
	}

	phones, err := s.store.SearchPhones(ctx, term, condition)
	if err != nil {
		return nil, err
	}
	accessories, err := s.store.SearchAccessories(ctx, term)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Phones: phones, Accessories: accessories}, nil
}

func (s *Service) AddAccessory(ctx context.Context, input AccessoryInput) (*Accessory, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError(validationMessage(err))
	}
	accessory := s.buildAccessory(input)
	if err := s.store.CreateAccessory(ctx, accessory); err != nil {
		return nil, err
	}
	return accessory, nil
}

// UpdateAccessory replaces the stock line and recomputes its VAT figures
// from the submitted pre-tax prices.
func (s *Service) UpdateAccessory(ctx context.Context, id int64, input AccessoryInput) (*Accessory, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError(validationMessage(err))
	}
	accessory := s.buildAccessory(input)
	accessory.ID = id
	err := s.store.UpdateAccessory(ctx, accessory)
	if errors.Is(err, ErrAccessoryNotFound) {
		return nil, common.NotFoundError("accessory not found")
	}
	if err != nil {
		return nil, err
	}
	return s.store.GetAccessory(ctx, id)
}

func (s *Service) DeleteAccessory(ctx context.Context, id int64) error {
	err := s.store.DeleteAccessory(ctx, id)
	if errors.Is(err, ErrAccessoryNotFound) {
		return common.NotFoundError("accessory not found")
	}
	return err
}

func (s *Service) GetAccessory(ctx context.Context, id int64) (*Accessory, error) {
	accessory, err := s.store.GetAccessory(ctx, id)
	if errors.Is(err, ErrAccessoryNotFound) {
		return nil, common.NotFoundError("accessory not found")
	}
	return accessory, err
}

func (s *Service) ListAccessories(ctx context.Context) (*AccessoryListing, error) {
	accessories, err := s.store.ListAccessories(ctx)
	if err != nil {
		return nil, err
	}
	listing := &AccessoryListing{Accessories: accessories}
	for _, a := range accessories {
		qty := float64(a.QuantityInStock)
		listing.Totals.PurchaseValue = pricing.Round2(listing.Totals.PurchaseValue + a.PurchasePriceWithVAT*qty)
		listing.Totals.SellingValue = pricing.Round2(listing.Totals.SellingValue + a.SellingPriceWithVAT*qty)
		listing.Totals.Quantity += a.QuantityInStock
	}
	return listing, nil
}

// resolvePhoneNumber normalizes an explicit barcode or allocates the next
// sequential number. The second return reports whether the number was
// generated and may be re-allocated on conflict.
func (s *Service) resolvePhoneNumber(ctx context.Context, raw string) (string, bool, error) {
	if strings.TrimSpace(raw) != "" {
		number, err := ident.NormalizeBarcode(raw)
		if err != nil {
			return "", false, common.ValidationError("barcode must contain at least one digit")
		}
		return number, false, nil
	}
	number, err := s.allocatePhoneNumber(ctx)
	return number, true, err
}

func (s *Service) allocatePhoneNumber(ctx context.Context) (string, error) {
	max, err := s.store.MaxPhoneNumber(ctx)
	if err != nil {
		return "", err
	}
	number, err := ident.NextPhoneNumber(max)
	if errors.Is(err, ident.ErrCapacityExceeded) {
		return "", common.NewAppError(common.CodeCapacityExceeded,
			"phone number space exhausted", http.StatusConflict, err)
	}
	return number, err
}

func (s *Service) buildPhone(input PhoneInput, number string) *Phone {
	return &Phone{
		Brand:                strings.TrimSpace(input.Brand),
		Model:                strings.TrimSpace(input.Model),
		Condition:            input.Condition,
		PurchasePrice:        pricing.Round2(input.PurchasePrice),
		SellingPrice:         pricing.Round2(input.SellingPrice),
		PurchasePriceWithVAT: pricing.Round2(s.pricing.WithVAT(input.PurchasePrice)),
		SellingPriceWithVAT:  pricing.Round2(s.pricing.WithVAT(input.SellingPrice)),
		SerialNumber:         strings.TrimSpace(input.SerialNumber),
		PhoneNumber:          number,
		Description:          input.Description,
		Warranty:             input.Warranty,
		PhoneCondition:       input.PhoneCondition,
		Age:                  input.Age,
		CustomerName:         input.CustomerName,
		CustomerID:           input.CustomerID,
		PhoneColor:           input.PhoneColor,
		PhoneMemory:          input.PhoneMemory,
		BuyerName:            input.BuyerName,
	}
}

func (s *Service) buildBuyEntry(ctx context.Context, phone *Phone) *ledger.Entry {
	userID, _ := common.UserID(ctx)
	notes := "new phone purchase"
	if phone.Condition == ConditionUsed {
		notes = "used phone purchase"
	}
	return &ledger.Entry{
		TransactionType: ledger.TypeBuy,
		SerialNumber:    phone.SerialNumber,
		Price:           phone.PurchasePrice,
		PriceWithVAT:    phone.PurchasePriceWithVAT,
		VATAmount:       pricing.Round2(phone.PurchasePriceWithVAT - phone.PurchasePrice),
		UserID:          userID,
		CustomerName:    phone.CustomerName,
		Notes:           notes,
	}
}

func (s *Service) buildAccessory(input AccessoryInput) *Accessory {
	return &Accessory{
		Name:                 strings.TrimSpace(input.Name),
		Category:             strings.TrimSpace(input.Category),
		Description:          input.Description,
		PurchasePrice:        pricing.Round2(input.PurchasePrice),
		SellingPrice:         pricing.Round2(input.SellingPrice),
		PurchasePriceWithVAT: pricing.Round2(s.pricing.WithVAT(input.PurchasePrice)),
		SellingPriceWithVAT:  pricing.Round2(s.pricing.WithVAT(input.SellingPrice)),
		QuantityInStock:      input.QuantityInStock,
		MinQuantity:          input.MinQuantity,
		Supplier:             input.Supplier,
		Notes:                input.Notes,
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return strings.Join(fields, "; ")
	}
	return "invalid request payload"
}
