package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phoneshop-api/internal/common"
	"github.com/noah-isme/phoneshop-api/internal/inventory"
	"github.com/noah-isme/phoneshop-api/internal/pricing"
)

type fakeStore struct {
	phones          map[int64]*inventory.Phone
	accessories     map[int64]*inventory.Accessory
	sales           []Sale
	items           map[int64][]Item
	nextID          int64
	saleNumberFails int
	itemInsertErr   error
	settleCalls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		phones:      map[int64]*inventory.Phone{},
		accessories: map[int64]*inventory.Accessory{},
		items:       map[int64][]Item{},
	}
}

func (f *fakeStore) snapshot() (map[int64]*inventory.Phone, map[int64]*inventory.Accessory, []Sale, map[int64][]Item) {
	phones := make(map[int64]*inventory.Phone, len(f.phones))
	for id, p := range f.phones {
		copied := *p
		phones[id] = &copied
	}
	accessories := make(map[int64]*inventory.Accessory, len(f.accessories))
	for id, a := range f.accessories {
		copied := *a
		accessories[id] = &copied
	}
	sales := append([]Sale(nil), f.sales...)
	items := make(map[int64][]Item, len(f.items))
	for id, rows := range f.items {
		items[id] = append([]Item(nil), rows...)
	}
	return phones, accessories, sales, items
}

func (f *fakeStore) Settle(ctx context.Context, fn func(tx SettleTx) error) error {
	f.settleCalls++
	phones, accessories, sales, items := f.snapshot()
	if err := fn(f); err != nil {
		f.phones, f.accessories, f.sales, f.items = phones, accessories, sales, items
		return err
	}
	return nil
}

func (f *fakeStore) GetSale(ctx context.Context, id int64) (*Sale, error) {
	for i := range f.sales {
		if f.sales[i].ID == id {
			sale := f.sales[i]
			sale.Items = append([]Item(nil), f.items[id]...)
			return &sale, nil
		}
	}
	return nil, ErrSaleNotFound
}

func (f *fakeStore) ListSales(ctx context.Context, from, to time.Time) ([]Sale, error) {
	out := make([]Sale, 0)
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

func (f *fakeStore) LockPhone(ctx context.Context, id int64) (*inventory.Phone, error) {
	p, ok := f.phones[id]
	if !ok {
		return nil, inventory.ErrPhoneNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) RemovePhone(ctx context.Context, id int64) error {
	if _, ok := f.phones[id]; !ok {
		return inventory.ErrPhoneNotFound
	}
	delete(f.phones, id)
	return nil
}

func (f *fakeStore) LockAccessory(ctx context.Context, id int64) (*inventory.Accessory, error) {
	a, ok := f.accessories[id]
	if !ok {
		return nil, inventory.ErrAccessoryNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeStore) SetAccessoryStock(ctx context.Context, id int64, quantity int) error {
	a, ok := f.accessories[id]
	if !ok {
		return inventory.ErrAccessoryNotFound
	}
	a.QuantityInStock = quantity
	return nil
}

func (f *fakeStore) InsertSale(ctx context.Context, sale *Sale) error {
	if f.saleNumberFails > 0 {
		f.saleNumberFails--
		return ErrSaleNumberTaken
	}
	for _, existing := range f.sales {
		if existing.SaleNumber == sale.SaleNumber {
			return ErrSaleNumberTaken
		}
	}
	f.nextID++
	sale.ID = f.nextID
	sale.DateCreated = time.Now()
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeStore) InsertItems(ctx context.Context, saleID int64, items []Item) error {
	if f.itemInsertErr != nil {
		return f.itemInsertErr
	}
	for i := range items {
		items[i].SaleID = saleID
		f.nextID++
		items[i].ID = f.nextID
	}
	f.items[saleID] = append(f.items[saleID], items...)
	return nil
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.phones[1] = &inventory.Phone{
		ID: 1, Brand: "Samsung", Model: "Galaxy S24", Condition: inventory.ConditionNew,
		SellingPrice: 1000, SellingPriceWithVAT: 1150,
		SerialNumber: "SN-001", PhoneNumber: "000001",
	}
	store.accessories[2] = &inventory.Accessory{
		ID: 2, Name: "Charger", Category: "chargers",
		SellingPrice: 50, SellingPriceWithVAT: 57.5, QuantityInStock: 10,
	}
	return store
}

func newTestService(store Store) *Service {
	return NewService(store, pricing.New(pricing.DefaultRate), zerolog.Nop())
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Omar",
		PaymentMethod: "cash",
		Items: []CartItem{
			{Type: ProductPhone, ID: 1, Quantity: 1},
			{Type: ProductAccessory, ID: 2, Quantity: 2},
		},
	}
}

func TestCheckoutTotals(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	result, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, result.Success)

	sale, err := svc.GetSale(context.Background(), result.SaleID)
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, sale.Subtotal, 0.001)
	assert.InDelta(t, 165.0, sale.VATAmount, 0.001)
	assert.InDelta(t, 1265.0, sale.TotalAmount, 0.001)
	require.Len(t, sale.Items, 2)
}

func TestCheckoutRemovesPhoneAndDecrementsStock(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	_, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotContains(t, store.phones, int64(1))
	assert.Equal(t, 8, store.accessories[2].QuantityInStock)
}

func TestCheckoutRecordsPhoneSerial(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	result, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)

	sale, err := svc.GetSale(context.Background(), result.SaleID)
	require.NoError(t, err)
	var phoneLine *Item
	for i := range sale.Items {
		if sale.Items[i].ProductType == ProductPhone {
			phoneLine = &sale.Items[i]
		}
	}
	require.NotNil(t, phoneLine)
	assert.Equal(t, "SN-001", phoneLine.SerialNumber)
	assert.Equal(t, "Samsung Galaxy S24", phoneLine.ProductName)
}

func TestCheckoutRepricesFromStore(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	req := validRequest()
	req.Items[0].UnitPrice = 1
	req.Items[0].TotalPrice = 1
	req.Items[1].UnitPrice = 1
	req.Items[1].TotalPrice = 2

	result, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	sale, err := svc.GetSale(context.Background(), result.SaleID)
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, sale.Subtotal, 0.001)
}

func TestCheckoutCategoryTypesSettleAsAccessories(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	req := CheckoutRequest{
		CustomerName: "Omar",
		Items:        []CartItem{{Type: ProductCharger, ID: 2, Quantity: 3}},
	}
	result, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 7, store.accessories[2].QuantityInStock)
	sale, err := svc.GetSale(context.Background(), result.SaleID)
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, ProductCharger, sale.Items[0].ProductType)
	assert.InDelta(t, 150.0, sale.Items[0].TotalPrice, 0.001)
}

func TestCheckoutStockClampsAtZero(t *testing.T) {
	store := seededStore()
	store.accessories[2].QuantityInStock = 1
	svc := newTestService(store)

	req := CheckoutRequest{
		CustomerName: "Omar",
		Items:        []CartItem{{Type: ProductAccessory, ID: 2, Quantity: 5}},
	}
	result, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 0, store.accessories[2].QuantityInStock)
}

func TestCheckoutMissingPhoneRollsBackEverything(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	req := validRequest()
	req.Items = append(req.Items, CartItem{Type: ProductPhone, ID: 77, Quantity: 1})

	_, err := svc.Checkout(context.Background(), req)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeConflict, appErr.Code)

	assert.Contains(t, store.phones, int64(1))
	assert.Equal(t, 10, store.accessories[2].QuantityInStock)
	assert.Empty(t, store.sales)
}

func TestCheckoutMissingAccessoryRollsBackEverything(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	req := validRequest()
	req.Items[1].ID = 99

	_, err := svc.Checkout(context.Background(), req)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeNotFound, appErr.Code)
	assert.Contains(t, store.phones, int64(1))
}

func TestCheckoutItemInsertFailureRollsBackEverything(t *testing.T) {
	store := seededStore()
	store.itemInsertErr = errors.New("insert sale item: connection reset")
	svc := newTestService(store)

	_, err := svc.Checkout(context.Background(), validRequest())
	require.ErrorIs(t, err, store.itemInsertErr)

	assert.Contains(t, store.phones, int64(1))
	assert.Equal(t, 10, store.accessories[2].QuantityInStock)
	assert.Empty(t, store.sales)
	assert.Equal(t, 1, store.settleCalls)
}

func TestCheckoutRetriesSaleNumberCollision(t *testing.T) {
	store := seededStore()
	store.saleNumberFails = 1
	svc := newTestService(store)

	result, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 2, store.settleCalls)
	assert.NotContains(t, store.phones, int64(1))
	assert.Equal(t, 8, store.accessories[2].QuantityInStock)
}

func TestCheckoutValidation(t *testing.T) {
	svc := newTestService(seededStore())
	ctx := context.Background()

	_, err := svc.Checkout(ctx, CheckoutRequest{Items: []CartItem{{Type: ProductPhone, ID: 1, Quantity: 1}}})
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)

	_, err = svc.Checkout(ctx, CheckoutRequest{CustomerName: "Omar"})
	appErr, ok = common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)

	_, err = svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Omar",
		Items:        []CartItem{{Type: "warranty", ID: 1, Quantity: 1}},
	})
	appErr, ok = common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)

	_, err = svc.Checkout(ctx, CheckoutRequest{
		CustomerName: "Omar",
		Items:        []CartItem{{Type: ProductPhone, ID: 1, Quantity: 2}},
	})
	appErr, ok = common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)
}

func TestCheckoutAttachesUser(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)
	ctx := common.WithUserID(context.Background(), "4dfe08e9-17a5-4a06-90df-0b0a2ad08a39")

	result, err := svc.Checkout(ctx, validRequest())
	require.NoError(t, err)

	sale, err := svc.GetSale(ctx, result.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale.UserID)
	assert.Equal(t, "4dfe08e9-17a5-4a06-90df-0b0a2ad08a39", *sale.UserID)
}
