package catalog

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
)

type fakeStore struct {
	phoneTypes    map[int64]*PhoneType
	categories    map[int64]*AccessoryCategory
	phoneTypeRefs map[int64]int
	categoryRefs  map[int64]int
	nextID        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		phoneTypes:    map[int64]*PhoneType{},
		categories:    map[int64]*AccessoryCategory{},
		phoneTypeRefs: map[int64]int{},
		categoryRefs:  map[int64]int{},
	}
}

func (f *fakeStore) CreatePhoneType(ctx context.Context, pt *PhoneType) error {
	for _, existing := range f.phoneTypes {
		if existing.Brand == pt.Brand && existing.Model == pt.Model {
			return ErrPhoneTypeExists
		}
	}
	f.nextID++
	pt.ID = f.nextID
	copied := *pt
	f.phoneTypes[pt.ID] = &copied
	return nil
}

func (f *fakeStore) ListPhoneTypes(ctx context.Context) ([]PhoneType, error) {
	out := make([]PhoneType, 0, len(f.phoneTypes))
	for _, pt := range f.phoneTypes {
		out = append(out, *pt)
	}
	return out, nil
}

func (f *fakeStore) DeletePhoneType(ctx context.Context, id int64) error {
	if _, ok := f.phoneTypes[id]; !ok {
		return ErrPhoneTypeNotFound
	}
	if f.phoneTypeRefs[id] > 0 {
		return ErrPhoneTypeReferenced
	}
	delete(f.phoneTypes, id)
	return nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, c *AccessoryCategory) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name || existing.ArabicName == c.ArabicName {
			return ErrCategoryExists
		}
	}
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]AccessoryCategory, error) {
	out := make([]AccessoryCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) UpdateCategory(ctx context.Context, c *AccessoryCategory) error {
	if _, ok := f.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	if f.categoryRefs[id] > 0 {
		return ErrCategoryReferenced
	}
	delete(f.categories, id)
	return nil
}

func newTestService(t *testing.T, store Store) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := common.NewCache(client, time.Minute)
	return NewService(store, cache, zerolog.Nop()), mr
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	types := len(store.phoneTypes)
	categories := len(store.categories)
	require.Greater(t, types, 0)
	require.Equal(t, 7, categories)

	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Len(t, store.phoneTypes, types)
	assert.Len(t, store.categories, categories)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "power_bank", Slugify("Power Bank"))
	assert.Equal(t, "shahn", Slugify("شاحن"))
	assert.Equal(t, "smaaat", Slugify("سماعات"))
}

func TestAddCategoryDerivesMachineKey(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)

	c, err := svc.AddCategory(context.Background(), CategoryInput{Name: "Power Bank"})
	require.NoError(t, err)
	assert.Equal(t, "power_bank", c.Name)
	assert.Equal(t, "Power Bank", c.ArabicName)
	assert.True(t, c.IsActive)
}

func TestAddCategoryDuplicate(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddCategory(ctx, CategoryInput{Name: "Power Bank"})
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, CategoryInput{Name: "Power Bank"})
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeConflict, appErr.Code)
}

func TestDeletePhoneTypeGuarded(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	pt, err := svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Samsung", Model: "Galaxy S24"})
	require.NoError(t, err)
	store.phoneTypeRefs[pt.ID] = 2

	err = svc.DeletePhoneType(ctx, pt.ID)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeReferenced, appErr.Code)
	assert.Contains(t, store.phoneTypes, pt.ID)

	store.phoneTypeRefs[pt.ID] = 0
	require.NoError(t, svc.DeletePhoneType(ctx, pt.ID))
}

func TestDeleteCategoryGuarded(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	c, err := svc.AddCategory(ctx, CategoryInput{Name: "chargers"})
	require.NoError(t, err)
	store.categoryRefs[c.ID] = 1

	err = svc.DeleteCategory(ctx, c.ID)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeReferenced, appErr.Code)
}

func TestBrandsGroupsActiveTypes(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Samsung", Model: "Galaxy S24"})
	require.NoError(t, err)
	_, err = svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Samsung", Model: "Galaxy A54"})
	require.NoError(t, err)
	_, err = svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Apple", Model: "iPhone 15"})
	require.NoError(t, err)

	inactive := &PhoneType{Brand: "Nokia", Model: "3310", IsActive: false}
	require.NoError(t, store.CreatePhoneType(ctx, inactive))

	grouped, err := svc.Brands(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped["Samsung"], 2)
	assert.Len(t, grouped["Apple"], 1)
	assert.NotContains(t, grouped, "Nokia")
}

func TestBrandsServedFromCacheUntilInvalidated(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Samsung", Model: "Galaxy S24"})
	require.NoError(t, err)

	grouped, err := svc.Brands(ctx)
	require.NoError(t, err)
	require.Len(t, grouped, 1)

	// Write behind the service's back: the cached copy must still win.
	stale := &PhoneType{Brand: "Apple", Model: "iPhone 15", IsActive: true}
	require.NoError(t, store.CreatePhoneType(ctx, stale))

	grouped, err = svc.Brands(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped, 1)

	// A write through the service invalidates the key.
	_, err = svc.AddPhoneType(ctx, PhoneTypeInput{Brand: "Google", Model: "Pixel 8"})
	require.NoError(t, err)

	grouped, err = svc.Brands(ctx)
	require.NoError(t, err)
	assert.Len(t, grouped, 3)
}
