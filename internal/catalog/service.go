package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

const brandsCacheKey = "catalog:brands:v1"

// PhoneTypeInput is the create payload for a brand+model reference row.
type PhoneTypeInput struct {
	Brand       string `json:"brand" validate:"required"`
	Model       string `json:"model" validate:"required"`
	Category    string `json:"category"`
	ReleaseYear int    `json:"release_year" validate:"gte=0"`
	Notes       string `json:"notes"`
}

// CategoryInput carries the Arabic display name; the machine key is
// derived from it.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// Service manages catalog reference data and the cached brand grouping.
type Service struct {
	store    Store
	cache    *common.Cache
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(store Store, cache *common.Cache, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// SeedDefaults inserts the built-in phone types and accessory categories,
// skipping rows whose natural key already exists. Safe to run every start.
func (s *Service) SeedDefaults(ctx context.Context) error {
	seeded := 0
	for _, pt := range defaultPhoneTypes {
		row := pt
		row.IsActive = true
		err := s.store.CreatePhoneType(ctx, &row)
		if errors.Is(err, ErrPhoneTypeExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed phone type %s %s: %w", pt.Brand, pt.Model, err)
		}
		seeded++
	}
	for _, c := range defaultCategories {
		row := c
		row.IsActive = true
		err := s.store.CreateCategory(ctx, &row)
		if errors.Is(err, ErrCategoryExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed accessory category %s: %w", c.Name, err)
		}
		seeded++
	}
	if seeded > 0 {
		s.log.Info().Int("rows", seeded).Msg("catalog defaults seeded")
		_ = s.cache.Delete(ctx, brandsCacheKey)
	}
	return nil
}

// Brands returns active models grouped by brand, cached briefly since the
// intake form requests it on every page load.
func (s *Service) Brands(ctx context.Context) (map[string][]string, error) {
	var cached map[string][]string
	if ok, err := s.cache.GetJSON(ctx, brandsCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	types, err := s.store.ListPhoneTypes(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]string)
	for _, pt := range types {
		if !pt.IsActive {
			continue
		}
		grouped[pt.Brand] = append(grouped[pt.Brand], pt.Model)
	}
	if err := s.cache.SetJSON(ctx, brandsCacheKey, grouped); err != nil {
		s.log.Warn().Err(err).Msg("brands cache write failed")
	}
	return grouped, nil
}

func (s *Service) AddPhoneType(ctx context.Context, input PhoneTypeInput) (*PhoneType, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError("brand and model are required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "smartphone"
	}
	pt := &PhoneType{
		Brand:       strings.TrimSpace(input.Brand),
		Model:       strings.TrimSpace(input.Model),
		Category:    category,
		ReleaseYear: input.ReleaseYear,
		IsActive:    true,
		Notes:       input.Notes,
	}
	err := s.store.CreatePhoneType(ctx, pt)
	if errors.Is(err, ErrPhoneTypeExists) {
		return nil, common.ConflictError(common.CodeConflict, "phone type already exists", err)
	}
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, brandsCacheKey)
	return pt, nil
}

func (s *Service) ListPhoneTypes(ctx context.Context) ([]PhoneType, error) {
	return s.store.ListPhoneTypes(ctx)
}

func (s *Service) DeletePhoneType(ctx context.Context, id int64) error {
	err := s.store.DeletePhoneType(ctx, id)
	switch {
	case errors.Is(err, ErrPhoneTypeNotFound):
		return common.NotFoundError("phone type not found")
	case errors.Is(err, ErrPhoneTypeReferenced):
		return common.ConflictError(common.CodeReferenced,
			"phone type is referenced by phones in inventory", err)
	case err != nil:
		return err
	}
	_ = s.cache.Delete(ctx, brandsCacheKey)
	return nil
}

func (s *Service) AddCategory(ctx context.Context, input CategoryInput) (*AccessoryCategory, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError("category name is required")
	}
	display := strings.TrimSpace(input.Name)
	c := &AccessoryCategory{
		Name:        Slugify(display),
		ArabicName:  display,
		Description: input.Description,
		IsActive:    true,
	}
	err := s.store.CreateCategory(ctx, c)
	if errors.Is(err, ErrCategoryExists) {
		return nil, common.ConflictError(common.CodeConflict, "accessory category already exists", err)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]AccessoryCategory, error) {
	return s.store.ListCategories(ctx)
}

// CategoryNames maps machine keys to Arabic display names.
func (s *Service) CategoryNames(ctx context.Context) (map[string]string, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Name] = c.ArabicName
	}
	return names, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*AccessoryCategory, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, common.ValidationError("category name is required")
	}
	display := strings.TrimSpace(input.Name)
	c := &AccessoryCategory{
		ID:          id,
		Name:        Slugify(display),
		ArabicName:  display,
		Description: input.Description,
		IsActive:    true,
	}
	err := s.store.UpdateCategory(ctx, c)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return nil, common.NotFoundError("accessory category not found")
	case errors.Is(err, ErrCategoryExists):
		return nil, common.ConflictError(common.CodeConflict, "accessory category already exists", err)
	case err != nil:
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	err := s.store.DeleteCategory(ctx, id)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return common.NotFoundError("accessory category not found")
	case errors.Is(err, ErrCategoryReferenced):
		return common.ConflictError(common.CodeReferenced,
			"accessory category is referenced by accessories in stock", err)
	case err != nil:
		return err
	}
	return nil
}
