package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
)

type fakeStore struct {
	variants  map[uuid.UUID]*models.Variant
	products  map[uuid.UUID]*models.Product
	overrides map[uuid.UUID][]models.PriceQtyOverride
	groups    map[uuid.UUID]*models.DiscountGroup
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		variants:  map[uuid.UUID]*models.Variant{},
		products:  map[uuid.UUID]*models.Product{},
		overrides: map[uuid.UUID][]models.PriceQtyOverride{},
		groups:    map[uuid.UUID]*models.DiscountGroup{},
	}
}

func (f *fakeStore) FindVariantByID(_ context.Context, id uuid.UUID) (*models.Variant, error) {
	if variant, ok := f.variants[id]; ok {
		return variant, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := f.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) ListOverrides(_ context.Context, productID uuid.UUID) ([]models.PriceQtyOverride, error) {
	return f.overrides[productID], nil
}

func (f *fakeStore) FindDiscountGroupByID(_ context.Context, id uuid.UUID) (*models.DiscountGroup, error) {
	if group, ok := f.groups[id]; ok {
		return group, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// seedTieredProduct sets up the canonical fixture: base price 10.0000, tiers
// 5 -> 8.0000 and 10 -> 6.0000, one variant with offset 0.5000.
func seedTieredProduct(store *fakeStore) (productID, variantID uuid.UUID) {
	productID = uuid.New()
	variantID = uuid.New()
	store.products[productID] = &models.Product{
		ID:        productID,
		KindCode:  "tshirt",
		BasePrice: decimal.RequireFromString("10.0000"),
	}
	store.variants[variantID] = &models.Variant{
		ID:          variantID,
		ProductID:   productID,
		SKU:         "TS-1-M-RED",
		PriceOffset: decimal.RequireFromString("0.5000"),
	}
	store.overrides[productID] = []models.PriceQtyOverride{
		{ID: uuid.New(), ProductID: productID, MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("8.0000")},
		{ID: uuid.New(), ProductID: productID, MinQty: decimal.RequireFromString("10"), UnitPrice: decimal.RequireFromString("6.0000")},
	}
	return productID, variantID
}

func newResolver(t *testing.T, store *fakeStore) *Resolver {
	t.Helper()
	resolver, err := NewResolver(store, enums.CurrencyUSD, nil)
	if err != nil {
		t.Fatalf("build resolver: %v", err)
	}
	return resolver
}

func TestResolveUnitPriceTierSelection(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, variantID := seedTieredProduct(store)
	resolver := newResolver(t, store)

	cases := []struct {
		name   string
		qty    string
		want   string
		source string
	}{
		{"belowFirstTier", "2", "10.5000", "base"},
		{"exactFirstTier", "5", "8.5000", "override"},
		{"betweenTiers", "7", "8.5000", "override"},
		{"exactSecondTier", "10", "6.5000", "override"},
		{"aboveSecondTier", "12", "6.5000", "override"},
		{"fractionalQty", "4.9999", "10.5000", "base"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := resolver.ResolveUnitPrice(ctx, variantID, decimal.RequireFromString(tc.qty), false)
			if err != nil {
				t.Fatalf("resolve qty=%s: %v", tc.qty, err)
			}
			if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("qty=%s expected %s, got %s", tc.qty, tc.want, quote.UnitPrice.Amount)
			}
			if quote.UnitPrice.Currency != enums.CurrencyUSD {
				t.Fatalf("expected USD, got %s", quote.UnitPrice.Currency)
			}
			if quote.PriceSource != tc.source {
				t.Fatalf("qty=%s expected source %s, got %s", tc.qty, tc.source, quote.PriceSource)
			}
		})
	}
}

func TestResolveUnitPriceDiscountCoversOffset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	productID, variantID := seedTieredProduct(store)

	groupID := uuid.New()
	store.groups[groupID] = &models.DiscountGroup{
		ID:       groupID,
		Name:     "Sale",
		Rate:     decimal.RequireFromString("20"),
		RateName: "20% off",
	}
	store.products[productID].DiscountGroupID = &groupID

	resolver := newResolver(t, store)

	// Tier price 8.0000 + offset 0.5000 = 8.5000; 20% of 8.5000 is 1.7000.
	quote, err := resolver.ResolveUnitPrice(ctx, variantID, decimal.RequireFromString("7"), true)
	if err != nil {
		t.Fatalf("resolve with discount: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("6.8000")) {
		t.Fatalf("expected 6.8000, got %s", quote.UnitPrice.Amount)
	}
	if !quote.DiscountApplied {
		t.Fatalf("expected discount_applied")
	}
	if quote.DiscountRate == nil || !quote.DiscountRate.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected rate 20, got %v", quote.DiscountRate)
	}

	// Skipping the discount must return the undiscounted price.
	quote, err = resolver.ResolveUnitPrice(ctx, variantID, decimal.RequireFromString("7"), false)
	if err != nil {
		t.Fatalf("resolve without discount: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("8.5000")) {
		t.Fatalf("expected 8.5000, got %s", quote.UnitPrice.Amount)
	}
	if quote.DiscountApplied {
		t.Fatalf("discount should not be applied")
	}
}

func TestResolveUnitPriceMayGoNegative(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	productID := uuid.New()
	variantID := uuid.New()
	store.products[productID] = &models.Product{
		ID:        productID,
		KindCode:  "hat",
		BasePrice: decimal.RequireFromString("1.0000"),
	}
	store.variants[variantID] = &models.Variant{
		ID:          variantID,
		ProductID:   productID,
		SKU:         "HAT-NEG",
		PriceOffset: decimal.RequireFromString("-2.0000"),
	}

	resolver := newResolver(t, store)

	quote, err := resolver.ResolveUnitPrice(ctx, variantID, decimal.RequireFromString("1"), false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("-1.0000")) {
		t.Fatalf("expected -1.0000 with no flooring, got %s", quote.UnitPrice.Amount)
	}
	if !quote.UnitPrice.IsNegative() {
		t.Fatalf("expected negative price")
	}
}

func TestResolveUnitPriceInputErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	_, variantID := seedTieredProduct(store)
	resolver := newResolver(t, store)

	_, err := resolver.ResolveUnitPrice(ctx, variantID, decimal.Zero, false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for qty=0, got %v", err)
	}

	_, err = resolver.ResolveUnitPrice(ctx, uuid.New(), decimal.RequireFromString("1"), false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown variant, got %v", err)
	}
}

func TestQuoteForProductIgnoresVariantOffset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	productID, _ := seedTieredProduct(store)

	groupID := uuid.New()
	store.groups[groupID] = &models.DiscountGroup{
		ID:       groupID,
		Name:     "Sale",
		Rate:     decimal.RequireFromString("10"),
		RateName: "10% off",
	}
	store.products[productID].DiscountGroupID = &groupID

	resolver := newResolver(t, store)

	// Tier price at qty 7 is 8.0000; no offset is added at product level.
	quote, err := resolver.QuoteForProduct(ctx, productID, decimal.RequireFromString("7"), false)
	if err != nil {
		t.Fatalf("product quote: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("8.0000")) {
		t.Fatalf("expected 8.0000, got %s", quote.UnitPrice.Amount)
	}
	if quote.VariantID != uuid.Nil {
		t.Fatalf("product quote should carry no variant id")
	}
	if quote.PriceSource != "override" {
		t.Fatalf("expected override source, got %s", quote.PriceSource)
	}

	quote, err = resolver.QuoteForProduct(ctx, productID, decimal.RequireFromString("7"), true)
	if err != nil {
		t.Fatalf("product quote with discount: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("7.2000")) {
		t.Fatalf("expected 7.2000 after 10%% off, got %s", quote.UnitPrice.Amount)
	}
	if !quote.DiscountApplied {
		t.Fatalf("expected discount_applied")
	}

	_, err = resolver.QuoteForProduct(ctx, uuid.New(), decimal.RequireFromString("1"), false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	_, err = resolver.QuoteForProduct(ctx, productID, decimal.Zero, false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for qty=0, got %v", err)
	}
}

func TestResolveUnitPriceOrphanedDiscountGroupChargesFullPrice(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	productID, variantID := seedTieredProduct(store)

	danglingID := uuid.New()
	store.products[productID].DiscountGroupID = &danglingID

	resolver := newResolver(t, store)

	quote, err := resolver.ResolveUnitPrice(ctx, variantID, decimal.RequireFromString("7"), true)
	if err != nil {
		t.Fatalf("resolve with dangling group: %v", err)
	}
	if !quote.UnitPrice.Amount.Equal(decimal.RequireFromString("8.5000")) {
		t.Fatalf("expected undiscounted 8.5000, got %s", quote.UnitPrice.Amount)
	}
	if quote.DiscountApplied {
		t.Fatalf("discount should not apply when group is gone")
	}
}
