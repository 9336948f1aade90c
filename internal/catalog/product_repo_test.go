package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/pagination"
)

func TestGetProductDetailPreloadsAssociations(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())

	product := mustCreateTestProduct(t, client, "tshirt")
	mustCreateTestOverride(t, client, product.ID, "5", "8.0000")
	mustCreateTestOverride(t, client, product.ID, "2", "9.0000")
	mustCreateTestVariant(t, client, product.ID, "0.5000")

	translation := &models.ProductTranslation{
		ProductID: product.ID,
		Language:  "pl",
		Name:      "Koszulka",
	}
	if err := client.DB().Create(translation).Error; err != nil {
		t.Fatalf("create translation: %v", err)
	}

	detail, err := repo.GetProductDetail(ctx, product.ID)
	if err != nil {
		t.Fatalf("get product detail: %v", err)
	}

	if detail.Kind == nil || detail.Kind.Code != "tshirt" {
		t.Fatalf("expected tshirt kind preloaded, got %+v", detail.Kind)
	}
	if !detail.Kind.HasColor {
		t.Fatalf("expected tshirt kind to carry colors")
	}
	if len(detail.Overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(detail.Overrides))
	}
	if !detail.Overrides[0].MinQty.Equal(decimal.RequireFromString("2")) ||
		!detail.Overrides[1].MinQty.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("expected overrides ordered by min_qty ascending, got %s then %s",
			detail.Overrides[0].MinQty, detail.Overrides[1].MinQty)
	}
	if !detail.Overrides[1].UnitPrice.Equal(decimal.RequireFromString("8.0000")) {
		t.Fatalf("unexpected override unit price %s", detail.Overrides[1].UnitPrice)
	}
	if len(detail.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(detail.Variants))
	}
	if len(detail.Translations) != 1 || detail.Translations[0].Language != "pl" {
		t.Fatalf("expected polish translation, got %+v", detail.Translations)
	}
}

func TestListProductSummariesFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())

	tshirt := mustCreateTestProduct(t, client, "tshirt")
	mustCreateTestOverride(t, client, tshirt.ID, "5", "8.0000")
	mustCreateTestProduct(t, client, "hat")
	mustCreateTestProduct(t, client, "trousers")

	kind := "tshirt"
	result, err := repo.ListProductSummaries(ctx, productListQuery{
		Filters: ProductListFilters{Kind: &kind},
	})
	if err != nil {
		t.Fatalf("list by kind: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected 1 tshirt, got %d", len(result.Products))
	}
	if !result.Products[0].HasOverrides {
		t.Fatalf("expected has_overrides on the tiered product")
	}

	hasOverrides := false
	result, err = repo.ListProductSummaries(ctx, productListQuery{
		Filters: ProductListFilters{HasOverrides: &hasOverrides},
	})
	if err != nil {
		t.Fatalf("list without overrides: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 flat-priced products, got %d", len(result.Products))
	}

	result, err = repo.ListProductSummaries(ctx, productListQuery{
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected first page of 2, got %d", len(result.Products))
	}
	if result.NextCursor == "" {
		t.Fatalf("expected next cursor on first page")
	}

	result, err = repo.ListProductSummaries(ctx, productListQuery{
		Pagination: pagination.Params{Limit: 2, Cursor: result.NextCursor},
	})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected second page of 1, got %d", len(result.Products))
	}
	if result.NextCursor != "" {
		t.Fatalf("expected no cursor on last page, got %q", result.NextCursor)
	}
}

func TestUpsertTranslationReplacesExistingLanguage(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())

	product := mustCreateTestProduct(t, client, "hat")

	first, err := repo.UpsertTranslation(ctx, &models.ProductTranslation{
		ProductID: product.ID,
		Language:  "fr",
		Name:      "Chapeau",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.UpsertTranslation(ctx, &models.ProductTranslation{
		ProductID: product.ID,
		Language:  "fr",
		Name:      "Chapeau de paille",
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected upsert to reuse the row, got %s and %s", first.ID, second.ID)
	}

	var count int64
	if err := client.DB().Model(&models.ProductTranslation{}).
		Where("product_id = ? AND language = ?", product.ID, "fr").
		Count(&count).Error; err != nil {
		t.Fatalf("count translations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single fr translation, got %d", count)
	}
	if second.Name != "Chapeau de paille" {
		t.Fatalf("expected updated name, got %q", second.Name)
	}
}
