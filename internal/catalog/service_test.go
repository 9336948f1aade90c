package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func TestEnsureUniqueOverrides(t *testing.T) {
	t.Run("uniqueMinQty", func(t *testing.T) {
		err := ensureUniqueOverrides([]OverrideInput{
			{MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("8")},
			{MinQty: decimal.RequireFromString("10"), UnitPrice: decimal.RequireFromString("6")},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("duplicateMinQty", func(t *testing.T) {
		err := ensureUniqueOverrides([]OverrideInput{
			{MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("8")},
			{MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("6")},
		})
		if err == nil {
			t.Fatal("expected validation error for duplicate min_qty")
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error code, got %v", err)
		}
	})
}

func TestCreateProductValidatesKindRules(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	base := CreateProductInput{
		KindCode:  "tshirt",
		SKU:       "TS-1",
		Name:      "Plain Tee",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("10.0000"),
	}

	t.Run("unknownKind", func(t *testing.T) {
		input := base
		input.KindCode = "spacesuit"
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("sizeNotAllowed", func(t *testing.T) {
		input := base
		input.SKU = "TS-2"
		input.Variants = []VariantInput{{SKU: "TS-2-XXXS", Size: stringPtr("XXXS"), Color: stringPtr("red")}}
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("colorOnColorlessKind", func(t *testing.T) {
		input := base
		input.KindCode = "hat"
		input.SKU = "HAT-1"
		input.Variants = []VariantInput{{SKU: "HAT-1-RED", Color: stringPtr("red")}}
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("missingColorOnColoredKind", func(t *testing.T) {
		input := base
		input.SKU = "TS-3"
		input.Variants = []VariantInput{{SKU: "TS-3-M", Size: stringPtr("M")}}
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("unknownColor", func(t *testing.T) {
		input := base
		input.SKU = "TS-4"
		input.Variants = []VariantInput{{SKU: "TS-4-M", Size: stringPtr("M"), Color: stringPtr("chartreuse")}}
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})

	t.Run("sizelessVariantOnSizedKind", func(t *testing.T) {
		input := base
		input.SKU = "TS-5"
		input.Variants = []VariantInput{{SKU: "TS-5", Color: stringPtr("red")}}
		_, err := svc.CreateProduct(ctx, input)
		assertCode(t, err, pkgerrors.CodeValidation)
	})
}

func TestCreateProductWithOverridesAndVariants(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:  "tshirt",
		SKU:       "TS-FULL",
		Name:      "Graphic Tee",
		QtyMode:   enums.QuantityModePerProduct,
		BasePrice: decimal.RequireFromString("10.0000"),
		Overrides: []OverrideInput{
			{MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("8.0000")},
			{MinQty: decimal.RequireFromString("10"), UnitPrice: decimal.RequireFromString("6.0000")},
		},
		Variants: []VariantInput{
			{SKU: "TS-FULL-M-RED", Size: stringPtr("M"), Color: stringPtr("red"), PriceOffset: decimal.RequireFromString("0.5000")},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if dto.QtyMode != "per_product" {
		t.Fatalf("unexpected qty mode %s", dto.QtyMode)
	}
	if len(dto.Overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(dto.Overrides))
	}
	if len(dto.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(dto.Variants))
	}
	if !dto.Variants[0].PriceOffset.Equal(decimal.RequireFromString("0.5000")) {
		t.Fatalf("unexpected price offset %s", dto.Variants[0].PriceOffset)
	}
	if dto.Kind == nil || dto.Kind.Code != "tshirt" {
		t.Fatalf("expected kind on DTO, got %+v", dto.Kind)
	}
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	input := CreateProductInput{
		KindCode:  "hat",
		SKU:       "HAT-DUP",
		Name:      "Bucket Hat",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("15.0000"),
	}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	input.Name = "Other Hat"
	_, err := svc.CreateProduct(ctx, input)
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:  "trousers",
		SKU:       "TR-1",
		Name:      "Chinos",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("30.0000"),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	newPrice := decimal.RequireFromString("28.0000")
	overrides := []OverrideInput{
		{MinQty: decimal.RequireFromString("4"), UnitPrice: decimal.RequireFromString("25.0000")},
	}
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:      stringPtr("  Slim Chinos "),
		BasePrice: &newPrice,
		Overrides: &overrides,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}

	if updated.Name != "Slim Chinos" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}
	if !updated.BasePrice.Equal(newPrice) {
		t.Fatalf("expected base price %s, got %s", newPrice, updated.BasePrice)
	}
	if len(updated.Overrides) != 1 {
		t.Fatalf("expected replaced overrides, got %d", len(updated.Overrides))
	}
	if updated.SKU != "TR-1" {
		t.Fatalf("sku should be untouched, got %q", updated.SKU)
	}
}

func TestUpdateProductClearsDiscountGroup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	group, err := svc.CreateDiscountGroup(ctx, DiscountGroupInput{
		Name:     "Clearance",
		Rate:     decimal.RequireFromString("50"),
		RateName: "Half off",
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:        "hat",
		SKU:             "HAT-CL",
		Name:            "Old Hat",
		QtyMode:         enums.QuantityModePerVariant,
		BasePrice:       decimal.RequireFromString("12.0000"),
		DiscountGroupID: &group.ID,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.DiscountGroup == nil {
		t.Fatalf("expected discount group on create")
	}

	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{ClearDiscount: true})
	if err != nil {
		t.Fatalf("clear discount: %v", err)
	}
	if updated.DiscountGroup != nil {
		t.Fatalf("expected discount group cleared, got %+v", updated.DiscountGroup)
	}
}

func TestCreateVariantAgainstKindDescriptor(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:  "hat",
		SKU:       "HAT-V",
		Name:      "Beanie",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("9.0000"),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	variant, err := svc.CreateVariant(ctx, created.ID, VariantInput{SKU: "HAT-V-1"})
	if err != nil {
		t.Fatalf("create variant: %v", err)
	}
	if variant.Size != nil || variant.Color != nil {
		t.Fatalf("hat variant should have no size or color, got %+v", variant)
	}

	_, err = svc.CreateVariant(ctx, created.ID, VariantInput{SKU: "HAT-V-2", Size: stringPtr("M")})
	assertCode(t, err, pkgerrors.CodeValidation)

	if err := svc.DeleteVariant(ctx, variant.ID); err != nil {
		t.Fatalf("delete variant: %v", err)
	}
	err = svc.DeleteVariant(ctx, variant.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDiscountGroupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateDiscountGroup(ctx, DiscountGroupInput{
		Name:     "Too Much",
		Rate:     decimal.RequireFromString("101"),
		RateName: "impossible",
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateDiscountGroup(ctx, DiscountGroupInput{
		Rate:     decimal.RequireFromString("10"),
		RateName: "ten",
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteProductCascades(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:  "tshirt",
		SKU:       "TS-DEL",
		Name:      "Doomed Tee",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("10.0000"),
		Overrides: []OverrideInput{
			{MinQty: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("8.0000")},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	_, err = svc.GetProduct(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.DeleteProduct(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpsertTranslationService(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		KindCode:  "hat",
		SKU:       "HAT-TR",
		Name:      "Sun Hat",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("14.0000"),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	_, err = svc.UpsertTranslation(ctx, created.ID, TranslationInput{Language: " ", Name: "x"})
	assertCode(t, err, pkgerrors.CodeValidation)

	translation, err := svc.UpsertTranslation(ctx, created.ID, TranslationInput{
		Language: " PL ",
		Name:     "Kapelusz",
	})
	if err != nil {
		t.Fatalf("upsert translation: %v", err)
	}
	if translation.Language != "pl" {
		t.Fatalf("expected normalized language, got %q", translation.Language)
	}

	detail, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if len(detail.Translations) != 1 {
		t.Fatalf("expected translation on detail, got %d", len(detail.Translations))
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}
