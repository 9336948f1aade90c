package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
)

func seedTestKinds(t *testing.T, client *db.Client) {
	t.Helper()
	kinds := []models.ProductKind{
		{Code: "tshirt", Label: "T-Shirt", AllowedSizes: pq.StringArray{"XS", "S", "M", "L", "XL"}, HasColor: true},
		{Code: "hat", Label: "Hat", HasColor: false},
		{Code: "trousers", Label: "Trousers", AllowedSizes: pq.StringArray{"30", "31", "32", "33", "34", "35", "36", "37", "38"}, HasColor: true},
	}
	if err := client.DB().Create(&kinds).Error; err != nil {
		t.Fatalf("seed kinds: %v", err)
	}
}

func mustCreateTestProduct(t *testing.T, client *db.Client, kindCode string) *models.Product {
	t.Helper()
	product := &models.Product{
		KindCode:  kindCode,
		SKU:       fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:      "Test Garment",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("10.0000"),
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestDiscountGroup(t *testing.T, client *db.Client, rate string) *models.DiscountGroup {
	t.Helper()
	group := &models.DiscountGroup{
		Name:     "Test Sale",
		Rate:     decimal.RequireFromString(rate),
		RateName: rate + "% off",
	}
	if err := client.DB().Create(group).Error; err != nil {
		t.Fatalf("create discount group: %v", err)
	}
	return group
}

func mustCreateTestVariant(t *testing.T, client *db.Client, productID uuid.UUID, offset string) *models.Variant {
	t.Helper()
	size := "M"
	color := "red"
	variant := &models.Variant{
		ProductID:   productID,
		SKU:         fmt.Sprintf("VAR-%s", uuid.NewString()),
		Size:        &size,
		Color:       &color,
		PriceOffset: decimal.RequireFromString(offset),
	}
	if err := client.DB().Create(variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	return variant
}

func mustCreateTestOverride(t *testing.T, client *db.Client, productID uuid.UUID, minQty, unitPrice string) *models.PriceQtyOverride {
	t.Helper()
	override := &models.PriceQtyOverride{
		ProductID: productID,
		MinQty:    decimal.RequireFromString(minQty),
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
	if err := client.DB().Create(override).Error; err != nil {
		t.Fatalf("create override: %v", err)
	}
	return override
}

func stringPtr(value string) *string {
	return &value
}
