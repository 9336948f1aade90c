package images

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/config"
	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:images_%s?mode=memory&cache=shared", name)

	client, err := db.New(context.Background(), config.DBConfig{
		DSN:          dsn,
		Driver:       "sqlite",
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	err = client.DB().AutoMigrate(
		&models.ProductKind{},
		&models.Product{},
		&models.ProductImage{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	kind := models.ProductKind{Code: "hat", Label: "Hat"}
	if err := client.DB().Create(&kind).Error; err != nil {
		t.Fatalf("seed kind: %v", err)
	}
	return client
}

func mustCreateTestProduct(t *testing.T, client *db.Client) *models.Product {
	t.Helper()
	product := &models.Product{
		KindCode:  "hat",
		SKU:       fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:      "Test Hat",
		QtyMode:   enums.QuantityModePerVariant,
		BasePrice: decimal.RequireFromString("15.0000"),
	}
	if err := client.DB().Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func mustCreateTestImage(t *testing.T, client *db.Client, productID uuid.UUID, position int) *models.ProductImage {
	t.Helper()
	image := &models.ProductImage{
		ProductID: productID,
		ObjectKey: fmt.Sprintf("products/%s/%d.jpg", productID, position),
		Position:  position,
	}
	if err := client.DB().Create(image).Error; err != nil {
		t.Fatalf("create image: %v", err)
	}
	return image
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "images-test", Output: io.Discard})
}
