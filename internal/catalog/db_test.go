package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/threadz-backend/pkg/config"
	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
)

// openTestClient boots an isolated in-memory sqlite database with the catalog
// schema applied and the garment kinds seeded.
func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", name)

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
		&models.Manufacturer{},
		&models.DiscountGroup{},
		&models.Product{},
		&models.PriceQtyOverride{},
		&models.Variant{},
		&models.ProductImage{},
		&models.ProductTranslation{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	seedTestKinds(t, client)
	return client
}
