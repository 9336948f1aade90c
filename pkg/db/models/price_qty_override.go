package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceQtyOverride replaces a product's base unit price once the purchase
// quantity reaches MinQty. MinQty is unique per product; resolution picks the
// row with the greatest MinQty still <= the requested quantity.
type PriceQtyOverride struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_overrides_product_min_qty"`
	MinQty    decimal.Decimal `gorm:"column:min_qty;type:numeric(10,4);not null;uniqueIndex:idx_overrides_product_min_qty"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,4);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (o *PriceQtyOverride) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
