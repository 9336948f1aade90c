package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Variant is a purchasable configuration of a product. Size and Color are
// validated against the product kind's descriptor at write time; neither
// affects pricing beyond the fixed PriceOffset.
type Variant struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU         string          `gorm:"column:sku;uniqueIndex;not null"`
	Size        *string         `gorm:"column:size"`
	Color       *string         `gorm:"column:color"`
	PriceOffset decimal.Decimal `gorm:"column:price_offset;type:numeric(12,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
