package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/enums"
)

// Product is the canonical catalog entry for one garment. Concrete garment
// behavior (allowed sizes, whether variants carry a color) lives on the
// referenced ProductKind row rather than on per-garment subtypes.
type Product struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	KindCode        string               `gorm:"column:kind_code;not null"`
	Kind            *ProductKind         `gorm:"foreignKey:KindCode;references:Code"`
	SKU             string               `gorm:"column:sku;uniqueIndex;not null"`
	Name            string               `gorm:"column:name;not null"`
	Description     string               `gorm:"column:description"`
	MetaDescription string               `gorm:"column:meta_description"`
	ManufacturerID  *uuid.UUID           `gorm:"column:manufacturer_id;type:uuid"`
	Manufacturer    *Manufacturer        `gorm:"foreignKey:ManufacturerID;constraint:OnDelete:SET NULL"`
	QtyMode         enums.QuantityMode   `gorm:"column:qty_mode;not null;default:per_variant"`
	BasePrice       decimal.Decimal      `gorm:"column:base_price;type:numeric(12,4);not null"`
	DiscountGroupID *uuid.UUID           `gorm:"column:discount_group_id;type:uuid"`
	DiscountGroup   *DiscountGroup       `gorm:"foreignKey:DiscountGroupID;constraint:OnDelete:SET NULL"`
	MainImageID     *uuid.UUID           `gorm:"column:main_image_id;type:uuid"`
	Overrides       []PriceQtyOverride   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants        []Variant            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images          []ProductImage       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Translations    []ProductTranslation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the ID client-side so the sqlite driver works too.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
