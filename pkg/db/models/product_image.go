package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage stores position-ordered image entries for products. The image
// bytes live in external object storage; ObjectKey points at them.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ObjectKey string    `gorm:"column:object_key;not null"`
	Caption   string    `gorm:"column:caption"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *ProductImage) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
