package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductTranslation holds the localized text for one product and language.
type ProductTranslation struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_translations_product_language"`
	Language        string    `gorm:"column:language;not null;uniqueIndex:idx_translations_product_language"`
	Name            string    `gorm:"column:name;not null"`
	Description     string    `gorm:"column:description"`
	ManufactureNote string    `gorm:"column:manufacture_note"`
	MetaDescription string    `gorm:"column:meta_description"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (tr *ProductTranslation) BeforeCreate(*gorm.DB) error {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}
	return nil
}
