package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manufacturer is the brand behind a product; the logo lives in external
// object storage.
type Manufacturer struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	LogoObjectKey string    `gorm:"column:logo_object_key"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Manufacturer) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
