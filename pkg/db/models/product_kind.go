package models

import (
	"github.com/lib/pq"
)

// ProductKind is the per-garment descriptor: which sizes a variant may carry
// and whether the garment comes in colors. Rows are seeded by migration
// (cardigan, dress, hat, jacket, shirt, tshirt, trousers).
type ProductKind struct {
	Code         string         `gorm:"column:code;primaryKey"`
	Label        string         `gorm:"column:label;not null"`
	AllowedSizes pq.StringArray `gorm:"column:allowed_sizes;type:text[]"`
	HasColor     bool           `gorm:"column:has_color;not null;default:false"`
}

// AllowsSize reports whether the kind accepts the given variant size. Kinds
// with no size list (hats) accept only variants without a size.
func (k *ProductKind) AllowsSize(size *string) bool {
	if len(k.AllowedSizes) == 0 {
		return size == nil
	}
	if size == nil {
		return false
	}
	for _, allowed := range k.AllowedSizes {
		if allowed == *size {
			return true
		}
	}
	return false
}
