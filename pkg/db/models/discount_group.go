package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/money"
)

// DiscountGroup is a named percentage markdown shared by the products
// assigned to it. RateName is the label shown to buyers.
type DiscountGroup struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Rate      decimal.Decimal `gorm:"column:rate;type:numeric(4,2);not null"`
	RateName  string          `gorm:"column:rate_name;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *DiscountGroup) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// DiscountAmount computes price * rate / 100 in the price's currency.
func (g *DiscountGroup) DiscountAmount(price money.Price) money.Price {
	return price.PercentOf(g.Rate)
}
