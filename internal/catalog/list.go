package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Kind            *string          `json:"kind,omitempty"`
	ManufacturerID  *uuid.UUID       `json:"manufacturer_id,omitempty"`
	DiscountGroupID *uuid.UUID       `json:"discount_group_id,omitempty"`
	PriceMin        *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax        *decimal.Decimal `json:"price_max,omitempty"`
	HasOverrides    *bool            `json:"has_overrides,omitempty"`
	Query           string           `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
}

// ProductSummary is the condensed row returned by the browse endpoint.
type ProductSummary struct {
	ID              uuid.UUID       `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	QtyMode         string          `json:"qty_mode"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountGroupID *uuid.UUID      `json:"discount_group_id,omitempty"`
	MainImageID     *uuid.UUID      `json:"main_image_id,omitempty"`
	HasOverrides    bool            `json:"has_overrides"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResult pairs one page of summaries with the next cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
