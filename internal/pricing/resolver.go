package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/metrics"
	"github.com/angelmondragon/threadz-backend/pkg/money"
)

// Price source labels reported to metrics.
const (
	sourceBase     = "base"
	sourceOverride = "override"
)

type variantReader interface {
	FindVariantByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
}

type productReader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type overrideLister interface {
	ListOverrides(ctx context.Context, productID uuid.UUID) ([]models.PriceQtyOverride, error)
}

type discountReader interface {
	FindDiscountGroupByID(ctx context.Context, id uuid.UUID) (*models.DiscountGroup, error)
}

// Store is the persistence surface the resolver needs. The catalog repository
// satisfies it.
type Store interface {
	variantReader
	productReader
	overrideLister
	discountReader
}

// Quote is the result of one unit price resolution.
type Quote struct {
	VariantID       uuid.UUID        `json:"variant_id"`
	ProductID       uuid.UUID        `json:"product_id"`
	Qty             decimal.Decimal  `json:"qty"`
	UnitPrice       money.Price      `json:"unit_price"`
	PriceSource     string           `json:"price_source"`
	DiscountApplied bool             `json:"discount_applied"`
	DiscountRate    *decimal.Decimal `json:"discount_rate,omitempty"`
}

// Resolver computes effective unit prices for variants.
type Resolver struct {
	store    Store
	currency enums.Currency
	metrics  *metrics.CatalogMetrics
}

// NewResolver builds a resolver. Metrics may be nil.
func NewResolver(store Store, currency enums.Currency, catalogMetrics *metrics.CatalogMetrics) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("pricing store required")
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("invalid default currency %q", currency)
	}
	return &Resolver{
		store:    store,
		currency: currency,
		metrics:  catalogMetrics,
	}, nil
}

// ResolveUnitPrice computes the effective unit price for one variant at the
// given quantity. The tier lookup picks the override with the greatest min_qty
// still at or below qty and falls back to the product base price. The variant
// offset is added before the discount is taken, so the discount also covers
// the offset. The result may go below zero.
func (r *Resolver) ResolveUnitPrice(ctx context.Context, variantID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*Quote, error) {
	started := time.Now()

	quote, err := r.resolve(ctx, variantID, qty, applyDiscount)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			r.metrics.IncPriceFailure(string(typed.Code()))
		}
		return nil, err
	}

	r.metrics.ObservePriceResolution(quote.PriceSource, time.Since(started))
	return quote, nil
}

// QuoteForProduct resolves the effective unit price at the product level,
// without any variant offset. Used when quantity accounting is per product.
func (r *Resolver) QuoteForProduct(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*Quote, error) {
	started := time.Now()

	quote, err := r.resolveProduct(ctx, productID, qty, applyDiscount)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			r.metrics.IncPriceFailure(string(typed.Code()))
		}
		return nil, err
	}

	r.metrics.ObservePriceResolution(quote.PriceSource, time.Since(started))
	return quote, nil
}

func (r *Resolver) resolveProduct(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*Quote, error) {
	if !qty.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}

	product, err := r.store.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	price, source, err := r.tierPrice(ctx, product, qty)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		ProductID:   product.ID,
		Qty:         qty,
		PriceSource: source,
	}
	if applyDiscount {
		price, err = r.applyGroupDiscount(ctx, product, price, quote)
		if err != nil {
			return nil, err
		}
	}
	quote.UnitPrice = price
	return quote, nil
}

func (r *Resolver) resolve(ctx context.Context, variantID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*Quote, error) {
	if !qty.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}

	variant, err := r.store.FindVariantByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	product, err := r.store.FindProductByID(ctx, variant.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	base, source, err := r.tierPrice(ctx, product, qty)
	if err != nil {
		return nil, err
	}

	price, err := base.Add(money.New(variant.PriceOffset, r.currency))
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		VariantID:   variant.ID,
		ProductID:   product.ID,
		Qty:         qty,
		PriceSource: source,
	}

	if applyDiscount {
		price, err = r.applyGroupDiscount(ctx, product, price, quote)
		if err != nil {
			return nil, err
		}
	}

	quote.UnitPrice = price
	return quote, nil
}

// applyGroupDiscount subtracts the product's group discount from price and
// annotates the quote. A dangling group reference charges full price.
func (r *Resolver) applyGroupDiscount(ctx context.Context, product *models.Product, price money.Price, quote *Quote) (money.Price, error) {
	if product.DiscountGroupID == nil {
		return price, nil
	}
	group, err := r.store.FindDiscountGroupByID(ctx, *product.DiscountGroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Group deleted between product load and here; charge full price.
			return price, nil
		}
		return price, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount group")
	}
	discounted, err := price.Sub(group.DiscountAmount(price))
	if err != nil {
		return price, err
	}
	quote.DiscountApplied = true
	rate := group.Rate
	quote.DiscountRate = &rate
	return discounted, nil
}

// tierPrice returns the winning price row for qty tagged with the default
// currency. Overrides are compared in Go rather than relying on SQL ordering
// so sqlite's text affinity on numeric columns cannot skew the result.
func (r *Resolver) tierPrice(ctx context.Context, product *models.Product, qty decimal.Decimal) (money.Price, string, error) {
	overrides, err := r.store.ListOverrides(ctx, product.ID)
	if err != nil {
		return money.Price{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price overrides")
	}

	var best *models.PriceQtyOverride
	for i := range overrides {
		override := &overrides[i]
		if override.MinQty.GreaterThan(qty) {
			continue
		}
		if best == nil || override.MinQty.GreaterThan(best.MinQty) {
			best = override
		}
	}

	if best != nil {
		return money.New(best.UnitPrice, r.currency), sourceOverride, nil
	}
	return money.New(product.BasePrice, r.currency), sourceBase, nil
}
