package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

// CatalogCreateProduct handles product creation.
func CatalogCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// CatalogUpdateProduct applies a partial update to a product.
func CatalogUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogDeleteProduct removes a product and its dependents.
func CatalogDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CatalogReplaceOverrides swaps the full quantity override ladder of a product.
func CatalogReplaceOverrides(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceOverridesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.ReplaceOverrides(r.Context(), productID, toOverrideInputs(payload.Overrides))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogProductPrice resolves the effective unit price at the product level,
// for products whose quantity accounting ignores variants. Discount
// application defaults to on and can be disabled with ?discount=false.
func CatalogProductPrice(resolver PriceResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "price resolver unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty, applyDiscount, err := parsePriceQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}
		quote, err := resolver.QuoteForProduct(ctx, productID, qty, applyDiscount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type createProductRequest struct {
	Kind            string                 `json:"kind" validate:"required"`
	SKU             string                 `json:"sku" validate:"required"`
	Name            string                 `json:"name" validate:"required"`
	Description     string                 `json:"description,omitempty"`
	MetaDescription string                 `json:"meta_description,omitempty"`
	ManufacturerID  *uuid.UUID             `json:"manufacturer_id,omitempty"`
	QtyMode         string                 `json:"qty_mode,omitempty"`
	BasePrice       decimal.Decimal        `json:"base_price"`
	DiscountGroupID *uuid.UUID             `json:"discount_group_id,omitempty"`
	Overrides       []overrideRequest      `json:"overrides,omitempty"`
	Variants        []createVariantRequest `json:"variants,omitempty"`
}

type updateProductRequest struct {
	SKU             *string            `json:"sku,omitempty"`
	Name            *string            `json:"name,omitempty"`
	Description     *string            `json:"description,omitempty"`
	MetaDescription *string            `json:"meta_description,omitempty"`
	ManufacturerID  *uuid.UUID         `json:"manufacturer_id,omitempty"`
	QtyMode         *string            `json:"qty_mode,omitempty"`
	BasePrice       *decimal.Decimal   `json:"base_price,omitempty"`
	DiscountGroupID *uuid.UUID         `json:"discount_group_id,omitempty"`
	ClearDiscount   bool               `json:"clear_discount_group,omitempty"`
	Overrides       *[]overrideRequest `json:"overrides,omitempty"`
}

type overrideRequest struct {
	MinQty    decimal.Decimal `json:"min_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type replaceOverridesRequest struct {
	Overrides []overrideRequest `json:"overrides"`
}

type createVariantRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Size        *string         `json:"size,omitempty"`
	Color       *string         `json:"color,omitempty"`
	PriceOffset decimal.Decimal `json:"price_offset"`
}

func (r createProductRequest) toCreateInput() catalog.CreateProductInput {
	input := catalog.CreateProductInput{
		KindCode:        strings.TrimSpace(r.Kind),
		SKU:             strings.TrimSpace(r.SKU),
		Name:            r.Name,
		Description:     r.Description,
		MetaDescription: r.MetaDescription,
		ManufacturerID:  r.ManufacturerID,
		QtyMode:         enums.QuantityModePerVariant,
		BasePrice:       r.BasePrice,
		DiscountGroupID: r.DiscountGroupID,
		Overrides:       toOverrideInputs(r.Overrides),
	}
	if mode := strings.TrimSpace(r.QtyMode); mode != "" {
		input.QtyMode = enums.QuantityMode(mode)
	}
	for _, v := range r.Variants {
		input.Variants = append(input.Variants, v.toVariantInput())
	}
	return input
}

func (r updateProductRequest) toUpdateInput() catalog.UpdateProductInput {
	input := catalog.UpdateProductInput{
		SKU:             r.SKU,
		Name:            r.Name,
		Description:     r.Description,
		MetaDescription: r.MetaDescription,
		ManufacturerID:  r.ManufacturerID,
		BasePrice:       r.BasePrice,
		DiscountGroupID: r.DiscountGroupID,
		ClearDiscount:   r.ClearDiscount,
	}
	if r.QtyMode != nil {
		mode := enums.QuantityMode(strings.TrimSpace(*r.QtyMode))
		input.QtyMode = &mode
	}
	if r.Overrides != nil {
		overrides := toOverrideInputs(*r.Overrides)
		input.Overrides = &overrides
	}
	return input
}

func (r createVariantRequest) toVariantInput() catalog.VariantInput {
	return catalog.VariantInput{
		SKU:         strings.TrimSpace(r.SKU),
		Size:        r.Size,
		Color:       r.Color,
		PriceOffset: r.PriceOffset,
	}
}

func toOverrideInputs(rows []overrideRequest) []catalog.OverrideInput {
	out := make([]catalog.OverrideInput, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.OverrideInput{MinQty: row.MinQty, UnitPrice: row.UnitPrice})
	}
	return out
}
