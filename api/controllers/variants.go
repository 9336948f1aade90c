package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	"github.com/angelmondragon/threadz-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

// PriceResolver is the slice of the pricing engine the quote endpoints need.
type PriceResolver interface {
	ResolveUnitPrice(ctx context.Context, variantID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*pricing.Quote, error)
	QuoteForProduct(ctx context.Context, productID uuid.UUID, qty decimal.Decimal, applyDiscount bool) (*pricing.Quote, error)
}

// parsePriceQuery reads the qty and discount query parameters shared by the
// price endpoints. Discount defaults to on.
func parsePriceQuery(r *http.Request) (decimal.Decimal, bool, error) {
	rawQty := strings.TrimSpace(r.URL.Query().Get("qty"))
	if rawQty == "" {
		return decimal.Decimal{}, false, pkgerrors.New(pkgerrors.CodeValidation, "qty query parameter is required")
	}
	qty, err := decimal.NewFromString(rawQty)
	if err != nil {
		return decimal.Decimal{}, false, pkgerrors.New(pkgerrors.CodeValidation, "qty must be a decimal number")
	}

	applyDiscount := true
	if rawDiscount := strings.TrimSpace(r.URL.Query().Get("discount")); rawDiscount != "" {
		applyDiscount, err = strconv.ParseBool(rawDiscount)
		if err != nil {
			return decimal.Decimal{}, false, pkgerrors.New(pkgerrors.CodeValidation, "discount must be a boolean")
		}
	}
	return qty, applyDiscount, nil
}

// CatalogCreateVariant attaches a new purchasable configuration to a product.
func CatalogCreateVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.CreateVariant(r.Context(), productID, payload.toVariantInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// CatalogDeleteVariant removes a variant.
func CatalogDeleteVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "variantId"), "variantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVariant(r.Context(), variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CatalogVariantPrice resolves the effective unit price for a variant at a
// given quantity. Discount application defaults to on and can be disabled
// with ?discount=false.
func CatalogVariantPrice(resolver PriceResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "price resolver unavailable"))
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "variantId"), "variantId")
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
			ctx = logg.WithVariantID(ctx, variantID.String())
		}
		quote, err := resolver.ResolveUnitPrice(ctx, variantID, qty, applyDiscount)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
