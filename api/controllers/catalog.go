package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/pagination"
)

// KindLister is the slice of the catalog repository the kinds endpoint needs.
type KindLister interface {
	ListKinds(ctx context.Context) ([]models.ProductKind, error)
}

// CatalogListProducts serves the filtered, cursor-paginated browse endpoint.
func CatalogListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := catalog.ProductListFilters{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
		}
		if kind := strings.TrimSpace(r.URL.Query().Get("kind")); kind != "" {
			filters.Kind = &kind
		}
		if filters.ManufacturerID, err = validators.ParseQueryUUID(r, "manufacturer_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DiscountGroupID, err = validators.ParseQueryUUID(r, "discount_group_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.PriceMin, err = validators.ParseQueryDecimal(r, "price_min"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.PriceMax, err = validators.ParseQueryDecimal(r, "price_max"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.HasOverrides, err = validators.ParseQueryBool(r, "has_overrides"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), catalog.ListProductsInput{
			Filters: filters,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CatalogGetProduct serves the product detail endpoint.
func CatalogGetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// CatalogListKinds returns the kind descriptors clients use to drive variant forms.
func CatalogListKinds(kinds KindLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if kinds == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "kind repository unavailable"))
			return
		}

		rows, err := kinds.ListKinds(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]catalog.KindDTO, 0, len(rows))
		for i := range rows {
			out = append(out, catalog.NewKindDTO(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
