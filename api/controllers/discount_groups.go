package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

// CatalogCreateDiscountGroup creates a percentage discount group.
func CatalogCreateDiscountGroup(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload discountGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.CreateDiscountGroup(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

// CatalogUpdateDiscountGroup updates a discount group in place.
func CatalogUpdateDiscountGroup(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		groupID, err := validators.ParsePathUUID(chi.URLParam(r, "groupId"), "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload discountGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.UpdateDiscountGroup(r.Context(), groupID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, group)
	}
}

// CatalogListDiscountGroups lists all discount groups.
func CatalogListDiscountGroups(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		groups, err := svc.ListDiscountGroups(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, groups)
	}
}

// CatalogDeleteDiscountGroup removes a discount group. Products pointing at it
// fall back to undiscounted pricing.
func CatalogDeleteDiscountGroup(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		groupID, err := validators.ParsePathUUID(chi.URLParam(r, "groupId"), "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteDiscountGroup(r.Context(), groupID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type discountGroupRequest struct {
	Name     string          `json:"name" validate:"required"`
	Rate     decimal.Decimal `json:"rate"`
	RateName string          `json:"rate_name,omitempty"`
}

func (r discountGroupRequest) toInput() catalog.DiscountGroupInput {
	return catalog.DiscountGroupInput{
		Name:     validators.SanitizeString(r.Name, 255),
		Rate:     r.Rate,
		RateName: validators.SanitizeString(r.RateName, 100),
	}
}
