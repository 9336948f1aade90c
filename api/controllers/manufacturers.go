package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

// CatalogCreateManufacturer registers a manufacturer.
func CatalogCreateManufacturer(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload manufacturerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		manufacturer, err := svc.CreateManufacturer(r.Context(), catalog.ManufacturerInput{
			Name:          validators.SanitizeString(payload.Name, 255),
			LogoObjectKey: strings.TrimSpace(payload.LogoObjectKey),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, manufacturer)
	}
}

// CatalogListManufacturers lists all manufacturers.
func CatalogListManufacturers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		manufacturers, err := svc.ListManufacturers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, manufacturers)
	}
}

type manufacturerRequest struct {
	Name          string `json:"name" validate:"required"`
	LogoObjectKey string `json:"logo_object_key,omitempty"`
}
