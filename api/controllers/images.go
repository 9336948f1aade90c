package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/threadz-backend/api/responses"
	"github.com/angelmondragon/threadz-backend/api/validators"
	"github.com/angelmondragon/threadz-backend/internal/images"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
)

// CatalogAddImage attaches an image to a product.
func CatalogAddImage(svc images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "image service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.AddImage(r.Context(), productID, images.AddImageInput{
			ObjectKey: strings.TrimSpace(payload.ObjectKey),
			Caption:   validators.SanitizeString(payload.Caption, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, image)
	}
}

// CatalogDeleteImage removes an image, repairing the main image if needed.
func CatalogDeleteImage(svc images.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "image service unavailable"))
			return
		}

		imageID, err := validators.ParsePathUUID(chi.URLParam(r, "imageId"), "imageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteImage(r.Context(), imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addImageRequest struct {
	ObjectKey string `json:"object_key" validate:"required"`
	Caption   string `json:"caption,omitempty"`
}
