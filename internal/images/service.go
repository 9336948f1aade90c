package images

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/metrics"
)

// Service exposes product image management with main-image upkeep.
type Service interface {
	AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*ImageDTO, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}

// AddImageInput holds the validated payload to attach an image.
type AddImageInput struct {
	ObjectKey string
	Caption   string
}

// ImageDTO is the image payload returned to clients.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ObjectKey string    `json:"object_key"`
	Caption   string    `json:"caption,omitempty"`
	Position  int       `json:"position"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// service implements the image service.
type service struct {
	repo      *Repository
	dbClient  *db.Client
	publisher Publisher
	logg      *logger.Logger
	metrics   *metrics.CatalogMetrics
}

// NewService constructs an image service. Publisher and metrics may be nil.
func NewService(repo *Repository, dbClient *db.Client, publisher Publisher, logg *logger.Logger, catalogMetrics *metrics.CatalogMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("image repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		publisher: publisher,
		logg:      logg,
		metrics:   catalogMetrics,
	}, nil
}

// AddImage appends the image at the next free position and assigns it as main
// when the product had none.
func (s *service) AddImage(ctx context.Context, productID uuid.UUID, input AddImageInput) (*ImageDTO, error) {
	if strings.TrimSpace(input.ObjectKey) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "object_key is required")
	}

	var (
		created  *models.ProductImage
		assigned bool
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		position, err := txRepo.NextPosition(ctx, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute image position")
		}

		image := &models.ProductImage{
			ProductID: productID,
			ObjectKey: strings.TrimSpace(input.ObjectKey),
			Caption:   input.Caption,
			Position:  position,
		}
		if created, err = txRepo.CreateImage(ctx, image); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert image")
		}

		if assigned, err = NewRule(txRepo).EnsureMainImage(ctx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ensure main image")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add image")
	}

	if assigned {
		s.metrics.IncMainImageAssignment("create")
	}
	s.publishEvent(ctx, Event{
		Type:       EventImageCreated,
		ProductID:  productID,
		ImageID:    created.ID,
		OccurredAt: time.Now().UTC(),
	})

	return &ImageDTO{
		ID:        created.ID,
		ProductID: created.ProductID,
		ObjectKey: created.ObjectKey,
		Caption:   created.Caption,
		Position:  created.Position,
		IsMain:    assigned,
		CreatedAt: created.CreatedAt,
	}, nil
}

// DeleteImage removes the image and repairs the product's main image when the
// deleted one held that role. A concurrently deleted product is tolerated.
func (s *service) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	var (
		productID  uuid.UUID
		reassigned bool
	)
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		image, err := txRepo.FindImageByID(ctx, imageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load image")
		}
		productID = image.ProductID

		if err := txRepo.DeleteImage(ctx, imageID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete image")
		}

		if reassigned, err = NewRule(txRepo).ReassignAfterDelete(ctx, productID, imageID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reassign main image")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}

	if reassigned {
		s.metrics.IncMainImageAssignment("delete")
	}
	s.publishEvent(ctx, Event{
		Type:       EventImageDeleted,
		ProductID:  productID,
		ImageID:    imageID,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// publishEvent is best-effort; a broken broker must not fail the write that
// already committed.
func (s *service) publishEvent(ctx context.Context, event Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		fields := map[string]any{
			"event_type": event.Type,
			"product_id": event.ProductID.String(),
			"image_id":   event.ImageID.String(),
		}
		s.logg.Error(s.logg.WithFields(ctx, fields), "failed to publish image event", err)
	}
}
