package images

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
)

// Repository wires the image and main-image persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateImage inserts an image row.
func (r *Repository) CreateImage(ctx context.Context, image *models.ProductImage) (*models.ProductImage, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// FindImageByID loads a single image row.
func (r *Repository) FindImageByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes an image row by ID.
func (r *Repository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductImage{}).Error
}

// ListImages returns all images for a product ordered by position.
func (r *Repository) ListImages(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// NextPosition returns max(position)+1 for the product, 0 when it has no images.
func (r *Repository) NextPosition(ctx context.Context, productID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var max int
	err := r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// FirstImage returns the product's image with the lowest position, excluding
// the given IDs. Returns gorm.ErrRecordNotFound when none remain.
func (r *Repository) FirstImage(ctx context.Context, productID uuid.UUID, exclude ...uuid.UUID) (*models.ProductImage, error) {
	qb := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC").
		Order("created_at ASC")
	if len(exclude) > 0 {
		qb = qb.Where("id NOT IN ?", exclude)
	}

	var image models.ProductImage
	if err := qb.First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// SetMainImage points the product's main image at the given image row, or
// clears it when imageID is nil.
func (r *Repository) SetMainImage(ctx context.Context, productID uuid.UUID, imageID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("main_image_id", imageID).
		Error
}
