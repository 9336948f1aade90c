package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/pagination"
)

// ProductRepository defines CRUD operations for catalog products.
type ProductRepository interface {
	CreateProduct(context.Context, *models.Product) (*models.Product, error)
	UpdateProduct(context.Context, *models.Product) (*models.Product, error)
	DeleteProduct(context.Context, uuid.UUID) error
	GetProductDetail(context.Context, uuid.UUID) (*models.Product, error)
}

// KindReader exposes product kind lookups.
type KindReader interface {
	FindKindByCode(ctx context.Context, code string) (*models.ProductKind, error)
}

// Repository wires together all catalog persistence helpers.
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

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID. Overrides, variants, images, and
// translations go with it through FK cascades.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// GetProductDetail fetches a product with its kind, pricing rows, variants,
// images, and translations preloaded.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Kind").
		Preload("DiscountGroup").
		Preload("Manufacturer").
		Preload("Overrides", func(db *gorm.DB) *gorm.DB {
			return db.Order("min_qty ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sku ASC")
		}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Translations", func(db *gorm.DB) *gorm.DB {
			return db.Order("language ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindKindByCode returns the kind descriptor for the given code.
func (r *Repository) FindKindByCode(ctx context.Context, code string) (*models.ProductKind, error) {
	var kind models.ProductKind
	if err := r.db.WithContext(ctx).First(&kind, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &kind, nil
}

// ListKinds returns all kind descriptors ordered by code.
func (r *Repository) ListKinds(ctx context.Context) ([]models.ProductKind, error) {
	var rows []models.ProductKind
	err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error
	return rows, err
}

// ReplaceOverrides replaces all quantity price overrides for the product.
func (r *Repository) ReplaceOverrides(ctx context.Context, productID uuid.UUID, overrides []models.PriceQtyOverride) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.PriceQtyOverride{}).Error; err != nil {
		return err
	}
	if len(overrides) == 0 {
		return nil
	}
	return tx.Create(&overrides).Error
}

// ListOverrides returns all overrides for a product ordered by min_qty ascending.
func (r *Repository) ListOverrides(ctx context.Context, productID uuid.UUID) ([]models.PriceQtyOverride, error) {
	var rows []models.PriceQtyOverride
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("min_qty ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateVariant inserts a variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.Variant) (*models.Variant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// FindVariantByID loads a single variant row.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// DeleteVariant removes a variant by ID.
func (r *Repository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Variant{}).Error
}

// UpsertTranslation creates or updates the translation for a product/language pair.
func (r *Repository) UpsertTranslation(ctx context.Context, translation *models.ProductTranslation) (*models.ProductTranslation, error) {
	tx := r.db.WithContext(ctx)

	var existing models.ProductTranslation
	err := tx.First(&existing, "product_id = ? AND language = ?", translation.ProductID, translation.Language).Error
	switch {
	case err == nil:
		existing.Name = translation.Name
		existing.Description = translation.Description
		existing.ManufactureNote = translation.ManufactureNote
		existing.MetaDescription = translation.MetaDescription
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		if err := tx.Create(translation).Error; err != nil {
			return nil, err
		}
		return translation, nil
	default:
		return nil, err
	}
}

// CreateDiscountGroup inserts a discount group row.
func (r *Repository) CreateDiscountGroup(ctx context.Context, group *models.DiscountGroup) (*models.DiscountGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// FindDiscountGroupByID loads a discount group row.
func (r *Repository) FindDiscountGroupByID(ctx context.Context, id uuid.UUID) (*models.DiscountGroup, error) {
	var group models.DiscountGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ListDiscountGroups returns all discount groups ordered by name.
func (r *Repository) ListDiscountGroups(ctx context.Context) ([]models.DiscountGroup, error) {
	var rows []models.DiscountGroup
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// UpdateDiscountGroup updates a discount group row.
func (r *Repository) UpdateDiscountGroup(ctx context.Context, group *models.DiscountGroup) (*models.DiscountGroup, error) {
	if err := r.db.WithContext(ctx).Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteDiscountGroup removes a discount group. Products keep working through
// the ON DELETE SET NULL constraint.
func (r *Repository) DeleteDiscountGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DiscountGroup{}).Error
}

// CreateManufacturer inserts a manufacturer row.
func (r *Repository) CreateManufacturer(ctx context.Context, manufacturer *models.Manufacturer) (*models.Manufacturer, error) {
	if err := r.db.WithContext(ctx).Create(manufacturer).Error; err != nil {
		return nil, err
	}
	return manufacturer, nil
}

// FindManufacturerByID loads a manufacturer row.
func (r *Repository) FindManufacturerByID(ctx context.Context, id uuid.UUID) (*models.Manufacturer, error) {
	var manufacturer models.Manufacturer
	if err := r.db.WithContext(ctx).First(&manufacturer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &manufacturer, nil
}

// ListManufacturers returns all manufacturers ordered by name.
func (r *Repository) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

type productListQuery struct {
	Pagination pagination.Params
	Filters    ProductListFilters
}

// ListProductSummaries pages through products newest first using a cursor.
func (r *Repository) ListProductSummaries(ctx context.Context, query productListQuery) (*ProductListResult, error) {
	pageSize := pagination.NormalizeLimit(query.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(query.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(query.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	overrideExistsClause := "EXISTS (SELECT 1 FROM price_qty_overrides o WHERE o.product_id = p.id)"

	qb := r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join([]string{
			"p.id",
			"p.sku",
			"p.name",
			"p.kind_code",
			"p.qty_mode",
			"p.base_price",
			"p.discount_group_id",
			"p.main_image_id",
			"p.created_at",
			"p.updated_at",
			overrideExistsClause + " AS has_overrides",
		}, ", "))

	filter := query.Filters
	if filter.Kind != nil {
		qb = qb.Where("p.kind_code = ?", *filter.Kind)
	}
	if filter.ManufacturerID != nil {
		qb = qb.Where("p.manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.DiscountGroupID != nil {
		qb = qb.Where("p.discount_group_id = ?", *filter.DiscountGroupID)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("p.base_price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("p.base_price <= ?", *filter.PriceMax)
	}
	if filter.HasOverrides != nil {
		if *filter.HasOverrides {
			qb = qb.Where(overrideExistsClause)
		} else {
			qb = qb.Where("NOT " + overrideExistsClause)
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(p.name) LIKE ? OR LOWER(p.sku) LIKE ?)", pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(p.created_at < ?) OR (p.created_at = ? AND p.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("p.created_at DESC").Order("p.id DESC").Limit(limitWithBuffer)

	var records []productSummaryRecord
	if err := qb.Scan(&records).Error; err != nil {
		return nil, err
	}

	resultRows := records
	nextCursor := ""
	if len(records) > pageSize {
		resultRows = records[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]ProductSummary, 0, len(resultRows))
	for _, record := range resultRows {
		summaries = append(summaries, record.toSummary())
	}

	return &ProductListResult{
		Products:   summaries,
		NextCursor: nextCursor,
	}, nil
}

type productSummaryRecord struct {
	ID              uuid.UUID
	SKU             string
	Name            string
	KindCode        string
	QtyMode         string
	BasePrice       decimal.Decimal
	DiscountGroupID *uuid.UUID
	MainImageID     *uuid.UUID
	HasOverrides    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (r productSummaryRecord) toSummary() ProductSummary {
	return ProductSummary{
		ID:              r.ID,
		SKU:             r.SKU,
		Name:            r.Name,
		Kind:            r.KindCode,
		QtyMode:         r.QtyMode,
		BasePrice:       r.BasePrice,
		DiscountGroupID: r.DiscountGroupID,
		MainImageID:     r.MainImageID,
		HasOverrides:    r.HasOverrides,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
