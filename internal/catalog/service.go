package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/threadz-backend/pkg/db"
	"github.com/angelmondragon/threadz-backend/pkg/db/models"
	"github.com/angelmondragon/threadz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/threadz-backend/pkg/errors"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)

	CreateVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error

	ReplaceOverrides(ctx context.Context, productID uuid.UUID, inputs []OverrideInput) (*ProductDTO, error)
	UpsertTranslation(ctx context.Context, productID uuid.UUID, input TranslationInput) (*TranslationDTO, error)

	CreateDiscountGroup(ctx context.Context, input DiscountGroupInput) (*DiscountGroupDTO, error)
	UpdateDiscountGroup(ctx context.Context, groupID uuid.UUID, input DiscountGroupInput) (*DiscountGroupDTO, error)
	ListDiscountGroups(ctx context.Context) ([]DiscountGroupDTO, error)
	DeleteDiscountGroup(ctx context.Context, groupID uuid.UUID) error

	CreateManufacturer(ctx context.Context, input ManufacturerInput) (*ManufacturerDTO, error)
	ListManufacturers(ctx context.Context) ([]ManufacturerDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	KindCode        string
	SKU             string
	Name            string
	Description     string
	MetaDescription string
	ManufacturerID  *uuid.UUID
	QtyMode         enums.QuantityMode
	BasePrice       decimal.Decimal
	DiscountGroupID *uuid.UUID
	Overrides       []OverrideInput
	Variants        []VariantInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU             *string
	Name            *string
	Description     *string
	MetaDescription *string
	ManufacturerID  *uuid.UUID
	QtyMode         *enums.QuantityMode
	BasePrice       *decimal.Decimal
	DiscountGroupID *uuid.UUID
	ClearDiscount   bool
	Overrides       *[]OverrideInput
}

// OverrideInput defines a replacement unit price for a given minimum quantity.
type OverrideInput struct {
	MinQty    decimal.Decimal
	UnitPrice decimal.Decimal
}

// VariantInput captures the payload to create a purchasable configuration.
type VariantInput struct {
	SKU         string
	Size        *string
	Color       *string
	PriceOffset decimal.Decimal
}

// TranslationInput captures localized text for one language.
type TranslationInput struct {
	Language        string
	Name            string
	Description     string
	ManufactureNote string
	MetaDescription string
}

// DiscountGroupInput holds the payload to create or update a discount group.
type DiscountGroupInput struct {
	Name     string
	Rate     decimal.Decimal
	RateName string
}

// ManufacturerInput holds the payload to create a manufacturer.
type ManufacturerInput struct {
	Name          string
	LogoObjectKey string
}

// service implements the catalog service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
	}, nil
}

// CreateProduct creates the product with its overrides and variants.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be non-negative")
	}
	if !input.QtyMode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid qty_mode")
	}
	if err := ensureUniqueOverrides(input.Overrides); err != nil {
		return nil, err
	}
	for _, override := range input.Overrides {
		if err := validateOverride(override); err != nil {
			return nil, err
		}
	}

	kind, err := s.loadKind(ctx, input.KindCode)
	if err != nil {
		return nil, err
	}
	for _, variant := range input.Variants {
		if err := validateVariantAgainstKind(kind, variant.Size, variant.Color); err != nil {
			return nil, err
		}
	}
	if input.DiscountGroupID != nil {
		if err := s.ensureDiscountGroupExists(ctx, *input.DiscountGroupID); err != nil {
			return nil, err
		}
	}
	if input.ManufacturerID != nil {
		if err := s.ensureManufacturerExists(ctx, *input.ManufacturerID); err != nil {
			return nil, err
		}
	}

	var createdProductID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			KindCode:        input.KindCode,
			SKU:             strings.TrimSpace(input.SKU),
			Name:            strings.TrimSpace(input.Name),
			Description:     input.Description,
			MetaDescription: input.MetaDescription,
			ManufacturerID:  input.ManufacturerID,
			QtyMode:         input.QtyMode,
			BasePrice:       input.BasePrice,
			DiscountGroupID: input.DiscountGroupID,
		}

		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "products_sku_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdProductID = created.ID

		if len(input.Overrides) > 0 {
			overrides := buildOverrideRows(created.ID, input.Overrides)
			if err := txRepo.ReplaceOverrides(ctx, created.ID, overrides); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert price overrides")
			}
		}

		for _, variantInput := range input.Variants {
			variant := &models.Variant{
				ProductID:   created.ID,
				SKU:         strings.TrimSpace(variantInput.SKU),
				Size:        variantInput.Size,
				Color:       variantInput.Color,
				PriceOffset: variantInput.PriceOffset,
			}
			if _, err := txRepo.CreateVariant(ctx, variant); err != nil {
				if db.IsUniqueViolation(err, "variants_sku_key") {
					return pkgerrors.New(pkgerrors.CodeConflict, "variant sku already exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, createdProductID)
}

// UpdateProduct updates an existing product and optionally its overrides.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.BasePrice != nil && input.BasePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be non-negative")
	}
	if input.QtyMode != nil && !input.QtyMode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid qty_mode")
	}
	if input.Overrides != nil {
		if err := ensureUniqueOverrides(*input.Overrides); err != nil {
			return nil, err
		}
		for _, override := range *input.Overrides {
			if err := validateOverride(override); err != nil {
				return nil, err
			}
		}
	}
	if input.DiscountGroupID != nil {
		if err := s.ensureDiscountGroupExists(ctx, *input.DiscountGroupID); err != nil {
			return nil, err
		}
	}
	if input.ManufacturerID != nil {
		if err := s.ensureManufacturerExists(ctx, *input.ManufacturerID); err != nil {
			return nil, err
		}
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applyUpdateToProduct(product, input)
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_sku_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
			}
			return err
		}

		if input.Overrides != nil {
			overrides := buildOverrideRows(product.ID, *input.Overrides)
			if err := txRepo.ReplaceOverrides(ctx, product.ID, overrides); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.GetProduct(ctx, productID)
}

// DeleteProduct removes a product and relies on FK cascades for related rows.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProduct returns the full product payload with associations.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(product), nil
}

// ListProducts pages through the catalog with optional filters.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

// CreateVariant adds a purchasable configuration validated against the
// product's kind descriptor.
func (s *service) CreateVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*VariantDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	kind, err := s.loadKind(ctx, product.KindCode)
	if err != nil {
		return nil, err
	}
	if err := validateVariantAgainstKind(kind, input.Size, input.Color); err != nil {
		return nil, err
	}

	variant := &models.Variant{
		ProductID:   product.ID,
		SKU:         strings.TrimSpace(input.SKU),
		Size:        input.Size,
		Color:       input.Color,
		PriceOffset: input.PriceOffset,
	}
	created, err := s.repo.CreateVariant(ctx, variant)
	if err != nil {
		if db.IsUniqueViolation(err, "variants_sku_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "variant sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
	}

	dto := NewVariantDTO(created)
	return &dto, nil
}

// DeleteVariant removes a variant by ID.
func (s *service) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	if _, err := s.repo.FindVariantByID(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if err := s.repo.DeleteVariant(ctx, variantID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variant")
	}
	return nil
}

// ReplaceOverrides swaps the product's quantity price overrides atomically.
func (s *service) ReplaceOverrides(ctx context.Context, productID uuid.UUID, inputs []OverrideInput) (*ProductDTO, error) {
	if err := ensureUniqueOverrides(inputs); err != nil {
		return nil, err
	}
	for _, override := range inputs {
		if err := validateOverride(override); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceOverrides(ctx, productID, buildOverrideRows(productID, inputs))
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace overrides")
	}

	return s.GetProduct(ctx, productID)
}

// UpsertTranslation creates or replaces the localized text for a language.
func (s *service) UpsertTranslation(ctx context.Context, productID uuid.UUID, input TranslationInput) (*TranslationDTO, error) {
	language := strings.ToLower(strings.TrimSpace(input.Language))
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	translation := &models.ProductTranslation{
		ProductID:       productID,
		Language:        language,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		ManufactureNote: input.ManufactureNote,
		MetaDescription: input.MetaDescription,
	}
	saved, err := s.repo.UpsertTranslation(ctx, translation)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert translation")
	}

	dto := NewTranslationDTO(saved)
	return &dto, nil
}

// CreateDiscountGroup registers a named percentage markdown.
func (s *service) CreateDiscountGroup(ctx context.Context, input DiscountGroupInput) (*DiscountGroupDTO, error) {
	if err := validateDiscountGroupInput(input); err != nil {
		return nil, err
	}

	group := &models.DiscountGroup{
		Name:     strings.TrimSpace(input.Name),
		Rate:     input.Rate,
		RateName: strings.TrimSpace(input.RateName),
	}
	created, err := s.repo.CreateDiscountGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert discount group")
	}
	return NewDiscountGroupDTO(created), nil
}

// UpdateDiscountGroup replaces a discount group's fields.
func (s *service) UpdateDiscountGroup(ctx context.Context, groupID uuid.UUID, input DiscountGroupInput) (*DiscountGroupDTO, error) {
	if err := validateDiscountGroupInput(input); err != nil {
		return nil, err
	}

	group, err := s.repo.FindDiscountGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount group")
	}

	group.Name = strings.TrimSpace(input.Name)
	group.Rate = input.Rate
	group.RateName = strings.TrimSpace(input.RateName)

	updated, err := s.repo.UpdateDiscountGroup(ctx, group)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update discount group")
	}
	return NewDiscountGroupDTO(updated), nil
}

// ListDiscountGroups returns all discount groups.
func (s *service) ListDiscountGroups(ctx context.Context) ([]DiscountGroupDTO, error) {
	rows, err := s.repo.ListDiscountGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discount groups")
	}
	groups := make([]DiscountGroupDTO, len(rows))
	for i := range rows {
		groups[i] = *NewDiscountGroupDTO(&rows[i])
	}
	return groups, nil
}

// DeleteDiscountGroup removes the group; assigned products fall back to their
// base price through the SET NULL constraint.
func (s *service) DeleteDiscountGroup(ctx context.Context, groupID uuid.UUID) error {
	if _, err := s.repo.FindDiscountGroupByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "discount group not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount group")
	}
	if err := s.repo.DeleteDiscountGroup(ctx, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete discount group")
	}
	return nil
}

// CreateManufacturer registers a brand.
func (s *service) CreateManufacturer(ctx context.Context, input ManufacturerInput) (*ManufacturerDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	manufacturer := &models.Manufacturer{
		Name:          strings.TrimSpace(input.Name),
		LogoObjectKey: input.LogoObjectKey,
	}
	created, err := s.repo.CreateManufacturer(ctx, manufacturer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert manufacturer")
	}
	return &ManufacturerDTO{
		ID:            created.ID,
		Name:          created.Name,
		LogoObjectKey: created.LogoObjectKey,
	}, nil
}

// ListManufacturers returns all brands.
func (s *service) ListManufacturers(ctx context.Context) ([]ManufacturerDTO, error) {
	rows, err := s.repo.ListManufacturers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list manufacturers")
	}
	manufacturers := make([]ManufacturerDTO, len(rows))
	for i, row := range rows {
		manufacturers[i] = ManufacturerDTO{
			ID:            row.ID,
			Name:          row.Name,
			LogoObjectKey: row.LogoObjectKey,
		}
	}
	return manufacturers, nil
}

func (s *service) loadKind(ctx context.Context, code string) (*models.ProductKind, error) {
	kind, err := s.repo.FindKindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product kind")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product kind")
	}
	return kind, nil
}

func (s *service) ensureDiscountGroupExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindDiscountGroupByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount group not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount group")
	}
	return nil
}

func (s *service) ensureManufacturerExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindManufacturerByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "manufacturer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load manufacturer")
	}
	return nil
}

func ensureUniqueOverrides(overrides []OverrideInput) error {
	seen := make(map[string]struct{}, len(overrides))
	for _, override := range overrides {
		key := override.MinQty.String()
		if _, ok := seen[key]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate override min_qty")
		}
		seen[key] = struct{}{}
	}
	return nil
}

func validateOverride(override OverrideInput) error {
	if !override.MinQty.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "override min_qty must be positive")
	}
	if override.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "override unit_price must be non-negative")
	}
	return nil
}

func validateDiscountGroupInput(input DiscountGroupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.RateName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate_name is required")
	}
	if input.Rate.IsNegative() || input.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rate must be between 0 and 100")
	}
	return nil
}

func validateVariantAgainstKind(kind *models.ProductKind, size, color *string) error {
	if !kind.AllowsSize(size) {
		if size == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "size is required for this product kind")
		}
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size %q not allowed for kind %s", *size, kind.Code))
	}
	if color != nil {
		if !kind.HasColor {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("kind %s does not support colors", kind.Code))
		}
		if !enums.VariantColor(*color).IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown color %q", *color))
		}
	} else if kind.HasColor {
		return pkgerrors.New(pkgerrors.CodeValidation, "color is required for this product kind")
	}
	return nil
}

func buildOverrideRows(productID uuid.UUID, inputs []OverrideInput) []models.PriceQtyOverride {
	rows := make([]models.PriceQtyOverride, len(inputs))
	for i, input := range inputs {
		rows[i] = models.PriceQtyOverride{
			ProductID: productID,
			MinQty:    input.MinQty,
			UnitPrice: input.UnitPrice,
		}
	}
	return rows
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.MetaDescription != nil {
		product.MetaDescription = *input.MetaDescription
	}
	if input.ManufacturerID != nil {
		product.ManufacturerID = input.ManufacturerID
	}
	if input.QtyMode != nil {
		product.QtyMode = *input.QtyMode
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.ClearDiscount {
		product.DiscountGroupID = nil
	} else if input.DiscountGroupID != nil {
		product.DiscountGroupID = input.DiscountGroupID
	}
}
