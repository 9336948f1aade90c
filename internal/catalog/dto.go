package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/threadz-backend/pkg/db/models"
)

// ProductDTO represents the full catalog product payload returned to clients.
type ProductDTO struct {
	ID              uuid.UUID         `json:"id"`
	SKU             string            `json:"sku"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	MetaDescription string            `json:"meta_description,omitempty"`
	Kind            *KindDTO          `json:"kind,omitempty"`
	QtyMode         string            `json:"qty_mode"`
	BasePrice       decimal.Decimal   `json:"base_price"`
	DiscountGroup   *DiscountGroupDTO `json:"discount_group,omitempty"`
	Manufacturer    *ManufacturerDTO  `json:"manufacturer,omitempty"`
	MainImageID     *uuid.UUID        `json:"main_image_id,omitempty"`
	Overrides       []OverrideDTO     `json:"overrides,omitempty"`
	Variants        []VariantDTO      `json:"variants,omitempty"`
	Images          []ImageDTO        `json:"images,omitempty"`
	Translations    []TranslationDTO  `json:"translations,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// KindDTO exposes the garment descriptor.
type KindDTO struct {
	Code         string   `json:"code"`
	Label        string   `json:"label"`
	AllowedSizes []string `json:"allowed_sizes,omitempty"`
	HasColor     bool     `json:"has_color"`
}

// NewKindDTO maps a kind descriptor row into its API payload.
func NewKindDTO(kind *models.ProductKind) KindDTO {
	return KindDTO{
		Code:         kind.Code,
		Label:        kind.Label,
		AllowedSizes: append([]string{}, kind.AllowedSizes...),
		HasColor:     kind.HasColor,
	}
}

// OverrideDTO represents one quantity price override.
type OverrideDTO struct {
	ID        uuid.UUID       `json:"id"`
	MinQty    decimal.Decimal `json:"min_qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// VariantDTO represents a purchasable product configuration.
type VariantDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	SKU         string          `json:"sku"`
	Size        *string         `json:"size,omitempty"`
	Color       *string         `json:"color,omitempty"`
	PriceOffset decimal.Decimal `json:"price_offset"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ImageDTO captures product image metadata.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ObjectKey string    `json:"object_key"`
	Caption   string    `json:"caption,omitempty"`
	Position  int       `json:"position"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// TranslationDTO exposes localized product text.
type TranslationDTO struct {
	ID              uuid.UUID `json:"id"`
	Language        string    `json:"language"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ManufactureNote string    `json:"manufacture_note,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
}

// DiscountGroupDTO represents a named percentage markdown.
type DiscountGroupDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	RateName  string          `json:"rate_name"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ManufacturerDTO surfaces brand data on product responses.
type ManufacturerDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	LogoObjectKey string    `json:"logo_object_key,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model and its preloads.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Description:     product.Description,
		MetaDescription: product.MetaDescription,
		QtyMode:         product.QtyMode.String(),
		BasePrice:       product.BasePrice,
		MainImageID:     product.MainImageID,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}

	if product.Kind != nil {
		kind := NewKindDTO(product.Kind)
		dto.Kind = &kind
	}

	if product.DiscountGroup != nil {
		dto.DiscountGroup = NewDiscountGroupDTO(product.DiscountGroup)
	}

	if product.Manufacturer != nil {
		dto.Manufacturer = &ManufacturerDTO{
			ID:            product.Manufacturer.ID,
			Name:          product.Manufacturer.Name,
			LogoObjectKey: product.Manufacturer.LogoObjectKey,
		}
	}

	if len(product.Overrides) > 0 {
		dto.Overrides = make([]OverrideDTO, len(product.Overrides))
		for i, override := range product.Overrides {
			dto.Overrides[i] = OverrideDTO{
				ID:        override.ID,
				MinQty:    override.MinQty,
				UnitPrice: override.UnitPrice,
				CreatedAt: override.CreatedAt,
			}
		}
	}

	if len(product.Variants) > 0 {
		dto.Variants = make([]VariantDTO, len(product.Variants))
		for i, variant := range product.Variants {
			dto.Variants[i] = NewVariantDTO(&variant)
		}
	}

	if len(product.Images) > 0 {
		dto.Images = make([]ImageDTO, len(product.Images))
		for i, image := range product.Images {
			dto.Images[i] = ImageDTO{
				ID:        image.ID,
				ObjectKey: image.ObjectKey,
				Caption:   image.Caption,
				Position:  image.Position,
				IsMain:    product.MainImageID != nil && *product.MainImageID == image.ID,
				CreatedAt: image.CreatedAt,
			}
		}
	}

	if len(product.Translations) > 0 {
		dto.Translations = make([]TranslationDTO, len(product.Translations))
		for i, translation := range product.Translations {
			dto.Translations[i] = NewTranslationDTO(&translation)
		}
	}

	return dto
}

// NewVariantDTO builds a variant DTO from the persisted row.
func NewVariantDTO(variant *models.Variant) VariantDTO {
	return VariantDTO{
		ID:          variant.ID,
		ProductID:   variant.ProductID,
		SKU:         variant.SKU,
		Size:        variant.Size,
		Color:       variant.Color,
		PriceOffset: variant.PriceOffset,
		CreatedAt:   variant.CreatedAt,
		UpdatedAt:   variant.UpdatedAt,
	}
}

// NewTranslationDTO builds a translation DTO from the persisted row.
func NewTranslationDTO(translation *models.ProductTranslation) TranslationDTO {
	return TranslationDTO{
		ID:              translation.ID,
		Language:        translation.Language,
		Name:            translation.Name,
		Description:     translation.Description,
		ManufactureNote: translation.ManufactureNote,
		MetaDescription: translation.MetaDescription,
	}
}

// NewDiscountGroupDTO builds a discount group DTO from the persisted row.
func NewDiscountGroupDTO(group *models.DiscountGroup) *DiscountGroupDTO {
	return &DiscountGroupDTO{
		ID:        group.ID,
		Name:      group.Name,
		Rate:      group.Rate,
		RateName:  group.RateName,
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}
}
