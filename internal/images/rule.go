package images

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rule implements the main-image assignment policy. Both the image service
// and the Pub/Sub consumer call it; bulk-load paths simply never do.
type Rule struct {
	repo *Repository
}

// NewRule binds the rule to a repository (possibly transaction-scoped).
func NewRule(repo *Repository) *Rule {
	return &Rule{repo: repo}
}

// EnsureMainImage assigns the product's first image by position as main when
// the product has none yet. A product that no longer exists is a silent
// no-op. Returns whether an assignment happened.
func (r *Rule) EnsureMainImage(ctx context.Context, productID uuid.UUID) (bool, error) {
	product, err := r.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if product.MainImageID != nil {
		return false, nil
	}

	first, err := r.repo.FirstImage(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := r.repo.SetMainImage(ctx, productID, &first.ID); err != nil {
		return false, err
	}
	return true, nil
}

// ReassignAfterDelete repairs the main image after deletedImageID was
// removed. When the deleted image was the main one (or the FK already nulled
// the reference) the lowest remaining position wins; when other images are
// gone too the reference stays cleared. A product that no longer exists is a
// silent no-op. Returns whether an assignment happened.
func (r *Rule) ReassignAfterDelete(ctx context.Context, productID, deletedImageID uuid.UUID) (bool, error) {
	product, err := r.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if product.MainImageID != nil && *product.MainImageID != deletedImageID {
		return false, nil
	}

	first, err := r.repo.FirstImage(ctx, productID, deletedImageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if product.MainImageID == nil {
				return false, nil
			}
			return false, r.repo.SetMainImage(ctx, productID, nil)
		}
		return false, err
	}

	if err := r.repo.SetMainImage(ctx, productID, &first.ID); err != nil {
		return false, err
	}
	return true, nil
}
