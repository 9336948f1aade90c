package images

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestEnsureMainImageAssignsFirstByPosition(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	rule := NewRule(repo)

	product := mustCreateTestProduct(t, client)
	mustCreateTestImage(t, client, product.ID, 2)
	first := mustCreateTestImage(t, client, product.ID, 0)
	mustCreateTestImage(t, client, product.ID, 1)

	assigned, err := rule.EnsureMainImage(ctx, product.ID)
	if err != nil {
		t.Fatalf("ensure main image: %v", err)
	}
	if !assigned {
		t.Fatalf("expected an assignment")
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.MainImageID == nil || *reloaded.MainImageID != first.ID {
		t.Fatalf("expected lowest-position image as main, got %v", reloaded.MainImageID)
	}

	// Idempotent once a main image exists.
	assigned, err = rule.EnsureMainImage(ctx, product.ID)
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if assigned {
		t.Fatalf("expected no reassignment when main already set")
	}
}

func TestEnsureMainImageNoImagesIsNoop(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	rule := NewRule(repo)

	product := mustCreateTestProduct(t, client)

	assigned, err := rule.EnsureMainImage(ctx, product.ID)
	if err != nil {
		t.Fatalf("ensure main image: %v", err)
	}
	if assigned {
		t.Fatalf("expected no assignment without images")
	}
}

func TestEnsureMainImageOrphanedProductIsNoop(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	rule := NewRule(NewRepository(client.DB()))

	assigned, err := rule.EnsureMainImage(ctx, uuid.New())
	if err != nil {
		t.Fatalf("expected silent no-op for missing product, got %v", err)
	}
	if assigned {
		t.Fatalf("expected no assignment for missing product")
	}
}

func TestReassignAfterDeletePicksLowestRemaining(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	rule := NewRule(repo)

	product := mustCreateTestProduct(t, client)
	main := mustCreateTestImage(t, client, product.ID, 0)
	second := mustCreateTestImage(t, client, product.ID, 1)
	mustCreateTestImage(t, client, product.ID, 2)

	if err := repo.SetMainImage(ctx, product.ID, &main.ID); err != nil {
		t.Fatalf("set main: %v", err)
	}
	if err := repo.DeleteImage(ctx, main.ID); err != nil {
		t.Fatalf("delete main: %v", err)
	}

	assigned, err := rule.ReassignAfterDelete(ctx, product.ID, main.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !assigned {
		t.Fatalf("expected a reassignment")
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.MainImageID == nil || *reloaded.MainImageID != second.ID {
		t.Fatalf("expected next-lowest image as main, got %v", reloaded.MainImageID)
	}
}

func TestReassignAfterDeleteNonMainIsNoop(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	rule := NewRule(repo)

	product := mustCreateTestProduct(t, client)
	main := mustCreateTestImage(t, client, product.ID, 0)
	other := mustCreateTestImage(t, client, product.ID, 1)

	if err := repo.SetMainImage(ctx, product.ID, &main.ID); err != nil {
		t.Fatalf("set main: %v", err)
	}
	if err := repo.DeleteImage(ctx, other.ID); err != nil {
		t.Fatalf("delete other: %v", err)
	}

	assigned, err := rule.ReassignAfterDelete(ctx, product.ID, other.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if assigned {
		t.Fatalf("main image should be untouched when a non-main image is deleted")
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.MainImageID == nil || *reloaded.MainImageID != main.ID {
		t.Fatalf("expected original main to survive, got %v", reloaded.MainImageID)
	}
}

func TestReassignAfterDeleteLastImageClearsMain(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	repo := NewRepository(client.DB())
	rule := NewRule(repo)

	product := mustCreateTestProduct(t, client)
	only := mustCreateTestImage(t, client, product.ID, 0)

	if err := repo.SetMainImage(ctx, product.ID, &only.ID); err != nil {
		t.Fatalf("set main: %v", err)
	}
	if err := repo.DeleteImage(ctx, only.ID); err != nil {
		t.Fatalf("delete only image: %v", err)
	}

	assigned, err := rule.ReassignAfterDelete(ctx, product.ID, only.ID)
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if assigned {
		t.Fatalf("expected no assignment when no images remain")
	}

	reloaded, err := repo.FindProductByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.MainImageID != nil {
		t.Fatalf("expected cleared main image, got %v", reloaded.MainImageID)
	}
}

func TestReassignAfterDeleteOrphanedProductIsNoop(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)
	rule := NewRule(NewRepository(client.DB()))

	assigned, err := rule.ReassignAfterDelete(ctx, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("expected silent no-op for missing product, got %v", err)
	}
	if assigned {
		t.Fatalf("expected no assignment for missing product")
	}
}
