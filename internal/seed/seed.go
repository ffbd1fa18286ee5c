package seed

import (
	"context"
	"fmt"

	"kleanly/internal/domain"
	catalogrepo "kleanly/internal/repository/catalog"
)

// Items is the canonical per-garment price list in whole KSH.
var Items = []domain.CatalogItem{
	{ID: "shirt", Name: "Shirt", Price: 150, Category: domain.CategoryWashFold},
	{ID: "trouser", Name: "Trouser", Price: 200, Category: domain.CategoryWashFold},
	{ID: "dress", Name: "Dress", Price: 250, Category: domain.CategoryWashFold},
	{ID: "bedsheet", Name: "Bed Sheet", Price: 300, Category: domain.CategoryWashFold},
	{ID: "towel", Name: "Towel", Price: 100, Category: domain.CategoryWashFold},

	{ID: "suit", Name: "Suit", Price: 800, Category: domain.CategoryDryCleaning},
	{ID: "coat", Name: "Coat", Price: 600, Category: domain.CategoryDryCleaning},
	{ID: "blazer", Name: "Blazer", Price: 500, Category: domain.CategoryDryCleaning},
	{ID: "silk-dress", Name: "Silk Dress", Price: 700, Category: domain.CategoryDryCleaning},
	{ID: "tie", Name: "Tie", Price: 150, Category: domain.CategoryDryCleaning},

	{ID: "shirt-iron", Name: "Shirt (Iron)", Price: 80, Category: domain.CategoryIroning},
	{ID: "trouser-iron", Name: "Trouser (Iron)", Price: 100, Category: domain.CategoryIroning},
	{ID: "dress-iron", Name: "Dress (Iron)", Price: 120, Category: domain.CategoryIroning},
	{ID: "bedsheet-iron", Name: "Bed Sheet (Iron)", Price: 150, Category: domain.CategoryIroning},

	{ID: "leather-shoes", Name: "Leather Shoes", Price: 300, Category: domain.CategoryShoeCleaning},
	{ID: "sneakers", Name: "Sneakers", Price: 250, Category: domain.CategoryShoeCleaning},
	{ID: "boots", Name: "Boots", Price: 400, Category: domain.CategoryShoeCleaning},
	{ID: "sandals", Name: "Sandals", Price: 200, Category: domain.CategoryShoeCleaning},
}

// Bags is the canonical flat-rate bag bundle list.
var Bags = []domain.BagService{
	{ID: "casuals-bag", Name: "Casuals Bag", Description: "Everyday clothes - wash & fold service", Price: 800, Category: domain.CategoryWashFold},
	{ID: "delicates-bag", Name: "Delicates Bag", Description: "Smart wear - clean & press service", Price: 1200, Category: domain.CategoryDryCleaning},
	{ID: "home-bag", Name: "Home Linens Bag", Description: "Bedding & towels - wash & fold service", Price: 1000, Category: domain.CategoryWashFold},
	{ID: "press-bag", Name: "Press Only Bag", Description: "Clean items that need pressing only", Price: 600, Category: domain.CategoryIroning},
	{ID: "kids-uniforms-bag", Name: "Kids Uniforms Bag", Description: "School uniforms - wash & press service", Price: 700, Category: domain.CategoryWashFold},
}

// Apply upserts the canonical catalog. Idempotent via ON CONFLICT in
// the repository.
func Apply(ctx context.Context, repo catalogrepo.Writer) error {
	for _, it := range Items {
		if err := repo.UpsertItem(ctx, it); err != nil {
			return fmt.Errorf("upsert item %s: %w", it.ID, err)
		}
	}
	for _, b := range Bags {
		if err := repo.UpsertBag(ctx, b); err != nil {
			return fmt.Errorf("upsert bag %s: %w", b.ID, err)
		}
	}
	return nil
}
