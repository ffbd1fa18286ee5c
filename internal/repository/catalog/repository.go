package catalog

import (
	"context"

	"kleanly/internal/domain"
)

// Repository reads the immutable service catalog. Writes happen only
// through migrations, the seed command, and the price-list importer.
type Repository interface {
	ListItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error)
	ListBags(ctx context.Context, category domain.Category) ([]domain.BagService, error)
	GetItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	GetBag(ctx context.Context, id string) (*domain.BagService, error)
}

// Writer is the upsert side used by seed and import tooling.
type Writer interface {
	UpsertItem(ctx context.Context, item domain.CatalogItem) error
	UpsertBag(ctx context.Context, bag domain.BagService) error
}

// ReadWriter combines both sides for the Postgres implementation.
type ReadWriter interface {
	Repository
	Writer
}
