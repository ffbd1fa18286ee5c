package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleanly/internal/domain"
)

type memWriter struct {
	items map[string]domain.CatalogItem
	bags  map[string]domain.BagService
}

func (w *memWriter) UpsertItem(_ context.Context, item domain.CatalogItem) error {
	w.items[item.ID] = item
	return nil
}

func (w *memWriter) UpsertBag(_ context.Context, bag domain.BagService) error {
	w.bags[bag.ID] = bag
	return nil
}

func TestApplyUpsertsWholeCatalog(t *testing.T) {
	w := &memWriter{items: map[string]domain.CatalogItem{}, bags: map[string]domain.BagService{}}
	require.NoError(t, Apply(context.Background(), w))

	assert.Len(t, w.items, len(Items))
	assert.Len(t, w.bags, len(Bags))

	assert.Equal(t, int64(150), w.items["shirt"].Price)
	assert.Equal(t, int64(800), w.items["suit"].Price)
	assert.Equal(t, domain.CategoryDryCleaning, w.items["suit"].Category)
	assert.Equal(t, int64(1200), w.bags["delicates-bag"].Price)
}

func TestCatalogEntriesAreWellFormed(t *testing.T) {
	seenItems := map[string]bool{}
	for _, it := range Items {
		assert.False(t, seenItems[it.ID], "duplicate item id %s", it.ID)
		seenItems[it.ID] = true
		assert.True(t, it.Category.Valid(), "item %s has unknown category", it.ID)
		assert.Positive(t, it.Price, "item %s", it.ID)
	}

	seenBags := map[string]bool{}
	for _, b := range Bags {
		assert.False(t, seenBags[b.ID], "duplicate bag id %s", b.ID)
		seenBags[b.ID] = true
		assert.True(t, b.Category.Valid(), "bag %s has unknown category", b.ID)
		assert.Positive(t, b.Price, "bag %s", b.ID)
		assert.NotEmpty(t, b.Description, "bag %s", b.ID)
	}
}
