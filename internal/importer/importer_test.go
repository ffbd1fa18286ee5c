package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleanly/internal/domain"
)

type memWriter struct {
	items []domain.CatalogItem
	bags  []domain.BagService
}

func (w *memWriter) UpsertItem(_ context.Context, item domain.CatalogItem) error {
	w.items = append(w.items, item)
	return nil
}

func (w *memWriter) UpsertBag(_ context.Context, bag domain.BagService) error {
	w.bags = append(w.bags, bag)
	return nil
}

func TestRunImportsItemsAndBags(t *testing.T) {
	csv := strings.Join([]string{
		"kind,id,name,description,price,category",
		"item,shirt,Shirt,,150,wash-fold",
		"item,suit,Suit,,800,dry-cleaning",
		"bag,casuals-bag,Casuals Bag,Everyday clothes,800,wash-fold",
	}, "\n")

	w := &memWriter{}
	imported, err := NewCSVImporter(strings.NewReader(csv), w).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, imported)
	require.Len(t, w.items, 2)
	require.Len(t, w.bags, 1)
	assert.Equal(t, int64(150), w.items[0].Price)
	assert.Equal(t, domain.CategoryDryCleaning, w.items[1].Category)
	assert.Equal(t, "Everyday clothes", w.bags[0].Description)
}

func TestRunRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "bad price", row: "item,shirt,Shirt,,abc,wash-fold"},
		{name: "negative price", row: "item,shirt,Shirt,,-5,wash-fold"},
		{name: "unknown category", row: "item,shirt,Shirt,,150,cooking"},
		{name: "unknown kind", row: "thing,shirt,Shirt,,150,wash-fold"},
		{name: "missing id", row: "item,,Shirt,,150,wash-fold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "kind,id,name,description,price,category\n" + tt.row
			_, err := NewCSVImporter(strings.NewReader(csv), &memWriter{}).Run(context.Background())
			require.Error(t, err)
		})
	}
}

func TestRunToleratesHeaderOrder(t *testing.T) {
	csv := strings.Join([]string{
		"price,category,name,id,kind",
		"300,shoe-cleaning,Leather Shoes,leather-shoes,item",
	}, "\n")

	w := &memWriter{}
	imported, err := NewCSVImporter(strings.NewReader(csv), w).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Len(t, w.items, 1)
	assert.Equal(t, "leather-shoes", w.items[0].ID)
}
