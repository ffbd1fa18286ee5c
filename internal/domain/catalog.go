package domain

// Category partitions the service catalog.
type Category string

const (
	CategoryWashFold     Category = "wash-fold"
	CategoryDryCleaning  Category = "dry-cleaning"
	CategoryIroning      Category = "ironing"
	CategoryShoeCleaning Category = "shoe-cleaning"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryWashFold,
	CategoryDryCleaning,
	CategoryIroning,
	CategoryShoeCleaning,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CatalogItem is a per-garment price list entry. Prices are whole KSH;
// the service is single-currency so no minor units are tracked.
type CatalogItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Category Category `json:"category"`
}

// BagService is a flat-rate bundle: one price per bag regardless of
// how many garments go into it.
type BagService struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
}
