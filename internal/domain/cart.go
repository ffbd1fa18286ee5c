package domain

// OrderType selects which of the two session carts is active.
type OrderType string

const (
	OrderTypePerItem OrderType = "per-item"
	OrderTypePerBag  OrderType = "per-bag"
)

func (t OrderType) Valid() bool {
	return t == OrderTypePerItem || t == OrderTypePerBag
}

// CartLine is one catalog entry with a quantity. A line never exists
// with quantity < 1; the cart manager deletes it instead.
type CartLine struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart holds lines in insertion order, unique per item id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Total is the sum of price*quantity over all lines.
func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines.
func (c Cart) Count() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}
