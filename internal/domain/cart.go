package domain

// CartItem is one purchasable line in a visitor's cart, keyed by ID.
// Amounts are integers in the smallest display unit; UnitPrice 0 means
// "price unavailable, contact for quote".
type CartItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Cart is the persisted cart slot: line items in first-add order plus the
// sidebar visibility flag.
type Cart struct {
	Items  []CartItem `json:"items"`
	IsOpen bool       `json:"isOpen"`
}

// Total sums unitPrice*quantity over all lines. Recomputed on every call so
// it reflects the latest mutation.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}
