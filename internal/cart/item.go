package cart

import "github.com/shopspring/decimal"

// Item is a book line in the cart. Ids are assigned by the store,
// monotonically increasing from 1, and never reused. Items are immutable once
// created.
type Item struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Category  Category        `json:"category"`
}

// LineSubtotal is UnitPrice × Quantity, computed on demand.
func (it Item) LineSubtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
