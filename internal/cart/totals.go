package cart

import "github.com/shopspring/decimal"

// Totals is the last computed cart summary. It is a snapshot taken at
// calculation time, not a live view of the item list: TotalItemCount reflects
// the quantities as of the last calculation and can go stale relative to the
// current items.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	FinalTotal      decimal.Decimal `json:"final_total"`
	TotalItemCount  int             `json:"total_item_count"`
	// SummaryReady is true only after a successful calculation; it is reset
	// when the cart is cleared or becomes empty, never by a plain add.
	SummaryReady bool `json:"summary_ready"`
}
