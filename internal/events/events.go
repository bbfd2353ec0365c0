package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/libromundo/bookcart/internal/cart"
)

const (
	TypeItemAdded        = "CartItemAdded"
	TypeItemRemoved      = "CartItemRemoved"
	TypeCartCleared      = "CartCleared"
	TypeTotalsCalculated = "CartTotalsCalculated"
)

// Envelope wraps every cart event on the wire.
type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g. "cart-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // cart id
	Payload       json.RawMessage `json:"payload"`
}

// ---- payloads per event type ----

type ItemAddedPayload struct {
	CartID    string          `json:"cart_id"`
	ItemID    int             `json:"item_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Category  cart.Category   `json:"category"`
}

type ItemRemovedPayload struct {
	CartID string `json:"cart_id"`
	ItemID int    `json:"item_id"`
	Title  string `json:"title"`
}

type CartClearedPayload struct {
	CartID       string `json:"cart_id"`
	ItemsDropped int    `json:"items_dropped"`
}

type TotalsCalculatedPayload struct {
	CartID          string          `json:"cart_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	FinalTotal      decimal.Decimal `json:"final_total"`
	TotalItemCount  int             `json:"total_item_count"`
}
