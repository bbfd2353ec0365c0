package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/libromundo/bookcart/internal/cart"
	"github.com/libromundo/bookcart/internal/events"
	kafkax "github.com/libromundo/bookcart/internal/kafka"
	"github.com/libromundo/bookcart/internal/redisx"
	"github.com/libromundo/bookcart/internal/session"
)

// Publisher is what the handler needs from the Kafka producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// CartsHandler maps the HTTP surface 1:1 onto cart store operations. Producer
// and Redis may be nil; event publishing and add-item idempotency degrade to
// no-ops then.
type CartsHandler struct {
	Sessions *session.Manager
	Producer Publisher
	Redis    *redis.Client
	Service  string
}

type CreateCartResp struct {
	CartID string `json:"cart_id"`
}

type DraftsPatchReq struct {
	Title    *string `json:"title"`
	Price    *string `json:"price"`
	Quantity *string `json:"quantity"`
	Category *string `json:"category"`
}

type AddItemResp struct {
	Added      bool          `json:"added"`
	ItemID     int           `json:"item_id,omitempty"`
	Idempotent bool          `json:"idempotent,omitempty"`
	Cart       cart.Snapshot `json:"cart"`
}

type ResolveReq struct {
	Confirmed bool `json:"confirmed"`
}

func (h *CartsHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Post("/carts", h.createCart)
		r.Get("/carts/{id}", h.getCart)
		r.Patch("/carts/{id}/drafts", h.patchDrafts)
		r.Post("/carts/{id}/items", h.addItem)
		r.Post("/carts/{id}/total", h.calculateTotal)
		r.Post("/carts/{id}/items/{itemID}/remove-request", h.requestRemove)
		r.Post("/carts/{id}/remove-resolution", h.resolveRemove)
		r.Post("/carts/{id}/clear-request", h.requestClear)
		r.Post("/carts/{id}/clear-resolution", h.resolveClear)
		r.Post("/carts/{id}/notification/ack", h.ackNotification)
		r.Post("/carts/{id}/alert/ack", h.ackAlert)
	})
	r.Get("/carts/{id}/watch", h.watchCart)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *CartsHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Cart, bool) {
	c, ok := h.Sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart not found"})
		return nil, false
	}
	return c, true
}

func (h *CartsHandler) createCart(w http.ResponseWriter, r *http.Request) {
	c := h.Sessions.Create()
	writeJSON(w, http.StatusCreated, CreateCartResp{CartID: c.ID})
}

func (h *CartsHandler) getCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) { snap = st.Snapshot() })
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) patchDrafts(w http.ResponseWriter, r *http.Request) {
	var req DraftsPatchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Category != nil {
		cat := cart.Category(*req.Category)
		if cat != cart.CategoryNone && !cat.Valid() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
			return
		}
	}
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		if req.Title != nil {
			st.SetTitleDraft(*req.Title)
		}
		if req.Price != nil {
			st.SetPriceDraft(*req.Price)
		}
		if req.Quantity != nil {
			st.SetQuantityDraft(*req.Quantity)
		}
		if req.Category != nil {
			st.SetCategoryDraft(cart.Category(*req.Category))
		}
		snap = st.Snapshot()
	})
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) addItem(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Retry-safe adds: a client-supplied request id short-circuits replays.
	reqID := r.Header.Get("X-Request-Id")
	if reqID != "" && h.Redis != nil {
		idemKey := fmt.Sprintf(redisx.KeyIdemAddItem, reqID)
		if prev, err := h.Redis.Get(ctx, idemKey).Result(); err == nil {
			itemID, _ := strconv.Atoi(prev)
			var snap cart.Snapshot
			c.Do(func(st *cart.Store) { snap = st.Snapshot() })
			writeJSON(w, http.StatusOK, AddItemResp{Added: true, ItemID: itemID, Idempotent: true, Cart: snap})
			return
		}
	}

	var before, after cart.Snapshot
	c.Do(func(st *cart.Store) {
		before = st.Snapshot()
		st.AddItem()
		after = st.Snapshot()
	})

	added := len(after.Items) > len(before.Items)
	resp := AddItemResp{Added: added, Cart: after}
	if !added {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	item := after.Items[len(after.Items)-1]
	resp.ItemID = item.ID

	if reqID != "" && h.Redis != nil {
		idemKey := fmt.Sprintf(redisx.KeyIdemAddItem, reqID)
		_ = h.Redis.Set(ctx, idemKey, strconv.Itoa(item.ID), redisx.TTLIdempotency).Err()
	}

	h.publishEvent(r, c.ID, events.TypeItemAdded, events.ItemAddedPayload{
		CartID:    c.ID,
		ItemID:    item.ID,
		Title:     item.Title,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
		Category:  item.Category,
	})
	writeJSON(w, http.StatusOK, resp)
}

func (h *CartsHandler) calculateTotal(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		st.CalculateTotal()
		snap = st.Snapshot()
	})
	if snap.Totals.SummaryReady {
		h.publishEvent(r, c.ID, events.TypeTotalsCalculated, events.TotalsCalculatedPayload{
			CartID:          c.ID,
			Subtotal:        snap.Totals.Subtotal,
			DiscountPercent: snap.Totals.DiscountPercent,
			DiscountAmount:  snap.Totals.DiscountAmount,
			FinalTotal:      snap.Totals.FinalTotal,
			TotalItemCount:  snap.Totals.TotalItemCount,
		})
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) requestRemove(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		st.RequestRemoveItem(itemID)
		snap = st.Snapshot()
	})
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) resolveRemove(w http.ResponseWriter, r *http.Request) {
	var req ResolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var pending *cart.Item
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		pending = st.Snapshot().PendingRemoval
		st.ResolveRemoveItem(req.Confirmed)
		snap = st.Snapshot()
	})
	if req.Confirmed && pending != nil {
		h.publishEvent(r, c.ID, events.TypeItemRemoved, events.ItemRemovedPayload{
			CartID: c.ID,
			ItemID: pending.ID,
			Title:  pending.Title,
		})
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) requestClear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		st.RequestClearCart()
		snap = st.Snapshot()
	})
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) resolveClear(w http.ResponseWriter, r *http.Request) {
	var req ResolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	dropped := 0
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		dropped = len(st.Snapshot().Items)
		st.ResolveClearCart(req.Confirmed)
		snap = st.Snapshot()
	})
	if req.Confirmed {
		h.publishEvent(r, c.ID, events.TypeCartCleared, events.CartClearedPayload{
			CartID:       c.ID,
			ItemsDropped: dropped,
		})
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) ackNotification(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		st.DismissNotification()
		snap = st.Snapshot()
	})
	writeJSON(w, http.StatusOK, snap)
}

func (h *CartsHandler) ackAlert(w http.ResponseWriter, r *http.Request) {
	c, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var snap cart.Snapshot
	c.Do(func(st *cart.Store) {
		st.DismissValidationAlert()
		snap = st.Snapshot()
	})
	writeJSON(w, http.StatusOK, snap)
}

// watchCart streams snapshots over SSE so a UI can re-render on every store
// update without polling.
func (h *CartsHandler) watchCart(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}
	c, found := h.lookup(w, r)
	if !found {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates := make(chan cart.Snapshot, 16)
	var cancel func()
	c.Do(func(st *cart.Store) {
		updates <- st.Snapshot()
		cancel = st.Subscribe(func(snap cart.Snapshot) {
			// drop when the client lags; the next update supersedes anyway
			select {
			case updates <- snap:
			default:
			}
		})
	})
	defer c.Do(func(*cart.Store) { cancel() })

	for {
		select {
		case <-r.Context().Done():
			return
		case snap := <-updates:
			b, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func (h *CartsHandler) publishEvent(r *http.Request, cartID, eventType string, payload any) {
	if h.Producer == nil {
		return
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: cartID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(events.PartitionKey(cartID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
