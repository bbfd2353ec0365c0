package cart

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// User-facing messages. Validation messages surface through the alert channel,
// the rest through notifications.
const (
	msgTitleRequired    = "Book title is required."
	msgPriceQuantity    = "Price and quantity must be greater than zero."
	msgCategoryRequired = "A category must be selected."
	msgEmptyCart        = "At least one book is required to calculate the total."

	msgItemAdded   = "Book added to cart"
	msgItemRemoved = "Book removed from cart"
	msgCartCleared = "Cart cleared"
)

var (
	// optional digits, optional single point, at most two decimals
	priceDraftPattern    = regexp.MustCompile(`^\d*\.?\d{0,2}$`)
	quantityDraftPattern = regexp.MustCompile(`^\d*$`)
)

// Store owns all mutable cart state: the draft input fields, the item list,
// the last computed totals, and the pending notification, alert, and
// confirmation state. Every operation is synchronous and total; invalid input
// becomes a validation alert or is silently ignored, never an error.
//
// A Store is a single-actor state machine and is not safe for concurrent use;
// callers serialize access to it.
type Store struct {
	titleDraft    string
	priceDraft    string
	quantityDraft string
	categoryDraft Category

	nextItemID int
	items      []Item
	totals     Totals

	notification      *Notification
	validationMessage string
	pendingRemoval    *Item
	clearPending      bool

	version uint64
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewStore() *Store {
	return &Store{
		categoryDraft: CategoryNone,
		subs:          make(map[int]func(Snapshot)),
	}
}

// SetTitleDraft assigns the title draft unconditionally.
func (s *Store) SetTitleDraft(text string) {
	s.titleDraft = text
	s.publish()
}

// SetPriceDraft assigns the price draft only when text is empty or a valid
// currency string with at most two decimals; anything else is silently
// dropped so the user can keep typing.
func (s *Store) SetPriceDraft(text string) {
	if text == "" || priceDraftPattern.MatchString(text) {
		s.priceDraft = text
		s.publish()
	}
}

// SetQuantityDraft assigns the quantity draft only when text is empty or all
// digits.
func (s *Store) SetQuantityDraft(text string) {
	if text == "" || quantityDraftPattern.MatchString(text) {
		s.quantityDraft = text
		s.publish()
	}
}

// SetCategoryDraft assigns the category draft unconditionally.
func (s *Store) SetCategoryDraft(c Category) {
	s.categoryDraft = c
	s.publish()
}

// AddItem validates the drafts in order and, on the first failure, raises a
// validation alert without touching the cart. On success it appends a new item,
// emits a success notification, clears the three text drafts (the category
// draft is kept), and recomputes totals only when a summary is currently
// visible.
func (s *Store) AddItem() {
	price := parsePrice(s.priceDraft)
	quantity := parseQuantity(s.quantityDraft)

	if strings.TrimSpace(s.titleDraft) == "" {
		s.validationMessage = msgTitleRequired
		s.publish()
		return
	}
	if price.Sign() <= 0 && quantity <= 0 {
		s.validationMessage = msgPriceQuantity
		s.publish()
		return
	}
	if s.categoryDraft == CategoryNone {
		s.validationMessage = msgCategoryRequired
		s.publish()
		return
	}

	s.nextItemID++
	s.items = append(s.items, Item{
		ID:        s.nextItemID,
		Title:     strings.TrimSpace(s.titleDraft),
		UnitPrice: price,
		Quantity:  quantity,
		Category:  s.categoryDraft,
	})

	s.notification = &Notification{Message: msgItemAdded, Severity: SeveritySuccess}

	s.titleDraft = ""
	s.priceDraft = ""
	s.quantityDraft = ""

	if s.totals.SummaryReady {
		// keep the add notification; only the totals refresh
		s.recompute()
	}
	s.publish()
}

// CalculateTotal recomputes the summary and emits the resulting discount
// notification. With an empty cart it raises a validation alert and marks the
// existing summary not ready instead.
func (s *Store) CalculateTotal() {
	if len(s.items) == 0 {
		s.validationMessage = msgEmptyCart
		s.totals.SummaryReady = false
		s.publish()
		return
	}
	s.notification = s.recompute()
	s.publish()
}

// recompute replaces the totals snapshot from the current item list and
// returns the matching discount-tier notification. Callers decide whether the
// notification is shown.
func (s *Store) recompute() *Notification {
	subtotal := decimal.Zero
	count := 0
	for _, it := range s.items {
		subtotal = subtotal.Add(it.LineSubtotal())
		count += it.Quantity
	}

	tier := TierFor(count)
	discount := subtotal.Mul(decimal.NewFromInt(int64(tier.Percent))).Div(decimal.NewFromInt(100))

	s.totals = Totals{
		Subtotal:        subtotal,
		DiscountPercent: tier.Percent,
		DiscountAmount:  discount,
		FinalTotal:      subtotal.Sub(discount),
		TotalItemCount:  count,
		SummaryReady:    true,
	}

	message := tier.Template
	if tier.Percent > 0 {
		message = fmt.Sprintf(tier.Template, discount.StringFixed(2))
	}
	return &Notification{Message: message, Severity: tier.Severity}
}

// RequestRemoveItem marks the item with the given id as pending removal. The
// cart itself is untouched until the confirmation resolves. Unknown ids are
// ignored.
func (s *Store) RequestRemoveItem(id int) {
	for _, it := range s.items {
		if it.ID == id {
			pending := it
			s.pendingRemoval = &pending
			s.publish()
			return
		}
	}
}

// ResolveRemoveItem finishes the removal confirmation. The pending marker is
// always cleared; the item is removed only when confirmed. After a confirmed
// removal the totals refresh when a summary was visible, or reset when the
// cart emptied, and a removal warning becomes the current notification either
// way.
func (s *Store) ResolveRemoveItem(confirmed bool) {
	item := s.pendingRemoval
	s.pendingRemoval = nil

	if !confirmed || item == nil {
		s.publish()
		return
	}

	kept := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	s.items = kept

	if s.totals.SummaryReady {
		s.recompute()
	} else if len(s.items) == 0 {
		s.totals = Totals{}
	}

	s.notification = &Notification{Message: msgItemRemoved, Severity: SeverityWarning}
	s.publish()
}

// RequestClearCart marks the full clear as pending confirmation.
func (s *Store) RequestClearCart() {
	s.clearPending = true
	s.publish()
}

// ResolveClearCart finishes the clear confirmation. When confirmed it empties
// the cart, resets every draft (category back to the sentinel), resets the
// totals, and emits an informational notification.
func (s *Store) ResolveClearCart(confirmed bool) {
	s.clearPending = false
	if confirmed {
		s.items = nil
		s.titleDraft = ""
		s.priceDraft = ""
		s.quantityDraft = ""
		s.categoryDraft = CategoryNone
		s.totals = Totals{}
		s.notification = &Notification{Message: msgCartCleared, Severity: SeverityInfo}
	}
	s.publish()
}

// DismissNotification acknowledges the current notification.
func (s *Store) DismissNotification() {
	s.notification = nil
	s.publish()
}

// DismissValidationAlert acknowledges the current validation alert.
func (s *Store) DismissValidationAlert() {
	s.validationMessage = ""
	s.publish()
}

// parsePrice mirrors the draft leniency: anything unparseable counts as zero.
func parsePrice(text string) decimal.Decimal {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseQuantity(text string) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return n
}
