package cart

// Snapshot is an immutable view of the whole store, published to subscribers
// after every operation. Version grows by one per publication, so observers
// can order and deduplicate updates.
type Snapshot struct {
	Version uint64 `json:"version"`

	TitleDraft    string   `json:"title_draft"`
	PriceDraft    string   `json:"price_draft"`
	QuantityDraft string   `json:"quantity_draft"`
	CategoryDraft Category `json:"category_draft"`

	Items  []Item `json:"items"`
	Totals Totals `json:"totals"`

	Notification      *Notification `json:"notification,omitempty"`
	ValidationMessage string        `json:"validation_message,omitempty"`
	PendingRemoval    *Item         `json:"pending_removal,omitempty"`
	ClearPending      bool          `json:"clear_pending"`
}

// Snapshot copies out the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Version:           s.version,
		TitleDraft:        s.titleDraft,
		PriceDraft:        s.priceDraft,
		QuantityDraft:     s.quantityDraft,
		CategoryDraft:     s.categoryDraft,
		Items:             make([]Item, len(s.items)),
		Totals:            s.totals,
		ValidationMessage: s.validationMessage,
		ClearPending:      s.clearPending,
	}
	copy(snap.Items, s.items)
	if s.notification != nil {
		n := *s.notification
		snap.Notification = &n
	}
	if s.pendingRemoval != nil {
		it := *s.pendingRemoval
		snap.PendingRemoval = &it
	}
	return snap
}

// Subscribe registers fn to receive a Snapshot after every operation. It
// returns a cancel func. Callbacks run synchronously on the mutating call, so
// they must not call back into the store.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *Store) publish() {
	s.version++
	if len(s.subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.subs {
		fn(snap)
	}
}
