package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libromundo/bookcart/internal/cart"
)

// Cart pairs a cart store with the lock that serializes access to it. The
// store itself is a single-actor state machine; this is the single actor.
type Cart struct {
	ID string

	mu       sync.Mutex
	store    *cart.Store
	lastSeen time.Time
}

// Do runs fn with exclusive access to the cart's store.
func (c *Cart) Do(fn func(*cart.Store)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.store)
}

// Manager keeps one in-memory cart per session id and drops carts that have
// been idle longer than the TTL. Nothing survives a restart.
type Manager struct {
	ttl time.Duration

	mu    sync.Mutex
	carts map[string]*Cart
	now   func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:   ttl,
		carts: make(map[string]*Cart),
		now:   time.Now,
	}
}

// Create opens a fresh cart session.
func (m *Manager) Create() *Cart {
	c := &Cart{
		ID:       uuid.NewString(),
		store:    cart.NewStore(),
		lastSeen: m.now(),
	}
	m.mu.Lock()
	m.carts[c.ID] = c
	m.mu.Unlock()
	return c
}

// Get returns the cart for id and refreshes its idle clock.
func (m *Manager) Get(id string) (*Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[id]
	if !ok {
		return nil, false
	}
	c.mu.Lock()
	c.lastSeen = m.now()
	c.mu.Unlock()
	return c, true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

// Start runs the idle sweep until ctx is done.
func (m *Manager) Start(ctx context.Context, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := m.sweep(); n > 0 {
					log.Printf("expired %d idle cart session(s)", n)
				}
			}
		}
	}()
}

func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, c := range m.carts {
		c.mu.Lock()
		idle := c.lastSeen.Before(cutoff)
		c.mu.Unlock()
		if idle {
			delete(m.carts, id)
			n++
		}
	}
	return n
}
