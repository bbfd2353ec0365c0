package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libromundo/bookcart/internal/cart"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	c := m.Create()
	require.NotEmpty(t, c.ID)

	got, ok := m.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)

	_, ok = m.Get("nope")
	assert.False(t, ok)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager(time.Hour)
	a := m.Create()
	b := m.Create()

	a.Do(func(st *cart.Store) {
		st.SetTitleDraft("Quijote")
		st.SetPriceDraft("80.00")
		st.SetQuantityDraft("1")
		st.SetCategoryDraft(cart.CategoryFiction)
		st.AddItem()
	})

	var aLen, bLen int
	a.Do(func(st *cart.Store) { aLen = len(st.Snapshot().Items) })
	b.Do(func(st *cart.Store) { bLen = len(st.Snapshot().Items) })
	assert.Equal(t, 1, aLen)
	assert.Zero(t, bLen)
}

func TestManager_SweepExpiresIdleCarts(t *testing.T) {
	m := NewManager(10 * time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	stale := m.Create()
	now = now.Add(11 * time.Minute)
	fresh := m.Create()

	assert.Equal(t, 1, m.sweep())
	assert.Equal(t, 1, m.Len())

	_, ok := m.Get(stale.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
}

func TestManager_GetRefreshesIdleClock(t *testing.T) {
	m := NewManager(10 * time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	c := m.Create()
	now = now.Add(9 * time.Minute)
	_, ok := m.Get(c.ID)
	require.True(t, ok)

	now = now.Add(9 * time.Minute)
	assert.Zero(t, m.sweep(), "recently touched cart must survive")
}
