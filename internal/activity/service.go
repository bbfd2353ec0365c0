// Package activity tails the cart event topic and keeps live per-cart
// counters. It is a pure observer: it never mutates carts and holds no
// durable state.
package activity

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/libromundo/bookcart/internal/events"
	kafkax "github.com/libromundo/bookcart/internal/kafka"
	"github.com/libromundo/bookcart/internal/redisx"
)

type CartStats struct {
	Adds         int
	Removals     int
	Clears       int
	Calculations int
	LastEventAt  time.Time
}

type Service struct {
	Redis       *redis.Client
	ServiceName string

	mu    sync.Mutex
	stats map[string]*CartStats
}

func New(rdb *redis.Client, name string) *Service {
	return &Service{
		Redis:       rdb,
		ServiceName: name,
		stats:       make(map[string]*CartStats),
	}
}

// HandleCartEvent is wired as the consumer handler.
func (s *Service) HandleCartEvent(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		return err
	}

	// dedup via Redis on event_id; redelivered events are no-ops
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		exists, _ := redisx.Exists(ctx, s.Redis, dkey)
		if exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[env.CorrelationID]
	if !ok {
		st = &CartStats{}
		s.stats[env.CorrelationID] = st
	}
	st.LastEventAt = env.OccurredAt

	switch env.EventType {
	case events.TypeItemAdded:
		st.Adds++
	case events.TypeItemRemoved:
		st.Removals++
	case events.TypeCartCleared:
		st.Clears++
	case events.TypeTotalsCalculated:
		st.Calculations++
	default:
		// unknown types are skipped, not failed, so the offset still commits
	}
	return nil
}

// Stats returns a copy of the counters for one cart.
func (s *Service) Stats(cartID string) (CartStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[cartID]
	if !ok {
		return CartStats{}, false
	}
	return *st, true
}

// StartReporting logs a one-line summary on an interval until ctx is done.
func (s *Service) StartReporting(ctx context.Context, every time.Duration) {
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				carts, adds, removals, clears, calcs := s.totals()
				log.Printf("activity: carts=%d adds=%d removals=%d clears=%d calculations=%d",
					carts, adds, removals, clears, calcs)
			}
		}
	}()
}

func (s *Service) totals() (carts, adds, removals, clears, calcs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	carts = len(s.stats)
	for _, st := range s.stats {
		adds += st.Adds
		removals += st.Removals
		clears += st.Clears
		calcs += st.Calculations
	}
	return
}
