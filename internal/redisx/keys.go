package redisx

import "time"

const (
	// Idempotent add-item: idem:cart:item:add:{request_id} -> item_id
	KeyIdemAddItem = "idem:cart:item:add:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLDedup       = 48 * time.Hour
)
