package template

import (
	"sync"
	"time"
)

// MillisIDs issues epoch-millisecond identifiers that never repeat within a
// process: when two records are created in the same millisecond the second
// one gets the next free value.
type MillisIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewMillisIDs uses now as the clock; nil means time.Now.
func NewMillisIDs(now func() time.Time) *MillisIDs {
	if now == nil {
		now = time.Now
	}
	return &MillisIDs{now: now}
}

func (g *MillisIDs) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
