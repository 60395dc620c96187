package service

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator issues millisecond-timestamp ids. When the clock has not moved
// past the last issued id it hands out last+1, so ids are unique and strictly
// increasing for the lifetime of the generator.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}
