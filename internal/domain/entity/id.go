package entity

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID prefixes used by the marketplace.
const (
	UserIDPrefix  = "user"
	ItemIDPrefix  = "item"
	OrderIDPrefix = "order"
)

// IDGenerator hands out identifiers. Implementations must never reissue an
// identifier for the same prefix during their lifetime.
type IDGenerator interface {
	Next(prefix string) string
}

// SequenceGenerator issues prefix_1, prefix_2, ... with an independent
// counter per prefix.
type SequenceGenerator struct {
	mu       sync.Mutex
	counters map[string]uint64
}

// NewSequenceGenerator returns a generator whose counters all start at 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: make(map[string]uint64)}
}

// Next returns the next identifier for prefix.
func (g *SequenceGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[prefix]++

	return prefix + "_" + strconv.FormatUint(g.counters[prefix], 10)
}

// Seed moves the counter for prefix forward so it never issues n or below.
// Used after loading persisted entities so fresh ids do not collide.
func (g *SequenceGenerator) Seed(prefix string, n uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.counters[prefix] < n {
		g.counters[prefix] = n
	}
}

// Observe seeds the counter of id's prefix from an id shaped prefix_N.
// Ids of any other shape are ignored.
func (g *SequenceGenerator) Observe(id string) {
	idx := strings.LastIndexByte(id, '_')
	if idx <= 0 {
		return
	}

	n, err := strconv.ParseUint(id[idx+1:], 10, 64)
	if err != nil {
		return
	}
	g.Seed(id[:idx], n)
}

// UUIDGenerator issues prefix_<uuid> identifiers.
type UUIDGenerator struct{}

// Next returns a fresh random identifier for prefix.
func (UUIDGenerator) Next(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Clock returns the current time. Injected so tests can pin timestamps.
type Clock func() time.Time

// Now returns the clock time, or time.Now for a nil clock.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}

	return c()
}
