package geom

import (
	"sync"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/vec"
)

// DefaultCacheLimit bounds the number of memoized outlines.
const DefaultCacheLimit = 4096

// Key identifies one placement of one body. Bodies are immutable values, so
// the same key always denormalizes to the same outline.
type Key struct {
	Kind  uint8
	ID    uint64
	P     vec.Vector
	Angle float64
}

// Body is a local outline placed in the world.
type Body struct {
	Key      Key
	Geometry Polygon
}

// P returns the world position of the body.
func (b Body) P() vec.Vector {
	return b.Key.P
}

// Cache memoizes Denormalize per body placement.
// A nil *Cache computes every outline directly.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]Polygon
	limit   int
	hits    uint64
	misses  uint64
	resets  uint64
}

// CacheStats reports cache activity.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Resets  uint64
}

// NewCache creates a cache holding at most limit outlines.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = DefaultCacheLimit
	}
	return &Cache{
		entries: make(map[Key]Polygon),
		limit:   limit,
	}
}

// Denormalize returns the world-space outline of b.
func (c *Cache) Denormalize(b Body) Polygon {
	if c == nil {
		return Denormalize(b.Geometry, b.Key.P, b.Key.Angle)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if poly, ok := c.entries[b.Key]; ok {
		c.hits++
		return poly
	}
	c.misses++

	if len(c.entries) >= c.limit {
		c.entries = make(map[Key]Polygon)
		c.resets++
	}
	poly := Denormalize(b.Geometry, b.Key.P, b.Key.Angle)
	c.entries[b.Key] = poly
	return poly
}

// Reset drops every memoized outline.
func (c *Cache) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]Polygon)
	c.resets++
}

// Stats returns a snapshot of cache activity.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Resets:  c.resets,
	}
}

// Collide reports whether the outlines of a and b cross. Bodies whose
// centres are farther apart than broadPhase are rejected without the edge
// test.
func Collide(c *Cache, a, b Body, broadPhase float64) bool {
	if vec.Dist(a.P(), b.P()) > broadPhase {
		return false
	}
	return PolygonsCollide(c.Denormalize(a), c.Denormalize(b))
}
