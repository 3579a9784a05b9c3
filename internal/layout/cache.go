package layout

import "github.com/agentviz/agentviz/internal/graph"

// PositionCache carries node positions and velocities across snapshots so a
// refresh does not re-randomize the whole layout. Seed is called before
// Simulate to overwrite the fresh random placement of any node whose ID was
// present in the previous pass; Store is called after Simulate to record
// the settled layout.
//
// The cache is optional. Without it every snapshot starts from fresh random
// positions, which is the literal single-pass behavior but makes a live
// view jitter on each refresh.
type PositionCache struct {
	entries map[string]cacheEntry
}

type cacheEntry struct {
	pos graph.Point
	vel graph.Point
}

// NewPositionCache returns an empty cache.
func NewPositionCache() *PositionCache {
	return &PositionCache{entries: make(map[string]cacheEntry)}
}

// Seed overwrites the positions of nodes seen in a previous pass with their
// cached positions and velocities. Genuinely new nodes keep their random
// placement.
func (c *PositionCache) Seed(g *graph.Graph) {
	for i := range g.Nodes {
		if e, ok := c.entries[g.Nodes[i].ID]; ok {
			g.Nodes[i].Pos = e.pos
			g.Nodes[i].Vel = e.vel
		}
	}
}

// Store records the settled layout. IDs no longer present are evicted so
// the cache tracks only the current population.
func (c *PositionCache) Store(g *graph.Graph) {
	fresh := make(map[string]cacheEntry, len(g.Nodes))
	for i := range g.Nodes {
		fresh[g.Nodes[i].ID] = cacheEntry{pos: g.Nodes[i].Pos, vel: g.Nodes[i].Vel}
	}
	c.entries = fresh
}

// Len returns the number of cached node positions.
func (c *PositionCache) Len() int {
	return len(c.entries)
}
