// Package view orchestrates one render pass: snapshot in, drawing calls
// out. It owns the loading and empty short-circuits and the snapshot
// memoization; everything else is delegated to graph, layout, scene, and
// render.
package view

import (
	"math/rand"

	"github.com/agentviz/agentviz/internal/agent"
	"github.com/agentviz/agentviz/internal/graph"
	"github.com/agentviz/agentviz/internal/layout"
	"github.com/agentviz/agentviz/internal/render"
	"github.com/agentviz/agentviz/internal/scene"
)

// State describes what a render pass produced.
type State string

// Render pass outcomes.
const (
	StateRendered State = "rendered"
	StateEmpty    State = "empty"
	StateLoading  State = "loading"
	StateSkipped  State = "skipped"
)

// Result summarizes one render pass.
type Result struct {
	State State `json:"state"`
	Nodes int   `json:"nodes"`
	Edges int   `json:"edges"`
}

// View drives the model -> simulate -> scene -> draw pipeline for a fixed
// viewport. A View is single-threaded: each call runs the full synchronous
// pipeline and returns; a newer snapshot simply starts the next pass.
type View struct {
	vp   layout.Viewport
	seed int64

	// cache, when set, carries node positions across snapshots so a
	// refresh does not re-randomize the layout of unchanged nodes.
	cache *layout.PositionCache

	lastFingerprint uint64
	hasRendered     bool
}

// Option configures a View.
type Option func(*View)

// WithPositionCache enables cross-snapshot position reuse.
func WithPositionCache(c *layout.PositionCache) Option {
	return func(v *View) {
		v.cache = c
	}
}

// New creates a View for the given viewport. The seed drives initial node
// placement; identical seeds give identical layouts for identical
// snapshots.
func New(vp layout.Viewport, seed int64, opts ...Option) *View {
	v := &View{vp: vp, seed: seed}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Render runs one pass over the snapshot onto the surface.
//
// Short-circuits, in order: when loading is set a loading indicator is
// drawn and the pipeline is skipped entirely; a snapshot whose fingerprint
// matches the previous pass draws nothing and reports StateSkipped; an
// empty snapshot draws a placeholder message. Empty snapshots are memoized
// like any other, so a repeatedly polled idle network skips instead of
// redrawing the placeholder.
func (v *View) Render(snap *agent.Snapshot, loading bool, surface render.Surface) Result {
	if loading {
		v.drawCentered(surface, "Loading agent network…")
		return Result{State: StateLoading}
	}

	var fp uint64
	if snap != nil {
		fp = snap.Fingerprint()
	}
	if v.hasRendered && fp == v.lastFingerprint {
		return Result{State: StateSkipped}
	}

	if snap == nil || snap.IsEmpty() {
		v.drawCentered(surface, "No agents connected")
		v.lastFingerprint = fp
		v.hasRendered = true
		return Result{State: StateEmpty}
	}

	rng := rand.New(rand.NewSource(v.seed))
	g := graph.Build(snap, v.vp.Width, v.vp.Height, rng)
	if v.cache != nil {
		v.cache.Seed(g)
	}
	layout.Simulate(g, v.vp)
	if v.cache != nil {
		v.cache.Store(g)
	}

	render.Draw(scene.Build(g), surface)

	v.lastFingerprint = fp
	v.hasRendered = true
	return Result{State: StateRendered, Nodes: len(g.Nodes), Edges: len(g.Edges)}
}

// Invalidate clears the memoized fingerprint so the next Render always
// redraws, e.g. after switching output surfaces.
func (v *View) Invalidate() {
	v.hasRendered = false
}

func (v *View) drawCentered(surface render.Surface, msg string) {
	surface.DrawText(graph.Point{X: v.vp.Width / 2, Y: v.vp.Height / 2}, msg)
}
