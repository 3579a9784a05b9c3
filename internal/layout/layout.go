// Package layout runs the force-directed simulation that turns a freshly
// built graph into stable 2D positions.
//
// The simulation is synchronous and bounded: it always runs exactly
// Iterations passes and never exits early, so worst-case cost is
// O(Iterations * (n^2 + e)). Callers rendering interactively should cap
// node counts; replacing pairwise repulsion with a spatial index
// (quadtree/Barnes-Hut) would preserve the per-iteration force model at
// larger scales.
package layout

import (
	"math"

	"github.com/agentviz/agentviz/internal/graph"
)

// Simulation constants. These are fixed tuning values, not configuration:
// changing them changes the layout contract.
const (
	// Iterations is the fixed number of simulation passes.
	Iterations = 50

	// RepulsionRadius is the distance under which two nodes repel.
	RepulsionRadius = 100.0
	// RepulsionStrength scales the repulsion force.
	RepulsionStrength = 0.1

	// SpringLength is the rest length of an edge spring.
	SpringLength = 80.0
	// SpringStiffness scales the spring force.
	SpringStiffness = 0.05

	// CenteringStrength pulls every node toward the viewport center.
	CenteringStrength = 0.01

	// Damping decays velocity once per iteration.
	Damping = 0.8

	// BoundaryMargin keeps clamped positions inside the viewport edge.
	BoundaryMargin = 30.0

	// minDistance substitutes for a zero distance between coincident
	// nodes so forces stay finite.
	minDistance = 1.0
)

// Viewport is the drawable area the layout is bounded to.
type Viewport struct {
	Width  float64
	Height float64
}

// Simulate runs the full force simulation over g, mutating node positions
// in place. Given the same starting positions, node set, edge set, and
// viewport, two runs produce identical final positions.
func Simulate(g *graph.Graph, vp Viewport) {
	nodes := g.Nodes
	cx := vp.Width / 2
	cy := vp.Height / 2

	for iter := 0; iter < Iterations; iter++ {
		// Pairwise repulsion.
		for i := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				dx := nodes[j].Pos.X - nodes[i].Pos.X
				dy := nodes[j].Pos.Y - nodes[i].Pos.Y
				d := math.Hypot(dx, dy)
				if d == 0 {
					d = minDistance
				}
				if d >= RepulsionRadius {
					continue
				}
				f := (RepulsionRadius - d) * RepulsionStrength
				fx := dx / d * f
				fy := dy / d * f
				nodes[i].Vel.X -= fx
				nodes[i].Vel.Y -= fy
				nodes[j].Vel.X += fx
				nodes[j].Vel.Y += fy
			}
		}

		// Spring attraction along edges.
		for _, e := range g.Edges {
			src := &nodes[e.SourceIdx]
			dst := &nodes[e.TargetIdx]
			dx := dst.Pos.X - src.Pos.X
			dy := dst.Pos.Y - src.Pos.Y
			d := math.Hypot(dx, dy)
			if d == 0 {
				d = minDistance
			}
			f := (d - SpringLength) * SpringStiffness
			fx := dx / d * f
			fy := dy / d * f
			src.Vel.X += fx
			src.Vel.Y += fy
			dst.Vel.X -= fx
			dst.Vel.Y -= fy
		}

		// Centering, integration, damping, clamp.
		for i := range nodes {
			n := &nodes[i]
			n.Vel.X += (cx - n.Pos.X) * CenteringStrength
			n.Vel.Y += (cy - n.Pos.Y) * CenteringStrength

			n.Pos.X += n.Vel.X
			n.Pos.Y += n.Vel.Y
			n.Vel.X *= Damping
			n.Vel.Y *= Damping

			n.Pos.X = clamp(n.Pos.X, BoundaryMargin, vp.Width-BoundaryMargin)
			n.Pos.Y = clamp(n.Pos.Y, BoundaryMargin, vp.Height-BoundaryMargin)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
