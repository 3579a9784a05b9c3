// Package graph builds the node/edge model consumed by the layout engine.
//
// A Graph is constructed fresh from every snapshot: nodes get randomized
// initial positions inside the viewport margin and zero velocity, and
// connections whose endpoints do not resolve to a present agent are dropped
// silently. The Graph is consumed by one simulation pass and one render
// pass, then discarded.
package graph

import (
	"math/rand"

	"github.com/agentviz/agentviz/internal/agent"
)

// PlacementMargin keeps randomized initial positions away from the viewport
// edge.
const PlacementMargin = 50.0

// Point is a 2D coordinate or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one agent positioned in the layout. Pos and Vel are ephemeral
// simulation state, rebuilt on every snapshot.
type Node struct {
	ID              string
	Name            string
	Type            string
	Status          agent.Status
	Capabilities    []string
	Connections     int
	MessagesHandled int
	ResponseTime    float64

	Pos Point
	Vel Point
}

// Edge is a resolved connection between two present nodes. SourceIdx and
// TargetIdx index into Graph.Nodes so the simulator and renderer avoid map
// lookups in their inner loops.
type Edge struct {
	Source     string
	Target     string
	SourceIdx  int
	TargetIdx  int
	Type       agent.ConnectionType
	Status     agent.ConnectionStatus
	Method     string
	DurationMs int64
}

// Graph holds the node/edge model for one render pass.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[string]int // agent ID -> Nodes index
}

// Build constructs a Graph from a snapshot. Initial positions are drawn
// from rng uniformly inside the placement margin; identical seeds give
// identical placements. Duplicate agent IDs keep the last occurrence.
// Width and height are the viewport dimensions.
func Build(snap *agent.Snapshot, width, height float64, rng *rand.Rand) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(snap.Agents)),
		index: make(map[string]int, len(snap.Agents)),
	}

	for _, a := range snap.Agents {
		n := Node{
			ID:              a.ID,
			Name:            a.Name,
			Type:            a.Type,
			Status:          a.Status,
			Capabilities:    a.Capabilities,
			Connections:     a.Connections,
			MessagesHandled: a.MessagesHandled,
			ResponseTime:    a.ResponseTime,
			Pos:             randomPosition(width, height, rng),
		}
		if i, ok := g.index[a.ID]; ok {
			g.Nodes[i] = n
			continue
		}
		g.index[a.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, n)
	}

	for _, c := range snap.Connections {
		si, ok := g.index[c.Source]
		if !ok {
			continue
		}
		ti, ok := g.index[c.Target]
		if !ok {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Source:     c.Source,
			Target:     c.Target,
			SourceIdx:  si,
			TargetIdx:  ti,
			Type:       c.Type,
			Status:     c.Status,
			Method:     c.Method,
			DurationMs: c.DurationMs,
		})
	}

	return g
}

// NodeByID returns a pointer to the node for the given agent ID, or nil if
// the ID is not present.
func (g *Graph) NodeByID(id string) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return &g.Nodes[i]
}

// randomPosition draws a uniform position inside the placement margin.
// Viewports smaller than twice the margin collapse to the center line.
func randomPosition(width, height float64, rng *rand.Rand) Point {
	spanX := width - 2*PlacementMargin
	spanY := height - 2*PlacementMargin
	if spanX < 0 {
		spanX = 0
	}
	if spanY < 0 {
		spanY = 0
	}
	return Point{
		X: PlacementMargin + rng.Float64()*spanX,
		Y: PlacementMargin + rng.Float64()*spanY,
	}
}
