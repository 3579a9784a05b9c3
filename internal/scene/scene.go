// Package scene turns a laid-out graph into drawable primitives with
// status-driven styling. A scene is rebuilt in full on every call; there is
// no diffing against a previous frame. Draw order is edges first, then
// nodes, then labels, so nodes sit on top of their edges.
package scene

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agentviz/agentviz/internal/graph"
)

const (
	// NodeRadius is the radius of a node circle.
	NodeRadius = 20.0
	// NodeStrokeWidth is the outline width of a node circle.
	NodeStrokeWidth = 2.0
	// LabelOffset separates a label from the bottom of its node.
	LabelOffset = 15.0
	// LabelMaxLen is the label truncation length.
	LabelMaxLen = 15
	// ArrowSize is the side length of an edge arrowhead.
	ArrowSize = 8.0
	// PulsePeriod is the oscillation period of the pulse ring.
	PulsePeriod = 2 * time.Second
	// PulseMaxRadius is the pulse ring radius at full expansion.
	PulseMaxRadius = NodeRadius + 12
)

// EdgeShape is one drawable edge: a styled line trimmed to the node
// boundaries, an arrowhead at the target end, and a hover tooltip.
type EdgeShape struct {
	From    graph.Point
	To      graph.Point
	Style   EdgeStyle
	Arrow   [3]graph.Point
	Tooltip string
}

// NodeShape is one drawable node circle with optional pulse ring.
type NodeShape struct {
	Center  graph.Point
	Radius  float64
	Style   NodeStyle
	Pulse   bool
	Tooltip string
}

// Label is a node name positioned below its node.
type Label struct {
	At   graph.Point
	Text string
}

// Scene is the complete drawable output of one render pass.
type Scene struct {
	Edges  []EdgeShape
	Nodes  []NodeShape
	Labels []Label
}

// Build constructs the scene for a laid-out graph.
func Build(g *graph.Graph) *Scene {
	sc := &Scene{
		Edges:  make([]EdgeShape, 0, len(g.Edges)),
		Nodes:  make([]NodeShape, 0, len(g.Nodes)),
		Labels: make([]Label, 0, len(g.Nodes)),
	}

	for _, e := range g.Edges {
		src := g.Nodes[e.SourceIdx]
		dst := g.Nodes[e.TargetIdx]
		from, to := trimToRadius(src.Pos, dst.Pos, NodeRadius)
		sc.Edges = append(sc.Edges, EdgeShape{
			From:    from,
			To:      to,
			Style:   StyleForEdge(e.Type, e.Status),
			Arrow:   arrowhead(from, to),
			Tooltip: edgeTooltip(src.Name, dst.Name, e),
		})
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		sc.Nodes = append(sc.Nodes, NodeShape{
			Center:  n.Pos,
			Radius:  NodeRadius,
			Style:   StyleForStatus(n.Status),
			Pulse:   HasPulse(n.Status),
			Tooltip: nodeTooltip(n),
		})
		sc.Labels = append(sc.Labels, Label{
			At:   graph.Point{X: n.Pos.X, Y: n.Pos.Y + NodeRadius + LabelOffset},
			Text: TruncateLabel(n.Name),
		})
	}

	return sc
}

// TruncateLabel shortens a node name to LabelMaxLen characters, appending
// an ellipsis if anything was cut.
func TruncateLabel(name string) string {
	r := []rune(name)
	if len(r) <= LabelMaxLen {
		return name
	}
	return string(r[:LabelMaxLen]) + "…"
}

// trimToRadius pulls both line endpoints back by r so the edge meets the
// node boundary instead of the center. Coincident endpoints are returned
// unchanged.
func trimToRadius(a, b graph.Point, r float64) (graph.Point, graph.Point) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return a, b
	}
	ux, uy := dx/d, dy/d
	return graph.Point{X: a.X + ux*r, Y: a.Y + uy*r},
		graph.Point{X: b.X - ux*r, Y: b.Y - uy*r}
}

// arrowhead returns the triangle pointing along from->to with its tip at
// to.
func arrowhead(from, to graph.Point) [3]graph.Point {
	dx := to.X - from.X
	dy := to.Y - from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		d = 1
	}
	ux, uy := dx/d, dy/d
	// Perpendicular unit vector.
	px, py := -uy, ux
	baseX := to.X - ux*ArrowSize
	baseY := to.Y - uy*ArrowSize
	half := ArrowSize / 2
	return [3]graph.Point{
		to,
		{X: baseX + px*half, Y: baseY + py*half},
		{X: baseX - px*half, Y: baseY - py*half},
	}
}

// edgeTooltip summarizes an edge for hover display.
func edgeTooltip(srcName, dstName string, e graph.Edge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s\n", srcName, dstName)
	if e.Method != "" {
		fmt.Fprintf(&b, "%s: %s\n", e.Type, e.Method)
	} else {
		fmt.Fprintf(&b, "%s\n", e.Type)
	}
	b.WriteString(string(e.Status))
	return b.String()
}

// nodeTooltip summarizes a node for hover display. Missing optional fields
// are omitted.
func nodeTooltip(n *graph.Node) string {
	var b strings.Builder
	b.WriteString(n.Name)
	if n.Type != "" {
		fmt.Fprintf(&b, "\nType: %s", n.Type)
	}
	fmt.Fprintf(&b, "\nStatus: %s", n.Status)
	fmt.Fprintf(&b, "\nConnections: %d", n.Connections)
	fmt.Fprintf(&b, "\nMessages: %d", n.MessagesHandled)
	fmt.Fprintf(&b, "\nResponse time: %.2fs", n.ResponseTime)
	if len(n.Capabilities) > 0 {
		fmt.Fprintf(&b, "\nCapabilities: %s", strings.Join(n.Capabilities, ", "))
	}
	return b.String()
}
