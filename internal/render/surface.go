// Package render replays a built scene onto concrete drawing surfaces.
//
// A Surface is the minimal drawing contract: circles, lines, polygons, and
// text, each with an optional tooltip attached at draw time. Backends that
// can animate additionally implement Oscillator; the pulse ring degrades to
// nothing on backends that cannot, without affecting layout or the static
// shapes.
package render

import (
	"time"

	"github.com/agentviz/agentviz/internal/graph"
	"github.com/agentviz/agentviz/internal/scene"
)

// Surface is a drawing backend. Coordinates are in viewport space.
type Surface interface {
	// DrawCircle draws a filled, stroked circle. tooltip may be empty.
	DrawCircle(center graph.Point, radius float64, fill, stroke string, strokeWidth float64, tooltip string)
	// DrawLine draws a stroked line. tooltip may be empty.
	DrawLine(from, to graph.Point, stroke string, width float64, dashed bool, tooltip string)
	// DrawPolygon draws a filled polygon.
	DrawPolygon(points []graph.Point, fill string)
	// DrawText draws a centered text run.
	DrawText(at graph.Point, text string)
}

// Oscillator is the optional animation capability. Backends without it get
// a static rendering.
type Oscillator interface {
	// ScheduleOscillation sets up a continuously repeating ring whose
	// radius grows from fromRadius to toRadius while fading out, once
	// per period.
	ScheduleOscillation(center graph.Point, stroke string, fromRadius, toRadius float64, period time.Duration)
}

// Draw replays a scene onto a surface in the fixed order edges, nodes,
// labels. Pulse rings are scheduled only when the surface supports
// oscillation.
func Draw(sc *scene.Scene, s Surface) {
	osc, canPulse := s.(Oscillator)

	for _, e := range sc.Edges {
		s.DrawLine(e.From, e.To, e.Style.Stroke, e.Style.Width, e.Style.Dashed, e.Tooltip)
		s.DrawPolygon(e.Arrow[:], e.Style.Stroke)
	}

	for _, n := range sc.Nodes {
		if n.Pulse && canPulse {
			osc.ScheduleOscillation(n.Center, n.Style.Stroke, n.Radius, scene.PulseMaxRadius, scene.PulsePeriod)
		}
		s.DrawCircle(n.Center, n.Radius, n.Style.Fill, n.Style.Stroke, scene.NodeStrokeWidth, n.Tooltip)
	}

	for _, l := range sc.Labels {
		s.DrawText(l.At, l.Text)
	}
}
