package render

import (
	"math/rand"
	"testing"

	"github.com/agentviz/agentviz/internal/agent"
	"github.com/agentviz/agentviz/internal/graph"
	"github.com/agentviz/agentviz/internal/scene"
)

func buildScene(t *testing.T, snap *agent.Snapshot) *scene.Scene {
	t.Helper()
	g := graph.Build(snap, 800, 600, rand.New(rand.NewSource(1)))
	return scene.Build(g)
}

func twoAgentSnapshot() *agent.Snapshot {
	return &agent.Snapshot{
		Agents: []agent.Agent{
			{ID: "a1", Name: "Researcher", Status: agent.StatusActive},
			{ID: "a2", Name: "Archivist", Status: agent.StatusOffline},
		},
		Connections: []agent.Connection{
			{Source: "a1", Target: "a2", Type: agent.ConnectionCall, Status: agent.ConnectionActive},
		},
	}
}

func TestDraw_ShapeCounts(t *testing.T) {
	sc := buildScene(t, twoAgentSnapshot())
	rec := NewRecorder()
	Draw(sc, rec)

	if len(rec.Lines) != 1 {
		t.Errorf("got %d lines, want 1", len(rec.Lines))
	}
	if len(rec.Polygons) != 1 {
		t.Errorf("got %d arrow polygons, want 1", len(rec.Polygons))
	}
	if len(rec.Circles) != 2 {
		t.Errorf("got %d circles, want 2", len(rec.Circles))
	}
	if len(rec.Texts) != 2 {
		t.Errorf("got %d labels, want 2", len(rec.Texts))
	}
	// Only the active node pulses.
	if len(rec.Oscillations) != 1 {
		t.Errorf("got %d oscillations, want 1", len(rec.Oscillations))
	}
	if rec.Oscillations[0].Period != scene.PulsePeriod {
		t.Errorf("pulse period = %v, want %v", rec.Oscillations[0].Period, scene.PulsePeriod)
	}
}

func TestDraw_StaticSurfaceFallback(t *testing.T) {
	sc := buildScene(t, twoAgentSnapshot())
	rec := NewStaticRecorder()
	Draw(sc, rec)

	// Without the oscillation capability the node still renders, just
	// without a pulse ring.
	if len(rec.Circles) != 2 {
		t.Errorf("got %d circles, want 2", len(rec.Circles))
	}
	if len(rec.Oscillations) != 0 {
		t.Errorf("static surface recorded %d oscillations, want 0", len(rec.Oscillations))
	}
}

func TestDraw_DanglingProducesNoCalls(t *testing.T) {
	snap := &agent.Snapshot{
		Agents: []agent.Agent{{ID: "a1", Name: "Researcher", Status: agent.StatusIdle}},
		Connections: []agent.Connection{
			{Source: "ghost", Target: "a1", Type: agent.ConnectionCall, Status: agent.ConnectionActive},
		},
	}
	sc := buildScene(t, snap)
	rec := NewRecorder()
	Draw(sc, rec)

	if len(rec.Lines) != 0 || len(rec.Polygons) != 0 {
		t.Errorf("dangling connection produced %d lines, %d polygons; want 0, 0",
			len(rec.Lines), len(rec.Polygons))
	}
}

func TestDraw_EdgeStylingScenario(t *testing.T) {
	sc := buildScene(t, twoAgentSnapshot())
	rec := NewRecorder()
	Draw(sc, rec)

	line := rec.Lines[0]
	if line.Stroke != "#22C55E" {
		t.Errorf("active edge stroke = %q, want green", line.Stroke)
	}
	if line.Width != 3 {
		t.Errorf("active edge width = %v, want 3", line.Width)
	}
	if line.Dashed {
		t.Error("active edge should be solid")
	}
	if line.Tooltip == "" {
		t.Error("edge tooltip missing")
	}
}

func TestDraw_Order(t *testing.T) {
	// Edges must be drawn before nodes so nodes sit on top. The recorder
	// cannot observe interleaving directly, but Draw's contract is that
	// all lines land before any circle; verify via a sequencing surface.
	sc := buildScene(t, twoAgentSnapshot())

	var sequence []string
	seq := &sequencingSurface{order: &sequence}
	Draw(sc, seq)

	sawCircle := false
	for _, op := range sequence {
		if op == "circle" {
			sawCircle = true
		}
		if op == "line" && sawCircle {
			t.Fatalf("line drawn after circle: %v", sequence)
		}
	}
}

// sequencingSurface records only the call order.
type sequencingSurface struct {
	order *[]string
}

func (s *sequencingSurface) DrawCircle(graph.Point, float64, string, string, float64, string) {
	*s.order = append(*s.order, "circle")
}

func (s *sequencingSurface) DrawLine(graph.Point, graph.Point, string, float64, bool, string) {
	*s.order = append(*s.order, "line")
}

func (s *sequencingSurface) DrawPolygon([]graph.Point, string) {
	*s.order = append(*s.order, "polygon")
}

func (s *sequencingSurface) DrawText(graph.Point, string) {
	*s.order = append(*s.order, "text")
}
