package graph

import (
	"math/rand"
	"testing"

	"github.com/agentviz/agentviz/internal/agent"
)

const (
	testWidth  = 800.0
	testHeight = 600.0
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestBuild_DanglingConnections(t *testing.T) {
	tests := []struct {
		name        string
		agents      []agent.Agent
		connections []agent.Connection
		wantNodes   int
		wantEdges   int
	}{
		{
			name: "both endpoints resolve",
			agents: []agent.Agent{
				{ID: "a1"}, {ID: "a2"},
			},
			connections: []agent.Connection{
				{Source: "a1", Target: "a2", Type: agent.ConnectionCall},
			},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "missing source is dropped",
			agents: []agent.Agent{
				{ID: "a1"},
			},
			connections: []agent.Connection{
				{Source: "ghost", Target: "a1", Type: agent.ConnectionCall},
			},
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name: "missing target is dropped",
			agents: []agent.Agent{
				{ID: "a1"},
			},
			connections: []agent.Connection{
				{Source: "a1", Target: "ghost", Type: agent.ConnectionCall},
			},
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name:   "missing both is dropped",
			agents: []agent.Agent{{ID: "a1"}},
			connections: []agent.Connection{
				{Source: "ghost1", Target: "ghost2", Type: agent.ConnectionCall},
			},
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name:      "empty snapshot",
			wantNodes: 0,
			wantEdges: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &agent.Snapshot{Agents: tt.agents, Connections: tt.connections}
			g := Build(snap, testWidth, testHeight, newRand(1))

			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("got %d nodes, want %d", len(g.Nodes), tt.wantNodes)
			}
			if len(g.Edges) != tt.wantEdges {
				t.Errorf("got %d edges, want %d", len(g.Edges), tt.wantEdges)
			}
		})
	}
}

func TestBuild_DuplicateIDsLastWins(t *testing.T) {
	snap := &agent.Snapshot{
		Agents: []agent.Agent{
			{ID: "a1", Name: "first"},
			{ID: "a1", Name: "second"},
		},
	}
	g := Build(snap, testWidth, testHeight, newRand(1))

	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
	if g.Nodes[0].Name != "second" {
		t.Errorf("got name %q, want %q (last occurrence wins)", g.Nodes[0].Name, "second")
	}
}

func TestBuild_InitialPlacement(t *testing.T) {
	agents := make([]agent.Agent, 40)
	for i := range agents {
		agents[i] = agent.Agent{ID: string(rune('a' + i))}
	}
	g := Build(&agent.Snapshot{Agents: agents}, testWidth, testHeight, newRand(7))

	for _, n := range g.Nodes {
		if n.Pos.X < PlacementMargin || n.Pos.X > testWidth-PlacementMargin {
			t.Errorf("node %s x = %v outside [%v, %v]", n.ID, n.Pos.X, PlacementMargin, testWidth-PlacementMargin)
		}
		if n.Pos.Y < PlacementMargin || n.Pos.Y > testHeight-PlacementMargin {
			t.Errorf("node %s y = %v outside [%v, %v]", n.ID, n.Pos.Y, PlacementMargin, testHeight-PlacementMargin)
		}
		if n.Vel.X != 0 || n.Vel.Y != 0 {
			t.Errorf("node %s has nonzero initial velocity (%v, %v)", n.ID, n.Vel.X, n.Vel.Y)
		}
	}
}

func TestBuild_SeedDeterminism(t *testing.T) {
	snap := &agent.Snapshot{
		Agents: []agent.Agent{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}},
	}

	g1 := Build(snap, testWidth, testHeight, newRand(42))
	g2 := Build(snap, testWidth, testHeight, newRand(42))

	for i := range g1.Nodes {
		if g1.Nodes[i].Pos != g2.Nodes[i].Pos {
			t.Errorf("node %s: positions differ across identical seeds: %v vs %v",
				g1.Nodes[i].ID, g1.Nodes[i].Pos, g2.Nodes[i].Pos)
		}
	}
}

func TestBuild_EdgeIndexes(t *testing.T) {
	snap := &agent.Snapshot{
		Agents: []agent.Agent{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}},
		Connections: []agent.Connection{
			{Source: "a3", Target: "a1", Type: agent.ConnectionResponse},
		},
	}
	g := Build(snap, testWidth, testHeight, newRand(1))

	if len(g.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(g.Edges))
	}
	e := g.Edges[0]
	if g.Nodes[e.SourceIdx].ID != "a3" {
		t.Errorf("source index resolves to %q, want %q", g.Nodes[e.SourceIdx].ID, "a3")
	}
	if g.Nodes[e.TargetIdx].ID != "a1" {
		t.Errorf("target index resolves to %q, want %q", g.Nodes[e.TargetIdx].ID, "a1")
	}
}

func TestNodeByID(t *testing.T) {
	snap := &agent.Snapshot{
		Agents: []agent.Agent{{ID: "a1", Name: "Researcher"}},
	}
	g := Build(snap, testWidth, testHeight, newRand(1))

	if n := g.NodeByID("a1"); n == nil || n.Name != "Researcher" {
		t.Errorf("NodeByID(a1) = %v, want Researcher node", n)
	}
	if n := g.NodeByID("ghost"); n != nil {
		t.Errorf("NodeByID(ghost) = %v, want nil", n)
	}
}

func TestRandomPosition_TinyViewport(t *testing.T) {
	// Viewports smaller than twice the margin must not produce negative spans.
	rng := newRand(3)
	for i := 0; i < 100; i++ {
		p := randomPosition(60, 40, rng)
		if p.X != PlacementMargin || p.Y != PlacementMargin {
			t.Fatalf("tiny viewport placement = %v, want margin corner", p)
		}
	}
}
