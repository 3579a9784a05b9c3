package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/agentviz/agentviz/internal/agent"
)

func testSnapshot() *agent.Snapshot {
	return &agent.Snapshot{
		Agents: []agent.Agent{
			{ID: "a1", Name: "Researcher", Status: agent.StatusActive, Capabilities: []string{"search"}},
			{ID: "a2", Name: "Archivist", Status: agent.StatusIdle},
		},
		Connections: []agent.Connection{
			{Source: "a1", Target: "a2", Type: agent.ConnectionCall, Status: agent.ConnectionActive, Method: "store_result"},
		},
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoad(t *testing.T) {
	db := openTestDB(t)

	id, err := db.Save(testSnapshot(), time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == 0 {
		t.Error("Save() returned id 0")
	}

	snap, err := db.Load(id)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap == nil {
		t.Fatal("Load() returned nil for a stored snapshot")
	}
	if len(snap.Agents) != 2 || len(snap.Connections) != 1 {
		t.Errorf("got %d agents, %d connections; want 2, 1", len(snap.Agents), len(snap.Connections))
	}
	if snap.Agents[0].ID != "a1" || snap.Agents[0].Name != "Researcher" {
		t.Errorf("agent payload mismatch: %+v", snap.Agents[0])
	}
	if snap.Connections[0].Method != "store_result" {
		t.Errorf("connection method = %q, want store_result", snap.Connections[0].Method)
	}
}

func TestLoad_Missing(t *testing.T) {
	db := openTestDB(t)

	snap, err := db.Load(42)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap != nil {
		t.Errorf("Load(42) = %+v, want nil for missing id", snap)
	}
}

func TestLoadLatest(t *testing.T) {
	db := openTestDB(t)

	t.Run("empty store", func(t *testing.T) {
		snap, err := db.LoadLatest()
		if err != nil {
			t.Fatalf("LoadLatest() error = %v", err)
		}
		if snap != nil {
			t.Errorf("LoadLatest() = %+v, want nil on empty store", snap)
		}
	})

	t.Run("returns newest", func(t *testing.T) {
		old := &agent.Snapshot{Agents: []agent.Agent{{ID: "old", Status: agent.StatusIdle}}}
		if _, err := db.Save(old, time.Now().Add(-time.Hour)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := db.Save(testSnapshot(), time.Now()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		snap, err := db.LoadLatest()
		if err != nil {
			t.Fatalf("LoadLatest() error = %v", err)
		}
		if len(snap.Agents) != 2 {
			t.Errorf("got %d agents, want the 2-agent snapshot saved last", len(snap.Agents))
		}
	})
}

func TestList(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.Save(testSnapshot(), time.Now()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	t.Run("all newest first", func(t *testing.T) {
		infos, err := db.List(0)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(infos) != 3 {
			t.Fatalf("got %d snapshots, want 3", len(infos))
		}
		if infos[0].ID <= infos[1].ID || infos[1].ID <= infos[2].ID {
			t.Errorf("snapshots not newest-first: %+v", infos)
		}
		if infos[0].Agents != 2 || infos[0].Connections != 1 {
			t.Errorf("counts = %d/%d, want 2/1", infos[0].Agents, infos[0].Connections)
		}
	})

	t.Run("limit", func(t *testing.T) {
		infos, err := db.List(2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(infos) != 2 {
			t.Errorf("got %d snapshots, want 2", len(infos))
		}
	})
}
