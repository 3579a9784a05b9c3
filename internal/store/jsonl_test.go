package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentviz/agentviz/internal/agent"
)

func TestJSONLRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.jsonl")

	if err := WriteJSONL(path, testSnapshot()); err != nil {
		t.Fatalf("WriteJSONL() error = %v", err)
	}

	snap, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if len(snap.Agents) != 2 || len(snap.Connections) != 1 {
		t.Errorf("got %d agents, %d connections; want 2, 1", len(snap.Agents), len(snap.Connections))
	}
	if snap.Agents[1].Name != "Archivist" {
		t.Errorf("agent name = %q, want Archivist", snap.Agents[1].Name)
	}
	if snap.Connections[0].Status != agent.ConnectionActive {
		t.Errorf("connection status = %q, want active", snap.Connections[0].Status)
	}
}

func TestReadJSONL_MissingFile(t *testing.T) {
	snap, err := ReadJSONL(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if !snap.IsEmpty() {
		t.Errorf("missing file should read as empty snapshot, got %+v", snap)
	}
}

func TestReadJSONL_SkipsUnknownAndBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.jsonl")
	content := `{"kind":"agent","agent":{"id":"a1","name":"Researcher","status":"active"}}

{"kind":"metric","agent":{"id":"a2"}}
{"kind":"connection","connection":{"source":"a1","target":"a1","type":"call","status":"completed"}}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := ReadJSONL(path)
	if err != nil {
		t.Fatalf("ReadJSONL() error = %v", err)
	}
	if len(snap.Agents) != 1 {
		t.Errorf("got %d agents, want 1 (unknown kind skipped)", len(snap.Agents))
	}
	if len(snap.Connections) != 1 {
		t.Errorf("got %d connections, want 1", len(snap.Connections))
	}
}

func TestReadJSONL_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadJSONL(path); err == nil {
		t.Error("expected error for malformed line, got nil")
	}
}
