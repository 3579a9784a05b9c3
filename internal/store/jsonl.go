package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentviz/agentviz/internal/agent"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// jsonlRecord is one line of a snapshot export: either an agent or a
// connection, tagged by kind.
type jsonlRecord struct {
	Kind       string            `json:"kind"` // "agent" or "connection"
	Agent      *agent.Agent      `json:"agent,omitempty"`
	Connection *agent.Connection `json:"connection,omitempty"`
}

// ReadJSONL reads a snapshot from a JSONL export file. Lines with an
// unknown kind are skipped; empty lines are ignored. A missing file
// returns an empty snapshot, matching the behavior of reading an empty
// export.
func ReadJSONL(path string) (*agent.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &agent.Snapshot{}, nil
		}
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	snap := &agent.Snapshot{}
	scanner := bufio.NewScanner(f)
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec jsonlRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}

		switch rec.Kind {
		case "agent":
			if rec.Agent != nil {
				snap.Agents = append(snap.Agents, *rec.Agent)
			}
		case "connection":
			if rec.Connection != nil {
				snap.Connections = append(snap.Connections, *rec.Connection)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return snap, nil
}

// WriteJSONL writes a snapshot as a JSONL export: one tagged record per
// line, agents first.
func WriteJSONL(path string, snap *agent.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	for i := range snap.Agents {
		if err := enc.Encode(jsonlRecord{Kind: "agent", Agent: &snap.Agents[i]}); err != nil {
			return fmt.Errorf("encoding agent: %w", err)
		}
	}
	for i := range snap.Connections {
		if err := enc.Encode(jsonlRecord{Kind: "connection", Connection: &snap.Connections[i]}); err != nil {
			return fmt.Errorf("encoding connection: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}
