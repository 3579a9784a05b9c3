package agent

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
)

// Snapshot is one complete view of the network: the agents present and the
// connections observed between them. A snapshot is the unit of a single
// render pass; nothing built from it outlives that pass.
type Snapshot struct {
	Agents      []Agent      `json:"agents"`
	Connections []Connection `json:"connections"`
}

// IsEmpty reports whether the snapshot contains no agents.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Agents) == 0
}

// Fingerprint returns a content hash of the snapshot. Two snapshots with
// identical agents and connections (in order) produce the same fingerprint,
// which lets callers skip re-rendering unchanged data.
func (s *Snapshot) Fingerprint() uint64 {
	h := fnv.New64a()
	enc := json.NewEncoder(h)
	// Encoding a Snapshot cannot fail: all fields are plain data.
	_ = enc.Encode(s)
	return h.Sum64()
}

// DecodeSnapshot reads a single JSON snapshot document from r.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}
