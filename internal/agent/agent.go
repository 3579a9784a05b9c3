// Package agent defines the core domain types for the agent collaboration
// network: agents, the connections observed between them, and the snapshot
// unit consumed by one render pass.
package agent

import (
	"time"
)

// Status is an agent's reported liveness state.
type Status string

// Agent statuses as reported by the platform.
const (
	StatusActive  Status = "active"
	StatusBusy    Status = "busy"
	StatusIdle    Status = "idle"
	StatusOffline Status = "offline"
)

// ValidStatuses lists the recognized agent statuses.
var ValidStatuses = []Status{StatusActive, StatusBusy, StatusIdle, StatusOffline}

// IsValid reports whether s is a recognized agent status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusBusy, StatusIdle, StatusOffline:
		return true
	}
	return false
}

// ConnectionType classifies an observed interaction between two agents.
type ConnectionType string

// Connection types.
const (
	ConnectionCall          ConnectionType = "call"
	ConnectionResponse      ConnectionType = "response"
	ConnectionCollaboration ConnectionType = "collaboration"
)

// ConnectionStatus is the outcome state of a connection.
type ConnectionStatus string

// Connection statuses.
const (
	ConnectionActive    ConnectionStatus = "active"
	ConnectionCompleted ConnectionStatus = "completed"
	ConnectionFailed    ConnectionStatus = "failed"
)

// Agent is one collaborating agent as reported by the platform.
type Agent struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Capabilities    []string  `json:"capabilities,omitempty"`
	Status          Status    `json:"status"`
	LastSeen        time.Time `json:"lastSeen"`
	Connections     int       `json:"connections"`
	MessagesHandled int       `json:"messagesHandled"`
	ResponseTime    float64   `json:"responseTime"` // seconds
}

// Connection is one observed interaction between two agents. Source and
// Target reference agent IDs; a connection whose endpoints do not resolve
// against the current snapshot is dropped during graph construction.
type Connection struct {
	Source     string           `json:"source"`
	Target     string           `json:"target"`
	Type       ConnectionType   `json:"type"`
	Status     ConnectionStatus `json:"status"`
	Method     string           `json:"method,omitempty"`
	DurationMs int64            `json:"durationMs,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}
