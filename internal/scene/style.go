package scene

import "github.com/agentviz/agentviz/internal/agent"

// Node and edge palette. Fill/stroke pairs per agent status, edge colors by
// the first matching styling rule.
const (
	colorGreen     = "#22C55E"
	colorDarkGreen = "#15803D"
	colorAmber     = "#F59E0B"
	colorDarkAmber = "#B45309"
	colorBlue      = "#3B82F6"
	colorDarkBlue  = "#1D4ED8"
	colorGray      = "#9CA3AF"
	colorDarkGray  = "#4B5563"
	colorRed       = "#EF4444"
	colorPurple    = "#A855F7"
	colorEdgeGray  = "#94A3B8"
)

// NodeStyle is the fill/stroke pair for a node circle.
type NodeStyle struct {
	Fill   string
	Stroke string
}

// EdgeStyle is the stroke styling for an edge line.
type EdgeStyle struct {
	Stroke string
	Width  float64
	Dashed bool
}

// nodeStyles maps agent status to its fill/stroke pair. Unknown statuses
// fall back to the offline style.
var nodeStyles = map[agent.Status]NodeStyle{
	agent.StatusActive:  {Fill: colorGreen, Stroke: colorDarkGreen},
	agent.StatusBusy:    {Fill: colorAmber, Stroke: colorDarkAmber},
	agent.StatusIdle:    {Fill: colorBlue, Stroke: colorDarkBlue},
	agent.StatusOffline: {Fill: colorGray, Stroke: colorDarkGray},
}

// StyleForStatus returns the node styling for an agent status.
func StyleForStatus(s agent.Status) NodeStyle {
	if st, ok := nodeStyles[s]; ok {
		return st
	}
	return nodeStyles[agent.StatusOffline]
}

// StyleForEdge returns the edge styling. Rules are ordered; the first match
// wins: active connections are green and heavy, failed ones red and dashed,
// collaborations purple, everything else gray.
func StyleForEdge(typ agent.ConnectionType, status agent.ConnectionStatus) EdgeStyle {
	switch {
	case status == agent.ConnectionActive:
		return EdgeStyle{Stroke: colorGreen, Width: 3}
	case status == agent.ConnectionFailed:
		return EdgeStyle{Stroke: colorRed, Width: 2, Dashed: true}
	case typ == agent.ConnectionCollaboration:
		return EdgeStyle{Stroke: colorPurple, Width: 2.5}
	default:
		return EdgeStyle{Stroke: colorEdgeGray, Width: 2}
	}
}

// HasPulse reports whether nodes with this status carry the animated pulse
// ring. The pulse is cosmetic and never affects layout.
func HasPulse(s agent.Status) bool {
	return s == agent.StatusActive || s == agent.StatusBusy
}
