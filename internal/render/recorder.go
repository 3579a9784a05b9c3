package render

import (
	"time"

	"github.com/agentviz/agentviz/internal/graph"
)

// Recorder is a Surface that captures draw calls instead of producing
// output. It is used by tests to assert on shape counts, styling, and draw
// order without a real backend.
type Recorder struct {
	Circles      []RecordedCircle
	Lines        []RecordedLine
	Polygons     []RecordedPolygon
	Texts        []RecordedText
	Oscillations []RecordedOscillation
}

// RecordedCircle is one captured DrawCircle call.
type RecordedCircle struct {
	Center      graph.Point
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Tooltip     string
}

// RecordedLine is one captured DrawLine call.
type RecordedLine struct {
	From    graph.Point
	To      graph.Point
	Stroke  string
	Width   float64
	Dashed  bool
	Tooltip string
}

// RecordedPolygon is one captured DrawPolygon call.
type RecordedPolygon struct {
	Points []graph.Point
	Fill   string
}

// RecordedText is one captured DrawText call.
type RecordedText struct {
	At   graph.Point
	Text string
}

// RecordedOscillation is one captured ScheduleOscillation call.
type RecordedOscillation struct {
	Center     graph.Point
	Stroke     string
	FromRadius float64
	ToRadius   float64
	Period     time.Duration
}

// NewRecorder returns an empty recording surface.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DrawCircle records the call.
func (r *Recorder) DrawCircle(center graph.Point, radius float64, fill, stroke string, strokeWidth float64, tooltip string) {
	r.Circles = append(r.Circles, RecordedCircle{
		Center: center, Radius: radius, Fill: fill, Stroke: stroke,
		StrokeWidth: strokeWidth, Tooltip: tooltip,
	})
}

// DrawLine records the call.
func (r *Recorder) DrawLine(from, to graph.Point, stroke string, width float64, dashed bool, tooltip string) {
	r.Lines = append(r.Lines, RecordedLine{
		From: from, To: to, Stroke: stroke, Width: width, Dashed: dashed, Tooltip: tooltip,
	})
}

// DrawPolygon records the call.
func (r *Recorder) DrawPolygon(points []graph.Point, fill string) {
	pts := make([]graph.Point, len(points))
	copy(pts, points)
	r.Polygons = append(r.Polygons, RecordedPolygon{Points: pts, Fill: fill})
}

// DrawText records the call.
func (r *Recorder) DrawText(at graph.Point, text string) {
	r.Texts = append(r.Texts, RecordedText{At: at, Text: text})
}

// ScheduleOscillation records the call.
func (r *Recorder) ScheduleOscillation(center graph.Point, stroke string, fromRadius, toRadius float64, period time.Duration) {
	r.Oscillations = append(r.Oscillations, RecordedOscillation{
		Center: center, Stroke: stroke, FromRadius: fromRadius, ToRadius: toRadius, Period: period,
	})
}

// DrawCallCount returns the total number of captured drawing calls,
// excluding oscillations.
func (r *Recorder) DrawCallCount() int {
	return len(r.Circles) + len(r.Lines) + len(r.Polygons) + len(r.Texts)
}

// StaticRecorder is a Recorder without the Oscillator capability, for
// asserting the static fallback path.
type StaticRecorder struct {
	Recorder
}

// NewStaticRecorder returns a recording surface that cannot animate.
func NewStaticRecorder() *StaticRecorder {
	return &StaticRecorder{}
}

// ScheduleOscillation shadows the embedded Recorder method with a
// different signature so StaticRecorder does not satisfy Oscillator.
func (s *StaticRecorder) ScheduleOscillation() {}
