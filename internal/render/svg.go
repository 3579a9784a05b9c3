package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"

	"github.com/agentviz/agentviz/internal/graph"
	"github.com/agentviz/agentviz/internal/layout"
)

const (
	svgBackground = "#F8FAFC"
	svgLabelColor = "#1F2937"
	svgLabelStyle = `font-family="-apple-system, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif" font-size="12" text-anchor="middle"`
)

// SVGSurface renders the scene as an SVG document. It supports the
// oscillation capability, so pulse rings are emitted as <animate> elements.
type SVGSurface struct {
	canvas *svg.SVG
}

// NewSVG starts an SVG document of the viewport size on w. Call End when
// all drawing is done.
func NewSVG(w io.Writer, vp layout.Viewport) *SVGSurface {
	canvas := svg.New(w)
	canvas.Start(round(vp.Width), round(vp.Height))
	canvas.Rect(0, 0, round(vp.Width), round(vp.Height), fmt.Sprintf(`fill="%s"`, svgBackground))
	return &SVGSurface{canvas: canvas}
}

// End closes the SVG document.
func (s *SVGSurface) End() {
	s.canvas.End()
}

// DrawCircle draws a node circle, wrapped in a group carrying the tooltip
// as an SVG <title>.
func (s *SVGSurface) DrawCircle(center graph.Point, radius float64, fill, stroke string, strokeWidth float64, tooltip string) {
	attrs := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s"`, fill, stroke, trimFloat(strokeWidth))
	if tooltip == "" {
		s.canvas.Circle(round(center.X), round(center.Y), round(radius), attrs)
		return
	}
	s.canvas.Group()
	s.canvas.Title(tooltip)
	s.canvas.Circle(round(center.X), round(center.Y), round(radius), attrs)
	s.canvas.Gend()
}

// DrawLine draws an edge line, dashed when requested, with an optional
// tooltip group.
func (s *SVGSurface) DrawLine(from, to graph.Point, stroke string, width float64, dashed bool, tooltip string) {
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%s"`, stroke, trimFloat(width))
	if dashed {
		attrs += ` stroke-dasharray="6,4"`
	}
	if tooltip == "" {
		s.canvas.Line(round(from.X), round(from.Y), round(to.X), round(to.Y), attrs)
		return
	}
	s.canvas.Group()
	s.canvas.Title(tooltip)
	s.canvas.Line(round(from.X), round(from.Y), round(to.X), round(to.Y), attrs)
	s.canvas.Gend()
}

// DrawPolygon draws a filled polygon (used for arrowheads).
func (s *SVGSurface) DrawPolygon(points []graph.Point, fill string) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = round(p.X)
		ys[i] = round(p.Y)
	}
	s.canvas.Polygon(xs, ys, fmt.Sprintf(`fill="%s"`, fill))
}

// DrawText draws a centered label.
func (s *SVGSurface) DrawText(at graph.Point, text string) {
	s.canvas.Text(round(at.X), round(at.Y), text, svgLabelStyle+fmt.Sprintf(` fill="%s"`, svgLabelColor))
}

// ScheduleOscillation emits a pulse ring circle with repeating <animate>
// children for radius and opacity. svgo has no animate helper, so the
// element is written raw onto the underlying writer.
func (s *SVGSurface) ScheduleOscillation(center graph.Point, stroke string, fromRadius, toRadius float64, period time.Duration) {
	secs := period.Seconds()
	fmt.Fprintf(s.canvas.Writer,
		"<circle cx=\"%d\" cy=\"%d\" r=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\">\n",
		round(center.X), round(center.Y), trimFloat(fromRadius), stroke)
	fmt.Fprintf(s.canvas.Writer,
		"<animate attributeName=\"r\" values=\"%s;%s;%s\" dur=\"%ss\" repeatCount=\"indefinite\" />\n",
		trimFloat(fromRadius), trimFloat(toRadius), trimFloat(fromRadius), trimFloat(secs))
	fmt.Fprintf(s.canvas.Writer,
		"<animate attributeName=\"opacity\" values=\"0.8;0;0.8\" dur=\"%ss\" repeatCount=\"indefinite\" />\n",
		trimFloat(secs))
	fmt.Fprintln(s.canvas.Writer, "</circle>")
}

// round converts a coordinate to the nearest integer pixel.
func round(v float64) int {
	return int(math.Round(v))
}

// trimFloat formats a float without trailing zeros (2.5 -> "2.5", 3 -> "3").
func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
