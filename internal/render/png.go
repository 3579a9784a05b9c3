package render

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/agentviz/agentviz/internal/graph"
	"github.com/agentviz/agentviz/internal/layout"
)

const (
	pngBackground = "#F8FAFC"
	pngLabelColor = "#1F2937"
)

// PNGSurface renders the scene into a raster image. It is a static
// backend: it does not implement Oscillator, so active/busy nodes render
// without a pulse ring, and tooltips are dropped.
type PNGSurface struct {
	dc *gg.Context
}

// NewPNG creates a raster surface of the viewport size with a cleared
// background.
func NewPNG(vp layout.Viewport) *PNGSurface {
	dc := gg.NewContext(round(vp.Width), round(vp.Height))
	dc.SetHexColor(pngBackground)
	dc.Clear()
	return &PNGSurface{dc: dc}
}

// DrawCircle draws a filled, stroked circle. The tooltip is ignored.
func (p *PNGSurface) DrawCircle(center graph.Point, radius float64, fill, stroke string, strokeWidth float64, _ string) {
	p.dc.DrawCircle(center.X, center.Y, radius)
	p.dc.SetHexColor(fill)
	p.dc.FillPreserve()
	p.dc.SetHexColor(stroke)
	p.dc.SetLineWidth(strokeWidth)
	p.dc.Stroke()
}

// DrawLine draws a stroked line. The tooltip is ignored.
func (p *PNGSurface) DrawLine(from, to graph.Point, stroke string, width float64, dashed bool, _ string) {
	if dashed {
		p.dc.SetDash(6, 4)
	} else {
		p.dc.SetDash()
	}
	p.dc.SetHexColor(stroke)
	p.dc.SetLineWidth(width)
	p.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	p.dc.Stroke()
	p.dc.SetDash()
}

// DrawPolygon draws a filled polygon.
func (p *PNGSurface) DrawPolygon(points []graph.Point, fill string) {
	if len(points) == 0 {
		return
	}
	p.dc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.ClosePath()
	p.dc.SetHexColor(fill)
	p.dc.Fill()
}

// DrawText draws a centered label using the context's default face.
func (p *PNGSurface) DrawText(at graph.Point, text string) {
	p.dc.SetHexColor(pngLabelColor)
	p.dc.DrawStringAnchored(text, at.X, at.Y, 0.5, 0.5)
}

// EncodePNG writes the rendered image to w.
func (p *PNGSurface) EncodePNG(w io.Writer) error {
	if err := p.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the rendered image to a file.
func (p *PNGSurface) SavePNG(path string) error {
	if err := p.dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
