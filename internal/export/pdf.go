package export

import (
	"fmt"

	"LocalCanvas/internal/render"
	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 10.0 // mm
	pxPerMM    = 3.0
)

// PDF draws shapes onto a single A4 page and writes it to path. Drawings
// larger than the page are scaled down to fit.
func PDF(path string, shapes []shape.Shape) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	pageW, pageH := p.GetPageSize()
	scale := 1 / pxPerMM
	var origin state.Area
	if area, ok := state.Bounds(shapes); ok {
		origin = area
		fitW := (pageW - 2*pageMargin) / area.Width
		fitH := (pageH - 2*pageMargin) / area.Height
		scale = min(scale, fitW, fitH)
	}
	tx := func(x float64) float64 { return pageMargin + (x-origin.X)*scale }
	ty := func(y float64) float64 { return pageMargin + (y-origin.Y)*scale }

	for _, s := range shapes {
		info := s.Info()
		c := shape.RGBA(info.Color)
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(float64(info.StrokeWidth) * scale)

		switch v := s.(type) {
		case *shape.Arrow:
			pts := v.Points
			p.Line(tx(pts[0]), ty(pts[1]), tx(pts[2]), ty(pts[3]))
			head := render.ArrowHead(pts[0], pts[1], pts[2], pts[3], float64(info.StrokeWidth))
			p.Line(tx(pts[2]), ty(pts[3]), tx(head[0]), ty(head[1]))
			p.Line(tx(pts[2]), ty(pts[3]), tx(head[2]), ty(head[3]))
		case *shape.Line:
			pts := v.Points
			p.Line(tx(pts[0]), ty(pts[1]), tx(pts[2]), ty(pts[3]))
		case *shape.Spline:
			if len(v.Points) >= 6 {
				pts := v.Points
				p.Curve(tx(pts[0]), ty(pts[1]), tx(pts[2]), ty(pts[3]), tx(pts[4]), ty(pts[5]), "D")
			}
		case *shape.Rectangle:
			b := state.ShapeBounds(v)
			p.Rect(tx(b.X), ty(b.Y), b.Width*scale, b.Height*scale, "D")
		case *shape.Circle:
			p.Circle(tx(v.X), ty(v.Y), v.Radius*scale, "D")
		case *shape.FreeLine:
			polyline(p, v.Points, false, tx, ty)
		case *shape.Polygon:
			polyline(p, v.Points, v.Closed, tx, ty)
		}
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing pdf %s: %w", path, err)
	}
	return nil
}

func polyline(p *gofpdf.Fpdf, points []float64, closed bool, tx, ty func(float64) float64) {
	for _, seg := range render.Segments(points, closed) {
		p.Line(tx(seg[0]), ty(seg[1]), tx(seg[2]), ty(seg[3]))
	}
}
