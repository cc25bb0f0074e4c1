package state

import (
	"math"

	"LocalCanvas/internal/shape"
)

// Area is an axis-aligned rectangle on the canvas.
type Area struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Pad grows the area by p on every side.
func (a Area) Pad(p float64) Area {
	return Area{X: a.X - p, Y: a.Y - p, Width: a.Width + 2*p, Height: a.Height + 2*p}
}

// Union returns the smallest area covering both.
func (a Area) Union(b Area) Area {
	minX := math.Min(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxX := math.Max(a.X+a.Width, b.X+b.Width)
	maxY := math.Max(a.Y+a.Height, b.Y+b.Height)
	return Area{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// pointsArea computes the bounding box of a flat x, y list.
func pointsArea(points []float64) Area {
	if len(points) < 2 {
		return Area{}
	}
	minX, minY := points[0], points[1]
	maxX, maxY := minX, minY
	for i := 2; i+1 < len(points); i += 2 {
		minX = math.Min(minX, points[i])
		maxX = math.Max(maxX, points[i])
		minY = math.Min(minY, points[i+1])
		maxY = math.Max(maxY, points[i+1])
	}
	return Area{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ShapeBounds returns the geometric bounding box of s, ignoring stroke
// width. Rectangles with negative extents are normalized.
func ShapeBounds(s shape.Shape) Area {
	switch v := s.(type) {
	case *shape.Arrow:
		return pointsArea(v.Points[:])
	case *shape.Line:
		return pointsArea(v.Points[:])
	case *shape.Spline:
		return pointsArea(v.Points)
	case *shape.Rectangle:
		a := Area{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
		if a.Width < 0 {
			a.X += a.Width
			a.Width = -a.Width
		}
		if a.Height < 0 {
			a.Y += a.Height
			a.Height = -a.Height
		}
		return a
	case *shape.Circle:
		return Area{X: v.X - v.Radius, Y: v.Y - v.Radius, Width: 2 * v.Radius, Height: 2 * v.Radius}
	case *shape.FreeLine:
		return pointsArea(v.Points)
	case *shape.Polygon:
		return pointsArea(v.Points)
	}
	return Area{}
}

// Bounds returns the area covering every shape, padded by each shape's
// half stroke width. ok is false for an empty drawing.
func Bounds(shapes []shape.Shape) (area Area, ok bool) {
	for _, s := range shapes {
		b := ShapeBounds(s).Pad(float64(s.Info().StrokeWidth) / 2)
		if !ok {
			area, ok = b, true
			continue
		}
		area = area.Union(b)
	}
	return area, ok
}
