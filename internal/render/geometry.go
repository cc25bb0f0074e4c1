package render

import "math"

// ArrowHeadSize is the length of each arrow head barb relative to the
// stroke width.
const ArrowHeadSize = 2.0

// QuadCurve samples the quadratic curve p0, control, p2 laid out as six
// numbers into a flat polyline of segments+1 points. Shorter inputs are
// returned unchanged.
func QuadCurve(points []float64, segments int) []float64 {
	if len(points) < 6 || segments < 1 {
		return append([]float64(nil), points...)
	}
	x0, y0, cx, cy, x2, y2 := points[0], points[1], points[2], points[3], points[4], points[5]
	out := make([]float64, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		out = append(out,
			u*u*x0+2*u*t*cx+t*t*x2,
			u*u*y0+2*u*t*cy+t*t*y2,
		)
	}
	return out
}

// ArrowHead returns the two barb end points of an arrow pointing from
// (x1, y1) to (x2, y2), as x, y, x, y.
func ArrowHead(x1, y1, x2, y2, strokeWidth float64) [4]float64 {
	size := math.Max(strokeWidth*ArrowHeadSize, 6)
	angle := math.Atan2(y2-y1, x2-x1)
	const spread = math.Pi / 6
	return [4]float64{
		x2 - size*math.Cos(angle-spread), y2 - size*math.Sin(angle-spread),
		x2 - size*math.Cos(angle+spread), y2 - size*math.Sin(angle+spread),
	}
}

// Segments pairs up a flat point list into consecutive segments
// x1, y1, x2, y2. When closed, the last point connects back to the first.
func Segments(points []float64, closed bool) [][4]float64 {
	n := len(points) / 2
	if n < 2 {
		return nil
	}
	out := make([][4]float64, 0, n)
	for i := 0; i+1 < n; i++ {
		out = append(out, [4]float64{points[2*i], points[2*i+1], points[2*i+2], points[2*i+3]})
	}
	if closed && n > 2 {
		out = append(out, [4]float64{points[2*n-2], points[2*n-1], points[0], points[1]})
	}
	return out
}
