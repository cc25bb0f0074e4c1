package gesture

import (
	"log"
	"math"

	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"

	"github.com/google/uuid"
)

// DefaultCloseRadius is how close, in canvas units, a click must land to a
// polygon's first vertex to close it.
const DefaultCloseRadius = 10.0

// Engine turns pointer events into store mutations for the active tool.
type Engine struct {
	store   *state.Store
	clock   *state.Clock
	session Session

	CloseRadius float64
	NewID       func() string

	// OnCommit receives a copy of each shape whose gesture completed.
	OnCommit func(s shape.Shape)
}

// NewEngine creates an engine drawing into store.
func NewEngine(store *state.Store, clock *state.Clock) *Engine {
	if clock == nil {
		clock = &state.Clock{}
	}
	return &Engine{
		store:       store,
		clock:       clock,
		session:     NewSession(),
		CloseRadius: DefaultCloseRadius,
		NewID:       uuid.NewString,
	}
}

// Session returns a copy of the current drawing context.
func (e *Engine) Session() Session {
	return e.session
}

// SetTool switches tools. Any partial shape is abandoned where it is.
func (e *Engine) SetTool(t Tool) {
	if e.session.Painting || e.session.Curve == CurveAwaitingControlPoint {
		log.Printf("[GESTURE] Abandoning %s gesture on %s", e.session.Tool, e.session.ActiveID)
	}
	e.session.resetGesture()
	e.session.Tool = t
}

// SetColor picks a palette color. Tokens outside the palette are ignored.
func (e *Engine) SetColor(c string) bool {
	if !shape.InPalette(c) {
		return false
	}
	e.session.Color = c
	return true
}

// SetStrokeWidth sets the width for new shapes, clamped to the allowed
// range.
func (e *Engine) SetStrokeWidth(w int) {
	e.session.StrokeWidth = shape.ClampStrokeWidth(w)
}

// Reset drops the in-flight gesture, as after clearing the canvas.
func (e *Engine) Reset() {
	e.session.resetGesture()
}

func (e *Engine) meta() shape.Meta {
	return shape.Meta{
		ID:          e.NewID(),
		Color:       e.session.Color,
		StrokeWidth: e.session.StrokeWidth,
		CreatedAt:   e.clock.Tick(),
	}
}

func (e *Engine) start(s shape.Shape) {
	if !e.store.Add(s) {
		return
	}
	e.session.ActiveID = s.Info().ID
	e.session.Painting = true
}

func (e *Engine) update(kind shape.Kind, fn func(shape.Shape)) bool {
	if e.session.ActiveID == "" {
		return false
	}
	return e.store.Update(kind, e.session.ActiveID, fn)
}

// PointerDown handles a button press at pos. A nil pos means the surface
// could not resolve the pointer and is treated as the origin.
func (e *Engine) PointerDown(pos *Point) {
	if e.session.Tool == ToolSelect {
		return
	}
	p := Position(pos)

	switch e.session.Tool {
	case ToolArrow:
		e.start(&shape.Arrow{Meta: e.meta(), Points: [4]float64{p.X, p.Y, p.X, p.Y}})
	case ToolLine:
		e.start(&shape.Line{Meta: e.meta(), Points: [4]float64{p.X, p.Y, p.X, p.Y}})
	case ToolRectangle:
		e.start(&shape.Rectangle{Meta: e.meta(), X: p.X, Y: p.Y, Width: 1, Height: 1})
	case ToolCircle:
		e.start(&shape.Circle{Meta: e.meta(), X: p.X, Y: p.Y, Radius: 1})
	case ToolFreeLine:
		e.start(&shape.FreeLine{Meta: e.meta(), Points: []float64{p.X, p.Y}})
	case ToolSpline:
		e.splineDown(p)
	case ToolPolygon:
		e.polygonDown(p)
	}
}

func (e *Engine) splineDown(p Point) {
	if e.session.Curve == CurveAwaitingControlPoint {
		ok := e.update(shape.KindSpline, func(s shape.Shape) {
			sp := s.(*shape.Spline)
			x1, y1, x3, y3 := splineEnds(sp.Points)
			sp.Points = []float64{x1, y1, p.X, p.Y, x3, y3}
		})
		if ok {
			e.session.Painting = true
			return
		}
	}
	e.session.resetGesture()
	e.start(&shape.Spline{Meta: e.meta(), Points: []float64{p.X, p.Y}})
	if e.session.Painting {
		e.session.Curve = CurveAwaitingEndpoint
	}
}

// splineEnds returns p0 and p2. A spline that never saw a pointer-move has
// no p2 yet, so p2 falls back to p0.
func splineEnds(points []float64) (x1, y1, x3, y3 float64) {
	if len(points) >= 2 {
		x1, y1 = points[0], points[1]
	}
	x3, y3 = x1, y1
	if len(points) >= 6 {
		x3, y3 = points[4], points[5]
	}
	return x1, y1, x3, y3
}

func (e *Engine) polygonDown(p Point) {
	e.session.Painting = true

	if e.session.Polygon == PolygonDrawing {
		closed := false
		ok := e.update(shape.KindPolygon, func(s shape.Shape) {
			poly := s.(*shape.Polygon)
			if poly.Closed {
				return
			}
			poly.Points = append(poly.Points, p.X, p.Y)
			if len(poly.Points) > 2 && math.Hypot(p.X-poly.Points[0], p.Y-poly.Points[1]) < e.CloseRadius {
				poly.Points = poly.Points[:len(poly.Points)-2]
				poly.Closed = true
				closed = true
			}
		})
		if ok {
			if closed {
				e.session.Polygon = PolygonClosed
			}
			return
		}
	}

	e.session.resetGesture()
	e.start(&shape.Polygon{Meta: e.meta(), Points: []float64{p.X, p.Y}})
	if e.session.Painting {
		e.session.Polygon = PolygonDrawing
	}
}

// PointerMove tracks the pointer while a gesture is in progress.
func (e *Engine) PointerMove(pos *Point) {
	if e.session.Tool == ToolSelect || !e.session.Painting {
		return
	}
	p := Position(pos)

	switch e.session.Tool {
	case ToolArrow:
		e.update(shape.KindArrow, func(s shape.Shape) {
			a := s.(*shape.Arrow)
			a.Points[2], a.Points[3] = p.X, p.Y
		})
	case ToolLine:
		e.update(shape.KindLine, func(s shape.Shape) {
			l := s.(*shape.Line)
			l.Points[2], l.Points[3] = p.X, p.Y
		})
	case ToolRectangle:
		e.update(shape.KindRectangle, func(s shape.Shape) {
			r := s.(*shape.Rectangle)
			r.Width = p.X - r.X
			r.Height = p.Y - r.Y
		})
	case ToolCircle:
		e.update(shape.KindCircle, func(s shape.Shape) {
			c := s.(*shape.Circle)
			c.Radius = math.Hypot(p.X-c.X, p.Y-c.Y)
		})
	case ToolFreeLine:
		e.update(shape.KindFreeLine, func(s shape.Shape) {
			f := s.(*shape.FreeLine)
			f.Points = append(f.Points, p.X, p.Y)
		})
	case ToolPolygon:
		e.update(shape.KindPolygon, func(s shape.Shape) {
			poly := s.(*shape.Polygon)
			if poly.Closed || len(poly.Points) < 2 {
				return
			}
			if len(poly.Points) == 2 {
				poly.Points = append(poly.Points, p.X, p.Y)
				return
			}
			poly.Points[len(poly.Points)-2] = p.X
			poly.Points[len(poly.Points)-1] = p.Y
		})
	case ToolSpline:
		curve := e.session.Curve
		e.update(shape.KindSpline, func(s shape.Shape) {
			sp := s.(*shape.Spline)
			x1, y1, x3, y3 := splineEnds(sp.Points)
			if curve == CurveAwaitingEndpoint {
				sp.Points = []float64{x1, y1, x1, y1, p.X, p.Y}
				return
			}
			sp.Points = []float64{x1, y1, p.X, p.Y, x3, y3}
		})
	}
}

// PointerUp ends the press. Releasing the pointer outside the canvas must
// also land here. A release while nothing is painting is ignored.
func (e *Engine) PointerUp() {
	if e.session.Tool == ToolSelect || !e.session.Painting {
		return
	}

	switch e.session.Tool {
	case ToolPolygon:
		if e.session.Polygon != PolygonClosed {
			return
		}
	case ToolSpline:
		if e.session.Curve == CurveAwaitingEndpoint {
			e.session.Curve = CurveAwaitingControlPoint
			e.session.Painting = false
			return
		}
		e.session.Curve = CurveCommitted
	}

	e.session.Painting = false
	e.commit()
}

// PointerLeave is PointerUp for a pointer released off the canvas.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

func (e *Engine) commit() {
	id := e.session.ActiveID
	e.session.ActiveID = ""
	if id == "" {
		return
	}

	s, ok := e.store.Get(id)
	if !ok {
		log.Printf("[GESTURE] Shape %s vanished before commit", id)
		return
	}
	log.Printf("[GESTURE] Committed %s %s", s.Kind(), id)
	if e.OnCommit != nil {
		e.OnCommit(s)
	}
}
