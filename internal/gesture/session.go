package gesture

import "LocalCanvas/internal/shape"

// Tool is the active drawing tool as emitted by the tool selector.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = Tool(shape.KindRectangle)
	ToolCircle    Tool = Tool(shape.KindCircle)
	ToolFreeLine  Tool = Tool(shape.KindFreeLine)
	ToolArrow     Tool = Tool(shape.KindArrow)
	ToolPolygon   Tool = Tool(shape.KindPolygon)
	ToolLine      Tool = Tool(shape.KindLine)
	ToolSpline    Tool = Tool(shape.KindSpline)
)

// Tools lists the tool tokens in toolbar order.
var Tools = []Tool{
	ToolSelect,
	ToolRectangle,
	ToolCircle,
	ToolFreeLine,
	ToolArrow,
	ToolPolygon,
	ToolLine,
	ToolSpline,
}

// ParseTool maps a token to a Tool.
func ParseTool(token string) (Tool, bool) {
	for _, t := range Tools {
		if string(t) == token {
			return t, true
		}
	}
	return "", false
}

// Kind returns the shape kind drawn by the tool. Select draws nothing.
func (t Tool) Kind() (shape.Kind, bool) {
	if t == ToolSelect {
		return "", false
	}
	k := shape.Kind(t)
	return k, k.Valid()
}

// Point is a position in canvas-local coordinates.
type Point struct {
	X, Y float64
}

// Position resolves an optional pointer position, falling back to the
// origin.
func Position(p *Point) Point {
	if p == nil {
		return Point{}
	}
	return *p
}

// CurveState tracks the two-click spline gesture.
type CurveState int

const (
	CurveIdle CurveState = iota
	// First button press is down; the pointer drags the endpoint.
	CurveAwaitingEndpoint
	// Endpoint placed; the next press and drag bends the curve.
	CurveAwaitingControlPoint
	CurveCommitted
)

func (c CurveState) String() string {
	switch c {
	case CurveIdle:
		return "idle"
	case CurveAwaitingEndpoint:
		return "awaiting-endpoint"
	case CurveAwaitingControlPoint:
		return "awaiting-control-point"
	case CurveCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// PolygonState tracks the click-to-close polygon gesture.
type PolygonState int

const (
	PolygonIdle PolygonState = iota
	PolygonDrawing
	PolygonClosed
)

func (p PolygonState) String() string {
	switch p {
	case PolygonIdle:
		return "idle"
	case PolygonDrawing:
		return "drawing"
	case PolygonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is the drawing context owned by one Engine: the current tool
// selections plus the in-flight gesture.
type Session struct {
	Tool        Tool
	Color       string
	StrokeWidth int

	Painting bool
	ActiveID string
	Curve    CurveState
	Polygon  PolygonState
}

// NewSession starts with the select tool and default stroke settings.
func NewSession() Session {
	return Session{
		Tool:        ToolSelect,
		Color:       shape.DefaultColor,
		StrokeWidth: shape.DefaultStrokeWidth,
	}
}

// resetGesture forgets the in-flight gesture, keeping tool selections.
func (s *Session) resetGesture() {
	s.Painting = false
	s.ActiveID = ""
	s.Curve = CurveIdle
	s.Polygon = PolygonIdle
}
