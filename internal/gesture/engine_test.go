package gesture

import (
	"fmt"
	"testing"

	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"

	"github.com/stretchr/testify/require"
)

type harness struct {
	store     *state.Store
	engine    *Engine
	committed []shape.Shape
}

func newHarness(t *testing.T, tool Tool) *harness {
	t.Helper()
	h := &harness{store: state.NewStore()}
	h.engine = NewEngine(h.store, &state.Clock{})
	n := 0
	h.engine.NewID = func() string {
		n++
		return fmt.Sprintf("shape-%d", n)
	}
	h.engine.OnCommit = func(s shape.Shape) { h.committed = append(h.committed, s) }
	h.engine.SetTool(tool)
	return h
}

func pt(x, y float64) *Point { return &Point{X: x, Y: y} }

func (h *harness) click(x, y float64) {
	h.engine.PointerDown(pt(x, y))
	h.engine.PointerUp()
}

func (h *harness) only(t *testing.T, kind shape.Kind) shape.Shape {
	t.Helper()
	items := h.store.Shapes(kind)
	require.Len(t, items, 1)
	return items[0]
}

func TestSelectToolIgnoresPointer(t *testing.T) {
	h := newHarness(t, ToolSelect)
	h.engine.PointerDown(pt(1, 1))
	h.engine.PointerMove(pt(2, 2))
	h.engine.PointerUp()

	require.Zero(t, h.store.Len())
	require.Empty(t, h.committed)
}

func TestRectangleDragEncodesDirection(t *testing.T) {
	h := newHarness(t, ToolRectangle)
	h.engine.PointerDown(pt(50, 50))
	h.engine.PointerMove(pt(20, 80))

	r := h.only(t, shape.KindRectangle).(*shape.Rectangle)
	require.Equal(t, 50.0, r.X)
	require.Equal(t, 50.0, r.Y)
	require.Equal(t, -30.0, r.Width)
	require.Equal(t, 30.0, r.Height)

	h.engine.PointerUp()
	require.Len(t, h.committed, 1)
	require.False(t, h.engine.Session().Painting)
}

func TestCircleRadiusIsDistance(t *testing.T) {
	h := newHarness(t, ToolCircle)
	h.engine.PointerDown(pt(100, 100))
	h.engine.PointerMove(pt(103, 104))
	h.engine.PointerUp()

	c := h.only(t, shape.KindCircle).(*shape.Circle)
	require.InDelta(t, 5.0, c.Radius, 1e-9)
	require.Len(t, h.committed, 1)
}

func TestLineAndArrowKeepStart(t *testing.T) {
	for _, tool := range []Tool{ToolLine, ToolArrow} {
		t.Run(string(tool), func(t *testing.T) {
			h := newHarness(t, tool)
			h.engine.PointerDown(pt(1, 2))
			h.engine.PointerMove(pt(5, 5))
			h.engine.PointerMove(pt(7, 9))
			h.engine.PointerUp()

			kind, _ := tool.Kind()
			var pts [4]float64
			switch s := h.only(t, kind).(type) {
			case *shape.Line:
				pts = s.Points
			case *shape.Arrow:
				pts = s.Points
			}
			require.Equal(t, [4]float64{1, 2, 7, 9}, pts)
		})
	}
}

func TestFreeLineAppends(t *testing.T) {
	h := newHarness(t, ToolFreeLine)
	h.engine.PointerDown(pt(0, 0))
	h.engine.PointerMove(pt(1, 1))
	h.engine.PointerMove(pt(2, 3))
	h.engine.PointerUp()
	h.engine.PointerMove(pt(9, 9))

	f := h.only(t, shape.KindFreeLine).(*shape.FreeLine)
	require.Equal(t, []float64{0, 0, 1, 1, 2, 3}, f.Points)
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	h := newHarness(t, ToolFreeLine)
	h.engine.PointerMove(pt(1, 1))
	require.Zero(t, h.store.Len())
}

func TestNilPositionFallsBackToOrigin(t *testing.T) {
	h := newHarness(t, ToolCircle)
	h.engine.PointerDown(nil)
	h.engine.PointerMove(pt(3, 4))
	h.engine.PointerUp()

	c := h.only(t, shape.KindCircle).(*shape.Circle)
	require.Zero(t, c.X)
	require.Zero(t, c.Y)
	require.InDelta(t, 5.0, c.Radius, 1e-9)
}

func TestNewShapesCarrySessionStyle(t *testing.T) {
	h := newHarness(t, ToolRectangle)
	require.True(t, h.engine.SetColor("#3357FF"))
	require.False(t, h.engine.SetColor("#ABCDEF"))
	h.engine.SetStrokeWidth(99)
	h.click(0, 0)
	h.click(5, 5)

	items := h.store.Shapes(shape.KindRectangle)
	require.Len(t, items, 2)
	for _, s := range items {
		require.Equal(t, "#3357FF", s.Info().Color)
		require.Equal(t, shape.MaxStrokeWidth, s.Info().StrokeWidth)
	}
	require.Less(t, items[0].Info().CreatedAt, items[1].Info().CreatedAt)
	require.NotEqual(t, items[0].Info().ID, items[1].Info().ID)
}

func TestSplineTwoClickGesture(t *testing.T) {
	h := newHarness(t, ToolSpline)

	h.engine.PointerDown(pt(0, 0))
	sp := h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{0, 0}, sp.Points)
	require.Equal(t, CurveAwaitingEndpoint, h.engine.Session().Curve)

	h.engine.PointerMove(pt(10, 0))
	sp = h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{0, 0, 0, 0, 10, 0}, sp.Points)

	h.engine.PointerUp()
	require.Equal(t, CurveAwaitingControlPoint, h.engine.Session().Curve)
	require.Empty(t, h.committed, "first release only places the endpoint")

	h.engine.PointerMove(pt(50, 50))
	sp = h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{0, 0, 0, 0, 10, 0}, sp.Points, "no preview between clicks")

	h.engine.PointerDown(pt(5, 5))
	sp = h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{0, 0, 5, 5, 10, 0}, sp.Points)

	h.engine.PointerMove(pt(6, 8))
	sp = h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{0, 0, 6, 8, 10, 0}, sp.Points)

	h.engine.PointerUp()
	require.Len(t, h.committed, 1)
	require.Equal(t, CurveCommitted, h.engine.Session().Curve)

	h.engine.PointerDown(pt(20, 20))
	require.Len(t, h.store.Shapes(shape.KindSpline), 2, "next press starts a new curve")
}

func TestSplineWithoutDragUsesStartAsEndpoint(t *testing.T) {
	h := newHarness(t, ToolSpline)
	h.click(3, 4)
	h.click(8, 8)

	sp := h.only(t, shape.KindSpline).(*shape.Spline)
	require.Equal(t, []float64{3, 4, 8, 8, 3, 4}, sp.Points)
	require.Len(t, h.committed, 1)
}

func TestPolygonClosesNearFirstVertex(t *testing.T) {
	h := newHarness(t, ToolPolygon)

	h.click(10, 10)
	h.click(50, 10)
	h.click(50, 50)
	require.Empty(t, h.committed)
	require.True(t, h.engine.Session().Painting, "open polygon keeps painting across releases")

	h.engine.PointerDown(pt(12, 11))
	poly := h.only(t, shape.KindPolygon).(*shape.Polygon)
	require.True(t, poly.Closed)
	require.Equal(t, []float64{10, 10, 50, 10, 50, 50}, poly.Points)

	h.engine.PointerUp()
	require.Len(t, h.committed, 1)
	require.Equal(t, PolygonClosed, h.engine.Session().Polygon)

	h.click(100, 100)
	require.Len(t, h.store.Shapes(shape.KindPolygon), 2)
}

func TestPolygonMoveTracksTrailingPoint(t *testing.T) {
	h := newHarness(t, ToolPolygon)
	h.click(0, 0)
	h.engine.PointerMove(pt(30, 0))
	poly := h.only(t, shape.KindPolygon).(*shape.Polygon)
	require.Equal(t, []float64{0, 0, 30, 0}, poly.Points)

	h.engine.PointerMove(pt(40, 5))
	poly = h.only(t, shape.KindPolygon).(*shape.Polygon)
	require.Equal(t, []float64{0, 0, 40, 5}, poly.Points)
	require.False(t, poly.Closed)
}

func TestPolygonCloseRadiusIsConfigurable(t *testing.T) {
	h := newHarness(t, ToolPolygon)
	h.engine.CloseRadius = 5

	h.click(10, 10)
	h.click(50, 10)
	h.click(50, 50)
	h.click(16, 10)
	poly := h.only(t, shape.KindPolygon).(*shape.Polygon)
	require.False(t, poly.Closed, "6 units is outside a radius of 5")

	h.click(11, 11)
	poly = h.only(t, shape.KindPolygon).(*shape.Polygon)
	require.True(t, poly.Closed)
	require.Equal(t, []float64{10, 10, 50, 10, 50, 50, 16, 10}, poly.Points)
}

func TestToolSwitchAbandonsPartialShape(t *testing.T) {
	h := newHarness(t, ToolPolygon)
	h.click(0, 0)
	h.click(40, 0)

	h.engine.SetTool(ToolPolygon)
	require.False(t, h.engine.Session().Painting)
	h.click(100, 100)

	polys := h.store.Shapes(shape.KindPolygon)
	require.Len(t, polys, 2, "abandoned polygon stays, a new one starts")
	require.False(t, polys[0].(*shape.Polygon).Closed)
	require.Empty(t, h.committed)
}

func TestStrayReleaseIsIgnored(t *testing.T) {
	h := newHarness(t, ToolRectangle)
	h.engine.PointerDown(pt(0, 0))
	h.engine.PointerUp()
	h.engine.PointerLeave()
	h.engine.PointerUp()

	require.Len(t, h.committed, 1)
}

func TestLeaveCommitsLikeRelease(t *testing.T) {
	h := newHarness(t, ToolLine)
	h.engine.PointerDown(pt(0, 0))
	h.engine.PointerMove(pt(4, 4))
	h.engine.PointerLeave()

	require.Len(t, h.committed, 1)
	require.False(t, h.engine.Session().Painting)
}

func TestParseTool(t *testing.T) {
	for _, tool := range Tools {
		got, ok := ParseTool(string(tool))
		require.True(t, ok)
		require.Equal(t, tool, got)
	}
	_, ok := ParseTool("eraser")
	require.False(t, ok)

	_, ok = ToolSelect.Kind()
	require.False(t, ok)
	k, ok := ToolFreeLine.Kind()
	require.True(t, ok)
	require.Equal(t, shape.KindFreeLine, k)
}
