package ui

import (
	"testing"

	"LocalCanvas/internal/board"
	"LocalCanvas/internal/gesture"
	"LocalCanvas/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"
)

func press(pos fyne.Position) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}, Button: desktop.MouseButtonPrimary}
}

func newTestBoard(t *testing.T) (*BoardWidget, fyne.App) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	return NewBoard(a, Options{Width: 500, Height: 500}), a
}

func TestBoardWidget_DrawsRectangle(t *testing.T) {
	w, _ := newTestBoard(t)
	w.board.SetTool(gesture.ToolRectangle)

	w.MouseDown(press(fyne.NewPos(50, 50)))
	w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 80)}})
	w.MouseUp(press(fyne.NewPos(20, 80)))
	w.DragEnd()

	st := w.board.Status()
	require.Equal(t, 1, st.Length)
	require.Len(t, w.visibleShapes(), 1)
	require.Contains(t, w.statusBar.Text, "step 1/1")

	rect := w.visibleShapes()[0].(*shape.Rectangle)
	require.Equal(t, -30.0, rect.Width)
	require.Equal(t, 30.0, rect.Height)
}

func TestBoardWidget_IgnoresSecondaryButton(t *testing.T) {
	w, _ := newTestBoard(t)
	w.board.SetTool(gesture.ToolCircle)

	w.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	require.Empty(t, w.visibleShapes())
}

func TestBoardWidget_LeaveCommits(t *testing.T) {
	w, _ := newTestBoard(t)
	w.board.SetTool(gesture.ToolFreeLine)

	w.MouseDown(press(fyne.NewPos(1, 1)))
	w.MouseMoved(press(fyne.NewPos(2, 2)))
	w.MouseOut()

	require.Equal(t, 1, w.board.Status().Length)
}

func TestNewBoard_RestoresFromPreferences(t *testing.T) {
	w, a := newTestBoard(t)
	w.board.SetTool(gesture.ToolLine)
	w.MouseDown(press(fyne.NewPos(0, 0)))
	w.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	w.DragEnd()

	reloaded := NewBoard(a, Options{Width: 500, Height: 500})
	require.Equal(t, w.board.Shapes(), reloaded.board.Shapes())
	require.Equal(t, 1, reloaded.board.Status().Step)
}

func TestPreferencesStore(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	s := preferencesStore{prefs: a.Preferences()}

	_, ok := s.Get("konva")
	require.False(t, ok)

	require.NoError(t, s.Set("konva", "{}"))
	v, ok := s.Get("konva")
	require.True(t, ok)
	require.Equal(t, "{}", v)

	require.NoError(t, s.Remove("konva"))
	_, ok = s.Get("konva")
	require.False(t, ok)
}

func TestShapeObjects(t *testing.T) {
	meta := shape.Meta{ID: "s", Color: "#FF5733", StrokeWidth: 5}
	tests := []struct {
		name  string
		shape shape.Shape
		want  int
	}{
		{"arrow has shaft and barbs", &shape.Arrow{Meta: meta, Points: [4]float64{0, 0, 10, 0}}, 3},
		{"line", &shape.Line{Meta: meta, Points: [4]float64{0, 0, 10, 0}}, 1},
		{"spline is sampled", &shape.Spline{Meta: meta, Points: []float64{0, 0, 5, 5, 10, 0}}, curveSegments},
		{"rectangle", &shape.Rectangle{Meta: meta, X: 10, Y: 10, Width: -5, Height: 5}, 1},
		{"circle", &shape.Circle{Meta: meta, X: 10, Y: 10, Radius: 3}, 1},
		{"free line", &shape.FreeLine{Meta: meta, Points: []float64{0, 0, 1, 1, 2, 2}}, 2},
		{"open polygon", &shape.Polygon{Meta: meta, Points: []float64{0, 0, 1, 0, 1, 1}}, 2},
		{"closed polygon", &shape.Polygon{Meta: meta, Points: []float64{0, 0, 1, 0, 1, 1}, Closed: true}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, shapeObjects(tt.shape), tt.want)
		})
	}

	rect := shapeObjects(&shape.Rectangle{Meta: meta, X: 10, Y: 10, Width: -5, Height: 5})[0].(*canvas.Rectangle)
	require.Equal(t, fyne.NewPos(5, 10), rect.Position())
	require.Equal(t, fyne.NewSize(5, 5), rect.Size())
}

func TestStatusText(t *testing.T) {
	st := board.Status{Step: 1, Length: 2, Session: gesture.NewSession()}
	require.Equal(t, "select | #000 | step 1/2", statusText(st))

	st.Session.Polygon = gesture.PolygonDrawing
	require.Contains(t, statusText(st), "close")
}
