package ui

import (
	"fmt"
	"image/color"
	"sync"

	"LocalCanvas/internal/board"
	"LocalCanvas/internal/gesture"
	"LocalCanvas/internal/render"
	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	curveSegments = 24
	gridSize      = 50
)

// BoardWidget is the drawing surface. It shows whatever shapes the board
// hands it and forwards pointer events back to the board.
type BoardWidget struct {
	widget.BaseWidget
	stage  *render.Stage
	board  *board.Board
	shapes []shape.Shape
	mu     sync.RWMutex

	width, height float32
	showGrid      bool
	statusBar     *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ render.Surface = (*BoardWidget)(nil)

func NewBoardWidget(width, height int) *BoardWidget {
	b := &BoardWidget{
		stage:     render.NewStage(width, height),
		width:     float32(width),
		height:    float32(height),
		showGrid:  true,
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Attach connects the widget to the board that renders onto it.
func (b *BoardWidget) Attach(bd *board.Board) {
	b.board = bd
	b.updateStatus()
}

// Render implements render.Surface. It is called with the board lock held.
func (b *BoardWidget) Render(shapes []shape.Shape) {
	b.stage.Render(shapes)
	b.mu.Lock()
	b.shapes = shapes
	b.mu.Unlock()
	b.Refresh()
}

// Serialize implements render.Surface.
func (b *BoardWidget) Serialize() (string, error) {
	return b.stage.Serialize()
}

func (b *BoardWidget) visibleShapes() []shape.Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shapes
}

func (b *BoardWidget) ToggleGrid() {
	b.showGrid = !b.showGrid
	b.Refresh()
}

func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

func (b *BoardWidget) updateStatus() {
	if b.board == nil {
		return
	}
	st := b.board.Status()
	b.statusBar.SetText(statusText(st))
}

func statusText(st board.Status) string {
	text := fmt.Sprintf("%s | %s | step %d/%d", st.Session.Tool, st.Session.Color, st.Step, st.Length)
	if st.Session.Curve == gesture.CurveAwaitingControlPoint {
		text += " | drag to bend the curve"
	}
	if st.Session.Polygon == gesture.PolygonDrawing {
		text += " | click the first point to close"
	}
	return text
}

func position(p fyne.Position) *gesture.Point {
	return &gesture.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.board == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.board.PointerDown(position(e.Position))
	b.updateStatus()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.board == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.board.PointerUp()
	b.updateStatus()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.board == nil {
		return
	}
	b.board.PointerMove(position(e.Position))
}

// DragEnd can follow MouseUp for the same release; the second one is a
// no-op on the board.
func (b *BoardWidget) DragEnd() {
	if b.board == nil {
		return
	}
	b.board.PointerUp()
	b.updateStatus()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.board == nil {
		return
	}
	b.board.PointerMove(position(e.Position))
}

func (b *BoardWidget) MouseOut() {
	if b.board == nil {
		return
	}
	b.board.PointerLeave()
	b.updateStatus()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	r.Refresh()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	objects := []fyne.CanvasObject{r.background}
	if r.board.showGrid {
		objects = append(objects, gridLines(r.board.width, r.board.height)...)
	}
	for _, s := range r.board.visibleShapes() {
		objects = append(objects, shapeObjects(s)...)
	}
	r.objects = objects
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.board.width, r.board.height)
}

func gridLines(width, height float32) []fyne.CanvasObject {
	var lines []fyne.CanvasObject
	gridColor := color.NRGBA{R: 220, G: 220, B: 220, A: 100}

	for x := float32(0); x < width; x += gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, height)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := float32(0); y < height; y += gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(width, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

// shapeObjects converts one shape into fyne primitives.
func shapeObjects(s shape.Shape) []fyne.CanvasObject {
	info := s.Info()
	c := shape.RGBA(info.Color)
	w := float32(info.StrokeWidth)

	switch v := s.(type) {
	case *shape.Arrow:
		p := v.Points
		head := render.ArrowHead(p[0], p[1], p[2], p[3], float64(info.StrokeWidth))
		return []fyne.CanvasObject{
			segment(c, w, [4]float64{p[0], p[1], p[2], p[3]}),
			segment(c, w, [4]float64{p[2], p[3], head[0], head[1]}),
			segment(c, w, [4]float64{p[2], p[3], head[2], head[3]}),
		}
	case *shape.Line:
		return []fyne.CanvasObject{segment(c, w, v.Points)}
	case *shape.Spline:
		return polyline(c, w, render.QuadCurve(v.Points, curveSegments), false)
	case *shape.Rectangle:
		area := state.ShapeBounds(v)
		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = c
		rect.StrokeWidth = w
		rect.Move(fyne.NewPos(float32(area.X), float32(area.Y)))
		rect.Resize(fyne.NewSize(float32(area.Width), float32(area.Height)))
		return []fyne.CanvasObject{rect}
	case *shape.Circle:
		circle := canvas.NewCircle(color.Transparent)
		circle.StrokeColor = c
		circle.StrokeWidth = w
		circle.Position1 = fyne.NewPos(float32(v.X-v.Radius), float32(v.Y-v.Radius))
		circle.Position2 = fyne.NewPos(float32(v.X+v.Radius), float32(v.Y+v.Radius))
		return []fyne.CanvasObject{circle}
	case *shape.FreeLine:
		return polyline(c, w, v.Points, false)
	case *shape.Polygon:
		return polyline(c, w, v.Points, v.Closed)
	}
	return nil
}

func segment(c color.Color, width float32, p [4]float64) fyne.CanvasObject {
	line := canvas.NewLine(c)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(float32(p[0]), float32(p[1]))
	line.Position2 = fyne.NewPos(float32(p[2]), float32(p[3]))
	return line
}

func polyline(c color.Color, width float32, points []float64, closed bool) []fyne.CanvasObject {
	segs := render.Segments(points, closed)
	objects := make([]fyne.CanvasObject, 0, len(segs))
	for _, seg := range segs {
		objects = append(objects, segment(c, width, seg))
	}
	return objects
}
