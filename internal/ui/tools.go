package ui

import (
	"image/color"
	"log"

	"LocalCanvas/internal/export"
	"LocalCanvas/internal/gesture"
	"LocalCanvas/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Token    string
	Color    color.Color
	OnTapped func(string)
}

func newColorSwatch(token string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Token: token, Color: shape.RGBA(token), OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Token)
	}
}

func toolNames() []string {
	names := make([]string, 0, len(gesture.Tools))
	for _, t := range gesture.Tools {
		names = append(names, string(t))
	}
	return names
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	bd := board.board
	st := bd.Status()

	toolSelect := widget.NewSelect(toolNames(), func(name string) {
		if t, ok := gesture.ParseTool(name); ok {
			bd.SetTool(t)
			board.updateStatus()
		}
	})
	toolSelect.SetSelected(string(st.Session.Tool))

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			bd.Undo()
			board.updateStatus()
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			bd.Redo()
			board.updateStatus()
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear canvas", "Remove every shape and erase the saved drawing?", func(ok bool) {
				if !ok {
					return
				}
				bd.Clear()
				board.updateStatus()
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			exportPDF(board, win)
		}),
	)

	// --- Color Palette ---
	onColorTapped := func(token string) {
		bd.SetColor(token)
		board.updateStatus()
	}
	colorBox := container.NewHBox()
	for _, token := range shape.Palette {
		colorBox.Add(newColorSwatch(token, onColorTapped))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(shape.MinStrokeWidth, shape.MaxStrokeWidth)
	strokeSlider.SetValue(float64(st.Session.StrokeWidth))
	strokeSlider.OnChanged = func(val float64) {
		bd.SetStrokeWidth(int(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	grid := widget.NewCheck("Grid", func(bool) { board.ToggleGrid() })
	grid.Checked = board.showGrid

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		grid,
		layout.NewSpacer(),
	)
}

func exportPDF(board *BoardWidget, win fyne.Window) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
		if err := export.PDF(path, board.board.Shapes()); err != nil {
			dialog.ShowError(err, win)
			return
		}
		board.statusBar.SetText("Exported to " + path)
	}, win)
}
