package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LocalCanvas/internal/shape"

	"github.com/stretchr/testify/require"
)

func drawing() []shape.Shape {
	meta := func(id string) shape.Meta {
		return shape.Meta{ID: id, Color: "#FF5733", StrokeWidth: 5, CreatedAt: 1700000000000}
	}
	return []shape.Shape{
		&shape.Arrow{Meta: meta("a"), Points: [4]float64{0, 0, 40, 40}},
		&shape.Line{Meta: meta("l"), Points: [4]float64{10, 0, 10, 90}},
		&shape.Spline{Meta: meta("s"), Points: []float64{0, 0, 5, 5, 10, 0}},
		&shape.Rectangle{Meta: meta("r"), X: 50, Y: 50, Width: -30, Height: 30},
		&shape.Circle{Meta: meta("c"), X: 100, Y: 100, Radius: 5},
		&shape.FreeLine{Meta: meta("f"), Points: []float64{0, 0, 1, 1, 2, 3}},
		&shape.Polygon{Meta: meta("p"), Points: []float64{10, 10, 50, 10, 50, 50}, Closed: true},
	}
}

func TestPDF_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.pdf")
	require.NoError(t, PDF(path, drawing()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestPDF_EmptyDrawing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, PDF(path, nil))
}

func TestPDF_BadPath(t *testing.T) {
	require.Error(t, PDF(filepath.Join(t.TempDir(), "missing", "x.pdf"), drawing()))
}

func TestSummary(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Summary(&sb, drawing()))

	out := sb.String()
	require.Contains(t, out, "Total shapes: 7")
	require.Contains(t, out, "Kind: polygon")
	require.Contains(t, out, "Closed: true")
	require.Contains(t, out, "Bounds: (20.00, 50.00) 30.00 x 30.00")
}
