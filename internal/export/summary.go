package export

import (
	"fmt"
	"io"
	"time"

	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"
)

// Summary writes a plain text listing of shapes, one block per shape.
func Summary(w io.Writer, shapes []shape.Shape) error {
	fmt.Fprintf(w, "LocalCanvas Export\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Total shapes: %d\n\n", len(shapes))

	for i, s := range shapes {
		info := s.Info()
		b := state.ShapeBounds(s)
		fmt.Fprintf(w, "Shape %d:\n", i+1)
		fmt.Fprintf(w, "  Kind: %s\n", s.Kind())
		fmt.Fprintf(w, "  ID: %s\n", info.ID)
		fmt.Fprintf(w, "  Color: %s\n", info.Color)
		fmt.Fprintf(w, "  Stroke: %d\n", info.StrokeWidth)
		fmt.Fprintf(w, "  Created: %s\n", time.UnixMilli(info.CreatedAt).UTC().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  Bounds: (%.2f, %.2f) %.2f x %.2f\n", b.X, b.Y, b.Width, b.Height)
		if poly, ok := s.(*shape.Polygon); ok {
			fmt.Fprintf(w, "  Closed: %t\n", poly.Closed)
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
