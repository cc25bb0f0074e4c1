package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Stroke width bounds accepted by the stroke slider.
const (
	MinStrokeWidth     = 5
	MaxStrokeWidth     = 50
	DefaultStrokeWidth = MinStrokeWidth
)

// DefaultColor is the first palette entry.
const DefaultColor = "#000"

// Palette is the fixed set of stroke colors offered by the color control.
var Palette = []string{
	"#000",
	"#FF5733",
	"#33FF57",
	"#3357FF",
	"#F1C40F",
	"#9B59B6",
	"#E67E22",
	"#2ECC71",
	"#3498DB",
}

// InPalette reports whether c is one of the palette tokens. The
// comparison ignores case.
func InPalette(c string) bool {
	for _, p := range Palette {
		if strings.EqualFold(p, c) {
			return true
		}
	}
	return false
}

// ClampStrokeWidth pins w into [MinStrokeWidth, MaxStrokeWidth].
func ClampStrokeWidth(w int) int {
	if w < MinStrokeWidth {
		return MinStrokeWidth
	}
	if w > MaxStrokeWidth {
		return MaxStrokeWidth
	}
	return w
}

// ParseColor turns a "#rgb" or "#rrggbb" token into an opaque RGBA.
func ParseColor(token string) (color.RGBA, error) {
	hex := strings.TrimPrefix(token, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", token)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", token, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// RGBA is ParseColor that falls back to opaque black.
func RGBA(token string) color.RGBA {
	c, err := ParseColor(token)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
