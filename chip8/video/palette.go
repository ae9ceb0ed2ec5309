package video

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette maps the two pixel states to colors for image based renderers.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

// DefaultPalette draws white pixels on black.
var DefaultPalette = Palette{
	On:  color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Off: color.RGBA{A: 0xFF},
}

// Color returns the color for a pixel state.
func (p Palette) Color(lit bool) color.RGBA {
	if lit {
		return p.On
	}
	return p.Off
}

// ParseColor parses "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 0xFF,
	}, nil
}
