package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// tcellColor converts a palette color, using fallback for the zero value.
func tcellColor(c color.RGBA, fallback tcell.Color) tcell.Color {
	if c == (color.RGBA{}) {
		return fallback
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
