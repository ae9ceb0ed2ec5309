package window

import (
	"errors"

	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// DefaultScale is the window size multiplier when none is configured.
	DefaultScale = 10

	bytesPerPixel = 4
)

// ErrUnavailable is returned when the binary was built without the ebiten tag.
var ErrUnavailable = errors.New("window backend not available - compile with -tags ebiten")

// fillPixels writes frame as RGBA bytes into buf, which holds 64x32 pixels.
func fillPixels(buf []byte, frame video.Snapshot, palette video.Palette) {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			c := palette.Color(frame.Pixel(x, y))
			i := (y*video.FramebufferWidth + x) * bytesPerPixel
			buf[i] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
		}
	}
}
