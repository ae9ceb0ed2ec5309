package video

import (
	"math/bits"
	"strings"
)

// Snapshot is a copy of the frame buffer contents, safe to hand to renderers
// running on another goroutine.
type Snapshot [FramebufferHeight]uint64

// Pixel reports whether the pixel at x, y is lit. Out of range coordinates
// are reported as off.
func (s Snapshot) Pixel(x, y int) bool {
	if checkRange(x, y) != nil {
		return false
	}
	return s[y]&mask(x) != 0
}

// Row returns the packed bits of row y, x=0 in the most significant bit.
func (s Snapshot) Row(y int) uint64 {
	return s[y]
}

// Lit returns the number of pixels that are on.
func (s Snapshot) Lit() int {
	count := 0
	for _, row := range s {
		count += bits.OnesCount64(row)
	}
	return count
}

// String renders the frame as text, one line per row, '#' for lit pixels.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow((FramebufferWidth + 1) * FramebufferHeight)
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			if s.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
