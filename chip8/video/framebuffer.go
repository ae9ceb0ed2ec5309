package video

import (
	"errors"
	"fmt"
)

const (
	// FramebufferWidth is the horizontal resolution in pixels.
	FramebufferWidth = 64
	// FramebufferHeight is the vertical resolution in pixels.
	FramebufferHeight = 32
)

// ErrPixelOutOfRange is returned when a coordinate lies outside the grid.
var ErrPixelOutOfRange = errors.New("pixel coordinate out of range")

// FrameBuffer is the live 64x32 monochrome display.
// Each row is packed into a uint64, pixel x=0 being the most significant bit.
type FrameBuffer struct {
	rows [FramebufferHeight]uint64
}

// NewFrameBuffer creates a frame buffer with every pixel off.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.rows = [FramebufferHeight]uint64{}
}

// GetPixel returns the state of the pixel at x, y.
// Coordinates must already be wrapped into range by the caller.
func (fb *FrameBuffer) GetPixel(x, y int) (bool, error) {
	if err := checkRange(x, y); err != nil {
		return false, err
	}
	return fb.rows[y]&mask(x) != 0, nil
}

// SetPixel XORs value into the pixel at x, y. The pixel only changes when
// value is true.
func (fb *FrameBuffer) SetPixel(x, y int, value bool) error {
	if err := checkRange(x, y); err != nil {
		return err
	}
	if value {
		fb.rows[y] ^= mask(x)
	}
	return nil
}

// Snapshot returns an immutable copy of the current frame.
func (fb *FrameBuffer) Snapshot() Snapshot {
	return Snapshot(fb.rows)
}

func checkRange(x, y int) error {
	if x < 0 || x >= FramebufferWidth || y < 0 || y >= FramebufferHeight {
		return fmt.Errorf("%w: (%d, %d)", ErrPixelOutOfRange, x, y)
	}
	return nil
}

func mask(x int) uint64 {
	return 1 << (FramebufferWidth - 1 - x)
}
