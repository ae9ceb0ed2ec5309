package video

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBuffer_SetPixelXORs(t *testing.T) {
	fb := NewFrameBuffer()

	require.NoError(t, fb.SetPixel(3, 4, true))
	on, err := fb.GetPixel(3, 4)
	require.NoError(t, err)
	assert.True(t, on)

	// false leaves the pixel alone
	require.NoError(t, fb.SetPixel(3, 4, false))
	on, _ = fb.GetPixel(3, 4)
	assert.True(t, on)

	// true toggles it back off
	require.NoError(t, fb.SetPixel(3, 4, true))
	on, _ = fb.GetPixel(3, 4)
	assert.False(t, on)
}

func TestFrameBuffer_Corners(t *testing.T) {
	fb := NewFrameBuffer()
	corners := [][2]int{{0, 0}, {63, 0}, {0, 31}, {63, 31}}

	for _, c := range corners {
		require.NoError(t, fb.SetPixel(c[0], c[1], true))
	}

	snap := fb.Snapshot()
	for _, c := range corners {
		assert.True(t, snap.Pixel(c[0], c[1]), "corner %v", c)
	}
	assert.Equal(t, 4, snap.Lit())
}

func TestFrameBuffer_OutOfRange(t *testing.T) {
	fb := NewFrameBuffer()
	tests := []struct {
		x, y int
	}{
		{64, 0},
		{0, 32},
		{-1, 0},
		{0, -1},
	}

	for _, tt := range tests {
		_, err := fb.GetPixel(tt.x, tt.y)
		assert.ErrorIs(t, err, ErrPixelOutOfRange)
		assert.ErrorIs(t, fb.SetPixel(tt.x, tt.y, true), ErrPixelOutOfRange)
	}
	assert.Zero(t, fb.Snapshot().Lit())
}

func TestFrameBuffer_Clear(t *testing.T) {
	fb := NewFrameBuffer()
	for x := 0; x < FramebufferWidth; x++ {
		require.NoError(t, fb.SetPixel(x, x%FramebufferHeight, true))
	}
	assert.Equal(t, FramebufferWidth, fb.Snapshot().Lit())

	fb.Clear()
	assert.Zero(t, fb.Snapshot().Lit())
}

func TestSnapshot_IsImmutableCopy(t *testing.T) {
	fb := NewFrameBuffer()
	require.NoError(t, fb.SetPixel(10, 10, true))

	snap := fb.Snapshot()
	require.NoError(t, fb.SetPixel(10, 10, true))
	require.NoError(t, fb.SetPixel(11, 10, true))

	assert.True(t, snap.Pixel(10, 10))
	assert.False(t, snap.Pixel(11, 10))
	assert.False(t, snap.Pixel(64, 0))
}

func TestSnapshot_Lit(t *testing.T) {
	fb := NewFrameBuffer()
	assert.Zero(t, fb.Snapshot().Lit())

	for x := 0; x < FramebufferWidth; x++ {
		require.NoError(t, fb.SetPixel(x, 5, true))
	}
	require.NoError(t, fb.SetPixel(0, 0, true))
	require.NoError(t, fb.SetPixel(63, 31, true))

	assert.Equal(t, FramebufferWidth+2, fb.Snapshot().Lit())
}

func TestSnapshot_String(t *testing.T) {
	fb := NewFrameBuffer()
	require.NoError(t, fb.SetPixel(0, 0, true))
	require.NoError(t, fb.SetPixel(63, 31, true))

	lines := strings.Split(strings.TrimSuffix(fb.Snapshot().String(), "\n"), "\n")
	require.Len(t, lines, FramebufferHeight)
	assert.Equal(t, "#"+strings.Repeat(".", 63), lines[0])
	assert.Equal(t, strings.Repeat(".", 63)+"#", lines[31])
}

func TestListenerFunc(t *testing.T) {
	var got Snapshot
	calls := 0
	var l Listener = ListenerFunc(func(frame Snapshot) {
		got = frame
		calls++
	})

	fb := NewFrameBuffer()
	require.NoError(t, fb.SetPixel(1, 2, true))
	l.FrameChanged(fb.Snapshot())

	assert.Equal(t, 1, calls)
	assert.True(t, got.Pixel(1, 2))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#33FF66")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF}, c)

	c, err = ParseColor("000000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xFF}, c)

	_, err = ParseColor("#FFF")
	assert.Error(t, err)
	_, err = ParseColor("#GGGGGG")
	assert.Error(t, err)
}

func TestPalette_Color(t *testing.T) {
	assert.Equal(t, DefaultPalette.On, DefaultPalette.Color(true))
	assert.Equal(t, DefaultPalette.Off, DefaultPalette.Color(false))
}
