package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

func newSimulated(t *testing.T, config backend.Config) (*Backend, tcell.SimulationScreen, *time.Time) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	now := time.Unix(1000, 0)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Init(config))
	screen.SetSize(120, 40)
	t.Cleanup(func() { _ = b.Cleanup() })

	return b, screen, &now
}

func find(events []backend.InputEvent, act action.Action) (event.Type, bool) {
	for _, e := range events {
		if e.Action == act {
			return e.Type, true
		}
	}
	return 0, false
}

func TestUpdate_KeypadLifecycle(t *testing.T) {
	b, screen, now := newSimulated(t, backend.Config{})
	frame := video.NewFrameBuffer().Snapshot()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	events, err := b.Update(frame)
	require.NoError(t, err)
	typ, ok := find(events, action.Keypad4)
	require.True(t, ok)
	assert.Equal(t, event.Press, typ)

	*now = now.Add(50 * time.Millisecond)
	events, err = b.Update(frame)
	require.NoError(t, err)
	typ, _ = find(events, action.Keypad4)
	assert.Equal(t, event.Hold, typ)

	*now = now.Add(keyTimeout)
	events, err = b.Update(frame)
	require.NoError(t, err)
	typ, _ = find(events, action.Keypad4)
	assert.Equal(t, event.Release, typ, "release is synthesised after the timeout")

	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUpdate_EmulatorKeys(t *testing.T) {
	b, screen, _ := newSimulated(t, backend.Config{})
	frame := video.NewFrameBuffer().Snapshot()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyF5, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'k', tcell.ModNone) // unbound

	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []backend.InputEvent{
		{Action: action.EmulatorPauseToggle, Type: event.Press},
		{Action: action.EmulatorReset, Type: event.Press},
		{Action: action.EmulatorQuit, Type: event.Press},
	}, events)
}

func TestUpdate_CustomKeyMap(t *testing.T) {
	keys := map[string]action.Action{"Up": action.Keypad5}
	b, screen, _ := newSimulated(t, backend.Config{KeyMap: keys})

	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	events, err := b.Update(video.NewFrameBuffer().Snapshot())
	require.NoError(t, err)

	typ, ok := find(events, action.Keypad5)
	require.True(t, ok)
	assert.Equal(t, event.Press, typ)
}

func TestRender_HalfBlocks(t *testing.T) {
	b, screen, _ := newSimulated(t, backend.Config{})

	fb := video.NewFrameBuffer()
	require.NoError(t, fb.SetPixel(0, 0, true))
	require.NoError(t, fb.SetPixel(1, 1, true))
	_, err := b.Update(fb.Snapshot())
	require.NoError(t, err)

	mainc, _, style, _ := screen.GetContent(0, 1)
	assert.Equal(t, '▀', mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorWhite, fg)
	assert.Equal(t, tcell.ColorBlack, bg)

	_, _, style, _ = screen.GetContent(1, 1)
	fg, bg, _ = style.Decompose()
	assert.Equal(t, tcell.ColorBlack, fg)
	assert.Equal(t, tcell.ColorWhite, bg)
}

func screenText(screen tcell.SimulationScreen, y int) string {
	width, _ := screen.Size()
	runes := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		runes = append(runes, mainc)
	}
	return string(runes)
}

func TestRender_DebugPanel(t *testing.T) {
	data := &debug.CompleteDebugData{
		CPU: &debug.CPUState{PC: 0x202, I: 0x210, V: [16]uint8{0: 0x05}},
		Memory: &debug.MemorySnapshot{
			StartAddr: 0x200,
			Bytes:     []byte{0x60, 0x05, 0xA2, 0x10, 0x12, 0x04},
		},
		DebuggerState: debug.DebuggerPaused,
	}
	config := backend.Config{
		ShowDebug:     true,
		DebugProvider: func() *debug.CompleteDebugData { return data },
	}
	b, screen, _ := newSimulated(t, config)

	_, err := b.Update(video.NewFrameBuffer().Snapshot())
	require.NoError(t, err)

	assert.Contains(t, screenText(screen, 1), "Status: PAUSED")
	assert.Contains(t, screenText(screen, 2), "V0:05")

	var disassembly []string
	for y := registerHeight + 2; y < registerHeight+2+disasmHeight; y++ {
		disassembly = append(disassembly, screenText(screen, y))
	}
	assert.Contains(t, disassembly[0], "LD V0, 0x05")
	assert.Contains(t, disassembly[1], "→0x202: A210  LD I, 0x210")
}

func TestHandleAction(t *testing.T) {
	b, _, _ := newSimulated(t, backend.Config{})

	b.HandleAction(action.EmulatorDebugToggle)
	assert.True(t, b.config.ShowDebug)

	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, -4, int(b.logLevel))
	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, -4, int(b.logLevel), "clamped at debug")
}

func TestImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
	var _ backend.ActionHandler = (*Backend)(nil)
}
