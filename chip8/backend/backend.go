package backend

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, window, files)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, debug panels)
type Backend interface {
	// Init configures the backend. It must be called before Update.
	Init(config Config) error

	// Update renders the frame and returns the input events collected since
	// the previous call.
	Update(frame video.Snapshot) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// FrameFunc advances the emulation by one frame. It reports whether a quit
// was requested.
type FrameFunc func() (quit bool, err error)

// LoopOwner is implemented by backends whose toolkit owns the main loop.
// The runner hands them its frame function instead of pacing frames itself.
type LoopOwner interface {
	Backend
	Loop(frame FrameFunc) error
}

// ActionHandler is implemented by backends that react to emulator actions
// themselves, such as toggling a debug panel.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// InputEvent is a logical input reported by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// Config holds configuration for backends
type Config struct {
	Title     string
	Scale     int
	Palette   video.Palette
	ShowDebug bool         // backends may ignore unsupported features
	KeyMap    input.KeyMap // nil selects input.DefaultKeyMap
	LogLevel  slog.Level

	// DebugProvider supplies machine state for debug panels. Optional.
	DebugProvider debug.Provider
}

// Keys returns the configured key map or the default one.
func (c Config) Keys() input.KeyMap {
	if c.KeyMap == nil {
		return input.DefaultKeyMap
	}
	return c.KeyMap
}
