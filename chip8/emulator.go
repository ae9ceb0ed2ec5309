package chip8

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/video"
)

// Emulator is what the runner drives. Machine is the only implementation
// outside of tests.
type Emulator interface {
	Cycle() error
	RunFrame() error
	Reset() error
	Frame() video.Snapshot
	KeyDown(key int)
	KeyUp(key int)
	ExtractDebugData() *debug.CompleteDebugData
}

var _ Emulator = (*Machine)(nil)
