package debug

import "github.com/valerio/go-chip8/chip8/video"

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V     [16]uint8
	I     uint16
	PC    uint16
	SP    uint16
	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	Opcode         uint16
	Cycles         uint64
	UnknownOpcodes uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// Contains reports whether address falls inside the snapshot.
func (m *MemorySnapshot) Contains(address uint16) bool {
	return address >= m.StartAddr && int(address) < int(m.StartAddr)+len(m.Bytes)
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	default:
		return "RUNNING"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	Keys          [16]bool
	Frame         video.Snapshot
	DebuggerState DebuggerState
	LastError     error
}

// Provider returns the current debug data, or nil when none is available.
type Provider func() *CompleteDebugData
