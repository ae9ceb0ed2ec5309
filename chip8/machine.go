package chip8

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	// DefaultCycleRate is the number of instructions executed per second.
	DefaultCycleRate = 600

	// debugWindow is how many bytes of memory around PC ExtractDebugData captures.
	debugWindow = 0x60
)

var (
	// ErrInvalidCycleRate is returned for rates below the 60Hz timer rate.
	ErrInvalidCycleRate = errors.New("cycle rate must be at least 60Hz")
	// ErrInvalidFont is returned for a font that is not 16 glyphs of 5 bytes.
	ErrInvalidFont = fmt.Errorf("font must be exactly %d bytes", memory.FontSize)
)

// Machine wires memory, display, keypad and CPU together and implements
// the CPU's Bus. It is not safe for concurrent use.
type Machine struct {
	cpu     *cpu.CPU
	mem     *memory.Bank
	display *video.FrameBuffer
	keypad  *memory.Keypad

	font          [memory.FontSize]byte
	program       []byte
	cycleRate     int
	cyclesPerTick uint64
	cycleCounter  uint64
	rng           cpu.Random

	listeners []video.Listener
}

// Option configures a Machine at construction.
type Option func(*Machine) error

// WithCycleRate sets the instruction rate in Hz. Timers always tick at 60Hz,
// once every rate/60 cycles.
func WithCycleRate(hz int) Option {
	return func(m *Machine) error {
		if hz < timing.TimerFrequency {
			return fmt.Errorf("%w: %d", ErrInvalidCycleRate, hz)
		}
		m.cycleRate = hz
		return nil
	}
}

// WithFont replaces the built-in hex font.
func WithFont(font []byte) Option {
	return func(m *Machine) error {
		if len(font) != memory.FontSize {
			return fmt.Errorf("%w: got %d", ErrInvalidFont, len(font))
		}
		copy(m.font[:], font)
		return nil
	}
}

// WithRandom sets the source used by the RND instruction.
func WithRandom(rng cpu.Random) Option {
	return func(m *Machine) error {
		m.rng = rng
		return nil
	}
}

// WithListener subscribes l to framebuffer changes.
func WithListener(l video.Listener) Option {
	return func(m *Machine) error {
		m.Subscribe(l)
		return nil
	}
}

// New creates an initialized machine with no program loaded.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{
		mem:       memory.New(),
		display:   video.NewFrameBuffer(),
		keypad:    memory.NewKeypad(),
		font:      memory.DefaultFont,
		cycleRate: DefaultCycleRate,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.cyclesPerTick = uint64(timing.CyclesPerTick(m.cycleRate))
	m.cpu = cpu.New(m, m.rng)

	if err := m.Initialize(); err != nil {
		return nil, err
	}

	return m, nil
}

// NewWithFile creates a machine and loads the program at path into it.
func NewWithFile(path string, opts ...Option) (*Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if err := m.LoadProgram(data); err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}

	slog.Info("Loaded ROM", "path", path, "bytes", len(data))
	return m, nil
}

// Initialize loads the font, releases all keys and resets the CPU.
func (m *Machine) Initialize() error {
	if err := m.mem.Load(m.font[:], memory.FontAddress); err != nil {
		return fmt.Errorf("cannot load font: %w", err)
	}

	m.keypad.Reset()
	m.cpu.Reset()
	m.cycleCounter = 0
	return nil
}

// LoadProgram copies data to the program area at 0x200.
func (m *Machine) LoadProgram(data []byte) error {
	if err := m.mem.Load(data, memory.ProgramAddress); err != nil {
		return fmt.Errorf("program of %d bytes exceeds %d: %w", len(data), memory.MaxProgramSize, err)
	}

	m.program = append(m.program[:0], data...)
	return nil
}

// Reset restarts the loaded program on a cleared machine.
func (m *Machine) Reset() error {
	m.mem.Clear()
	m.display.Clear()
	m.cpu.ClearRegisters()

	if err := m.Initialize(); err != nil {
		return err
	}
	if err := m.mem.Load(m.program, memory.ProgramAddress); err != nil {
		return err
	}

	m.FramebufferChanged()
	slog.Info("Machine reset", "program_bytes", len(m.program))
	return nil
}

// Cycle executes one instruction, then ticks the timers when the cycle
// counter reaches a multiple of cycleRate/60.
func (m *Machine) Cycle() error {
	if err := m.cpu.Step(); err != nil {
		return err
	}

	m.cycleCounter++
	if m.cycleCounter%m.cyclesPerTick == 0 {
		m.cpu.UpdateTimers()
	}
	return nil
}

// RunFrame executes one 60Hz frame worth of cycles, stopping at the first error.
func (m *Machine) RunFrame() error {
	for i := uint64(0); i < m.cyclesPerTick; i++ {
		if err := m.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// KeyDown marks a keypad key as held. Keys outside [0,16) are ignored.
func (m *Machine) KeyDown(key int) {
	m.keypad.Press(key)
}

// KeyUp releases a keypad key. Keys outside [0,16) are ignored.
func (m *Machine) KeyUp(key int) {
	m.keypad.Release(key)
}

// Subscribe registers l for framebuffer notifications.
func (m *Machine) Subscribe(l video.Listener) {
	m.listeners = append(m.listeners, l)
}

// Frame returns the current framebuffer contents.
func (m *Machine) Frame() video.Snapshot {
	return m.display.Snapshot()
}

// SoundActive reports whether the buzzer should be sounding.
func (m *Machine) SoundActive() bool {
	return m.cpu.SoundTimer() > 0
}

// CycleRate returns the configured instruction rate in Hz.
func (m *Machine) CycleRate() int {
	return m.cycleRate
}

// CPU exposes the interpreter for inspection.
func (m *Machine) CPU() *cpu.CPU {
	return m.cpu
}

// ExtractDebugData captures registers, the memory around PC, keys and the frame.
func (m *Machine) ExtractDebugData() *debug.CompleteDebugData {
	if m.cpu == nil || m.mem == nil {
		return nil
	}

	c := m.cpu
	state := &debug.CPUState{
		V:              c.Registers(),
		I:              c.I(),
		PC:             c.PC(),
		SP:             c.SP(),
		Stack:          c.Stack(),
		DelayTimer:     c.DelayTimer(),
		SoundTimer:     c.SoundTimer(),
		Opcode:         c.CurrentOpcode(),
		Cycles:         c.Cycles(),
		UnknownOpcodes: c.UnknownOpcodes(),
	}

	start := int(c.PC()) - debugWindow/3
	if start < 0 {
		start = 0
	}
	start &^= 1
	size := debugWindow
	if start+size > memory.Size {
		size = memory.Size - start
	}

	snapshot := &debug.MemorySnapshot{StartAddr: uint16(start)}
	if size > 0 {
		// start and size are clamped to memory, Slice cannot fail here
		snapshot.Bytes, _ = m.mem.Slice(uint16(start), size)
	}

	return &debug.CompleteDebugData{
		CPU:    state,
		Memory: snapshot,
		Keys:   m.keypad.State(),
		Frame:  m.display.Snapshot(),
	}
}

// Bus implementation

func (m *Machine) Read(address uint16) (byte, error) {
	return m.mem.Read(address)
}

func (m *Machine) Write(address uint16, value byte) error {
	return m.mem.Write(address, value)
}

func (m *Machine) Display() *video.FrameBuffer {
	return m.display
}

func (m *Machine) Keypad() *memory.Keypad {
	return m.keypad
}

func (m *Machine) FontAddress() uint16 {
	return memory.FontAddress
}

// FramebufferChanged notifies every listener with a fresh snapshot.
func (m *Machine) FramebufferChanged() {
	if len(m.listeners) == 0 {
		return
	}

	frame := m.display.Snapshot()
	for _, l := range m.listeners {
		l.FrameChanged(frame)
	}
}

var _ cpu.Bus = (*Machine)(nil)
