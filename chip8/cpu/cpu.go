package cpu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/disasm"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// Bus is the CPU's view of the rest of the machine.
type Bus interface {
	Read(address uint16) (byte, error)
	Write(address uint16, value byte) error
	Display() *video.FrameBuffer
	Keypad() *memory.Keypad
	FontAddress() uint16
	// FramebufferChanged is invoked after every pixel plot and screen clear.
	FramebufferChanged()
}

const (
	// RegisterCount is the number of general purpose registers, V0 to VF.
	RegisterCount = 16
	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 16

	flagRegister = 0xF
)

// CPU holds the interpreter state: registers, program counter, call stack
// and the two 60Hz timers.
type CPU struct {
	v     [RegisterCount]uint8
	i     uint16
	pc    uint16
	sp    uint16
	stack [StackSize]uint16

	delayTimer uint8
	soundTimer uint8

	// metadata
	currentOpcode  uint16
	cycles         uint64
	unknownOpcodes uint64

	bus Bus
	rng Random
}

// New returns a CPU attached to bus, already reset.
func New(bus Bus, rng Random) *CPU {
	if rng == nil {
		rng = NewTimeSeededRandom()
	}

	cpu := &CPU{
		bus: bus,
		rng: rng,
	}
	cpu.Reset()

	return cpu
}

// Reset puts PC back to the program start and clears I, SP and the timers.
// General purpose registers keep their values.
func (c *CPU) Reset() {
	c.pc = memory.ProgramAddress
	c.i = 0
	c.sp = 0
	c.delayTimer = 0
	c.soundTimer = 0
}

// ClearRegisters zeroes V0 to VF and the call stack contents.
func (c *CPU) ClearRegisters() {
	c.v = [RegisterCount]uint8{}
	c.stack = [StackSize]uint16{}
}

// Step fetches, decodes and executes a single instruction.
// On error PC is left pointing at the faulting instruction.
func (c *CPU) Step() error {
	opcode, err := Decode(c)
	if err != nil {
		return &ExecError{PC: c.pc, Err: err}
	}

	pc := c.pc
	c.pc += 2

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("exec",
			"pc", fmt.Sprintf("0x%03X", pc),
			"opcode", fmt.Sprintf("0x%04X", c.currentOpcode),
			"instruction", disasm.Disassemble(c.currentOpcode))
	}

	if err := opcode(c, c.currentOpcode); err != nil {
		c.pc = pc
		return &ExecError{PC: pc, Instruction: c.currentOpcode, Err: err}
	}

	c.cycles++
	return nil
}

// UpdateTimers decrements the delay and sound timers if they are not zero.
// The machine calls this at 60Hz, independently from the instruction rate.
func (c *CPU) UpdateTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// V returns the value of register Vx.
func (c *CPU) V(x uint8) uint8 {
	return c.v[x&0xF]
}

// Registers returns a copy of V0 to VF.
func (c *CPU) Registers() [RegisterCount]uint8 {
	return c.v
}

// I returns the index register.
func (c *CPU) I() uint16 {
	return c.i
}

// PC returns the address of the next instruction.
func (c *CPU) PC() uint16 {
	return c.pc
}

// SP returns the stack pointer.
func (c *CPU) SP() uint16 {
	return c.sp
}

// Stack returns the in-use part of the call stack, oldest entry first.
func (c *CPU) Stack() []uint16 {
	out := make([]uint16, c.sp)
	copy(out, c.stack[:c.sp])
	return out
}

// DelayTimer returns the current delay timer value.
func (c *CPU) DelayTimer() uint8 {
	return c.delayTimer
}

// SoundTimer returns the current sound timer value.
func (c *CPU) SoundTimer() uint8 {
	return c.soundTimer
}

// CurrentOpcode returns the last decoded instruction word.
func (c *CPU) CurrentOpcode() uint16 {
	return c.currentOpcode
}

// Cycles returns the number of instructions executed successfully.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// UnknownOpcodes returns how many instructions were ignored because their
// sub-selector is not part of the instruction set.
func (c *CPU) UnknownOpcodes() uint64 {
	return c.unknownOpcodes
}
