package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
)

// Opcode executes one instruction group. It receives the full instruction word.
type Opcode func(*CPU, uint16) error

// Decode reads the instruction word at PC and returns the handler for its group.
// PC is not modified.
func Decode(c *CPU) (Opcode, error) {
	high, err := c.bus.Read(c.pc)
	if err != nil {
		return nil, err
	}
	low, err := c.bus.Read(c.pc + 1)
	if err != nil {
		return nil, err
	}

	c.currentOpcode = bit.Combine(high, low)
	return opcodes[bit.Nibble(c.currentOpcode, 3)], nil
}

var opcodes = [16]Opcode{
	opcode0x0, opcode0x1, opcode0x2, opcode0x3, opcode0x4, opcode0x5, opcode0x6, opcode0x7,
	opcode0x8, opcode0x9, opcode0xA, opcode0xB, opcode0xC, opcode0xD, opcode0xE, opcode0xF,
}

// instruction fields, see the opcode table:
//
//	nnn: lowest 12 bits
//	kk:  lowest 8 bits
//	x:   bits 8-11
//	y:   bits 4-7
//	n:   bits 0-3
func nnn(instruction uint16) uint16      { return instruction & 0x0FFF }
func kk(instruction uint16) uint8        { return bit.Low(instruction) }
func regX(instruction uint16) uint8      { return bit.Nibble(instruction, 2) }
func regY(instruction uint16) uint8      { return bit.Nibble(instruction, 1) }
func lowNibble(instruction uint16) uint8 { return bit.Nibble(instruction, 0) }
