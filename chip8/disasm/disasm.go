package disasm

import (
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

// InstructionSize is the width of every instruction in bytes.
const InstructionSize = 2

// Reader gives read access to machine memory.
type Reader interface {
	Read(address uint16) (byte, error)
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Opcode      uint16
	Instruction string
}

// Disassemble returns the mnemonic for an instruction word, e.g. "LD V0, 0x05".
// Words outside the instruction set render as a data directive.
func Disassemble(opcode uint16) string {
	nnn := opcode & 0x0FFF
	kk := bit.Low(opcode)
	x := bit.Nibble(opcode, 2)
	y := bit.Nibble(opcode, 1)
	n := bit.Nibble(opcode, 0)

	switch bit.Nibble(opcode, 3) {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
		return fmt.Sprintf("SYS 0x%03X", nnn)
	case 0x1:
		return fmt.Sprintf("JP 0x%03X", nnn)
	case 0x2:
		return fmt.Sprintf("CALL 0x%03X", nnn)
	case 0x3:
		return fmt.Sprintf("SE V%X, 0x%02X", x, kk)
	case 0x4:
		return fmt.Sprintf("SNE V%X, 0x%02X", x, kk)
	case 0x5:
		return fmt.Sprintf("SE V%X, V%X", x, y)
	case 0x6:
		return fmt.Sprintf("LD V%X, 0x%02X", x, kk)
	case 0x7:
		return fmt.Sprintf("ADD V%X, 0x%02X", x, kk)
	case 0x8:
		if mnemonic, ok := aluMnemonics[n]; ok {
			return fmt.Sprintf("%s V%X, V%X", mnemonic, x, y)
		}
	case 0x9:
		return fmt.Sprintf("SNE V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("LD I, 0x%03X", nnn)
	case 0xB:
		return fmt.Sprintf("JP V0, 0x%03X", nnn)
	case 0xC:
		return fmt.Sprintf("RND V%X, 0x%02X", x, kk)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, n)
	case 0xE:
		switch kk {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if format, ok := miscFormats[kk]; ok {
			return fmt.Sprintf(format, x)
		}
	}

	return fmt.Sprintf("DW 0x%04X", opcode)
}

var aluMnemonics = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscFormats = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

// DisassembleBytes disassembles the instruction at offset in data and
// returns its text and length. A lone trailing byte is a one byte DB.
func DisassembleBytes(data []byte, offset int) (string, int) {
	if offset < 0 || offset >= len(data) {
		return "??", 1
	}
	if offset+1 >= len(data) {
		return fmt.Sprintf("DB 0x%02X", data[offset]), 1
	}
	return Disassemble(bit.Combine(data[offset], data[offset+1])), InstructionSize
}

// DisassembleAt disassembles the instruction at address.
func DisassembleAt(address uint16, mem Reader) (DisassemblyLine, error) {
	high, err := mem.Read(address)
	if err != nil {
		return DisassemblyLine{}, err
	}
	low, err := mem.Read(address + 1)
	if err != nil {
		return DisassemblyLine{}, err
	}

	opcode := bit.Combine(high, low)
	return DisassemblyLine{
		Address:     address,
		Opcode:      opcode,
		Instruction: Disassemble(opcode),
	}, nil
}

// DisassembleRange disassembles up to count instructions starting at start,
// stopping early at the end of memory.
func DisassembleRange(start uint16, count int, mem Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for i := 0; i < count; i++ {
		line, err := DisassembleAt(start+uint16(i*InstructionSize), mem)
		if err != nil {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

// DisassembleAround disassembles before instructions ahead of pc, the one at
// pc and after instructions following it.
func DisassembleAround(pc uint16, before, after int, mem Reader) []DisassemblyLine {
	start := int(pc) - before*InstructionSize
	for start < 0 {
		start += InstructionSize
	}
	count := (int(pc)-start)/InstructionSize + 1 + after
	return DisassembleRange(uint16(start), count, mem)
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = "→"
	}

	return fmt.Sprintf("%s0x%03X: %04X  %s", prefix, line.Address, line.Opcode, line.Instruction)
}
