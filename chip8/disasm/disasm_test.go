package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestDisassemble(t *testing.T) {
	testCases := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 0x123"},
		{0x1ABC, "JP 0xABC"},
		{0x2206, "CALL 0x206"},
		{0x3A05, "SE VA, 0x05"},
		{0x4B10, "SNE VB, 0x10"},
		{0x5120, "SE V1, V2"},
		{0x6005, "LD V0, 0x05"},
		{0x7F01, "ADD VF, 0x01"},
		{0x8120, "LD V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x8128, "DW 0x8128"},
		{0x9340, "SNE V3, V4"},
		{0xA210, "LD I, 0x210"},
		{0xB300, "JP V0, 0x300"},
		{0xC00F, "RND V0, 0x0F"},
		{0xD125, "DRW V1, V2, 5"},
		{0xE09E, "SKP V0"},
		{0xE1A1, "SKNP V1"},
		{0xE1FF, "DW 0xE1FF"},
		{0xF307, "LD V3, DT"},
		{0xF30A, "LD V3, K"},
		{0xF315, "LD DT, V3"},
		{0xF318, "LD ST, V3"},
		{0xF31E, "ADD I, V3"},
		{0xF329, "LD F, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0xF3FF, "DW 0xF3FF"},
	}
	for _, tC := range testCases {
		assert.Equal(t, tC.want, Disassemble(tC.opcode), "opcode 0x%04X", tC.opcode)
	}
}

func TestDisassembleBytes(t *testing.T) {
	data := []byte{0x60, 0x05, 0x00, 0xE0, 0x12}

	text, length := DisassembleBytes(data, 0)
	assert.Equal(t, "LD V0, 0x05", text)
	assert.Equal(t, 2, length)

	text, _ = DisassembleBytes(data, 2)
	assert.Equal(t, "CLS", text)

	text, length = DisassembleBytes(data, 4)
	assert.Equal(t, "DB 0x12", text)
	assert.Equal(t, 1, length)
}

func TestDisassembleRange(t *testing.T) {
	mem := memory.New()
	require.NoError(t, mem.Load([]byte{0x60, 0x05, 0xA2, 0x10, 0x12, 0x04}, memory.ProgramAddress))

	lines := DisassembleRange(memory.ProgramAddress, 3, mem)
	require.Len(t, lines, 3)
	assert.Equal(t, DisassemblyLine{Address: 0x200, Opcode: 0x6005, Instruction: "LD V0, 0x05"}, lines[0])
	assert.Equal(t, "LD I, 0x210", lines[1].Instruction)
	assert.Equal(t, uint16(0x204), lines[2].Address)

	tail := DisassembleRange(0xFFC, 4, mem)
	assert.Len(t, tail, 2, "stops at the end of memory")
}

func TestDisassembleAround(t *testing.T) {
	mem := memory.New()

	lines := DisassembleAround(0x204, 2, 3, mem)
	require.Len(t, lines, 6)
	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, uint16(0x20A), lines[5].Address)

	lines = DisassembleAround(0x002, 4, 0, mem)
	require.Len(t, lines, 2)
	assert.Equal(t, uint16(0x000), lines[0].Address)
}

func TestFormatDisassemblyLine(t *testing.T) {
	line := DisassemblyLine{Address: 0x200, Opcode: 0x6005, Instruction: "LD V0, 0x05"}

	assert.Equal(t, " 0x200: 6005  LD V0, 0x05", FormatDisassemblyLine(line, false))
	assert.Equal(t, "→0x200: 6005  LD V0, 0x05", FormatDisassemblyLine(line, true))
}
