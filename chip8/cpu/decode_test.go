package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name           string
		memorySetup    map[uint16]uint8
		pc             uint16
		expectedOpcode uint16
	}{
		{
			name:           "LD V0, 0x05",
			memorySetup:    map[uint16]uint8{0x200: 0x60, 0x201: 0x05},
			pc:             0x200,
			expectedOpcode: 0x6005,
		},
		{
			name:           "CLS",
			memorySetup:    map[uint16]uint8{0x300: 0x00, 0x301: 0xE0},
			pc:             0x300,
			expectedOpcode: 0x00E0,
		},
		{
			name:           "last word of memory",
			memorySetup:    map[uint16]uint8{0xFFE: 0xA2, 0xFFF: 0x10},
			pc:             0xFFE,
			expectedOpcode: 0xA210,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := newTestBus()
			cpu := &CPU{bus: bus, pc: tt.pc}

			for addr, value := range tt.memorySetup {
				require.NoError(t, bus.mem.Write(addr, value))
			}

			opcode, err := Decode(cpu)
			require.NoError(t, err)

			assert.Equal(t, tt.pc, cpu.pc, "PC should not change")
			assert.Equal(t, tt.expectedOpcode, cpu.currentOpcode)
			assert.NotNil(t, opcode)
		})
	}
}

func TestDecode_OutOfBounds(t *testing.T) {
	cpu := &CPU{bus: newTestBus(), pc: 0xFFF}

	_, err := Decode(cpu)
	assert.ErrorIs(t, err, memory.ErrOutOfBounds)
}

func TestInstructionFields(t *testing.T) {
	const instruction = 0xD12A

	assert.Equal(t, uint16(0x12A), nnn(instruction))
	assert.Equal(t, uint8(0x2A), kk(instruction))
	assert.Equal(t, uint8(0x1), regX(instruction))
	assert.Equal(t, uint8(0x2), regY(instruction))
	assert.Equal(t, uint8(0xA), lowNibble(instruction))
}
