package memory

import (
	"errors"
	"fmt"
)

const (
	// Size is the amount of addressable memory, 0x000-0xFFF.
	Size = 0x1000

	// FontAddress is where the hexadecimal digit sprites are loaded.
	FontAddress uint16 = 0x050

	// ProgramAddress is where ROMs are loaded and execution starts.
	ProgramAddress uint16 = 0x200

	// MaxProgramSize is the largest ROM that fits above ProgramAddress.
	MaxProgramSize = Size - int(ProgramAddress)
)

// ErrOutOfBounds is returned for any access outside of [0, Size).
var ErrOutOfBounds = errors.New("memory access out of bounds")

// Bank is the 4KB byte addressable memory of the machine.
type Bank struct {
	memory [Size]byte
}

// New creates a zeroed memory bank.
func New() *Bank {
	return &Bank{}
}

// Clear zeroes the whole bank in place.
func (b *Bank) Clear() {
	b.memory = [Size]byte{}
}

// Load copies data into memory starting at offset.
// Nothing is written if the data would not fit.
func (b *Bank) Load(data []byte, offset uint16) error {
	end := int(offset) + len(data)
	if end > Size {
		return fmt.Errorf("%w: load of %d bytes at 0x%03X ends at 0x%X", ErrOutOfBounds, len(data), offset, end)
	}

	copy(b.memory[offset:end], data)
	return nil
}

// Read returns the byte stored at address.
func (b *Bank) Read(address uint16) (byte, error) {
	if int(address) >= Size {
		return 0, fmt.Errorf("%w: read at 0x%04X", ErrOutOfBounds, address)
	}

	return b.memory[address], nil
}

// Write stores value at address.
func (b *Bank) Write(address uint16, value byte) error {
	if int(address) >= Size {
		return fmt.Errorf("%w: write at 0x%04X", ErrOutOfBounds, address)
	}

	b.memory[address] = value
	return nil
}

// Slice returns a copy of n bytes starting at address.
func (b *Bank) Slice(address uint16, n int) ([]byte, error) {
	end := int(address) + n
	if n < 0 || end > Size {
		return nil, fmt.Errorf("%w: range 0x%04X+%d", ErrOutOfBounds, address, n)
	}

	out := make([]byte, n)
	copy(out, b.memory[address:end])
	return out, nil
}
