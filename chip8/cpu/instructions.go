package cpu

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

const spriteWidth = 8

func (c *CPU) pushStack(address uint16) error {
	if c.sp >= StackSize {
		return fmt.Errorf("%w: sp=%d", ErrStackOverflow, c.sp)
	}

	c.stack[c.sp] = address
	c.sp++
	return nil
}

func (c *CPU) popStack() (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}

	c.sp--
	return c.stack[c.sp], nil
}

// skipIf skips the next instruction when condition holds.
func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

// addRegisters sets Vx = Vx + Vy, VF = carry.
func (c *CPU) addRegisters(x, y uint8) {
	sum, carry := bit.CheckedAdd(c.v[x], c.v[y])
	c.v[flagRegister] = bit.FromBool(carry)
	c.v[x] = sum
}

// subRegisters sets VF = Vx > Vy, then Vx = Vx - Vy.
func (c *CPU) subRegisters(x, y uint8) {
	_, greater := bit.CheckedSub(c.v[x], c.v[y])
	c.v[flagRegister] = bit.FromBool(greater)
	c.v[x] -= c.v[y]
}

// subnRegisters sets VF = !(Vx > Vy), then Vx = Vy - Vx.
func (c *CPU) subnRegisters(x, y uint8) {
	_, greater := bit.CheckedSub(c.v[x], c.v[y])
	c.v[flagRegister] = bit.FromBool(!greater)
	c.v[x] = c.v[y] - c.v[x]
}

// shiftRight sets VF to the least significant bit of Vx, then halves Vx.
func (c *CPU) shiftRight(x uint8) {
	c.v[flagRegister] = bit.GetBitValue(0, c.v[x])
	c.v[x] >>= 1
}

// shiftLeft sets VF to the most significant bit of Vx, then doubles Vx.
func (c *CPU) shiftLeft(x uint8) {
	c.v[flagRegister] = bit.GetBitValue(7, c.v[x])
	c.v[x] <<= 1
}

// checkRange validates that count bytes starting at address are addressable,
// so multi-byte transfers fail before anything is written.
func checkRange(address uint16, count int) error {
	if int(address)+count > memory.Size {
		return fmt.Errorf("%w: 0x%04X+%d", memory.ErrOutOfBounds, address, count)
	}
	return nil
}

// draw XORs an 8 pixel wide, height rows tall sprite read from I onto the
// display at (Vx, Vy), wrapping around both edges. VF reports collisions.
func (c *CPU) draw(x, y, height uint8) error {
	if err := checkRange(c.i, int(height)); err != nil {
		return err
	}

	sprite := make([]byte, height)
	for row := range sprite {
		value, err := c.bus.Read(c.i + uint16(row))
		if err != nil {
			return err
		}
		sprite[row] = value
	}

	originX, originY := int(c.v[x]), int(c.v[y])
	display := c.bus.Display()

	c.v[flagRegister] = 0
	for row, line := range sprite {
		py := (originY + row) % video.FramebufferHeight
		for col := 0; col < spriteWidth; col++ {
			px := (originX + col) % video.FramebufferWidth
			set := bit.IsSet(uint8(spriteWidth-1-col), line)

			current, err := display.GetPixel(px, py)
			if err != nil {
				return err
			}
			if set && current {
				c.v[flagRegister] = 1
			}

			if err := display.SetPixel(px, py, set); err != nil {
				return err
			}
			c.bus.FramebufferChanged()
		}
	}

	return nil
}

// waitKey implements Fx0A: with no key held the instruction repeats, with
// exactly one held key its index is stored in Vx.
func (c *CPU) waitKey(x uint8) {
	pressed := c.bus.Keypad().Pressed()
	switch len(pressed) {
	case 0:
		c.pc -= 2
	case 1:
		c.v[x] = pressed[0]
	}
}

// storeBCD writes the decimal digits of Vx to I, I+1 and I+2.
func (c *CPU) storeBCD(x uint8) error {
	if err := checkRange(c.i, 3); err != nil {
		return err
	}

	hundreds, tens, ones := bit.Digits(c.v[x])
	for offset, digit := range []uint8{hundreds, tens, ones} {
		if err := c.bus.Write(c.i+uint16(offset), digit); err != nil {
			return err
		}
	}
	return nil
}

// storeRegisters writes V0 to Vx inclusive to memory starting at I.
func (c *CPU) storeRegisters(x uint8) error {
	if err := checkRange(c.i, int(x)+1); err != nil {
		return err
	}

	for r := uint8(0); r <= x; r++ {
		if err := c.bus.Write(c.i+uint16(r), c.v[r]); err != nil {
			return err
		}
	}
	return nil
}

// loadRegisters fills V0 to Vx inclusive from memory starting at I.
func (c *CPU) loadRegisters(x uint8) error {
	if err := checkRange(c.i, int(x)+1); err != nil {
		return err
	}

	for r := uint8(0); r <= x; r++ {
		value, err := c.bus.Read(c.i + uint16(r))
		if err != nil {
			return err
		}
		c.v[r] = value
	}
	return nil
}

// unknown records an instruction whose sub-selector is not defined.
// Execution continues as if it were a no-op.
func (c *CPU) unknown(instruction uint16) error {
	c.unknownOpcodes++
	slog.Debug("Ignoring unknown instruction",
		"opcode", fmt.Sprintf("0x%04X", instruction),
		"pc", fmt.Sprintf("0x%03X", c.pc-2))
	return nil
}
