package cpu

import (
	"github.com/valerio/go-chip8/chip8/memory"
)

//CLS, RET
//#0x00E0, 0x00EE:
func opcode0x0(cpu *CPU, instruction uint16) error {
	switch instruction {
	case 0x00E0:
		cpu.bus.Display().Clear()
		cpu.bus.FramebufferChanged()
	case 0x00EE:
		address, err := cpu.popStack()
		if err != nil {
			return err
		}
		cpu.pc = address
	default:
		return cpu.unknown(instruction)
	}
	return nil
}

//JP addr
//#0x1nnn:
func opcode0x1(cpu *CPU, instruction uint16) error {
	cpu.pc = nnn(instruction)
	return nil
}

//CALL addr
//#0x2nnn:
func opcode0x2(cpu *CPU, instruction uint16) error {
	if err := cpu.pushStack(cpu.pc); err != nil {
		return err
	}
	cpu.pc = nnn(instruction)
	return nil
}

//SE Vx, byte
//#0x3xkk:
func opcode0x3(cpu *CPU, instruction uint16) error {
	cpu.skipIf(cpu.v[regX(instruction)] == kk(instruction))
	return nil
}

//SNE Vx, byte
//#0x4xkk:
func opcode0x4(cpu *CPU, instruction uint16) error {
	cpu.skipIf(cpu.v[regX(instruction)] != kk(instruction))
	return nil
}

//SE Vx, Vy
//#0x5xy0:
func opcode0x5(cpu *CPU, instruction uint16) error {
	cpu.skipIf(cpu.v[regX(instruction)] == cpu.v[regY(instruction)])
	return nil
}

//LD Vx, byte
//#0x6xkk:
func opcode0x6(cpu *CPU, instruction uint16) error {
	cpu.v[regX(instruction)] = kk(instruction)
	return nil
}

//ADD Vx, byte
//#0x7xkk:
func opcode0x7(cpu *CPU, instruction uint16) error {
	cpu.v[regX(instruction)] += kk(instruction)
	return nil
}

//LD, OR, AND, XOR, ADD, SUB, SHR, SUBN, SHL Vx, Vy
//#0x8xyn:
func opcode0x8(cpu *CPU, instruction uint16) error {
	x, y := regX(instruction), regY(instruction)

	switch lowNibble(instruction) {
	case 0x0:
		cpu.v[x] = cpu.v[y]
	case 0x1:
		cpu.v[x] |= cpu.v[y]
	case 0x2:
		cpu.v[x] &= cpu.v[y]
	case 0x3:
		cpu.v[x] ^= cpu.v[y]
	case 0x4:
		cpu.addRegisters(x, y)
	case 0x5:
		cpu.subRegisters(x, y)
	case 0x6:
		cpu.shiftRight(x)
	case 0x7:
		cpu.subnRegisters(x, y)
	case 0xE:
		cpu.shiftLeft(x)
	default:
		return cpu.unknown(instruction)
	}
	return nil
}

//SNE Vx, Vy
//#0x9xy0:
func opcode0x9(cpu *CPU, instruction uint16) error {
	cpu.skipIf(cpu.v[regX(instruction)] != cpu.v[regY(instruction)])
	return nil
}

//LD I, addr
//#0xAnnn:
func opcode0xA(cpu *CPU, instruction uint16) error {
	cpu.i = nnn(instruction)
	return nil
}

//JP V0, addr
//#0xBnnn:
func opcode0xB(cpu *CPU, instruction uint16) error {
	cpu.pc = uint16(cpu.v[0]) + nnn(instruction)
	return nil
}

//RND Vx, byte
//#0xCxkk:
func opcode0xC(cpu *CPU, instruction uint16) error {
	cpu.v[regX(instruction)] = cpu.rng.NextByte() & kk(instruction)
	return nil
}

//DRW Vx, Vy, nibble
//#0xDxyn:
func opcode0xD(cpu *CPU, instruction uint16) error {
	return cpu.draw(regX(instruction), regY(instruction), lowNibble(instruction))
}

//SKP Vx, SKNP Vx
//#0xEx9E, 0xExA1:
func opcode0xE(cpu *CPU, instruction uint16) error {
	keypad := cpu.bus.Keypad()
	key := cpu.v[regX(instruction)]

	switch kk(instruction) {
	case 0x9E:
		cpu.skipIf(keypad.IsPressed(key))
	case 0xA1:
		cpu.skipIf(!keypad.IsPressed(key))
	default:
		return cpu.unknown(instruction)
	}
	return nil
}

//LD Vx, DT / LD Vx, K / LD DT, Vx / LD ST, Vx / ADD I, Vx / LD F, Vx / LD B, Vx / LD [I], Vx / LD Vx, [I]
//#0xFxkk:
func opcode0xF(cpu *CPU, instruction uint16) error {
	x := regX(instruction)

	switch kk(instruction) {
	case 0x07:
		cpu.v[x] = cpu.delayTimer
	case 0x0A:
		cpu.waitKey(x)
	case 0x15:
		cpu.delayTimer = cpu.v[x]
	case 0x18:
		cpu.soundTimer = cpu.v[x]
	case 0x1E:
		cpu.i += uint16(cpu.v[x])
	case 0x29:
		cpu.i = memory.GlyphAddress(cpu.bus.FontAddress(), cpu.v[x])
	case 0x33:
		return cpu.storeBCD(x)
	case 0x55:
		return cpu.storeRegisters(x)
	case 0x65:
		return cpu.loadRegisters(x)
	default:
		return cpu.unknown(instruction)
	}
	return nil
}
