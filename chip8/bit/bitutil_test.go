package bit

import (
	"testing"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x60, 0x05, 0x6005},
	}

	for _, tt := range tests {
		result := Combine(tt.high, tt.low)
		if result != tt.expected {
			t.Errorf("Combine(%X, %X) = %X; want %X", tt.high, tt.low, result, tt.expected)
		}
	}
}

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		a, b             uint8
		expectedResult   uint8
		expectedOverflow bool
	}{
		{0b11111111, 0b00000001, 0, true},
		{0b11111111, 0b11111111, 254, true},
		{250, 10, 4, true},
		{0b00000001, 0b00000001, 2, false},
		{0b10000000, 0b00000000, 128, false},
	}

	for _, tt := range tests {
		result, overflow := CheckedAdd(tt.a, tt.b)
		if result != tt.expectedResult || overflow != tt.expectedOverflow {
			t.Errorf("CheckedAdd(%d, %d) = (%d, %v); want (%d, %v)", tt.a, tt.b, result, overflow, tt.expectedResult, tt.expectedOverflow)
		}
	}
}

func TestCheckedSub(t *testing.T) {
	tests := []struct {
		a, b            uint8
		expectedResult  uint8
		expectedGreater bool
	}{
		{0, 1, 255, false},
		{5, 10, 251, false},
		{10, 5, 5, true},
		{1, 1, 0, false},
		{0b10000000, 0b00000000, 128, true},
	}

	for _, tt := range tests {
		result, greater := CheckedSub(tt.a, tt.b)
		if result != tt.expectedResult || greater != tt.expectedGreater {
			t.Errorf("CheckedSub(%d, %d) = (%d, %v); want (%d, %v)", tt.a, tt.b, result, greater, tt.expectedResult, tt.expectedGreater)
		}
	}
}

func TestIsSet(t *testing.T) {
	tests := []struct {
		byte     uint8
		index    uint8
		expected bool
	}{
		{0b10101010, 0, false},
		{0b10101010, 1, true},
		{0b10101010, 7, true},
		{0b10101010, 8, false},
	}

	for _, tt := range tests {
		result := IsSet(tt.index, tt.byte)
		if result != tt.expected {
			t.Errorf("IsSet(%d, %08b) = %v; want %v", tt.index, tt.byte, result, tt.expected)
		}
	}
}

func TestSetReset(t *testing.T) {
	if got := Set(3, 0); got != 0b1000 {
		t.Errorf("Set(3, 0) = %08b; want 00001000", got)
	}
	if got := Reset(7, 0xFF); got != 0x7F {
		t.Errorf("Reset(7, 0xFF) = %02X; want 7F", got)
	}
}

func TestGetBitValue(t *testing.T) {
	if GetBitValue(7, 0x80) != 1 {
		t.Error("expected bit 7 of 0x80 to be 1")
	}
	if GetBitValue(0, 0x80) != 0 {
		t.Error("expected bit 0 of 0x80 to be 0")
	}
}

func TestFromBool(t *testing.T) {
	if FromBool(true) != 1 || FromBool(false) != 0 {
		t.Error("FromBool should map true to 1 and false to 0")
	}
}

func TestHighLow(t *testing.T) {
	if High(0xA210) != 0xA2 {
		t.Errorf("High(0xA210) = %X", High(0xA210))
	}
	if Low(0xA210) != 0x10 {
		t.Errorf("Low(0xA210) = %X", Low(0xA210))
	}
}

func TestNibble(t *testing.T) {
	tests := []struct {
		value    uint16
		index    uint8
		expected uint8
	}{
		{0xD125, 3, 0xD},
		{0xD125, 2, 0x1},
		{0xD125, 1, 0x2},
		{0xD125, 0, 0x5},
	}

	for _, tt := range tests {
		if got := Nibble(tt.value, tt.index); got != tt.expected {
			t.Errorf("Nibble(%04X, %d) = %X; want %X", tt.value, tt.index, got, tt.expected)
		}
	}
}

func TestDigits(t *testing.T) {
	tests := []struct {
		value                uint8
		hundreds, tens, ones uint8
	}{
		{0, 0, 0, 0},
		{7, 0, 0, 7},
		{42, 0, 4, 2},
		{255, 2, 5, 5},
		{100, 1, 0, 0},
	}

	for _, tt := range tests {
		h, te, o := Digits(tt.value)
		if h != tt.hundreds || te != tt.tens || o != tt.ones {
			t.Errorf("Digits(%d) = %d,%d,%d; want %d,%d,%d", tt.value, h, te, o, tt.hundreds, tt.tens, tt.ones)
		}
	}
}
