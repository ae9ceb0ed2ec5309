package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	overflow = (uint16(a)+uint16(b))&0xFF00 != 0
	result = a + b
	return
}

// CheckedSub subtracts b from a and reports whether a was strictly greater than b.
// Equal operands report false.
func CheckedSub(a, b uint8) (result uint8, greater bool) {
	return a - b, a > b
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, byte uint8) bool {
	return ((byte >> index) & 1) == 1
}

// Set will return the passed byte with the bit at the specified index set to 1.
func Set(index, byte uint8) uint8 {
	return byte | (1 << index)
}

// Reset will return the passed byte with the bit at the specified index set to 0.
func Reset(index, byte uint8) uint8 {
	return byte & ((1 << index) ^ 0xFF)
}

// GetBitValue returns a byte set to the value of the bit at the specified index.
func GetBitValue(index, byte uint8) uint8 {
	return FromBool(IsSet(index, byte))
}

// FromBool converts a boolean flag to 0 or 1.
func FromBool(value bool) uint8 {
	if value {
		return 1
	}

	return 0
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Nibble returns the 4 bit group at the given index of a 16 bit word,
// index 0 being the least significant nibble.
func Nibble(value uint16, index uint8) uint8 {
	return uint8(value>>(index*4)) & 0x0F
}

// Digits splits a byte into its decimal hundreds, tens and ones.
func Digits(value uint8) (hundreds, tens, ones uint8) {
	return value / 100, (value / 10) % 10, value % 10
}
