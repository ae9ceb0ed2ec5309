package memory

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys, 0x0 to 0xF.
type Keypad struct {
	keys [KeyCount]bool
}

// NewKeypad creates a keypad with every key released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Press marks key as held down. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Press(key int) {
	if key < 0 || key >= KeyCount {
		return
	}
	k.keys[key] = true
}

// Release marks key as released. Keys outside 0x0-0xF are ignored.
func (k *Keypad) Release(key int) {
	if key < 0 || key >= KeyCount {
		return
	}
	k.keys[key] = false
}

// IsPressed reports whether key is held down.
func (k *Keypad) IsPressed(key uint8) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k.keys[key]
}

// Pressed returns the indexes of all held keys in ascending order.
func (k *Keypad) Pressed() []uint8 {
	var pressed []uint8
	for i, down := range k.keys {
		if down {
			pressed = append(pressed, uint8(i))
		}
	}
	return pressed
}

// State returns a copy of all key flags.
func (k *Keypad) State() [KeyCount]bool {
	return k.keys
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.keys = [KeyCount]bool{}
}
