package input

import (
	"fmt"
	"strconv"

	"github.com/valerio/go-chip8/chip8/input/action"
)

// KeyMap maps host key names to actions. Key names are shared by all
// backends: single characters for printable keys, "Escape", "Space",
// "F1".."F12" and so on for the rest.
type KeyMap map[string]action.Action

// DefaultKeyMap lays the hex keypad over the left side of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyMap = KeyMap{
	"1": action.Keypad1,
	"2": action.Keypad2,
	"3": action.Keypad3,
	"4": action.KeypadC,
	"q": action.Keypad4,
	"w": action.Keypad5,
	"e": action.Keypad6,
	"r": action.KeypadD,
	"a": action.Keypad7,
	"s": action.Keypad8,
	"d": action.Keypad9,
	"f": action.KeypadE,
	"z": action.KeypadA,
	"x": action.Keypad0,
	"c": action.KeypadB,
	"v": action.KeypadF,

	// Emulator controls
	"Space":  action.EmulatorPauseToggle,
	"p":      action.EmulatorPauseToggle,
	"n":      action.EmulatorStepInstruction,
	"m":      action.EmulatorStepFrame,
	"F5":     action.EmulatorReset,
	"F9":     action.EmulatorSnapshot,
	"F10":    action.EmulatorDebugToggle,
	"Escape": action.EmulatorQuit,

	// Debug controls
	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease,
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease,
}

// NewKeyMap returns a copy of DefaultKeyMap with keypad overrides applied.
// overrides maps a host key name to a hex digit ("0".."F"); a host key that
// already had a binding is rebound.
func NewKeyMap(overrides map[string]string) (KeyMap, error) {
	keys := make(KeyMap, len(DefaultKeyMap)+len(overrides))
	for name, act := range DefaultKeyMap {
		keys[name] = act
	}

	for name, digit := range overrides {
		key, err := strconv.ParseUint(digit, 16, 8)
		if err != nil || key > 0xF {
			return nil, fmt.Errorf("key %q: %q is not a keypad digit (0-F)", name, digit)
		}
		keys[name] = action.KeypadAction(int(key))
	}

	return keys, nil
}

// Lookup returns the action bound to a host key name.
func (k KeyMap) Lookup(name string) (action.Action, bool) {
	act, ok := k[name]
	return act, ok
}
