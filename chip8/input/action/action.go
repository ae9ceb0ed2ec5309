package action

import "fmt"

// Action is a logical input, independent of the host key that produced it.
type Action int

const (
	// Hex keypad, in key order so that Keypad0+n is key n.
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorPauseToggle
	EmulatorStepInstruction
	EmulatorStepFrame
	EmulatorReset
	EmulatorSnapshot
	EmulatorDebugToggle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions by who consumes them.
type Category int

const (
	CategoryGameInput Category = iota
	CategoryEmulator
	CategoryDebug
)

// Info describes an action for logs and help screens.
type Info struct {
	Category    Category
	Description string
}

var infos = map[Action]Info{
	EmulatorPauseToggle:     {CategoryEmulator, "Pause/resume"},
	EmulatorStepInstruction: {CategoryEmulator, "Step instruction"},
	EmulatorStepFrame:       {CategoryEmulator, "Step frame"},
	EmulatorReset:           {CategoryEmulator, "Reset"},
	EmulatorSnapshot:        {CategoryEmulator, "Save snapshot"},
	EmulatorDebugToggle:     {CategoryEmulator, "Toggle debug view"},
	EmulatorQuit:            {CategoryEmulator, "Quit"},
	DebugLogLevelIncrease:   {CategoryDebug, "Increase log verbosity"},
	DebugLogLevelDecrease:   {CategoryDebug, "Decrease log verbosity"},
}

// GetInfo returns the category and description of act.
func GetInfo(act Action) Info {
	if key, ok := KeypadKey(act); ok {
		return Info{CategoryGameInput, fmt.Sprintf("Keypad %X", key)}
	}
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{CategoryDebug, fmt.Sprintf("Unknown action %d", int(act))}
}

// KeypadKey returns the keypad index for a keypad action.
func KeypadKey(act Action) (int, bool) {
	if act >= Keypad0 && act <= KeypadF {
		return int(act - Keypad0), true
	}
	return 0, false
}

// KeypadAction returns the action for keypad index key, which must be in [0,16).
func KeypadAction(key int) Action {
	return Keypad0 + Action(key&0xF)
}

func (a Action) String() string {
	return GetInfo(a).Description
}
