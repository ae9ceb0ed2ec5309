package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

type recordingKeypad struct {
	down []int
	up   []int
}

func (k *recordingKeypad) KeyDown(key int) { k.down = append(k.down, key) }
func (k *recordingKeypad) KeyUp(key int)   { k.up = append(k.up, key) }

func TestDefaultKeyMap_Layout(t *testing.T) {
	rows := []struct {
		keys   string
		digits []int
	}{
		{keys: "1234", digits: []int{0x1, 0x2, 0x3, 0xC}},
		{keys: "qwer", digits: []int{0x4, 0x5, 0x6, 0xD}},
		{keys: "asdf", digits: []int{0x7, 0x8, 0x9, 0xE}},
		{keys: "zxcv", digits: []int{0xA, 0x0, 0xB, 0xF}},
	}

	for _, row := range rows {
		for i, r := range row.keys {
			act, ok := DefaultKeyMap.Lookup(string(r))
			require.True(t, ok, "key %q", r)

			key, ok := action.KeypadKey(act)
			require.True(t, ok)
			assert.Equal(t, row.digits[i], key, "key %q", r)
		}
	}
}

func TestNewKeyMap(t *testing.T) {
	keys, err := NewKeyMap(map[string]string{"Up": "5", "w": "b"})
	require.NoError(t, err)

	assert.Equal(t, action.Keypad5, keys["Up"])
	assert.Equal(t, action.KeypadB, keys["w"], "overrides replace default bindings")
	assert.Equal(t, action.EmulatorQuit, keys["Escape"])
	assert.Equal(t, action.Keypad4, DefaultKeyMap["q"], "defaults are not modified")

	_, err = NewKeyMap(map[string]string{"k": "G"})
	assert.Error(t, err)
	_, err = NewKeyMap(map[string]string{"k": "10"})
	assert.Error(t, err)
}

func TestManager_KeypadActions(t *testing.T) {
	keypad := &recordingKeypad{}
	m := NewManager(keypad)

	m.Trigger(action.Keypad7, event.Press)
	m.Trigger(action.Keypad7, event.Hold)
	m.Trigger(action.Keypad7, event.Release)
	m.Trigger(action.Keypad7, event.Press)

	assert.Equal(t, []int{7, 7}, keypad.down, "keypad presses are not debounced")
	assert.Equal(t, []int{7}, keypad.up)
}

func TestManager_Callbacks(t *testing.T) {
	m := NewManager(nil)
	now := time.Unix(0, 0)
	m.now = func() time.Time { return now }

	calls := 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { calls++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, calls)

	now = now.Add(100 * time.Millisecond)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 1, calls, "debounced")

	now = now.Add(debounceDuration)
	m.Trigger(action.EmulatorPauseToggle, event.Press)
	assert.Equal(t, 2, calls)

	m.Trigger(action.EmulatorPauseToggle, event.Release)
	assert.Equal(t, 2, calls, "no callback for release")

	m.Trigger(action.Keypad1, event.Press) // nil keypad is fine
}
