package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

const (
	// debounceDuration is the minimum time between two debounced events
	debounceDuration = 300 * time.Millisecond
)

// Keypad receives keypad actions. The machine implements it.
type Keypad interface {
	KeyDown(key int)
	KeyUp(key int)
}

// Manager routes actions: keypad actions go straight to the keypad, the
// rest run the callbacks registered with On.
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	keypad        Keypad
	now           func() time.Time
}

func NewManager(keypad Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		keypad:        keypad,
		now:           time.Now,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	// Keypad input is never debounced, programs poll it every frame.
	if key, ok := action.KeypadKey(act); ok {
		if m.keypad == nil {
			return
		}
		switch evt {
		case event.Press:
			m.keypad.KeyDown(key)
		case event.Release:
			m.keypad.KeyUp(key)
		}
		return
	}

	if evt == event.Press || evt == event.Release {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if now.Sub(m.lastTriggered[act][evt]) < debounceDuration {
			slog.Debug("Debounced input", "action", act, "type", evt)
			return
		}
		m.lastTriggered[act][evt] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
