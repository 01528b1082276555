package input

import (
	"time"

	"github.com/valerio/go-hexgen/hexgen/input/action"
	"github.com/valerio/go-hexgen/hexgen/window/event"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager maps key events to actions and runs the callbacks registered for them
type Manager struct {
	keyMap        map[string]action.Action
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	now           func() time.Time
}

// NewManager creates a manager using keyMap, or DefaultKeyMap when nil.
func NewManager(keyMap map[string]action.Action) *Manager {
	if keyMap == nil {
		keyMap = DefaultKeyMap
	}
	return &Manager{
		keyMap:        keyMap,
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
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

// HandleEvent triggers the action mapped to a key event. Returns false for
// events that are not key events or have no mapping.
func (m *Manager) HandleEvent(ev event.Event) bool {
	if ev.Type != event.KeyPressed && ev.Type != event.KeyReleased {
		return false
	}
	act, ok := m.keyMap[ev.Key]
	if !ok {
		return false
	}
	return m.Trigger(act, ev.Type)
}

// Trigger runs the callbacks for the action. Returns false if the event was debounced.
func (m *Manager) Trigger(act action.Action, evt event.Type) bool {
	if act.Debounced() {
		now := m.now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if lastTime, exists := m.lastTriggered[act][evt]; exists && now.Sub(lastTime) < debounceDuration {
			return false
		}
		m.lastTriggered[act][evt] = now
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
	return true
}
