package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionToggleWireframe
	ActionToggleProfiling
	ActionReleaseCursor
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys to actions and tracks held and just-pressed
// state per frame. GLFW delivers events on the main thread during
// PollEvents, so the manager is not locked.
type Manager struct {
	keyToActions map[glfw.Key][]Action

	current     [ActionCount]bool
	justPressed [ActionCount]bool
}

// NewManager creates a manager with the default fly-camera bindings.
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionMoveUp)
	m.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)
	m.BindKey(glfw.KeyV, ActionToggleProfiling)
	m.BindKey(glfw.KeyEscape, ActionReleaseCursor)

	return m
}

// BindKey binds a physical key to an action. A key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// HandleKeyEvent updates state from a GLFW key callback.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if pressed && !m.current[act] {
			m.justPressed[act] = true
		}
		m.current[act] = pressed
	}
}

// PostUpdate clears edge flags; call once at the end of each frame.
func (m *Manager) PostUpdate() {
	clear(m.justPressed[:])
}

// IsActive reports whether the action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.current[action]
}

// JustPressed reports whether the action went down this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	return m.justPressed[action]
}

// Axis returns 1 when only plus is held, -1 when only minus is held, else 0.
func (m *Manager) Axis(plus, minus Action) float32 {
	var v float32
	if m.IsActive(plus) {
		v++
	}
	if m.IsActive(minus) {
		v--
	}
	return v
}
