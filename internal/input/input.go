package input

import (
	"sync"

	"cubescene/internal/camera"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	"move_forward", "move_backward", "move_left", "move_right", "move_up", "move_down", "quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Manager tracks keyboard and cursor state and maps physical keys to
// logical actions. Event handlers may run on any goroutine; reads are
// made from the render loop.
type Manager struct {
	mu sync.RWMutex

	// one key can map to several actions
	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool

	// reset each frame by PostUpdate
	justPressed [ActionCount]bool

	// cursor movement accumulated since the last Snapshot
	firstMouse bool
	lastX      float64
	lastY      float64
	mouseDX    float64
	mouseDY    float64
}

// NewManager creates a Manager with the default bindings: WASD to move,
// Q and E to fly up and down, Escape to quit.
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]Action),
		firstMouse:   true,
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyQ, ActionMoveUp)
	m.BindKey(glfw.KeyE, ActionMoveDown)
	m.BindKey(glfw.KeyEscape, ActionQuit)

	return m
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (m *Manager) UnbindKey(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keyToActions, key)
}

// HandleKeyEvent processes a key event and updates internal state
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, exists := m.keyToActions[key]
	if !exists {
		return
	}

	isPressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		// detect the press edge as the event arrives
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		m.currentState[act] = isPressed
	}
}

// HandleCursorEvent records an absolute cursor position. The first event
// only establishes the reference point.
func (m *Manager) HandleCursorEvent(xpos, ypos float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.firstMouse {
		m.lastX, m.lastY = xpos, ypos
		m.firstMouse = false
		return
	}

	m.mouseDX += xpos - m.lastX
	m.mouseDY += ypos - m.lastY
	m.lastX, m.lastY = xpos, ypos
}

// HandleFocusEvent resets the cursor reference when the window regains
// focus, so the jump made while unfocused is not turned into camera motion.
func (m *Manager) HandleFocusEvent(focused bool) {
	if focused {
		m.ResetCursor()
	}
}

// ResetCursor forgets the reference point, e.g. after the cursor mode changes.
func (m *Manager) ResetCursor() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.firstMouse = true
	m.mouseDX, m.mouseDY = 0, 0
}

// Attach installs the key and cursor callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		m.HandleCursorEvent(xpos, ypos)
	})
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		m.HandleFocusEvent(focused)
	})
}

// Snapshot returns the movement state for this frame and drains the
// accumulated cursor movement.
func (m *Manager) Snapshot() camera.InputState {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := camera.InputState{
		Forward:  m.currentState[ActionMoveForward],
		Backward: m.currentState[ActionMoveBackward],
		Left:     m.currentState[ActionMoveLeft],
		Right:    m.currentState[ActionMoveRight],
		Up:       m.currentState[ActionMoveUp],
		Down:     m.currentState[ActionMoveDown],
		MouseDX:  m.mouseDX,
		MouseDY:  m.mouseDY,
	}
	m.mouseDX, m.mouseDY = 0, 0
	return in
}

// QuitRequested reports whether quit is held or was pressed this frame, so
// a press and release between two polls is not lost.
func (m *Manager) QuitRequested() bool {
	return m.IsActive(ActionQuit) || m.JustPressed(ActionQuit)
}

// PostUpdate must be called at the end of each frame to update edge
// detection state.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.justPressed[:])
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.justPressed[action]
}

