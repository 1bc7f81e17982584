package input_test

import (
	"testing"

	"cubescene/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyEdges(t *testing.T) {
	m := input.NewManager()

	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	if !m.IsActive(input.ActionMoveForward) || !m.JustPressed(input.ActionMoveForward) {
		t.Fatal("W press not seen as forward")
	}

	m.PostUpdate()
	m.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	if m.JustPressed(input.ActionMoveForward) {
		t.Error("repeat reported as a new press")
	}
	if !m.IsActive(input.ActionMoveForward) {
		t.Error("repeat dropped the held state")
	}

	m.HandleKeyEvent(glfw.KeyW, glfw.Release)
	if m.IsActive(input.ActionMoveForward) {
		t.Error("release not detected")
	}

	m.HandleKeyEvent(glfw.KeyW, glfw.Press)
	m.PostUpdate()
	if m.JustPressed(input.ActionMoveForward) {
		t.Error("edge flag survived PostUpdate")
	}
}

func TestBindings(t *testing.T) {
	m := input.NewManager()
	m.BindKey(glfw.KeyUp, input.ActionMoveForward)
	m.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	if !m.IsActive(input.ActionMoveForward) {
		t.Error("extra binding ignored")
	}

	m.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if !m.QuitRequested() {
		t.Error("escape did not request quit")
	}
	m.HandleKeyEvent(glfw.KeyEscape, glfw.Release)
	if !m.QuitRequested() {
		t.Error("tap released before the frame ended was lost")
	}
	m.PostUpdate()

	m.UnbindKey(glfw.KeyEscape)
	m.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	if m.QuitRequested() {
		t.Error("unbound key still triggers quit")
	}

	m.BindKey(glfw.KeyX, input.ActionCount)
	m.HandleKeyEvent(glfw.KeyX, glfw.Press)
	if m.IsActive(input.Action(-1)) || m.JustPressed(input.ActionCount) {
		t.Error("out of range actions reported active")
	}
}

func TestSnapshot(t *testing.T) {
	m := input.NewManager()
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	m.HandleKeyEvent(glfw.KeyQ, glfw.Press)

	m.HandleCursorEvent(100, 100)
	m.HandleCursorEvent(110, 95)
	m.HandleCursorEvent(115, 90)

	in := m.Snapshot()
	if !in.Left || !in.Up || in.Forward || in.Right || in.Down || in.Backward {
		t.Errorf("movement = %+v, want left and up", in)
	}
	if in.MouseDX != 15 || in.MouseDY != -10 {
		t.Errorf("mouse delta = (%v, %v), want (15, -10)", in.MouseDX, in.MouseDY)
	}

	in = m.Snapshot()
	if in.MouseDX != 0 || in.MouseDY != 0 {
		t.Errorf("second snapshot delta = (%v, %v), want drained", in.MouseDX, in.MouseDY)
	}

	m.ResetCursor()
	m.HandleCursorEvent(500, 500)
	if in := m.Snapshot(); in.MouseDX != 0 || in.MouseDY != 0 {
		t.Errorf("jump after reset produced delta (%v, %v)", in.MouseDX, in.MouseDY)
	}
}

func TestRegainedFocusDropsCursorJump(t *testing.T) {
	m := input.NewManager()
	m.HandleCursorEvent(100, 100)
	m.HandleCursorEvent(104, 100)

	// regaining focus discards the pending delta and the next event only
	// re-seeds the reference point
	m.HandleFocusEvent(false)
	m.HandleFocusEvent(true)
	m.HandleCursorEvent(900, 20)
	if in := m.Snapshot(); in.MouseDX != 0 || in.MouseDY != 0 {
		t.Errorf("delta after refocus = (%v, %v), want none", in.MouseDX, in.MouseDY)
	}

	m.HandleCursorEvent(903, 22)
	if in := m.Snapshot(); in.MouseDX != 3 || in.MouseDY != 2 {
		t.Errorf("delta = (%v, %v), want (3, 2)", in.MouseDX, in.MouseDY)
	}
}

func TestFocusLossKeepsCursorState(t *testing.T) {
	m := input.NewManager()
	m.HandleCursorEvent(10, 10)
	m.HandleCursorEvent(15, 10)
	m.HandleFocusEvent(false)
	if in := m.Snapshot(); in.MouseDX != 5 {
		t.Errorf("delta after focus loss = %v, want 5", in.MouseDX)
	}
}

func TestActionString(t *testing.T) {
	if got := input.ActionQuit.String(); got != "quit" {
		t.Errorf("ActionQuit = %q", got)
	}
	if got := input.ActionCount.String(); got != "unknown" {
		t.Errorf("ActionCount = %q", got)
	}
}
