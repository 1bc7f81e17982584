package assets_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cubescene/internal/assets"
	"cubescene/internal/logging"

	"github.com/fsnotify/fsnotify"
)

func TestProgramName(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"shaders/default.vert", "default", true},
		{"/abs/shaders/triangle.frag", "triangle", true},
		{"shaders/default.frag.swp", "", false},
		{"shaders/README.md", "", false},
		{"shaders/.vert", "", false},
	}
	for _, tt := range tests {
		got, ok := assets.ProgramName(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ProgramName(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestShaderWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := assets.NewShaderWatcher(dir)
	if err != nil {
		t.Fatalf("NewShaderWatcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "default.frag"), []byte("void main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Changes():
		if name != "default" {
			t.Errorf("change = %q, want default", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for range w.Changes() {
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestShaderWatcherMissingDir(t *testing.T) {
	if _, err := assets.NewShaderWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestShaderWatcherSurvivesClosedErrors(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })

	events := make(chan fsnotify.Event)
	errs := make(chan error)
	close(errs)
	w := assets.StartWatcher(events, errs)

	// give the loop time to spin if it keeps selecting the closed channel
	time.Sleep(20 * time.Millisecond)
	events <- fsnotify.Event{Name: "shaders/triangle.vert", Op: fsnotify.Write}

	select {
	case name := <-w.Changes():
		if name != "triangle" {
			t.Errorf("change = %q, want triangle", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported after the error channel closed")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := strings.Count(buf.String(), "error channel closed"); n != 1 {
		t.Errorf("closed error channel handled %d times, want once", n)
	}
}
