package platform

import (
	"fmt"

	"cubescene/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowOptions describe the window to open.
type WindowOptions struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is a GLFW window with a current OpenGL 4.1 core context. All
// methods must be called from the thread that created it.
type Window struct {
	win *glfw.Window
}

// Init initializes GLFW. Call Terminate when done.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	return nil
}

// Terminate releases GLFW.
func Terminate() {
	glfw.Terminate()
}

// NewWindow opens a window, makes its context current and loads the GL
// function pointers.
func NewWindow(opts WindowOptions) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	// without vsync the engine's FPS limiter paces frames
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	logging.For("platform").Info("window created",
		"size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return &Window{win: win}, nil
}

// GLFW exposes the underlying window for callback registration.
func (w *Window) GLFW() *glfw.Window { return w.win }

func (w *Window) PollEvents()       { glfw.PollEvents() }
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on high-DPI displays.
func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// OnResize registers fn for framebuffer size changes. Zero sizes, sent while
// the window is minimized, are dropped.
func (w *Window) OnResize(fn func(width, height int)) {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		fn(width, height)
	})
}

// Destroy closes the window and its context.
func (w *Window) Destroy() {
	w.win.Destroy()
}
