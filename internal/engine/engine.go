package engine

import (
	"errors"
	"sync"
	"time"

	"cubescene/internal/camera"
	"cubescene/internal/config"
	"cubescene/internal/graphics"
	"cubescene/internal/light"
	"cubescene/internal/logging"
	"cubescene/internal/profiling"
	"cubescene/internal/scene"

	"github.com/charmbracelet/log"
)

// State is the lifecycle state of an Engine.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Surface is the window the engine presents to.
type Surface interface {
	PollEvents()
	ShouldClose() bool
	SwapBuffers()
}

// Controls is the per-frame input source.
type Controls interface {
	Snapshot() camera.InputState
	QuitRequested() bool
	PostUpdate()
}

// Options wires an Engine. Every field except Clock, Quit, Reloads and
// SlowFrame is required.
type Options struct {
	Graphics graphics.Context
	Surface  Surface
	Controls Controls
	Camera   *camera.Camera
	Light    light.Light
	Scene    *scene.Scene
	Textures *graphics.TextureCache

	Clock Clock
	// Quit is closed by the signal handler to stop the loop.
	Quit <-chan struct{}
	// Reloads delivers names of shader programs whose sources changed.
	Reloads <-chan string
	// SlowFrame is the work time above which a frame is logged as slow.
	// 0 disables the warning.
	SlowFrame time.Duration
}

// Engine runs the frame loop and owns the scene, camera, light and texture
// cache. The window and graphics context stay with the caller.
type Engine struct {
	opts    Options
	clock   Clock
	limiter *FPSLimiter
	log     *log.Logger

	state  State
	start  time.Time
	last   time.Time
	frames int

	fpsFrames int
	fpsWindow time.Time

	shutdown sync.Once
}

// New validates opts and returns a running engine. The clock starts now.
func New(opts Options) (*Engine, error) {
	var errs []error
	if opts.Graphics == nil {
		errs = append(errs, errors.New("engine: graphics context is required"))
	}
	if opts.Surface == nil {
		errs = append(errs, errors.New("engine: surface is required"))
	}
	if opts.Controls == nil {
		errs = append(errs, errors.New("engine: controls are required"))
	}
	if opts.Camera == nil {
		errs = append(errs, errors.New("engine: camera is required"))
	}
	if opts.Scene == nil {
		errs = append(errs, errors.New("engine: scene is required"))
	}
	if opts.Textures == nil {
		errs = append(errs, errors.New("engine: texture cache is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	e := &Engine{
		opts:    opts,
		clock:   clock,
		limiter: NewFPSLimiter(clock),
		log:     logging.For("engine"),
	}
	e.start = clock.Now()
	e.last = e.start
	e.fpsWindow = e.start
	e.limiter.Start(e.start)
	return e, nil
}

// Run steps until the engine terminates.
func (e *Engine) Run() {
	e.log.Info("render loop started", "objects", e.opts.Scene.Len(), "fps_limit", config.GetFPSLimit())
	for e.Step() == Running {
	}
	e.log.Info("render loop stopped", "frames", e.frames, "uptime", e.clock.Now().Sub(e.start).Round(time.Millisecond))
}

// Step runs one frame and returns the resulting state. A quit request
// releases every owned resource before Terminated is returned.
func (e *Engine) Step() State {
	if e.state == Terminated {
		return Terminated
	}
	profiling.ResetFrame()

	now := e.clock.Now()
	elapsed := now.Sub(e.start).Seconds()
	dt := now.Sub(e.last).Seconds()
	e.last = now

	e.drainReloads()

	func() { defer profiling.Track("glfw.PollEvents")(); e.opts.Surface.PollEvents() }()
	if e.quitRequested() {
		e.Shutdown()
		return Terminated
	}

	in := e.opts.Controls.Snapshot()
	func() { defer profiling.Track("engine.update")(); e.opts.Camera.Update(in, dt) }()

	e.opts.Graphics.Clear(config.GetClearColor())
	e.opts.Scene.Render(scene.Frame{
		Time:  elapsed,
		View:  e.opts.Camera.ViewMatrix(),
		Proj:  e.opts.Camera.ProjectionMatrix(),
		Light: e.opts.Light,
	})

	func() { defer profiling.Track("glfw.SwapBuffers")(); e.opts.Surface.SwapBuffers() }()
	e.opts.Controls.PostUpdate()
	e.frames++

	work := e.clock.Now().Sub(now)
	if e.opts.SlowFrame > 0 && work > e.opts.SlowFrame {
		e.log.Warn("slow frame", "work", work, "top", profiling.TopN(3))
	}

	func() { defer profiling.Track("pacing.wait")(); e.limiter.Wait() }()
	e.logFPS()
	return Running
}

func (e *Engine) quitRequested() bool {
	if e.opts.Surface.ShouldClose() {
		e.log.Info("window closed")
		return true
	}
	if e.opts.Controls.QuitRequested() {
		e.log.Info("quit requested")
		return true
	}
	select {
	case <-e.opts.Quit:
		e.log.Info("shutdown signal received")
		return true
	default:
		return false
	}
}

func (e *Engine) drainReloads() {
	for {
		select {
		case name, ok := <-e.opts.Reloads:
			if !ok {
				e.opts.Reloads = nil
				return
			}
			n, err := e.opts.Scene.ReloadShader(name)
			if err != nil {
				e.log.Warn("shader reload failed, keeping previous program", "program", name, "err", err)
				continue
			}
			e.log.Info("shader reloaded", "program", name, "objects", n)
		default:
			return
		}
	}
}

func (e *Engine) logFPS() {
	e.fpsFrames++
	now := e.clock.Now()
	if window := now.Sub(e.fpsWindow); window >= time.Second {
		fps := float64(e.fpsFrames) / window.Seconds()
		e.log.Debug("frame rate", "fps", int(fps+0.5), "draws", e.opts.Scene.Len(), "glfw", profiling.SumWithPrefix("glfw."))
		e.fpsFrames = 0
		e.fpsWindow = now
	}
}

// Shutdown releases the scene objects, then the textures, and marks the
// engine terminated. Only the first call has an effect.
func (e *Engine) Shutdown() {
	e.shutdown.Do(func() {
		e.opts.Scene.Destroy()
		e.opts.Textures.ReleaseAll()
		e.state = Terminated
		e.log.Debug("resources released")
	})
}

// Resize updates the viewport and the camera aspect ratio after a
// framebuffer size change. Non-positive sizes are ignored.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.opts.Graphics.Viewport(width, height)
	e.opts.Camera.SetViewport(width, height)
	e.log.Debug("viewport resized", "width", width, "height", height)
}

func (e *Engine) State() State           { return e.state }
func (e *Engine) Frames() int            { return e.frames }
func (e *Engine) Camera() *camera.Camera { return e.opts.Camera }
func (e *Engine) Scene() *scene.Scene    { return e.opts.Scene }
