package main

import (
	"fmt"

	"cubescene/internal/assets"
	"cubescene/internal/config"
	"cubescene/internal/engine"
	"cubescene/internal/graphics/opengl"
	"cubescene/internal/input"
	"cubescene/internal/logging"
	"cubescene/internal/platform"
)

// run builds the engine and blocks until it terminates. Every resource is
// released before it returns.
func run(quit <-chan struct{}) error {
	path := config.PathFromEnv()
	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(settings.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	config.Apply(settings)
	log := logging.For("main")
	log.Info("config loaded", "path", path)

	if err := platform.Init(); err != nil {
		return err
	}
	defer platform.Terminate()

	window, err := platform.NewWindow(platform.WindowOptions{
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Title:  settings.Window.Title,
		VSync:  settings.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	ctx := opengl.New()
	width, height := window.FramebufferSize()
	ctx.Viewport(width, height)

	controls := input.NewManager()
	controls.Attach(window.GLFW())

	var reloads <-chan string
	if config.GetHotReload() {
		watcher, err := assets.NewShaderWatcher(settings.Render.ShaderDir)
		if err != nil {
			log.Warn("shader hot reload disabled", "err", err)
		} else {
			defer watcher.Close()
			reloads = watcher.Changes()
		}
	}

	e, err := engine.Build(settings, engine.Deps{
		Graphics: ctx,
		Surface:  window,
		Controls: controls,
		Quit:     quit,
		Reloads:  reloads,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return err
	}
	defer e.Shutdown()
	window.OnResize(e.Resize)

	e.Run()
	return nil
}
