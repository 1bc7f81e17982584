package main

import (
	"runtime"

	"cubescene/internal/camera"
	"cubescene/internal/config"
	"cubescene/internal/engine"
	"cubescene/internal/graphics"
	"cubescene/internal/graphics/opengl"
	"cubescene/internal/input"
	"cubescene/internal/light"
	"cubescene/internal/logging"
	"cubescene/internal/platform"
	"cubescene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	runtime.LockOSThread()
}

// A single untextured triangle in front of the camera, drawn through the
// same object and engine path as the cube scene.
func main() {
	log := logging.For("triangle")
	if err := platform.Init(); err != nil {
		log.Fatal("init", "err", err)
	}
	defer platform.Terminate()

	window, err := platform.NewWindow(platform.WindowOptions{
		Width:  windowWidth,
		Height: windowHeight,
		Title:  "OpenGL 4.1 - Single Triangle",
	})
	if err != nil {
		log.Fatal("window", "err", err)
	}
	defer window.Destroy()

	ctx := opengl.New()
	width, height := window.FramebufferSize()
	ctx.Viewport(width, height)

	textures := graphics.NewTextureCache(ctx)
	sc := scene.New(scene.Resources{
		Ctx:      ctx,
		Shaders:  graphics.NewShaderDir(config.Default().Render.ShaderDir),
		Textures: textures,
	})
	tri, err := scene.NewTriangle(sc.Resources(), scene.ObjectParams{Shader: "triangle"})
	if err != nil {
		log.Fatal("triangle", "err", err)
	}
	sc.Add(tri)

	controls := input.NewManager()
	controls.Attach(window.GLFW())

	e, err := engine.New(engine.Options{
		Graphics: ctx,
		Surface:  window,
		Controls: controls,
		Camera:   camera.New(mgl32.Vec3{0, 0, 2}, width, height),
		Light:    light.Default(),
		Scene:    sc,
		Textures: textures,
	})
	if err != nil {
		log.Fatal("engine", "err", err)
	}
	window.OnResize(e.Resize)
	e.Run()
}
