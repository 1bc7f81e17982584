package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"cubescene/internal/camera"
	"cubescene/internal/config"
	"cubescene/internal/graphics"
	"cubescene/internal/light"
	"cubescene/internal/logging"
	"cubescene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Deps are the platform pieces an engine is built around.
type Deps struct {
	Graphics graphics.Context
	Surface  Surface
	Controls Controls
	Clock    Clock
	Quit     <-chan struct{}
	Reloads  <-chan string

	// Framebuffer size in pixels, used for the initial aspect ratio.
	Width  int
	Height int
}

// Build loads textures, shaders and the scene described by s and returns an
// engine ready to run. On error everything created so far is released.
func Build(s config.Settings, deps Deps) (*Engine, error) {
	if deps.Graphics == nil {
		return nil, errors.New("engine: graphics context is required")
	}
	config.Apply(s)

	textures := graphics.NewTextureCache(deps.Graphics)
	if err := loadTextures(textures, s.Textures); err != nil {
		textures.ReleaseAll()
		return nil, err
	}

	sc := scene.New(scene.Resources{
		Ctx:      deps.Graphics,
		Shaders:  graphics.NewShaderDir(s.Render.ShaderDir),
		Textures: textures,
	})
	layout, err := Layout(s.Scene)
	if err != nil {
		textures.ReleaseAll()
		return nil, err
	}
	if err := sc.Load(layout); err != nil {
		textures.ReleaseAll()
		return nil, fmt.Errorf("load scene: %w", err)
	}

	cam := camera.New(mgl32.Vec3(s.Camera.Position), deps.Width, deps.Height,
		camera.WithFOV(s.Camera.FOV),
		camera.WithClip(s.Camera.Near, s.Camera.Far),
		camera.WithSpeed(s.Camera.Speed),
		camera.WithSensitivity(s.Camera.Sensitivity),
		camera.WithAngles(s.Camera.Yaw, s.Camera.Pitch),
	)

	var slow time.Duration
	if limit := s.Render.FPSLimit; limit > 0 {
		slow = 2 * time.Second / time.Duration(limit)
	}

	e, err := New(Options{
		Graphics:  deps.Graphics,
		Surface:   deps.Surface,
		Controls:  deps.Controls,
		Camera:    cam,
		Light:     light.Default(),
		Scene:     sc,
		Textures:  textures,
		Clock:     deps.Clock,
		Quit:      deps.Quit,
		Reloads:   deps.Reloads,
		SlowFrame: slow,
	})
	if err != nil {
		sc.Destroy()
		textures.ReleaseAll()
		return nil, err
	}
	return e, nil
}

// loadTextures loads the texture table in key order so handle assignment
// does not depend on map iteration.
func loadTextures(cache *graphics.TextureCache, table map[string]string) error {
	keys := make([]graphics.TextureKey, 0, len(table))
	paths := make(map[graphics.TextureKey]string, len(table))
	for name, path := range table {
		k, err := graphics.ParseTextureKey(name)
		if err != nil {
			return err
		}
		keys = append(keys, k)
		paths[k] = path
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		if _, err := cache.Load(k, paths[k]); err != nil {
			return err
		}
	}
	logging.For("textures").Info("textures loaded", "keys", len(keys), "distinct", cache.Len())
	return nil
}

// Layout converts scene settings into a scene layout.
func Layout(s config.SceneSettings) (scene.Layout, error) {
	l := scene.DefaultLayout()
	l.Grid = s.Grid
	l.Spacing = s.Spacing
	l.Height = s.Height
	l.RotationSpeed = s.RotationSpeed
	if s.Shader != "" {
		l.CubeShader = s.Shader
		l.MeshShader = s.Shader
	}
	l.MeshPath = s.MeshPath
	l.MeshOffset = mgl32.Vec3(s.MeshOffset)
	if s.MeshPath != "" {
		k, err := graphics.ParseTextureKey(s.MeshTexture)
		if err != nil {
			return scene.Layout{}, fmt.Errorf("mesh texture: %w", err)
		}
		l.MeshTexture = k
	}
	return l, nil
}
