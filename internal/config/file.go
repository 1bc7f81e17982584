package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"cubescene/internal/graphics"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "CUBESCENE_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "cubescene.toml"

// Settings is the content of the config file.
type Settings struct {
	LogLevel string            `toml:"log_level"`
	Window   WindowSettings    `toml:"window"`
	Render   RenderConfig      `toml:"render"`
	Camera   CameraSettings    `toml:"camera"`
	Scene    SceneSettings     `toml:"scene"`
	Textures map[string]string `toml:"textures"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type RenderConfig struct {
	FPSLimit   int        `toml:"fps_limit"`
	ClearColor [3]float32 `toml:"clear_color"`
	ShaderDir  string     `toml:"shader_dir"`
	HotReload  bool       `toml:"hot_reload"`
}

type CameraSettings struct {
	FOV         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Speed       float32    `toml:"speed"`
	Sensitivity float64    `toml:"sensitivity"`
	Position    [3]float32 `toml:"position"`
	Yaw         float64    `toml:"yaw"`
	Pitch       float64    `toml:"pitch"`
}

type SceneSettings struct {
	Grid          int        `toml:"grid"`
	Spacing       float32    `toml:"spacing"`
	Height        float32    `toml:"height"`
	RotationSpeed float32    `toml:"rotation_speed"`
	Shader        string     `toml:"shader"`
	MeshPath      string     `toml:"mesh_path"`
	MeshTexture   string     `toml:"mesh_texture"`
	MeshOffset    [3]float32 `toml:"mesh_offset"`
}

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		LogLevel: "info",
		Window: WindowSettings{
			Width:  1600,
			Height: 900,
			Title:  "cubescene",
		},
		Render: RenderConfig{
			FPSLimit:   60,
			ClearColor: [3]float32{0.1, 0.1, 0.2},
			ShaderDir:  "shaders",
		},
		Camera: CameraSettings{
			FOV:         50,
			Near:        0.1,
			Far:         100,
			Speed:       5,
			Sensitivity: 0.1,
			Position:    [3]float32{2, 3, 3},
			Yaw:         -90,
		},
		Scene: SceneSettings{
			Grid:        10,
			Spacing:     2,
			Height:      -2,
			Shader:      "default",
			MeshPath:    "objects/pyramid/pyramid.obj",
			MeshTexture: graphics.TextureCat.String(),
			MeshOffset:  [3]float32{0, -2, -10},
		},
		Textures: map[string]string{
			graphics.TextureStone0.String(): "textures/stone.png",
			graphics.TextureStone1.String(): "textures/stone.png",
			graphics.TextureStone2.String(): "textures/stone.png",
			graphics.TextureCat.String():    "objects/pyramid/texture.png",
		},
	}
}

// PathFromEnv returns the config path named by EnvPath, or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads settings from path over the defaults. A missing file is not
// an error; the defaults are returned.
func Load(path string) (Settings, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Decode parses TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Settings{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values that would make construction fail later on.
func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height))
	}
	if s.Render.FPSLimit < MinFPSLimit || s.Render.FPSLimit > MaxFPSLimit {
		errs = append(errs, fmt.Errorf("fps_limit %d out of range [%d, %d]", s.Render.FPSLimit, MinFPSLimit, MaxFPSLimit))
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", s.Camera.FOV))
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip [%v, %v] must satisfy 0 < near < far", s.Camera.Near, s.Camera.Far))
	}
	if s.Scene.Grid < 0 {
		errs = append(errs, fmt.Errorf("scene grid %d must not be negative", s.Scene.Grid))
	}
	for name := range s.Textures {
		if _, err := graphics.ParseTextureKey(name); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Scene.MeshPath != "" {
		if _, err := graphics.ParseTextureKey(s.Scene.MeshTexture); err != nil {
			errs = append(errs, fmt.Errorf("mesh_texture: %w", err))
		}
	}
	return errors.Join(errs...)
}
