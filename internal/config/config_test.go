package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cubescene/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetFPSLimitClamps(t *testing.T) {
	defer config.SetFPSLimit(config.GetFPSLimit())

	tests := []struct {
		in, want int
	}{
		{60, 60},
		{0, 0},
		{-5, config.MinFPSLimit},
		{5000, config.MaxFPSLimit},
	}
	for _, tt := range tests {
		config.SetFPSLimit(tt.in)
		if got := config.GetFPSLimit(); got != tt.want {
			t.Errorf("SetFPSLimit(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetClearColorClamps(t *testing.T) {
	defer config.SetClearColor(config.GetClearColor())

	config.SetClearColor(mgl32.Vec3{-1, 0.5, 2})
	if got, want := config.GetClearColor(), (mgl32.Vec3{0, 0.5, 1}); got != want {
		t.Errorf("clear color = %v, want %v", got, want)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := config.Default()
	if s.Window != d.Window || s.Render != d.Render || s.Camera != d.Camera || s.Scene != d.Scene {
		t.Errorf("settings = %+v, want defaults", s)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubescene.toml")
	data := `
log_level = "debug"

[render]
fps_limit = 144
hot_reload = true

[scene]
grid = 2
mesh_path = "objects/cat/cat.obj"

[textures]
cat = "cat.png"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LogLevel != "debug" || s.Render.FPSLimit != 144 || !s.Render.HotReload {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.Scene.Grid != 2 || s.Scene.MeshPath != "objects/cat/cat.obj" {
		t.Errorf("scene = %+v", s.Scene)
	}
	if s.Textures["cat"] != "cat.png" {
		t.Errorf("cat texture = %q, want cat.png", s.Textures["cat"])
	}
	if s.Window.Width != 1600 || s.Render.ShaderDir != "shaders" {
		t.Errorf("defaults lost: window %+v, shader dir %q", s.Window, s.Render.ShaderDir)
	}

	defer config.Apply(config.Default())
	config.Apply(s)
	if config.GetFPSLimit() != 144 || !config.GetHotReload() {
		t.Error("Apply did not update the runtime settings")
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "[render]\nfsp_limit = 30\n", "unknown keys"},
		{"bad window", "[window]\nwidth = 0\n", "window size"},
		{"bad clip", "[camera]\nnear = 10.0\nfar = 1.0\n", "near < far"},
		{"bad fov", "[camera]\nfov = 180.0\n", "fov"},
		{"bad texture key", "[textures]\nmarble = \"m.png\"\n", "unknown texture key"},
		{"bad fps", "[render]\nfps_limit = -1\n", "fps_limit"},
		{"syntax", "[render\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(config.EnvPath, "")
	if got := config.PathFromEnv(); got != config.DefaultPath {
		t.Errorf("got %q, want %q", got, config.DefaultPath)
	}
	t.Setenv(config.EnvPath, "/etc/cubescene.toml")
	if got := config.PathFromEnv(); got != "/etc/cubescene.toml" {
		t.Errorf("got %q", got)
	}
}
