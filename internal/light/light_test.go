package light_test

import (
	"testing"

	"cubescene/internal/light"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntensities(t *testing.T) {
	l := light.New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 0.5, 0})

	tests := []struct {
		name string
		got  mgl32.Vec3
		want mgl32.Vec3
	}{
		{"ambient", l.Ambient(), mgl32.Vec3{0.1, 0.05, 0}},
		{"diffuse", l.Diffuse(), mgl32.Vec3{0.8, 0.4, 0}},
		{"specular", l.Specular(), mgl32.Vec3{0.5, 0.25, 0}},
	}
	for _, tt := range tests {
		if !tt.got.ApproxEqual(tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if l.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("position = %v", l.Position())
	}
}

func TestDefaultAndUniforms(t *testing.T) {
	l := light.Default()
	if l.Position() != (mgl32.Vec3{3, 3, -3}) || l.Color() != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("default light = %v %v", l.Position(), l.Color())
	}

	tests := []struct {
		u    light.Uniform
		name string
		want mgl32.Vec3
	}{
		{light.UniformPosition, "light.position", l.Position()},
		{light.UniformAmbient, "light.Ia", l.Ambient()},
		{light.UniformDiffuse, "light.Id", l.Diffuse()},
		{light.UniformSpecular, "light.Is", l.Specular()},
	}
	if len(light.Uniforms) != len(tests) {
		t.Fatalf("got %d uniforms, want %d", len(light.Uniforms), len(tests))
	}
	for i, tt := range tests {
		if light.Uniforms[i] != tt.u {
			t.Errorf("Uniforms[%d] = %v, want %v", i, light.Uniforms[i], tt.u)
		}
		if got := tt.u.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if got := l.Value(tt.u); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := light.Uniform(99).Name(); got != "" {
		t.Errorf("out of range name = %q, want empty", got)
	}
}
