package light

import "github.com/go-gl/mathgl/mgl32"

// Intensity factors applied to the base color.
const (
	AmbientFactor  = 0.1
	DiffuseFactor  = 0.8
	SpecularFactor = 0.5
)

// Light is a single static point light.
type Light struct {
	position mgl32.Vec3
	color    mgl32.Vec3

	ambient  mgl32.Vec3
	diffuse  mgl32.Vec3
	specular mgl32.Vec3
}

// New builds a light and derives its intensity vectors from color.
func New(position, color mgl32.Vec3) Light {
	return Light{
		position: position,
		color:    color,
		ambient:  color.Mul(AmbientFactor),
		diffuse:  color.Mul(DiffuseFactor),
		specular: color.Mul(SpecularFactor),
	}
}

// Default is a white light at (3, 3, -3).
func Default() Light {
	return New(mgl32.Vec3{3, 3, -3}, mgl32.Vec3{1, 1, 1})
}

func (l Light) Position() mgl32.Vec3 { return l.position }
func (l Light) Color() mgl32.Vec3    { return l.color }
func (l Light) Ambient() mgl32.Vec3  { return l.ambient }
func (l Light) Diffuse() mgl32.Vec3  { return l.diffuse }
func (l Light) Specular() mgl32.Vec3 { return l.specular }

// Uniform is one shader input fed from the light.
type Uniform int

const (
	UniformPosition Uniform = iota
	UniformAmbient
	UniformDiffuse
	UniformSpecular
	uniformCount
)

// Uniforms lists every light uniform in upload order.
var Uniforms = [uniformCount]Uniform{UniformPosition, UniformAmbient, UniformDiffuse, UniformSpecular}

var uniformNames = [uniformCount]string{
	UniformPosition: "light.position",
	UniformAmbient:  "light.Ia",
	UniformDiffuse:  "light.Id",
	UniformSpecular: "light.Is",
}

// Name is the GLSL uniform name, e.g. "light.Ia".
func (u Uniform) Name() string {
	if u < 0 || u >= uniformCount {
		return ""
	}
	return uniformNames[u]
}

// Value returns the light's value for uniform u.
func (l Light) Value(u Uniform) mgl32.Vec3 {
	switch u {
	case UniformPosition:
		return l.position
	case UniformAmbient:
		return l.ambient
	case UniformDiffuse:
		return l.diffuse
	case UniformSpecular:
		return l.specular
	}
	return mgl32.Vec3{}
}
