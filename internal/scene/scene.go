package scene

import (
	"fmt"

	"cubescene/internal/graphics"
	"cubescene/internal/logging"
	"cubescene/internal/mesh"
	"cubescene/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Layout is the procedural description a scene is built from.
type Layout struct {
	// Grid is the number of cubes along each horizontal axis. Cube (x, z)
	// sits at (x*Spacing, Height, z*Spacing).
	Grid    int
	Spacing float32
	Height  float32

	CubeShader string
	// CubeTextures are assigned to cubes round robin.
	CubeTextures  []graphics.TextureKey
	RotationSpeed float32

	// MeshPath is an OBJ file for the single mesh instance; empty disables it.
	MeshPath    string
	MeshShader  string
	MeshTexture graphics.TextureKey
	MeshOffset  mgl32.Vec3
}

// DefaultLayout is a 10x10 grid of stone cubes one level below the origin.
// The mesh instance, textured with the cat key in front of the camera, is
// added once MeshPath is set.
func DefaultLayout() Layout {
	return Layout{
		Grid:          10,
		Spacing:       2,
		Height:        -2,
		CubeShader:    "default",
		CubeTextures:  []graphics.TextureKey{graphics.TextureStone0, graphics.TextureStone1, graphics.TextureStone2},
		RotationSpeed: 0,
		MeshShader:    "default",
		MeshTexture:   graphics.TextureCat,
		MeshOffset:    mgl32.Vec3{0, -2, -10},
	}
}

// GridPositions lists the cube positions of a layout in draw order.
func (l Layout) GridPositions() []mgl32.Vec3 {
	if l.Grid <= 0 {
		return nil
	}
	out := make([]mgl32.Vec3, 0, l.Grid*l.Grid)
	for x := 0; x < l.Grid; x++ {
		for z := 0; z < l.Grid; z++ {
			out = append(out, mgl32.Vec3{float32(x) * l.Spacing, l.Height, float32(z) * l.Spacing})
		}
	}
	return out
}

// Scene is an ordered list of objects. Insertion order is draw order.
type Scene struct {
	res     Resources
	objects []*Object
}

// New returns an empty scene building objects from res.
func New(res Resources) *Scene {
	return &Scene{res: res}
}

// Resources returns what the scene builds objects from, for callers adding
// objects of their own.
func (s *Scene) Resources() Resources {
	return s.res
}

// Add appends an object; the scene takes ownership of it.
func (s *Scene) Add(o *Object) {
	s.objects = append(s.objects, o)
}

// Load populates the scene from layout. If any object fails to build, the
// ones already built are destroyed and the scene is left empty.
func (s *Scene) Load(layout Layout) error {
	built, err := s.build(layout)
	if err != nil {
		for _, o := range built {
			o.Destroy()
		}
		return err
	}
	s.objects = append(s.objects, built...)
	logging.For("scene").Info("scene loaded", "objects", len(built), "mesh", layout.MeshPath != "")
	return nil
}

func (s *Scene) build(layout Layout) ([]*Object, error) {
	var built []*Object
	for i, pos := range layout.GridPositions() {
		params := ObjectParams{
			Name:          fmt.Sprintf("cube[%d]", i),
			Shader:        layout.CubeShader,
			Position:      pos,
			RotationSpeed: layout.RotationSpeed,
		}
		if n := len(layout.CubeTextures); n > 0 {
			params.Texture = layout.CubeTextures[i%n]
			params.Textured = true
		}
		cube, err := NewCube(s.res, params)
		if err != nil {
			return built, err
		}
		built = append(built, cube)
	}

	if layout.MeshPath != "" {
		m, err := mesh.Load(layout.MeshPath)
		if err != nil {
			return built, err
		}
		obj, err := NewMesh(s.res, ObjectParams{
			Name:     "mesh",
			Shader:   layout.MeshShader,
			Position: layout.MeshOffset,
			Texture:  layout.MeshTexture,
			Textured: true,
		}, m)
		if err != nil {
			return built, err
		}
		built = append(built, obj)
	}
	return built, nil
}

// Render draws every object in insertion order, one draw call each.
func (s *Scene) Render(f Frame) {
	defer profiling.Track("scene.Render")()
	for _, o := range s.objects {
		o.Render(f)
	}
}

// ReloadShader rebuilds the program of every object using shader name. The
// first failure is returned; objects keep their previous program on error.
func (s *Scene) ReloadShader(name string) (int, error) {
	src, err := s.res.Shaders.Load(name)
	if err != nil {
		return 0, err
	}
	reloaded := 0
	for _, o := range s.objects {
		if o.Shader() != name {
			continue
		}
		if err := o.ReloadProgram(src); err != nil {
			return reloaded, err
		}
		reloaded++
	}
	return reloaded, nil
}

// Destroy releases every object in iteration order and empties the scene.
func (s *Scene) Destroy() {
	for _, o := range s.objects {
		o.Destroy()
	}
	s.objects = nil
}

// Objects returns the objects in draw order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len is the number of objects, and so the number of draws per frame.
func (s *Scene) Len() int {
	return len(s.objects)
}
