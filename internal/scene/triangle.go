package scene

import (
	"cubescene/internal/graphics"
	"cubescene/internal/mesh"
)

var triangleFormat = graphics.MustVertexFormat("3f")

// TriangleVertexData is a single untextured triangle in the "3f" format.
func TriangleVertexData() []float32 {
	return []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0, 0.5, 0,
	}
}

// NewTriangle builds the untextured triangle.
func NewTriangle(res Resources, params ObjectParams) (*Object, error) {
	if params.Name == "" {
		params.Name = "triangle"
	}
	params.Textured = false
	return newObject(res, params, geometry{
		data:   TriangleVertexData(),
		format: triangleFormat,
		attrs:  []string{AttribPosition},
	})
}

// NewMesh builds a textured object from a loaded OBJ mesh.
func NewMesh(res Resources, params ObjectParams, m *mesh.Mesh) (*Object, error) {
	if params.Name == "" {
		params.Name = "mesh"
	}
	return newObject(res, params, geometry{
		data:   m.VertexData(),
		format: TexturedFormat,
		attrs:  TexturedAttribs,
	})
}
