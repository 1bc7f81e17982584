package scene

import (
	"cubescene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeVertexCount is the number of vertices in a cube: 12 triangles of 3.
const CubeVertexCount = 36

// TexturedFormat interleaves a texture coordinate and a position per vertex.
var TexturedFormat = graphics.MustVertexFormat("2f 3f")

// TexturedAttribs names the TexturedFormat components in order.
var TexturedAttribs = []string{AttribTexcoord0, AttribPosition}

var cubeCorners = [8]mgl32.Vec3{
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	{-1, 1, -1}, {-1, -1, -1}, {1, -1, -1}, {1, 1, -1},
}

// counter-clockwise when seen from outside
var cubeIndices = [12][3]int{
	{0, 2, 3}, {0, 1, 2},
	{1, 7, 2}, {1, 6, 7},
	{6, 5, 4}, {4, 7, 6},
	{3, 4, 5}, {3, 5, 0},
	{3, 7, 4}, {3, 2, 7},
	{0, 6, 1}, {0, 5, 6},
}

var cubeUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

var cubeUVIndices = [12][3]int{
	{0, 2, 3}, {0, 1, 2},
	{0, 2, 3}, {0, 1, 2},
	{0, 1, 2}, {2, 3, 0},
	{2, 3, 0}, {2, 0, 1},
	{0, 2, 3}, {0, 1, 2},
	{3, 1, 2}, {3, 0, 1},
}

// CubeVertexData expands the cube's corners through its index list into
// CubeVertexCount vertices in TexturedFormat. Positions are multiplied by
// scale; a scale of 0 is treated as 1.
func CubeVertexData(scale float32) []float32 {
	if scale == 0 {
		scale = 1
	}
	out := make([]float32, 0, CubeVertexCount*TexturedFormat.FloatsPerVertex())
	for tri := range cubeIndices {
		for corner := 0; corner < 3; corner++ {
			uv := cubeUVs[cubeUVIndices[tri][corner]]
			p := cubeCorners[cubeIndices[tri][corner]].Mul(scale)
			out = append(out, uv[0], uv[1], p[0], p[1], p[2])
		}
	}
	return out
}

// NewCube builds a textured cube.
func NewCube(res Resources, params ObjectParams) (*Object, error) {
	if params.Name == "" {
		params.Name = "cube"
	}
	return newObject(res, params, geometry{
		data:   CubeVertexData(params.Scale),
		format: TexturedFormat,
		attrs:  TexturedAttribs,
	})
}
