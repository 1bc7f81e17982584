package graphics

import "github.com/go-gl/mathgl/mgl32"

// GPU object handles. Zero is never a valid handle.
type (
	Buffer      uint32
	VertexArray uint32
	Program     uint32
	Texture     uint32
)

// Pixels is a tightly packed, bottom-row-first RGB image ready for upload.
type Pixels struct {
	Width  int
	Height int
	RGB    []byte
}

// Context is the part of the graphics API the renderer drives. All calls must
// happen on the thread that owns the GL context. opengl.Context is the OpenGL
// implementation; graphicstest.Recorder records calls for tests.
type Context interface {
	NewBuffer(data []float32) (Buffer, error)
	NewProgram(name string, src ShaderSource) (Program, error)
	// NewVertexArray ties buffer b, laid out as format, to the named program
	// inputs. len(attrs) must equal the number of format components.
	NewVertexArray(p Program, b Buffer, format VertexFormat, attrs []string) (VertexArray, error)
	// NewTexture uploads px as an RGB texture, builds mipmaps and applies
	// trilinear filtering with the given anisotropy.
	NewTexture(px Pixels, anisotropy float32) (Texture, error)

	UseProgram(p Program)
	HasUniform(p Program, name string) bool
	SetMat4(p Program, name string, m mgl32.Mat4)
	SetVec3(p Program, name string, v mgl32.Vec3)
	SetInt(p Program, name string, v int32)
	BindTexture(unit uint32, t Texture)
	Draw(va VertexArray, vertexCount int32)

	Clear(color mgl32.Vec3)
	Viewport(width, height int)

	ReleaseVertexArray(va VertexArray)
	ReleaseBuffer(b Buffer)
	ReleaseProgram(p Program)
	ReleaseTexture(t Texture)
}
