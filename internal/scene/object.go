package scene

import (
	"fmt"

	"cubescene/internal/graphics"
	"cubescene/internal/light"
	"cubescene/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Shader input names shared by every object program.
const (
	UniformProj     = "m_proj"
	UniformView     = "m_view"
	UniformModel    = "m_model"
	UniformTexture0 = "u_texture_0"

	AttribPosition  = "in_position"
	AttribTexcoord0 = "in_texcoord_0"
)

// Frame carries the per-frame values every object needs.
type Frame struct {
	// Time is the number of seconds since the engine started.
	Time  float64
	View  mgl32.Mat4
	Proj  mgl32.Mat4
	Light light.Light
}

// ObjectParams places an object in the world.
type ObjectParams struct {
	Name     string
	Shader   string
	Position mgl32.Vec3
	// Texture is bound to unit 0 when Textured is set.
	Texture  graphics.TextureKey
	Textured bool
	// RotationSpeed is in radians per second about the vertical axis.
	RotationSpeed float32
	// Scale is applied to generated vertex positions; 0 means 1.
	Scale float32
}

// Resources bundles what objects are built from.
type Resources struct {
	Ctx      graphics.Context
	Shaders  *graphics.ShaderLibrary
	Textures *graphics.TextureCache
}

// geometry is the vertex data an object uploads and how it is laid out.
type geometry struct {
	data   []float32
	format graphics.VertexFormat
	attrs  []string
}

// Object owns a vertex buffer, a program and the vertex array tying them.
type Object struct {
	ID     uuid.UUID
	params ObjectParams
	ctx    graphics.Context
	geo    geometry

	program     graphics.Program
	vbo         graphics.Buffer
	vao         graphics.VertexArray
	texture     graphics.Texture
	vertexCount int32

	// light uniforms the current program declares
	lightUniforms []light.Uniform

	model     mgl32.Mat4
	destroyed bool
}

func newObject(res Resources, params ObjectParams, geo geometry) (*Object, error) {
	n, err := graphics.CheckLayout(geo.data, geo.format, geo.attrs)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", params.Name, err)
	}

	o := &Object{
		ID:          uuid.New(),
		params:      params,
		ctx:         res.Ctx,
		geo:         geo,
		vertexCount: int32(n),
		model:       mgl32.Translate3D(params.Position.Elem()),
	}

	if params.Textured {
		// unknown keys are a programming error and surface here, at load time
		if o.texture, err = res.Textures.Get(params.Texture); err != nil {
			return nil, fmt.Errorf("object %q: %w", params.Name, err)
		}
	}

	src, err := res.Shaders.Load(params.Shader)
	if err != nil {
		return nil, fmt.Errorf("object %q: %w", params.Name, err)
	}

	if o.vbo, err = o.ctx.NewBuffer(geo.data); err != nil {
		return nil, fmt.Errorf("object %q: vertex buffer: %w", params.Name, err)
	}
	if err := o.buildProgram(src); err != nil {
		o.ctx.ReleaseBuffer(o.vbo)
		return nil, err
	}

	logging.For("scene").Debug("object created", "object", params.Name, "id", o.ID, "program", params.Shader, "vertices", n)
	return o, nil
}

// buildProgram compiles src and binds the object's buffer to it. On failure
// nothing new is left allocated.
func (o *Object) buildProgram(src graphics.ShaderSource) error {
	program, err := o.ctx.NewProgram(o.params.Shader, src)
	if err != nil {
		return fmt.Errorf("object %q: %w", o.params.Name, err)
	}
	vao, err := o.ctx.NewVertexArray(program, o.vbo, o.geo.format, o.geo.attrs)
	if err != nil {
		o.ctx.ReleaseProgram(program)
		return fmt.Errorf("object %q: vertex array: %w", o.params.Name, err)
	}
	o.program = program
	o.vao = vao
	o.lightUniforms = o.lightUniforms[:0]
	for _, u := range light.Uniforms {
		if o.ctx.HasUniform(program, u.Name()) {
			o.lightUniforms = append(o.lightUniforms, u)
		}
	}
	return nil
}

// ReloadProgram swaps in a program built from src. The old program and
// vertex array are released only once the new ones exist.
func (o *Object) ReloadProgram(src graphics.ShaderSource) error {
	if o.destroyed {
		return fmt.Errorf("object %q: reload after destroy", o.params.Name)
	}
	oldProgram, oldVAO := o.program, o.vao
	if err := o.buildProgram(src); err != nil {
		return err
	}
	o.ctx.ReleaseVertexArray(oldVAO)
	o.ctx.ReleaseProgram(oldProgram)
	return nil
}

// Update recomputes the model matrix and uploads the object's uniforms.
func (o *Object) Update(f Frame) {
	angle := float32(f.Time) * o.params.RotationSpeed
	o.model = mgl32.Translate3D(o.params.Position.Elem()).Mul4(mgl32.HomogRotate3DY(angle))

	o.ctx.UseProgram(o.program)
	o.ctx.SetMat4(o.program, UniformProj, f.Proj)
	o.ctx.SetMat4(o.program, UniformView, f.View)
	o.ctx.SetMat4(o.program, UniformModel, o.model)
	if o.params.Textured {
		o.ctx.BindTexture(0, o.texture)
		o.ctx.SetInt(o.program, UniformTexture0, 0)
	}
	for _, u := range o.lightUniforms {
		o.ctx.SetVec3(o.program, u.Name(), f.Light.Value(u))
	}
}

// Render updates the uniforms, then draws.
func (o *Object) Render(f Frame) {
	o.Update(f)
	o.ctx.Draw(o.vao, o.vertexCount)
}

// Destroy releases the vertex array, buffer and program. Further calls do
// nothing.
func (o *Object) Destroy() {
	if o.destroyed {
		return
	}
	o.ctx.ReleaseVertexArray(o.vao)
	o.ctx.ReleaseBuffer(o.vbo)
	o.ctx.ReleaseProgram(o.program)
	o.destroyed = true
}

func (o *Object) Name() string              { return o.params.Name }
func (o *Object) Shader() string            { return o.params.Shader }
func (o *Object) Position() mgl32.Vec3      { return o.params.Position }
func (o *Object) Model() mgl32.Mat4         { return o.model }
func (o *Object) VertexCount() int32        { return o.vertexCount }
func (o *Object) Program() graphics.Program { return o.program }
