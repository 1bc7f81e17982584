package opengl

import (
	"fmt"
	"strings"

	"cubescene/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Context is the OpenGL implementation of graphics.Context. gl.Init must have
// succeeded on the calling thread before it is created.
type Context struct {
	// uniform locations per program, looked up lazily
	locations  map[graphics.Program]map[string]int32
	anisotropy float32
}

var _ graphics.Context = (*Context)(nil)

// New configures global pipeline state (depth test, back-face culling) and
// returns the context.
func New() *Context {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	var maxAnisotropy float32
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &maxAnisotropy)

	return &Context{
		locations:  make(map[graphics.Program]map[string]int32),
		anisotropy: maxAnisotropy,
	}
}

func (c *Context) NewBuffer(data []float32) (graphics.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty vertex buffer")
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return graphics.Buffer(vbo), nil
}

func (c *Context) NewProgram(name string, src graphics.ShaderSource) (graphics.Program, error) {
	program, err := compileProgram(name, src.Vertex, src.Fragment)
	if err != nil {
		return 0, err
	}
	c.locations[graphics.Program(program)] = make(map[string]int32)
	return graphics.Program(program), nil
}

func (c *Context) NewVertexArray(p graphics.Program, b graphics.Buffer, format graphics.VertexFormat, attrs []string) (graphics.VertexArray, error) {
	if len(attrs) != len(format.Components) {
		return 0, fmt.Errorf("vertex format %q does not match attributes %v", format, attrs)
	}
	locs := make([]uint32, len(attrs))
	for i, name := range attrs {
		loc := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
		if loc < 0 {
			return 0, fmt.Errorf("program %d has no active attribute %q", p, name)
		}
		locs[i] = uint32(loc)
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	for i, loc := range locs {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, format.Components[i], gl.FLOAT, false, format.Stride(), uintptr(format.Offset(i)))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return graphics.VertexArray(vao), nil
}

func (c *Context) NewTexture(px graphics.Pixels, anisotropy float32) (graphics.Texture, error) {
	if px.Width <= 0 || px.Height <= 0 || len(px.RGB) != px.Width*px.Height*3 {
		return 0, fmt.Errorf("bad pixel data %dx%d with %d bytes", px.Width, px.Height, len(px.RGB))
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	// RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGB8,
		int32(px.Width),
		int32(px.Height),
		0,
		gl.RGB,
		gl.UNSIGNED_BYTE,
		gl.Ptr(px.RGB),
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	if c.anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, min(anisotropy, c.anisotropy))
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return graphics.Texture(texture), nil
}

func (c *Context) UseProgram(p graphics.Program) {
	gl.UseProgram(uint32(p))
}

func (c *Context) location(p graphics.Program, name string) int32 {
	cache, ok := c.locations[p]
	if !ok {
		cache = make(map[string]int32)
		c.locations[p] = cache
	}
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	cache[name] = loc
	return loc
}

func (c *Context) HasUniform(p graphics.Program, name string) bool {
	return c.location(p, name) >= 0
}

// The uniform setters assume p is the program in use; GL ignores location -1.

func (c *Context) SetMat4(p graphics.Program, name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(c.location(p, name), 1, false, &m[0])
}

func (c *Context) SetVec3(p graphics.Program, name string, v mgl32.Vec3) {
	gl.Uniform3f(c.location(p, name), v[0], v[1], v[2])
}

func (c *Context) SetInt(p graphics.Program, name string, v int32) {
	gl.Uniform1i(c.location(p, name), v)
}

func (c *Context) BindTexture(unit uint32, t graphics.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (c *Context) Draw(va graphics.VertexArray, vertexCount int32) {
	gl.BindVertexArray(uint32(va))
	gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)
}

func (c *Context) Clear(color mgl32.Vec3) {
	gl.ClearColor(color[0], color[1], color[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *Context) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (c *Context) ReleaseVertexArray(va graphics.VertexArray) {
	id := uint32(va)
	gl.DeleteVertexArrays(1, &id)
}

func (c *Context) ReleaseBuffer(b graphics.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (c *Context) ReleaseProgram(p graphics.Program) {
	delete(c.locations, p)
	gl.DeleteProgram(uint32(p))
}

func (c *Context) ReleaseTexture(t graphics.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func compileProgram(name, vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, &graphics.CompileLinkError{Program: name, Stage: "vertex", Log: err.Error()}
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, &graphics.CompileLinkError{Program: name, Stage: "fragment", Log: err.Error()}
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// shaders can be deleted after linking
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, &graphics.CompileLinkError{Program: name, Stage: "link", Log: strings.TrimRight(log, "\x00")}
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
