// Package graphicstest provides a graphics.Context that records calls instead
// of talking to a GPU.
package graphicstest

import (
	"fmt"
	"strings"

	"cubescene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded operation, e.g. {Op: "draw", Handle: 3}.
type Call struct {
	Op     string
	Handle uint32
	Name   string
}

// DrawCall captures the state a draw was issued with.
type DrawCall struct {
	VertexArray graphics.VertexArray
	Program     graphics.Program
	Count       int32
	Model       mgl32.Mat4
	View        mgl32.Mat4
	Proj        mgl32.Mat4
	Texture     graphics.Texture
}

// Recorder implements graphics.Context in memory.
type Recorder struct {
	Calls []Call
	Draws []DrawCall

	// Buffers, programs and textures by handle, as uploaded.
	BufferData map[graphics.Buffer][]float32
	Programs   map[graphics.Program]string
	Textures   map[graphics.Texture]graphics.Pixels

	// Uniforms declared by every program unless overridden in ProgramUniforms.
	DefaultUniforms []string
	// ProgramUniforms lists the uniforms a program name declares.
	ProgramUniforms map[string][]string
	// FailCompile makes NewProgram fail for the named programs.
	FailCompile map[string]bool

	// Released counts release calls per "<kind>:<handle>".
	Released map[string]int

	Clears         int
	// UniformQueries counts HasUniform calls.
	UniformQueries int

	next      uint32
	current   graphics.Program
	bound     map[uint32]graphics.Texture
	uniforms  map[graphics.Program]map[string]any
	vaProgram map[graphics.VertexArray]graphics.Program
	live      map[string]bool
}

var _ graphics.Context = (*Recorder)(nil)

// NewRecorder returns a recorder whose programs declare the standard object
// uniforms.
func NewRecorder() *Recorder {
	return &Recorder{
		BufferData:      make(map[graphics.Buffer][]float32),
		Programs:        make(map[graphics.Program]string),
		Textures:        make(map[graphics.Texture]graphics.Pixels),
		DefaultUniforms: []string{"m_proj", "m_view", "m_model", "u_texture_0"},
		ProgramUniforms: make(map[string][]string),
		FailCompile:     make(map[string]bool),
		Released:        make(map[string]int),
		bound:           make(map[uint32]graphics.Texture),
		uniforms:        make(map[graphics.Program]map[string]any),
		vaProgram:       make(map[graphics.VertexArray]graphics.Program),
		live:            make(map[string]bool),
	}
}

func (r *Recorder) handle(kind string) uint32 {
	r.next++
	r.live[fmt.Sprintf("%s:%d", kind, r.next)] = true
	return r.next
}

func (r *Recorder) record(op string, h uint32, name string) {
	r.Calls = append(r.Calls, Call{Op: op, Handle: h, Name: name})
}

func (r *Recorder) NewBuffer(data []float32) (graphics.Buffer, error) {
	b := graphics.Buffer(r.handle("buffer"))
	r.BufferData[b] = append([]float32(nil), data...)
	r.record("new-buffer", uint32(b), "")
	return b, nil
}

func (r *Recorder) NewProgram(name string, src graphics.ShaderSource) (graphics.Program, error) {
	if r.FailCompile[name] {
		return 0, &graphics.CompileLinkError{Program: name, Stage: "vertex", Log: "0:1(1): error: syntax error"}
	}
	p := graphics.Program(r.handle("program"))
	r.Programs[p] = name
	r.uniforms[p] = make(map[string]any)
	r.record("new-program", uint32(p), name)
	return p, nil
}

func (r *Recorder) NewVertexArray(p graphics.Program, b graphics.Buffer, format graphics.VertexFormat, attrs []string) (graphics.VertexArray, error) {
	if len(attrs) != len(format.Components) {
		return 0, fmt.Errorf("format %q does not match attributes %v", format, attrs)
	}
	if _, ok := r.BufferData[b]; !ok {
		return 0, fmt.Errorf("unknown buffer %d", b)
	}
	va := graphics.VertexArray(r.handle("vertex-array"))
	r.vaProgram[va] = p
	r.record("new-vertex-array", uint32(va), strings.Join(attrs, ","))
	return va, nil
}

func (r *Recorder) NewTexture(px graphics.Pixels, anisotropy float32) (graphics.Texture, error) {
	t := graphics.Texture(r.handle("texture"))
	r.Textures[t] = px
	r.record("new-texture", uint32(t), "")
	return t, nil
}

func (r *Recorder) UseProgram(p graphics.Program) {
	r.current = p
	r.record("use-program", uint32(p), "")
}

func (r *Recorder) HasUniform(p graphics.Program, name string) bool {
	r.UniformQueries++
	declared, ok := r.ProgramUniforms[r.Programs[p]]
	if !ok {
		declared = r.DefaultUniforms
	}
	for _, u := range declared {
		if u == name {
			return true
		}
	}
	return false
}

func (r *Recorder) setUniform(p graphics.Program, name string, v any) {
	if r.uniforms[p] == nil {
		r.uniforms[p] = make(map[string]any)
	}
	r.uniforms[p][name] = v
	r.record("uniform", uint32(p), name)
}

func (r *Recorder) SetMat4(p graphics.Program, name string, m mgl32.Mat4) { r.setUniform(p, name, m) }
func (r *Recorder) SetVec3(p graphics.Program, name string, v mgl32.Vec3) { r.setUniform(p, name, v) }
func (r *Recorder) SetInt(p graphics.Program, name string, v int32)       { r.setUniform(p, name, v) }

// Uniform returns the last value set for a program uniform.
func (r *Recorder) Uniform(p graphics.Program, name string) (any, bool) {
	v, ok := r.uniforms[p][name]
	return v, ok
}

func (r *Recorder) BindTexture(unit uint32, t graphics.Texture) {
	r.bound[unit] = t
	r.record("bind-texture", uint32(t), "")
}

func (r *Recorder) Draw(va graphics.VertexArray, count int32) {
	p := r.current
	mat := func(name string) mgl32.Mat4 {
		m, _ := r.uniforms[p][name].(mgl32.Mat4)
		return m
	}
	r.Draws = append(r.Draws, DrawCall{
		VertexArray: va,
		Program:     p,
		Count:       count,
		Model:       mat("m_model"),
		View:        mat("m_view"),
		Proj:        mat("m_proj"),
		Texture:     r.bound[0],
	})
	r.record("draw", uint32(va), "")
}

func (r *Recorder) Clear(color mgl32.Vec3) {
	r.Clears++
	r.record("clear", 0, "")
}

func (r *Recorder) Viewport(width, height int) {
	r.record("viewport", 0, fmt.Sprintf("%dx%d", width, height))
}

func (r *Recorder) release(kind string, h uint32) {
	key := fmt.Sprintf("%s:%d", kind, h)
	r.Released[key]++
	delete(r.live, key)
	r.record("release-"+kind, h, "")
}

func (r *Recorder) ReleaseVertexArray(va graphics.VertexArray) { r.release("vertex-array", uint32(va)) }
func (r *Recorder) ReleaseBuffer(b graphics.Buffer)            { r.release("buffer", uint32(b)) }
func (r *Recorder) ReleaseProgram(p graphics.Program)          { r.release("program", uint32(p)) }
func (r *Recorder) ReleaseTexture(t graphics.Texture)          { r.release("texture", uint32(t)) }

// Live lists handles that were created and not yet released.
func (r *Recorder) Live() []string {
	out := make([]string, 0, len(r.live))
	for k := range r.live {
		out = append(out, k)
	}
	return out
}

// DoubleReleases lists handles released more than once.
func (r *Recorder) DoubleReleases() []string {
	var out []string
	for k, n := range r.Released {
		if n > 1 {
			out = append(out, k)
		}
	}
	return out
}

// Ops returns the recorded operation names in order, optionally filtered to
// those starting with prefix.
func (r *Recorder) Ops(prefix string) []string {
	var out []string
	for _, c := range r.Calls {
		if strings.HasPrefix(c.Op, prefix) {
			out = append(out, c.Op)
		}
	}
	return out
}

// ResetFrame drops recorded calls and draws but keeps GPU state.
func (r *Recorder) ResetFrame() {
	r.Calls = nil
	r.Draws = nil
	r.Clears = 0
}
