package camera

import (
	"math"

	"cubescene/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch bounds the pitch angle in degrees so the look-at basis never
// flips. Pitch stays strictly inside (-MaxPitch, MaxPitch).
const MaxPitch = 89.0

// pitchLimit is the largest pitch magnitude the camera takes.
var pitchLimit = math.Nextafter(MaxPitch, 0)

// WorldUp is the fixed vertical axis used for the view matrix.
var WorldUp = mgl32.Vec3{0, 1, 0}

// InputState is the per-frame input consumed by Update.
type InputState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool

	// Cursor movement since the previous frame, in pixels.
	MouseDX float64
	MouseDY float64
}

// Camera is a free-fly perspective camera driven by yaw and pitch.
type Camera struct {
	Position mgl32.Vec3

	// Yaw and Pitch are in degrees. Yaw 0 looks down +X, -90 down -Z.
	Yaw   float64
	Pitch float64

	// Speed is in world units per second, Sensitivity in degrees per pixel.
	Speed       float32
	Sensitivity float64

	forward mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3

	fov    float32 // degrees
	aspect float32
	near   float32
	far    float32

	proj       mgl32.Mat4
	projFOV    float32
	projAspect float32
	projValid  bool
	recomputes int
}

// Option configures a Camera at construction.
type Option func(*Camera)

// WithFOV sets the vertical field of view in degrees.
func WithFOV(deg float32) Option {
	return func(c *Camera) { c.fov = deg }
}

// WithClip sets the near and far clip distances.
func WithClip(near, far float32) Option {
	return func(c *Camera) {
		c.near = near
		c.far = far
	}
}

// WithSpeed sets the movement speed in units per second.
func WithSpeed(speed float32) Option {
	return func(c *Camera) { c.Speed = speed }
}

// WithSensitivity sets the mouse sensitivity in degrees per pixel.
func WithSensitivity(s float64) Option {
	return func(c *Camera) { c.Sensitivity = s }
}

// WithAngles sets the initial yaw and pitch in degrees.
func WithAngles(yaw, pitch float64) Option {
	return func(c *Camera) {
		c.Yaw = yaw
		c.Pitch = pitch
	}
}

// New creates a camera at position for a viewport of width x height pixels.
func New(position mgl32.Vec3, width, height int, opts ...Option) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         -90,
		Speed:       5.0,
		Sensitivity: 0.1,
		fov:         50.0,
		aspect:      1.0,
		near:        0.1,
		far:         100.0,
	}
	if height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Pitch = mathutil.Clamp(c.Pitch, -pitchLimit, pitchLimit)
	c.updateVectors()
	return c
}

// Update applies one frame of mouse look and movement. dt is in seconds.
func (c *Camera) Update(in InputState, dt float64) {
	c.Rotate(in.MouseDX, in.MouseDY)
	c.move(in, dt)
}

// Rotate turns the camera by a cursor delta. Screen y grows downwards, so a
// positive dy pitches the camera down.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw = mathutil.WrapDegrees(c.Yaw + dx*c.Sensitivity)
	c.Pitch = mathutil.Clamp(c.Pitch-dy*c.Sensitivity, -pitchLimit, pitchLimit)
	c.updateVectors()
}

func (c *Camera) move(in InputState, dt float64) {
	step := c.Speed * float32(dt)
	if in.Forward {
		c.Position = c.Position.Add(c.forward.Mul(step))
	}
	if in.Backward {
		c.Position = c.Position.Sub(c.forward.Mul(step))
	}
	if in.Right {
		c.Position = c.Position.Add(c.right.Mul(step))
	}
	if in.Left {
		c.Position = c.Position.Sub(c.right.Mul(step))
	}
	if in.Up {
		c.Position = c.Position.Add(c.up.Mul(step))
	}
	if in.Down {
		c.Position = c.Position.Sub(c.up.Mul(step))
	}
}

// updateVectors rebuilds the orthonormal basis from yaw and pitch.
func (c *Camera) updateVectors() {
	yaw := float64(mgl32.DegToRad(float32(c.Yaw)))
	pitch := float64(mgl32.DegToRad(float32(c.Pitch)))

	c.forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.forward.Cross(WorldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

// ViewMatrix returns the right-handed world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.forward), WorldUp)
}

// ProjectionMatrix returns the perspective projection. It is rebuilt only
// when the field of view or aspect ratio changed since the previous call.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.projValid && c.projFOV == c.fov && c.projAspect == c.aspect {
		return c.proj
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.projFOV = c.fov
	c.projAspect = c.aspect
	c.projValid = true
	c.recomputes++
	return c.proj
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(deg float32) {
	c.fov = deg
}

// SetAspect sets the viewport aspect ratio (width / height).
func (c *Camera) SetAspect(aspect float32) {
	c.aspect = aspect
}

// SetViewport derives the aspect ratio from a framebuffer size. A zero
// height (minimised window) is ignored.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

func (c *Camera) Forward() mgl32.Vec3 { return c.forward }
func (c *Camera) Right() mgl32.Vec3   { return c.right }
func (c *Camera) Up() mgl32.Vec3      { return c.up }
func (c *Camera) FOV() float32        { return c.fov }
func (c *Camera) Aspect() float32     { return c.aspect }
func (c *Camera) Near() float32       { return c.near }
func (c *Camera) Far() float32        { return c.far }

// Recomputations returns how many times the projection matrix was rebuilt.
func (c *Camera) Recomputations() int {
	return c.recomputes
}
