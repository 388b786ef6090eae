package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	nearView = float32(0.05)
	farView  = float32(300.0)
	fovyRads = mgl32.DegToRad(60.0)
)

const (
	rotateSpeed = 0.008
	dollyFactor = 0.9
	maxPitch    = math32.Pi/2 - 0.01
)

// OrbitCamera orbits a target point at a given distance, driven by mouse
// drags and the scroll wheel. The viewer normalizes models to unit radius,
// so the default distance frames anything.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32

	homeDistance float32
	homeYaw      float32
	homePitch    float32
}

// NewOrbitCamera returns a camera at the given distance with a slight
// three-quarter starting angle.
func NewOrbitCamera(distance float32) *OrbitCamera {
	c := &OrbitCamera{
		Distance:     distance,
		Yaw:          0.6,
		Pitch:        0.35,
		homeDistance: distance,
		homeYaw:      0.6,
		homePitch:    0.35,
	}
	return c
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	offset := mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the world-to-camera transform.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(fovyRads, aspect, nearView, farView)
}

// Rotate applies a mouse drag, in pixels, to the orbit angles. Pitch is
// clamped short of the poles to keep the up vector valid.
func (c *OrbitCamera) Rotate(dx, dy float32) {
	c.Yaw -= dx * rotateSpeed
	c.Pitch += dy * rotateSpeed
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Dolly moves the camera along the view ray. Positive steps move closer.
func (c *OrbitCamera) Dolly(steps float32) {
	c.Distance *= math32.Pow(dollyFactor, steps)
	if c.Distance < nearView*2 {
		c.Distance = nearView * 2
	}
	if c.Distance > farView*0.5 {
		c.Distance = farView * 0.5
	}
}

// Reset restores the starting view.
func (c *OrbitCamera) Reset() {
	c.Distance = c.homeDistance
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
}
