package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MoveInput is one frame of fly-camera input. Each axis is -1, 0 or 1.
type MoveInput struct {
	Strafe  float32 // +1 right (D), -1 left (A)
	Forward float32 // +1 forward (W), -1 back (S)
	Lift    float32 // +1 up (Space), -1 down (Shift)
}

// FlyCamera is a free-flying first person camera. Yaw and pitch are in degrees;
// yaw 0 looks down +X.
type FlyCamera struct {
	Position    mgl32.Vec3
	Yaw         float64
	Pitch       float64
	Speed       float32 // world units per second
	Sensitivity float64 // degrees per pixel of mouse motion

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	lastX, lastY float64
	firstMouse   bool
}

// NewFlyCamera places a camera at pos looking at target.
func NewFlyCamera(width, height int, pos, target mgl32.Vec3) *FlyCamera {
	c := &FlyCamera{
		Position:    pos,
		Speed:       10,
		Sensitivity: 0.1,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		firstMouse:  true,
	}
	c.LookAt(target)
	return c
}

// LookAt points the camera at target.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = float64(mgl32.RadToDeg(float32(math.Atan2(float64(d.Z()), float64(d.X())))))
	c.Pitch = float64(mgl32.RadToDeg(float32(math.Asin(float64(d.Y())))))
	c.clampPitch()
}

// HandleMouse turns the camera by the cursor motion since the last call.
func (c *FlyCamera) HandleMouse(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	xoffset := (xpos - c.lastX) * c.Sensitivity
	yoffset := (c.lastY - ypos) * c.Sensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw = math.Mod(c.Yaw+xoffset, 360)
	c.Pitch += yoffset
	c.clampPitch()
}

// ResetMouse makes the next HandleMouse call only record the cursor.
func (c *FlyCamera) ResetMouse() { c.firstMouse = true }

func (c *FlyCamera) clampPitch() {
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(c.Yaw)))
	p := float64(mgl32.DegToRad(float32(c.Pitch)))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Move walks on the XZ plane along the view heading, lifts along world Y,
// and normalises the combined direction so diagonals are not faster.
func (c *FlyCamera) Move(in MoveInput, dt float32) {
	f := c.Front()
	walk := mgl32.Vec3{f.X(), 0, f.Z()}
	if walk.Len() == 0 {
		return
	}
	walk = walk.Normalize()
	right := walk.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	dir := right.Mul(in.Strafe).Add(walk.Mul(in.Forward)).Add(mgl32.Vec3{0, in.Lift, 0})
	if dir.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(c.Speed * dt))
}

// SetViewport updates the aspect ratio after a resize.
func (c *FlyCamera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *FlyCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}
