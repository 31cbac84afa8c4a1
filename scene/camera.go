package scene

import (
	reMath "room-viewer/math"
)

const (
	DefaultMovementSpeed    = 5.0 // world units per second
	DefaultMouseSensitivity = 0.1 // degrees per pointer unit

	// MaxPitch bounds the pitch when ProcessLook is asked to constrain it.
	// Looking straight up or down would make Front parallel to WorldUp.
	MaxPitch = 89.0
)

// Movement is a discrete movement direction relative to the camera.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Camera is a first-person camera driven by yaw and pitch in degrees.
//
// Front, Right and Up are derived from Yaw, Pitch and WorldUp and are
// recomputed whenever an angle changes through ProcessLook or SetOrientation.
// They are undefined if Front ends up parallel to WorldUp.
//
// A Camera is not safe for concurrent use.
type Camera struct {
	Position reMath.Vec3
	Front    reMath.Vec3
	Up       reMath.Vec3
	Right    reMath.Vec3
	WorldUp  reMath.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
}

// NewCamera places a camera at position. A yaw of -90 looks down -Z.
func NewCamera(position, worldUp reMath.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          worldUp,
		Yaw:              yaw,
		Pitch:            pitch,
		MovementSpeed:    DefaultMovementSpeed,
		MouseSensitivity: DefaultMouseSensitivity,
	}
	c.updateVectors()
	return c
}

// ProcessMovement moves the camera by MovementSpeed*deltaTime along the
// basis vector for direction. Up and Down follow WorldUp rather than the
// camera's own Up. deltaTime is expected to be non-negative.
func (c *Camera) ProcessMovement(direction Movement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

// ProcessLook turns the camera by pointer offsets. A positive xOffset turns
// right and a positive yOffset looks up.
func (c *Camera) ProcessLook(xOffset, yOffset float32, constrainPitch bool) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch += yOffset * c.MouseSensitivity

	if constrainPitch {
		c.Pitch = reMath.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// SetOrientation replaces yaw and pitch directly.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.updateVectors()
}

// Target is the point one unit in front of the camera.
func (c *Camera) Target() reMath.Vec3 {
	return c.Position.Add(c.Front)
}

// GetViewMatrix returns the look-at transform from Position towards Target.
func (c *Camera) GetViewMatrix() reMath.Mat4 {
	return reMath.Mat4LookAt(c.Position, c.Target(), c.Up)
}

func (c *Camera) updateVectors() {
	yaw := reMath.Radians(c.Yaw)
	pitch := reMath.Radians(c.Pitch)

	front := reMath.Vec3{
		X: reMath.Cos(yaw) * reMath.Cos(pitch),
		Y: reMath.Sin(pitch),
		Z: reMath.Sin(yaw) * reMath.Cos(pitch),
	}
	c.Front = front.Normalize()
	// front x worldUp, then right x front, keeps the basis right-handed
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
