package input

import (
	"room-viewer/math"
	"room-viewer/scene"
)

// Bounds constrains the camera position after each frame's movement.
type Bounds interface {
	Apply(pos math.Vec3) math.Vec3
}

// RoomBounds keeps a walking viewer inside a room centred on the origin:
// X and Z stay Margin away from the walls and Y is pinned to eye level.
type RoomBounds struct {
	Width     float32
	Depth     float32
	Margin    float32
	GroundY   float32
	EyeHeight float32
}

// NewRoomBounds derives the walking bounds for a described room.
func NewRoomBounds(r scene.RoomDescription) *RoomBounds {
	return &RoomBounds{
		Width:     r.Width,
		Depth:     r.Depth,
		Margin:    r.Margin,
		EyeHeight: r.EyeHeight,
	}
}

func (b *RoomBounds) Apply(pos math.Vec3) math.Vec3 {
	halfW := b.Width/2 - b.Margin
	halfD := b.Depth/2 - b.Margin
	return math.Vec3{
		X: math.Clamp(pos.X, -halfW, halfW),
		Y: b.GroundY + b.EyeHeight,
		Z: math.Clamp(pos.Z, -halfD, halfD),
	}
}
