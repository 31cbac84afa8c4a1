package core

import (
	"room-viewer/math"
)

type Color struct {
	R, G, B, A float32
}

var ColorWhite = Color{1, 1, 1, 1}

// NewColor builds an opaque colour from 0-255 components.
func NewColor(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

// Vertex is the interleaved GPU vertex layout shared by every mesh.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    Color
}

// Transform places an object in the world. Rotation holds Euler angles in
// degrees.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.Vec3Zero,
		Scale:    math.Vec3One,
	}
}

func (t Transform) GetMatrix() math.Mat4 {
	rad := math.Vec3{
		X: math.Radians(t.Rotation.X),
		Y: math.Radians(t.Rotation.Y),
		Z: math.Radians(t.Rotation.Z),
	}
	return math.Mat4TRS(t.Position, rad, t.Scale)
}
