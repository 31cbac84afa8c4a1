package scene

import (
	"fmt"
	stdmath "math"

	"github.com/ErikKalkoken/go-set"

	"room-viewer/core"
	"room-viewer/math"
)

// Node is a mesh placed in the world.
type Node struct {
	Name      string
	Mesh      *Mesh
	Transform core.Transform
	Tint      core.Color

	// Spin rotates the node about Y, in degrees per second.
	Spin float32
}

func (n *Node) GetWorldMatrix() math.Mat4 {
	return n.Transform.GetMatrix()
}

// Scene is everything the frame loop needs to draw one frame.
type Scene struct {
	Nodes      []*Node
	Camera     *Camera
	Room       *RoomDescription
	ClearColor core.Color
	LightPos   math.Vec3

	FOV  float32 // degrees
	Near float32
	Far  float32
}

// Build turns a description into a scene. Meshes are shared between nodes of
// the same shape so the renderer uploads each shape once.
func Build(d Description) (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	// Validate has checked every vector and colour below.
	pos, _ := toVec3("camera.position", d.Camera.Position)
	up, _ := toVec3("camera.world_up", d.Camera.WorldUp)
	clearColor, _ := toColor("clear_color", d.ClearColor)
	light, _ := toVec3("light", d.Light)

	var yaw float32
	if d.Camera.Yaw != nil {
		yaw = *d.Camera.Yaw
	}
	cam := NewCamera(pos, up, yaw, d.Camera.Pitch)
	if d.Camera.MovementSpeed > 0 {
		cam.MovementSpeed = d.Camera.MovementSpeed
	}
	if d.Camera.MouseSensitivity > 0 {
		cam.MouseSensitivity = d.Camera.MouseSensitivity
	}

	s := &Scene{
		Camera:     cam,
		Room:       d.Room,
		ClearColor: clearColor,
		LightPos:   light,
		FOV:        d.Projection.FOV,
		Near:       d.Projection.Near,
		Far:        d.Projection.Far,
	}

	meshes := make(map[Shape]*Mesh)
	meshFor := func(shape Shape) (*Mesh, error) {
		if m, ok := meshes[shape]; ok {
			return m, nil
		}
		m, err := newShapeMesh(shape)
		if err != nil {
			return nil, err
		}
		meshes[shape] = m
		return m, nil
	}

	if d.Room != nil {
		plane, _ := meshFor(ShapePlane)
		s.Nodes = append(s.Nodes, roomNodes(*d.Room, plane)...)
	}

	for _, o := range d.Objects {
		mesh, err := meshFor(o.Shape)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", o.Name, err)
		}
		tint, _ := toColor(o.Name, o.Color)
		t := core.NewTransform()
		t.Position, _ = toVec3(o.Name, o.Position)
		t.Rotation, _ = toVec3(o.Name, o.Rotation)
		t.Scale, _ = toVec3(o.Name, o.Scale)
		s.Nodes = append(s.Nodes, &Node{
			Name:      o.Name,
			Mesh:      mesh,
			Transform: t,
			Tint:      tint,
			Spin:      o.Spin,
		})
	}
	return s, nil
}

// newShapeMesh builds the unit-sized mesh for a built-in shape. Objects size
// it through their scale.
func newShapeMesh(shape Shape) (*Mesh, error) {
	switch shape {
	case ShapeCube:
		return CreateCube(1), nil
	case ShapePlane:
		return CreatePlane(1, 1, 1), nil
	case ShapeSphere:
		return CreateSphere(0.5, 32, 16), nil
	case ShapeCylinder:
		return CreateCylinder(0.5, 1, 32), nil
	case ShapePyramid:
		return CreatePyramid(1, 1), nil
	}
	return nil, fmt.Errorf("%q: %w", shape, ErrInvalidShape)
}

// roomNodes lays out the floor and four walls of a room. Walls are the unit
// plane stood on edge and flattened to a thin slab.
func roomNodes(r RoomDescription, plane *Mesh) []*Node {
	floorTint, _ := toColor("room.floor_color", r.FloorColor)
	wallTint, _ := toColor("room.wall_color", r.WallColor)
	halfW, halfD, halfH := r.Width/2, r.Depth/2, r.Height/2
	const thickness = 0.01

	node := func(name string, tint core.Color, pos, rot, scale math.Vec3) *Node {
		return &Node{
			Name:      name,
			Mesh:      plane,
			Tint:      tint,
			Transform: core.Transform{Position: pos, Rotation: rot, Scale: scale},
		}
	}
	return []*Node{
		node("floor", floorTint, math.Vec3Zero, math.Vec3Zero, math.NewVec3(r.Width, 1, r.Depth)),
		node("wall-left", wallTint,
			math.NewVec3(-halfW, halfH, 0), math.NewVec3(0, 0, 90), math.NewVec3(r.Height, thickness, r.Depth)),
		node("wall-right", wallTint,
			math.NewVec3(halfW, halfH, 0), math.NewVec3(0, 0, -90), math.NewVec3(r.Height, thickness, r.Depth)),
		node("wall-back", wallTint,
			math.NewVec3(0, halfH, -halfD), math.NewVec3(90, 0, 0), math.NewVec3(r.Width, thickness, r.Height)),
		node("wall-front", wallTint,
			math.NewVec3(0, halfH, halfD), math.NewVec3(-90, 0, 0), math.NewVec3(r.Width, thickness, r.Height)),
	}
}

// Update advances per-node animation by deltaTime seconds.
func (s *Scene) Update(deltaTime float32) {
	for _, n := range s.Nodes {
		if n.Spin == 0 {
			continue
		}
		y := stdmath.Mod(float64(n.Transform.Rotation.Y)+float64(n.Spin)*float64(deltaTime), 360)
		if stdmath.IsNaN(y) {
			continue
		}
		if y < 0 {
			y += 360
		}
		r := float32(y)
		if r >= 360 {
			r = 0
		}
		n.Transform.Rotation.Y = r
	}
}

// Find returns the first node called name, or nil.
func (s *Scene) Find(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// GetProjectionMatrix returns the perspective projection for the given
// framebuffer aspect ratio.
func (s *Scene) GetProjectionMatrix(aspect float32) math.Mat4 {
	return math.Mat4Perspective(math.Radians(s.FOV), aspect, s.Near, s.Far)
}

// Meshes returns each distinct mesh used by the scene once.
func (s *Scene) Meshes() []*Mesh {
	var seen set.Set[*Mesh]
	var out []*Mesh
	for _, n := range s.Nodes {
		if n.Mesh == nil || seen.Contains(n.Mesh) {
			continue
		}
		seen.Add(n.Mesh)
		out = append(out, n.Mesh)
	}
	return out
}
