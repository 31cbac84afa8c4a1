package scene

import (
	"room-viewer/core"
	"room-viewer/math"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData any
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// Bounds returns the local-space extent of the mesh.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.Vertices) == 0 {
		return math.Vec3Zero, math.Vec3Zero
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		p := v.Position
		lo.X, hi.X = minMax(lo.X, hi.X, p.X)
		lo.Y, hi.Y = minMax(lo.Y, hi.Y, p.Y)
		lo.Z, hi.Z = minMax(lo.Z, hi.Z, p.Z)
	}
	return lo, hi
}

func minMax(lo, hi, v float32) (float32, float32) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// CreateCube builds an axis-aligned cube centred on the origin with one
// flat-shaded quad per face.
func CreateCube(size float32) *Mesh {
	s := size / 2
	v := math.NewVec3

	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3Front, [4]math.Vec3{v(-s, -s, s), v(s, -s, s), v(s, s, s), v(-s, s, s)}},
		{math.Vec3Back, [4]math.Vec3{v(s, -s, -s), v(-s, -s, -s), v(-s, s, -s), v(s, s, -s)}},
		{math.Vec3Up, [4]math.Vec3{v(-s, s, s), v(s, s, s), v(s, s, -s), v(-s, s, -s)}},
		{math.Vec3Down, [4]math.Vec3{v(-s, -s, -s), v(s, -s, -s), v(s, -s, s), v(-s, -s, s)}},
		{math.Vec3Right, [4]math.Vec3{v(s, -s, s), v(s, -s, -s), v(s, s, -s), v(s, s, s)}},
		{math.Vec3Left, [4]math.Vec3{v(-s, -s, -s), v(-s, -s, s), v(-s, s, s), v(-s, s, -s)}},
	}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range f.corners {
			vertices = append(vertices, core.Vertex{Position: c, Normal: f.normal, Color: core.ColorWhite})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cube", vertices, indices)
}

// CreatePlane generates a flat plane in XZ facing +Y.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	halfW := width / 2.0
	halfD := depth / 2.0

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{
					X: -halfW + u*width,
					Y: 0,
					Z: -halfD + v*depth,
				},
				Normal: math.Vec3Up,
				Color:  core.ColorWhite,
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return CreateMeshFromData("Plane", vertices, indices)
}
