package scene

import (
	stdmath "math"

	"room-viewer/core"
	"room-viewer/math"
)

// CreateSphere generates a UV sphere centred on the origin.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi, cosPhi := float32(stdmath.Sin(phi)), float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * stdmath.Pi / float64(segments)
			sinTheta, cosTheta := float32(stdmath.Sin(theta)), float32(stdmath.Cos(theta))

			normal := math.NewVec3(sinPhi*cosTheta, cosPhi, sinPhi*sinTheta)
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				Color:    core.ColorWhite,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// CreateCylinder generates a capped cylinder standing on the Y axis, centred
// on the origin.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	half := height / 2

	circle := func(i int) (float32, float32) {
		theta := float64(i) * 2 * stdmath.Pi / float64(segments)
		return float32(stdmath.Cos(theta)), float32(stdmath.Sin(theta))
	}

	// side: a bottom/top pair per segment edge, normals pointing outwards
	for i := 0; i <= segments; i++ {
		c, s := circle(i)
		normal := math.NewVec3(c, 0, s)
		vertices = append(vertices,
			core.Vertex{Position: math.NewVec3(c*radius, -half, s*radius), Normal: normal, Color: core.ColorWhite},
			core.Vertex{Position: math.NewVec3(c*radius, half, s*radius), Normal: normal, Color: core.ColorWhite},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	// caps: a centre vertex fanned out to its own ring so the normals stay flat
	addCap := func(y float32, normal math.Vec3) {
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{Position: math.NewVec3(0, y, 0), Normal: normal, Color: core.ColorWhite})
		for i := 0; i <= segments; i++ {
			c, s := circle(i)
			vertices = append(vertices, core.Vertex{
				Position: math.NewVec3(c*radius, y, s*radius),
				Normal:   normal,
				Color:    core.ColorWhite,
			})
		}
		for i := uint32(0); i < uint32(segments); i++ {
			a, b := center+1+i, center+2+i
			if normal.Y > 0 {
				a, b = b, a
			}
			indices = append(indices, center, a, b)
		}
	}
	addCap(half, math.Vec3Up)
	addCap(-half, math.Vec3Down)

	return CreateMeshFromData("Cylinder", vertices, indices)
}

// CreatePyramid generates a square-based pyramid centred on the origin, base
// down. Each face gets its own vertices so shading stays flat.
func CreatePyramid(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	v := math.NewVec3
	base := [4]math.Vec3{v(-hw, -hh, -hw), v(hw, -hh, -hw), v(hw, -hh, hw), v(-hw, -hh, hw)}
	tip := v(0, hh, 0)

	vertices := make([]core.Vertex, 0, 16)
	indices := make([]uint32, 0, 18)

	for _, p := range base {
		vertices = append(vertices, core.Vertex{Position: p, Normal: math.Vec3Down, Color: core.ColorWhite})
	}
	indices = append(indices, 0, 1, 2, 0, 2, 3)

	for i := range base {
		a, b := base[i], base[(i+1)%4]
		normal := b.Sub(a).Cross(tip.Sub(a)).Normalize()
		// face centroid lies on the outward side of the origin
		if normal.Dot(a.Add(b).Add(tip)) < 0 {
			normal = normal.Negate()
		}
		first := uint32(len(vertices))
		vertices = append(vertices,
			core.Vertex{Position: a, Normal: normal, Color: core.ColorWhite},
			core.Vertex{Position: b, Normal: normal, Color: core.ColorWhite},
			core.Vertex{Position: tip, Normal: normal, Color: core.ColorWhite},
		)
		indices = append(indices, first, first+2, first+1)
	}

	return CreateMeshFromData("Pyramid", vertices, indices)
}
