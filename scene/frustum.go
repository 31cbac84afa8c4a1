package scene

import "room-viewer/math"

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane. Positive is
// inside.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view volume: left, right, bottom,
// top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the clip planes from a combined view-projection matrix
// (view.Mul(proj)). Planes are normalised so DistanceTo is in world units.
func NewFrustum(vp math.Mat4) Frustum {
	// Gribb/Hartmann works on rows of the column-vector matrix; with m[col][row]
	// storage row i is vp[0..3][i].
	row := func(i int) math.Vec4 {
		return math.NewVec4(vp[0][i], vp[1][i], vp[2][i], vp[3][i])
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(math.NewVec4(r3.X+r0.X, r3.Y+r0.Y, r3.Z+r0.Z, r3.W+r0.W))
	f.Planes[1] = normalizePlane(math.NewVec4(r3.X-r0.X, r3.Y-r0.Y, r3.Z-r0.Z, r3.W-r0.W))
	f.Planes[2] = normalizePlane(math.NewVec4(r3.X+r1.X, r3.Y+r1.Y, r3.Z+r1.Z, r3.W+r1.W))
	f.Planes[3] = normalizePlane(math.NewVec4(r3.X-r1.X, r3.Y-r1.Y, r3.Z-r1.Z, r3.W-r1.W))
	f.Planes[4] = normalizePlane(math.NewVec4(r3.X+r2.X, r3.Y+r2.Y, r3.Z+r2.Z, r3.W+r2.W))
	f.Planes[5] = normalizePlane(math.NewVec4(r3.X-r2.X, r3.Y-r2.Y, r3.Z-r2.Z, r3.W-r2.W))
	return f
}

func normalizePlane(p math.Vec4) Plane {
	n := p.ToVec3()
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.NewVec3(n.X/l, n.Y/l, n.Z/l), D: p.W / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// IntersectsFrustum reports false only when the box lies entirely outside one
// of the planes. For each plane it tests the corner furthest along the normal.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		pv := box.Max
		if p.Normal.X < 0 {
			pv.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			pv.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			pv.Z = box.Min.Z
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the world-space box enclosing the eight corners of box
// after m.
func (box AABB) Transform(m math.Mat4) AABB {
	mn, mx := box.Min, box.Max
	corners := [8]math.Vec3{
		math.NewVec3(mn.X, mn.Y, mn.Z),
		math.NewVec3(mx.X, mn.Y, mn.Z),
		math.NewVec3(mn.X, mx.Y, mn.Z),
		math.NewVec3(mx.X, mx.Y, mn.Z),
		math.NewVec3(mn.X, mn.Y, mx.Z),
		math.NewVec3(mx.X, mn.Y, mx.Z),
		math.NewVec3(mn.X, mx.Y, mx.Z),
		math.NewVec3(mx.X, mx.Y, mx.Z),
	}
	first := m.MulVec3(corners[0])
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		wp := m.MulVec3(c)
		out.Min.X, out.Max.X = minMax(out.Min.X, out.Max.X, wp.X)
		out.Min.Y, out.Max.Y = minMax(out.Min.Y, out.Max.Y, wp.Y)
		out.Min.Z, out.Max.Z = minMax(out.Min.Z, out.Max.Z, wp.Z)
	}
	return out
}

// WorldBounds is the node's mesh bounds in world space.
func (n *Node) WorldBounds() AABB {
	lo, hi := n.Mesh.Bounds()
	return AABB{Min: lo, Max: hi}.Transform(n.GetWorldMatrix())
}

// Visible returns the nodes whose world bounds intersect the view volume of
// vp, in scene order. Nodes without a mesh are skipped.
func (s *Scene) Visible(vp math.Mat4) []*Node {
	f := NewFrustum(vp)
	out := make([]*Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Mesh == nil {
			continue
		}
		if n.WorldBounds().IntersectsFrustum(&f) {
			out = append(out, n)
		}
	}
	return out
}
