package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-5

func assertMatchesMGL(t *testing.T, want mgl32.Mat4, got Mat4) {
	t.Helper()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i*4+j], got[i][j], tolerance, "element [%d][%d]", i, j)
		}
	}
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))
	assert.Equal(t, NewVec3(-1, -2, -3), v1.Negate())

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
	assert.Equal(t, Vec3Back, Vec3Up.Cross(Vec3Right))
}

func TestVec3Normalize(t *testing.T) {
	t.Run("scales to unit length", func(t *testing.T) {
		n := NewVec3(3, 0, 4).Normalize()
		assert.InDelta(t, 1, n.Length(), tolerance)
		assert.True(t, n.ApproxEqual(NewVec3(0.6, 0, 0.8), tolerance))
	})
	t.Run("zero vector stays zero", func(t *testing.T) {
		n := Vec3Zero.Normalize()
		assert.Equal(t, Vec3Zero, n)
		assert.False(t, math.IsNaN(float64(n.X)))
	})
}

func TestScalarHelpers(t *testing.T) {
	assert.InDelta(t, math.Pi, Radians(180), tolerance)
	assert.InDelta(t, 90, Degrees(math.Pi/2), 1e-4)
	assert.Equal(t, float32(89), Clamp(120, -89, 89))
	assert.Equal(t, float32(-89), Clamp(-120, -89, 89))
	assert.Equal(t, float32(12.5), Clamp(12.5, -89, 89))
	assert.Equal(t, float32(2), Abs(-2))
}

func TestMat4Identity(t *testing.T) {
	assertMatchesMGL(t, mgl32.Ident4(), Mat4Identity())
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assertMatchesMGL(t, mgl32.Translate3D(1, 2, 3), m)
	assert.Equal(t, translation, m.MulVec3(Vec3Zero))
}

func TestMat4Rotations(t *testing.T) {
	angle := Radians(30)
	assertMatchesMGL(t, mgl32.HomogRotate3DX(angle), Mat4RotationX(angle))
	assertMatchesMGL(t, mgl32.HomogRotate3DY(angle), Mat4RotationY(angle))
	assertMatchesMGL(t, mgl32.HomogRotate3DZ(angle), Mat4RotationZ(angle))

	// +90 degrees about Z turns +X into +Y
	p := Mat4RotationZ(Radians(90)).MulVec3(Vec3Right)
	assert.True(t, p.ApproxEqual(Vec3Up, tolerance), "got %v", p)
}

func TestMat4MulOrder(t *testing.T) {
	s := Mat4Scale(NewVec3(2, 2, 2))
	tr := Mat4Translation(NewVec3(1, 0, 0))

	// scale first, then translate
	p := s.Mul(tr).MulVec3(NewVec3(1, 0, 0))
	assert.True(t, p.ApproxEqual(NewVec3(3, 0, 0), tolerance), "got %v", p)

	want := mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	assertMatchesMGL(t, want, s.Mul(tr))
}

func TestMat4TRS(t *testing.T) {
	pos := NewVec3(1, 2, 3)
	rot := NewVec3(Radians(10), Radians(20), Radians(30))
	scale := NewVec3(2, 3, 4)

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(rot.Y)).
		Mul4(mgl32.HomogRotate3DX(rot.X)).
		Mul4(mgl32.HomogRotate3DZ(rot.Z)).
		Mul4(mgl32.Scale3D(2, 3, 4))
	assertMatchesMGL(t, want, Mat4TRS(pos, rot, scale))
}

func TestMat4Perspective(t *testing.T) {
	fov := Radians(45)
	m := Mat4Perspective(fov, 16.0/9.0, 0.1, 100)
	assertMatchesMGL(t, mgl32.Perspective(fov, 16.0/9.0, 0.1, 100), m)
}

func TestMat4LookAt(t *testing.T) {
	cases := []struct {
		name            string
		eye, target, up Vec3
	}{
		{"down -z", NewVec3(0, 0, 5), NewVec3(0, 0, 4), Vec3Up},
		{"oblique", NewVec3(3, 2, -1), NewVec3(-1, 0.5, 2), Vec3Up},
		{"from above", NewVec3(0, 10, 0.1), NewVec3(0, 0, 0), Vec3Up},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Mat4LookAt(tc.eye, tc.target, tc.up)
			want := mgl32.LookAtV(
				mgl32.Vec3{tc.eye.X, tc.eye.Y, tc.eye.Z},
				mgl32.Vec3{tc.target.X, tc.target.Y, tc.target.Z},
				mgl32.Vec3{tc.up.X, tc.up.Y, tc.up.Z},
			)
			assertMatchesMGL(t, want, m)

			// the eye maps to the origin
			assert.True(t, m.MulVec3(tc.eye).ApproxEqual(Vec3Zero, 1e-4))
		})
	}
}

func TestMat4LookAtCanonical(t *testing.T) {
	m := Mat4LookAt(NewVec3(0, 0, 5), NewVec3(0, 0, 4), Vec3Up)
	want := Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, -5, 1},
	}
	assert.True(t, m.ApproxEqual(want, tolerance), "got %v", m)
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Cross(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Translation(NewVec3(1, 2, 3))

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4LookAt(b *testing.B) {
	eye := NewVec3(0, 1.8, 5)
	target := NewVec3(0, 1.8, 4)

	for i := 0; i < b.N; i++ {
		_ = Mat4LookAt(eye, target, Vec3Up)
	}
}
