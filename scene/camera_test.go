package scene

import (
	"fmt"
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	reMath "room-viewer/math"
)

const eps = 1e-5

func newTestCamera() *Camera {
	return NewCamera(reMath.Vec3Zero, reMath.Vec3Up, -90, 0)
}

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	assert.InDelta(t, 1, c.Front.Length(), eps, "front length")
	assert.InDelta(t, 1, c.Right.Length(), eps, "right length")
	assert.InDelta(t, 1, c.Up.Length(), eps, "up length")
	assert.InDelta(t, 0, c.Front.Dot(c.Right), eps, "front.right")
	assert.InDelta(t, 0, c.Front.Dot(c.Up), eps, "front.up")
	assert.InDelta(t, 0, c.Right.Dot(c.Up), eps, "right.up")
}

func TestNewCamera(t *testing.T) {
	pos := reMath.NewVec3(1, 2, 3)
	c := NewCamera(pos, reMath.Vec3Up, -90, 0)

	assert.Equal(t, pos, c.Position)
	assert.Equal(t, reMath.Vec3Up, c.WorldUp)
	assert.Equal(t, float32(DefaultMovementSpeed), c.MovementSpeed)
	assert.Equal(t, float32(DefaultMouseSensitivity), c.MouseSensitivity)
	assert.True(t, c.Front.ApproxEqual(reMath.Vec3Back, eps), "front %v", c.Front)
	assert.True(t, c.Right.ApproxEqual(reMath.Vec3Right, eps), "right %v", c.Right)
	assert.True(t, c.Up.ApproxEqual(reMath.Vec3Up, eps), "up %v", c.Up)
}

func TestCameraBasisIsOrthonormal(t *testing.T) {
	for yaw := float32(0); yaw < 360; yaw += 15 {
		for pitch := float32(-88.5); pitch < 89; pitch += 7.5 {
			t.Run(fmt.Sprintf("yaw=%v,pitch=%v", yaw, pitch), func(t *testing.T) {
				c := NewCamera(reMath.Vec3Zero, reMath.Vec3Up, yaw, pitch)
				assertOrthonormal(t, c)
				// right-handed: right x up = -front
				assert.True(t, c.Right.Cross(c.Up).ApproxEqual(c.Front.Negate(), 1e-4))
			})
		}
	}
}

func TestCameraProcessMovement(t *testing.T) {
	t.Run("forward moves along front", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessMovement(Forward, 1.0)
		assert.True(t, c.Position.ApproxEqual(reMath.NewVec3(0, 0, -5), eps), "got %v", c.Position)
	})
	cases := []struct {
		direction Movement
		want      reMath.Vec3
	}{
		{Forward, reMath.NewVec3(0, 0, -1)},
		{Backward, reMath.NewVec3(0, 0, 1)},
		{Left, reMath.NewVec3(-1, 0, 0)},
		{Right, reMath.NewVec3(1, 0, 0)},
		{Up, reMath.NewVec3(0, 1, 0)},
		{Down, reMath.NewVec3(0, -1, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.direction.String(), func(t *testing.T) {
			c := newTestCamera()
			c.ProcessMovement(tc.direction, 0.2)
			assert.True(t, c.Position.ApproxEqual(tc.want, eps), "got %v", c.Position)
		})
	}
	t.Run("up and down ignore pitch", func(t *testing.T) {
		c := NewCamera(reMath.Vec3Zero, reMath.Vec3Up, -90, 45)
		c.ProcessMovement(Up, 1)
		assert.True(t, c.Position.ApproxEqual(reMath.NewVec3(0, 5, 0), eps), "got %v", c.Position)
	})
	t.Run("zero delta does not move", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessMovement(Forward, 0)
		assert.Equal(t, reMath.Vec3Zero, c.Position)
	})
}

func TestCameraMovementRoundTrip(t *testing.T) {
	pairs := [][2]Movement{{Forward, Backward}, {Left, Right}, {Up, Down}}
	for _, dt := range []float32{0, 0.016, 0.5, 3} {
		for _, p := range pairs {
			c := NewCamera(reMath.NewVec3(1, 2, 3), reMath.Vec3Up, 33, -12)
			start := c.Position
			c.ProcessMovement(p[0], dt)
			c.ProcessMovement(p[1], dt)
			assert.True(t, c.Position.ApproxEqual(start, 1e-4), "%v/%v dt=%v got %v", p[0], p[1], dt, c.Position)
		}
	}
}

func TestCameraProcessLook(t *testing.T) {
	t.Run("turns right by offset times sensitivity", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessLook(10, 0, true)
		assert.InDelta(t, -89, c.Yaw, eps)
		assert.InDelta(t, 0, c.Pitch, eps)
		assertOrthonormal(t, c)
		// front swings from -Z towards +X
		assert.Greater(t, c.Front.X, float32(0))
	})
	t.Run("positive y looks up", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessLook(0, 100, true)
		assert.InDelta(t, 10, c.Pitch, eps)
		assert.Greater(t, c.Front.Y, float32(0))
	})
	t.Run("pitch saturates when constrained", func(t *testing.T) {
		c := newTestCamera()
		for i := 0; i < 50; i++ {
			c.ProcessLook(0, 500, true)
			assert.LessOrEqual(t, c.Pitch, float32(MaxPitch))
		}
		assert.Equal(t, float32(MaxPitch), c.Pitch)
		assertOrthonormal(t, c)

		for i := 0; i < 50; i++ {
			c.ProcessLook(0, -500, true)
			assert.GreaterOrEqual(t, c.Pitch, float32(-MaxPitch))
		}
		assert.Equal(t, float32(-MaxPitch), c.Pitch)
	})
	t.Run("pitch is free when unconstrained", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessLook(0, 1000, false)
		assert.InDelta(t, 100, c.Pitch, eps)
	})
	t.Run("yaw is unbounded", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessLook(3600, 0, true)
		assert.InDelta(t, 270, c.Yaw, eps)
		assert.True(t, c.Front.ApproxEqual(reMath.Vec3Back, 1e-4), "front %v", c.Front)
	})
}

func TestCameraDegenerateOrientation(t *testing.T) {
	isNaN := func(v reMath.Vec3) bool {
		return stdmath.IsNaN(float64(v.X)) || stdmath.IsNaN(float64(v.Y)) || stdmath.IsNaN(float64(v.Z))
	}
	t.Run("front parallel to world up zeroes right and up", func(t *testing.T) {
		c := NewCamera(reMath.Vec3Zero, reMath.NewVec3(1, 0, 0), 0, 0)
		assert.Equal(t, reMath.NewVec3(1, 0, 0), c.Front)
		assert.Equal(t, reMath.Vec3Zero, c.Right)
		assert.Equal(t, reMath.Vec3Zero, c.Up)
	})
	t.Run("unconstrained look straight up stays finite", func(t *testing.T) {
		c := newTestCamera()
		c.ProcessLook(0, 90/c.MouseSensitivity, false)
		assert.InDelta(t, 90, c.Pitch, 1e-3)
		assert.False(t, isNaN(c.Front), "front %v", c.Front)
		assert.False(t, isNaN(c.Right), "right %v", c.Right)
		assert.False(t, isNaN(c.Up), "up %v", c.Up)
	})
}

func TestCameraSetOrientation(t *testing.T) {
	c := newTestCamera()
	c.SetOrientation(0, 0)
	assert.True(t, c.Front.ApproxEqual(reMath.Vec3Right, eps), "front %v", c.Front)
	assert.True(t, c.Right.ApproxEqual(reMath.Vec3Front, eps), "right %v", c.Right)
}

func TestCameraViewMatrix(t *testing.T) {
	t.Run("matches the canonical look-at", func(t *testing.T) {
		c := NewCamera(reMath.NewVec3(0, 0, 5), reMath.Vec3Up, -90, 0)
		got := c.GetViewMatrix()
		want := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0})
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.InDelta(t, want[i*4+j], got[i][j], eps, "[%d][%d]", i, j)
			}
		}
	})
	t.Run("maps the target onto the -Z axis", func(t *testing.T) {
		c := NewCamera(reMath.NewVec3(2, 1, -3), reMath.Vec3Up, 40, 20)
		v := c.GetViewMatrix()
		assert.True(t, v.MulVec3(c.Position).ApproxEqual(reMath.Vec3Zero, 1e-4))
		assert.True(t, v.MulVec3(c.Target()).ApproxEqual(reMath.Vec3Back, 1e-4))
	})
	t.Run("has no side effects", func(t *testing.T) {
		c := newTestCamera()
		before := *c
		_ = c.GetViewMatrix()
		_ = c.GetViewMatrix()
		assert.Equal(t, before, *c)
	})
}

func BenchmarkCameraProcessLook(b *testing.B) {
	c := newTestCamera()
	for i := 0; i < b.N; i++ {
		c.ProcessLook(1, 0.5, true)
	}
}
