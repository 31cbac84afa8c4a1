package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"room-viewer/math"
	"room-viewer/scene"
)

func TestRoomBoundsApply(t *testing.T) {
	b := NewRoomBounds(scene.RoomDescription{Width: 10, Depth: 6, Height: 3, Margin: 0.5, EyeHeight: 0.8})

	cases := []struct {
		name string
		in   math.Vec3
		want math.Vec3
	}{
		{"inside keeps x and z", math.NewVec3(1, 0.8, -1), math.NewVec3(1, 0.8, -1)},
		{"eye height is pinned", math.NewVec3(0, 3, 0), math.NewVec3(0, 0.8, 0)},
		{"below the floor", math.NewVec3(0, -2, 0), math.NewVec3(0, 0.8, 0)},
		{"past the left wall", math.NewVec3(-20, 0.8, 0), math.NewVec3(-4.5, 0.8, 0)},
		{"past the right wall", math.NewVec3(20, 0.8, 0), math.NewVec3(4.5, 0.8, 0)},
		{"past the back wall", math.NewVec3(0, 0.8, -9), math.NewVec3(0, 0.8, -2.5)},
		{"corner", math.NewVec3(9, 5, 9), math.NewVec3(4.5, 0.8, 2.5)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Apply(tc.in)
			assert.True(t, got.ApproxEqual(tc.want, 1e-6), "got %v want %v", got, tc.want)
		})
	}
}

func TestRoomBoundsGroundOffset(t *testing.T) {
	b := &RoomBounds{Width: 4, Depth: 4, GroundY: 2, EyeHeight: 1.5}
	got := b.Apply(math.NewVec3(3, 0, -3))
	assert.Equal(t, math.NewVec3(2, 3.5, -2), got)
}

func TestNewRoomBoundsCopiesRoom(t *testing.T) {
	b := NewRoomBounds(*scene.DefaultDescription().Room)
	assert.Equal(t, &RoomBounds{Width: 10, Depth: 10, Margin: 0.5, EyeHeight: 0.8}, b)
}
