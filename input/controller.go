package input

import (
	"room-viewer/core"
	"room-viewer/scene"
)

// Source is polled once per frame for keyboard and pointer state.
// *platform.Window satisfies it.
type Source interface {
	IsKeyPressed(key int) bool
	GetCursorPos() (float64, float64)
}

// KeyBinding maps a held key to a camera movement.
type KeyBinding struct {
	Key       int
	Direction scene.Movement
}

// Bindings lists the keys the controller reacts to.
type Bindings struct {
	Movement  []KeyBinding
	Wireframe int
	Quit      int
}

// DefaultBindings is WASD to walk, Space and LeftShift to rise and sink,
// F1 to toggle wireframe and Escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		Movement: []KeyBinding{
			{Key: core.KeyW, Direction: scene.Forward},
			{Key: core.KeyS, Direction: scene.Backward},
			{Key: core.KeyA, Direction: scene.Left},
			{Key: core.KeyD, Direction: scene.Right},
			{Key: core.KeySpace, Direction: scene.Up},
			{Key: core.KeyLeftShift, Direction: scene.Down},
		},
		Wireframe: core.KeyF1,
		Quit:      core.KeyEscape,
	}
}

// Result reports what the frame loop has to act on after Update.
type Result struct {
	Wireframe        bool
	WireframeChanged bool
	Quit             bool
}

// Controller turns polled input into camera movement. It owns the pointer
// tracking state, so each controller tracks its own cursor history.
type Controller struct {
	Camera   *scene.Camera
	Bindings Bindings

	// Bounds is applied to the camera position after movement every frame.
	// Nil means free flight.
	Bounds Bounds

	lastX, lastY float64
	firstMouse   bool

	wireframe     bool
	wireframeHeld bool
}

func NewController(camera *scene.Camera, bounds Bounds) *Controller {
	return &Controller{
		Camera:     camera,
		Bindings:   DefaultBindings(),
		Bounds:     bounds,
		firstMouse: true,
	}
}

// Reset forgets the last pointer position so the next sample produces no
// look offset. Call it when the cursor is recaptured.
func (c *Controller) Reset() {
	c.firstMouse = true
}

// Wireframe reports the current wireframe toggle state.
func (c *Controller) Wireframe() bool {
	return c.wireframe
}

// Update polls src and applies one frame of input. deltaTime is the frame
// time in seconds.
func (c *Controller) Update(src Source, deltaTime float32) Result {
	var res Result

	c.look(src)

	for _, b := range c.Bindings.Movement {
		if src.IsKeyPressed(b.Key) {
			c.Camera.ProcessMovement(b.Direction, deltaTime)
		}
	}

	// toggles once per press, not once per frame
	if src.IsKeyPressed(c.Bindings.Wireframe) {
		if !c.wireframeHeld {
			c.wireframe = !c.wireframe
			c.wireframeHeld = true
			res.WireframeChanged = true
		}
	} else {
		c.wireframeHeld = false
	}
	res.Wireframe = c.wireframe

	res.Quit = src.IsKeyPressed(c.Bindings.Quit)

	if c.Bounds != nil {
		c.Camera.Position = c.Bounds.Apply(c.Camera.Position)
	}
	return res
}

// look feeds the pointer delta to the camera. Screen y grows downwards, so
// the y offset is lastY-y: moving the pointer up looks up.
func (c *Controller) look(src Source) {
	x, y := src.GetCursorPos()
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}

	xOffset := float32(x - c.lastX)
	yOffset := float32(c.lastY - y)
	c.lastX, c.lastY = x, y

	if xOffset == 0 && yOffset == 0 {
		return
	}
	c.Camera.ProcessLook(xOffset, yOffset, true)
}
