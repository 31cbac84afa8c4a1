package core

// Key codes use GLFW's numbering so a window can pass them straight through.
const (
	KeySpace     = 32
	KeyA         = 65
	KeyD         = 68
	KeyS         = 83
	KeyW         = 87
	KeyEscape    = 256
	KeyF1        = 290
	KeyLeftShift = 340
)
