package scene

import (
	"errors"
	"fmt"
	stdmath "math"
	"os"

	"github.com/ErikKalkoken/go-set"
	"github.com/goccy/go-yaml"

	"room-viewer/core"
	"room-viewer/math"
)

var (
	ErrInvalidVector     = errors.New("invalid vector")
	ErrInvalidShape      = errors.New("invalid shape")
	ErrInvalidRoom       = errors.New("invalid room")
	ErrInvalidProjection = errors.New("invalid projection")
	ErrInvalidCamera     = errors.New("invalid camera")
	ErrInvalidWindow     = errors.New("invalid window")
	ErrDuplicateName     = errors.New("duplicate object name")
	ErrInvalidNumber     = errors.New("non-finite number")
)

// Shape names a built-in mesh.
type Shape string

const (
	ShapeCube     Shape = "cube"
	ShapePlane    Shape = "plane"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
	ShapePyramid  Shape = "pyramid"
)

// Description is the declarative form of a scene, usually read from YAML.
// Vectors and colours are written as flow sequences, e.g. [0, 1.8, 3].
// Room is optional; without it the camera flies freely.
type Description struct {
	Window     WindowDescription     `yaml:"window"`
	Camera     CameraDescription     `yaml:"camera"`
	Projection ProjectionDescription `yaml:"projection"`
	Room       *RoomDescription      `yaml:"room"`
	ClearColor []float32             `yaml:"clear_color"`
	Light      []float32             `yaml:"light"`
	Objects    []ObjectDescription   `yaml:"objects"`
}

type WindowDescription struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  *bool  `yaml:"vsync"`
}

type CameraDescription struct {
	Position         []float32 `yaml:"position"`
	WorldUp          []float32 `yaml:"world_up"`
	Yaw              *float32  `yaml:"yaw"`
	Pitch            float32   `yaml:"pitch"`
	MovementSpeed    float32   `yaml:"movement_speed"`
	MouseSensitivity float32   `yaml:"mouse_sensitivity"`
}

// ProjectionDescription configures the perspective projection. FOV is the
// vertical field of view in degrees.
type ProjectionDescription struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// RoomDescription is a walled room centred on the origin with its floor at
// y=0. The camera is kept Margin units away from the walls at EyeHeight.
type RoomDescription struct {
	Width      float32   `yaml:"width"`
	Depth      float32   `yaml:"depth"`
	Height     float32   `yaml:"height"`
	EyeHeight  float32   `yaml:"eye_height"`
	Margin     float32   `yaml:"margin"`
	FloorColor []float32 `yaml:"floor_color"`
	WallColor  []float32 `yaml:"wall_color"`
}

// ObjectDescription places a built-in mesh. Rotation is in degrees and Spin
// is a rotation rate about Y in degrees per second.
type ObjectDescription struct {
	Name     string    `yaml:"name"`
	Shape    Shape     `yaml:"shape"`
	Color    []float32 `yaml:"color"`
	Position []float32 `yaml:"position"`
	Rotation []float32 `yaml:"rotation"`
	Scale    []float32 `yaml:"scale"`
	Spin     float32   `yaml:"spin"`
}

// DefaultDescription is the stock scene: a 10x10 room with a spinning cube.
func DefaultDescription() Description {
	yaw := float32(-90)
	vsync := true
	return Description{
		Window: WindowDescription{Width: 800, Height: 600, Title: "Room Viewer", VSync: &vsync},
		Camera: CameraDescription{
			Position:         []float32{0, 0.8, 3},
			WorldUp:          []float32{0, 1, 0},
			Yaw:              &yaw,
			MovementSpeed:    DefaultMovementSpeed,
			MouseSensitivity: DefaultMouseSensitivity,
		},
		Projection: ProjectionDescription{FOV: 45, Near: 0.1, Far: 100},
		Room: &RoomDescription{
			Width:      10,
			Depth:      10,
			Height:     4,
			EyeHeight:  0.8,
			Margin:     0.5,
			FloorColor: []float32{0.45, 0.42, 0.38},
			WallColor:  []float32{0.75, 0.72, 0.66},
		},
		ClearColor: []float32{0.08, 0.08, 0.12, 1},
		Light:      []float32{0, 3.5, 0},
		Objects: []ObjectDescription{
			{
				Name:     "cube",
				Shape:    ShapeCube,
				Color:    []float32{0.8, 0.35, 0.2},
				Position: []float32{0, 1, -2},
				Rotation: []float32{0, 0, 0},
				Scale:    []float32{1, 1, 1},
				Spin:     45,
			},
		},
	}
}

// LoadDescription reads and validates a YAML scene file.
func LoadDescription(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("read scene %s: %w", path, err)
	}
	d, err := ParseDescription(data)
	if err != nil {
		return Description{}, fmt.Errorf("scene %s: %w", path, err)
	}
	return d, nil
}

// ParseDescription decodes YAML, fills unset fields with defaults and
// validates the result.
func ParseDescription(data []byte) (Description, error) {
	var d Description
	if err := yaml.UnmarshalWithOptions(data, &d, yaml.DisallowUnknownField()); err != nil {
		return Description{}, fmt.Errorf("decode: %w", err)
	}
	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

func (d *Description) applyDefaults() {
	def := DefaultDescription()
	if d.Window.Width == 0 {
		d.Window.Width = def.Window.Width
	}
	if d.Window.Height == 0 {
		d.Window.Height = def.Window.Height
	}
	if d.Window.Title == "" {
		d.Window.Title = def.Window.Title
	}
	if d.Window.VSync == nil {
		d.Window.VSync = def.Window.VSync
	}

	c := &d.Camera
	if c.Position == nil {
		c.Position = def.Camera.Position
	}
	if c.WorldUp == nil {
		c.WorldUp = def.Camera.WorldUp
	}
	if c.Yaw == nil {
		c.Yaw = def.Camera.Yaw
	}
	if c.MovementSpeed == 0 {
		c.MovementSpeed = def.Camera.MovementSpeed
	}
	if c.MouseSensitivity == 0 {
		c.MouseSensitivity = def.Camera.MouseSensitivity
	}

	if d.Projection.FOV == 0 {
		d.Projection.FOV = def.Projection.FOV
	}
	if d.Projection.Near == 0 {
		d.Projection.Near = def.Projection.Near
	}
	if d.Projection.Far == 0 {
		d.Projection.Far = def.Projection.Far
	}

	if r := d.Room; r != nil {
		if r.Margin == 0 {
			r.Margin = def.Room.Margin
		}
		if r.EyeHeight == 0 {
			r.EyeHeight = def.Room.EyeHeight
		}
		if r.FloorColor == nil {
			r.FloorColor = def.Room.FloorColor
		}
		if r.WallColor == nil {
			r.WallColor = def.Room.WallColor
		}
	}

	if d.ClearColor == nil {
		d.ClearColor = def.ClearColor
	}
	if d.Light == nil {
		d.Light = def.Light
	}
	// generated names skip any the file already uses
	var taken set.Set[string]
	for _, o := range d.Objects {
		if o.Name != "" {
			taken.Add(o.Name)
		}
	}
	for i := range d.Objects {
		o := &d.Objects[i]
		if o.Name == "" {
			name := fmt.Sprintf("%s-%d", o.Shape, i)
			for k := i + 1; taken.Contains(name); k++ {
				name = fmt.Sprintf("%s-%d", o.Shape, k)
			}
			taken.Add(name)
			o.Name = name
		}
		if o.Color == nil {
			o.Color = []float32{1, 1, 1}
		}
		if o.Position == nil {
			o.Position = []float32{0, 0, 0}
		}
		if o.Rotation == nil {
			o.Rotation = []float32{0, 0, 0}
		}
		if o.Scale == nil {
			o.Scale = []float32{1, 1, 1}
		}
	}
}

// Validate reports the first problem found. Errors wrap one of the
// ErrInvalid* sentinels.
func (d Description) Validate() error {
	if d.Window.Width <= 0 || d.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", d.Window.Width, d.Window.Height, ErrInvalidWindow)
	}

	if d.Camera.Yaw != nil {
		if err := finite("camera.yaw", *d.Camera.Yaw); err != nil {
			return err
		}
	}
	if err := finite("camera", d.Camera.Pitch, d.Camera.MovementSpeed, d.Camera.MouseSensitivity); err != nil {
		return err
	}
	if err := finite("projection", d.Projection.FOV, d.Projection.Near, d.Projection.Far); err != nil {
		return err
	}
	if r := d.Room; r != nil {
		if err := finite("room", r.Width, r.Depth, r.Height, r.EyeHeight, r.Margin); err != nil {
			return err
		}
	}

	if _, err := toVec3("camera.position", d.Camera.Position); err != nil {
		return err
	}
	up, err := toVec3("camera.world_up", d.Camera.WorldUp)
	if err != nil {
		return err
	}
	if up.Length() == 0 {
		return fmt.Errorf("camera.world_up is zero: %w", ErrInvalidCamera)
	}
	if d.Camera.MovementSpeed < 0 || d.Camera.MouseSensitivity < 0 {
		return fmt.Errorf("camera speed and sensitivity must not be negative: %w", ErrInvalidCamera)
	}

	p := d.Projection
	if p.FOV <= 0 || p.FOV >= 180 {
		return fmt.Errorf("fov %v: %w", p.FOV, ErrInvalidProjection)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("near %v far %v: %w", p.Near, p.Far, ErrInvalidProjection)
	}

	if r := d.Room; r != nil {
		if r.Width <= 0 || r.Depth <= 0 || r.Height <= 0 {
			return fmt.Errorf("room %vx%vx%v: %w", r.Width, r.Depth, r.Height, ErrInvalidRoom)
		}
		if r.Margin < 0 || 2*r.Margin >= r.Width || 2*r.Margin >= r.Depth {
			return fmt.Errorf("room margin %v: %w", r.Margin, ErrInvalidRoom)
		}
		if r.EyeHeight < 0 || r.EyeHeight > r.Height {
			return fmt.Errorf("room eye height %v: %w", r.EyeHeight, ErrInvalidRoom)
		}
		if _, err := toColor("room.floor_color", r.FloorColor); err != nil {
			return err
		}
		if _, err := toColor("room.wall_color", r.WallColor); err != nil {
			return err
		}
	}

	if _, err := toColor("clear_color", d.ClearColor); err != nil {
		return err
	}
	if _, err := toVec3("light", d.Light); err != nil {
		return err
	}

	var names set.Set[string]
	for _, o := range d.Objects {
		if names.Contains(o.Name) {
			return fmt.Errorf("object %q: %w", o.Name, ErrDuplicateName)
		}
		names.Add(o.Name)
		if err := finite("object "+o.Name+" spin", o.Spin); err != nil {
			return err
		}
		switch o.Shape {
		case ShapeCube, ShapePlane, ShapeSphere, ShapeCylinder, ShapePyramid:
		default:
			return fmt.Errorf("object %s: %q: %w", o.Name, o.Shape, ErrInvalidShape)
		}
		if _, err := toVec3("object "+o.Name+" position", o.Position); err != nil {
			return err
		}
		if _, err := toVec3("object "+o.Name+" rotation", o.Rotation); err != nil {
			return err
		}
		if _, err := toVec3("object "+o.Name+" scale", o.Scale); err != nil {
			return err
		}
		if _, err := toColor("object "+o.Name+" color", o.Color); err != nil {
			return err
		}
	}
	return nil
}

func isFinite(v float32) bool {
	f := float64(v)
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}

func finite(field string, vs ...float32) error {
	for _, v := range vs {
		if !isFinite(v) {
			return fmt.Errorf("%s: %v: %w", field, v, ErrInvalidNumber)
		}
	}
	return nil
}

func finiteComponents(field string, v []float32) error {
	for i, c := range v {
		if !isFinite(c) {
			return fmt.Errorf("%s[%d] is %v: %w", field, i, c, ErrInvalidVector)
		}
	}
	return nil
}

func toVec3(field string, v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("%s: want 3 components, got %d: %w", field, len(v), ErrInvalidVector)
	}
	if err := finiteComponents(field, v); err != nil {
		return math.Vec3{}, err
	}
	return math.NewVec3(v[0], v[1], v[2]), nil
}

// toColor accepts RGB or RGBA; RGB is opaque.
func toColor(field string, v []float32) (core.Color, error) {
	if err := finiteComponents(field, v); err != nil {
		return core.Color{}, err
	}
	switch len(v) {
	case 3:
		return core.Color{R: v[0], G: v[1], B: v[2], A: 1}, nil
	case 4:
		return core.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
	}
	return core.Color{}, fmt.Errorf("%s: want 3 or 4 components, got %d: %w", field, len(v), ErrInvalidVector)
}
