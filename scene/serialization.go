package scene

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Marshal encodes the description as YAML that ParseDescription accepts.
func (d Description) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

// SaveDescription writes d to path as YAML.
func SaveDescription(d Description, path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	return nil
}

// Snapshot returns d with the camera moved to where c is now, so a session
// can be saved and resumed from the same viewpoint.
func (d Description) Snapshot(c *Camera) Description {
	yaw := c.Yaw
	d.Camera.Position = []float32{c.Position.X, c.Position.Y, c.Position.Z}
	d.Camera.Yaw = &yaw
	d.Camera.Pitch = c.Pitch
	return d
}
