package factory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ylikuutio/ylikuutio/internal/core/world"
)

// Description is a world tree in JSON or YAML. Names are global names.
type Description struct {
	Scenes []SceneDescription `json:"scenes" yaml:"scenes"`
}

type SceneDescription struct {
	Name         string                `json:"name" yaml:"name"`
	ActiveCamera string                `json:"active_camera,omitempty" yaml:"active_camera,omitempty"`
	Materials    []MaterialDescription `json:"materials,omitempty" yaml:"materials,omitempty"`
	Cameras      []CameraDescription   `json:"cameras,omitempty" yaml:"cameras,omitempty"`
}

type MaterialDescription struct {
	Name    string              `json:"name" yaml:"name"`
	Texture string              `json:"texture,omitempty" yaml:"texture,omitempty"`
	Objects []ObjectDescription `json:"objects,omitempty" yaml:"objects,omitempty"`
}

type ObjectDescription struct {
	Name     string     `json:"name" yaml:"name"`
	Position [3]float32 `json:"position,omitempty" yaml:"position,omitempty"`
}

type CameraDescription struct {
	Name     string     `json:"name" yaml:"name"`
	Position [3]float32 `json:"position,omitempty" yaml:"position,omitempty"`
	Yaw      float32    `json:"yaw,omitempty" yaml:"yaw,omitempty"`
	Pitch    float32    `json:"pitch,omitempty" yaml:"pitch,omitempty"`
}

// LoadJSON loads a description from a JSON reader.
func LoadJSON(r io.Reader) (*Description, error) {
	var d Description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode json description: %w", err)
	}
	return &d, nil
}

// LoadYAML loads a description from a YAML reader.
func LoadYAML(r io.Reader) (*Description, error) {
	var d Description
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode yaml description: %w", err)
	}
	return &d, nil
}

// LoadFile picks the decoder from the file extension; anything but .json
// is read as YAML.
func LoadFile(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open description: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(f)
	}
	return LoadYAML(f)
}

// Build creates every entity of d in order. It stops at the first error;
// entities created before it stay in the universe.
func (f *Factory) Build(d *Description) error {
	if d == nil {
		return nil
	}
	for _, sd := range d.Scenes {
		s, err := f.CreateScene(sd.Name)
		if err != nil {
			return fmt.Errorf("scene %q: %w", sd.Name, err)
		}
		for _, md := range sd.Materials {
			if _, err = f.CreateMaterial(md.Name, sd.Name, md.Texture); err != nil {
				return fmt.Errorf("material %q: %w", md.Name, err)
			}
			for _, od := range md.Objects {
				if _, err = f.CreateObject(od.Name, md.Name, world.Vec3(od.Position)); err != nil {
					return fmt.Errorf("object %q: %w", od.Name, err)
				}
			}
		}
		for _, cd := range sd.Cameras {
			c, err := f.CreateCamera(cd.Name, sd.Name, world.Vec3(cd.Position))
			if err != nil {
				return fmt.Errorf("camera %q: %w", cd.Name, err)
			}
			c.Yaw, c.Pitch = cd.Yaw, cd.Pitch
		}
		if sd.ActiveCamera != "" {
			c, _ := f.universe.Lookup(sd.ActiveCamera).(*world.Camera)
			if !s.SetActiveCamera(c) {
				return fmt.Errorf("active camera %q: %w", sd.ActiveCamera, ErrNotFound)
			}
		}
	}
	return nil
}
