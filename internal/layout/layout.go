// Package layout reads the optional startup scene description.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tokenstage/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKind = errors.New("unknown kind")

type File struct {
	Primitives []PrimitiveDef `yaml:"primitives"`
	Lights     []LightDef     `yaml:"lights"`
	Imports    []string       `yaml:"imports"`
}

type PrimitiveDef struct {
	Name     string     `yaml:"name,omitempty"`
	Kind     string     `yaml:"kind"`
	Position [3]float32 `yaml:"position,omitempty"`
	Rotation [3]float32 `yaml:"rotation,omitempty"`
	Scale    [3]float32 `yaml:"scale,omitempty"`
	Color    string     `yaml:"color,omitempty"`
}

type LightDef struct {
	Name      string     `yaml:"name,omitempty"`
	Kind      string     `yaml:"kind"`
	Position  [3]float32 `yaml:"position,omitempty"`
	Rotation  [3]float32 `yaml:"rotation,omitempty"`
	Color     string     `yaml:"color,omitempty"`
	Intensity float32    `yaml:"intensity,omitempty"`
}

const (
	LightPoint = "point"
	LightSpot  = "spot"
)

// Load reads the layout at path. A missing file is an empty layout.
// Relative import paths are resolved against the layout's directory.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i, p := range f.Imports {
		if !filepath.IsAbs(p) {
			f.Imports[i] = filepath.Join(base, p)
		}
	}
	return f, nil
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	for i, p := range f.Primitives {
		if _, err := PrimitiveKind(p.Kind); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	for i, l := range f.Lights {
		if l.Kind != LightPoint && l.Kind != LightSpot {
			return nil, fmt.Errorf("light %d: %q: %w", i, l.Kind, ErrUnknownKind)
		}
	}
	return &f, nil
}

func PrimitiveKind(name string) (components.PrimitiveKind, error) {
	switch strings.ToLower(name) {
	case "cube":
		return components.PrimitiveCube, nil
	case "sphere":
		return components.PrimitiveSphere, nil
	case "plane":
		return components.PrimitivePlane, nil
	case "cylinder":
		return components.PrimitiveCylinder, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownKind)
}

func Vec(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// ScaleOrOne treats an omitted scale as unit scale.
func ScaleOrOne(v [3]float32) rl.Vector3 {
	if v == [3]float32{} {
		return rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return Vec(v)
}

var colorByName = map[string]rl.Color{
	"red":       rl.Red,
	"blue":      rl.Blue,
	"green":     rl.Green,
	"purple":    rl.Purple,
	"orange":    rl.Orange,
	"yellow":    rl.Yellow,
	"pink":      rl.Pink,
	"skyblue":   rl.SkyBlue,
	"lime":      rl.Lime,
	"magenta":   rl.Magenta,
	"white":     rl.White,
	"lightgray": rl.LightGray,
	"gray":      rl.Gray,
	"darkgray":  rl.DarkGray,
	"black":     rl.Black,
	"brown":     rl.Brown,
	"beige":     rl.Beige,
	"maroon":    rl.Maroon,
	"gold":      rl.Gold,
}

// LookupColor accepts a raylib colour name or #rrggbb / #rrggbbaa, falling
// back to fallback when name is empty or unrecognised.
func LookupColor(name string, fallback rl.Color) rl.Color {
	if name == "" {
		return fallback
	}
	if c, ok := colorByName[strings.ToLower(name)]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(name, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return fallback
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}
