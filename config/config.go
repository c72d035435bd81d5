// Package config loads VU meter face descriptions. A meter config places the
// needle pivot on the screen, sets the angular range and maps it onto the dB
// scale, so the same renderer can drive different meter artwork.
package config

import (
	"image/color"
	"os"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	colorful "github.com/lucasb-eyer/go-colorful"
	yaml "gopkg.in/yaml.v2"
)

// MeterConfig describes one meter face. Positions and the needle length are
// fractions of the screen size, so a config works across resolutions.
type MeterConfig struct {
	Name string `yaml:"name"`

	// Needle pivot as a fraction of width and height.
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`

	// Needle length as a fraction of the screen width.
	Length float64 `yaml:"length"`

	// Needle sweep in degrees, 0° is straight up.
	MinAngle float64 `yaml:"min_angle"`
	MaxAngle float64 `yaml:"max_angle"`

	// dB window mapped onto the sweep.
	MinDb float64 `yaml:"min_db"`
	MaxDb float64 `yaml:"max_db"`

	NeedleWidth int    `yaml:"needle_width"`
	NeedleColor string `yaml:"needle_color"` // hex, "#rrggbb"
}

// presets are the built in meter faces, matching the artwork shipped with
// HiFiBerry's installer images.
var presets = map[string]MeterConfig{
	"simple": {
		Name:        "simple",
		CenterX:     0.5,
		CenterY:     0.72,
		Length:      0.5,
		MinAngle:    -35,
		MaxAngle:    18,
		MinDb:       -20,
		MaxDb:       6,
		NeedleWidth: 3,
		NeedleColor: "#c80000",
	},
	"simple2": {
		Name:        "simple2",
		CenterX:     0.5,
		CenterY:     0.72,
		Length:      0.5,
		MinAngle:    -35,
		MaxAngle:    18,
		MinDb:       -20,
		MaxDb:       6,
		NeedleWidth: 3,
		NeedleColor: "#323232",
	},
}

// Preset returns a built in meter config by name.
func Preset(name string) (MeterConfig, errors.Error) {
	cfg, ok := presets[name]
	if !ok {
		return MeterConfig{}, errors.New("unknown meter preset").
			With("name", name).With("presets", PresetNames()).
			With("stack", stack.Trace().TrimRuntime())
	}
	return cfg, nil
}

// PresetNames lists the built in meter configs.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// Load reads a meter config from a YAML file, filling unset fields from the
// "simple" preset.
func Load(path string) (MeterConfig, errors.Error) {
	raw, errGo := os.ReadFile(path)
	if errGo != nil {
		return MeterConfig{}, errors.Wrap(errGo).With("file", path).
			With("stack", stack.Trace().TrimRuntime())
	}

	cfg := presets["simple"]
	if errGo := yaml.UnmarshalStrict(raw, &cfg); errGo != nil {
		return MeterConfig{}, errors.Wrap(errGo).With("file", path).
			With("stack", stack.Trace().TrimRuntime())
	}
	if err := cfg.validate(); err != nil {
		return MeterConfig{}, err.With("file", path)
	}
	return cfg, nil
}

func (c MeterConfig) validate() errors.Error {
	if c.MinAngle >= c.MaxAngle {
		return errors.New("min_angle must be below max_angle").
			With("minAngle", c.MinAngle).With("maxAngle", c.MaxAngle).
			With("stack", stack.Trace().TrimRuntime())
	}
	if c.MinDb >= c.MaxDb {
		return errors.New("min_db must be below max_db").
			With("minDb", c.MinDb).With("maxDb", c.MaxDb).
			With("stack", stack.Trace().TrimRuntime())
	}
	if _, err := ParseColor(c.NeedleColor); err != nil {
		return err
	}
	return nil
}

// Color returns the parsed needle color. The config must have passed
// validate, unparseable values fall back to red.
func (c MeterConfig) Color() color.Color {
	parsed, err := ParseColor(c.NeedleColor)
	if err != nil {
		return color.RGBA{0xc8, 0x00, 0x00, 0xff}
	}
	return parsed
}

// ParseColor parses a "#rrggbb" hex color.
func ParseColor(s string) (color.Color, errors.Error) {
	parsed, errGo := colorful.Hex(s)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("color", s).
			With("stack", stack.Trace().TrimRuntime())
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}
