// Package config loads program settings from a TOML file and command-line flags
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyph-rain/constants"
	"github.com/lixenwraith/glyph-rain/seed"
	"github.com/lixenwraith/glyph-rain/terminal"
)

// ErrInvalid marks a configuration value outside its allowed range
var ErrInvalid = errors.New("invalid configuration")

// DefaultPath is read when --config is not given
const DefaultPath = "glyph-rain.toml"

// Config holds all program settings
type Config struct {
	FPS        int     `toml:"fps"`
	PixelRatio float64 `toml:"pixel_ratio"`
	Debug      bool    `toml:"debug"`

	Color ColorConfig `toml:"color"`
	Cell  CellConfig  `toml:"cell"`
	Seed  SeedConfig  `toml:"seed"`
}

// ColorConfig controls rain appearance
type ColorConfig struct {
	Rain      string  `toml:"rain"`
	Mode      string  `toml:"mode"`
	FadeAlpha float64 `toml:"fade_alpha"`
}

// CellConfig is the logical pixel size of one terminal cell
type CellConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// SeedConfig selects the glyph source
type SeedConfig struct {
	Preset string `toml:"preset"`
	File   string `toml:"file"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FPS:        constants.DefaultFPS,
		PixelRatio: 1,
		Color: ColorConfig{
			Rain:      constants.RainColorHex,
			Mode:      "auto",
			FadeAlpha: constants.FadeAlpha,
		},
		Cell: CellConfig{
			Width:  constants.DefaultCellWidth,
			Height: constants.DefaultCellHeight,
		},
		Seed: SeedConfig{
			Preset: seed.PresetPython,
		},
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Decode strictly unmarshals TOML data into cfg, rejecting unknown keys
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errors.Errorf("line %d column %d: %s", row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return errors.New(serr.String())
		}
		return err
	}
	return nil
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return data, nil
}

// Validate checks every setting and reports the first violation wrapped in ErrInvalid
func (c Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > constants.MaxFPS:
		return invalid("fps %d outside 1-%d", c.FPS, constants.MaxFPS)
	case !(c.PixelRatio > 0) || math.IsInf(c.PixelRatio, 0):
		return invalid("pixel_ratio %v must be positive", c.PixelRatio)
	case !(c.Cell.Width > 0) || !(c.Cell.Height > 0):
		return invalid("cell size %vx%v must be positive", c.Cell.Width, c.Cell.Height)
	case !(c.Color.FadeAlpha > 0) || c.Color.FadeAlpha > 1:
		return invalid("fade_alpha %v outside (0,1]", c.Color.FadeAlpha)
	case !seed.IsPreset(c.Seed.Preset):
		return invalid("unknown preset %q", c.Seed.Preset)
	}
	if _, err := colorful.Hex(c.Color.Rain); err != nil {
		return invalid("color %q: %v", c.Color.Rain, err)
	}
	if _, err := terminal.ParseColorMode(c.Color.Mode); err != nil {
		return invalid("%v", err)
	}
	return nil
}

// RainColor returns the parsed rain colour
func (c Config) RainColor() (colorful.Color, error) {
	col, err := colorful.Hex(c.Color.Rain)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(ErrInvalid, "color %q", c.Color.Rain)
	}
	return col, nil
}

// ColorMode resolves the configured mode, detecting from the environment for auto
func (c Config) ColorMode() (terminal.ColorMode, error) {
	mode, err := terminal.ParseColorMode(c.Color.Mode)
	if err != nil {
		return mode, errors.Wrap(ErrInvalid, err.Error())
	}
	return mode, nil
}

func invalid(format string, args ...any) error {
	return errors.Wrap(ErrInvalid, fmt.Sprintf(format, args...))
}
