package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/glyph-rain/constants"
	"github.com/lixenwraith/glyph-rain/terminal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyph-rain.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("missing file changed defaults: %+v", cfg)
	}

	cfg, err = Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
fps = 30
pixel_ratio = 2

[color]
rain = "#ff00ff"
mode = "256"

[seed]
preset = "java"
file = "notes.txt"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != 30 || cfg.PixelRatio != 2 {
		t.Errorf("fps/pixel_ratio = %d/%v", cfg.FPS, cfg.PixelRatio)
	}
	if cfg.Color.Rain != "#ff00ff" || cfg.Color.Mode != "256" {
		t.Errorf("color = %+v", cfg.Color)
	}
	if cfg.Color.FadeAlpha != constants.FadeAlpha {
		t.Errorf("unset fade_alpha = %v, want default", cfg.Color.FadeAlpha)
	}
	if cfg.Seed.Preset != "java" || cfg.Seed.File != "notes.txt" {
		t.Errorf("seed = %+v", cfg.Seed)
	}
	if cfg.Cell.Width != constants.DefaultCellWidth {
		t.Errorf("unset cell width = %v", cfg.Cell.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "fps = = 3", "line 1"},
		{"unknown key", "speed = 3", "parse config"},
		{"wrong type", `fps = "fast"`, "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps zero", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = 241 }},
		{"pixel ratio zero", func(c *Config) { c.PixelRatio = 0 }},
		{"cell width", func(c *Config) { c.Cell.Width = -1 }},
		{"cell height", func(c *Config) { c.Cell.Height = 0 }},
		{"fade zero", func(c *Config) { c.Color.FadeAlpha = 0 }},
		{"fade above one", func(c *Config) { c.Color.FadeAlpha = 1.5 }},
		{"bad color", func(c *Config) { c.Color.Rain = "green" }},
		{"bad mode", func(c *Config) { c.Color.Mode = "16" }},
		{"bad preset", func(c *Config) { c.Seed.Preset = "rust" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	cfg := Default()
	cfg.FPS = constants.MaxFPS
	cfg.Color.FadeAlpha = 1
	cfg.Seed.Preset = "user"
	if err := cfg.Validate(); err != nil {
		t.Errorf("boundary config rejected: %v", err)
	}
}

func TestAccessors(t *testing.T) {
	cfg := Default()
	col, err := cfg.RainColor()
	if err != nil {
		t.Fatalf("RainColor: %v", err)
	}
	if r, g, b := col.RGB255(); r != 0x36 || g != 0xff || b != 0x7f {
		t.Errorf("RainColor = %d,%d,%d", r, g, b)
	}

	cfg.Color.Mode = "truecolor"
	if mode, err := cfg.ColorMode(); err != nil || mode != terminal.ColorModeTrueColor {
		t.Errorf("ColorMode = %v, %v", mode, err)
	}
	cfg.Color.Mode = "mono"
	if _, err := cfg.ColorMode(); !errors.Is(err, ErrInvalid) {
		t.Errorf("ColorMode(mono) = %v, want ErrInvalid", err)
	}
	cfg.Color.Rain = "#zzz"
	if _, err := cfg.RainColor(); !errors.Is(err, ErrInvalid) {
		t.Errorf("RainColor(#zzz) = %v, want ErrInvalid", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed.File = "scratch.txt"
	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got Config
	if err := Decode(data, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	path := writeConfig(t, "fps = 30\n[seed]\npreset = \"cpp\"\n")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--config", path, "--color-mode", "256", "-p", "user"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := flags.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("fps = %d, unset flag overrode file value", cfg.FPS)
	}
	if cfg.Seed.Preset != "user" {
		t.Errorf("preset = %q, want user", cfg.Seed.Preset)
	}
	if cfg.Color.Mode != "256" {
		t.Errorf("color mode = %q, want 256", cfg.Color.Mode)
	}
}

func TestFlagsValidation(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	args := []string{"--config", filepath.Join(t.TempDir(), "none.toml"), "--fps", "500"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if _, err := flags.Resolve(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Resolve = %v, want ErrInvalid", err)
	}
}

func TestAllFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	args := []string{
		"--fps", "24", "--color", "#00ff00", "--pixel-ratio", "1.5",
		"--seed-file", "x.txt", "--debug",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	flags.Apply(&cfg)
	if cfg.FPS != 24 || cfg.Color.Rain != "#00ff00" || cfg.PixelRatio != 1.5 ||
		cfg.Seed.File != "x.txt" || !cfg.Debug {
		t.Errorf("flags not applied: %+v", cfg)
	}
}
