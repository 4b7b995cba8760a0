package config

import (
	"github.com/spf13/pflag"
)

// Flags binds command-line overrides for a Config
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string

	fps        int
	color      string
	colorMode  string
	pixelRatio float64
	preset     string
	seedFile   string
	debug      bool
}

// BindFlags registers all flags on fs with defaults shown from Default
func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", DefaultPath, "path to TOML config file")
	fs.IntVar(&f.fps, "fps", d.FPS, "frames per second (1-240)")
	fs.StringVar(&f.color, "color", d.Color.Rain, "rain colour as #rrggbb")
	fs.StringVar(&f.colorMode, "color-mode", d.Color.Mode, "terminal colour mode: auto, truecolor or 256")
	fs.Float64Var(&f.pixelRatio, "pixel-ratio", d.PixelRatio, "device pixel ratio, clamped to 1-2 by the renderer")
	fs.StringVarP(&f.preset, "preset", "p", d.Seed.Preset, "initial seed preset: python, java, cpp or user")
	fs.StringVarP(&f.seedFile, "seed-file", "s", d.Seed.File, "scratch file watched for the user preset")
	fs.BoolVarP(&f.debug, "debug", "d", d.Debug, "write debug log to logs/")
	return f
}

// Apply copies explicitly set flags over cfg
func (f *Flags) Apply(cfg *Config) {
	if f.fs.Changed("fps") {
		cfg.FPS = f.fps
	}
	if f.fs.Changed("color") {
		cfg.Color.Rain = f.color
	}
	if f.fs.Changed("color-mode") {
		cfg.Color.Mode = f.colorMode
	}
	if f.fs.Changed("pixel-ratio") {
		cfg.PixelRatio = f.pixelRatio
	}
	if f.fs.Changed("preset") {
		cfg.Seed.Preset = f.preset
	}
	if f.fs.Changed("seed-file") {
		cfg.Seed.File = f.seedFile
	}
	if f.fs.Changed("debug") {
		cfg.Debug = f.debug
	}
}

// Resolve loads the configured file, applies flag overrides and validates the result
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
