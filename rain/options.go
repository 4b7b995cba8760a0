package rain

import (
	"log/slog"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Option configures a Renderer
type Option func(*Renderer)

// WithColor sets the glyph color
func WithColor(c colorful.Color) Option {
	return func(r *Renderer) { r.color = c }
}

// WithFadeAlpha sets the per-frame overlay alpha; values outside (0, 1] are ignored
func WithFadeAlpha(alpha float64) Option {
	return func(r *Renderer) {
		if alpha > 0 && alpha <= 1 {
			r.fadeAlpha = alpha
		}
	}
}

// WithRand sets the random source, allowing deterministic runs
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithLogger sets the logger used for lifecycle debug output
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
