package rain

import (
	"math/rand/v2"

	"github.com/lixenwraith/glyph-rain/constants"
)

// Column is one vertical stream of glyphs
type Column struct {
	X      float64 // Fixed horizontal position
	Y      float64 // Leading glyph position
	Speed  float64 // Logical px per ms
	Jitter float64 // Horizontal tremble amplitude
	Streak int     // Glyphs drawn including the leader
	Phase  float64 // Tremble oscillation phase
}

// randInt returns an integer in [lo, hi]
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// randTop returns a start position in [-height, 0]
func randTop(rng *rand.Rand, height float64) float64 {
	return float64(randInt(rng, -int(height), 0))
}

func newColumn(rng *rand.Rand, x, height float64) Column {
	return Column{
		X:      x,
		Y:      randTop(rng, height),
		Speed:  float64(randInt(rng, constants.SpeedMin, constants.SpeedMax)) / constants.SpeedDivisor,
		Jitter: rng.Float64() * constants.JitterMax,
		Streak: randInt(rng, constants.StreakMin, constants.StreakMax),
		Phase:  rng.Float64() * constants.PhaseMax,
	}
}

// recycle moves the column back above the viewport with fresh parameters
// Phase and X are kept
func (c *Column) recycle(rng *rand.Rand, height float64) {
	c.Y = randTop(rng, height)
	c.Speed = float64(randInt(rng, constants.SpeedMin, constants.SpeedMaxRecycle)) / constants.SpeedDivisor
	c.Streak = randInt(rng, constants.StreakMin, constants.StreakMaxRecycle)
	c.Jitter = rng.Float64() * constants.JitterMaxRecycle
}

// RecycleThreshold is the leading position past which the column recycles
func (c *Column) RecycleThreshold(height float64) float64 {
	return height + float64(c.Streak)*constants.TrailStep + constants.RecycleMargin
}

// Opacity returns the alpha of trailing position i in a streak of the given length
func Opacity(i, streak int) float64 {
	if streak <= 0 {
		return constants.MinGlyphAlpha
	}
	fade := 1 - float64(i)/float64(streak)
	intensity := constants.TailIntensity
	if i == 0 {
		intensity = constants.HeadIntensity
	}
	return min(1, max(constants.MinGlyphAlpha, fade*intensity))
}
