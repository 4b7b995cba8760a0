package rain

import (
	"strings"
	"unicode"

	"github.com/lixenwraith/glyph-rain/constants"
)

var fallbackGlyphs = []rune(constants.FallbackAlphabet)

// Glyphs returns the character pool for a seed: the seed without whitespace when
// that is longer than constants.SeedMinLength runes, the fallback alphabet otherwise
func Glyphs(seed string) []rune {
	stripped := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, seed))

	if len(stripped) > constants.SeedMinLength {
		return stripped
	}
	return fallbackGlyphs
}

// glyphPool caches Glyphs for the last seen seed
type glyphPool struct {
	seed   string
	glyphs []rune
}

func (p *glyphPool) resolve(seed string) []rune {
	if p.glyphs != nil && seed == p.seed {
		return p.glyphs
	}
	p.seed = seed
	p.glyphs = Glyphs(seed)
	return p.glyphs
}
