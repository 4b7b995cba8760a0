package terminal

import (
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// xtermPalette holds the portable 256-color entries: the 6x6x6 cube and gray ramp
// Indices 0-15 are skipped since terminals theme them freely
var xtermPalette = func() []tcell.Color {
	p := make([]tcell.Color, 0, 240)
	for i := 16; i < 256; i++ {
		p = append(p, tcell.PaletteColor(i))
	}
	return p
}()

// paletteCacheLimit bounds the nearest-match cache; fading trails produce many distinct shades
const paletteCacheLimit = 4096

var (
	paletteMu    sync.Mutex
	paletteCache = make(map[RGB]uint8)
)

// RGBTo256 returns the xterm-256 index nearest to c as chosen by tcell.FindColor
func RGBTo256(c RGB) uint8 {
	paletteMu.Lock()
	defer paletteMu.Unlock()

	if idx, ok := paletteCache[c]; ok {
		return idx
	}
	found := tcell.FindColor(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), xtermPalette)
	idx := uint8(found &^ tcell.ColorValid)

	if len(paletteCache) >= paletteCacheLimit {
		clear(paletteCache)
	}
	paletteCache[c] = idx
	return idx
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// ParseColorMode resolves a flag value; "auto" and "" fall back to detection
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, errors.Errorf("unknown color mode %q", s)
}
