package constants

// Glyph rain geometry, in logical pixels
const (
	// FontSizeNarrow applies below NarrowViewportWidth
	FontSizeNarrow = 14.0

	// FontSizeWide applies at or above NarrowViewportWidth
	FontSizeWide = 16.0

	// NarrowViewportWidth is the font size breakpoint
	NarrowViewportWidth = 720.0

	// ColumnWidthRatio scales font size to column pitch
	ColumnWidthRatio = 0.82

	// TrailStep is the vertical distance between glyphs of one streak
	TrailStep = 18.0

	// TrailCutoff stops a streak once a glyph is this far above the top edge
	TrailCutoff = 40.0

	// RecycleMargin is added below the streak tail before a column recycles
	RecycleMargin = 20.0
)

// Glyph rain timing
const (
	// MaxElapsedMs caps the per-frame advance after stalls
	MaxElapsedMs = 50.0

	// PhaseRate is the oscillation phase advance per millisecond
	PhaseRate = 0.015

	// SpeedDivisor converts the integer speed draw to px/ms
	SpeedDivisor = 60.0
)

// Column parameter ranges. Init uses the narrow set, recycling the wider one
const (
	SpeedMin        = 40
	SpeedMax        = 120
	SpeedMaxRecycle = 150

	StreakMin        = 10
	StreakMax        = 40
	StreakMaxRecycle = 44

	JitterMax        = 1.5
	JitterMaxRecycle = 2.2

	PhaseMax = 1000.0
)

// Glyph rain appearance
const (
	// FadeAlpha is the per-frame black overlay producing trails
	FadeAlpha = 0.18

	// HeadIntensity multiplies the leading glyph opacity
	HeadIntensity = 1.0

	// TailIntensity multiplies every trailing glyph opacity
	TailIntensity = 0.65

	// MinGlyphAlpha keeps the faintest glyph visible
	MinGlyphAlpha = 0.04

	// RainColorHex is the default glyph color
	RainColorHex = "#36ff7f"

	// SeedMinLength is the stripped seed length at or below which the fallback alphabet is used
	SeedMinLength = 20

	// FallbackAlphabet feeds the rain when no usable seed text is present
	FallbackAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789$+-*/=%\"'#+&^@!?~[]{}()<>|\\"
)

// Pixel ratio clamp
const (
	MinPixelRatio = 1.0
	MaxPixelRatio = 2.0
)
