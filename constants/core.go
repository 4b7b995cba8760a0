package constants

import "time"

// Frame loop timing
const (
	// FrameUpdateInterval is the default frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFPS matches FrameUpdateInterval
	DefaultFPS = 60

	// MaxFPS bounds configured frame rate
	MaxFPS = 240
)

// Terminal cell metrics in logical pixels
// The default width equals one wide-font column, so each rain column owns one cell
const (
	DefaultCellWidth  = FontSizeWide * ColumnWidthRatio
	DefaultCellHeight = TrailStep
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "glyph-rain.log"
	MaxLogSize  = 10 * 1024 * 1024
)
