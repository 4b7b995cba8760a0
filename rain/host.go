package rain

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is the drawing surface owned by the renderer
// Coordinates passed to FillRect and FillText are logical pixels
type Canvas interface {
	// Reset resizes the backing store to device pixels and sets the logical-to-device scale
	Reset(deviceWidth, deviceHeight int, scale float64)

	// FillRect alpha-blends c over the rectangle
	FillRect(x, y, w, h float64, c colorful.Color, alpha float64)

	// FillText paints one glyph with its top-left corner at (x, y)
	FillText(ch rune, x, y float64, c colorful.Color, alpha float64)
}

// Viewport describes the host display area in logical pixels
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// FrameID identifies a pending frame request
type FrameID uint64

// Host supplies the environment facilities the renderer consumes
type Host interface {
	// Viewport returns current dimensions
	Viewport() Viewport

	// Canvas returns the drawing surface, nil if none can be acquired
	Canvas() Canvas

	// Now returns monotonic time
	Now() time.Time

	// RequestFrame schedules fn once for the next display refresh
	RequestFrame(fn func(now time.Time)) FrameID

	// CancelFrame drops a pending request; unknown IDs are ignored
	CancelFrame(id FrameID)

	// OnResize subscribes fn to viewport changes and returns its removal
	OnResize(fn func()) (remove func())
}

// SeedSource provides the text currently on display
type SeedSource interface {
	Text() string
}

// StaticSeed is a fixed SeedSource
type StaticSeed string

// Text returns the seed itself
func (s StaticSeed) Text() string { return string(s) }
