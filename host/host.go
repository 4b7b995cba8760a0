// Package host adapts a terminal and frame loop into the environment the rain renderer draws in
package host

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/glyph-rain/engine"
	"github.com/lixenwraith/glyph-rain/rain"
	"github.com/lixenwraith/glyph-rain/render"
	"github.com/lixenwraith/glyph-rain/status"
	"github.com/lixenwraith/glyph-rain/terminal"
)

// Metrics maps terminal cells to logical pixels
type Metrics struct {
	CellWidth  float64
	CellHeight float64
	PixelRatio float64
}

// TerminalHost implements rain.Host on top of a terminal and a loop
// All methods except HandleResize are expected on the loop goroutine
type TerminalHost struct {
	term    terminal.Terminal
	loop    *engine.Loop
	canvas  *render.CellCanvas
	metrics Metrics

	statFlushes *atomic.Int64
	statResizes *atomic.Int64
}

var _ rain.Host = (*TerminalHost)(nil)

// New wires a host and installs the canvas flush as the loop's after-frame hook
func New(term terminal.Terminal, loop *engine.Loop, m Metrics) *TerminalHost {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		m.CellWidth, m.CellHeight = 1, 1
	}
	if m.PixelRatio <= 0 {
		m.PixelRatio = 1
	}
	h := &TerminalHost{
		term:    term,
		loop:    loop,
		canvas:  render.NewCellCanvas(m.CellWidth, m.CellHeight),
		metrics: m,
	}
	h.SetStats(status.NewRegistry())
	loop.SetAfterFrame(h.Flush)
	return h
}

// SetStats redirects flush and resize counters to reg
func (h *TerminalHost) SetStats(reg *status.Registry) {
	h.statFlushes = reg.Ints.Get("host.flushes")
	h.statResizes = reg.Ints.Get("host.resizes")
}

// Viewport reports the terminal grid in logical pixels
func (h *TerminalHost) Viewport() rain.Viewport {
	cols, rows := h.term.Size()
	return rain.Viewport{
		Width:      float64(cols) * h.metrics.CellWidth,
		Height:     float64(rows) * h.metrics.CellHeight,
		PixelRatio: h.metrics.PixelRatio,
	}
}

// Canvas returns the cell canvas
func (h *TerminalHost) Canvas() rain.Canvas {
	if h.canvas == nil {
		return nil
	}
	return h.canvas
}

// CellCanvas exposes the concrete canvas for inspection
func (h *TerminalHost) CellCanvas() *render.CellCanvas {
	return h.canvas
}

// Now returns loop clock time, frozen while paused
func (h *TerminalHost) Now() time.Time {
	return h.loop.Clock().Now()
}

// RequestFrame schedules fn on the next loop step
func (h *TerminalHost) RequestFrame(fn func(now time.Time)) rain.FrameID {
	return rain.FrameID(h.loop.RequestFrame(fn))
}

// CancelFrame drops a pending request
func (h *TerminalHost) CancelFrame(id rain.FrameID) {
	h.loop.CancelFrame(engine.FrameID(id))
}

// OnResize subscribes fn to terminal size changes
func (h *TerminalHost) OnResize(fn func()) (remove func()) {
	return h.loop.OnResize(fn)
}

// HandleResize resyncs the terminal and queues resize listeners for the next step
func (h *TerminalHost) HandleResize() {
	h.term.Sync()
	h.statResizes.Add(1)
	h.loop.NotifyResize()
}

// Flush pushes the canvas to the terminal
func (h *TerminalHost) Flush() {
	h.canvas.Flush(h.term)
	h.statFlushes.Add(1)
}
