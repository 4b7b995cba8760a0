package rain

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/glyph-rain/constants"
	"github.com/lucasb-eyer/go-colorful"
)

var black = colorful.Color{}

// Metrics reports the layout computed by the last initialization
type Metrics struct {
	Width       float64
	Height      float64
	PixelRatio  float64
	FontSize    float64
	ColumnWidth float64
	Columns     int
}

// Renderer paints the glyph rain onto the host canvas
type Renderer struct {
	host   Host
	seed   SeedSource
	canvas Canvas
	rng    *rand.Rand
	logger *slog.Logger

	color     colorful.Color
	fadeAlpha float64

	metrics  Metrics
	columns  []Column
	pool     glyphPool
	lastTime time.Time

	mounted      bool
	pending      bool
	frameID      FrameID
	removeResize func()
}

// New creates an unmounted renderer
func New(host Host, seed SeedSource, opts ...Option) *Renderer {
	color, _ := colorful.Hex(constants.RainColorHex)
	r := &Renderer{
		host:      host,
		seed:      seed,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		logger:    slog.New(slog.DiscardHandler),
		color:     color,
		fadeAlpha: constants.FadeAlpha,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mount acquires the canvas, lays out columns, subscribes to resizes and starts the frame loop
// Without a canvas it does nothing
func (r *Renderer) Mount() {
	if r.mounted {
		return
	}
	canvas := r.host.Canvas()
	if canvas == nil {
		r.logger.Debug("rain: no canvas, rendering disabled")
		return
	}
	r.canvas = canvas
	r.mounted = true

	r.init()
	r.removeResize = r.host.OnResize(r.init)
	r.schedule()
}

// Unmount cancels the pending frame and removes the resize listener
func (r *Renderer) Unmount() {
	if !r.mounted {
		return
	}
	r.mounted = false

	if r.removeResize != nil {
		r.removeResize()
		r.removeResize = nil
	}
	if r.pending {
		r.host.CancelFrame(r.frameID)
		r.pending = false
	}
}

// Mounted reports whether the frame loop is active
func (r *Renderer) Mounted() bool {
	return r.mounted
}

// Metrics returns the current layout
func (r *Renderer) Metrics() Metrics {
	return r.metrics
}

// Columns returns a copy of the column state
func (r *Renderer) Columns() []Column {
	out := make([]Column, len(r.columns))
	copy(out, r.columns)
	return out
}

// init rebuilds surface and columns for the current viewport
func (r *Renderer) init() {
	vp := r.host.Viewport()
	w := max(vp.Width, 0)
	h := max(vp.Height, 0)

	dpr := vp.PixelRatio
	if math.IsNaN(dpr) || dpr < constants.MinPixelRatio {
		dpr = constants.MinPixelRatio
	}
	dpr = min(dpr, constants.MaxPixelRatio)

	r.canvas.Reset(int(math.Floor(w*dpr)), int(math.Floor(h*dpr)), dpr)

	fontSize := constants.FontSizeWide
	if w < constants.NarrowViewportWidth {
		fontSize = constants.FontSizeNarrow
	}
	columnWidth := fontSize * constants.ColumnWidthRatio
	count := ColumnCount(w, columnWidth)

	columns := make([]Column, count)
	for i := range columns {
		columns[i] = newColumn(r.rng, float64(i)*columnWidth, h)
	}

	r.columns = columns
	r.metrics = Metrics{
		Width:       w,
		Height:      h,
		PixelRatio:  dpr,
		FontSize:    fontSize,
		ColumnWidth: columnWidth,
		Columns:     count,
	}
	r.lastTime = r.host.Now()

	r.canvas.FillRect(0, 0, w, h, black, 1)

	r.logger.Debug("rain: layout",
		"width", w,
		"height", h,
		"dpr", dpr,
		"font_size", fontSize,
		"columns", count,
	)
}

// ColumnCount returns how many columns of the given pitch cover width
func ColumnCount(width, columnWidth float64) int {
	if width <= 0 || columnWidth <= 0 {
		return 0
	}
	return int(math.Ceil(width / columnWidth))
}

func (r *Renderer) schedule() {
	r.frameID = r.host.RequestFrame(r.frame)
	r.pending = true
}

func (r *Renderer) frame(now time.Time) {
	r.pending = false
	if !r.mounted {
		return
	}

	dt := float64(now.Sub(r.lastTime)) / float64(time.Millisecond)
	r.lastTime = now
	r.Step(dt)

	r.schedule()
}

// Step fades the surface and advances every column by dt milliseconds
// dt is clamped to [0, constants.MaxElapsedMs]
func (r *Renderer) Step(dt float64) {
	if r.canvas == nil {
		return
	}
	dt = ClampElapsed(dt)

	m := r.metrics
	r.canvas.FillRect(0, 0, m.Width, m.Height, black, r.fadeAlpha)

	var seed string
	if r.seed != nil {
		seed = r.seed.Text()
	}
	glyphs := r.pool.resolve(seed)

	for i := range r.columns {
		c := &r.columns[i]

		c.Phase += constants.PhaseRate * dt
		tremble := math.Sin(c.Phase) * c.Jitter

		for t := 0; t < c.Streak; t++ {
			y := c.Y - float64(t)*constants.TrailStep
			if y < -constants.TrailCutoff {
				break
			}
			ch := glyphs[r.rng.IntN(len(glyphs))]
			r.canvas.FillText(ch, c.X+tremble, y, r.color, Opacity(t, c.Streak))
		}

		c.Y += c.Speed * dt
		if c.Y > c.RecycleThreshold(m.Height) {
			c.recycle(r.rng, m.Height)
		}
	}
}

// ClampElapsed bounds a frame delta in milliseconds
func ClampElapsed(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return min(dt, constants.MaxElapsedMs)
}
