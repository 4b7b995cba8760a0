package terminal

import (
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Cell represents a single terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Terminal provides screen access for the renderer host
type Terminal interface {
	// Init enters the alternate screen and hides the cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions in cells
	Size() (width, height int)

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x], clipped to the screen
	Flush(cells []Cell, width, height int)

	// Sync forces full redraw
	Sync()

	// PollEvent blocks until next input event, EventClosed after Fini
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event) error
}

// tcellTerm implements Terminal on top of a tcell screen
type tcellTerm struct {
	screen    tcell.Screen
	colorMode ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal for the controlling tty
func New(colorMode ColorMode) (Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return NewWithScreen(screen, colorMode), nil
}

// NewWithScreen wraps an existing screen, e.g. tcell.NewSimulationScreen in tests
func NewWithScreen(screen tcell.Screen, colorMode ColorMode) Terminal {
	return &tcellTerm{
		screen:    screen,
		colorMode: colorMode,
	}
}

func (t *tcellTerm) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	t.screen.HideCursor()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.Clear()
	t.initialized = true
	return nil
}

func (t *tcellTerm) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.finalized = true
	t.screen.Fini()
}

func (t *tcellTerm) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerm) ColorMode() ColorMode {
	return t.colorMode
}

func (t *tcellTerm) color(c RGB) tcell.Color {
	if t.colorMode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}

func (t *tcellTerm) Flush(cells []Cell, width, height int) {
	sw, sh := t.screen.Size()
	w := min(width, sw)
	h := min(height, sh)

	for y := 0; y < h; y++ {
		row := y * width
		for x := 0; x < w; x++ {
			c := cells[row+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(t.color(c.Fg)).Background(t.color(c.Bg))
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	t.screen.Show()
}

func (t *tcellTerm) Sync() {
	t.screen.Sync()
}

func (t *tcellTerm) PollEvent() Event {
	return translate(t.screen.PollEvent())
}

func (t *tcellTerm) PostEvent(ev Event) error {
	return t.screen.PostEvent(toTcell(ev))
}

// EmergencyReset restores a usable terminal after a crash, writing directly to w
// Used when the screen cannot be trusted to finalize itself
func EmergencyReset(w io.Writer) {
	w.Write([]byte("\x1b[?25h"))   // cursor show
	w.Write([]byte("\x1b[?1049l")) // leave alt screen
	w.Write([]byte("\x1b[0m"))     // reset attributes
	w.Write([]byte("\x1b[?7h"))    // autowrap on

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	resetTerminalMode()
}
