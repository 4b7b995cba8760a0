package render

import (
	"math"

	"github.com/lixenwraith/glyph-rain/terminal"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// fadeEpsilon is the channel distance at which a fading glyph is considered gone
// Truncating blends stall within ~1/alpha of the target, so exact convergence never happens
const fadeEpsilon = 6

// CellCanvas is a drawing surface in logical pixels backed by a terminal cell grid
// Each cell covers cellWidth x cellHeight logical pixels; the device scale only sizes the grid
type CellCanvas struct {
	cells      []terminal.Cell
	cols, rows int

	cellWidth  float64
	cellHeight float64
	scale      float64
}

// NewCellCanvas creates an empty canvas with cell metrics in logical pixels
func NewCellCanvas(cellWidth, cellHeight float64) *CellCanvas {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return &CellCanvas{
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		scale:      1,
	}
}

// Reset sizes the grid to cover deviceWidth x deviceHeight device pixels at the given scale
// Reallocates only if capacity insufficient; contents are cleared
func (c *CellCanvas) Reset(deviceWidth, deviceHeight int, scale float64) {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	c.scale = scale

	cols := cellSpan(deviceWidth, c.cellWidth*scale)
	rows := cellSpan(deviceHeight, c.cellHeight*scale)

	size := cols * rows
	if cap(c.cells) < size {
		c.cells = make([]terminal.Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.cols = cols
	c.rows = rows
	c.clear()
}

// cellSpan returns how many cells of the given device size cover n device pixels
// The quotient is rounded to micro-cell precision first, so a float product such as
// 50*16.4 landing a hair above 820 does not grow the grid by a column
func cellSpan(n int, cell float64) int {
	q := float64(max(n, 0)) / cell
	return int(math.Ceil(math.Round(q*1e6) / 1e6))
}

// clear resets all cells to empty black using exponential copy
func (c *CellCanvas) clear() {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = terminal.Cell{}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

// Size returns grid dimensions in cells
func (c *CellCanvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Scale returns the device pixel ratio set by the last Reset
func (c *CellCanvas) Scale() float64 {
	return c.scale
}

// At returns the cell at grid position, zero Cell when out of bounds
func (c *CellCanvas) At(col, row int) terminal.Cell {
	if !c.inBounds(col, row) {
		return terminal.Cell{}
	}
	return c.cells[row*c.cols+col]
}

func (c *CellCanvas) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// FillRect alpha-blends color over every cell the rectangle touches
// Glyphs whose foreground reaches the fill color are removed
func (c *CellCanvas) FillRect(x, y, w, h float64, color colorful.Color, alpha float64) {
	if alpha <= 0 || w <= 0 || h <= 0 {
		return
	}
	col0 := max(int(math.Floor(x/c.cellWidth)), 0)
	row0 := max(int(math.Floor(y/c.cellHeight)), 0)
	col1 := min(int(math.Ceil((x+w)/c.cellWidth)), c.cols)
	row1 := min(int(math.Ceil((y+h)/c.cellHeight)), c.rows)

	fill := FromColorful(color)
	for row := row0; row < row1; row++ {
		base := row * c.cols
		for col := col0; col < col1; col++ {
			dst := &c.cells[base+col]
			dst.Bg = Blend(dst.Bg, fill, alpha)
			dst.Fg = Blend(dst.Fg, fill, alpha)
			if alpha >= 1 || channelDistance(dst.Fg, fill) <= fadeEpsilon {
				dst.Rune = 0
				dst.Fg = fill
			}
		}
	}
}

// FillText paints a glyph into the cell nearest its top-left corner
// Zero-width runes are dropped, as are wide runes that would overflow the last column
func (c *CellCanvas) FillText(ch rune, x, y float64, color colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	col := int(math.Round(x / c.cellWidth))
	row := int(math.Round(y / c.cellHeight))
	if !c.inBounds(col, row) {
		return
	}

	switch runewidth.RuneWidth(ch) {
	case 0:
		return
	case 2:
		if col == c.cols-1 {
			return
		}
	}

	dst := &c.cells[row*c.cols+col]
	dst.Rune = ch
	dst.Fg = Blend(dst.Fg, FromColorful(color), alpha)
}

// Flush writes the grid to the terminal
func (c *CellCanvas) Flush(term terminal.Terminal) {
	term.Flush(c.cells, c.cols, c.rows)
}
