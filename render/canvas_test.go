package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/glyph-rain/terminal"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	green = colorful.Color{R: 0, G: 1, B: 0}
	black = colorful.Color{}
)

func TestCellCanvasFractionalScaleKeepsGrid(t *testing.T) {
	const cellW, cellH = 13.12, 18.0
	for _, scale := range []float64{1, 1.25, 1.5, 1.75, 2} {
		for cols := 1; cols <= 300; cols++ {
			rows := 7
			devW := int(math.Floor(float64(cols) * cellW * scale))
			devH := int(math.Floor(float64(rows) * cellH * scale))

			c := NewCellCanvas(cellW, cellH)
			c.Reset(devW, devH, scale)
			if gotC, gotR := c.Size(); gotC != cols || gotR != rows {
				t.Fatalf("scale %v cols %d: grid %dx%d, want %dx%d", scale, cols, gotC, gotR, cols, rows)
			}
		}
	}
}

func TestCellCanvasReset(t *testing.T) {
	tests := []struct {
		name             string
		w, h             int
		scale            float64
		wantCols, wantRs int
	}{
		{"exact", 100, 100, 1, 10, 5},
		{"scaled grid is unchanged", 200, 200, 2, 10, 5},
		{"partial cells round up", 105, 21, 1, 11, 2},
		{"zero height", 100, 0, 1, 10, 0},
		{"invalid scale treated as one", 100, 100, 0, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCellCanvas(10, 20)
			c.Reset(tt.w, tt.h, tt.scale)
			cols, rows := c.Size()
			if cols != tt.wantCols || rows != tt.wantRs {
				t.Errorf("size %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRs)
			}
		})
	}
}

func TestCellCanvasResetClears(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)
	c.FillText('a', 0, 0, green, 1)

	// Shrinking reuses capacity but must not leak old contents
	c.Reset(50, 40, 1)
	if cell := c.At(0, 0); cell.Rune != 0 {
		t.Errorf("cell survived reset: %+v", cell)
	}
}

func TestFillTextPlacement(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)

	c.FillText('x', 31, 38, green, 1)
	cell := c.At(3, 2)
	if cell.Rune != 'x' {
		t.Fatalf("glyph not at (3,2): %+v", cell)
	}
	if cell.Fg != (RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("fg %v, want pure green", cell.Fg)
	}

	// Tremble left of column zero still lands in column zero
	c.FillText('y', -2.2, 0, green, 1)
	if c.At(0, 0).Rune != 'y' {
		t.Errorf("trembling glyph dropped: %+v", c.At(0, 0))
	}

	// Partial alpha blends over black
	c.FillText('z', 50, 60, green, 0.5)
	if fg := c.At(5, 3).Fg; fg.G != 127 {
		t.Errorf("half-alpha fg %v, want G=127", fg)
	}
}

func TestFillTextRejects(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)

	tests := []struct {
		name string
		ch   rune
		x, y float64
		col  int
		row  int
	}{
		{"above top", 'a', 10, -40, 1, 0},
		{"beyond right", 'a', 200, 0, 9, 0},
		{"combining mark", '\u0301', 10, 0, 1, 0},
		{"wide rune in last column", '\u754c', 90, 0, 9, 0},
		{"zero alpha", 'a', 10, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha := 1.0
			if tt.name == "zero alpha" {
				alpha = 0
			}
			c.FillText(tt.ch, tt.x, tt.y, green, alpha)
			if cell := c.At(tt.col, tt.row); cell.Rune != 0 {
				t.Errorf("cell (%d,%d) written: %+v", tt.col, tt.row, cell)
			}
		})
	}

	c.FillText('界', 0, 0, green, 1)
	if c.At(0, 0).Rune != '界' {
		t.Error("wide rune rejected away from the edge")
	}
}

func TestFillRectOpaqueClears(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)
	c.FillText('a', 0, 0, green, 1)
	c.FillText('b', 90, 80, green, 1)

	c.FillRect(0, 0, 100, 100, black, 1)

	cols, rows := c.Size()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if cell := c.At(col, row); cell != (terminal.Cell{}) {
				t.Fatalf("cell (%d,%d) not black: %+v", col, row, cell)
			}
		}
	}
}

func TestFillRectFadesGlyphsOut(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)
	c.FillText('a', 0, 0, green, 1)

	c.FillRect(0, 0, 100, 100, black, 0.18)
	cell := c.At(0, 0)
	if cell.Rune != 'a' {
		t.Fatal("glyph vanished after a single fade")
	}
	if cell.Fg.G >= 255 || cell.Fg.G < 200 {
		t.Errorf("faded fg %v, want G in [200, 255)", cell.Fg)
	}

	frames := 1
	for ; frames < 100 && c.At(0, 0).Rune != 0; frames++ {
		c.FillRect(0, 0, 100, 100, black, 0.18)
	}
	if c.At(0, 0).Rune != 0 {
		t.Fatal("glyph never faded out")
	}
	if frames < 5 {
		t.Errorf("glyph faded out after %d frames, expected a visible trail", frames)
	}
}

func TestFillRectPartialArea(t *testing.T) {
	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)
	c.FillText('a', 0, 0, green, 1)
	c.FillText('b', 50, 40, green, 1)

	c.FillRect(40, 40, 20, 20, black, 1)

	if c.At(0, 0).Rune != 'a' {
		t.Error("cell outside rect cleared")
	}
	if c.At(5, 2).Rune != 0 {
		t.Error("cell inside rect kept its glyph")
	}
}

func TestCellCanvasFlush(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := terminal.NewWithScreen(screen, terminal.ColorModeTrueColor)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Fini()
	screen.SetSize(10, 5)

	c := NewCellCanvas(10, 20)
	c.Reset(100, 100, 1)
	c.FillText('q', 20, 20, green, 1)
	c.Flush(term)

	contents, w, _ := screen.GetContents()
	if cell := contents[1*w+2]; len(cell.Runes) == 0 || cell.Runes[0] != 'q' {
		t.Errorf("flushed cell = %q, want 'q'", cell.Runes)
	}
}
