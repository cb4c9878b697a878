package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in sub-pixels, Width*2 by Height*4.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight are the sub-pixel extents.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y); y grows downward. Out of range is a no-op.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a Bresenham line.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Column fills sub-pixel column x from the bottom edge up to fraction of the
// height.
func (c *Canvas) Column(x int, fraction float64) {
	h := c.PixelHeight()
	top := h - int(fraction*float64(h)+0.5)
	for y := max(top, 0); y < h; y++ {
		c.Set(x, y)
	}
}

// Trace plots values against a fixed span of n slots with lo..hi mapped to
// the canvas height, so a growing series fills the canvas left to right.
func (c *Canvas) Trace(values []float64, n int, lo, hi float64) {
	if len(values) == 0 || n < 2 {
		return
	}
	if hi <= lo {
		hi = lo + 1
	}
	w, h := c.PixelWidth()-1, c.PixelHeight()-1
	px := func(i int, v float64) (int, int) {
		x := i * w / (n - 1)
		y := h - int((v-lo)/(hi-lo)*float64(h)+0.5)
		return x, y
	}
	x0, y0 := px(0, values[0])
	c.Set(x0, y0)
	for i := 1; i < len(values) && i < n; i++ {
		x1, y1 := px(i, values[i])
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
