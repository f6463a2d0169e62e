package core

import (
	"fmt"
	"strings"
)

// Screen is a fixed-size grid of cells holding one frame's contents.
// It decouples entity drawing from presentation: entities paint cells,
// and a render sink converts the grid to whatever the display needs.
// Coordinates are (x, y) = (column, row) with row 0 at the top.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new, empty screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("core: invalid screen size %dx%d", width, height))
	}
	s := &Screen{
		width:  width,
		height: height,
	}
	s.cells = make([][]Cell, height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, width)
	}
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// InBounds reports whether (x, y) addresses a cell of this screen.
func (s *Screen) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Clear empties every cell.
func (s *Screen) Clear() {
	for y := range s.cells {
		clear(s.cells[y])
	}
}

// Set paints the cell at (x, y) with c. A later write to the same cell
// replaces the earlier one.
// Writing outside the screen is a programming error and panics.
func (s *Screen) Set(x, y int, c Color) {
	s.mustContain(x, y)
	s.cells[y][x] = Filled(c)
}

// Get returns the cell at (x, y). Panics outside the screen.
func (s *Screen) Get(x, y int) Cell {
	s.mustContain(x, y)
	return s.cells[y][x]
}

// Each calls fn for every drawn cell in row-major order. Empty cells are skipped.
func (s *Screen) Each(fn func(x, y int, c Color)) {
	for y, row := range s.cells {
		for x, cell := range row {
			if c, ok := cell.Color(); ok {
				fn(x, y, c)
			}
		}
	}
}

// Filled returns the number of drawn cells.
func (s *Screen) Filled() int {
	n := 0
	s.Each(func(int, int, Color) { n++ })
	return n
}

// Clone returns an independent copy of the screen.
func (s *Screen) Clone() *Screen {
	c := NewScreen(s.width, s.height)
	for y := range s.cells {
		copy(c.cells[y], s.cells[y])
	}
	return c
}

func (s *Screen) mustContain(x, y int) {
	if !s.InBounds(x, y) {
		panic(fmt.Sprintf("core: cell (%d, %d) outside %dx%d screen", x, y, s.width, s.height))
	}
}

// cellRunes is the debug representation used by String.
var cellRunes = map[Color]rune{
	ColorBlack: 'k',
	ColorWhite: '#',
	ColorRed:   'r',
	ColorGreen: 'g',
	ColorBlue:  'b',
}

// String dumps the buffer as text, one line per row, '.' for empty cells.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y, row := range s.cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, cell := range row {
			c, ok := cell.Color()
			if !ok {
				sb.WriteRune('.')
				continue
			}
			sb.WriteRune(cellRunes[c])
		}
	}
	return sb.String()
}
