package core

import "image/color"

// Color is one entry of the fixed five-color palette.
type Color uint8

// Palette entries. No other colors exist.
const (
	ColorBlack Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
)

// Palette lists every color in declaration order.
var Palette = []Color{ColorBlack, ColorWhite, ColorRed, ColorGreen, ColorBlue}

// RGBA returns the opaque pixel value for the color.
func (c Color) RGBA() color.RGBA {
	switch c {
	case ColorWhite:
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case ColorRed:
		return color.RGBA{R: 0xff, A: 0xff}
	case ColorGreen:
		return color.RGBA{G: 0xff, A: 0xff}
	case ColorBlue:
		return color.RGBA{B: 0xff, A: 0xff}
	default:
		return color.RGBA{A: 0xff}
	}
}

// String returns the palette name of the color.
func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "Black"
	case ColorWhite:
		return "White"
	case ColorRed:
		return "Red"
	case ColorGreen:
		return "Green"
	case ColorBlue:
		return "Blue"
	default:
		return "Unknown"
	}
}

// Cell is one addressable unit of the screen: either empty or holding
// exactly one palette color.
type Cell struct {
	color  Color
	filled bool
}

// EmptyCell returns a background cell.
func EmptyCell() Cell {
	return Cell{}
}

// Filled returns a cell drawn with c.
func Filled(c Color) Cell {
	return Cell{color: c, filled: true}
}

// Color returns the cell color and whether the cell is drawn at all.
func (c Cell) Color() (Color, bool) {
	return c.color, c.filled
}

// IsEmpty reports whether nothing was drawn into the cell.
func (c Cell) IsEmpty() bool {
	return !c.filled
}
