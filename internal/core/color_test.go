package core

import (
	"image/color"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		c        Color
		expected color.RGBA
	}{
		{ColorBlack, color.RGBA{0, 0, 0, 255}},
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{ColorRed, color.RGBA{255, 0, 0, 255}},
		{ColorGreen, color.RGBA{0, 255, 0, 255}},
		{ColorBlue, color.RGBA{0, 0, 255, 255}},
	}

	for _, tc := range tests {
		if got := tc.c.RGBA(); got != tc.expected {
			t.Errorf("%s.RGBA() = %v, expected %v", tc.c, got, tc.expected)
		}
	}
}

func TestPaletteIsClosed(t *testing.T) {
	if len(Palette) != 5 {
		t.Fatalf("Palette should hold exactly 5 colors, got %d", len(Palette))
	}
	for _, c := range Palette {
		if c.String() == "Unknown" {
			t.Errorf("Palette color %d has no name", c)
		}
	}
}

func TestCell(t *testing.T) {
	empty := EmptyCell()
	if !empty.IsEmpty() {
		t.Error("EmptyCell should be empty")
	}
	if _, ok := empty.Color(); ok {
		t.Error("EmptyCell should not report a color")
	}

	red := Filled(ColorRed)
	if red.IsEmpty() {
		t.Error("Filled cell should not be empty")
	}
	if c, ok := red.Color(); !ok || c != ColorRed {
		t.Errorf("Filled(ColorRed).Color() = (%s, %v), expected (Red, true)", c, ok)
	}

	// Black is a real color, distinct from background.
	if Filled(ColorBlack).IsEmpty() {
		t.Error("Filled(ColorBlack) should not be empty")
	}
}
