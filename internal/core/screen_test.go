package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(150, 100)

	if s.Width() != 150 {
		t.Errorf("Width() = %d, expected 150", s.Width())
	}
	if s.Height() != 100 {
		t.Errorf("Height() = %d, expected 100", s.Height())
	}

	// A new screen has nothing drawn
	if n := s.Filled(); n != 0 {
		t.Errorf("New screen should be empty, found %d drawn cells", n)
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 3, ColorRed)
	if c, ok := s.Get(5, 3).Color(); !ok || c != ColorRed {
		t.Errorf("Get(5, 3) = (%s, %v), expected (Red, true)", c, ok)
	}

	// Row/column are not swapped
	if !s.Get(3, 5).IsEmpty() {
		t.Error("Get(3, 5) should be empty")
	}

	// Last write wins, no blending
	s.Set(5, 3, ColorBlue)
	if c, _ := s.Get(5, 3).Color(); c != ColorBlue {
		t.Errorf("Overwrite should replace color, got %s", c)
	}
}

func TestScreenSetOutOfBoundsPanics(t *testing.T) {
	coords := [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 10}}

	for _, xy := range coords {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d, %d) should panic", xy[0], xy[1])
				}
			}()
			s := NewScreen(10, 10)
			s.Set(xy[0], xy[1], ColorWhite)
		}()
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, ColorWhite)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if !s.Get(x, y).IsEmpty() {
				t.Errorf("After Clear, expected empty cell at (%d, %d)", x, y)
			}
		}
	}
}

func TestScreenClearIdempotent(t *testing.T) {
	s := NewScreen(8, 4)
	s.Set(1, 1, ColorGreen)
	s.Set(7, 3, ColorWhite)

	s.Clear()
	once := s.String()
	s.Clear()
	twice := s.String()

	if once != twice {
		t.Errorf("Clear twice should equal Clear once:\n%s\nvs\n%s", once, twice)
	}
	if strings.ContainsAny(twice, "#g") {
		t.Error("Cleared screen should contain no drawn cells")
	}
}

func TestScreenEachRowMajor(t *testing.T) {
	s := NewScreen(4, 3)
	s.Set(3, 0, ColorRed)
	s.Set(0, 2, ColorBlue)
	s.Set(1, 0, ColorWhite)

	type hit struct {
		x, y int
		c    Color
	}
	var got []hit
	s.Each(func(x, y int, c Color) {
		got = append(got, hit{x, y, c})
	})

	expected := []hit{{1, 0, ColorWhite}, {3, 0, ColorRed}, {0, 2, ColorBlue}}
	if len(got) != len(expected) {
		t.Fatalf("Each visited %d cells, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Each[%d] = %+v, expected %+v", i, got[i], expected[i])
		}
	}
}

func TestScreenClone(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(2, 2, ColorWhite)

	c := s.Clone()
	s.Clear()

	if c.Get(2, 2).IsEmpty() {
		t.Error("Clone should not share cells with the original")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, ColorWhite)
	s.Set(2, 1, ColorRed)

	expected := "#..\n..r"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
