package invaders

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewPlayerPosition(t *testing.T) {
	p := NewPlayer(core.DefaultConfig(), newFakeClock().Now)

	x, y := p.Position()
	if x != 2 || y != 90 {
		t.Errorf("New player at (%d, %d), expected (2, 90)", x, y)
	}

	minX, maxX := p.Bounds()
	if minX != 2 || maxX != 133 {
		t.Errorf("Bounds() = [%d, %d], expected [2, 133]", minX, maxX)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	p := NewPlayer(core.DefaultConfig(), newFakeClock().Now)
	minX, maxX := p.Bounds()

	// Alternate long runs of left and right commands
	for round := 0; round < 4; round++ {
		for i := 0; i < 200; i++ {
			if round%2 == 0 {
				p.Right()
			} else {
				p.Left()
			}
			x, _ := p.Position()
			if x < minX || x > maxX {
				t.Fatalf("Player x=%d escaped [%d, %d]", x, minX, maxX)
			}
		}
	}
}

func TestPlayerLeftAtBound(t *testing.T) {
	p := NewPlayer(core.DefaultConfig(), newFakeClock().Now)

	for i := 0; i < 5; i++ {
		p.Left()
	}

	if x, _ := p.Position(); x != 2 {
		t.Errorf("Left at MIN_X should be a no-op, x=%d", x)
	}
}

func TestPlayerRightAtBound(t *testing.T) {
	p := NewPlayer(core.DefaultConfig(), newFakeClock().Now)

	for i := 0; i < 131; i++ {
		p.Right()
	}
	if x, _ := p.Position(); x != 133 {
		t.Fatalf("Expected player at MAX_X=133, got %d", x)
	}

	p.Right()
	if x, _ := p.Position(); x != 133 {
		t.Errorf("Right at MAX_X should be a no-op, x=%d", x)
	}
}

func TestPlayerShootCooldown(t *testing.T) {
	clock := newFakeClock()
	p := NewPlayer(core.DefaultConfig(), clock.Now)

	// Gun starts ready
	shot, ok := p.Shoot()
	if !ok {
		t.Fatal("First shot should be allowed")
	}
	if x, y := shot.Position(); x != 9 || y != 90 {
		t.Errorf("Shot at (%d, %d), expected (9, 90)", x, y)
	}
	if shot.Kind() != ShotPlayer {
		t.Errorf("Shot kind = %s, expected Player", shot.Kind())
	}

	// Within the cooldown
	clock.Advance(100 * time.Millisecond)
	if _, ok := p.Shoot(); ok {
		t.Error("Shot within the cooldown should be refused")
	}

	// Exactly at the cooldown is not "exceeds"
	clock.Advance(100 * time.Millisecond)
	if _, ok := p.Shoot(); ok {
		t.Error("Shot at exactly the cooldown should be refused")
	}

	clock.Advance(time.Millisecond)
	if _, ok := p.Shoot(); !ok {
		t.Error("Shot after the cooldown should be allowed")
	}

	// Refused attempts do not reset the clock; successful ones do
	clock.Advance(150 * time.Millisecond)
	if _, ok := p.Shoot(); ok {
		t.Error("Cooldown should restart from the last successful shot")
	}
}

func TestPlayerShootFollowsShip(t *testing.T) {
	clock := newFakeClock()
	p := NewPlayer(core.DefaultConfig(), clock.Now)

	for i := 0; i < 10; i++ {
		p.Right()
	}

	shot, ok := p.Shoot()
	if !ok {
		t.Fatal("Shot should be allowed")
	}
	if x, _ := shot.Position(); x != 19 {
		t.Errorf("Muzzle x = %d, expected 19", x)
	}
}

func TestPlayerDraw(t *testing.T) {
	cfg := core.DefaultConfig()
	s := core.NewScreen(cfg.Width, cfg.Height)
	p := NewPlayer(cfg, newFakeClock().Now)

	p.Draw(s)

	fp := p.Footprint()
	drawn := 0
	s.Each(func(x, y int, c core.Color) {
		drawn++
		if !fp.Contains(x, y) {
			t.Errorf("Player drew outside its footprint at (%d, %d)", x, y)
		}
		if c != core.ColorWhite {
			t.Errorf("Player cell (%d, %d) is %s, expected White", x, y, c)
		}
		if !p.sprite.On(x-fp.X, y-fp.Y) {
			t.Errorf("Player drew masked-off cell (%d, %d)", x, y)
		}
	})

	// 1 + 3 + 3 + 13 + 4*15
	if drawn != 80 {
		t.Errorf("Player drew %d cells, expected 80", drawn)
	}

	// Nose of the ship sits above the muzzle column
	if s.Get(9, 90).IsEmpty() {
		t.Error("Expected ship nose at (9, 90)")
	}
	if !s.Get(2, 90).IsEmpty() {
		t.Error("Top-left mask cell is off and should stay empty")
	}
}

func TestSpriteFromSchemaRagged(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Ragged schema should panic")
		}
	}()
	SpriteFromSchema([][]uint8{{1, 0}, {1}})
}
