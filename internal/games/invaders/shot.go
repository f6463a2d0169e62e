package invaders

import "github.com/vovakirdan/tui-invaders/internal/core"

// ShotKind determines a shot's direction of travel and where it leaves play.
type ShotKind int

const (
	ShotPlayer ShotKind = iota // travels up, dies at row 0
	ShotEnemy                  // travels down, dies at the last row
)

// String returns a human-readable name for the kind.
func (k ShotKind) String() string {
	switch k {
	case ShotPlayer:
		return "Player"
	case ShotEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Shot is a projectile one cell wide. It is drawn as a two-cell streak:
// the head at (x, y) and one cell ahead of it in the direction of travel.
type Shot struct {
	x, y   int
	kind   ShotKind
	fieldH int
}

// NewShot creates a shot at (x, y) inside a playfield fieldH rows tall.
func NewShot(x, y int, kind ShotKind, fieldH int) *Shot {
	return &Shot{x: x, y: y, kind: kind, fieldH: fieldH}
}

// Position returns the head cell of the shot.
func (s *Shot) Position() (x, y int) {
	return s.x, s.y
}

// Kind returns the shot kind.
func (s *Shot) Kind() ShotKind {
	return s.kind
}

// Translate moves the shot one row. A shot already on its edge row does
// not move and reports that it left play.
func (s *Shot) Translate() bool {
	switch s.kind {
	case ShotEnemy:
		if s.y >= s.fieldH-1 {
			return false
		}
		s.y++
	default:
		if s.y <= 0 {
			return false
		}
		s.y--
	}
	return true
}

// Draw paints the head and, unless the shot sits on its edge row, the
// second streak cell.
func (s *Shot) Draw(dst *core.Screen) {
	dst.Set(s.x, s.y, core.ColorWhite)

	switch s.kind {
	case ShotEnemy:
		if s.y < s.fieldH-1 {
			dst.Set(s.x, s.y+1, core.ColorWhite)
		}
	default:
		if s.y > 0 {
			dst.Set(s.x, s.y-1, core.ColorWhite)
		}
	}
}

// Footprint returns the rectangle covered by the streak.
func (s *Shot) Footprint() core.Rect {
	switch s.kind {
	case ShotEnemy:
		if s.y < s.fieldH-1 {
			return core.NewRect(s.x, s.y, 1, 2)
		}
	default:
		if s.y > 0 {
			return core.NewRect(s.x, s.y-1, 1, 2)
		}
	}
	return core.NewRect(s.x, s.y, 1, 1)
}

var (
	_ core.Drawable = (*Shot)(nil)
	_ core.Kinetic  = (*Shot)(nil)
)
