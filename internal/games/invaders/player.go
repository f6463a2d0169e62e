package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Player is the ship at the bottom of the playfield. Its position is the
// top-left corner of the sprite.
type Player struct {
	x, y       int
	minX, maxX int
	sprite     Sprite
	fieldH     int

	cooldown time.Duration
	lastShot time.Time
	fired    bool // false until the first shot, so the gun starts ready
	now      func() time.Time
}

// NewPlayer places the ship at the left bound, resting margin cells above
// the bottom edge.
func NewPlayer(cfg core.RuntimeConfig, now func() time.Time) *Player {
	if now == nil {
		now = time.Now
	}
	return &Player{
		x:        cfg.ShipMargin,
		y:        cfg.Height - ShipHeight - cfg.ShipMargin,
		minX:     cfg.ShipMargin,
		maxX:     cfg.Width - ShipWidth - cfg.ShipMargin,
		sprite:   SpriteFromSchema(shipSchema),
		fieldH:   cfg.Height,
		cooldown: cfg.ShotCooldown,
		now:      now,
	}
}

// Position returns the top-left corner of the ship.
func (p *Player) Position() (x, y int) {
	return p.x, p.y
}

// Bounds returns the horizontal range the ship may occupy.
func (p *Player) Bounds() (minX, maxX int) {
	return p.minX, p.maxX
}

// Footprint returns the rectangle covered by the sprite.
func (p *Player) Footprint() core.Rect {
	return core.NewRect(p.x, p.y, p.sprite.W, p.sprite.H)
}

// Left moves the ship one cell left, stopping at the bound.
func (p *Player) Left() {
	p.x = core.Clamp(p.x-1, p.minX, p.maxX)
}

// Right moves the ship one cell right, stopping at the bound.
func (p *Player) Right() {
	p.x = core.Clamp(p.x+1, p.minX, p.maxX)
}

// Shoot fires from the ship's muzzle if more than the cooldown has passed
// since the last successful shot. Held fire yields one shot per cooldown.
func (p *Player) Shoot() (*Shot, bool) {
	now := p.now()
	if p.fired && now.Sub(p.lastShot) <= p.cooldown {
		return nil, false
	}
	p.fired = true
	p.lastShot = now
	return NewShot(p.x+p.sprite.W/2, p.y, ShotPlayer, p.fieldH), true
}

// Draw paints the "on" cells of the sprite in white.
func (p *Player) Draw(dst *core.Screen) {
	for dy := 0; dy < p.sprite.H; dy++ {
		for dx := 0; dx < p.sprite.W; dx++ {
			if p.sprite.On(dx, dy) {
				dst.Set(p.x+dx, p.y+dy, core.ColorWhite)
			}
		}
	}
}

var _ core.Drawable = (*Player)(nil)
