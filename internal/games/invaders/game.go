// Package invaders implements the ship-and-shots arcade simulation.
// The player moves a ship along the bottom of the playfield and fires
// shots that travel to the top edge.
package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// GameID is the registry identifier of the game.
const GameID = "invaders"

// Game owns the player and every live shot.
type Game struct {
	config     core.RuntimeConfig
	player     *Player
	shots      []*Shot
	tick       int
	shotsFired int
	now        func() time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithClock sets the time source used for the fire cooldown.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// New creates a new game instance. Call Reset before the first Step.
func New(opts ...Option) *Game {
	g := &Game{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Invaders"
}

// Reset places a fresh ship and drops every shot.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.player = NewPlayer(cfg, g.now)
	clear(g.shots)
	g.shots = g.shots[:0]
	g.tick = 0
	g.shotsFired = 0
}

// Step applies the held actions and advances every shot by one tick.
// Actions apply in the order left, right, fire. A shot fired this tick
// moves in the same tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionLeft) {
		g.player.Left()
	}
	if in.Has(core.ActionRight) {
		g.player.Right()
	}
	if in.Has(core.ActionFire) {
		if shot, ok := g.player.Shoot(); ok {
			g.Spawn(shot)
			g.shotsFired++
		}
	}

	g.advance()

	return core.StepResult{State: g.State()}
}

// Spawn adds a shot to the live collection. It moves from the next advance on.
func (g *Game) Spawn(s *Shot) {
	g.shots = append(g.shots, s)
}

// advance translates every shot and keeps the survivors in order.
// A shot that leaves play this tick is dropped before the draw pass,
// so its final position is never rendered.
func (g *Game) advance() {
	live := g.shots[:0]
	for _, s := range g.shots {
		if s.Translate() {
			live = append(live, s)
		}
	}
	clear(g.shots[len(live):])
	g.shots = live
}

// Render clears dst and draws the player, then the shots in spawn order.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.player.Draw(dst)
	for _, s := range g.shots {
		s.Draw(dst)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Tick:       g.tick,
		ShotsFired: g.shotsFired,
		LiveShots:  len(g.shots),
	}
}

// Player returns the ship.
func (g *Game) Player() *Player {
	return g.player
}

// Shots returns the live shots in spawn order. The slice must not be modified.
func (g *Game) Shots() []*Shot {
	return g.shots
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
