// Package engine drives a game at a fixed tick budget: it polls an input
// source, steps and renders the game, hands the frame to a render sink and
// sleeps away the rest of the tick.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// InputSource reports the actions held right now. It is queried once per tick.
type InputSource interface {
	Poll() core.InputFrame
}

// RenderSink presents a completed frame. The screen is reused for the next
// tick as soon as Present returns, so sinks that keep it must copy it.
type RenderSink interface {
	Present(s *core.Screen) error
}

// Stats counts what the driver has done so far.
type Stats struct {
	Ticks    int           // Completed ticks
	Overruns int           // Ticks that took longer than the budget
	Elapsed  time.Duration // Wall time since the first tick started
}

// Driver owns the screen and runs the per-tick cycle for one game.
// All game state is touched from the goroutine calling Run only.
type Driver struct {
	game   registry.Game
	screen *core.Screen
	input  InputSource
	sink   RenderSink
	budget time.Duration
	clock  Clock
	logger *log.Logger

	started time.Time
	stats   Stats
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithLogger sets the logger used for lifecycle and overrun messages.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// NewDriver resets game for cfg and allocates a cfg.Width x cfg.Height screen.
func NewDriver(game registry.Game, cfg core.RuntimeConfig, input InputSource, sink RenderSink, opts ...Option) *Driver {
	d := &Driver{
		game:   game,
		screen: core.NewScreen(cfg.Width, cfg.Height),
		input:  input,
		sink:   sink,
		budget: cfg.TickBudget,
		clock:  SystemClock{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	game.Reset(cfg)
	return d
}

// Tick runs one simulation step: poll input, step the game, redraw the
// screen and present it.
func (d *Driver) Tick() error {
	d.game.Step(d.input.Poll())
	d.game.Render(d.screen)

	if err := d.sink.Present(d.screen); err != nil {
		return fmt.Errorf("engine: present frame %d: %w", d.stats.Ticks+1, err)
	}
	d.stats.Ticks++
	return nil
}

// Run ticks until ctx is cancelled or the sink fails. After each tick it
// sleeps for whatever is left of the budget; a tick that runs long is
// followed immediately by the next one, with no catch-up.
// Cancellation is observed between ticks only.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("driver started", "game", d.game.ID(), "budget", d.budget)
	d.started = d.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			d.logger.Info("driver stopped", "ticks", d.stats.Ticks, "overruns", d.stats.Overruns)
			return err
		}

		tickStart := d.clock.Now()

		if err := d.Tick(); err != nil {
			d.logger.Error("tick failed", "error", err)
			return err
		}

		elapsed := d.clock.Now().Sub(tickStart)
		if elapsed < d.budget {
			d.clock.Sleep(d.budget - elapsed)
		} else if elapsed > d.budget {
			d.stats.Overruns++
			d.logger.Debug("tick over budget", "tick", d.stats.Ticks, "elapsed", elapsed)
		}
	}
}

// Stats returns the driver counters. Call it from the Run goroutine or
// after Run has returned.
func (d *Driver) Stats() Stats {
	s := d.stats
	if !d.started.IsZero() {
		s.Elapsed = d.clock.Now().Sub(d.started)
	}
	return s
}

// Report summarizes a run for session history.
type Report struct {
	GameID string
	Stats  Stats
	State  core.GameState
}

// Report returns the driver and game counters. Like Stats, call it from the
// Run goroutine or after Run has returned.
func (d *Driver) Report() Report {
	return Report{
		GameID: d.game.ID(),
		Stats:  d.Stats(),
		State:  d.game.State(),
	}
}

// Screen returns the frame buffer. It is only valid between ticks.
func (d *Driver) Screen() *core.Screen {
	return d.screen
}
