// Package tui runs games in a terminal through Bubble Tea, locally or over
// SSH. The simulation runs on its own driver goroutine; the Bubble Tea
// program only forwards key presses and displays rendered frames.
package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Frame is one presented tick, rendered on the driver goroutine.
type Frame struct {
	View   string
	State  core.GameState
	Screen *core.Screen // Private copy, safe to read from any goroutine
}

// FrameSink is the engine render sink for terminals. It keeps only the
// newest frame: a slow terminal skips frames instead of stalling the driver.
type FrameSink struct {
	renderer *FrameRenderer
	state    func() core.GameState
	frames   chan Frame
}

// NewFrameSink creates a sink that renders with r and tags every frame with
// the result of state.
func NewFrameSink(r *FrameRenderer, state func() core.GameState) *FrameSink {
	return &FrameSink{
		renderer: r,
		state:    state,
		frames:   make(chan Frame, 1),
	}
}

// Present renders s and replaces any frame not yet picked up.
func (fs *FrameSink) Present(s *core.Screen) error {
	f := Frame{
		View:   fs.renderer.Render(s),
		State:  fs.state(),
		Screen: s.Clone(),
	}

	select {
	case fs.frames <- f:
		return nil
	default:
	}

	// Drop the stale frame; the sink is the only sender.
	select {
	case <-fs.frames:
	default:
	}
	select {
	case fs.frames <- f:
	default:
	}
	return nil
}

// Frames returns the channel of rendered frames. It is closed when the
// session's driver stops.
func (fs *FrameSink) Frames() <-chan Frame {
	return fs.frames
}

// Result describes a finished session.
type Result struct {
	engine.Report
	Err error // nil on a normal stop
}

// Session wires one game to a driver, a key state and a frame sink.
type Session struct {
	game   registry.Game
	config core.RuntimeConfig
	input  *KeyState
	sink   *FrameSink
	driver *engine.Driver
	logger *log.Logger
}

// SessionOptions tunes a Session. The zero value is usable.
type SessionOptions struct {
	Renderer   *lipgloss.Renderer // nil selects the default renderer
	Logger     *log.Logger        // nil discards logs
	HoldWindow time.Duration      // non-positive selects DefaultHoldWindow
	Clock      engine.Clock       // nil selects the system clock
}

// NewSession resets game for cfg and prepares its driver.
func NewSession(game registry.Game, cfg core.RuntimeConfig, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		game:   game,
		config: cfg,
		input:  NewKeyState(opts.HoldWindow, nil),
		logger: logger,
	}
	s.sink = NewFrameSink(NewFrameRenderer(opts.Renderer), game.State)

	driverOpts := []engine.Option{engine.WithLogger(logger)}
	if opts.Clock != nil {
		driverOpts = append(driverOpts, engine.WithClock(opts.Clock))
	}
	s.driver = engine.NewDriver(game, cfg, s.input, s.sink, driverOpts...)
	return s
}

// Input returns the key state fed by the Bubble Tea model.
func (s *Session) Input() *KeyState {
	return s.input
}

// Frames returns the channel of rendered frames.
func (s *Session) Frames() <-chan Frame {
	return s.sink.Frames()
}

// Start runs the driver on a new goroutine until ctx is cancelled or a tick
// fails. The frames channel is closed when the driver stops, then the
// returned channel yields the result.
func (s *Session) Start(ctx context.Context) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		err := s.driver.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
		res := Result{Report: s.driver.Report(), Err: err}
		close(s.sink.frames)
		done <- res
	}()
	return done
}
