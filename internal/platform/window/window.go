// Package window runs games in a desktop window through Ebitengine.
//
// Ebitengine owns the main goroutine: Update samples the keyboard into a
// shared key-state snapshot and Draw blits the newest presented frame. The
// simulation itself runs on a separate driver goroutine at its own tick
// budget, so the window refresh rate never changes game speed.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/platform/raster"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// keyBindings maps physical keys to actions.
var keyBindings = map[ebiten.Key]core.Action{
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyA:          core.ActionLeft,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyD:          core.ActionRight,
	ebiten.KeySpace:      core.ActionFire,
	ebiten.KeyEscape:     core.ActionQuit,
	ebiten.KeyQ:          core.ActionQuit,
}

// Actions builds the frame of held actions from a key predicate such as
// ebiten.IsKeyPressed.
func Actions(pressed func(ebiten.Key) bool) core.InputFrame {
	frame := core.NewInputFrame()
	for k, a := range keyBindings {
		if pressed(k) {
			frame.Set(a)
		}
	}
	return frame
}

// Input is the engine input source for the window. Ebitengine reports real
// key state, so no hold window is needed.
type Input struct {
	mu    sync.Mutex
	frame core.InputFrame
}

// NewInput creates an input with nothing held.
func NewInput() *Input {
	return &Input{frame: core.NewInputFrame()}
}

// Update replaces the held actions.
func (in *Input) Update(f core.InputFrame) {
	in.mu.Lock()
	in.frame = f.Clone()
	in.mu.Unlock()
}

// Poll returns a copy of the held actions.
func (in *Input) Poll() core.InputFrame {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.frame.Clone()
}

// Sink is the engine render sink for the window. Present rasterizes the
// frame into a pixel buffer at one pixel per cell; the window scales it up.
type Sink struct {
	mu     sync.Mutex
	pixels *image.RGBA
	fresh  bool
}

// NewSink creates a sink for a width x height screen.
func NewSink(width, height int) *Sink {
	return &Sink{pixels: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Present copies s into the pixel buffer.
func (sk *Sink) Present(s *core.Screen) error {
	sk.mu.Lock()
	defer sk.mu.Unlock()

	b := sk.pixels.Bounds()
	if s.Width() != b.Dx() || s.Height() != b.Dy() {
		return fmt.Errorf("window: frame is %dx%d, sink expects %dx%d",
			s.Width(), s.Height(), b.Dx(), b.Dy())
	}
	raster.Fill(sk.pixels, s, 1)
	sk.fresh = true
	return nil
}

// upload writes the newest frame into img if one arrived since the last call.
func (sk *Sink) upload(img *ebiten.Image) {
	sk.mu.Lock()
	defer sk.mu.Unlock()
	if !sk.fresh {
		return
	}
	img.WritePixels(sk.pixels.Pix)
	sk.fresh = false
}

// Window implements ebiten.Game.
type Window struct {
	width, height int
	scale         int
	input         *Input
	sink          *Sink
	stop          context.CancelFunc
	done          <-chan error
	frame         *ebiten.Image
	driverErr     error
	finished      bool
}

// Update samples the keyboard. It ends the window once the driver stops.
func (w *Window) Update() error {
	select {
	case err := <-w.done:
		w.driverErr = err
		w.finished = true
		return ebiten.Termination
	default:
	}

	frame := Actions(ebiten.IsKeyPressed)
	if frame.Has(core.ActionQuit) {
		// Wait for the driver to stop at its next tick boundary.
		w.stop()
	}
	w.input.Update(frame)
	return nil
}

// Draw blits the newest frame scaled to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.frame == nil {
		w.frame = ebiten.NewImage(w.width, w.height)
	}
	w.sink.upload(w.frame)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.frame, op)
}

// Layout keeps the logical screen at the scaled playfield size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width * w.scale, w.height * w.scale
}

// Options configures Run.
type Options struct {
	Logger *log.Logger // nil discards logs
}

// Run plays game in a window until the player quits, the window closes or
// ctx ends. It must be called from the main goroutine.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts Options) (engine.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := NewInput()
	sink := NewSink(cfg.Width, cfg.Height)
	driver := engine.NewDriver(game, cfg, input, sink, engine.WithLogger(logger))

	done := make(chan error, 1)
	go func() {
		done <- driver.Run(ctx)
	}()

	w := &Window{
		width:  cfg.Width,
		height: cfg.Height,
		scale:  cfg.Scale,
		input:  input,
		sink:   sink,
		stop:   cancel,
		done:   done,
	}

	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle(game.Title())
	logger.Info("opening window", "width", cfg.Width*cfg.Scale, "height", cfg.Height*cfg.Scale)

	runErr := ebiten.RunGame(w)
	cancel()
	if !w.finished {
		w.driverErr = <-done
	}

	report := driver.Report()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return report, fmt.Errorf("window: %w", runErr)
	}
	if w.driverErr != nil && !errors.Is(w.driverErr, context.Canceled) {
		return report, w.driverErr
	}
	return report, nil
}
