package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var flagHoldMS int

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start playing in the terminal. Each character cell shows two playfield
rows, so the default 150x100 playfield needs a 150x52 terminal.

Controls:
  Left/A     - Move left
  Right/D    - Move right
  Space/Up   - Fire
  Ctrl+S     - Save a PNG screenshot to ~/.invaders/screenshots
  ?          - Toggle help
  Q/Esc      - Quit

Terminals do not report key releases, so a key counts as held for a short
window after each press or auto-repeat (see --hold).

Examples:
  invaders play
  invaders play invaders --tick 16
  invaders play --log-file invaders.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagHoldMS, "hold", int(tui.DefaultHoldWindow/time.Millisecond), "Key hold window in milliseconds")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available games.")
		os.Exit(1)
	}

	cfg, err := loadRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alt screen owns the terminal; logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "invaders")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if needW, needH := cfg.Width, tui.Lines(cfg.Height)+2; w < needW || h < needH {
			fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the playfield needs %dx%d\n", w, h, needW, needH)
			time.Sleep(time.Second)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := tui.Run(ctx, game, cfg, tui.Options{
		Session: tui.SessionOptions{
			Logger:     logger,
			HoldWindow: time.Duration(flagHoldMS) * time.Millisecond,
		},
		ScreenshotDir: screenshotDir(),
	})

	recordSession(store, logger, storage.PlatformTerminal, currentUser(), res.Report)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	printReport(res.Report)
}

// screenshotDir returns ~/.invaders/screenshots, or "" when there is no
// home directory.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".invaders", "screenshots")
}
