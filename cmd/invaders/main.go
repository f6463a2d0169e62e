// invaders is a minimal arcade shooter that runs in a terminal, a desktop
// window or over SSH.
//
// Usage:
//
//	invaders list              - List available games
//	invaders play [game]       - Play in the terminal
//	invaders window [game]     - Play in a desktop window
//	invaders serve             - Start SSH server for remote play
//	invaders sessions [game]   - Show recorded play sessions
//	invaders config            - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--tick <ms>         - Override the tick budget
//	--db <path>         - Session database (default: ~/.invaders/sessions.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/engine"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagTickMS   int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Invaders - a tiny fixed-tick arcade shooter",
	Long: `Invaders moves a ship along the bottom of a 150x100 playfield and fires
shots at the sky. The simulation ticks every 10ms and can be shown in a
terminal, in a desktop window or to SSH clients.

Available commands:
  list      - Show all available games
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  sessions  - View recorded play sessions
  config    - Print the default configuration

Examples:
  invaders play
  invaders window --config ./big.yaml
  invaders serve --ssh :2222
  invaders sessions`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagTickMS, "tick", 0, "Tick budget in milliseconds (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.invaders/sessions.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback. The returned func closes the log file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadRuntime loads the config file chain and applies flag overrides.
func loadRuntime() (core.RuntimeConfig, error) {
	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return core.RuntimeConfig{}, err
	}
	if flagTickMS > 0 {
		cfg.Timing.TickMS = flagTickMS
	}
	if err := cfg.Validate(); err != nil {
		return core.RuntimeConfig{}, err
	}
	return cfg.Runtime(), nil
}

// openStore opens the session database. Failure is not fatal: the game is
// played without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open session database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// recordSession saves a finished run if a store is available.
func recordSession(store *storage.Store, logger *log.Logger, platform, user string, r engine.Report) {
	if store == nil || r.Stats.Ticks == 0 {
		return
	}
	if _, err := store.SaveSession(storage.SessionRecord{
		GameID:     r.GameID,
		Platform:   platform,
		User:       user,
		Ticks:      r.Stats.Ticks,
		Overruns:   r.Stats.Overruns,
		ShotsFired: r.State.ShotsFired,
		Duration:   r.Stats.Elapsed,
	}); err != nil {
		logger.Warn("could not record session", "error", err)
	}
}

// currentUser names the local player for session history.
func currentUser() string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return ""
}

// gameArg returns the game named on the command line, or the default game.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return invaders.GameID
}

func printReport(r engine.Report) {
	fmt.Printf("%d ticks (%d over budget), %d shots fired in %s\n",
		r.Stats.Ticks, r.Stats.Overruns, r.State.ShotsFired, r.Stats.Elapsed.Round(time.Millisecond))
}
