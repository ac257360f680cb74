// starcollider is a single-player vertical shooter with three boss fights,
// playable in the terminal, in a desktop window, or over SSH.
//
// Usage:
//
//	starcollider play        - Play in the terminal
//	starcollider window      - Play in a desktop window (keyboard or gamepad)
//	starcollider sim         - Run the autopilot headless and print a report
//	starcollider menu        - Launcher menu: pick a frontend or view scores
//	starcollider serve       - Start the SSH server for remote play
//	starcollider scores      - Show the best runs
//	starcollider list        - List registered frontends
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.starcollider, ./configs)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Scores database (default: ~/.starcollider/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/registry"
	"github.com/vovakirdan/star-collider/internal/storage"

	// Import frontends to register them
	_ "github.com/vovakirdan/star-collider/internal/platform/headless"
	_ "github.com/vovakirdan/star-collider/internal/platform/tui"
	_ "github.com/vovakirdan/star-collider/internal/platform/window"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starcollider",
	Short: "Star Collider - a vertical shooter for terminals and windows",
	Long: `Star Collider is a single-player vertical shooter. Fly your fighter
through three boss fights (Raider, Striker, Thrasher) before the clock
runs out, keeping your twin guns from overheating.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  sim      - Headless autopilot run
  menu     - Interactive launcher
  serve    - Start SSH server for remote play
  scores   - View the best runs
  list     - Show registered frontends

Examples:
  starcollider play
  starcollider window --seed 42
  starcollider sim --frames 5000 --seed 7
  starcollider serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "starcollider",
		Level:           level,
	}), nil
}

// app is what every command that plays a session sets up: config, logger
// and, when requested, the scores database.
type app struct {
	env     registry.Env
	logFile *os.File
}

// setup loads the config and opens the logger. Terminal frontends log to
// a file so the alternate screen stays clean. With openStore, a missing
// database is a warning: the game still runs, it just saves nothing.
func setup(logToFile, openStore bool) (*app, error) {
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	a := &app{}
	var out io.Writer = os.Stderr
	if logToFile {
		f, err := openLogFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		a.logFile = f
		out = f
	}
	logger, err := newLogger(out)
	if err != nil {
		a.close()
		return nil, err
	}
	logger.Debug("config loaded", "path", path)

	a.env = registry.Env{
		Config:     cfg,
		ConfigPath: path,
		Logger:     logger,
		Seed:       flagSeed,
		Player:     os.Getenv("USER"),
	}
	if openStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			logger.Warn("could not open scores database", "error", err)
		} else {
			a.env.Store = store
		}
	}
	return a, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func (a *app) close() {
	if a.env.Store != nil {
		a.env.Store.Close()
		a.env.Store = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runFrontend plays one session on a registered frontend.
func (a *app) runFrontend(id string) error {
	fe, err := registry.Create(id)
	if err != nil {
		return err
	}
	return a.run(fe)
}

func (a *app) run(fe registry.Frontend) error {
	ctx, stop := signalContext()
	defer stop()

	a.env.Logger.Info("starting", "frontend", fe.ID(), "seed", a.env.Seed)
	res, err := fe.Run(ctx, a.env)
	if err != nil {
		return fmt.Errorf("%s: %w", fe.ID(), err)
	}
	a.env.Logger.Info("finished", "frontend", fe.ID(), "outcome", res.Outcome, "score", res.Score)
	return nil
}
