package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play Star Collider in the current terminal.

The playfield is drawn with half-block characters. When the terminal is
smaller than the configured cell size needs, cells are enlarged to fit.

Controls:
  WASD / Arrows  - Move
  Space          - Fire (start on the title screen)
  + / -          - Volume
  Ctrl+Y         - Screenshot
  Esc            - Quit

Examples:
  starcollider play
  starcollider play --seed 42
  starcollider play --config ./configs/config.yaml`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := setup(true, true)
	if err != nil {
		return err
	}
	defer a.close()

	fitToTerminal(&a.env.Config)
	return a.runFrontend("terminal")
}

// fitToTerminal enlarges the terminal cells when the current terminal is
// too small for the configured ones.
func fitToTerminal(cfg *config.Config) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return
	}
	if fitCells(cfg, cols, rows) {
		fmt.Fprintf(os.Stderr, "Terminal is %dx%d; using %dx%d pixel cells\n",
			cols, rows, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	}
}

// fitCells grows the cell size until the playfield and its status line fit
// in cols x rows. Cell height stays even. It reports whether anything
// changed.
func fitCells(cfg *config.Config, cols, rows int) bool {
	if cols <= 0 || rows <= 1 {
		return false
	}
	changed := false
	if need := ceilDiv(starcollider.ScreenWidth, cols); need > cfg.Terminal.CellWidth {
		cfg.Terminal.CellWidth = need
		changed = true
	}
	if need := ceilDiv(starcollider.ScreenHeight, rows-1); need > cfg.Terminal.CellHeight {
		cfg.Terminal.CellHeight = need + need%2
		changed = true
	}
	return changed
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// terminalSize returns the size of the terminal on stdout, or 80x24 when
// stdout is not a terminal.
func terminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
