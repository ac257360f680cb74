package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/platform/tui"
	"github.com/vovakirdan/star-collider/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive launcher",
	Long: `Open the launcher menu. Pick a frontend to play, browse the scores,
or quit. After a terminal game the menu comes back; the window keeps
its own play-again loop and exits to the shell.

Examples:
  starcollider menu
  starcollider menu --db ./scores.db`,
	RunE: runMenu,
}

// menuFrontends are the frontends the launcher offers. The headless
// autopilot prints to stdout, which the menu's alternate screen hides.
func menuFrontends() []registry.Info {
	var out []registry.Info
	for _, f := range registry.List() {
		if f.ID != "sim" {
			out = append(out, f)
		}
	}
	return out
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := setup(true, true)
	if err != nil {
		return err
	}
	defer a.close()

	seed := a.env.Seed
	for {
		w, h := terminalSize()
		res, err := tui.RunMenu(a.env.Store, menuFrontends(), w, h)
		if err != nil {
			return err
		}

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(a.env.Store, w, h)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
		case res.Frontend != "":
			// --seed replays only the first game
			a.env.Seed = seed
			seed = time.Now().UnixNano()
			if res.Frontend == "terminal" {
				fitToTerminal(&a.env.Config)
			}
			if err := a.runFrontend(res.Frontend); err != nil {
				return err
			}
			// Ebitengine runs one game per process; the window restarts
			// runs itself.
			if res.Frontend == "window" {
				return nil
			}
		}
	}
}
