package main

import (
	"github.com/spf13/cobra"
)

var (
	flagScale      float64
	flagFullscreen bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Play Star Collider in a desktop window.

Keyboard and gamepad both work. The gamepad left stick moves, A fires and
Back quits. After a run ends, R or Enter starts a new one.

Examples:
  starcollider window
  starcollider window --scale 1.5
  starcollider window --fullscreen --seed 42`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 0, "Window scale (0 = from config)")
	windowCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "Start fullscreen")
}

func runWindow(cmd *cobra.Command, args []string) error {
	a, err := setup(false, true)
	if err != nil {
		return err
	}
	defer a.close()

	if flagScale > 0 {
		a.env.Config.Window.Scale = flagScale
	}
	if flagFullscreen {
		a.env.Config.Window.Fullscreen = true
	}
	return a.runFrontend("window")
}
