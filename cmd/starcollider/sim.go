package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/platform/headless"
)

var (
	flagFrames int64
	flagSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot headless and print a report",
	Long: `Run one session with the autopilot at the controls and no display.

Time advances by one frame per step, so the same seed always produces the
same run. The report lists the phase timeline, the final state and a hash
of it. Runs are not saved unless --save is given.

Examples:
  starcollider sim --seed 7
  starcollider sim --frames 5000 --seed 7
  starcollider sim --save`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Int64Var(&flagFrames, "frames", headless.DefaultMaxFrames, "Maximum frames to simulate")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Save the run to the scores database")
}

func runSim(cmd *cobra.Command, args []string) error {
	a, err := setup(false, flagSave)
	if err != nil {
		return err
	}
	defer a.close()

	return a.run(&headless.Frontend{MaxFrames: flagFrames})
}
