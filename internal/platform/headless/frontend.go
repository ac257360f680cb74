package headless

import (
	"context"
	"os"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/registry"
)

func init() {
	registry.Register("sim", func() registry.Frontend { return &Frontend{} })
}

// Frontend runs one autopilot session and prints its report to stdout.
type Frontend struct {
	// MaxFrames bounds the run; 0 means DefaultMaxFrames.
	MaxFrames int64
}

// ID implements registry.Frontend.
func (f *Frontend) ID() string { return "sim" }

// Title implements registry.Frontend.
func (f *Frontend) Title() string { return "Headless autopilot" }

// Run implements registry.Frontend. The run is saved only when env.Store
// is set.
func (f *Frontend) Run(ctx context.Context, env registry.Env) (starcollider.Result, error) {
	report, err := Simulate(ctx, Options{
		Config:    env.Config,
		Seed:      env.Seed,
		MaxFrames: f.MaxFrames,
		Logger:    env.Logger,
	})
	env.Record(f.ID(), report.Result)
	if werr := report.Write(os.Stdout); werr != nil && err == nil {
		err = werr
	}
	return report.Result, err
}
