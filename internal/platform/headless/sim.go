package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// DefaultMaxFrames covers the whole time limit at 60 fps, plus the launch
// and a little slack.
const DefaultMaxFrames = 12_000

// Options configure a headless run.
type Options struct {
	Config    config.Config
	Seed      int64 // 0 picks a time-based seed
	MaxFrames int64 // 0 means DefaultMaxFrames
	Logger    *log.Logger
}

// PhaseChange is one entry of a report's timeline.
type PhaseChange struct {
	Frame         int64
	ElapsedMillis int64
	Phase         starcollider.Phase
}

// Report summarizes a headless run.
type Report struct {
	Result   starcollider.Result
	Timeline []PhaseChange
	Final    starcollider.Snapshot
	Draws    map[starcollider.Texture]int
	Wall     time.Duration
}

// Simulate plays one session with the autopilot until it settles, the
// frame budget runs out or ctx is cancelled. A run cut short reports as
// quit.
func Simulate(ctx context.Context, opts Options) (Report, error) {
	maxFrames := opts.MaxFrames
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := NewFrameClock(opts.Config.TickRate)
	pilot := NewAutopilot()
	rec := NewRecorder()
	s := starcollider.NewSession(opts.Config.Runtime(seed), starcollider.Deps{
		Renderer: rec,
		Input:    pilot,
		Clock:    clock,
		Logger:   opts.Logger,
	})
	s.SetVolume(opts.Config.Audio.Volume)
	pilot.Attach(s)

	start := time.Now()
	report := Report{
		Timeline: []PhaseChange{{Phase: s.Phase()}},
		Draws:    make(map[starcollider.Texture]int),
	}
	last := s.Phase()
	for s.Frames() < maxFrames && !s.Settled() {
		if err := ctx.Err(); err != nil {
			s.RequestQuit()
		}
		clock.Advance()
		pilot.Think()
		running := s.Frame()

		if ph := s.Phase(); ph != last {
			report.Timeline = append(report.Timeline, PhaseChange{Frame: s.Frames(), ElapsedMillis: s.ElapsedMillis(), Phase: ph})
			last = ph
		}
		if !running {
			break
		}
	}

	report.Result = s.Result()
	report.Final = s.Snapshot()
	report.Wall = time.Since(start)
	for _, t := range starcollider.Textures() {
		if n := rec.Draws(t); n > 0 {
			report.Draws[t] = n
		}
	}
	if opts.Logger != nil {
		opts.Logger.Info("simulation finished",
			"outcome", report.Result.Outcome,
			"score", report.Result.Score,
			"frames", report.Result.Frames,
			"wall", report.Wall.Round(time.Millisecond))
	}
	return report, ctx.Err()
}

// Write prints the report as plain text.
func (r Report) Write(w io.Writer) error {
	res := r.Result
	if _, err := fmt.Fprintf(w, "seed %d: %s after %d frames (%.1fs game time, %s wall)\n",
		res.Seed, res.Outcome, res.Frames, float64(res.ElapsedMillis)/1000, r.Wall.Round(time.Millisecond)); err != nil {
		return err
	}
	switch res.Outcome {
	case starcollider.OutcomeWin:
		fmt.Fprintf(w, "score %d\n", res.Score)
	case starcollider.OutcomeLose:
		fmt.Fprintf(w, "lost at stage %d: %s\n", res.StageReached, res.LoseReason)
	default:
		fmt.Fprintf(w, "stopped at stage %d\n", res.StageReached)
	}

	fmt.Fprintln(w, "\ntimeline:")
	for _, pc := range r.Timeline {
		fmt.Fprintf(w, "  frame %6d  %7.2fs  %s\n", pc.Frame, float64(pc.ElapsedMillis)/1000, pc.Phase)
	}

	f := r.Final
	fmt.Fprintf(w, "\nfinal: health %d  bullets %d  heat %d/%d  volume %d\n",
		f.Health, f.BulletCount, f.HeatRed, f.HeatBlue, f.Volume)
	for i, e := range f.Enemies {
		fmt.Fprintf(w, "  %-8s health %d\n", starcollider.EnemyKind(i), e.Health)
	}
	_, err := fmt.Fprintf(w, "hash %016x\n", f.Hash())
	return err
}
