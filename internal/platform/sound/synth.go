package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// BattleLength is how long the battle track plays before it ends.
const BattleLength = 180 * time.Second

// note frequencies, A minor
const (
	noteA2 = 110.00
	noteC3 = 130.81
	noteE3 = 164.81
	noteG3 = 196.00
	noteA3 = 220.00
	noteC4 = 261.63
	noteD4 = 293.66
	noteE4 = 329.63
	noteG4 = 392.00
	noteA4 = 440.00
)

// sequencer plays a lead and a bass pattern one step at a time, with an
// optional kick on every beat. total == 0 streams forever.
type sequencer struct {
	sr    beep.SampleRate
	pos   int
	total int
	step  int // samples per step
	lead  []float64
	bass  []float64
	kick  bool

	leadPhase float64
	bassPhase float64
}

func newSequencer(sr beep.SampleRate, step time.Duration, total time.Duration, lead, bass []float64, kick bool) *sequencer {
	s := &sequencer{
		sr:   sr,
		step: max(sr.N(step), 1),
		lead: lead,
		bass: bass,
		kick: kick,
	}
	if total > 0 {
		s.total = sr.N(total)
	}
	return s
}

func (s *sequencer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.total > 0 && s.pos >= s.total {
			return i, i > 0
		}

		step := s.pos / s.step
		inStep := s.pos % s.step
		env := 1 - float64(inStep)/float64(s.step)

		var v float64
		if len(s.lead) > 0 {
			if f := s.lead[step%len(s.lead)]; f > 0 {
				s.leadPhase = advance(s.leadPhase, f, s.sr)
				v += 0.18 * env * triangle(s.leadPhase)
			}
		}
		if len(s.bass) > 0 {
			if f := s.bass[(step/4)%len(s.bass)]; f > 0 {
				s.bassPhase = advance(s.bassPhase, f, s.sr)
				v += 0.12 * math.Sin(2*math.Pi*s.bassPhase)
			}
		}
		if s.kick && step%2 == 0 && inStep < s.step/2 {
			kickEnv := 1 - float64(inStep)/float64(s.step/2)
			t := float64(inStep) / float64(s.sr)
			v += 0.35 * kickEnv * math.Sin(2*math.Pi*55*(1+2*kickEnv)*t)
		}

		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sequencer) Err() error { return nil }

func advance(phase, freq float64, sr beep.SampleRate) float64 {
	phase += freq / float64(sr)
	return phase - math.Floor(phase)
}

func triangle(phase float64) float64 {
	return 4*math.Abs(phase-0.5) - 1
}

// NewTrack builds the streamer for a music track. The idle track is
// endless; the battle track ends after BattleLength.
func NewTrack(t starcollider.Track, sr beep.SampleRate) (beep.Streamer, error) {
	if t == starcollider.TrackBattle {
		lead := []float64{
			noteA3, noteC4, noteE4, noteA4, noteG4, noteE4, noteD4, noteC4,
			noteA3, noteC4, noteE4, noteG4, noteA4, noteG4, noteE4, 0,
		}
		bass := []float64{noteA2, noteA2, noteC3, noteG3 / 2}
		return newSequencer(sr, 150*time.Millisecond, BattleLength, lead, bass, true), nil
	}

	lead := []float64{noteA3, 0, noteE4, 0, noteC4, 0, noteE4, noteG3}
	arp := newSequencer(sr, 400*time.Millisecond, 0, lead, []float64{noteA2, noteE3 / 2}, false)
	drone, err := generators.SineTone(sr, noteA2/2)
	if err != nil {
		return nil, err
	}
	return beep.Mix(arp, &effects.Volume{Streamer: drone, Base: 2, Volume: -4}), nil
}

// fader scales a streamer by a gain that can ramp to silence. A finished
// fade ends the stream.
type fader struct {
	streamer  beep.Streamer
	gain      float64
	step      float64 // per-sample gain change while fading
	fading    bool
	completed bool
}

func newFader(s beep.Streamer) *fader {
	return &fader{streamer: s, gain: 1}
}

// fadeOut ramps the gain to zero over n samples.
func (f *fader) fadeOut(n int) {
	if n <= 0 {
		f.gain = 0
		f.completed = true
		return
	}
	f.fading = true
	f.step = f.gain / float64(n)
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	if f.completed {
		return 0, false
	}
	n, ok = f.streamer.Stream(samples)
	for i := range n {
		if f.fading {
			f.gain -= f.step
			if f.gain <= 0 {
				f.gain = 0
				f.completed = true
				clear(samples[i:n])
				return n, true
			}
		}
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}
	return n, ok
}

func (f *fader) Err() error { return f.streamer.Err() }
