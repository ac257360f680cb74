// Package sound plays the game's synthesized music through the system audio
// device. It implements starcollider.Audio.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// Player streams one music track at a time into the speaker.
type Player struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	ctrl   *beep.Ctrl
	fade   *fader
	track  starcollider.Track
	logger *log.Logger
	closed bool
}

// New opens the audio device. The player starts silent until PlayMusic.
func New(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: cannot open audio device: %w", err)
	}

	p := &Player{
		sr:     sr,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	p.master = &effects.Volume{Streamer: p.mixer, Base: 2}
	p.setGain(cfg.Volume)
	speaker.Play(p.master)
	return p, nil
}

// Open returns a Player when audio is enabled and the device opens, and a
// starcollider.NopAudio otherwise. The returned func releases the device.
func Open(cfg config.AudioConfig, logger *log.Logger) (starcollider.Audio, func()) {
	if !cfg.Enabled {
		return starcollider.NopAudio{}, func() {}
	}
	p, err := New(cfg, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "error", err)
		}
		return starcollider.NopAudio{}, func() {}
	}
	return p, p.Close
}

// PlayMusic replaces the current track. A non-looping track plays once.
func (p *Player) PlayMusic(t starcollider.Track, loop bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s, err := NewTrack(t, p.sr)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("cannot build track", "track", t, "error", err)
		}
		return
	}
	if loop {
		s = beep.Loop(-1, s)
	}

	f := newFader(s)
	ctrl := &beep.Ctrl{Streamer: f}

	speaker.Lock()
	if p.ctrl != nil {
		p.ctrl.Paused = true
	}
	p.mixer.Clear()
	p.mixer.Add(ctrl)
	speaker.Unlock()

	p.ctrl, p.fade, p.track = ctrl, f, t
	if p.logger != nil {
		p.logger.Debug("music", "track", t, "loop", loop)
	}
}

// FadeOut ramps the current track to silence over ms milliseconds.
func (p *Player) FadeOut(ms int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.fade == nil {
		return
	}
	n := p.sr.N(time.Duration(ms) * time.Millisecond)
	speaker.Lock()
	p.fade.fadeOut(n)
	speaker.Unlock()
}

// SetVolume sets the master volume, 0..starcollider.MaxVolume.
func (p *Player) SetVolume(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	speaker.Lock()
	p.setGain(v)
	speaker.Unlock()
}

func (p *Player) setGain(v int) {
	p.master.Volume, p.master.Silent = Gain(v)
}

// Track returns the last track started.
func (p *Player) Track() starcollider.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Close stops playback. The player ignores every call afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	p.mixer.Clear()
}

// Gain maps a 0..MaxVolume volume onto an effects.Volume setting with base
// 2. MaxVolume is unity gain; zero is silent.
func Gain(v int) (volume float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	v = min(v, starcollider.MaxVolume)
	return math.Log2(float64(v) / starcollider.MaxVolume), false
}
