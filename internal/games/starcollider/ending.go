package starcollider

// Launch and fly-off tuning.
const (
	launchStartAccel = 8.0
	launchMinAccel   = 5.0
	launchAccelDecay = 0.2
	launchAlphaRate  = 1.4
	launchAlphaFloor = 8
	launchFadeMillis = 600

	winDelayMillis  = 2000
	winCenterSlack  = 10
	winCenterStep   = 5
	winAccelStep    = 0.5
	winStartAccel   = 1.0
	scoreBaseSecond = 179
)

// beginLaunch leaves the title screen.
func (s *Session) beginLaunch() {
	if s.phase != PhaseTitle {
		return
	}
	s.launchAccel = launchStartAccel
	s.titleAlpha = 255
	s.audio.FadeOut(launchFadeMillis)
	s.setPhase(PhaseLaunch)
}

// stepLaunch raises the ship with a decaying acceleration while the title
// fades out. The launch ends once the ship reaches its combat band and the
// title is gone.
func (s *Session) stepLaunch() {
	s.bg.Advance()

	p := &s.player
	p.Y = int(float64(p.Y) - s.launchAccel)
	p.TurretY = int(float64(p.TurretY) - s.launchAccel)
	if s.launchAccel > launchMinAccel {
		s.launchAccel -= launchAccelDecay
	}

	if s.titleAlpha > launchAlphaFloor {
		s.titleAlpha = int(float64(s.titleAlpha) - launchAlphaRate*s.launchAccel)
	} else {
		s.titleAlpha = launchAlphaFloor
	}

	if p.Y > ScreenHeight*3/5 || s.titleAlpha > launchAlphaFloor {
		return
	}
	s.finishLaunch()
}

// finishLaunch seats the ship, starts the session clock and the first
// stage.
func (s *Session) finishLaunch() {
	s.bg.Reseat()
	p := &s.player
	p.Y = ScreenHeight * 3 / 5
	p.TurretY = p.Y + s.metrics.Size(TexFighter).H/2

	s.startTime = s.now
	s.stageStart = s.now
	s.setPhase(PhaseRaider)
	s.audio.PlayMusic(TrackBattle, false)
}

// TitleAlpha returns the title's opacity during the launch.
func (s *Session) TitleAlpha() uint8 {
	return uint8(max(0, min(255, s.titleAlpha)))
}

// enterWin freezes the player and starts the fly-off.
func (s *Session) enterWin() {
	s.player.Shooting = false
	s.aButton = false
	s.stageStart = s.now
	s.winAccel = winStartAccel
	s.setPhase(PhaseWin)
	if s.logger != nil {
		s.logger.Info("run won", "elapsed_ms", s.now-s.startTime)
	}
}

// enterLose ends the run.
func (s *Session) enterLose(reason string) {
	s.player.Shooting = false
	s.aButton = false
	s.loseReason = reason
	s.setPhase(PhaseLose)
	if s.logger != nil {
		s.logger.Info("run lost", "reason", reason, "stage", s.StageReached(), "elapsed_ms", s.now-s.startTime)
	}
}

// stepWin animates the victory: retract the turrets, slide to the center,
// wait, then accelerate off the top. The score is set once, the first
// frame the ship is fully off screen.
func (s *Session) stepWin() {
	p := &s.player
	ship := s.metrics.Size(TexFighter)
	_, retracted := p.TurretBand(s.metrics)
	offset := p.X + ship.W/2 - ScreenWidth/2

	switch {
	case p.TurretY < retracted:
		p.TurretY += p.TurretSpeed
	case offset > winCenterSlack:
		p.X -= winCenterStep
	case offset < -winCenterSlack:
		p.X += winCenterStep
	default:
		p.X = ScreenWidth/2 - ship.W/2
	}

	centered := p.X+ship.W/2 == ScreenWidth/2
	if s.now > s.stageStart+winDelayMillis && p.Y > -ship.H && centered {
		dy := int(2 * s.winAccel)
		p.Y -= dy
		p.TurretY -= dy
		s.bg.Speed = BackgroundSlowSpeed
		s.winAccel += winAccelStep
		return
	}

	s.bg.Speed = BackgroundSpeed
	if p.Y <= -ship.H {
		s.winDone = true
		if !s.scored {
			s.score = max(0, scoreBaseSecond-int((s.now-s.startTime)/1000))
			s.scored = true
			s.logDebug("score", "value", s.score)
		}
	}
}

// WinnerVisible reports whether the winner banner should show.
func (s *Session) WinnerVisible() bool {
	return s.phase == PhaseWin && s.winDone
}

// LoseReason returns why the run was lost ("health" or "time").
func (s *Session) LoseReason() string {
	return s.loseReason
}

// StageReached returns the 1-based number of the furthest stage reached,
// zero before the first fight.
func (s *Session) StageReached() int {
	switch {
	case s.phase == PhaseWin:
		return 3
	case s.phase.Stage() >= 0:
		return s.phase.Stage() + 1
	}
	return s.lastStage
}
