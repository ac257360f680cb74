package starcollider

// handleEvents drains the input queue: quit, joystick axes and buttons.
func (s *Session) handleEvents() {
	for _, ev := range s.input.PollEvents() {
		switch ev.Kind {
		case EventQuit:
			s.quit = true
		case EventAxisMotion:
			v := sign(ev.Value)
			if ev.Axis == AxisX {
				s.dir.X = v
			} else {
				s.dir.Y = v
			}
		case EventButtonDown:
			if ev.Button == ButtonBack {
				s.quit = true
			}
			switch {
			case s.phase.Combat():
				if ev.Button == ButtonA {
					s.aButton = true
				}
			case s.phase == PhaseTitle && ev.Button != ButtonBack:
				s.beginLaunch()
			}
		case EventButtonUp:
			if ev.Button == ButtonA {
				s.aButton = false
			}
		}
	}
}

// handleKeys applies the held keyboard state and the joystick direction.
func (s *Session) handleKeys() {
	in := s.input
	if in.IsKeyDown(KeyEscape) {
		s.quit = true
	}

	if !s.phase.Combat() {
		if s.phase == PhaseTitle && in.IsKeyDown(KeyFire) {
			s.beginLaunch()
		}
		return
	}

	p := &s.player
	ship := s.metrics.Size(TexFighter)
	top := ScreenHeight * 3 / 5

	if in.IsKeyDown(KeyUp) && p.Y > top {
		p.Y -= p.Speed
		p.TurretY -= p.Speed
	}
	if in.IsKeyDown(KeyDown) && p.Y < ScreenHeight-ship.H {
		p.Y += p.Speed
		p.TurretY += p.Speed
	}
	if in.IsKeyDown(KeyLeft) && p.X > 0 {
		p.X -= p.Speed
	}
	if in.IsKeyDown(KeyRight) && p.X < ScreenWidth-ship.W {
		p.X += p.Speed
	}

	s.stepTurrets(in.IsKeyDown(KeyFire) || s.aButton)

	if in.IsKeyDown(KeyVolumeUp) && s.volume < MaxVolume {
		s.volume++
	}
	if in.IsKeyDown(KeyVolumeDown) && s.volume > 0 {
		s.volume--
	}

	s.stepJoystick()
}

// stepTurrets extends the turrets while the trigger is held on cooled
// guns and starts shooting once fully out; otherwise it stops shooting and
// retracts them.
func (s *Session) stepTurrets(trigger bool) {
	p := &s.player
	extended, retracted := p.TurretBand(s.metrics)

	if trigger && s.heat.Cooled() {
		if !p.Shooting && p.TurretY > extended {
			p.TurretY -= p.TurretSpeed
		} else {
			p.TurretY = extended
			p.Shooting = true
		}
		return
	}

	p.Shooting = false
	if p.TurretY < retracted {
		p.TurretY += p.TurretSpeed
	} else {
		p.TurretY = retracted
	}
}

// stepJoystick moves the ship along the stick direction. Each axis is
// checked against a look-ahead bound on its own, so diagonals move at full
// speed on both axes.
func (s *Session) stepJoystick() {
	p := &s.player
	ship := s.metrics.Size(TexFighter)
	top := ScreenHeight * 3 / 5

	switch {
	case s.dir.X > 0 && p.X+ship.W+p.Speed < ScreenWidth:
		p.X += p.Speed
	case s.dir.X < 0 && p.X-p.Speed > 0:
		p.X -= p.Speed
	}
	switch {
	case s.dir.Y > 0 && p.Y+ship.H+p.Speed < ScreenHeight:
		p.Y += p.Speed
		p.TurretY += p.Speed
	case s.dir.Y < 0 && p.Y-p.Speed > top:
		p.Y -= p.Speed
		p.TurretY -= p.Speed
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// AxisValue thresholds a raw stick reading against a dead zone, giving
// -1, 0 or +1. Frontends use it before emitting EventAxisMotion.
func AxisValue(raw, deadZone int) int {
	switch {
	case raw < -deadZone:
		return -1
	case raw > deadZone:
		return 1
	default:
		return 0
	}
}
