package starcollider

// Phase is the encounter state machine's state.
type Phase uint8

const (
	// PhaseTitle waits on the title screen for the start input.
	PhaseTitle Phase = iota
	// PhaseLaunch raises the ship into position while the title fades.
	PhaseLaunch
	PhaseRaider
	// PhaseStrikerIntro lets the speed pickup fall.
	PhaseStrikerIntro
	PhaseStriker
	// PhaseThrasherIntro lets the damage pickup fall.
	PhaseThrasherIntro
	PhaseThrasher
	PhaseWin
	PhaseLose
)

var phaseNames = [...]string{
	PhaseTitle:         "title",
	PhaseLaunch:        "launch",
	PhaseRaider:        "raider",
	PhaseStrikerIntro:  "striker-intro",
	PhaseStriker:       "striker",
	PhaseThrasherIntro: "thrasher-intro",
	PhaseThrasher:      "thrasher",
	PhaseWin:           "win",
	PhaseLose:          "lose",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Started reports whether the launch has finished and the session clock
// is running.
func (p Phase) Started() bool {
	return p >= PhaseRaider
}

// Combat reports whether the player has control: started and not over.
func (p Phase) Combat() bool {
	return p >= PhaseRaider && p <= PhaseThrasher
}

// Over reports whether the session reached a terminal phase.
func (p Phase) Over() bool {
	return p == PhaseWin || p == PhaseLose
}

// Stage returns the index of the stage that owns the phase (0 Raider,
// 1 Striker, 2 Thrasher), or -1 outside the stages. Intro phases belong to
// the stage they lead into.
func (p Phase) Stage() int {
	switch p {
	case PhaseRaider:
		return 0
	case PhaseStrikerIntro, PhaseStriker:
		return 1
	case PhaseThrasherIntro, PhaseThrasher:
		return 2
	default:
		return -1
	}
}

// encounter holds everything that differs between the three boss fights.
type encounter struct {
	kind   EnemyKind
	phase  Phase
	banner Texture
	delay  int64 // ms after the stage starts before the boss moves; also banner time

	// Alien bullet range: it idles after passing ScreenHeight*rangeNum/rangeDen
	// plus one bullet height.
	rangeNum, rangeDen int

	resetOnHit bool // a hit clears the bullet instead of pushing it off the bottom
	openBelow  bool // hit band has no lower bound
	jitter     bool // random vertical hops

	killBonus int // health granted when the stage completes
	next      Phase
	pickup    PickupKind
	hasPickup bool // arm pickup when the stage completes
}

var encounters = [3]encounter{
	Raider: {
		kind: Raider, phase: PhaseRaider, banner: TexLevel1, delay: 2000,
		rangeNum: 3, rangeDen: 2,
		next: PhaseStrikerIntro, pickup: SpeedPickup, hasPickup: true,
	},
	Striker: {
		kind: Striker, phase: PhaseStriker, banner: TexLevel2, delay: 1500,
		rangeNum: 1, rangeDen: 1,
		resetOnHit: true, openBelow: true, jitter: true,
		next: PhaseThrasherIntro, pickup: DamagePickup, hasPickup: true,
	},
	Thrasher: {
		kind: Thrasher, phase: PhaseThrasher, banner: TexLevel3, delay: 1500,
		rangeNum: 3, rangeDen: 1,
		killBonus: 10,
		next:      PhaseWin,
	},
}

// stageEncounter returns the encounter of stage i.
func stageEncounter(i int) *encounter {
	return &encounters[i]
}

// Stages reports which of the three stage flags is set. Exactly one is
// set from the first boss fight until the win; none otherwise.
func (s *Session) Stages() [3]bool {
	var out [3]bool
	if i := s.phase.Stage(); i >= 0 {
		out[i] = true
	}
	return out
}

// Banner returns the "level N" banner to show this frame, if any. It shows
// for the stage's start delay after the stage begins.
func (s *Session) Banner() (Texture, bool) {
	i := s.phase.Stage()
	if i < 0 {
		return 0, false
	}
	enc := stageEncounter(i)
	if s.now >= s.stageStart+enc.delay {
		return 0, false
	}
	return enc.banner, true
}

// stepStage runs the active phase's logic for one frame.
func (s *Session) stepStage() {
	switch s.phase {
	case PhaseRaider, PhaseStriker, PhaseThrasher:
		enc := stageEncounter(s.phase.Stage())
		if s.now > s.stageStart+enc.delay {
			s.stepEncounter(enc)
		}
	case PhaseStrikerIntro:
		s.stepPickup(SpeedPickup, PhaseStriker)
	case PhaseThrasherIntro:
		s.stepPickup(DamagePickup, PhaseThrasher)
	}
}

// completeStage ends the current boss fight on this tick.
func (s *Session) completeStage(enc *encounter) {
	s.player.Health += enc.killBonus
	s.stageStart = s.now
	if enc.hasPickup {
		s.pickups[enc.pickup].OnScreen = true
	}
	if enc.next == PhaseWin {
		s.enterWin()
		return
	}
	s.setPhase(enc.next)
}

// stepPickup runs one frame of a pickup intermission. The intermission
// ends when the player grabs the pickup or its random walk carries it off
// the side of the screen.
func (s *Session) stepPickup(kind PickupKind, next Phase) {
	pk := &s.pickups[kind]
	if !pk.OnScreen {
		s.setPhase(next)
		return
	}

	pk.Step(s.rng.Intn(20))
	switch {
	case pk.Touches(s.player.Box(s.metrics), s.metrics):
		pk.Apply(&s.player)
		pk.Retire(s.metrics)
		s.logDebug("pickup collected", "kind", kind)
		s.setPhase(next)
	case pk.Lost(s.metrics):
		pk.Retire(s.metrics)
		s.logDebug("pickup lost", "kind", kind)
		s.setPhase(next)
	}
}
