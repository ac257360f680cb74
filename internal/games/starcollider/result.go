package starcollider

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeQuit Outcome = "quit"
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

// Result is the summary a frontend persists after a session.
type Result struct {
	Outcome       Outcome
	Score         int
	ElapsedMillis int64
	StageReached  int
	LoseReason    string
	Frames        int64
	Seed          int64
}

// Result summarizes the session so far. A session that has not reached a
// terminal phase counts as quit.
func (s *Session) Result() Result {
	res := Result{
		Outcome:       OutcomeQuit,
		Score:         s.score,
		ElapsedMillis: s.ElapsedMillis(),
		StageReached:  s.StageReached(),
		LoseReason:    s.loseReason,
		Frames:        s.frames,
		Seed:          s.seed,
	}
	switch s.phase {
	case PhaseWin:
		res.Outcome = OutcomeWin
	case PhaseLose:
		res.Outcome = OutcomeLose
	}
	return res
}

// Settled reports whether nothing more will change: the run was lost, or
// won and the final score is in.
func (s *Session) Settled() bool {
	return s.phase == PhaseLose || s.scored
}
