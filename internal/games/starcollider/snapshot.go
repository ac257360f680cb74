package starcollider

// Snapshot captures the simulation state for determinism testing and for
// the headless report.
type Snapshot struct {
	Frame       int64
	Phase       Phase
	Elapsed     int64
	Health      int
	PlayerX     int
	PlayerY     int
	TurretY     int
	Shooting    bool
	HeatRed     int
	HeatBlue    int
	Overheated  bool
	BulletCount int
	ShotX       int
	ShotY       int
	Enemies     [3]EnemySnapshot
	Pickups     [2]PickupSnapshot
	BgOffsets   [2]int
	Score       int
	Volume      int
}

// EnemySnapshot is one boss in a Snapshot.
type EnemySnapshot struct {
	Health   int
	X, Y     int
	Shooting bool
}

// PickupSnapshot is one pickup in a Snapshot.
type PickupSnapshot struct {
	X, Y     int
	OnScreen bool
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:       s.frames,
		Phase:       s.phase,
		Elapsed:     s.ElapsedMillis(),
		Health:      s.player.Health,
		PlayerX:     s.player.X,
		PlayerY:     s.player.Y,
		TurretY:     s.player.TurretY,
		Shooting:    s.player.Shooting,
		HeatRed:     s.heat.Red,
		HeatBlue:    s.heat.Blue,
		Overheated:  !s.heat.Cooled(),
		BulletCount: s.pool.Len(),
		ShotX:       s.shot.X,
		ShotY:       s.shot.Y,
		BgOffsets:   s.bg.Offsets,
		Score:       s.score,
		Volume:      s.volume,
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = EnemySnapshot{Health: e.Health, X: e.X, Y: e.Y, Shooting: e.Shooting}
	}
	for i, pk := range s.pickups {
		snap.Pickups[i] = PickupSnapshot{X: pk.X, Y: pk.Y, OnScreen: pk.OnScreen}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	var h uint64
	mix := func(v int64) {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	bit := func(b bool) int64 {
		if b {
			return 1
		}
		return 0
	}

	mix(snap.Frame)
	mix(int64(snap.Phase))
	mix(snap.Elapsed)
	mix(int64(snap.Health))
	mix(int64(snap.PlayerX))
	mix(int64(snap.PlayerY))
	mix(int64(snap.TurretY))
	mix(bit(snap.Shooting))
	mix(int64(snap.HeatRed))
	mix(int64(snap.HeatBlue))
	mix(bit(snap.Overheated))
	mix(int64(snap.BulletCount))
	mix(int64(snap.ShotX))
	mix(int64(snap.ShotY))

	for _, e := range snap.Enemies {
		mix(int64(e.Health))
		mix(int64(e.X))
		mix(int64(e.Y))
		mix(bit(e.Shooting))
	}

	for _, pk := range snap.Pickups {
		mix(int64(pk.X))
		mix(int64(pk.Y))
		mix(bit(pk.OnScreen))
	}

	for _, off := range snap.BgOffsets {
		mix(int64(off))
	}

	mix(int64(snap.Score))
	mix(int64(snap.Volume))
	return h
}
