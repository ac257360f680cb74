package core

// RuntimeConfig contains configuration passed to a session at construction.
type RuntimeConfig struct {
	ScreenW    int   // Playfield width in pixels
	ScreenH    int   // Playfield height in pixels
	TickRate   int   // Frames per second the frontend drives (default 60)
	Seed       int64 // RNG seed for deterministic gameplay
	Difficulty int   // Boss health divisor input, 1..20 (default 10)
}

// DefaultConfig returns a RuntimeConfig with the playfield the game was
// tuned for.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    480,
		ScreenH:    640,
		TickRate:   60,
		Seed:       0, // 0 means use current time in platform layer
		Difficulty: 10,
	}
}
