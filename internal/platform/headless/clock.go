// Package headless runs Star Collider without a terminal or window: a
// frame clock drives time, an autopilot plays, and the run is summarized
// as a report. The sim command and tests use it.
package headless

// FrameClock is a starcollider.Clock that advances a fixed step per frame,
// so a run with a given seed always plays out the same way.
type FrameClock struct {
	now  int64
	step int64
}

// NewFrameClock creates a clock for the given tick rate. Readings start
// at 1 so no frame ever sees time zero.
func NewFrameClock(tickRate int) *FrameClock {
	return &FrameClock{now: 1, step: int64(1000 / max(tickRate, 1))}
}

// NowMillis implements starcollider.Clock.
func (c *FrameClock) NowMillis() int64 { return c.now }

// Advance moves the clock one frame forward.
func (c *FrameClock) Advance() { c.now += c.step }

// Step returns the milliseconds per frame.
func (c *FrameClock) Step() int64 { return c.step }
