package headless

import "github.com/vovakirdan/star-collider/internal/games/starcollider"

// Recorder is a starcollider.Renderer that draws nothing and counts what
// would have been drawn.
type Recorder struct {
	draws     map[starcollider.Texture]int
	lastFrame []starcollider.Texture
	frame     []starcollider.Texture
	presented int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{draws: make(map[starcollider.Texture]int)}
}

// Render implements starcollider.Renderer.
func (r *Recorder) Render(t starcollider.Texture, _, _ int, _ *starcollider.DrawOptions) {
	r.draws[t]++
	r.frame = append(r.frame, t)
}

// SetColorMod implements starcollider.Renderer.
func (r *Recorder) SetColorMod(starcollider.Texture, uint8, uint8, uint8) {}

// SetAlphaMod implements starcollider.Renderer.
func (r *Recorder) SetAlphaMod(starcollider.Texture, uint8) {}

// Clear implements starcollider.Renderer.
func (r *Recorder) Clear() { r.frame = r.frame[:0] }

// Present implements starcollider.Renderer.
func (r *Recorder) Present() {
	r.presented++
	r.lastFrame = append(r.lastFrame[:0], r.frame...)
}

// Draws returns how often t was drawn over the whole run.
func (r *Recorder) Draws(t starcollider.Texture) int { return r.draws[t] }

// LastFrame returns the textures of the last presented frame, in draw
// order.
func (r *Recorder) LastFrame() []starcollider.Texture { return r.lastFrame }

// Presented returns the number of presented frames.
func (r *Recorder) Presented() int { return r.presented }
