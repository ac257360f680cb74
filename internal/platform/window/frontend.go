package window

import (
	"context"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/platform/sound"
	"github.com/vovakirdan/star-collider/internal/registry"
)

func init() {
	registry.Register("window", func() registry.Frontend { return &Frontend{} })
}

// Frontend plays the game in a desktop window.
type Frontend struct{}

// ID implements registry.Frontend.
func (f *Frontend) ID() string { return "window" }

// Title implements registry.Frontend.
func (f *Frontend) Title() string { return "Window" }

// Run implements registry.Frontend.
func (f *Frontend) Run(ctx context.Context, env registry.Env) (starcollider.Result, error) {
	audio, closeAudio := sound.Open(env.Config.Audio, env.Logger)
	defer closeAudio()

	return Run(ctx, Options{Env: env, Frontend: f.ID(), Audio: audio})
}
