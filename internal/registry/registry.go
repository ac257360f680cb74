// Package registry provides a global registry for game frontends.
// Frontends register themselves in init() functions, allowing the CLI to
// discover and launch them without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/storage"
)

// ErrUnknownFrontend is returned by Create for an unregistered ID.
var ErrUnknownFrontend = errors.New("registry: unknown frontend")

// Env is everything a frontend needs to run one session.
type Env struct {
	Config     config.Config
	ConfigPath string // file to watch for live reloads; "" disables watching
	Logger     *log.Logger
	Seed       int64 // 0 picks a time-based seed
	Player     string

	// Store records every finished run; nil disables saving.
	Store *storage.Store
}

// Record saves a run to e.Store and reports whether it was written. A run
// quit on the title screen is not worth a row and is skipped.
func (e Env) Record(frontend string, res starcollider.Result) bool {
	if e.Store == nil || (res.Outcome == starcollider.OutcomeQuit && res.StageReached == 0) {
		return false
	}
	id, err := e.Store.SaveRun(storage.NewRun(frontend, e.Player, res))
	if err != nil {
		if e.Logger != nil {
			e.Logger.Warn("could not save run", "error", err)
		}
		return false
	}
	if e.Logger != nil {
		e.Logger.Info("run saved", "id", id, "outcome", res.Outcome, "score", res.Score, "stage", res.StageReached)
	}
	return true
}

// Frontend drives a starcollider.Session on some device: a terminal, a
// window, or nothing at all.
type Frontend interface {
	// ID returns a unique identifier (e.g., "terminal", "window").
	// Used for CLI commands and stored with each run.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run plays until the player quits and returns the result of the last
	// run. A frontend that offers restarts saves each finished run to
	// env.Store itself. Run returns early with the partial result when ctx
	// is cancelled.
	Run(ctx context.Context, env Env) (starcollider.Result, error)
}

// Info contains metadata about a registered frontend.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a frontend.
type Factory func() Frontend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a frontend factory to the registry.
// Typically called from a frontend's init() function.
// Panics if a frontend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered frontends, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new frontend by its ID.
func Create(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFrontend, id)
	}

	return f(), nil
}

// Exists checks if a frontend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// unregister removes a frontend. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(titles, id)
}
