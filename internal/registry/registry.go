// Package registry keeps the catalog of playable games.
// Each game package registers a factory from init(), so the CLI and the
// menu can list and start games by ID without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/aprende-arcade/internal/core"
)

// Game is the contract between a learning game and the platform.
// Implementations hold only game logic: the platform maps keys to actions,
// drives Step at a fixed tick rate and turns the Screen into terminal output.
type Game interface {
	// ID returns the stable identifier used on the command line ("pixelart").
	ID() string

	// Title returns the display name shown in menus.
	Title() string

	// Reset starts a new run. Called once before the first Step and again
	// when the player restarts.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick with the actions pressed since the
	// previous tick. Events in the result are recorded by the platform.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst, clearing it first.
	Render(dst *core.Screen)

	// State returns the current score and flags.
	State() core.GameState
}

// Describer is implemented by games that provide a one-line description
// for the menu and the list command.
type Describer interface {
	Description() string
}

// Helper is implemented by games that publish their own key help lines.
type Helper interface {
	HelpLines() []string
}

// Resizer is implemented by games that can follow a terminal resize
// without losing progress. Games without it are reset on resize.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory under id.
// Panics if the id is empty or already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Metadata comes from a throwaway instance.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	infos[id] = info
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
