package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aprende-arcade/internal/core"
	"github.com/vovakirdan/aprende-arcade/internal/registry"
	"github.com/vovakirdan/aprende-arcade/internal/storage"
)

// recorder writes game events into the session store. A store error is
// logged once and recording stops; the game keeps running.
type recorder struct {
	store    *storage.Store
	logger   *log.Logger
	gameID   string
	run      storage.Run
	active   bool
	finished bool
	runIDs   []string
}

func newRecorder(store *storage.Store, gameID string, logger *log.Logger) *recorder {
	return &recorder{store: store, gameID: gameID, logger: logger}
}

func (r *recorder) disable(op string, err error) {
	r.logger.Warn("results store disabled", "op", op, "error", err)
	r.store = nil
	r.active = false
}

// start opens a new run.
func (r *recorder) start() {
	r.active = false
	r.finished = false
	if r.store == nil {
		return
	}
	run, err := r.store.StartRun(r.gameID)
	if err != nil {
		r.disable("start run", err)
		return
	}
	r.run = run
	r.active = true
	r.runIDs = append(r.runIDs, run.ID)
	r.logger.Debug("run started", "game", r.gameID, "run", run.ID)
}

// record stores every event of a step.
func (r *recorder) record(events []core.Event) {
	for _, ev := range events {
		if !r.active {
			return
		}
		if ev.Kind == core.EventRunFinished {
			r.finish(ev.Score)
		}
		err := r.store.RecordResult(storage.Result{
			RunID:  r.run.ID,
			Key:    ev.Key,
			Label:  ev.Label,
			Score:  ev.Score,
			Detail: ev.Detail,
		})
		if err != nil {
			r.disable("record result", err)
			return
		}
		r.logger.Debug("result recorded", "kind", ev.Kind, "key", ev.Key, "score", ev.Score)
	}
}

// finish closes the run with its final score, once.
func (r *recorder) finish(score int) {
	if !r.active || r.finished {
		return
	}
	if err := r.store.FinishRun(r.run.ID, score); err != nil {
		r.disable("finish run", err)
		return
	}
	r.finished = true
	r.logger.Debug("run finished", "game", r.gameID, "run", r.run.ID, "score", score)
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   newRecorder(store, game.ID(), logger),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.recorder.start()

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if quit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame); quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot relayout start over at the new size.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorder.start()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recorder.record(result.Events)

	if m.gameState.GameOver {
		m.recorder.finish(m.gameState.Score)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// RunIDs returns the IDs of the runs recorded by this model, oldest first.
func (m Model) RunIDs() []string {
	return m.recorder.runIDs
}

// Run starts the Bubble Tea program for game and returns the IDs of the
// runs it recorded.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) ([]string, error) {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		return m.RunIDs(), err
	}
	return model.RunIDs(), err
}
