// Package orientation provides the Orientación learning game for the arcade:
// walk home on a board, answer where things are, and pick paths by length.
package orientation

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aprende-arcade/internal/config"
	platformcore "github.com/vovakirdan/aprende-arcade/internal/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/orientation/core"
	"github.com/vovakirdan/aprende-arcade/internal/registry"
)

const (
	avatarGlyph = '☻'
	homeGlyph   = '⌂'
	pathGlyph   = '•'
	starGlyph   = '★'
	noStarGlyph = '☆'

	minScreenW = 40
	minScreenH = 18
)

// Game implements the orientation game on top of a core.Session.
type Game struct {
	rng     *rand.Rand
	runtime platformcore.RuntimeConfig
	cfg     config.OrientationConfig
	session *core.Session
	err     error

	// Feedback for the last input
	message   string
	messageOK bool

	// Ticks left before the next challenge is shown; 0 when not waiting.
	advanceIn    int
	advanceDelay int

	// Status
	gameOver bool
	paused   bool
	tooSmall bool

	hudHeight int
}

// Package-level variables for configuration set via CLI
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used while loading config.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("orientation", func() registry.Game {
		return New()
	})
}

// New creates a new orientation game.
func New() *Game {
	return &Game{hudHeight: 4}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "orientation"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Orientación"
}

// Description returns the one-line menu description.
func (g *Game) Description() string {
	return "Camina hasta la casa, di dónde están las cosas y compara caminos"
}

// HelpLines returns the controls shown in the menu and help screens.
func (g *Game) HelpLines() []string {
	return []string{
		"Flechas: caminar hasta la casa",
		"1/2: responder las preguntas de posición",
		"1/2/3: elegir camino izquierda/centro/derecha",
		"R: jugar otra vez al terminar",
	}
}

// sessionConfig converts the YAML config into session settings.
func sessionConfig(cfg config.OrientationConfig) core.SessionConfig {
	return core.SessionConfig{
		GridSize:           cfg.Walk.GridSize,
		MinTargetDistance:  cfg.Walk.MinTargetDistance,
		PositionChallenges: cfg.Stages.PositionChallenges,
		DistanceChallenges: cfg.Stages.DistanceChallenges,
		AreaWidth:          cfg.Area.Width,
		AreaHeight:         cfg.Area.Height,
		Placement: core.PlacementConfig{
			ReferenceSize:  cfg.Placement.ReferenceSize,
			ObjectSize:     cfg.Placement.ObjectSize,
			Margin:         cfg.Placement.Margin,
			ThresholdRatio: cfg.Placement.ThresholdRatio,
			MinDeltaRatio:  cfg.Placement.MinDeltaRatio,
			NearFactor:     cfg.Placement.NearFactor,
			FarFactor:      cfg.Placement.FarFactor,
		},
		ThreeStars: cfg.Rating.ThreeStars,
		TwoStars:   cfg.Rating.TwoStars,
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.gameOver = false
	g.paused = false
	g.message = ""
	g.messageOK = false
	g.advanceIn = 0
	g.err = nil
	g.tooSmall = cfg.ScreenW < minScreenW || cfg.ScreenH < minScreenH

	gameCfg, src, err := config.LoadOrientation(configPath)
	if err != nil {
		logger.Warn("using default orientation config", "error", err)
		gameCfg = config.DefaultOrientationConfig()
	} else {
		logger.Debug("loaded orientation config", "source", src)
	}
	if difficultyPreset != "" {
		config.ApplyOrientationPreset(&gameCfg, difficultyPreset)
	}
	g.cfg = gameCfg
	g.advanceDelay = cfg.TicksFor(g.cfg.Timing.AdvanceDelayMS)

	g.session, g.err = core.NewSession(sessionConfig(g.cfg), g.rng)
	if g.err != nil {
		logger.Error("could not start orientation session", "error", g.err)
		g.session = nil
	} else {
		g.message = core.MsgWalkPrompt
	}
}

// Resize records the new terminal size. The scene is laid out at render
// time, so only the minimum size check changes.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	// Handle restart
	if input.Has(platformcore.ActionRestart) && g.gameOver {
		next := g.runtime
		next.Seed = g.rng.Int63()
		g.Reset(next)
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// A solved challenge stays on screen for the advance delay.
	if g.advanceIn > 0 {
		g.advanceIn--
		if g.advanceIn == 0 {
			return platformcore.StepResult{State: g.State(), Events: g.advance()}
		}
		return platformcore.StepResult{State: g.State()}
	}

	var out core.Outcome
	var err error
	handled := false

	switch g.session.Stage() {
	case core.StageWalk:
		if dir, ok := inputDir(input); ok {
			out, err = g.session.Move(dir)
			handled = true
		}
	case core.StagePosition:
		if n, ok := input.FirstChoice(); ok {
			opts := g.session.Question().Options()
			if n <= len(opts) {
				out, err = g.session.Answer(opts[n-1])
				handled = true
			}
		}
	case core.StageDistance:
		if n, ok := input.FirstChoice(); ok && n <= len(core.Slots) {
			out, err = g.session.ChoosePath(core.Slots[n-1])
			handled = true
		}
	}

	if handled && err == nil {
		g.message = out.Message
		g.messageOK = out.Correct
		if out.Correct {
			g.advanceIn = g.advanceDelay
		}
	}

	return platformcore.StepResult{State: g.State()}
}

// inputDir returns the first arrow pressed this frame.
func inputDir(input platformcore.InputFrame) (core.Dir, bool) {
	switch {
	case input.Has(platformcore.ActionUp):
		return core.DirUp, true
	case input.Has(platformcore.ActionDown):
		return core.DirDown, true
	case input.Has(platformcore.ActionLeft):
		return core.DirLeft, true
	case input.Has(platformcore.ActionRight):
		return core.DirRight, true
	}
	return 0, false
}

// advance moves the session on and reports finished stages.
func (g *Game) advance() []platformcore.Event {
	prev := g.session.Stage()
	changed, err := g.session.Advance()
	if err != nil {
		logger.Error("could not prepare next challenge", "stage", prev, "error", err)
		g.err = err
		g.gameOver = true
		return nil
	}

	g.message = ""
	g.messageOK = false
	if !changed {
		return nil
	}

	events := []platformcore.Event{{
		Kind:   platformcore.EventStageCompleted,
		Key:    "stage-" + prev.String(),
		Label:  prev.Title(),
		Score:  g.session.StageCorrect(prev),
		Detail: fmt.Sprintf("%d de %d", g.session.StageCorrect(prev), g.session.ChallengesIn(prev)),
	}}

	if g.session.Done() {
		g.gameOver = true
		rating := g.session.Rating()
		events = append(events, platformcore.Event{
			Kind:   platformcore.EventRunFinished,
			Key:    "run",
			Label:  core.StageResult.Title(),
			Score:  g.session.Total(),
			Detail: fmt.Sprintf("%s %s", stars(rating.Stars), rating.Message),
		})
	}
	return events
}

// stars renders a 1-3 star rating as "★★☆".
func stars(n int) string {
	return strings.Repeat(string(starGlyph), n) + strings.Repeat(string(noStarGlyph), 3-n)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	if g.session == nil {
		g.renderOverlay(dst, "No se pudo iniciar", errText(g.err))
		return
	}

	switch g.session.Stage() {
	case core.StageWalk:
		g.renderWalk(dst)
	case core.StagePosition:
		g.renderPosition(dst)
	case core.StageDistance:
		g.renderDistance(dst)
	case core.StageResult:
		g.renderResult(dst)
	}

	g.renderMessage(dst)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// renderHUD draws the title bar with stage, progress and score.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Orientación"
	controls := ""
	if g.session != nil {
		st := g.session.Stage()
		hud += " | " + st.Title()
		if p := g.session.Progress(); p != "" {
			hud += " | " + p
		}
		hud += " | Puntos: " + strconv.Itoa(g.session.Total()) + "/" + strconv.Itoa(g.session.MaxTotal())

		switch st {
		case core.StageWalk:
			controls = " ↑/↓/←/→: Caminar | P: Pausa | Q: Salir"
		case core.StagePosition:
			controls = " 1/2: Responder | P: Pausa | Q: Salir"
		case core.StageDistance:
			controls = " 1/2/3: Elegir camino | P: Pausa | Q: Salir"
		default:
			controls = " R: Jugar otra vez | Q: Salir"
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderWalk draws the board with the avatar and the house.
func (g *Game) renderWalk(dst *platformcore.Screen) {
	w := g.session.Walk()
	n := w.Size()
	cellW := 3

	boardW := n*cellW + 2
	boardH := n + 2
	x0 := (dst.Width() - boardW) / 2
	y0 := g.hudHeight + 1

	dst.DrawBox(platformcore.NewRect(x0, y0, boardW, boardH), platformcore.ColorGray)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx := x0 + 1 + x*cellW + cellW/2
			sy := y0 + 1 + y
			cell := core.Cell{X: x, Y: y}
			switch {
			case cell == w.Pos():
				dst.SetWithColor(sx, sy, avatarGlyph, platformcore.ColorBrightYellow)
			case cell == w.Target():
				dst.SetWithColor(sx, sy, homeGlyph, platformcore.ColorBrightGreen)
			default:
				dst.SetWithColor(sx, sy, '·', platformcore.ColorGray)
			}
		}
	}

	legend := string(avatarGlyph) + " tú   " + string(homeGlyph) + " casa"
	dst.DrawTextCenteredWithColor(y0+boardH, legend, platformcore.ColorGray)
}

// sceneRect returns the screen area used for the marker scene and paths.
func (g *Game) sceneRect(dst *platformcore.Screen) platformcore.Rect {
	top := g.hudHeight + 2
	h := dst.Height() - top - 4
	return platformcore.NewRect(2, top, dst.Width()-4, h)
}

// renderPosition draws the two markers in the scaled scene and the question.
func (g *Game) renderPosition(dst *platformcore.Screen) {
	q := g.session.Question()
	area := g.sceneRect(dst)

	dst.DrawTextCenteredWithColor(g.hudHeight, q.Prompt(), platformcore.ColorWhite)
	dst.DrawBox(area, platformcore.ColorGray)

	inner := platformcore.NewRect(area.X+1, area.Y+1, area.W-2, area.H-2)
	g.drawMarker(dst, inner, q, q.Reference, platformcore.ColorBrightCyan)
	g.drawMarker(dst, inner, q, q.Object, platformcore.ColorBrightMagenta)

	opts := q.Options()
	parts := make([]string, len(opts))
	for i, a := range opts {
		parts[i] = strconv.Itoa(i+1) + ": " + string(a)
	}
	dst.DrawTextCenteredWithColor(area.Bottom()+1, strings.Join(parts, "    "), platformcore.ColorBrightYellow)
}

// drawMarker draws one marker's glyph at its scaled center with its name.
func (g *Game) drawMarker(dst *platformcore.Screen, inner platformcore.Rect, q core.Question, m core.Marker, c platformcore.Color) {
	center := m.Center()
	sx, sy := project(inner, center.X/q.Width, center.Y/q.Height)

	dst.SetWithColor(sx, sy, m.Item.Symbol, c)

	label := m.Item.Name
	lx := sx - utf8.RuneCountInString(label)/2
	ly := sy + 1
	if ly >= inner.Bottom() {
		ly = sy - 1
	}
	lx = platformcore.Clamp(lx, inner.X, inner.Right()-utf8.RuneCountInString(label))
	dst.DrawTextWithColor(lx, ly, label, c)
}

// project maps fractions of a logical area (0..1 on each axis) to a cell
// inside r.
func project(r platformcore.Rect, fx, fy float64) (int, int) {
	fx = platformcore.ClampF(fx, 0, 1)
	fy = platformcore.ClampF(fy, 0, 1)
	return r.X + int(fx*float64(r.W-1)+0.5), r.Y + int(fy*float64(r.H-1)+0.5)
}

// renderDistance draws the three paths side by side.
func (g *Game) renderDistance(dst *platformcore.Screen) {
	pc := g.session.Paths()
	area := g.sceneRect(dst)

	dst.DrawTextCenteredWithColor(g.hudHeight, pc.Prompt(), platformcore.ColorWhite)

	panelW := area.W / len(core.Slots)
	for i, slot := range core.Slots {
		panel := platformcore.NewRect(area.X+i*panelW, area.Y, panelW-1, area.H)
		dst.DrawBox(panel, platformcore.ColorGray)

		inner := platformcore.NewRect(panel.X+2, panel.Y+1, panel.W-4, panel.H-2)
		path := pc.Paths[slot]
		prevX, prevY := 0, 0
		for j, p := range path.Points {
			x, y := project(inner, p.X/100, p.Y/100)
			if j > 0 {
				dst.DrawLine(prevX, prevY, x, y, pathGlyph, platformcore.ColorBrightCyan)
			}
			prevX, prevY = x, y
		}
		if len(path.Points) > 0 {
			fx, fy := project(inner, path.Points[0].X/100, path.Points[0].Y/100)
			dst.SetWithColor(fx, fy, '○', platformcore.ColorBrightGreen)
			dst.SetWithColor(prevX, prevY, '◆', platformcore.ColorBrightRed)
		}

		label := strconv.Itoa(i+1) + ": " + slot.Label()
		lx := panel.X + (panel.W-utf8.RuneCountInString(label))/2
		dst.DrawTextWithColor(lx, panel.Bottom(), label, platformcore.ColorBrightYellow)
	}
}

// renderResult draws the stars and the per-stage breakdown.
func (g *Game) renderResult(dst *platformcore.Screen) {
	rating := g.session.Rating()
	y := g.hudHeight + 2

	dst.DrawTextCenteredWithColor(y, stars(rating.Stars), platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(y+2, rating.Message, platformcore.ColorBrightGreen)
	dst.DrawTextCenteredWithColor(y+4,
		fmt.Sprintf("Respuestas correctas: %d de %d", g.session.Total(), g.session.MaxTotal()),
		platformcore.ColorWhite)

	for i, st := range []core.Stage{core.StageWalk, core.StagePosition, core.StageDistance} {
		line := fmt.Sprintf("%-10s %d de %d", st.Title(), g.session.StageCorrect(st), g.session.ChallengesIn(st))
		dst.DrawTextCenteredWithColor(y+6+i, line, platformcore.ColorGray)
	}
	dst.DrawTextCenteredWithColor(y+10, "Press R to restart", platformcore.ColorGray)
}

// renderMessage draws the feedback for the last input at the bottom.
func (g *Game) renderMessage(dst *platformcore.Screen) {
	if g.message == "" {
		return
	}
	c := platformcore.ColorBrightRed
	if g.messageOK {
		c = platformcore.ColorBrightGreen
	} else if g.message == core.MsgWalkPrompt {
		c = platformcore.ColorWhite
	}
	dst.DrawTextCenteredWithColor(dst.Height()-1, g.message, c)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := utf8.RuneCountInString(line1)
	if l := utf8.RuneCountInString(line2); l > maxLen {
		maxLen = l
	}
	boxW := maxLen + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(box.Y+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(box.Y+3, line2, platformcore.ColorGray)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	score := 0
	if g.session != nil {
		score = g.session.Total()
	}
	return platformcore.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Session returns the running session, or nil when it could not start.
func (g *Game) Session() *core.Session { return g.session }

// Waiting reports whether a solved challenge is waiting for the delay.
func (g *Game) Waiting() bool { return g.advanceIn > 0 }

// Message returns the feedback for the last input.
func (g *Game) Message() string { return g.message }
