// Package pixelart provides the Pixel Art copy game for the arcade.
package pixelart

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aprende-arcade/internal/config"
	platformcore "github.com/vovakirdan/aprende-arcade/internal/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/levels"
	"github.com/vovakirdan/aprende-arcade/internal/registry"
)

// Game implements the Pixel Art game: copy the model grid with the palette
// and check how close the copy is.
type Game struct {
	cfg     config.PixelArtConfig
	catalog *core.Catalog
	palette []core.ColorKey
	summary *core.Summary

	// Current level
	levelIndex int
	target     *core.Grid
	player     *core.Grid
	marks      []core.Mark
	result     core.Result
	checked    bool

	// Tool state
	cursor   core.Coord
	selected core.ColorKey // Empty means eraser
	message  string

	// Screen dimensions
	screenW int
	screenH int

	// Status
	gameOver bool
	paused   bool
	tooSmall bool

	// Layout
	cellW     int
	hudHeight int
	targetX   int
	playerX   int
	boardY    int
}

// Package-level variables for configuration set via CLI
var (
	selectedStartLevel int
	configPath         string
	levelsDir          string
	difficultyPreset   config.DifficultyPreset
	logger             = log.New(io.Discard)
)

// SetStartLevel sets the starting level (1-indexed). 0 means use the config.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsDir overrides the directory extra YAML levels are read from.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used while loading config and levels.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("pixelart", func() registry.Game {
		return New()
	})
}

// New creates a new Pixel Art game.
func New() *Game {
	return &Game{
		hudHeight: 4,
		cellW:     2,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "pixelart"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pixel Art"
}

// Description returns the one-line menu description.
func (g *Game) Description() string {
	return "Copia el dibujo del modelo con la paleta de colores"
}

// HelpLines returns the controls shown in the menu and help screens.
func (g *Game) HelpLines() []string {
	return []string{
		"Flechas: mover el cursor",
		"Espacio/Enter: pintar",
		"1-9: elegir color · 0/E: borrador",
		"C: comprobar · X: borrar todo",
		"[ ]: nivel anterior / siguiente",
	}
}

// loadCatalog builds the level catalog: built-in levels plus any YAML
// levels found in the configured directory.
func loadCatalog(dir string) *core.Catalog {
	cat, err := levels.Catalog(dir, logger)
	if err != nil {
		logger.Warn("could not load extra levels", "dir", dir, "error", err)
	}
	return cat
}

// parsePalette turns the configured key letters into palette order.
// Invalid or repeated letters are skipped; missing colors are appended.
func parsePalette(s string) []core.ColorKey {
	seen := make(map[core.ColorKey]bool)
	out := make([]core.ColorKey, 0, len(core.Palette))
	for _, r := range s {
		k, ok := core.ParseColorKey(r)
		if !ok || k.IsEmpty() || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	for _, info := range core.Palette {
		if !seen[info.Key] {
			out = append(out, info.Key)
		}
	}
	return out
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.paused = false
	g.message = ""

	gameCfg, src, err := config.LoadPixelArt(configPath)
	if err != nil {
		logger.Warn("using default pixel art config", "error", err)
		gameCfg = config.DefaultPixelArtConfig()
	} else {
		logger.Debug("loaded pixel art config", "source", src)
	}
	if difficultyPreset != "" {
		config.ApplyPixelArtPreset(&gameCfg, difficultyPreset)
	}
	g.cfg = gameCfg

	dir := g.cfg.Levels.Dir
	if levelsDir != "" {
		dir = levelsDir
	}
	g.catalog = loadCatalog(dir)
	g.palette = parsePalette(g.cfg.Display.Palette)
	g.selected = g.palette[0]
	g.summary = core.NewSummary()

	start := g.cfg.Levels.StartLevel
	if selectedStartLevel > 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	if start < 1 || start > g.catalog.Len() {
		start = 1
	}
	g.loadLevel(start - 1)
}

// loadLevel switches to level i with an empty player grid.
func (g *Game) loadLevel(i int) {
	g.levelIndex = i
	g.target = g.catalog.Build(i)
	g.player = core.NewGridLike(g.target)
	g.cursor = core.C(0, 0)
	g.clearCheck()
	g.calculateLayout()
}

func (g *Game) clearCheck() {
	g.marks = nil
	g.checked = false
	g.result = core.Result{}
}

// calculateLayout places the target and player boards side by side.
func (g *Game) calculateLayout() {
	n := g.target.Size
	gap := 4

	g.cellW = g.cfg.Display.CellWidth
	if g.cellW < 1 {
		g.cellW = 1
	}
	if 2*n*g.cellW+gap+2 > g.screenW && g.cellW > 1 {
		g.cellW = 1
	}

	g.targetX = 2
	g.playerX = g.targetX + n*g.cellW + gap
	g.boardY = g.hudHeight + 1

	g.tooSmall = g.playerX+n*g.cellW > g.screenW || g.boardY+n+2 > g.screenH
}

// Resize recomputes the layout for a new terminal size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.target != nil {
		g.calculateLayout()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	// Handle restart
	if input.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(platformcore.RuntimeConfig{
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return platformcore.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.target == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// Level switching
	if input.Has(platformcore.ActionPrevLevel) && g.levelIndex > 0 {
		g.loadLevel(g.levelIndex - 1)
		g.message = ""
	}
	if input.Has(platformcore.ActionNextLevel) && g.levelIndex < g.catalog.Len()-1 {
		g.loadLevel(g.levelIndex + 1)
		g.message = ""
	}

	// Cursor movement
	n := g.target.Size
	if input.Has(platformcore.ActionUp) {
		g.cursor.Y = platformcore.Clamp(g.cursor.Y-1, 0, n-1)
	}
	if input.Has(platformcore.ActionDown) {
		g.cursor.Y = platformcore.Clamp(g.cursor.Y+1, 0, n-1)
	}
	if input.Has(platformcore.ActionLeft) {
		g.cursor.X = platformcore.Clamp(g.cursor.X-1, 0, n-1)
	}
	if input.Has(platformcore.ActionRight) {
		g.cursor.X = platformcore.Clamp(g.cursor.X+1, 0, n-1)
	}

	// Tool selection
	if choice, ok := input.FirstChoice(); ok && choice <= len(g.palette) {
		g.selected = g.palette[choice-1]
	}
	if input.Has(platformcore.ActionErase) {
		g.selected = core.Empty
	}

	if input.Has(platformcore.ActionConfirm) {
		g.paint()
	}
	if input.Has(platformcore.ActionClear) {
		g.player.Clear()
		g.clearCheck()
		g.message = ""
	}

	var events []platformcore.Event
	if input.Has(platformcore.ActionCheck) {
		events = g.check()
	}

	return platformcore.StepResult{State: g.State(), Events: events}
}

// paint applies the selected tool at the cursor and drops that cell's mark.
func (g *Game) paint() {
	g.player.Set(g.cursor, g.selected)
	if g.marks != nil {
		g.marks[g.cursor.Y*g.player.Size+g.cursor.X] = core.MarkNone
	}
}

// check scores the player grid and records the result.
func (g *Game) check() []platformcore.Event {
	res, marks := core.Check(g.target, g.player)
	g.result = res
	g.marks = marks
	g.checked = true
	g.summary.Record(g.levelIndex, res)
	g.message = core.Feedback(res)

	def, _ := g.catalog.Level(g.levelIndex)
	events := []platformcore.Event{{
		Kind:   platformcore.EventLevelChecked,
		Key:    platformcore.LevelKey(g.levelIndex),
		Label:  core.LevelLabel(g.levelIndex, def.Title),
		Score:  res.Percentage,
		Detail: core.Compact(res),
	}}

	if g.summary.PerfectCount() == g.catalog.Len() {
		g.gameOver = true
		events = append(events, platformcore.Event{
			Kind:   platformcore.EventRunFinished,
			Key:    "run",
			Label:  "Todos los niveles",
			Score:  g.summary.Total(),
			Detail: fmt.Sprintf("%d/%d niveles al 100%%", g.summary.PerfectCount(), g.catalog.Len()),
		})
	}
	return events
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.target == nil {
		g.renderOverlay(dst, "Sin niveles", "Revisa el directorio de niveles")
		return
	}
	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoards(dst)
	g.renderFeedback(dst)
	g.renderSummary(dst)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "¡Todos los niveles al 100%!", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the title bar and the palette.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Pixel Art"
	if g.target != nil {
		def, _ := g.catalog.Level(g.levelIndex)
		hud += " | " + core.LevelLabel(g.levelIndex, def.Title) +
			" (" + strconv.Itoa(g.levelIndex+1) + "/" + strconv.Itoa(g.catalog.Len()) + ")" +
			" | Total: " + strconv.Itoa(g.summary.Total())
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	// Palette: "1██ 2██ ... 0 Borrador"
	x := 1
	for i, k := range g.palette {
		label := strconv.Itoa(i + 1)
		c := platformcore.ColorGray
		if k == g.selected {
			c = platformcore.ColorBrightYellow
			dst.SetWithColor(x-1, 2, '[', c)
		}
		dst.DrawTextWithColor(x, 2, label, c)
		dst.SetWithColor(x+1, 2, '█', keyColor(k))
		dst.SetWithColor(x+2, 2, '█', keyColor(k))
		if k == g.selected {
			dst.SetWithColor(x+3, 2, ']', c)
		}
		x += 5
	}
	eraser := "0 " + core.EraserName
	c := platformcore.ColorGray
	if g.selected.IsEmpty() {
		c = platformcore.ColorBrightYellow
		eraser = "[" + eraser + "]"
	}
	dst.DrawTextWithColor(x, 2, eraser, c)

	tool := core.EraserName
	if !g.selected.IsEmpty() {
		tool = g.selected.Name()
	}
	dst.DrawTextWithColor(x+utf8.RuneCountInString(eraser)+2, 2, "Herramienta: "+tool, platformcore.ColorWhite)

	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoards draws the model on the left and the player grid on the right.
func (g *Game) renderBoards(dst *platformcore.Screen) {
	n := g.target.Size
	labelY := g.boardY - 1

	dst.DrawTextWithColor(g.targetX, labelY, "Modelo", platformcore.ColorGray)
	dst.DrawTextWithColor(g.playerX, labelY, "Tu dibujo", platformcore.ColorGray)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			y := g.boardY + row
			if g.cfg.Display.ShowTarget {
				g.renderCell(dst, g.targetX+col*g.cellW, y, g.target.At(row, col), core.MarkNone)
			} else {
				g.renderCell(dst, g.targetX+col*g.cellW, y, core.Empty, core.MarkNone)
			}

			mark := core.MarkNone
			if g.marks != nil {
				mark = g.marks[row*n+col]
			}
			g.renderCell(dst, g.playerX+col*g.cellW, y, g.player.At(row, col), mark)
		}
	}
	if !g.cfg.Display.ShowTarget {
		dst.DrawTextWithColor(g.targetX, g.boardY+n/2, "(oculto)", platformcore.ColorGray)
	}

	// Cursor: edge markers plus a shaded cell
	cx := g.playerX + g.cursor.X*g.cellW
	cy := g.boardY + g.cursor.Y
	dst.SetWithColor(g.playerX-1, cy, '▸', platformcore.ColorBrightYellow)
	dst.SetWithColor(cx, g.boardY+n, '▴', platformcore.ColorBrightYellow)
	under := g.player.Get(g.cursor)
	for i := 0; i < g.cellW; i++ {
		if under.IsEmpty() {
			dst.SetWithColor(cx+i, cy, '░', platformcore.ColorBrightYellow)
		} else {
			dst.SetWithColor(cx+i, cy, '▓', keyColor(under))
		}
	}
}

// renderCell draws one pixel, with an × over cells marked incorrect.
func (g *Game) renderCell(dst *platformcore.Screen, x, y int, k core.ColorKey, mark core.Mark) {
	for i := 0; i < g.cellW; i++ {
		if k.IsEmpty() {
			r := ' '
			if i == 0 {
				r = '·'
			}
			dst.SetWithColor(x+i, y, r, platformcore.ColorGray)
		} else {
			dst.SetWithColor(x+i, y, '█', keyColor(k))
		}
	}
	if mark == core.MarkIncorrect {
		dst.SetWithColor(x+g.cellW-1, y, '×', platformcore.ColorBrightRed)
	}
}

// renderFeedback draws the score line and the tier message below the boards.
func (g *Game) renderFeedback(dst *platformcore.Screen) {
	y := g.boardY + g.target.Size + 1
	if g.checked {
		c := platformcore.ColorBrightRed
		switch core.TierFor(g.result.Percentage) {
		case core.TierPerfect:
			c = platformcore.ColorBrightGreen
		case core.TierGood:
			c = platformcore.ColorBrightYellow
		}
		dst.DrawTextWithColor(g.targetX, y, core.ScoreLine(g.result), c)
	}
	if g.message != "" {
		dst.DrawTextWithColor(g.targetX, y+1, g.message, platformcore.ColorWhite)
	}
}

// renderSummary lists every level's latest result to the right of the
// boards when there is room.
func (g *Game) renderSummary(dst *platformcore.Screen) {
	lines := g.summary.Lines(g.catalog)
	x := g.playerX + g.target.Size*g.cellW + 3
	width := 0
	for _, l := range lines {
		if w := utf8.RuneCountInString(l.Label) + utf8.RuneCountInString(l.Status) + 2; w > width {
			width = w
		}
	}
	if x+width > dst.Width() {
		return
	}

	y := g.boardY - 1
	dst.DrawTextWithColor(x, y, "Resumen", platformcore.ColorCyan)
	for i, l := range lines {
		c := platformcore.ColorGray
		if l.Done {
			c = platformcore.ColorWhite
		}
		if i == g.levelIndex {
			c = platformcore.ColorBrightYellow
		}
		pad := width - utf8.RuneCountInString(l.Label) - utf8.RuneCountInString(l.Status)
		dst.DrawTextWithColor(x, y+1+i, l.Label+strings.Repeat(" ", pad)+l.Status, c)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := utf8.RuneCountInString(line1)
	if l := utf8.RuneCountInString(line2); l > maxLen {
		maxLen = l
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := platformcore.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCenteredWithColor(boxY+1, line1, platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(boxY+3, line2, platformcore.ColorGray)
}

// keyColor maps a palette key to a terminal color.
func keyColor(k core.ColorKey) platformcore.Color {
	switch k {
	case core.Red:
		return platformcore.ColorRed
	case core.Orange:
		return platformcore.ColorOrange
	case core.Yellow:
		return platformcore.ColorYellow
	case core.Green:
		return platformcore.ColorGreen
	case core.Cyan:
		return platformcore.ColorCyan
	case core.Blue:
		return platformcore.ColorBlue
	case core.Purple:
		return platformcore.ColorPurple
	case core.Black:
		return platformcore.ColorBlack
	case core.Gray:
		return platformcore.ColorLightGray
	default:
		return platformcore.ColorGray
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	score := 0
	if g.summary != nil {
		score = g.summary.Total()
	}
	return platformcore.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// LevelIndex returns the 0-based index of the current level.
func (g *Game) LevelIndex() int { return g.levelIndex }

// Cursor returns the cursor position on the player grid.
func (g *Game) Cursor() core.Coord { return g.cursor }

// Selected returns the selected color; Empty means the eraser.
func (g *Game) Selected() core.ColorKey { return g.selected }

// Player returns the player grid.
func (g *Game) Player() *core.Grid { return g.player }

// Target returns the model grid of the current level.
func (g *Game) Target() *core.Grid { return g.target }

// Summary returns the per-level results so far.
func (g *Game) Summary() *core.Summary { return g.summary }

// Levels returns the number of levels in the catalog.
func (g *Game) Levels() int { return g.catalog.Len() }
