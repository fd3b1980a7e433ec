package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aprende-arcade/internal/registry"
	"github.com/vovakirdan/aprende-arcade/internal/storage"
)

// Results board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxRuns            = 100 // Max runs to load
	detailLines        = 8   // Rows reserved below the table for run details
)

// ResultsKeyMap defines the key bindings for the results board.
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "bajar"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "juego anterior"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "juego siguiente"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "juego siguiente"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "juego anterior"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "volver"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}

// ResultsModel is the Bubble Tea model for the session results board.
type ResultsModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	runs        []storage.Run
	details     []storage.Result // Results of the highlighted run
	stats       storage.GameStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewResultsModel creates a new results board model.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		theme:       GetTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadRuns(m.games[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Puntos", Width: 8},
		{Title: "Estado", Width: 12},
		{Title: "Inicio", Width: 10},
	}

	height := m.height - 8 - detailLines
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = m.theme.TableHeader.Padding(0, 1)
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)

	return t
}

// loadRuns loads the runs of the given game and the game's statistics.
func (m *ResultsModel) loadRuns(gameID string) {
	m.runs = nil
	m.stats = storage.GameStats{GameID: gameID}
	m.loadErr = nil

	if m.store != nil {
		runs, err := m.store.Runs(gameID, maxRuns)
		if err != nil {
			m.loadErr = err
		} else {
			m.runs = runs
		}
		if stats, err := m.store.GameStats(gameID); err == nil {
			m.stats = stats
		}
	}

	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		status := "en curso"
		if r.Finished {
			status = "terminada"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", len(m.runs)-i),
			fmt.Sprintf("%d", r.Score),
			status,
			r.StartedAt.Local().Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.loadDetails()
}

// loadDetails loads the results of the highlighted run.
func (m *ResultsModel) loadDetails() {
	m.details = nil
	if m.store == nil || len(m.runs) == 0 {
		return
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return
	}
	if results, err := m.store.Results(m.runs[i].ID); err == nil {
		m.details = results
	}
}

func (m *ResultsModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.loadRuns(m.games[m.gameCursor].ID)
}

// Init initializes the results board model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.switchGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.switchGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadDetails()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RESULTADOS DE LA SESIÓN"
	if len(m.games) > 0 {
		title = fmt.Sprintf("RESULTADOS · %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MenuControls.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for game selection.
func (m ResultsModel) renderWideLayout() string {
	sidebarStyle := m.theme.Border.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Juegos\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.gameCursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		name := []rune(g.Title)
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = append(name[:maxLen-1], '.')
		}
		sidebar.WriteString(style.Render(cursor + string(name)))
		sidebar.WriteString("\n")
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Border.Render(m.renderTableContent()),
		m.renderDetails(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", main)
}

// renderNarrowLayout renders the board with game tabs above the table.
func (m ResultsModel) renderNarrowLayout() string {
	var b strings.Builder

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = m.theme.TableSelected.Padding(0, 1).Render(g.Title)
		} else {
			tabs[i] = m.theme.Muted.Render(" " + g.Title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.games) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.games[m.gameCursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Border.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(m.renderDetails())

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ResultsModel) renderTableContent() string {
	if m.loadErr != nil {
		return m.theme.Bad.Render("No se pudieron cargar los resultados: " + m.loadErr.Error())
	}
	if len(m.runs) == 0 {
		return m.theme.Muted.Padding(2, 4).
			Render("Todavía no hay partidas en esta sesión.\n¡Juega una para ver tus resultados!")
	}
	return m.table.View()
}

// renderDetails renders the statistics line and the results of the
// highlighted run.
func (m ResultsModel) renderDetails() string {
	var b strings.Builder

	b.WriteString(m.theme.MenuDescription.Render(fmt.Sprintf(
		"Terminadas: %d   Mejor: %d   Promedio: %.1f",
		m.stats.RunsCount, m.stats.BestScore, m.stats.AvgScore,
	)))
	b.WriteString("\n")

	for i, r := range m.details {
		if i >= detailLines-2 {
			b.WriteString(m.theme.Muted.Render(fmt.Sprintf("… y %d más", len(m.details)-i)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%-28s %4d  %s", r.Label, r.Score, r.Detail)
		b.WriteString(m.theme.MenuItemNormal.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// Runs returns the runs currently listed.
func (m ResultsModel) Runs() []storage.Run {
	return m.runs
}

// Details returns the results of the highlighted run.
func (m ResultsModel) Details() []storage.Result {
	return m.details
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// RunResults runs the results board.
// Returns true if user wants to go back to menu, false if quitting.
func RunResults(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewResultsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ResultsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
