package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aprende-arcade/internal/config"
	"github.com/vovakirdan/aprende-arcade/internal/core"
)

// OrientationSelection holds the user's selection from the Orientación menu.
type OrientationSelection struct {
	Difficulty config.DifficultyPreset
}

type difficultyOption struct {
	preset config.DifficultyPreset
	title  string
	detail string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Fácil", "tablero 5×5, 2 retos por etapa"},
	{config.DifficultyNormal, "Normal", "tablero 7×7, 3 retos por etapa"},
	{config.DifficultyHard, "Difícil", "tablero 9×9, 4 retos por etapa"},
}

// OrientationMenuModel is the difficulty picker for Orientación.
type OrientationMenuModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection OrientationSelection
	choosing  bool
	quitting  bool
	back      bool
	theme     Theme
}

// NewOrientationMenuModel creates a new difficulty selection model with
// Normal preselected.
func NewOrientationMenuModel(width, height int) OrientationMenuModel {
	return OrientationMenuModel{
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
		theme:     GetTheme(),
	}
}

// Init initializes the model.
func (m OrientationMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OrientationMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m OrientationMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = OrientationSelection{Difficulty: difficultyOptions[m.cursor].preset}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty selection.
func (m OrientationMenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("O R I E N T A C I Ó N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Elige la dificultad:"), m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(fmt.Sprintf("%s%-8s", cursor, opt.title)), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(opt.detail), m.width))
		b.WriteString("\n\n")
	}

	controls := "↑/↓: Mover  |  Enter: Elegir  |  Esc: Volver  |  Q: Salir"
	b.WriteString(centerText(m.theme.MenuControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m OrientationMenuModel) Selected() *OrientationSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m OrientationMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m OrientationMenuModel) WantsBack() bool {
	return m.back
}

// RunOrientationDifficultySelector runs the difficulty selection. A nil
// selection means the user went back or quit.
func RunOrientationDifficultySelector(cfg core.RuntimeConfig) (*OrientationSelection, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewOrientationMenuModel(cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(OrientationMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return m.Selected(), cfg, nil
}
