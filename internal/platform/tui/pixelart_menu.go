package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aprende-arcade/internal/core"
	pixelcore "github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
)

// PixelArtSelection holds the user's selection from the Pixel Art menu.
type PixelArtSelection struct {
	Level int // 1-N
}

// PixelArtMenuModel is the level picker for Pixel Art.
type PixelArtMenuModel struct {
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	levelNames   []string
	selection    PixelArtSelection
	choosing     bool
	quitting     bool
	back         bool
	scrollOffset int
	theme        Theme
}

// levelNames formats one picker line per catalog level.
func levelNames(cat *pixelcore.Catalog) []string {
	names := make([]string, 0, cat.Len())
	for i, def := range cat.Levels() {
		names = append(names, fmt.Sprintf("%s (%d×%d)", pixelcore.LevelLabel(i, def.Title), def.Size, def.Size))
	}
	return names
}

// NewPixelArtMenuModel creates a new Pixel Art level selection model.
func NewPixelArtMenuModel(cat *pixelcore.Catalog, width, height int) PixelArtMenuModel {
	return PixelArtMenuModel{
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
		levelNames: levelNames(cat),
		choosing:   true,
		theme:      GetTheme(),
	}
}

// Init initializes the model.
func (m PixelArtMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PixelArtMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PixelArtMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.levelNames)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.levelNames) == 0 {
			return m, nil
		}
		m.choosing = false
		m.selection = PixelArtSelection{Level: m.cursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems returns how many level lines fit between header and footer.
func (m PixelArtMenuModel) visibleItems() int {
	visible := m.height - 10
	if visible < 3 {
		visible = 3
	}
	return visible
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PixelArtMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level selection.
func (m PixelArtMenuModel) View() string {
	if m.quitting || !m.choosing {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("P I X E L   A R T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Elige un nivel:"), m.width))
	b.WriteString("\n\n")

	if len(m.levelNames) == 0 {
		b.WriteString(centerText(m.theme.Muted.Render("No hay niveles"), m.width))
		b.WriteString("\n")
	}

	endIdx := m.scrollOffset + m.visibleItems()
	if endIdx > len(m.levelNames) {
		endIdx = len(m.levelNames)
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... más arriba ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < endIdx; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+m.levelNames[i]), m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.levelNames) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... más abajo ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "↑/↓: Mover  |  Enter: Elegir  |  Esc: Volver  |  Q: Salir"
	b.WriteString(centerText(m.theme.MenuControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m PixelArtMenuModel) Selected() *PixelArtSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PixelArtMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PixelArtMenuModel) WantsBack() bool {
	return m.back
}

// RunPixelArtLevelSelector runs the level selection and returns the selection.
// A nil selection means the user went back or quit.
func RunPixelArtLevelSelector(cat *pixelcore.Catalog, cfg core.RuntimeConfig) (*PixelArtSelection, core.RuntimeConfig, error) {
	p := tea.NewProgram(
		NewPixelArtMenuModel(cat, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(PixelArtMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return m.Selected(), cfg, nil
}
