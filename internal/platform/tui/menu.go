package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// presets are offered left to right, easiest first.
var presets = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuItem represents a selectable title in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   string // leader's initials and score, empty when none
}

// MenuModel is the Bubble Tea model for the title picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	preset         int // index into presets
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered title. board, when
// set, supplies each title's leader. preset is preselected; empty means
// normal.
func NewMenuModel(board *highscore.Board, preset config.DifficultyPreset, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if board != nil {
			if top, ok := board.Load(g.ID).Top(); ok {
				item.Best = fmt.Sprintf("%s %d", top.Initials, top.Score)
			}
		}
		items = append(items, item)
	}

	idx := 1
	for i, p := range presets {
		if p == preset {
			idx = i
		}
	}

	return MenuModel{
		items:  items,
		preset: idx,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Easier):
		if m.preset > 0 {
			m.preset--
		}
	case key.Matches(msg, m.keys.Harder):
		if m.preset < len(presets)-1 {
			m.preset++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A R C A D E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("pick a cabinet"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.presetLine(), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-10s", item.Title)
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %-10s", item.Title))
		}
		if item.Best != "" {
			line += menuDimStyle.Render("  best " + item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) presetLine() string {
	parts := make([]string, len(presets))
	for i, p := range presets {
		if i == m.preset {
			parts[i] = menuSelectedStyle.Render("[" + string(p) + "]")
		} else {
			parts[i] = menuDimStyle.Render(" " + string(p) + " ")
		}
	}
	return strings.Join(parts, " ")
}

// Preset returns the chosen difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return presets[m.preset]
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within given width, measuring styled text by
// its visible cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Preset          config.DifficultyPreset
	Width, Height   int
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(board *highscore.Board, preset config.DifficultyPreset, width, height int) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(board, preset, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{Preset: m.Preset()}
	result.Width, result.Height = m.Size()
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
