package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
	"github.com/vovakirdan/arcade-eggs/internal/storage"
)

// Runs are shown beside the leaderboard only when both fit.
const (
	minWidthForRuns = 72
	recentRuns      = 8
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	paneStyle       = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev title")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next title")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows one title's leaderboard at a time, with its run
// history when a database is available.
type ScoreboardModel struct {
	titles []registry.GameInfo
	cursor int
	board  *highscore.Board
	store  *storage.Store // nil without sqlite

	entries []highscore.Entry
	runs    []storage.RunRecord
	stats   *storage.GameStats

	leaders table.Model
	history table.Model
	help    help.Model
	keys    ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over every registered title.
func NewScoreboardModel(board *highscore.Board, store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		titles: registry.List(),
		board:  board,
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.layout()
	m.load()
	return m
}

func (m *ScoreboardModel) layout() {
	rows := max(m.height-10, 3)
	m.leaders = newTable([]table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 5},
		{Title: "Score", Width: 9},
	}, rows, true)
	m.history = newTable([]table.Column{
		{Title: "When", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Lvl", Width: 4},
		{Title: "Time", Width: 7},
	}, rows, false)
	m.help.Width = m.width
}

func newTable(cols []table.Column, height int, focused bool) table.Model {
	t := table.New(table.WithColumns(cols), table.WithHeight(height), table.WithFocused(focused))
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	t.SetStyles(s)
	return t
}

// load refreshes every pane for the title under the cursor.
func (m *ScoreboardModel) load() {
	m.entries, m.runs, m.stats = nil, nil, nil
	if len(m.titles) == 0 {
		return
	}
	id := m.titles[m.cursor].ID

	if m.board != nil {
		m.entries = m.board.Load(id).Entries()
	}
	if m.store != nil {
		if stats, err := m.store.GetGameStats(id); err == nil && stats.RunsCount > 0 {
			m.stats = stats
		}
		if runs, err := m.store.RecentRuns(id, recentRuns); err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{strconv.Itoa(i + 1), e.Initials, strconv.Itoa(e.Score)}
	}
	m.leaders.SetRows(rows)
	m.leaders.GotoTop()

	hist := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		hist[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			r.Duration.Round(time.Second).String(),
		}
	}
	m.history.SetRows(hist)
}

func (m *ScoreboardModel) step(d int) {
	if n := len(m.titles); n > 0 {
		m.cursor = (m.cursor + d + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.leaders, cmd = m.leaders.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	left := paneStyle.Render(m.leaderPane())
	body := left
	if m.store != nil && m.width >= minWidthForRuns {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", paneStyle.Render(m.historyPane()))
	}
	b.WriteString(centerBlock(body, m.width))

	if m.stats != nil {
		s := m.stats
		line := fmt.Sprintf("%d runs · best %d · best level %d · avg %.0f · played %s",
			s.RunsCount, s.HighScore, s.BestLevel, s.AvgScore, s.TotalTime.Round(time.Second))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(centerText(line, m.width)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.titles))
	for i, g := range m.titles {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) leaderPane() string {
	if len(m.entries) == 0 {
		return dimStyle.Italic(true).Padding(1, 2).Render("No scores yet.\nPlay a round to set one!")
	}
	return m.leaders.View()
}

func (m ScoreboardModel) historyPane() string {
	if len(m.runs) == 0 {
		return dimStyle.Italic(true).Padding(1, 2).Render("No runs recorded.")
	}
	return m.history.View()
}

// centerBlock indents every line of a multi-line block by the same amount.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	return lipgloss.NewStyle().PaddingLeft(pad).Render(block)
}

// Title returns the ID of the title on display.
func (m ScoreboardModel) Title() string {
	if len(m.titles) == 0 {
		return ""
	}
	return m.titles[m.cursor].ID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(board *highscore.Board, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(board, store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
