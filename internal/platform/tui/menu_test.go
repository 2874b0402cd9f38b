package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
)

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuListsTitles(t *testing.T) {
	m := NewMenuModel(nil, "", 80, 24)
	if len(m.items) != len(registry.List()) {
		t.Fatalf("menu has %d items, registry %d", len(m.items), len(registry.List()))
	}
	if m.Preset() != config.DifficultyNormal {
		t.Errorf("default preset = %q, want normal", m.Preset())
	}
}

func TestMenuSelectsWithPreset(t *testing.T) {
	m := NewMenuModel(nil, config.DifficultyEasy, 80, 24)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Preset() != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", m.Preset())
	}
	sel := m.Selected()
	if sel == nil {
		t.Fatal("nothing selected")
	}
	if want := registry.List()[1].ID; sel.GameID != want {
		t.Errorf("selected %q, want %q", sel.GameID, want)
	}
}

func TestMenuCursorClamped(t *testing.T) {
	m := NewMenuModel(nil, "", 80, 24)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.cursor)
	}
	for range 10 {
		m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want last item", m.cursor)
	}
	for range 10 {
		m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("preset = %q, want easy", m.Preset())
	}
}

func TestMenuShowsLeader(t *testing.T) {
	board := highscore.NewBoard(highscore.NewMemoryStore(), 10, nil)
	board.Submit("pong", highscore.Entry{Initials: "ACE", Score: 1234})

	m := NewMenuModel(board, "", 80, 24)
	for _, item := range m.items {
		if item.GameID == "pong" && item.Best != "ACE 1234" {
			t.Errorf("pong best = %q, want ACE 1234", item.Best)
		}
	}
}

func TestMenuTabOpensScoreboard(t *testing.T) {
	m := menuKey(t, NewMenuModel(nil, "", 80, 24), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestSessionReturnsToMenu(t *testing.T) {
	l := testLauncher()
	s := NewSessionModel(l, nil, 80, 25, 60)

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.game == nil {
		t.Fatal("enter should start the first title")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	next, _ = s.Update(TickMsg{})
	s = next.(SessionModel)
	if s.game != nil {
		t.Fatal("closing the title should return to the menu")
	}
	if s.quitting {
		t.Error("session should stay open")
	}
}

func TestScoreboardCyclesTitles(t *testing.T) {
	board := highscore.NewBoard(highscore.NewMemoryStore(), 10, nil)
	board.Submit("cycles", highscore.Entry{Initials: "ZED", Score: 70})

	m := NewScoreboardModel(board, nil, 80, 24)
	if m.Title() != "breakout" {
		t.Fatalf("first title = %q, want breakout", m.Title())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ScoreboardModel)
	if m.Title() != "cycles" {
		t.Fatalf("right should move to cycles, got %q", m.Title())
	}
	if !strings.Contains(m.View(), "ZED") {
		t.Error("cycles leaderboard should list ZED")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.Title() != "pong" {
		t.Errorf("left should wrap to pong, got %q", m.Title())
	}
	if !strings.Contains(m.View(), "No scores yet") {
		t.Error("empty leaderboard should say so")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back to the menu")
	}
}
