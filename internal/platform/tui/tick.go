// Package tui hosts the engine in a Bubble Tea program: key and mouse
// mapping, the frame clock, the title picker, the scoreboard and the SSH
// server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall time of one display frame.
type TickMsg time.Time

// tickCmd schedules the next display frame at fps.
func tickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(fps, 1)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
