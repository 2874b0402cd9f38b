package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/initials"
)

// Render draws the whole frame: HUD, playfield, particles and overlays.
// The playfield is centered horizontally and offset by the screen shake.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()
	if e.tooSmall {
		e.renderTooSmall(dst)
		return
	}

	e.canvas.Clear()
	e.rules.Render(&e.frame, e.canvas)
	e.particles.Render(e.canvas)

	ox := max((dst.Width()-e.frame.W)/2, 0)
	dst.Blit(e.canvas, ox+e.shakeDX, HUDRows+e.shakeDY, false)
	e.renderHUD(dst, ox)
	e.renderOverlay(dst)
}

func (e *Engine) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	minW := max(e.traits.MinW, e.frame.W)
	minH := max(e.traits.MinH, e.frame.H) + HUDRows
	dst.DrawTextCenteredColor(y-1, "Window too small", core.ColorBrightRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d, have %dx%d", minW, minH, e.viewW, e.viewH))
}

func (e *Engine) renderHUD(dst *core.Screen, ox int) {
	left := fmt.Sprintf(" %s  SCORE %06d  LEVEL %d  %s",
		strings.ToUpper(e.rules.Title()), e.tracker.Score(), e.tracker.Level(), e.livesText())
	dst.DrawTextColor(ox, 0, left, core.ColorBrightWhite)

	var flags []string
	if e.audio.Muted() {
		flags = append(flags, "MUTED")
	}
	if e.paused {
		flags = append(flags, "PAUSED")
	}
	if len(flags) > 0 {
		right := strings.Join(flags, " ") + " "
		dst.DrawTextColor(ox+e.frame.W-len(right), 0, right, core.ColorYellow)
	}
}

func (e *Engine) livesText() string {
	n := e.tracker.Lives()
	if e.traits.LivesLabel != "" {
		return fmt.Sprintf("%s %d", e.traits.LivesLabel, n)
	}
	if n <= 5 {
		return "LIVES " + strings.Repeat("♥", n)
	}
	return fmt.Sprintf("LIVES ♥×%d", n)
}

func (e *Engine) renderOverlay(dst *core.Screen) {
	switch {
	case e.bridge.Active():
		e.drawCenteredBox(dst, []string{
			"★ NEW TOP SCORE ★",
			"",
			fmt.Sprintf("%s  %d", e.cursor.String(), e.tracker.Score()),
			"",
			"esc to dismiss",
		}, core.ColorBrightYellow)
		return
	case e.paused:
		e.drawCenteredBox(dst, []string{"PAUSED", "", "Press P to resume"}, core.ColorYellow)
		return
	}

	switch e.phase {
	case core.PhaseCountdown:
		n := (e.timer + e.rate() - 1) / e.rate()
		e.drawCenteredBox(dst, []string{"GET READY", "", fmt.Sprintf("%d", n)}, core.ColorBrightCyan)
	case core.PhaseServing:
		if e.traits.ServeDelay == 0 {
			dst.DrawTextCenteredColor(dst.Height()-2, "SPACE to launch", core.ColorGray)
		}
	case core.PhaseLevelTransition:
		e.drawCenteredBox(dst, []string{
			fmt.Sprintf("LEVEL %d", e.tracker.Level()),
			"",
			fmt.Sprintf("bonus +%d", e.lastBonus),
		}, core.ColorBrightGreen)
	case core.PhaseGameOver:
		lines := append([]string{"GAME OVER", fmt.Sprintf("score %d", e.tracker.Score()), ""}, e.tableLines()...)
		lines = append(lines, "", "R restart  ESC close")
		e.drawCenteredBox(dst, lines, core.ColorBrightRed)
	case core.PhaseEnteringInitials:
		e.renderInitials(dst)
	case core.PhaseSubmitted:
		title := "SCORE SAVED"
		if e.rank < 0 {
			title = "NOT RANKED"
		}
		lines := append([]string{title, ""}, e.tableLines()...)
		lines = append(lines, "", "R restart  ESC close")
		e.drawCenteredBox(dst, lines, core.ColorBrightGreen)
	}
}

func (e *Engine) renderInitials(dst *core.Screen) {
	lines := []string{
		"NEW HIGH SCORE",
		fmt.Sprintf("score %d", e.tracker.Score()),
		"",
		"",
		"",
		"",
		"↑↓ letter  ←→ slot  ⏎ ok",
	}
	x, y, _ := e.drawCenteredBox(dst, lines, core.ColorBrightMagenta)
	boxW := boxWidth(lines)
	e.cursor.Render(dst, x+(boxW-initials.Width)/2, y+5)
}

// tableLines formats the leaderboard with the submitted rank marked.
func (e *Engine) tableLines() []string {
	if e.table == nil || e.table.Len() == 0 {
		return []string{"no scores yet"}
	}
	rows := e.table.Entries()
	out := make([]string, 0, len(rows))
	for i, r := range rows {
		mark := "  "
		if i == e.rank {
			mark = "▶ "
		}
		out = append(out, fmt.Sprintf("%s%2d. %s %7d", mark, i+1, r.Initials, r.Score))
	}
	return out
}

func boxWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	return w + 4
}

// drawCenteredBox draws a bordered message box over the playfield and
// returns its top-left corner and height.
func (e *Engine) drawCenteredBox(dst *core.Screen, lines []string, c core.Color) (int, int, int) {
	boxW := boxWidth(lines)
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := HUDRows + max((dst.Height()-HUDRows-boxH)/2, 0)

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ')
	dst.DrawBoxColor(r, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		col := core.ColorWhite
		if i == 0 {
			col = c
		}
		if strings.HasPrefix(l, "▶") {
			col = core.ColorBrightYellow
		}
		dst.DrawTextColor(x, boxY+1+i, l, col)
	}
	return boxX, boxY, boxH
}
