package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/boss"
)

var (
	overlayLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	overlayHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Overlay captures a contact line after a new top score. It opens when
// the bridge raises an event and finishes on enter or esc; the model then
// dismisses the bridge through the engine.
type Overlay struct {
	input  textinput.Model
	logger *log.Logger

	mu    sync.Mutex
	event *boss.Event
}

// NewOverlay creates a closed overlay.
func NewOverlay(logger *log.Logger) *Overlay {
	ti := textinput.New()
	ti.Placeholder = "email or handle"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = "› "
	return &Overlay{input: ti, logger: logger}
}

// Handler returns the bridge subscriber that opens the overlay.
func (o *Overlay) Handler() boss.Handler {
	return func(ev boss.Event) {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.event = &ev
		o.input.Reset()
		o.input.Focus()
	}
}

// Open reports whether the overlay is capturing input.
func (o *Overlay) Open() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.event != nil
}

// Update feeds a key to the text field. It returns done once the player
// submitted or skipped.
func (o *Overlay) Update(msg tea.KeyMsg) (done bool, cmd tea.Cmd) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.event == nil {
		return false, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		if contact := o.input.Value(); contact != "" {
			o.logger.Info("top score contact", "title", o.event.Title, "score", o.event.Score,
				"initials", o.event.Initials, "contact", contact)
		}
		o.close()
		return true, nil
	case tea.KeyEsc:
		o.close()
		return true, nil
	}

	o.input, cmd = o.input.Update(msg)
	return false, cmd
}

// Cancel closes the overlay without capturing anything.
func (o *Overlay) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.close()
}

func (o *Overlay) close() {
	o.event = nil
	o.input.Blur()
}

// View renders the single capture line shown under the playfield.
func (o *Overlay) View() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.event == nil {
		return ""
	}
	label := overlayLabel.Render(fmt.Sprintf("%s %d!", o.event.Initials, o.event.Score))
	return label + " leave a contact " + o.input.View() + overlayHint.Render("  enter send · esc skip")
}
