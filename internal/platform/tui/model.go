package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
	"github.com/vovakirdan/arcade-eggs/internal/platform/host"
)

// FooterRows is the number of terminal rows below the engine frame.
const FooterRows = 1

const statusFor = 3 * time.Second

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

// ModelOptions configure a game model.
type ModelOptions struct {
	FPS           int    // display frames per second
	ScreenshotDir string // empty for ~/.arcade/screenshots
	// Embedded models hand control back to their parent when the title
	// closes instead of quitting the program.
	Embedded bool
	Logger   *log.Logger
}

// Model is the Bubble Tea model driving one engine.
type Model struct {
	eng     *engine.Engine
	keys    KeyMap
	help    help.Model
	overlay *Overlay
	screen  *core.Screen
	pending core.InputFrame
	opts    ModelOptions
	logger  *log.Logger

	last        time.Time
	width       int
	height      int
	status      string
	statusUntil time.Time
	quitting    bool
	closed      bool
}

// NewModel creates a model for eng and subscribes its top-score overlay.
func NewModel(eng *engine.Engine, opts ModelOptions) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	overlay := NewOverlay(opts.Logger)
	unsubscribe := eng.Bridge().Subscribe(overlay.Handler())
	eng.Session().Defer("overlay", func() error {
		unsubscribe()
		return nil
	})

	w, h := eng.Field()
	return Model{
		eng:     eng,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		overlay: overlay,
		screen:  core.NewScreen(w, h+engine.HUDRows),
		pending: core.NewInputFrame(),
		opts:    opts,
		logger:  opts.Logger,
		width:   w,
		height:  h + engine.HUDRows + FooterRows,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.keys.Action(msg)
	if a == core.ActionQuit {
		m.quitting = true
		m.close()
		return m, tea.Quit
	}

	if m.overlay.Open() {
		done, cmd := m.overlay.Update(msg)
		if done {
			m.dismissOverlay()
		}
		return m, cmd
	}

	if msg.String() == "ctrl+s" {
		m.screenshot()
		return m, nil
	}
	if a != core.ActionNone {
		m.pending.Set(a)
	}
	return m, nil
}

// dismissOverlay sends the close gesture, which the engine reads as
// "overlay finished" while the bridge is active.
func (m Model) dismissOverlay() {
	in := core.NewInputFrame()
	in.Set(core.ActionClose)
	m.eng.Advance(in, 0)
}

// handleMouse maps pointer motion to the axis and clicks to touch regions.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	fw, fh := m.eng.Field()
	ox := max((m.screen.Width()-fw)/2, 0)
	x, y := msg.X-ox, msg.Y-engine.HUDRows

	switch msg.Action {
	case tea.MouseActionMotion:
		m.pending.MovePointer(x, y, fw, fh)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pending.MovePointer(x, y, fw, fh)
		if a := core.TouchAction(x, y, fw, fh); a != core.ActionNone {
			m.pending.Set(a)
		}
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	h := max(msg.Height-FooterRows, 1)
	m.screen.Resize(msg.Width, h)
	m.eng.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := time.Second / time.Duration(m.opts.FPS)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	res := m.eng.Advance(m.pending, elapsed)
	m.pending.Clear()

	if m.overlay.Open() && !m.eng.Bridge().Active() {
		m.overlay.Cancel()
	}
	if res.State.Closed {
		m.closed = true
		if !m.opts.Embedded {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, tickCmd(m.opts.FPS)
}

func (m *Model) close() {
	if err := m.eng.Close(); err != nil {
		m.logger.Warn("teardown incomplete", "error", err)
	}
	m.closed = true
}

// screenshot writes the current frame as plain text.
func (m *Model) screenshot() {
	path, err := host.SaveScreenshot(m.eng, m.opts.ScreenshotDir)
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.setStatus("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("saved " + path)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusFor)
}

// View renders the engine frame and the footer line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.eng.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.overlay.Open() {
		return m.overlay.View()
	}
	if m.status != "" && time.Now().Before(m.statusUntil) {
		return statusStyle.Render(m.status)
	}
	return m.help.View(m.keys)
}

// Engine returns the driven engine.
func (m Model) Engine() *engine.Engine { return m.eng }

// Closed reports whether the title closed.
func (m Model) Closed() bool { return m.closed }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// Run starts a Bubble Tea program around eng and closes it on return.
func Run(eng *engine.Engine, opts ModelOptions) error {
	defer func() {
		if err := eng.Close(); err != nil && opts.Logger != nil {
			opts.Logger.Warn("teardown incomplete", "error", err)
		}
	}()

	p := tea.NewProgram(
		NewModel(eng, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
