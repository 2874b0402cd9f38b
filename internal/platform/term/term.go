// Package term hosts the engine directly on a tcell screen, without the
// Bubble Tea runtime. It is the low-latency frontend: input is polled on its
// own goroutine and frames are driven by a ticker.
package term

import (
	"fmt"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
	"github.com/vovakirdan/arcade-eggs/internal/platform/host"
)

// newScreen is replaced in tests with a simulation screen.
var newScreen = tcell.NewScreen

// Options configure the tcell frontend.
type Options struct {
	FPS           int
	ScreenshotDir string
	Logger        *log.Logger
}

// Run takes over the terminal and drives eng until the title closes. The
// terminal is restored through the engine's session, so Close on any path
// leaves it usable.
func Run(eng *engine.Engine, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	var scr tcell.Screen
	err := eng.Session().Acquire("terminal", func() (func() error, error) {
		s, err := newScreen()
		if err != nil {
			return nil, err
		}
		if err := s.Init(); err != nil {
			return nil, err
		}
		s.EnableMouse(tcell.MouseMotionEvents)
		s.HideCursor()
		scr = s
		return func() error {
			s.Fini()
			return nil
		}, nil
	})
	if err != nil {
		_ = eng.Close()
		return fmt.Errorf("term: open screen: %w", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			opts.Logger.Warn("teardown incomplete", "error", err)
		}
	}()

	f := newFrontend(scr, eng, opts)
	return f.loop()
}

type frontend struct {
	scr     tcell.Screen
	eng     *engine.Engine
	opts    Options
	buf     *core.Screen
	pending core.InputFrame
	buttons tcell.ButtonMask
}

func newFrontend(scr tcell.Screen, eng *engine.Engine, opts Options) *frontend {
	w, h := scr.Size()
	eng.Resize(w, h)
	return &frontend{
		scr:     scr,
		eng:     eng,
		opts:    opts,
		buf:     core.NewScreen(w, h),
		pending: core.NewInputFrame(),
	}
}

func (f *frontend) loop() error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := f.scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(f.opts.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			f.handle(ev)
		case now := <-ticker.C:
			res := f.eng.Advance(f.pending, now.Sub(last))
			last = now
			f.pending.Clear()
			if res.State.Closed {
				return nil
			}
			f.draw()
		}
	}
}

func (f *frontend) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlS {
			f.screenshot()
			return
		}
		if a := Action(ev); a != core.ActionNone {
			f.pending.Set(a)
		}
	case *tcell.EventMouse:
		f.mouse(ev)
	case *tcell.EventResize:
		w, ht := ev.Size()
		f.buf.Resize(w, ht)
		f.eng.Resize(w, ht)
		f.scr.Sync()
	}
}

// mouse maps motion to the pointer axis and a fresh left press to a touch
// region of the playfield.
func (f *frontend) mouse(ev *tcell.EventMouse) {
	fw, fh := f.eng.Field()
	x, y := ev.Position()
	x -= max((f.buf.Width()-fw)/2, 0)
	y -= engine.HUDRows
	f.pending.MovePointer(x, y, fw, fh)

	pressed := ev.Buttons()&tcell.Button1 != 0 && f.buttons&tcell.Button1 == 0
	f.buttons = ev.Buttons()
	if pressed {
		if a := core.TouchAction(x, y, fw, fh); a != core.ActionNone {
			f.pending.Set(a)
		}
	}
}

func (f *frontend) screenshot() {
	path, err := host.SaveScreenshot(f.eng, f.opts.ScreenshotDir)
	if err != nil {
		f.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	f.opts.Logger.Info("screenshot saved", "path", path)
}

func (f *frontend) draw() {
	f.eng.Render(f.buf)
	for y := range f.buf.Height() {
		for x := range f.buf.Width() {
			c := f.buf.GetCell(x, y)
			f.scr.SetContent(x, y, c.Rune, nil, style(c.Color))
		}
	}
	f.scr.Show()
}

func style(c core.Color) tcell.Style {
	code := c.ANSI()
	if code < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
}

// Action maps a tcell key event to a game action.
func Action(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEnter:
		return core.ActionConfirm
	case tcell.KeyEscape:
		return core.ActionClose
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
	default:
		return core.ActionNone
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'w':
		return core.ActionUp
	case 's':
		return core.ActionDown
	case 'a':
		return core.ActionLeft
	case 'd':
		return core.ActionRight
	case ' ':
		return core.ActionLaunch
	case 'q':
		return core.ActionClose
	case 'r':
		return core.ActionRestart
	case 'p':
		return core.ActionPause
	case 'm':
		return core.ActionMute
	}
	return core.ActionNone
}
