// Package boss carries the one-shot "new top score" hand-off from a
// finished run to whatever capture flow the host wires in. The engine only
// emits events; subscribers decide what happens next.
package boss

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/core"
)

// Event is raised when a submitted run lands at leaderboard rank 0.
type Event struct {
	Title    string    `json:"title"`
	Score    int       `json:"score"`
	Initials string    `json:"initials"`
	At       time.Time `json:"at"`
}

// Handler receives events. Handlers run on the loop goroutine and must not
// block.
type Handler func(Event)

// Bridge dispatches at most one Event per run and gates input while the
// capture overlay is open.
type Bridge struct {
	mu     sync.Mutex
	subs   map[int]Handler
	next   int
	fired  bool
	active bool
	logger *log.Logger
	now    func() time.Time
}

// NewBridge creates a bridge with no subscribers.
func NewBridge(logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{
		subs:   map[int]Handler{},
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe registers h and returns a func that removes it.
func (b *Bridge) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs[id] = h
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns how many handlers are attached.
func (b *Bridge) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Arm allows one more event; called when a new run starts.
func (b *Bridge) Arm() {
	b.mu.Lock()
	b.fired = false
	b.mu.Unlock()
}

// NotifyTopScore emits the event unless this run already did. The overlay
// becomes active even with no subscribers, until Resolve. A panicking
// handler is logged and skipped.
func (b *Bridge) NotifyTopScore(title string, score int, initials string) bool {
	b.mu.Lock()
	if b.fired {
		b.mu.Unlock()
		return false
	}
	b.fired = true
	b.active = true
	handlers := make([]Handler, 0, len(b.subs))
	for id := 0; id < b.next; id++ {
		if h, ok := b.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	ev := Event{Title: title, Score: score, Initials: initials, At: b.now()}
	b.mu.Unlock()

	b.logger.Info("new top score", "title", title, "score", score, "initials", initials)
	for _, h := range handlers {
		b.dispatch(h, ev)
	}
	return true
}

func (b *Bridge) dispatch(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("top score handler panicked", "title", ev.Title, "panic", r)
		}
	}()
	h(ev)
}

// Active reports whether the capture overlay is open.
func (b *Bridge) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Allow reports whether the engine may act on a. While the overlay is open
// only the close gesture passes.
func (b *Bridge) Allow(a core.Action) bool {
	if !b.Active() {
		return true
	}
	return a == core.ActionClose
}

// Filter removes every action Allow rejects from in.
func (b *Bridge) Filter(in core.InputFrame) core.InputFrame {
	if !b.Active() {
		return in
	}
	out := core.NewInputFrame()
	if in.Has(core.ActionClose) {
		out.Set(core.ActionClose)
	}
	return out
}

// Resolve closes the overlay; the host calls it when capture finishes or
// is dismissed.
func (b *Bridge) Resolve() {
	b.mu.Lock()
	b.active = false
	b.mu.Unlock()
}

// Close detaches every subscriber and closes the overlay.
func (b *Bridge) Close() error {
	b.mu.Lock()
	clear(b.subs)
	b.active = false
	b.mu.Unlock()
	return nil
}
