package highscore

import "github.com/charmbracelet/log"

// Board is the leaderboard service the engine talks to. Storage faults
// never surface: a failed load is an empty table and a failed save is
// logged.
type Board struct {
	backend Backend
	size    int
	logger  *log.Logger
}

// NewBoard wraps a backend. A nil backend keeps nothing between runs.
func NewBoard(backend Backend, size int, logger *log.Logger) *Board {
	if backend == nil {
		backend = NewMemoryStore()
	}
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Board{backend: backend, size: size, logger: logger}
}

// Size returns N.
func (b *Board) Size() int { return b.size }

// Load reads title's leaderboard, treating any fault as an empty table.
func (b *Board) Load(title string) *Table {
	rows, err := b.backend.Load(title)
	if err != nil {
		b.logger.Debug("leaderboard load failed, starting empty", "title", title, "error", err)
		return NewTable(nil, b.size)
	}
	return NewTable(rows, b.size)
}

// Save persists t. It reports success; failures are only logged.
func (b *Board) Save(title string, t *Table) bool {
	if err := b.backend.Save(title, t.Entries()); err != nil {
		b.logger.Warn("leaderboard save failed", "title", title, "error", err)
		return false
	}
	return true
}

// Submit loads, inserts and saves in one call and returns the rank.
func (b *Board) Submit(title string, e Entry) (int, *Table) {
	t := b.Load(title)
	rank := t.Insert(e)
	if rank >= 0 {
		b.Save(title, t)
	}
	return rank, t
}
