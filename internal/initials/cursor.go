// Package initials implements the three-letter tag entry shown after a
// qualifying run.
package initials

import "github.com/vovakirdan/arcade-eggs/internal/core"

const (
	// Slots is the number of letters in a tag.
	Slots = 3
	// Alphabet is the number of letters per slot (A-Z).
	Alphabet = 26
)

// Cursor holds the letters being entered and the active slot.
type Cursor struct {
	letters [Slots]int
	slot    int
}

// New returns a cursor at "AAA" with the first slot active.
func New() *Cursor {
	return &Cursor{}
}

// Slot returns the active slot, always in [0, Slots-1].
func (c *Cursor) Slot() int { return c.slot }

// Letter returns the alphabet index of slot i.
func (c *Cursor) Letter(i int) int {
	if i < 0 || i >= Slots {
		return 0
	}
	return c.letters[i]
}

// Inc moves the active letter forward, wrapping Z to A.
func (c *Cursor) Inc() {
	c.letters[c.slot] = (c.letters[c.slot] + 1) % Alphabet
}

// Dec moves the active letter back, wrapping A to Z.
func (c *Cursor) Dec() {
	c.letters[c.slot] = (c.letters[c.slot] + Alphabet - 1) % Alphabet
}

// Left moves to the previous slot, stopping at the first.
func (c *Cursor) Left() {
	c.slot = core.Clamp(c.slot-1, 0, Slots-1)
}

// Right moves to the next slot, stopping at the last.
func (c *Cursor) Right() {
	c.slot = core.Clamp(c.slot+1, 0, Slots-1)
}

// String returns the tag, e.g. "ABC".
func (c *Cursor) String() string {
	var b [Slots]byte
	for i, l := range c.letters {
		b[i] = byte('A' + l)
	}
	return string(b[:])
}

// Reset returns to "AAA" on the first slot.
func (c *Cursor) Reset() {
	*c = Cursor{}
}

// Handle applies one frame of input and reports whether the tag was
// confirmed. Only the four directions and confirm are read.
func (c *Cursor) Handle(in core.InputFrame) (confirmed, moved bool) {
	switch {
	case in.Has(core.ActionUp):
		c.Inc()
		moved = true
	case in.Has(core.ActionDown):
		c.Dec()
		moved = true
	}
	switch {
	case in.Has(core.ActionLeft):
		c.Left()
		moved = true
	case in.Has(core.ActionRight):
		c.Right()
		moved = true
	}
	return in.Any(core.ActionConfirm, core.ActionLaunch), moved
}

// Render draws the tag at (x, y) with the active slot bracketed.
func (c *Cursor) Render(dst *core.Screen, x, y int) {
	for i, l := range c.letters {
		cx := x + i*4
		ch := rune('A' + l)
		if i == c.slot {
			dst.SetColor(cx, y, '[', core.ColorYellow)
			dst.SetColor(cx+1, y, ch, core.ColorBrightYellow)
			dst.SetColor(cx+2, y, ']', core.ColorYellow)
			dst.SetColor(cx+1, y-1, '^', core.ColorGray)
			dst.SetColor(cx+1, y+1, 'v', core.ColorGray)
		} else {
			dst.SetColor(cx+1, y, ch, core.ColorWhite)
		}
	}
}

// Width is the number of cells Render uses horizontally.
const Width = Slots*4 - 1
