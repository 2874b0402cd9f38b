package initials

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-eggs/internal/core"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestCursorStartsAtAAA(t *testing.T) {
	c := New()
	if c.String() != "AAA" {
		t.Errorf("String() = %q, expected %q", c.String(), "AAA")
	}
	if c.Slot() != 0 {
		t.Errorf("Slot() = %d, expected 0", c.Slot())
	}
}

func TestCursorIncrementWraps(t *testing.T) {
	c := New()
	for i := 0; i < 2*Alphabet+3; i++ {
		before := c.Letter(0)
		c.Inc()
		if c.Letter(0) != (before+1)%Alphabet {
			t.Fatalf("Inc() from %d = %d, expected %d", before, c.Letter(0), (before+1)%Alphabet)
		}
	}

	c.Reset()
	c.Dec()
	if c.String() != "ZAA" {
		t.Errorf("Dec() from A = %q, expected %q", c.String(), "ZAA")
	}
}

func TestCursorSlotClamped(t *testing.T) {
	tests := []struct {
		name     string
		moves    []core.Action
		expected int
	}{
		{"left at start", []core.Action{core.ActionLeft}, 0},
		{"right once", []core.Action{core.ActionRight}, 1},
		{"right past end", []core.Action{core.ActionRight, core.ActionRight, core.ActionRight, core.ActionRight}, 2},
		{"back and forth", []core.Action{core.ActionRight, core.ActionRight, core.ActionLeft}, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			for _, a := range tc.moves {
				c.Handle(frame(a))
			}
			if c.Slot() != tc.expected {
				t.Errorf("Slot() = %d, expected %d", c.Slot(), tc.expected)
			}
		})
	}
}

func TestCursorRandomInputStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}
	c := New()
	for i := 0; i < 1000; i++ {
		c.Handle(frame(actions[rng.Intn(len(actions))]))
		if c.Slot() < 0 || c.Slot() > 2 {
			t.Fatalf("Slot() = %d out of range", c.Slot())
		}
		for s := 0; s < Slots; s++ {
			if l := c.Letter(s); l < 0 || l >= Alphabet {
				t.Fatalf("Letter(%d) = %d out of range", s, l)
			}
		}
	}
}

func TestCursorSpellsAndConfirms(t *testing.T) {
	c := New()
	steps := []core.Action{
		core.ActionDown,  // Z
		core.ActionRight, // slot 1
		core.ActionUp,    // B
		core.ActionUp,    // C
		core.ActionRight, // slot 2
		core.ActionUp,    // B
	}
	for _, a := range steps {
		if confirmed, _ := c.Handle(frame(a)); confirmed {
			t.Fatalf("Handle(%v) confirmed early", a)
		}
	}
	if c.String() != "ZCB" {
		t.Errorf("String() = %q, expected %q", c.String(), "ZCB")
	}

	confirmed, moved := c.Handle(frame(core.ActionConfirm))
	if !confirmed || moved {
		t.Errorf("Handle(Confirm) = (%v, %v), expected (true, false)", confirmed, moved)
	}
}

func TestCursorRender(t *testing.T) {
	c := New()
	c.Right()
	scr := core.NewScreen(20, 3)
	c.Render(scr, 0, 1)

	if got := scr.Row(1); got[:Width] != " A  [A]  A " {
		t.Errorf("Row(1) = %q", got[:Width])
	}
}
