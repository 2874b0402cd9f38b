package engine

import "time"

// Accumulator converts elapsed wall time into whole fixed-size ticks.
// Steps beyond MaxSteps in one call are dropped so a stalled frame cannot
// snowball into ever longer catch-up work.
type Accumulator struct {
	Step     time.Duration
	MaxSteps int

	acc time.Duration
}

// NewAccumulator creates an accumulator for rate ticks per second.
func NewAccumulator(rate, maxSteps int) *Accumulator {
	if rate <= 0 {
		rate = 60
	}
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Accumulator{
		Step:     time.Second / time.Duration(rate),
		MaxSteps: maxSteps,
	}
}

// Add feeds elapsed time and returns the number of ticks to run now.
func (a *Accumulator) Add(elapsed time.Duration) int {
	if elapsed > 0 {
		a.acc += elapsed
	}
	n := int(a.acc / a.Step)
	a.acc -= time.Duration(n) * a.Step
	if n > a.MaxSteps {
		n = a.MaxSteps
		a.acc = 0
	}
	return n
}

// Pending returns the time carried into the next call.
func (a *Accumulator) Pending() time.Duration {
	return a.acc
}

// Reset drops carried time.
func (a *Accumulator) Reset() {
	a.acc = 0
}
