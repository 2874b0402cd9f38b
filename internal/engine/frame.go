package engine

import (
	"math/rand"

	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/core"
)

// outcome is what a tick asked the engine to do next. Higher values win
// when several are reported in the same tick.
type outcome int

const (
	outcomeNone outcome = iota
	outcomePoint
	outcomeLifeLost
	outcomeLevelClear
	outcomeGameOver
)

// Frame is the view of the running engine handed to Rules. Coordinates are
// field-local: (0,0) is the top-left playfield cell.
type Frame struct {
	W, H int
	Rng  *rand.Rand
	Tick uint64 // logical ticks since the run started

	e *Engine
}

// Bounds returns the playfield as float bounds.
func (f *Frame) Bounds() core.Bounds {
	return core.Bounds{Max: core.V(float64(f.W), float64(f.H))}
}

// Center returns the middle of the playfield.
func (f *Frame) Center() core.Vec {
	return f.Bounds().Center()
}

// Score returns the run's score so far.
func (f *Frame) Score() int { return f.e.tracker.Score() }

// Level returns the current level, starting at 1.
func (f *Frame) Level() int { return f.e.tracker.Level() }

// Lives returns the lives left.
func (f *Frame) Lives() int { return f.e.tracker.Lives() }

// Phase returns the engine phase the current call runs in.
func (f *Frame) Phase() core.Phase { return f.e.phase }

// AddPoints adds to the run's score.
func (f *Frame) AddPoints(n int) {
	f.e.tracker.AddPoints(n)
}

// Sound plays an event sound.
func (f *Frame) Sound(st audio.SoundType) {
	f.e.audio.Play(st)
}

// Burst spawns n particles at a field position.
func (f *Frame) Burst(pos core.Vec, n int, c core.Color) {
	f.e.particles.Burst(f.Rng, pos, n, 0.9, 18, c)
}

// Shake jolts the screen for the configured number of ticks.
func (f *Frame) Shake(magnitude int) {
	f.e.shakeMag = max(f.e.shakeMag, magnitude)
	f.e.shake = f.e.cfg.ShakeTicks
}

// Point ends the rally without losing a life and returns to Serving.
func (f *Frame) Point() {
	f.e.report(outcomePoint)
}

// LoseLife removes a life. The engine serves again or ends the run.
func (f *Frame) LoseLife() {
	if f.e.outcome >= outcomeLifeLost {
		return
	}
	if f.e.tracker.LoseLife() {
		f.e.report(outcomeGameOver)
		return
	}
	f.e.report(outcomeLifeLost)
}

// ClearLevel ends the level. The clear bonus is awarded once, at the
// start of the transition.
func (f *Frame) ClearLevel() {
	f.e.report(outcomeLevelClear)
}

// GameOver ends the run regardless of lives.
func (f *Frame) GameOver() {
	f.e.report(outcomeGameOver)
}

// Defeat awards the opponent-defeat bonus and returns it.
func (f *Frame) Defeat() int {
	return f.e.tracker.Defeat()
}
