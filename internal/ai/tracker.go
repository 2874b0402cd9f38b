// Package ai holds the per-tick policies of non-player entities: a paddle
// tracker for ball games and a grid pilot for light cycles.
package ai

import "github.com/vovakirdan/arcade-eggs/internal/core"

// Tracker steers a paddle along one axis toward the ball.
//
// ReactionDelay in [0, 1) damps how fast the gap closes; MaxStep caps the
// distance covered in one tick. Lower delay and higher cap track better.
type Tracker struct {
	ReactionDelay float64
	MaxStep       float64
}

// Target picks the point the paddle heads for: the ball while it approaches,
// the resting center otherwise.
func (t Tracker) Target(ball, center float64, approaching bool) float64 {
	if approaching {
		return ball
	}
	return center
}

// Step returns the paddle coordinate after one tick.
func (t Tracker) Step(pos, ball, center float64, approaching bool) float64 {
	diff := t.Target(ball, center, approaching) - pos
	delay := core.ClampF(t.ReactionDelay, 0, 1)
	step := core.ClampF(diff*(1-delay), -t.MaxStep, t.MaxStep)
	return pos + step
}
