package ai

import (
	"math/rand"

	"github.com/vovakirdan/arcade-eggs/internal/physics"
)

// Pilot steers a light cycle around occupied cells.
//
// Each tick, with probability TurnChance, it tries the headings that close
// the distance to its quarry. Whenever the cell straight ahead is blocked it
// falls back to straight, then the turn toward the quarry, then the other
// turn. A pilot never moves onto an occupied cell; when every non-reverse
// heading is blocked the cycle is trapped.
type Pilot struct {
	TurnChance float64
	rng        *rand.Rand
}

// NewPilot creates a pilot drawing its turn rolls from rng.
func NewPilot(turnChance float64, rng *rand.Rand) *Pilot {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Pilot{TurnChance: turnChance, rng: rng}
}

// Decide returns the heading for the next tick. ok is false when the cycle
// is trapped; the heading is then unchanged and the caller kills the cycle.
func (p *Pilot) Decide(g *physics.Grid, head physics.Point, heading physics.Dir, quarry physics.Point) (physics.Dir, bool) {
	if p.TurnChance > 0 && p.rng.Float64() < p.TurnChance {
		for _, d := range Preferred(head, heading, quarry) {
			if g.Free(head.Add(d)) {
				heading = d
				break
			}
		}
	}

	if g.Free(head.Add(heading)) {
		return heading, true
	}
	for _, d := range Fallback(head, heading, quarry) {
		if g.Free(head.Add(d)) {
			return d, true
		}
	}
	return heading, false
}

// Preferred lists the non-reverse headings that move toward quarry, the
// axis with the larger gap first.
func Preferred(head physics.Point, heading physics.Dir, quarry physics.Point) []physics.Dir {
	dx, dy := quarry.X-head.X, quarry.Y-head.Y

	var horiz, vert []physics.Dir
	switch {
	case dx > 0:
		horiz = []physics.Dir{physics.DirRight}
	case dx < 0:
		horiz = []physics.Dir{physics.DirLeft}
	}
	switch {
	case dy > 0:
		vert = []physics.Dir{physics.DirDown}
	case dy < 0:
		vert = []physics.Dir{physics.DirUp}
	}

	order := append(horiz, vert...)
	if abs(dy) > abs(dx) {
		order = append(vert, horiz...)
	}

	out := order[:0]
	for _, d := range order {
		if d != heading.Opposite() {
			out = append(out, d)
		}
	}
	return out
}

// Fallback is the deterministic order tried when the way ahead is blocked:
// straight, the turn toward quarry, the other turn. Ties favor a left turn.
func Fallback(head physics.Point, heading physics.Dir, quarry physics.Point) [3]physics.Dir {
	left, right := heading.TurnLeft(), heading.TurnRight()
	if gain(head, right, quarry) > gain(head, left, quarry) {
		return [3]physics.Dir{heading, right, left}
	}
	return [3]physics.Dir{heading, left, right}
}

// gain is how far one step in d moves toward quarry.
func gain(head physics.Point, d physics.Dir, quarry physics.Point) int {
	dx, dy := d.Delta()
	return dx*(quarry.X-head.X) + dy*(quarry.Y-head.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
