package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-eggs/internal/physics"
)

func TestTrackerStep(t *testing.T) {
	tests := []struct {
		name        string
		tr          Tracker
		pos, ball   float64
		approaching bool
		expected    float64
	}{
		{"approaching damped", Tracker{ReactionDelay: 0.5, MaxStep: 10}, 10, 14, true, 12},
		{"approaching capped", Tracker{ReactionDelay: 0, MaxStep: 1}, 10, 14, true, 11},
		{"receding drifts to center", Tracker{ReactionDelay: 0.5, MaxStep: 10}, 4, 20, false, 7},
		{"no delay reaches target", Tracker{ReactionDelay: 0, MaxStep: 10}, 10, 12, true, 12},
		{"moving up", Tracker{ReactionDelay: 0.2, MaxStep: 0.5}, 10, 2, true, 9.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.tr.Step(tc.pos, tc.ball, 10, tc.approaching)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestTrackerNeverOvershoots(t *testing.T) {
	tr := Tracker{ReactionDelay: 0.3, MaxStep: 2}
	pos := 0.0
	for i := 0; i < 100; i++ {
		next := tr.Step(pos, 15, 0, true)
		require.LessOrEqual(t, math.Abs(next-pos), 2.0+1e-9)
		require.LessOrEqual(t, next, 15.0+1e-9)
		pos = next
	}
	assert.InDelta(t, 15, pos, 1e-3)
}

func TestFallbackOrder(t *testing.T) {
	head := physics.Point{X: 5, Y: 5}

	got := Fallback(head, physics.DirUp, physics.Point{X: 9, Y: 5})
	assert.Equal(t, [3]physics.Dir{physics.DirUp, physics.DirRight, physics.DirLeft}, got)

	got = Fallback(head, physics.DirUp, physics.Point{X: 1, Y: 5})
	assert.Equal(t, [3]physics.Dir{physics.DirUp, physics.DirLeft, physics.DirRight}, got)

	got = Fallback(head, physics.DirRight, physics.Point{X: 5, Y: 5})
	assert.Equal(t, [3]physics.Dir{physics.DirRight, physics.DirUp, physics.DirDown}, got, "tie turns left")
}

func TestPreferredExcludesReverse(t *testing.T) {
	head := physics.Point{X: 5, Y: 5}
	got := Preferred(head, physics.DirRight, physics.Point{X: 0, Y: 7})
	assert.Equal(t, []physics.Dir{physics.DirDown}, got)

	got = Preferred(head, physics.DirUp, physics.Point{X: 6, Y: 0})
	assert.Equal(t, []physics.Dir{physics.DirUp, physics.DirRight}, got)
}

func TestPilotTurnsWhenBlocked(t *testing.T) {
	g := physics.NewGrid(10, 10)
	head := physics.Point{X: 5, Y: 1}
	g.Mark(physics.Point{X: 5, Y: 0}, 9)

	p := NewPilot(0, rand.New(rand.NewSource(1)))
	d, ok := p.Decide(g, head, physics.DirUp, physics.Point{X: 8, Y: 1})
	require.True(t, ok)
	assert.Equal(t, physics.DirRight, d)
}

func TestPilotTrapped(t *testing.T) {
	g := physics.NewGrid(3, 3)
	head := physics.Point{X: 1, Y: 1}
	g.Mark(head, 1)
	g.Mark(physics.Point{X: 1, Y: 0}, 2)
	g.Mark(physics.Point{X: 0, Y: 1}, 2)
	g.Mark(physics.Point{X: 2, Y: 1}, 2)

	p := NewPilot(1, rand.New(rand.NewSource(1)))
	d, ok := p.Decide(g, head, physics.DirUp, physics.Point{X: 0, Y: 0})
	assert.False(t, ok)
	assert.Equal(t, physics.DirUp, d)
}

func TestPilotNeverEntersOccupiedCell(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 50; run++ {
		g := physics.NewGrid(20, 12)
		for i := 0; i < 40; i++ {
			g.Mark(physics.Point{X: rng.Intn(20), Y: rng.Intn(12)}, 3)
		}
		head := physics.Point{X: 10, Y: 6}
		if g.Occupied(head) {
			continue
		}
		g.Mark(head, 1)
		heading := physics.Dir(rng.Intn(4))
		quarry := physics.Point{X: rng.Intn(20), Y: rng.Intn(12)}
		p := NewPilot(0.3, rng)

		for tick := 0; tick < 200; tick++ {
			d, ok := p.Decide(g, head, heading, quarry)
			if !ok {
				for _, alt := range []physics.Dir{heading, heading.TurnLeft(), heading.TurnRight()} {
					assert.False(t, g.Free(head.Add(alt)), "trapped with a free cell")
				}
				break
			}
			require.NotEqual(t, heading.Opposite(), d, "pilot reversed")
			next := head.Add(d)
			require.True(t, g.Free(next), "run %d tick %d moved onto %v", run, tick, next)
			g.Mark(next, 1)
			head, heading = next, d
		}
	}
}
