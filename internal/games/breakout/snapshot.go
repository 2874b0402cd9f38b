package breakout

import "math"

// Snapshot captures the rules state for determinism testing. Positions
// and velocities are scaled by 1000 and rounded so equal runs compare
// equal.
type Snapshot struct {
	Tick    uint64
	BallX   int
	BallY   int
	BallVX  int
	BallVY  int
	PaddleX int
	Speed   int
	Left    int
	Broken  int

	// Bricks holds the remaining hit points of every brick in layout
	// order, 0 once destroyed.
	Bricks []int
}

// Snapshot returns the current state.
func (g *Game) Snapshot(tick uint64) Snapshot {
	bricks := make([]int, len(g.bricks))
	for i, b := range g.bricks {
		if b.body.Alive {
			bricks[i] = max(b.hp, 1)
		}
	}
	return Snapshot{
		Tick:    tick,
		BallX:   milli(g.ball.Pos.X),
		BallY:   milli(g.ball.Pos.Y),
		BallVX:  milli(g.ball.Vel.X),
		BallVY:  milli(g.ball.Vel.Y),
		PaddleX: milli(g.paddle.Pos.X),
		Speed:   milli(g.speed),
		Left:    g.left,
		Broken:  g.broken,
		Bricks:  bricks,
	}
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, v := range []int{
		snap.BallX, snap.BallY, snap.BallVX, snap.BallVY,
		snap.PaddleX, snap.Speed, snap.Left, snap.Broken,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Bricks {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
