package pong

import "math"

// Snapshot captures the rules state for determinism testing. Positions
// and velocities are scaled by 1000 and truncated so equal runs compare
// equal.
type Snapshot struct {
	Tick     uint64
	BallX    int
	BallY    int
	BallVX   int
	BallVY   int
	PlayerY  int
	CPUY     int
	Points   int
	Rally    int
	ServeDir int
}

// Snapshot returns the current state.
func (g *Game) Snapshot(tick uint64) Snapshot {
	return Snapshot{
		Tick:     tick,
		BallX:    milli(g.ball.Pos.X),
		BallY:    milli(g.ball.Pos.Y),
		BallVX:   milli(g.ball.Vel.X),
		BallVY:   milli(g.ball.Vel.Y),
		PlayerY:  milli(g.player.Pos.Y),
		CPUY:     milli(g.cpu.Pos.Y),
		Points:   g.points,
		Rally:    g.rally,
		ServeDir: int(g.serveDir),
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
		snap.PlayerY, snap.CPUY, snap.Points, snap.Rally, snap.ServeDir,
	} {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
