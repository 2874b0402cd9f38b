package cycles

// Snapshot captures the rules state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Cells  int   // occupied grid cells
	Want   int   // buffered player heading
	Riders []int // X, Y, heading, alive per cycle, player first
}

// Snapshot returns the current state.
func (g *Game) Snapshot(tick uint64) Snapshot {
	riders := make([]int, 0, 4*(len(g.rivals)+1))
	for _, c := range append([]*Cycle{g.player}, g.rivals...) {
		alive := 0
		if c.Alive {
			alive = 1
		}
		riders = append(riders, c.Head.X, c.Head.Y, int(c.Heading), alive)
	}
	return Snapshot{
		Tick:   tick,
		Cells:  g.grid.Count(),
		Want:   int(g.want),
		Riders: riders,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Cells) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Want)  //#nosec G115 -- hash computation
	for _, v := range snap.Riders {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
