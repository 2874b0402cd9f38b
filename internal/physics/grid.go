package physics

// Point is an integer grid cell.
type Point struct {
	X, Y int
}

// Add returns p moved one cell in direction d.
func (p Point) Add(d Dir) Point {
	dx, dy := d.Delta()
	return Point{p.X + dx, p.Y + dy}
}

// Dir is a cardinal heading on the grid.
type Dir int

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Delta returns the cell offset of one step in this direction.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return -1, 0
	}
}

// Opposite returns the reverse heading.
func (d Dir) Opposite() Dir { return (d + 2) % 4 }

// TurnLeft returns the heading after a 90° counter-clockwise turn.
func (d Dir) TurnLeft() Dir { return (d + 3) % 4 }

// TurnRight returns the heading after a 90° clockwise turn.
func (d Dir) TurnRight() Dir { return (d + 1) % 4 }

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "left"
	}
}

// Grid is an occupancy map of trail cells. Each cell stores the owner id of
// the trail segment in it, or zero when free.
type Grid struct {
	W, H  int
	cells []int
}

// NewGrid creates an empty w×h grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, cells: make([]int, w*h)}
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.W && p.Y < g.H
}

// Owner returns the id occupying p, zero when free. Off-grid cells report -1.
func (g *Grid) Owner(p Point) int {
	if !g.InBounds(p) {
		return -1
	}
	return g.cells[p.Y*g.W+p.X]
}

// Occupied reports whether p holds a trail segment or lies off the grid.
func (g *Grid) Occupied(p Point) bool {
	return g.Owner(p) != 0
}

// Mark records a trail segment of owner at p. Owner ids must be positive.
func (g *Grid) Mark(p Point, owner int) {
	if g.InBounds(p) && owner > 0 {
		g.cells[p.Y*g.W+p.X] = owner
	}
}

// ClearOwner frees every cell owned by id (a dead cycle's trail).
func (g *Grid) ClearOwner(id int) {
	for i, v := range g.cells {
		if v == id {
			g.cells[i] = 0
		}
	}
}

// Reset frees the whole grid.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Fatal reports whether a mover whose previous head cell is prev dies by
// entering next. Leaving the grid or entering any occupied cell is fatal,
// except the cell immediately preceding the mover, which it may re-enter.
func (g *Grid) Fatal(next, prev Point) bool {
	if !g.InBounds(next) {
		return true
	}
	if next == prev {
		return false
	}
	return g.Occupied(next)
}

// Free reports whether next is a legal, unoccupied destination.
func (g *Grid) Free(next Point) bool {
	return g.InBounds(next) && !g.Occupied(next)
}
