// Package cycles implements the light-cycle duel: the player and a growing
// pack of AI cycles leave solid trails on a grid, and whoever runs into a
// trail or the arena edge is out.
package cycles

import (
	"math"

	"github.com/vovakirdan/arcade-eggs/internal/ai"
	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
	"github.com/vovakirdan/arcade-eggs/internal/physics"
	"github.com/vovakirdan/arcade-eggs/internal/progression"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
)

// Visual characters for rendering
const (
	TrailChar = '▒'
	DotChar   = '·'
)

var headGlyphs = [4]rune{'▲', '▶', '▼', '◀'}

// PlayerID owns the player's trail cells. Opponents use 2 and up.
const PlayerID = 1

// Cycle is one rider on the grid.
type Cycle struct {
	ID      int
	Head    physics.Point
	Prev    physics.Point
	Heading physics.Dir
	Alive   bool
	Color   core.Color
}

func (c *Cycle) advance(g *physics.Grid, d physics.Dir) {
	c.Heading = d
	c.Prev = c.Head
	c.Head = c.Head.Add(d)
	g.Mark(c.Head, c.ID)
}

// Game implements the light-cycle rules.
type Game struct {
	cfg    config.CyclesConfig
	params progression.Params

	grid     *physics.Grid
	pilot    *ai.Pilot
	player   *Cycle
	rivals   []*Cycle
	out      map[int]bool // rivals defeated this level
	want     physics.Dir  // buffered player turn
	progress float64      // fractional moves carried between ticks
	moves    int          // moves owed this tick

	lastPointer core.Pointer
}

var _ engine.Rules = (*Game)(nil)

// New creates the rules from a configuration.
func New(cfg config.CyclesConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register("cycles", "Cycles", func(o registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadCycles(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyCyclesPreset(&cfg, o.Preset)
		return New(cfg), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "cycles"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cycles"
}

// Traits returns the static properties of the title.
func (g *Game) Traits() engine.Traits {
	return engine.Traits{
		TickRate:   g.cfg.Grid.TickRate,
		ServeDelay: g.cfg.Gameplay.ServeDelay,
		Hum:        true,
		LivesLabel: "CYCLES",
		MinW:       30,
		MinH:       12,
	}
}

// Progression returns the scoring constants.
func (g *Game) Progression() progression.Rules {
	return g.cfg.Rules
}

// Grid returns the trail grid.
func (g *Game) Grid() *physics.Grid {
	return g.grid
}

// Player returns the player's cycle.
func (g *Game) Player() *Cycle {
	return g.player
}

// Rivals returns the AI cycles of the current round, dead ones included.
func (g *Game) Rivals() []*Cycle {
	return g.rivals
}

// Setup sizes the grid and the pack for the current level.
func (g *Game) Setup(f *engine.Frame) {
	g.params = g.cfg.Scaling.At(f.Level())
	g.grid = physics.NewGrid(f.W, f.H)
	g.pilot = ai.NewPilot(g.cfg.AI.TurnChance, f.Rng)
	g.out = make(map[int]bool)
}

// Ready clears the arena and lines every cycle up at its start: the
// player on the left heading right, the pack spread down the right side
// heading left. Rivals defeated earlier in the level stay out.
func (g *Game) Ready(f *engine.Frame) {
	g.grid.Reset()
	g.progress, g.moves = 0, 0

	start := physics.Point{X: f.W / 4, Y: f.H / 2}
	g.player = &Cycle{ID: PlayerID, Head: start, Prev: start, Heading: physics.DirRight, Alive: true, Color: core.ColorBrightCyan}
	g.want = physics.DirRight
	g.grid.Mark(start, PlayerID)

	n := max(g.params.Opponents, 1)
	g.rivals = make([]*Cycle, n)
	for i := range n {
		id := PlayerID + 1 + i
		p := physics.Point{X: f.W - 1 - f.W/4, Y: (i + 1) * f.H / (n + 1)}
		g.rivals[i] = &Cycle{
			ID:      id,
			Head:    p,
			Prev:    p,
			Heading: physics.DirLeft,
			Alive:   !g.out[id],
			Color:   core.PaletteColor(i),
		}
		if g.rivals[i].Alive {
			g.grid.Mark(p, id)
		}
	}
}

// Hold keeps everyone parked during the serve delay.
func (g *Game) Hold(*engine.Frame) {}

// Launch starts the round. Cycles move from the next tick on.
func (g *Game) Launch(*engine.Frame) {}

// ApplyInput buffers a turn from the arrow keys or the pointer. Reversing
// into the trail is ignored.
func (g *Game) ApplyInput(f *engine.Frame, in core.InputFrame) {
	for _, k := range steering {
		if in.Has(k.action) {
			g.turn(k.dir)
		}
	}

	if in.Pointer.Active && in.Pointer != g.lastPointer {
		g.lastPointer = in.Pointer
		dx := in.Pointer.X*float64(f.W-1) - float64(g.player.Head.X)
		dy := in.Pointer.Y*float64(f.H-1) - float64(g.player.Head.Y)
		switch {
		case math.Abs(dx) >= math.Abs(dy) && dx > 0:
			g.turn(physics.DirRight)
		case math.Abs(dx) >= math.Abs(dy) && dx < 0:
			g.turn(physics.DirLeft)
		case dy > 0:
			g.turn(physics.DirDown)
		case dy < 0:
			g.turn(physics.DirUp)
		}
	}
}

var steering = []struct {
	action core.Action
	dir    physics.Dir
}{
	{core.ActionUp, physics.DirUp},
	{core.ActionRight, physics.DirRight},
	{core.ActionDown, physics.DirDown},
	{core.ActionLeft, physics.DirLeft},
}

func (g *Game) turn(d physics.Dir) {
	if d != g.player.Heading.Opposite() {
		g.want = d
	}
}

// AIPolicy steering happens per move in ResolveCollisions so each pilot
// sees the cells claimed earlier in the same tick.
func (g *Game) AIPolicy(*engine.Frame) {}

// Integrate accrues movement at the level speed.
func (g *Game) Integrate(*engine.Frame) {
	g.progress += g.params.Speed
	g.moves = int(g.progress)
	g.progress -= float64(g.moves)
}

// ResolveCollisions moves the player, then every live opponent, once per
// owed move. Entering an occupied or off-grid cell is fatal for the player;
// a pilot with nowhere to go is removed and pays the defeat bonus.
func (g *Game) ResolveCollisions(f *engine.Frame) {
	for range g.moves {
		if !g.movePlayer(f) {
			return
		}
		g.moveRivals(f)
		if g.Remaining() == 0 {
			f.ClearLevel()
			return
		}
	}
}

func (g *Game) movePlayer(f *engine.Frame) bool {
	p := g.player
	next := p.Head.Add(g.want)
	if g.grid.Fatal(next, p.Prev) {
		p.Alive = false
		f.Sound(audio.SoundCrash)
		f.Burst(cellCenter(p.Head), 16, p.Color)
		f.Shake(2)
		f.LoseLife()
		return false
	}
	p.advance(g.grid, g.want)
	return true
}

func (g *Game) moveRivals(f *engine.Frame) {
	for _, r := range g.rivals {
		if !r.Alive {
			continue
		}
		d, ok := g.pilot.Decide(g.grid, r.Head, r.Heading, g.player.Head)
		if !ok {
			r.Alive = false
			g.out[r.ID] = true
			g.grid.ClearOwner(r.ID)
			f.Defeat()
			f.Sound(audio.SoundCrash)
			f.Burst(cellCenter(r.Head), 12, r.Color)
			continue
		}
		r.advance(g.grid, d)
	}
}

// Remaining returns the number of live opponents.
func (g *Game) Remaining() int {
	n := 0
	for _, r := range g.rivals {
		if r.Alive {
			n++
		}
	}
	return n
}

func cellCenter(p physics.Point) core.Vec {
	return core.V(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// Render draws the trails and the cycle heads.
func (g *Game) Render(f *engine.Frame, dst *core.Screen) {
	colors := map[int]core.Color{PlayerID: g.player.Color}
	for _, r := range g.rivals {
		colors[r.ID] = r.Color
	}

	for y := range g.grid.H {
		for x := range g.grid.W {
			id := g.grid.Owner(physics.Point{X: x, Y: y})
			switch {
			case id > 0:
				dst.SetColor(x, y, TrailChar, colors[id])
			case (x+y)%8 == 0:
				dst.SetColor(x, y, DotChar, core.ColorGray)
			}
		}
	}

	for _, r := range g.rivals {
		if r.Alive {
			dst.SetColor(r.Head.X, r.Head.Y, headGlyphs[r.Heading], r.Color)
		}
	}
	p := g.player
	dst.SetColor(p.Head.X, p.Head.Y, headGlyphs[p.Heading], core.ColorBrightWhite)
}
