// Package breakout implements a Breakout/Arkanoid-style brick breaker game.
package breakout

import (
	"math"

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
	PaddleChar      = '='
	BallChar        = '●'
	BrickGlyph      = '█'
	HardBrickGlyph  = '▓'
	CrackedGlyph    = '▒'
	SolidBrickGlyph = '█'
)

type brick struct {
	body   *physics.Body
	kind   BrickType
	hp     int
	points int
}

// Game implements the brick breaker rules.
type Game struct {
	cfg    config.BreakoutConfig
	levels []*Level
	cone   float64

	params progression.Params
	layout *Level
	bricks []*brick
	paddle *physics.Body
	ball   *physics.Body

	left   int     // unbroken breakable bricks
	broken int     // bricks broken this level
	speed  float64 // ball speed floor, raised every N bricks and kept across levels

	lastPointer core.Pointer
}

var _ engine.Rules = (*Game)(nil)

// New creates the rules from a configuration. It fails when a custom
// level layout cannot be parsed.
func New(cfg config.BreakoutConfig) (*Game, error) {
	levels, err := Levels(cfg.Levels)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:    cfg,
		levels: levels,
		cone:   cfg.Physics.ConeDegrees * math.Pi / 180,
	}, nil
}

func init() {
	registry.Register("breakout", "Breakout", func(o registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadBreakout(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyBreakoutPreset(&cfg, o.Preset)
		return New(cfg)
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Traits returns the static properties of the title.
func (g *Game) Traits() engine.Traits {
	return engine.Traits{
		ServeDelay: g.cfg.Gameplay.ServeDelay,
		MinW:       40,
		MinH:       16,
	}
}

// Progression returns the scoring constants.
func (g *Game) Progression() progression.Rules {
	return g.cfg.Rules
}

// Layout returns the level being played.
func (g *Game) Layout() *Level {
	return g.layout
}

// Setup lays out the bricks of the current level and builds the paddle.
func (g *Game) Setup(f *engine.Frame) {
	g.params = g.cfg.Scaling.At(f.Level())
	g.layout = LevelAt(g.levels, f.Level())
	if f.Level() <= 1 {
		g.speed = g.params.Speed
	} else {
		g.speed = math.Max(g.speed, g.params.Speed)
	}
	g.broken = 0
	g.layoutBricks(f)

	y := float64(f.H-g.cfg.Paddle.BottomGap) - 0.5
	g.paddle = physics.NewBox(core.V(float64(f.W)/2, y), g.params.Size, 1)
	g.paddle.Color = core.ColorBrightCyan
	g.ball = physics.NewCircle(core.Vec{}, g.cfg.Physics.BallRadius)
	g.ball.Color = core.ColorBrightWhite
}

func (g *Game) layoutBricks(f *engine.Frame) {
	bw := max(f.W/max(g.layout.Cols, 1), 2)
	x0 := (f.W - bw*g.layout.Cols) / 2
	top := g.cfg.Gameplay.BrickTop

	g.bricks = g.bricks[:0]
	g.left = 0
	for _, c := range g.layout.Cells {
		pos := core.V(float64(x0+c.Col*bw)+float64(bw)/2, float64(top+c.Row)+0.5)
		b := &brick{
			body:   physics.NewBox(pos, float64(bw), 1),
			kind:   c.Type,
			hp:     c.HP,
			points: c.Points,
		}
		switch c.Type {
		case BrickSolid:
			b.body.Color = core.ColorGray
		case BrickHard:
			b.body.Color = core.ColorWhite
		default:
			b.body.Color = core.PaletteColor(c.Row)
		}
		if c.Type != BrickSolid {
			g.left++
		}
		g.bricks = append(g.bricks, b)
	}
}

// Ready puts the ball back on the paddle.
func (g *Game) Ready(*engine.Frame) {
	g.ball.Vel = core.Vec{}
	g.rideOnPaddle()
}

// Hold keeps the ball riding the paddle until launch.
func (g *Game) Hold(*engine.Frame) {
	g.rideOnPaddle()
}

func (g *Game) rideOnPaddle() {
	g.ball.Pos = core.V(g.paddle.Pos.X, g.paddle.Top()-g.ball.Radius)
}

// Launch sends the ball upward with a small random tilt.
func (g *Game) Launch(f *engine.Frame) {
	a := physics.ReflectionAngle(f.Rng.Float64()*0.5-0.25, g.cone)
	g.ball.Vel = core.V(g.speed*math.Sin(a), -g.speed*math.Cos(a))
}

// ApplyInput moves the paddle by keys or pointer.
func (g *Game) ApplyInput(f *engine.Frame, in core.InputFrame) {
	g.paddle.Pos.X += in.Axis(core.ActionLeft, core.ActionRight) * g.cfg.Paddle.Speed
	if in.Pointer.Active && in.Pointer != g.lastPointer {
		g.paddle.Pos.X = in.Pointer.X * float64(f.W)
		g.lastPointer = in.Pointer
	}
	physics.ClampBox(g.paddle, f.Bounds())
}

// AIPolicy does nothing: breakout has no opponent.
func (g *Game) AIPolicy(*engine.Frame) {}

// Integrate moves the ball.
func (g *Game) Integrate(*engine.Frame) {
	g.ball.Integrate()
}

// ResolveCollisions handles walls, the paddle, bricks and a lost ball.
func (g *Game) ResolveCollisions(f *engine.Frame) {
	bounds := f.Bounds()
	if physics.Escaped(g.ball, bounds).Has(physics.SideBottom) {
		g.ball.Vel = core.Vec{}
		f.Burst(core.V(g.ball.Pos.X, bounds.Max.Y-1), 10, core.ColorBrightRed)
		f.LoseLife()
		return
	}

	if _, ok := physics.PaddleBounce(g.ball, g.paddle, physics.FaceUp, g.cone, g.speed); ok {
		f.Sound(audio.SoundPaddle)
	} else {
		g.hitBrick(f)
	}

	// walls last so a brick or paddle push never leaves the ball outside
	if physics.BounceInside(g.ball, bounds, physics.SideTop|physics.SideLeft|physics.SideRight) != physics.SideNone {
		f.Sound(audio.SoundBounce)
	}

	if g.left == 0 {
		f.ClearLevel()
	}
}

// hitBrick resolves at most one brick per tick: the one whose surface is
// closest to the ball center.
func (g *Game) hitBrick(f *engine.Frame) {
	var (
		target *brick
		hit    physics.Hit
		best   = math.Inf(1)
	)
	for _, b := range g.bricks {
		if !b.body.Alive {
			continue
		}
		h, ok := physics.CircleAABB(g.ball, b.body)
		if !ok {
			continue
		}
		if d := h.Contact.Sub(g.ball.Pos).LenSq(); d < best {
			target, hit, best = b, h, d
		}
	}
	if target == nil {
		return
	}

	physics.Bounce(g.ball, target.body, hit)
	if target.kind == BrickSolid {
		f.Sound(audio.SoundBounce)
		return
	}

	target.hp--
	if target.hp > 0 {
		f.Sound(audio.SoundBounce)
		return
	}

	target.body.Alive = false
	g.left--
	g.broken++
	f.AddPoints(target.points)
	f.Sound(audio.SoundBreak)
	f.Burst(target.body.Pos, 6, target.body.Color)
	f.Shake(1)

	if n := g.cfg.Physics.SpeedUpEveryN; n > 0 && g.broken%n == 0 {
		g.speed += g.cfg.Physics.SpeedUpAmount
		if limit := g.cfg.Scaling.MaxSpeed; limit > 0 {
			g.speed = math.Min(g.speed, math.Max(limit, g.params.Speed))
		}
		g.ball.Accelerate(g.speed)
	}
}

// Render draws the bricks, paddle, ball and level name.
func (g *Game) Render(f *engine.Frame, dst *core.Screen) {
	for _, b := range g.bricks {
		if !b.body.Alive {
			continue
		}
		r := b.body.CellRect()
		if r.W > 2 {
			r.W-- // one column gap between neighbours
		}
		dst.DrawRectColor(r, g.glyph(b), b.body.Color)
	}

	dst.DrawRectColor(g.paddle.CellRect(), PaddleChar, g.paddle.Color)

	x, y := g.ball.Pos.Cell()
	dst.SetColor(x, y, BallChar, g.ball.Color)

	if g.layout != nil {
		name := " " + g.layout.Name + " "
		dst.DrawTextColor(f.W-len([]rune(name))-1, f.H-1, name, core.ColorGray)
	}
}

func (g *Game) glyph(b *brick) rune {
	switch b.kind {
	case BrickSolid:
		return SolidBrickGlyph
	case BrickHard:
		if b.hp < 2 {
			return CrackedGlyph
		}
		return HardBrickGlyph
	default:
		return BrickGlyph
	}
}
