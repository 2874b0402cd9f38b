// Package pong implements the paddle duel: the player controls the left
// paddle, a tracking AI controls the right one.
package pong

import (
	"fmt"
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
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┊'
)

// Serve directions along X.
const (
	TowardPlayer = -1.0
	TowardCPU    = 1.0
)

// Game implements the paddle duel rules.
type Game struct {
	cfg    config.PongConfig
	params progression.Params
	cone   float64
	serve  float64 // max serve deviation in radians

	player *physics.Body
	cpu    *physics.Body
	ball   *physics.Body

	tracker  ai.Tracker
	serveDir float64 // TowardPlayer or TowardCPU
	points   int     // player points this level
	rally    int     // paddle hits since the serve
	floor    float64 // serve speed, raised by rally boosts and kept across levels

	lastPointer core.Pointer
}

var _ engine.Rules = (*Game)(nil)

// New creates the rules from a configuration.
func New(cfg config.PongConfig) *Game {
	return &Game{
		cfg:      cfg,
		cone:     cfg.Physics.ConeDegrees * math.Pi / 180,
		serve:    cfg.Physics.ServeDegrees * math.Pi / 180,
		serveDir: TowardCPU,
	}
}

func init() {
	registry.Register("pong", "Pong", func(o registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadPong(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.ApplyPongPreset(&cfg, o.Preset)
		return New(cfg), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Traits returns the static properties of the title.
func (g *Game) Traits() engine.Traits {
	return engine.Traits{
		ServeDelay: g.cfg.Gameplay.ServeDelay,
		MinW:       40,
		MinH:       14,
	}
}

// Progression returns the scoring constants.
func (g *Game) Progression() progression.Rules {
	return g.cfg.Rules
}

// Setup builds both paddles and the ball for the current level.
func (g *Game) Setup(f *engine.Frame) {
	g.params = g.cfg.Scaling.At(f.Level())
	g.tracker = ai.Tracker{ReactionDelay: g.params.ReactionDelay, MaxStep: g.params.AIMaxStep}
	g.points = 0
	if f.Level() <= 1 {
		g.serveDir = TowardCPU
		g.floor = g.params.Speed
	} else {
		g.floor = math.Max(g.floor, g.params.Speed)
	}

	w := g.cfg.Paddles.Width
	h := g.params.Size
	mid := float64(f.H) / 2
	g.player = physics.NewBox(core.V(g.cfg.Paddles.Offset+w/2, mid), w, h)
	g.player.Color = core.ColorBrightCyan
	g.cpu = physics.NewBox(core.V(float64(f.W)-g.cfg.Paddles.Offset-w/2, mid), w, h)
	g.cpu.Color = core.ColorBrightRed
	g.ball = physics.NewCircle(f.Center(), g.cfg.Physics.BallRadius)
	g.ball.Color = core.ColorBrightWhite
}

// Ready centers the ball at rest.
func (g *Game) Ready(f *engine.Frame) {
	g.ball.Pos = f.Center()
	g.ball.Vel = core.Vec{}
	g.rally = 0
}

// Hold keeps the ball still and lets the CPU drift home.
func (g *Game) Hold(f *engine.Frame) {
	g.ball.Pos = f.Center()
	g.moveCPU(f, false)
}

// Launch serves toward the side that won the last point, at the fastest
// speed reached so far.
func (g *Game) Launch(f *engine.Frame) {
	angle := (f.Rng.Float64()*2 - 1) * g.serve
	g.ball.Vel = core.V(g.serveDir*g.floor*math.Cos(angle), g.floor*math.Sin(angle))
}

// ServeSpeed returns the speed of the next serve.
func (g *Game) ServeSpeed() float64 {
	return g.floor
}

// ServeDirection returns the X sign of the next serve.
func (g *Game) ServeDirection() float64 {
	return g.serveDir
}

// ApplyInput moves the player paddle by keys or pointer.
func (g *Game) ApplyInput(f *engine.Frame, in core.InputFrame) {
	g.player.Pos.Y += in.Axis(core.ActionUp, core.ActionDown) * g.cfg.Paddles.PlayerSpeed
	if in.Pointer.Active && in.Pointer != g.lastPointer {
		g.player.Pos.Y = in.Pointer.Y * float64(f.H)
		g.lastPointer = in.Pointer
	}
	physics.ClampBox(g.player, f.Bounds())
}

// AIPolicy tracks the ball while it approaches the CPU side.
func (g *Game) AIPolicy(f *engine.Frame) {
	g.moveCPU(f, g.ball.Vel.X > 0)
}

func (g *Game) moveCPU(f *engine.Frame, approaching bool) {
	g.cpu.Pos.Y = g.tracker.Step(g.cpu.Pos.Y, g.ball.Pos.Y, float64(f.H)/2, approaching)
	physics.ClampBox(g.cpu, f.Bounds())
}

// Integrate moves the ball.
func (g *Game) Integrate(*engine.Frame) {
	g.ball.Integrate()
}

// ResolveCollisions handles walls, paddles and conceded points.
func (g *Game) ResolveCollisions(f *engine.Frame) {
	switch {
	case g.ball.Pos.X > g.cpu.Right()+g.cfg.Paddles.Overshoot:
		g.scored(f, true)
		return
	case g.ball.Pos.X < g.player.Left()-g.cfg.Paddles.Overshoot:
		g.scored(f, false)
		return
	}

	if physics.BounceInside(g.ball, f.Bounds(), physics.SideTop|physics.SideBottom) != physics.SideNone {
		f.Sound(audio.SoundBounce)
	}

	if _, ok := physics.PaddleBounce(g.ball, g.player, physics.FaceRight, g.cone, g.floor); ok {
		g.rally++
		f.AddPoints(g.cfg.Gameplay.HitPoints)
		g.boost()
		f.Sound(audio.SoundPaddle)
		f.Burst(g.ball.Pos, 4, g.player.Color)
	}
	if _, ok := physics.PaddleBounce(g.ball, g.cpu, physics.FaceLeft, g.cone, g.floor); ok {
		g.rally++
		g.boost()
		f.Sound(audio.SoundPaddle)
		f.Burst(g.ball.Pos, 4, g.cpu.Color)
	}
}

// boost speeds the ball up after a hit, never past the configured cap. The
// serve speed follows it.
func (g *Game) boost() {
	target := g.ball.Speed() + g.cfg.Physics.HitBoost
	if limit := g.cfg.Scaling.MaxSpeed; limit > 0 {
		target = math.Min(target, math.Max(limit, g.params.Speed))
	}
	g.ball.Accelerate(target)
	g.floor = math.Max(g.floor, target)
}

// scored settles a point. The next serve goes toward the side that scored.
func (g *Game) scored(f *engine.Frame, byPlayer bool) {
	b := f.Bounds()
	g.ball.Pos.X = core.ClampF(g.ball.Pos.X, b.Min.X, b.Max.X)
	g.ball.Vel = core.Vec{}
	f.Burst(g.ball.Pos, 12, core.ColorBrightYellow)

	if !byPlayer {
		g.serveDir = TowardCPU
		f.LoseLife()
		return
	}

	g.serveDir = TowardPlayer
	g.points++
	f.AddPoints(g.cfg.Gameplay.PointValue)
	f.Sound(audio.SoundScore)
	if g.cfg.Gameplay.PointsPerLevel > 0 && g.points >= g.cfg.Gameplay.PointsPerLevel {
		f.ClearLevel()
		return
	}
	f.Point()
}

// Render draws the net, paddles, ball and the level tally.
func (g *Game) Render(f *engine.Frame, dst *core.Screen) {
	net := f.W / 2
	for y := 0; y < f.H; y += 2 {
		dst.SetColor(net, y, NetChar, core.ColorGray)
	}

	if goal := g.cfg.Gameplay.PointsPerLevel; goal > 0 {
		tally := fmt.Sprintf(" %d / %d ", g.points, goal)
		dst.DrawTextColor(net-len(tally)/2, 0, tally, core.ColorGray)
	}

	g.renderPaddle(dst, g.player)
	g.renderPaddle(dst, g.cpu)

	x, y := g.ball.Pos.Cell()
	dst.SetColor(x, y, BallChar, g.ball.Color)
}

func (g *Game) renderPaddle(dst *core.Screen, p *physics.Body) {
	r := p.CellRect()
	dst.DrawRectColor(r, PaddleChar, p.Color)
}
