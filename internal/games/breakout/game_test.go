package breakout

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
)

const eps = 1e-9

func newEngine(t *testing.T, cfg config.BreakoutConfig, seed int64) (*engine.Engine, *Game) {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ec := config.DefaultEngineConfig()
	ec.CountdownSeconds = 0.05
	ec.TransitionSeconds = 0.05
	e := engine.New(g, engine.Options{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed},
		Config:  ec,
		Logger:  log.New(io.Discard),
	})
	t.Cleanup(func() { _ = e.Close() })
	return e, g
}

func press(a ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, x := range a {
		in.Set(x)
	}
	return in
}

func step(e *engine.Engine) {
	e.Step(core.NewInputFrame())
}

func waitServing(t *testing.T, e *engine.Engine) {
	t.Helper()
	for i := 0; e.Phase() != core.PhaseServing; i++ {
		if i > 100 {
			t.Fatalf("never reached Serving, phase %v", e.Phase())
		}
		step(e)
	}
}

func serve(t *testing.T, e *engine.Engine) {
	t.Helper()
	waitServing(t, e)
	e.Step(press(core.ActionLaunch))
	if e.Phase() != core.PhasePlaying {
		t.Fatalf("launch should start play, phase %v", e.Phase())
	}
}

// under parks the ball just below a brick, travelling up into it.
func under(g *Game, b *brick) {
	g.ball.Pos = core.V(b.body.Pos.X, b.body.Bottom()+g.ball.Radius+0.1)
	g.ball.Vel = core.V(0, -0.3)
}

func brickAt(t *testing.T, g *Game, row, col int) *brick {
	t.Helper()
	for i, c := range g.layout.Cells {
		if c.Row == row && c.Col == col {
			return g.bricks[i]
		}
	}
	t.Fatalf("no brick at row %d col %d", row, col)
	return nil
}

func TestDeterminism(t *testing.T) {
	run := func() uint64 {
		e, g := newEngine(t, config.DefaultBreakoutConfig(), 42)
		var tick uint64
		for i := range 1200 {
			in := core.NewInputFrame()
			switch {
			case i%40 == 0:
				in.Set(core.ActionLaunch)
			case i%3 == 0:
				in.Set(core.ActionRight)
			case i%5 == 0:
				in.Set(core.ActionLeft)
			}
			tick += uint64(e.Step(in).Ticks)
		}
		return g.Snapshot(tick).Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and inputs should produce the same state: %d != %d", a, b)
	}
}

func TestServeBallRidesPaddle(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	e, g := newEngine(t, cfg, 1)
	waitServing(t, e)

	if g.ball.Vel != (core.Vec{}) {
		t.Errorf("ball should rest during the serve, got %v", g.ball.Vel)
	}

	for range 5 {
		e.Step(press(core.ActionRight))
	}
	if e.Phase() != core.PhaseServing {
		t.Fatalf("moving should not launch, phase %v", e.Phase())
	}
	if math.Abs(g.ball.Pos.X-g.paddle.Pos.X) > eps {
		t.Errorf("ball should follow the paddle: ball %.2f paddle %.2f", g.ball.Pos.X, g.paddle.Pos.X)
	}
	if g.ball.Pos.Y >= g.paddle.Top() {
		t.Errorf("ball should sit on top of the paddle")
	}

	e.Step(press(core.ActionLaunch))
	if e.Phase() != core.PhasePlaying {
		t.Fatalf("launch should start play, phase %v", e.Phase())
	}
	if g.ball.Vel.Y >= 0 {
		t.Errorf("ball should leave upward, VY=%.3f", g.ball.Vel.Y)
	}
	if got, want := g.ball.Speed(), cfg.Scaling.BaseSpeed; math.Abs(got-want) > 1e-6 {
		t.Errorf("launch speed = %.4f, want %.4f", got, want)
	}
}

func TestPaddleMovement(t *testing.T) {
	e, g := newEngine(t, config.DefaultBreakoutConfig(), 1)
	waitServing(t, e)

	x := g.paddle.Pos.X
	e.Step(press(core.ActionRight))
	if g.paddle.Pos.X <= x {
		t.Errorf("paddle should move right, was %.2f now %.2f", x, g.paddle.Pos.X)
	}

	x = g.paddle.Pos.X
	e.Step(press(core.ActionLeft))
	if g.paddle.Pos.X >= x {
		t.Errorf("paddle should move left, was %.2f now %.2f", x, g.paddle.Pos.X)
	}

	for range 100 {
		e.Step(press(core.ActionLeft))
	}
	if g.paddle.Left() < -eps {
		t.Errorf("paddle should stop at the left wall, left edge %.2f", g.paddle.Left())
	}
}

func TestPaddleBounceStaysInCone(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	e, g := newEngine(t, cfg, 3)
	serve(t, e)
	cone := cfg.Physics.ConeDegrees * math.Pi / 180

	for i, off := range []float64{-1.05, -0.9, -0.5, 0, 0.3, 0.8, 1.05} {
		x := g.paddle.Pos.X + off*g.paddle.W/2
		g.ball.Pos = core.V(x, g.paddle.Top()-g.ball.Radius-0.05)
		g.ball.Vel = core.V(0.1, 0.3)

		step(e)
		if g.ball.Vel.Y >= 0 {
			t.Errorf("shot %d: ball should go up after a paddle hit, VY=%.3f", i, g.ball.Vel.Y)
			continue
		}
		angle := math.Atan2(g.ball.Vel.X, -g.ball.Vel.Y)
		if math.Abs(angle) > cone+eps {
			t.Errorf("shot %d: angle %.3f outside cone %.3f", i, angle, cone)
		}
	}
}

func TestWallCollision(t *testing.T) {
	e, g := newEngine(t, config.DefaultBreakoutConfig(), 1)
	serve(t, e)

	g.ball.Pos = core.V(0.6, 12)
	g.ball.Vel = core.V(-0.3, 0.1)
	step(e)
	if g.ball.Vel.X <= 0 {
		t.Errorf("ball should bounce off the left wall, VX=%.3f", g.ball.Vel.X)
	}

	w, _ := e.Field()
	g.ball.Pos = core.V(float64(w)-0.6, 12)
	g.ball.Vel = core.V(0.3, 0.1)
	step(e)
	if g.ball.Vel.X >= 0 {
		t.Errorf("ball should bounce off the right wall, VX=%.3f", g.ball.Vel.X)
	}
}

func TestBrickBreakScores(t *testing.T) {
	e, g := newEngine(t, config.DefaultBreakoutConfig(), 1)
	serve(t, e)

	b := brickAt(t, g, 3, 5)
	left := g.left
	under(g, b)
	step(e)

	if b.body.Alive {
		t.Fatal("brick should be destroyed")
	}
	if got := e.State().Score; got != 10 {
		t.Errorf("score = %d, want 10", got)
	}
	if g.left != left-1 {
		t.Errorf("left = %d, want %d", g.left, left-1)
	}
	if g.ball.Vel.Y <= 0 {
		t.Errorf("ball should bounce back down, VY=%.3f", g.ball.Vel.Y)
	}
}

func TestHardBrickTakesTwoHits(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Levels = []config.LevelLayout{{ID: "hard", Rows: []string{"H#"}}}
	e, g := newEngine(t, cfg, 1)
	serve(t, e)

	b := brickAt(t, g, 0, 0)
	under(g, b)
	step(e)
	if !b.body.Alive {
		t.Fatal("hard brick should survive the first hit")
	}
	if got := e.State().Score; got != 0 {
		t.Errorf("a cracked brick should score nothing, got %d", got)
	}
	if g.glyph(b) != CrackedGlyph {
		t.Errorf("cracked brick should change glyph")
	}

	under(g, b)
	step(e)
	if b.body.Alive {
		t.Fatal("hard brick should break on the second hit")
	}
	if got := e.State().Score; got != 20 {
		t.Errorf("score = %d, want 20", got)
	}
}

func TestSolidBrickIndestructible(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Levels = []config.LevelLayout{{ID: "solid", Rows: []string{"X#"}}}
	e, g := newEngine(t, cfg, 1)
	serve(t, e)

	b := brickAt(t, g, 0, 0)
	for range 3 {
		under(g, b)
		step(e)
	}
	if !b.body.Alive {
		t.Error("solid brick should never break")
	}
	if g.left != 1 {
		t.Errorf("solid bricks should not count toward the clear, left = %d", g.left)
	}
	if e.Phase() != core.PhasePlaying {
		t.Errorf("phase = %v, want playing", e.Phase())
	}
}

func TestSpeedUpEveryN(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Physics.SpeedUpEveryN = 2
	e, g := newEngine(t, cfg, 1)
	serve(t, e)
	base := g.speed

	under(g, brickAt(t, g, 3, 2))
	step(e)
	if g.speed != base {
		t.Errorf("speed should not change after one brick")
	}

	under(g, brickAt(t, g, 3, 8))
	step(e)
	if want := base + cfg.Physics.SpeedUpAmount; math.Abs(g.speed-want) > eps {
		t.Errorf("speed = %.3f, want %.3f", g.speed, want)
	}
	if g.ball.Speed() < g.speed-eps {
		t.Errorf("ball speed %.3f should reach the new floor %.3f", g.ball.Speed(), g.speed)
	}
}

func TestLostBallCostsLife(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	e, g := newEngine(t, cfg, 1)
	serve(t, e)

	_, h := e.Field()
	g.ball.Pos = core.V(40, float64(h)+0.6)
	g.ball.Vel = core.V(0, 0.3)
	step(e)

	if got := e.State().Lives; got != cfg.Rules.Lives-1 {
		t.Errorf("lives = %d, want %d", got, cfg.Rules.Lives-1)
	}
	if e.Phase() != core.PhaseServing {
		t.Errorf("phase = %v, want serving", e.Phase())
	}
	if g.ball.Vel != (core.Vec{}) || g.ball.Pos.Y >= g.paddle.Top() {
		t.Errorf("ball should be back on the paddle")
	}
}

func TestGameOver(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Rules.Lives = 1
	e, g := newEngine(t, cfg, 1)
	serve(t, e)

	_, h := e.Field()
	g.ball.Pos = core.V(40, float64(h)+0.6)
	g.ball.Vel = core.V(0, 0.3)
	step(e)

	if !e.State().GameOver {
		t.Fatalf("game should be over, phase %v", e.Phase())
	}

	e.Step(press(core.ActionRestart))
	if e.State().GameOver || e.State().Lives != cfg.Rules.Lives {
		t.Errorf("restart should begin a fresh run")
	}
}

func TestLevelClearAdvancesDifficulty(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	e, g := newEngine(t, cfg, 4)
	serve(t, e)
	if g.Layout().ID != "classic" {
		t.Fatalf("level 1 should be classic, got %s", g.Layout().ID)
	}

	last := brickAt(t, g, 3, 10)
	for _, b := range g.bricks {
		if b != last {
			b.body.Alive = false
		}
	}
	g.left = 1

	under(g, last)
	step(e)
	if e.Phase() != core.PhaseLevelTransition {
		t.Fatalf("phase = %v, want level transition", e.Phase())
	}
	if got, want := e.State().Score, last.points+cfg.Rules.LevelBonus*1; got != want {
		t.Errorf("score = %d, want %d", got, want)
	}

	serve(t, e)
	if got := e.State().Level; got != 2 {
		t.Fatalf("level = %d, want 2", got)
	}
	if g.Layout().ID != "pyramid" {
		t.Errorf("level 2 should be pyramid, got %s", g.Layout().ID)
	}
	if want := cfg.Scaling.BaseSize - cfg.Scaling.SizeShrink; math.Abs(g.paddle.W-want) > eps {
		t.Errorf("paddle width = %.2f, want %.2f", g.paddle.W, want)
	}
	if want := cfg.Scaling.BaseSpeed + cfg.Scaling.SpeedIncrement; math.Abs(g.ball.Speed()-want) > 1e-6 {
		t.Errorf("launch speed = %.4f, want %.4f", g.ball.Speed(), want)
	}
}

func TestSpeedFloorCarriesIntoNextLevel(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Physics.SpeedUpEveryN = 1
	cfg.Physics.SpeedUpAmount = 0.05
	e, g := newEngine(t, cfg, 4)
	serve(t, e)

	under(g, brickAt(t, g, 3, 2))
	step(e)
	under(g, brickAt(t, g, 3, 8))
	step(e)

	last := brickAt(t, g, 3, 10)
	for _, b := range g.bricks {
		if b != last {
			b.body.Alive = false
		}
	}
	g.left = 1
	under(g, last)
	step(e)
	if e.Phase() != core.PhaseLevelTransition {
		t.Fatalf("phase = %v, want level transition", e.Phase())
	}
	reached := cfg.Scaling.BaseSpeed + 3*cfg.Physics.SpeedUpAmount
	if math.Abs(g.speed-reached) > eps {
		t.Fatalf("speed = %.3f, want %.3f", g.speed, reached)
	}
	if next := cfg.Scaling.BaseSpeed + cfg.Scaling.SpeedIncrement; reached <= next {
		t.Fatalf("setup error: reached %.3f should beat the level 2 base %.3f", reached, next)
	}

	serve(t, e)
	if got := e.State().Level; got != 2 {
		t.Fatalf("level = %d, want 2", got)
	}
	if math.Abs(g.ball.Speed()-reached) > 1e-6 {
		t.Errorf("level 2 launch speed = %.4f, want %.4f", g.ball.Speed(), reached)
	}

	e.Restart()
	serve(t, e)
	if math.Abs(g.ball.Speed()-cfg.Scaling.BaseSpeed) > 1e-6 {
		t.Errorf("restart launch speed = %.4f, want %.4f", g.ball.Speed(), cfg.Scaling.BaseSpeed)
	}
}

func TestEntitiesStayInBounds(t *testing.T) {
	e, g := newEngine(t, config.DefaultBreakoutConfig(), 5)
	w, h := e.Field()
	field := core.Bounds{Max: core.V(float64(w), float64(h))}
	rng := rand.New(rand.NewSource(11))
	actions := []core.Action{core.ActionNone, core.ActionLeft, core.ActionRight, core.ActionLaunch}

	for tick := range 4000 {
		if e.State().GameOver {
			e.Restart()
		}
		in := core.NewInputFrame()
		if a := actions[rng.Intn(len(actions))]; a != core.ActionNone {
			in.Set(a)
		}
		e.Step(in)

		if !g.ball.Pos.Finite() || !g.ball.Vel.Finite() {
			t.Fatalf("ball not finite at tick %d", tick)
		}
		if !field.Contains(g.paddle.Pos, 0.01) {
			t.Fatalf("paddle %v outside the field at tick %d", g.paddle.Pos, tick)
		}
		// the ball may only leave through the open bottom
		if g.ball.Pos.X < -eps || g.ball.Pos.X > float64(w)+eps || g.ball.Pos.Y < -eps {
			t.Fatalf("ball %v escaped at tick %d", g.ball.Pos, tick)
		}
	}
}

func TestRender(t *testing.T) {
	e, _ := newEngine(t, config.DefaultBreakoutConfig(), 1)
	waitServing(t, e)

	dst := core.NewScreen(80, 24)
	e.Render(dst)
	out := dst.String()

	for _, want := range []string{string(PaddleChar), string(BallChar), string(BrickGlyph), "Classic"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q", want)
		}
	}
}

func TestLevelParsing(t *testing.T) {
	l, err := ParseLevel("test", "Test", []string{
		"#.H",
		"X5",
	})
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if l.Cols != 3 || l.Rows != 2 {
		t.Errorf("size = %dx%d, want 3x2", l.Cols, l.Rows)
	}
	if len(l.Cells) != 4 {
		t.Fatalf("cells = %d, want 4", len(l.Cells))
	}

	want := []Cell{
		{Row: 0, Col: 0, Type: BrickNormal, HP: 1, Points: 10},
		{Row: 0, Col: 2, Type: BrickHard, HP: 2, Points: 20},
		{Row: 1, Col: 0, Type: BrickSolid, HP: 0, Points: 0},
		{Row: 1, Col: 1, Type: BrickNormal, HP: 1, Points: 50},
	}
	for i, c := range want {
		if l.Cells[i] != c {
			t.Errorf("cell %d = %+v, want %+v", i, l.Cells[i], c)
		}
	}
	if got := l.Breakable(); got != 3 {
		t.Errorf("Breakable() = %d, want 3", got)
	}
}

func TestLevelParsingRejectsBadLayouts(t *testing.T) {
	for name, rows := range map[string][]string{
		"empty":      nil,
		"unknown":    {"##?#"},
		"only solid": {"XXX", "..."},
	} {
		if _, err := ParseLevel(name, name, rows); !errors.Is(err, ErrLayout) {
			t.Errorf("%s: err = %v, want ErrLayout", name, err)
		}
	}

	cfg := config.DefaultBreakoutConfig()
	cfg.Levels = []config.LevelLayout{{Rows: []string{"#!"}}}
	if _, err := New(cfg); !errors.Is(err, ErrLayout) {
		t.Errorf("New with a bad custom level: err = %v, want ErrLayout", err)
	}
}

func TestBuiltinLevelsRotate(t *testing.T) {
	levels := BuiltinLevels()
	if len(levels) == 0 {
		t.Fatal("no built-in levels")
	}
	for _, l := range levels {
		if l.Breakable() == 0 {
			t.Errorf("level %s cannot be cleared", l.ID)
		}
	}
	if LevelAt(levels, 1) != levels[0] {
		t.Error("level 1 should be the first layout")
	}
	if LevelAt(levels, len(levels)+1) != levels[0] {
		t.Error("levels should wrap around")
	}

	custom, err := Levels([]config.LevelLayout{{Rows: []string{"##"}}})
	if err != nil {
		t.Fatalf("Levels: %v", err)
	}
	if len(custom) != 1 || custom[0].ID != "custom-1" || custom[0].Name != "custom-1" {
		t.Errorf("custom level = %+v", custom[0])
	}
}
