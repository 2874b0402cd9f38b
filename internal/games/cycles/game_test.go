package cycles

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
	"github.com/vovakirdan/arcade-eggs/internal/physics"
)

func newEngine(t *testing.T, cfg config.CyclesConfig, seed int64, au *audio.Engine) (*engine.Engine, *Game) {
	t.Helper()
	g := New(cfg)
	ec := config.DefaultEngineConfig()
	ec.CountdownSeconds = 0.05
	ec.TransitionSeconds = 0.05
	e := engine.New(g, engine.Options{
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 21, TickRate: 60, Seed: seed},
		Config:  ec,
		Audio:   au,
		Logger:  log.New(io.Discard),
	})
	t.Cleanup(func() { _ = e.Close() })
	return e, g
}

func quiet() config.CyclesConfig {
	cfg := config.DefaultCyclesConfig()
	cfg.AI.TurnChance = 0
	return cfg
}

// tick runs exactly one logical tick.
func tick(e *engine.Engine, a ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, x := range a {
		in.Set(x)
	}
	return e.Advance(in, time.Second/12)
}

func serve(t *testing.T, e *engine.Engine) {
	t.Helper()
	for i := 0; e.Phase() != core.PhaseServing; i++ {
		require.Less(t, i, 100, "never reached Serving")
		tick(e)
	}
	tick(e, core.ActionLaunch)
	require.Equal(t, core.PhasePlaying, e.Phase())
}

func TestStartLayout(t *testing.T) {
	e, g := newEngine(t, quiet(), 1, nil)
	serve(t, e)
	w, h := e.Field()

	p := g.Player()
	assert.Equal(t, physics.Point{X: w / 4, Y: h / 2}, p.Head)
	assert.Equal(t, physics.DirRight, p.Heading)
	require.Len(t, g.Rivals(), 1)
	assert.Equal(t, physics.DirLeft, g.Rivals()[0].Heading)
	assert.Greater(t, g.Rivals()[0].Head.X, p.Head.X)
	assert.Equal(t, 2, g.Grid().Count())
}

func TestPlayerLeavesTrail(t *testing.T) {
	e, g := newEngine(t, quiet(), 1, nil)
	serve(t, e)
	start := g.Player().Head

	for range 3 {
		tick(e)
	}
	assert.Equal(t, physics.Point{X: start.X + 3, Y: start.Y}, g.Player().Head)
	for x := start.X; x <= start.X+3; x++ {
		assert.Equal(t, PlayerID, g.Grid().Owner(physics.Point{X: x, Y: start.Y}))
	}
	assert.Equal(t, 3*cfgSurvival(), e.State().Score)
}

func cfgSurvival() int {
	return config.DefaultCyclesConfig().Rules.SurvivalPoints
}

func TestReverseIsIgnored(t *testing.T) {
	e, g := newEngine(t, quiet(), 1, nil)
	serve(t, e)
	start := g.Player().Head

	tick(e, core.ActionLeft)
	assert.Equal(t, physics.DirRight, g.Player().Heading)
	assert.Equal(t, start.X+1, g.Player().Head.X)

	tick(e, core.ActionUp)
	assert.Equal(t, physics.DirUp, g.Player().Heading)
	tick(e, core.ActionDown)
	assert.Equal(t, physics.DirUp, g.Player().Heading, "down reverses an upward cycle")
}

func TestCrashIntoWallCostsCycle(t *testing.T) {
	cfg := quiet()
	e, g := newEngine(t, cfg, 1, nil)
	serve(t, e)
	start := g.Player().Head

	tick(e, core.ActionUp)
	for i := 1; i <= start.Y; i++ {
		require.Equal(t, core.PhasePlaying, e.Phase(), "move %d", i)
		tick(e)
	}
	assert.Equal(t, cfg.Rules.Lives-1, e.State().Lives)
	assert.Equal(t, core.PhaseServing, e.Phase())
	assert.Equal(t, start, g.Player().Head, "round restarts from the start line")
	assert.Equal(t, 1+len(g.Rivals()), g.Grid().Count(), "trails are cleared")
}

func TestCrashIntoOwnTrail(t *testing.T) {
	e, g := newEngine(t, quiet(), 1, nil)
	serve(t, e)

	tick(e, core.ActionUp)
	tick(e, core.ActionLeft)
	tick(e, core.ActionDown)
	require.Equal(t, core.PhasePlaying, e.Phase())
	lives := e.State().Lives

	tick(e, core.ActionRight)
	assert.Equal(t, lives-1, e.State().Lives, "running into the trail is fatal")
	assert.Equal(t, core.PhaseServing, e.Phase())
	assert.Equal(t, 1+len(g.Rivals()), g.Grid().Count())
}

func TestTrappedRivalPaysDefeatBonus(t *testing.T) {
	cfg := quiet()
	e, g := newEngine(t, cfg, 1, nil)
	serve(t, e)

	r := g.Rivals()[0]
	for _, d := range []physics.Dir{physics.DirLeft, physics.DirUp, physics.DirDown} {
		g.Grid().Mark(r.Head.Add(d), 99)
	}
	head := r.Head

	tick(e)
	assert.False(t, r.Alive)
	assert.Equal(t, head, r.Head, "a trapped cycle is not moved")
	assert.Zero(t, g.Grid().Owner(head), "dead trails are cleared")
	require.Equal(t, core.PhaseLevelTransition, e.Phase())
	assert.Equal(t, cfg.Rules.DefeatBonus*1+cfg.Rules.LevelBonus*1, e.State().Score)

	serve(t, e)
	assert.Equal(t, 2, e.State().Level)
	assert.Len(t, g.Rivals(), cfg.Scaling.Opponents(2))
}

func TestDefeatedRivalStaysOutAfterCrash(t *testing.T) {
	cfg := quiet()
	cfg.Scaling.BaseOpponents = 2
	e, g := newEngine(t, cfg, 1, nil)
	serve(t, e)
	require.Len(t, g.Rivals(), 2)

	r := g.Rivals()[0]
	for _, d := range []physics.Dir{physics.DirLeft, physics.DirUp, physics.DirDown} {
		g.Grid().Mark(r.Head.Add(d), 99)
	}
	start := r.Head
	tick(e)
	require.False(t, r.Alive)
	require.Equal(t, core.PhasePlaying, e.Phase())
	require.Equal(t, 1, g.Remaining())

	tick(e, core.ActionUp)
	for i := 0; e.Phase() == core.PhasePlaying; i++ {
		require.Less(t, i, 100, "player never crashed")
		tick(e)
	}
	require.Equal(t, cfg.Rules.Lives-1, e.State().Lives)

	assert.Equal(t, 1, g.Remaining(), "a defeated rival is not rebuilt")
	assert.False(t, g.Rivals()[0].Alive)
	assert.Zero(t, g.Grid().Owner(start))
	assert.Equal(t, 2, g.Grid().Count(), "player and the surviving rival")

	serve(t, e)
	for range 3 {
		tick(e)
	}
	assert.False(t, g.Rivals()[0].Alive)
	assert.Equal(t, 1, g.Remaining())
}

func TestPilotNeverEntersOccupiedCell(t *testing.T) {
	cfg := config.DefaultCyclesConfig()
	cfg.AI.TurnChance = 0.3
	cfg.Scaling.BaseOpponents = 3
	e, g := newEngine(t, cfg, 7, nil)
	rng := rand.New(rand.NewSource(3))
	turns := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	checked := 0
	for range 3000 {
		if e.State().GameOver || e.Phase() == core.PhaseEnteringInitials || e.Phase() == core.PhaseSubmitted {
			e.Restart()
		}
		playing := e.Phase() == core.PhasePlaying

		var before map[physics.Point]int
		heads := map[int]physics.Point{}
		if playing {
			before = owners(g.Grid())
			for _, r := range g.Rivals() {
				heads[r.ID] = r.Head
			}
		}

		var a []core.Action
		if rng.Intn(6) == 0 {
			a = append(a, turns[rng.Intn(len(turns))])
		}
		if e.Phase() == core.PhaseServing {
			a = append(a, core.ActionLaunch)
		}
		tick(e, a...)

		if !playing || e.Phase() != core.PhasePlaying {
			continue
		}
		for _, r := range g.Rivals() {
			if !r.Alive || r.Head == heads[r.ID] {
				continue
			}
			require.Zero(t, before[r.Head], "rival %d entered an occupied cell", r.ID)
			require.True(t, g.Grid().InBounds(r.Head))
			checked++
		}
	}
	assert.Positive(t, checked)
}

func owners(g *physics.Grid) map[physics.Point]int {
	out := map[physics.Point]int{}
	for y := range g.H {
		for x := range g.W {
			p := physics.Point{X: x, Y: y}
			if id := g.Owner(p); id != 0 {
				out[p] = id
			}
		}
	}
	return out
}

func TestFractionalSpeed(t *testing.T) {
	cfg := quiet()
	cfg.Scaling.BaseSpeed = 0.5
	e, g := newEngine(t, cfg, 1, nil)
	serve(t, e)
	start := g.Player().Head

	for range 4 {
		tick(e)
	}
	assert.Equal(t, start.X+2, g.Player().Head.X)
}

func TestTickRateLimitsMoves(t *testing.T) {
	e, g := newEngine(t, quiet(), 1, nil)
	serve(t, e)
	start := g.Player().Head

	// one second of 60 Hz display frames
	for range 60 {
		e.Step(core.NewInputFrame())
	}
	assert.InDelta(t, start.X+12, g.Player().Head.X, 1)
}

func TestHumRunsDuringPlay(t *testing.T) {
	au := audio.NewWithSink(audio.DefaultConfig(), &audio.Recorder{}, log.New(io.Discard))
	cfg := quiet()
	cfg.Rules.Lives = 1
	e, _ := newEngine(t, cfg, 1, au)

	assert.False(t, au.HumRunning(), "no hum during countdown")
	serve(t, e)
	assert.True(t, au.HumRunning())

	tick(e, core.ActionUp)
	for i := 0; e.Phase() == core.PhasePlaying; i++ {
		require.Less(t, i, 100)
		tick(e)
	}
	assert.True(t, e.State().GameOver)
	assert.False(t, au.HumRunning(), "hum stops at game over")
}

func TestDeterministicForSeed(t *testing.T) {
	run := func() uint64 {
		cfg := config.DefaultCyclesConfig()
		cfg.Scaling.BaseOpponents = 3
		e, g := newEngine(t, cfg, 42, nil)
		var n uint64
		for i := range 400 {
			var a []core.Action
			switch {
			case i%17 == 0:
				a = append(a, core.ActionUp)
			case i%23 == 0:
				a = append(a, core.ActionRight)
			}
			n += uint64(tick(e, a...).Ticks)
		}
		return g.Snapshot(n).Hash()
	}
	assert.Equal(t, run(), run())
}

func TestRenderDrawsTrailsAndHeads(t *testing.T) {
	e, _ := newEngine(t, quiet(), 1, nil)
	serve(t, e)
	tick(e)
	tick(e)

	dst := core.NewScreen(60, 21)
	e.Render(dst)
	out := dst.String()
	assert.Contains(t, out, string(TrailChar))
	assert.Contains(t, out, string(headGlyphs[physics.DirRight]))
	assert.Contains(t, out, string(headGlyphs[physics.DirLeft]))
	assert.Contains(t, out, "CYCLES")
}
