package engine

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/boss"
	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/initials"
	"github.com/vovakirdan/arcade-eggs/internal/progression"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// ErrClosed is returned when acquiring on a closed engine or session.
var ErrClosed = errors.New("engine closed")

// RunRecorder stores finished runs. storage.Store satisfies it.
type RunRecorder interface {
	RecordRun(title string, score, level int, d time.Duration) (int64, error)
}

// Options configure an engine. Zero values select silent audio, an
// in-memory leaderboard and a private bridge.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.EngineConfig
	Audio   *audio.Engine
	Board   *highscore.Board
	Bridge  *boss.Bridge
	Runs    RunRecorder
	Logger  *log.Logger
}

// Engine runs one title. It is driven from a single goroutine: the host
// calls Step or Advance once per display frame and Render after it.
type Engine struct {
	rules  Rules
	traits Traits
	cfg    config.EngineConfig
	logger *log.Logger

	audio   *audio.Engine
	board   *highscore.Board
	bridge  *boss.Bridge
	runs    RunRecorder
	session *Session

	frame     Frame
	tracker   *progression.Tracker
	particles *core.ParticlePool
	cursor    *initials.Cursor
	acc       *Accumulator
	frameDur  time.Duration

	phase   core.Phase
	outcome outcome
	timer   int // ticks left in Countdown, Serving or LevelTransition
	pending core.InputFrame

	paused   bool
	closed   bool
	tooSmall bool
	viewW    int
	viewH    int

	shake    int
	shakeMag int
	shakeDX  int
	shakeDY  int

	table     *highscore.Table
	rank      int
	lastBonus int

	canvas *core.Screen
}

// New creates an engine for rules and starts the first run. The playfield
// is the runtime screen minus the HUD rows.
func New(rules Rules, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Config == (config.EngineConfig{}) {
		opts.Config = config.DefaultEngineConfig()
	}
	if opts.Audio == nil {
		opts.Audio = audio.NewWithSink(audio.DefaultConfig(), nil, opts.Logger)
	}
	if opts.Board == nil {
		opts.Board = highscore.NewBoard(nil, opts.Config.LeaderboardSize, opts.Logger)
	}
	if opts.Bridge == nil {
		opts.Bridge = boss.NewBridge(opts.Logger)
	}
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	traits := rules.Traits()
	rate := traits.TickRate
	if rate <= 0 {
		rate = opts.Runtime.TickRate
	}

	e := &Engine{
		rules:     rules,
		traits:    traits,
		cfg:       opts.Config,
		logger:    opts.Logger.With("title", rules.ID()),
		audio:     opts.Audio,
		board:     opts.Board,
		bridge:    opts.Bridge,
		runs:      opts.Runs,
		session:   NewSession(),
		tracker:   progression.NewTracker(rules.Progression()),
		particles: core.NewParticlePool(opts.Config.Particles),
		cursor:    initials.New(),
		acc:       NewAccumulator(rate, opts.Config.MaxCatchUp),
		frameDur:  time.Second / time.Duration(opts.Runtime.TickRate),
		pending:   core.NewInputFrame(),
		rank:      -1,
		viewW:     opts.Runtime.ScreenW,
		viewH:     opts.Runtime.ScreenH,
	}
	e.frame = Frame{
		W:   opts.Runtime.ScreenW,
		H:   opts.Runtime.ScreenH - HUDRows,
		Rng: rand.New(rand.NewSource(seed)),
		e:   e,
	}
	e.canvas = core.NewScreen(e.frame.W, e.frame.H)

	// Released in reverse: the bridge detaches before audio goes quiet.
	e.session.Defer("audio", e.audio.Close)
	e.session.Defer("bridge", e.bridge.Close)

	e.checkSize()
	e.Restart()
	return e
}

// Rules returns the title strategy.
func (e *Engine) Rules() Rules { return e.rules }

// Session returns the release stack. Hosts push their own presentation
// state onto it so Close restores everything in one place.
func (e *Engine) Session() *Session { return e.session }

// Bridge returns the top-score bridge.
func (e *Engine) Bridge() *boss.Bridge { return e.bridge }

// Audio returns the audio engine.
func (e *Engine) Audio() *audio.Engine { return e.audio }

// Phase returns the active phase.
func (e *Engine) Phase() core.Phase { return e.phase }

// Field returns the playfield size.
func (e *Engine) Field() (int, int) { return e.frame.W, e.frame.H }

// Table returns the leaderboard shown after the run, or nil while playing.
func (e *Engine) Table() *highscore.Table { return e.table }

// Rank returns the submitted entry's rank, -1 if none.
func (e *Engine) Rank() int { return e.rank }

// Cursor returns the initials cursor.
func (e *Engine) Cursor() *initials.Cursor { return e.cursor }

// Paused reports whether the simulation is frozen by the player.
func (e *Engine) Paused() bool { return e.paused }

// Closed reports whether Close ran.
func (e *Engine) Closed() bool { return e.closed }

// TooSmall reports whether the viewport cannot fit the playfield.
func (e *Engine) TooSmall() bool { return e.tooSmall }

// State returns the host-facing summary.
func (e *Engine) State() core.GameState {
	return core.GameState{
		Phase:    e.phase,
		Score:    e.tracker.Score(),
		Level:    e.tracker.Level(),
		Lives:    e.tracker.Lives(),
		GameOver: e.phase.Finished(),
		Paused:   e.paused,
		Closed:   e.closed,
		Blocked:  e.bridge.Active(),
	}
}

// Restart discards the run and begins a new one at Countdown.
func (e *Engine) Restart() {
	if e.closed {
		return
	}
	e.tracker.Reset()
	e.bridge.Arm()
	e.cursor.Reset()
	e.particles.Reset()
	e.acc.Reset()
	e.pending.Clear()
	e.audio.StopHum()

	e.frame.Tick = 0
	e.outcome = outcomeNone
	e.paused = false
	e.shake, e.shakeMag, e.shakeDX, e.shakeDY = 0, 0, 0, 0
	e.table = nil
	e.rank = -1
	e.lastBonus = 0

	e.rules.Setup(&e.frame)
	e.rules.Ready(&e.frame)
	e.phase = core.PhaseCountdown
	e.timer = e.seconds(e.cfg.CountdownSeconds)
}

// Resize records the viewport. The playfield keeps its size during a run;
// a viewport that cannot hold it freezes the simulation until it grows
// again. A field created below the title's minimum is rebuilt, and the run
// restarted, once the viewport is large enough.
func (e *Engine) Resize(w, h int) {
	e.viewW, e.viewH = w, h
	if e.frame.W < e.traits.MinW || e.frame.H < e.traits.MinH {
		if w >= e.traits.MinW && h-HUDRows >= e.traits.MinH {
			e.frame.W, e.frame.H = w, h-HUDRows
			e.canvas.Resize(e.frame.W, e.frame.H)
			e.Restart()
		}
	}
	e.checkSize()
}

func (e *Engine) checkSize() {
	minW := max(e.traits.MinW, e.frame.W)
	minH := max(e.traits.MinH, e.frame.H) + HUDRows
	e.tooSmall = e.viewW < minW || e.viewH < minH
}

// TogglePause freezes or resumes the simulation. Finished runs cannot be
// paused.
func (e *Engine) TogglePause() {
	if e.closed || e.phase.Finished() {
		return
	}
	e.paused = !e.paused
	e.syncHum()
}

// ToggleMute flips the global mute flag. Game logic is unaffected.
func (e *Engine) ToggleMute() bool {
	m := e.audio.ToggleMute()
	e.syncHum()
	return m
}

// Step advances one display frame.
func (e *Engine) Step(in core.InputFrame) core.StepResult {
	return e.Advance(in, e.frameDur)
}

// Advance feeds elapsed wall time and runs as many logical ticks as are
// due. Buttons pressed during the frame are seen by exactly one tick; the
// pointer is held. While the top-score overlay is open nothing advances
// and only the close gesture, which dismisses it, is read.
func (e *Engine) Advance(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if e.closed {
		return core.StepResult{State: e.State()}
	}

	if e.bridge.Active() {
		if e.bridge.Filter(in).Has(core.ActionClose) {
			e.bridge.Resolve()
		}
		e.acc.Reset()
		return core.StepResult{State: e.State()}
	}

	if in.Any(core.ActionClose, core.ActionQuit) {
		if err := e.Close(); err != nil {
			e.logger.Warn("teardown incomplete", "error", err)
		}
		return core.StepResult{State: e.State()}
	}
	if in.Has(core.ActionMute) {
		e.ToggleMute()
	}
	if in.Has(core.ActionPause) {
		e.TogglePause()
	}
	if e.paused || e.tooSmall {
		e.acc.Reset()
		return core.StepResult{State: e.State()}
	}

	for a, on := range in.Actions {
		if on {
			e.pending.Set(a)
		}
	}
	e.pending.Pointer = in.Pointer

	n := 1
	if e.traits.TickRate > 0 {
		n = e.acc.Add(elapsed)
	}
	ran := 0
	for ; ran < n && !e.closed && !e.bridge.Active(); ran++ {
		e.tick(e.pending)
		e.pending.Clear()
	}
	return core.StepResult{State: e.State(), Ticks: ran}
}

func (e *Engine) tick(in core.InputFrame) {
	e.frame.Tick++

	switch e.phase {
	case core.PhaseCountdown:
		e.countdown()
	case core.PhaseServing:
		e.serving(in)
	case core.PhasePlaying:
		e.playing(in)
	case core.PhaseLevelTransition:
		e.transition()
	case core.PhaseGameOver, core.PhaseSubmitted:
		if in.Has(core.ActionRestart) {
			e.audio.Play(audio.SoundConfirm)
			e.Restart()
			return
		}
	case core.PhaseEnteringInitials:
		e.enterInitials(in)
	}

	e.particles.Update()
	e.decayShake()
}

func (e *Engine) countdown() {
	rate := e.rate()
	if e.timer%rate == 0 {
		e.audio.Play(audio.SoundCountdown)
	}
	e.timer--
	if e.timer <= 0 {
		e.enterServing()
	}
}

func (e *Engine) enterServing() {
	if !e.setPhase(core.PhaseServing) {
		return
	}
	e.rules.Ready(&e.frame)
	e.timer = e.traits.ServeDelay
	e.syncHum()
}

func (e *Engine) serving(in core.InputFrame) {
	e.rules.ApplyInput(&e.frame, in)
	e.rules.Hold(&e.frame)

	launch := in.Has(core.ActionLaunch)
	if e.traits.ServeDelay > 0 {
		e.timer--
		launch = launch || e.timer <= 0
	}
	if !launch {
		return
	}
	if e.setPhase(core.PhasePlaying) {
		e.rules.Launch(&e.frame)
		e.audio.Play(audio.SoundServe)
	}
}

func (e *Engine) playing(in core.InputFrame) {
	f := &e.frame
	e.rules.ApplyInput(f, in)
	e.rules.AIPolicy(f)
	e.rules.Integrate(f)
	e.rules.ResolveCollisions(f)
	if e.outcome < outcomeLifeLost {
		e.tracker.Survive()
	}
	e.resolve()
}

func (e *Engine) report(o outcome) {
	if o > e.outcome {
		e.outcome = o
	}
}

// resolve applies the strongest outcome reported this tick.
func (e *Engine) resolve() {
	o := e.outcome
	e.outcome = outcomeNone

	switch o {
	case outcomeGameOver:
		e.enterGameOver()
	case outcomeLevelClear:
		if !e.setPhase(core.PhaseLevelTransition) {
			return
		}
		e.lastBonus = e.tracker.ClearLevel()
		e.timer = e.seconds(e.cfg.TransitionSeconds)
		e.audio.Play(audio.SoundLevelUp)
		e.syncHum()
		e.logger.Debug("level cleared", "level", e.tracker.Level()-1, "bonus", e.lastBonus)
	case outcomeLifeLost:
		e.audio.Play(audio.SoundLifeLost)
		e.frame.Shake(1)
		e.enterServing()
	case outcomePoint:
		e.enterServing()
	}
}

func (e *Engine) transition() {
	e.timer--
	if e.timer > 0 {
		return
	}
	e.rules.Setup(&e.frame)
	e.enterServing()
}

func (e *Engine) enterGameOver() {
	if !e.setPhase(core.PhaseGameOver) {
		return
	}
	e.syncHum()
	e.audio.Play(audio.SoundGameOver)

	score, level := e.tracker.Score(), e.tracker.Level()
	if e.runs != nil {
		d := time.Duration(e.frame.Tick) * e.acc.Step
		if _, err := e.runs.RecordRun(e.rules.ID(), score, level, d); err != nil {
			e.logger.Warn("run not recorded", "error", err)
		}
	}

	e.table = e.board.Load(e.rules.ID())
	if e.table.Qualifies(score) {
		e.cursor.Reset()
		e.setPhase(core.PhaseEnteringInitials)
	}
	e.logger.Info("run over", "score", score, "level", level, "qualifies", e.phase == core.PhaseEnteringInitials)
}

func (e *Engine) enterInitials(in core.InputFrame) {
	confirmed, moved := e.cursor.Handle(in)
	if moved {
		e.audio.Play(audio.SoundNavigate)
	}
	if !confirmed {
		return
	}

	tag := e.cursor.String()
	score := e.tracker.Score()
	e.rank, e.table = e.board.Submit(e.rules.ID(), highscore.Entry{Initials: tag, Score: score})
	e.audio.Play(audio.SoundConfirm)
	e.setPhase(core.PhaseSubmitted)

	if e.rank == 0 {
		e.audio.Play(audio.SoundTopScore)
		e.bridge.NotifyTopScore(e.rules.ID(), score, tag)
	}
}

// setPhase moves to next if the transition table allows it.
func (e *Engine) setPhase(next core.Phase) bool {
	if !core.CanTransition(e.phase, next) {
		e.logger.Error("illegal phase transition", "from", e.phase, "to", next)
		return false
	}
	e.phase = next
	return true
}

// syncHum starts or stops the hum to match the phase.
func (e *Engine) syncHum() {
	want := e.traits.Hum && !e.closed && !e.paused && e.phase.Active()
	if want {
		e.audio.StartHum()
	} else {
		e.audio.StopHum()
	}
}

func (e *Engine) decayShake() {
	if e.shake <= 0 {
		e.shakeDX, e.shakeDY, e.shakeMag = 0, 0, 0
		return
	}
	e.shake--
	m := e.shakeMag
	e.shakeDX = e.frame.Rng.Intn(2*m+1) - m
	e.shakeDY = e.frame.Rng.Intn(2*m+1) - m
}

func (e *Engine) rate() int {
	if e.traits.TickRate > 0 {
		return e.traits.TickRate
	}
	return int(time.Second / e.frameDur)
}

func (e *Engine) seconds(s float64) int {
	return max(int(math.Round(s*float64(e.rate()))), 1)
}

// Close stops the loop, stops the hum, detaches the bridge and runs every
// registered release. Later Step calls are no-ops. Safe to call more than
// once.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.audio.StopHum()
	return e.session.Close()
}
