package audio

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
)

// Engine plays event sounds and owns the single hum voice. It never returns
// errors to the game loop: a missing device means silent play.
type Engine struct {
	cfg    Config
	rate   beep.SampleRate
	sink   Sink
	logger *log.Logger

	muted  atomic.Bool
	closed atomic.Bool

	mu  sync.Mutex // guards hum
	hum *beep.Ctrl
}

// New creates an engine on the system speaker. When audio is disabled or
// the speaker cannot be opened the engine is silent.
func New(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if !cfg.Enabled {
		return NewWithSink(cfg, nil, logger)
	}
	sink, err := OpenSpeaker(beep.SampleRate(cfg.SampleRate))
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "error", err)
		return NewWithSink(cfg, nil, logger)
	}
	return NewWithSink(cfg, sink, logger)
}

// NewWithSink creates an engine on an explicit sink. A nil sink is silent.
func NewWithSink(cfg Config, sink Sink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.HumFreq <= 0 {
		cfg.HumFreq = DefaultConfig().HumFreq
	}
	return &Engine{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		sink:   sink,
		logger: logger,
	}
}

// Silent reports whether the engine has no output at all.
func (e *Engine) Silent() bool {
	return e.sink == nil
}

func (e *Engine) audible() bool {
	return e.sink != nil && !e.closed.Load() && !e.muted.Load()
}

// Play starts the recipe for st. It returns false when nothing was played.
func (e *Engine) Play(st SoundType) bool {
	if !e.audible() {
		return false
	}
	r, ok := Recipes[st]
	if !ok || len(r) == 0 {
		return false
	}
	e.sink.Play(newVolume(r.Streamer(e.rate), e.cfg.MasterVolume))
	return true
}

// StartHum starts the looped hum. Starting while it runs is a no-op.
func (e *Engine) StartHum() bool {
	if !e.audible() {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hum != nil {
		return false
	}
	ctrl := &beep.Ctrl{Streamer: newHum(e.rate, e.cfg.HumFreq)}
	e.hum = ctrl
	e.sink.Play(newVolume(ctrl, e.cfg.MasterVolume))
	return true
}

// StopHum stops and disposes the hum voice. It reports whether one ran.
func (e *Engine) StopHum() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hum == nil {
		return false
	}
	ctrl := e.hum
	e.hum = nil
	// A nil streamer makes the Ctrl drain, so the mixer drops it.
	e.sink.Do(func() {
		ctrl.Paused = true
		ctrl.Streamer = nil
	})
	return true
}

// HumRunning reports whether the hum voice is live.
func (e *Engine) HumRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hum != nil
}

// SetMuted changes the mute flag. Muting silences the hum as well.
func (e *Engine) SetMuted(m bool) {
	e.muted.Store(m)
	if m {
		e.StopHum()
	}
}

// ToggleMute flips the mute flag and returns the new state.
func (e *Engine) ToggleMute() bool {
	m := !e.muted.Load()
	e.SetMuted(m)
	return m
}

// Muted reports the mute flag.
func (e *Engine) Muted() bool {
	return e.muted.Load()
}

// Close stops the hum and turns every later call into a no-op. Safe to
// call more than once.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.StopHum()
	return nil
}
