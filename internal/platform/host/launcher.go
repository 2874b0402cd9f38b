// Package host wires a title's rules to the shared services every frontend
// needs: audio, the leaderboard, run history and the top-score bridge.
package host

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/boss"
	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
)

// Launcher builds engines. The zero value plays silently on an in-memory
// leaderboard.
type Launcher struct {
	Runtime core.RuntimeConfig
	Engine  config.EngineConfig
	Options registry.Options

	Board *highscore.Board
	Runs  engine.RunRecorder

	Audio  audio.Config
	Silent bool // never open the speaker, as for remote sessions
	Mute   bool

	// Publisher, when set, receives every top-score event.
	Publisher *boss.Publisher
	Logger    *log.Logger
}

// Open creates the engine for title id on a w×h terminal. Non-positive
// sizes keep the runtime defaults.
func (l Launcher) Open(id string, w, h int) (*engine.Engine, error) {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	rules, err := registry.Create(id, l.Options)
	if err != nil {
		return nil, err
	}

	rt := l.Runtime
	if w > 0 && h > 0 {
		rt.ScreenW, rt.ScreenH = w, h
	}

	var au *audio.Engine
	if l.Silent {
		au = audio.NewWithSink(l.Audio, nil, logger)
	} else {
		au = audio.New(l.Audio, logger)
	}
	au.SetMuted(l.Mute)

	bridge := boss.NewBridge(logger)
	e := engine.New(rules, engine.Options{
		Runtime: rt,
		Config:  l.Engine,
		Audio:   au,
		Board:   l.Board,
		Bridge:  bridge,
		Runs:    l.Runs,
		Logger:  logger,
	})

	if l.Publisher != nil {
		unsubscribe := bridge.Subscribe(l.Publisher.Handler())
		e.Session().Defer("publisher", func() error {
			unsubscribe()
			return nil
		})
	}

	logger.Debug("engine opened", "title", id, "w", rt.ScreenW, "h", rt.ScreenH, "silent", au.Silent())
	return e, nil
}
