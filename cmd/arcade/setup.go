package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-eggs/internal/audio"
	"github.com/vovakirdan/arcade-eggs/internal/boss"
	"github.com/vovakirdan/arcade-eggs/internal/config"
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/highscore"
	"github.com/vovakirdan/arcade-eggs/internal/platform/host"
	"github.com/vovakirdan/arcade-eggs/internal/registry"
	"github.com/vovakirdan/arcade-eggs/internal/storage"
)

func setupLogging() error {
	if flagLogLevel != "" {
		lvl, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(lvl)
	}
	return nil
}

// logToFile redirects the logger while a full-screen frontend owns the
// terminal. The returned func restores stderr.
func logToFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	path := filepath.Join(home, ".arcade", "arcade.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	logger.SetOutput(f)
	logger.SetReportTimestamp(true)
	return func() {
		logger.SetOutput(os.Stderr)
		logger.SetReportTimestamp(false)
		_ = f.Close()
	}
}

// startProfile starts the profiler named by --profile. The stop func is a
// no-op when profiling is off.
func startProfile() (stop func(), err error) {
	switch strings.ToLower(flagProfile) {
	case "":
		return func() {}, nil
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
		return p.Stop, nil
	case "mem":
		p := profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
		return p.Stop, nil
	default:
		return nil, fmt.Errorf("unknown profile %q (want cpu or mem)", flagProfile)
	}
}

func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func requireTitle(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("unknown title %q, run 'arcade list' to see available titles", id)
	}
	return nil
}

// closeSpeaker releases the audio device once every engine is closed.
var closeSpeaker = audio.CloseSpeaker

// arcade bundles what a command needs to open titles. Close releases the
// scores database, the notify publisher and the audio device.
type arcade struct {
	launcher host.Launcher
	store    *storage.Store
}

// baseLauncher builds a launcher from the flags and the environment without
// a leaderboard backend.
func baseLauncher() (host.Launcher, error) {
	preset := config.ParsePreset(flagPreset)
	if flagPreset != "" && preset == "" {
		return host.Launcher{}, fmt.Errorf("unknown preset %q", flagPreset)
	}

	engCfg, err := config.LoadEngine(flagEngineCfg)
	if err != nil {
		return host.Launcher{}, err
	}

	width, height := terminalSize()
	l := host.Launcher{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     seed(),
		},
		Engine:  engCfg,
		Options: registry.Options{ConfigPath: flagConfig, Preset: preset},
		Audio:   audio.LoadConfig(),
		Mute:    flagMute,
		Logger:  logger,
	}
	if flagNotifyURL != "" {
		l.Publisher = boss.NewPublisher(flagNotifyURL, logger)
	}
	return l, nil
}

func newArcade() (*arcade, error) {
	l, err := baseLauncher()
	if err != nil {
		return nil, err
	}
	a := &arcade{launcher: l}

	var backend highscore.Backend
	switch flagStore {
	case "sqlite", "":
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			logger.Warn("could not open scores database, leaderboards are in memory", "error", openErr)
			backend = highscore.NewMemoryStore()
		} else {
			a.store = store
			a.launcher.Runs = store
			backend = store
		}
	case "file":
		fs, fsErr := highscore.NewFileStore(flagScoresFile)
		if fsErr != nil {
			logger.Warn("could not open leaderboard file, leaderboards are in memory", "error", fsErr)
			backend = highscore.NewMemoryStore()
		} else {
			backend = fs
		}
	default:
		a.Close()
		return nil, fmt.Errorf("unknown store %q (want sqlite or file)", flagStore)
	}
	a.launcher.Board = highscore.NewBoard(backend, l.Engine.LeaderboardSize, logger)
	return a, nil
}

func (a *arcade) Close() {
	closeSpeaker()
	if a.launcher.Publisher != nil {
		if err := a.launcher.Publisher.Close(); err != nil {
			logger.Warn("notify publisher", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warn("scores database", "error", err)
		}
	}
}
