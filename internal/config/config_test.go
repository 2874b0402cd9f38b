package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	check := func(name string, embedded []byte, want, got any) {
		t.Helper()
		if err := yaml.Unmarshal(embedded, got); err != nil {
			t.Fatalf("%s: parse embedded: %v", name, err)
		}
		if !reflect.DeepEqual(reflect.ValueOf(got).Elem().Interface(), want) {
			t.Errorf("%s: embedded %+v, hardcoded %+v", name, reflect.ValueOf(got).Elem().Interface(), want)
		}
	}
	check("engine", GetDefaultYAML("engine"), DefaultEngineConfig(), &EngineConfig{})
	check("pong", GetDefaultYAML("pong"), DefaultPongConfig(), &PongConfig{})
	check("breakout", GetDefaultYAML("breakout"), DefaultBreakoutConfig(), &BreakoutConfig{})
	check("cycles", GetDefaultYAML("cycles"), DefaultCyclesConfig(), &CyclesConfig{})

	if GetDefaultYAML("snake") != nil {
		t.Error("unknown title should have no default YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	data := []byte("gameplay:\n  points_per_level: 2\nrules:\n  lives: 9\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if cfg.Gameplay.PointsPerLevel != 2 || cfg.Rules.Lives != 9 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Physics.ConeDegrees != 60 {
		t.Errorf("ConeDegrees = %v, want default 60", cfg.Physics.ConeDegrees)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadBreakout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCycles(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadEngine("")
	if err != nil {
		t.Fatalf("LoadEngine: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"normal", DifficultyNormal},
		{"hard", DifficultyHard},
		{"fixed", DifficultyFixed},
		{"insane", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePreset(tt.in); got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPresets(t *testing.T) {
	base := DefaultPongConfig()

	easy := DefaultPongConfig()
	ApplyPongPreset(&easy, DifficultyEasy)
	if easy.Rules.Lives <= base.Rules.Lives {
		t.Errorf("easy lives = %d, want more than %d", easy.Rules.Lives, base.Rules.Lives)
	}
	if easy.Scaling.ReactionDelay <= base.Scaling.ReactionDelay {
		t.Error("easy AI should react slower")
	}

	hard := DefaultPongConfig()
	ApplyPongPreset(&hard, DifficultyHard)
	if hard.Scaling.BaseSpeed <= base.Scaling.BaseSpeed {
		t.Error("hard ball should start faster")
	}
	if hard.Rules.Lives < 1 {
		t.Error("lives must stay positive")
	}

	fixed := DefaultBreakoutConfig()
	ApplyBreakoutPreset(&fixed, DifficultyFixed)
	if fixed.Scaling.Speed(1) != fixed.Scaling.Speed(7) || fixed.Scaling.Size(1) != fixed.Scaling.Size(7) {
		t.Error("fixed preset must freeze per-level scaling")
	}

	cycles := DefaultCyclesConfig()
	ApplyCyclesPreset(&cycles, DifficultyHard)
	if cycles.AI.TurnChance <= DefaultCyclesConfig().AI.TurnChance {
		t.Error("hard opponents should turn more often")
	}
}
