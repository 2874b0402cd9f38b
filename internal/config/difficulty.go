package config

import (
	"math"

	"github.com/vovakirdan/arcade-eggs/internal/progression"
)

// Tuning is how a preset bends a title's base numbers.
type Tuning struct {
	LivesDelta    int
	SpeedScale    float64
	ReactionDelta float64 // added to the AI reaction delay
	StepScale     float64 // multiplies the AI max step
	SizeScale     float64
}

// TuningFor returns the adjustments of a preset. Normal, fixed and unknown
// presets leave the base numbers alone.
func TuningFor(preset DifficultyPreset) Tuning {
	switch preset {
	case DifficultyEasy:
		return Tuning{LivesDelta: 2, SpeedScale: 0.85, ReactionDelta: 0.15, StepScale: 0.8, SizeScale: 1.2}
	case DifficultyHard:
		return Tuning{LivesDelta: -1, SpeedScale: 1.15, ReactionDelta: -0.15, StepScale: 1.25, SizeScale: 0.85}
	default:
		return Tuning{SpeedScale: 1, StepScale: 1, SizeScale: 1}
	}
}

// ApplyPreset modifies scaling and rules for a difficulty preset. The fixed
// preset freezes every per-level change so level 1 numbers hold forever.
func ApplyPreset(s *progression.Scaling, r *progression.Rules, preset DifficultyPreset) {
	t := TuningFor(preset)

	r.Lives = max(r.Lives+t.LivesDelta, 1)

	s.BaseSpeed *= t.SpeedScale
	s.BaseSize *= t.SizeScale
	s.AIMaxStep *= t.StepScale
	s.ReactionDelay = clampF(s.ReactionDelay+t.ReactionDelta, s.MinReactionDelay, 0.95)

	if IsFixedPreset(preset) {
		s.SpeedIncrement = 0
		s.SizeShrink = 0
		s.OpponentsPerLevel = 0
		s.ReactionStep = 0
		s.AIStepIncrease = 0
	}
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Scaling, &cfg.Rules, preset)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Scaling, &cfg.Rules, preset)
}

// ApplyCyclesPreset modifies the config based on a difficulty preset.
func ApplyCyclesPreset(cfg *CyclesConfig, preset DifficultyPreset) {
	ApplyPreset(&cfg.Scaling, &cfg.Rules, preset)

	switch preset {
	case DifficultyEasy:
		cfg.AI.TurnChance *= 0.5
	case DifficultyHard:
		cfg.AI.TurnChance = math.Min(cfg.AI.TurnChance*1.5, 1)
	}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
