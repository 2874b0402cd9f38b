package config

import (
	_ "embed"

	"github.com/vovakirdan/arcade-eggs/internal/progression"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/cycles.yaml
var defaultCyclesYAML []byte

// DefaultEngineConfig returns the default engine timings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CountdownSeconds:  3,
		TransitionSeconds: 1.5,
		MaxCatchUp:        5,
		ShakeTicks:        6,
		Particles:         256,
		LeaderboardSize:   10,
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallRadius:   0.5,
			ConeDegrees:  60,
			ServeDegrees: 30,
			HitBoost:     0.02,
		},
		Paddles: PongPaddles{
			Width:       1,
			Offset:      2,
			PlayerSpeed: 1.5,
			Overshoot:   1,
		},
		Gameplay: PongGameplay{
			PointValue:     100,
			HitPoints:      10,
			PointsPerLevel: 5,
			ServeDelay:     60,
		},
		Scaling: progression.Scaling{
			BaseSpeed:        0.5,
			SpeedIncrement:   0.08,
			MaxSpeed:         1.2,
			BaseSize:         5,
			SizeShrink:       0.5,
			MinSize:          3,
			ReactionDelay:    0.5,
			ReactionStep:     0.08,
			MinReactionDelay: 0.1,
			AIMaxStep:        0.35,
			AIStepIncrease:   0.05,
			AIMaxStepCap:     0.9,
		},
		Rules: progression.Rules{
			Lives:      5,
			LevelBonus: 500,
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallRadius:    0.5,
			ConeDegrees:   60,
			SpeedUpEveryN: 10,
			SpeedUpAmount: 0.02,
		},
		Paddle: BreakoutPaddle{
			Speed:     2,
			BottomGap: 1,
		},
		Gameplay: BreakoutGameplay{
			BrickTop: 1,
		},
		Scaling: progression.Scaling{
			BaseSpeed:      0.35,
			SpeedIncrement: 0.05,
			MaxSpeed:       0.9,
			BaseSize:       9,
			SizeShrink:     1,
			MinSize:        4,
		},
		Rules: progression.Rules{
			Lives:      3,
			LevelBonus: 1000,
		},
	}
}

// DefaultCyclesConfig returns the default light-cycle configuration.
func DefaultCyclesConfig() CyclesConfig {
	return CyclesConfig{
		Grid:     CyclesGrid{TickRate: 12},
		AI:       CyclesAI{TurnChance: 0.08},
		Gameplay: CyclesGameplay{ServeDelay: 12},
		Scaling: progression.Scaling{
			BaseSpeed:         1,
			SpeedIncrement:    0.1,
			MaxSpeed:          2,
			BaseOpponents:     1,
			OpponentsPerLevel: 1,
			MaxOpponents:      4,
		},
		Rules: progression.Rules{
			Lives:          3,
			LevelBonus:     250,
			DefeatBonus:    100,
			SurvivalPoints: 1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a title, or for the
// engine when id is "engine".
func GetDefaultYAML(id string) []byte {
	switch id {
	case "engine":
		return defaultEngineYAML
	case "pong":
		return defaultPongYAML
	case "breakout":
		return defaultBreakoutYAML
	case "cycles":
		return defaultCyclesYAML
	default:
		return nil
	}
}
