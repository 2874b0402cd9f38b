// Package config provides YAML-based title configuration loading and
// difficulty presets for the arcade engine.
package config

import "github.com/vovakirdan/arcade-eggs/internal/progression"

// EngineConfig holds the timings shared by every title.
type EngineConfig struct {
	CountdownSeconds  float64 `yaml:"countdown_seconds"`
	TransitionSeconds float64 `yaml:"transition_seconds"`
	MaxCatchUp        int     `yaml:"max_catch_up"` // logical ticks per display frame
	ShakeTicks        int     `yaml:"shake_ticks"`
	Particles         int     `yaml:"particles"`
	LeaderboardSize   int     `yaml:"leaderboard_size"`
}

// PongConfig contains all configuration for the paddle duel.
type PongConfig struct {
	Physics  PongPhysics         `yaml:"physics"`
	Paddles  PongPaddles         `yaml:"paddles"`
	Gameplay PongGameplay        `yaml:"gameplay"`
	Scaling  progression.Scaling `yaml:"scaling"`
	Rules    progression.Rules   `yaml:"rules"`
}

// PongPhysics defines ball behavior.
type PongPhysics struct {
	BallRadius   float64 `yaml:"ball_radius"`
	ConeDegrees  float64 `yaml:"cone_degrees"`  // paddle reflection half-angle
	ServeDegrees float64 `yaml:"serve_degrees"` // max serve deviation from horizontal
	HitBoost     float64 `yaml:"hit_boost"`     // speed gained per paddle hit
}

// PongPaddles defines paddle geometry and player speed.
type PongPaddles struct {
	Width       float64 `yaml:"width"`
	Offset      float64 `yaml:"offset"` // distance from the side wall
	PlayerSpeed float64 `yaml:"player_speed"`
	Overshoot   float64 `yaml:"overshoot"` // margin past a paddle before a point is conceded
}

// PongGameplay defines scoring.
type PongGameplay struct {
	PointValue     int `yaml:"point_value"`
	HitPoints      int `yaml:"hit_points"`
	PointsPerLevel int `yaml:"points_per_level"`
	ServeDelay     int `yaml:"serve_delay"` // ticks before an automatic serve
}

// BreakoutConfig contains all configuration for the brick breaker.
type BreakoutConfig struct {
	Physics  BreakoutPhysics     `yaml:"physics"`
	Paddle   BreakoutPaddle      `yaml:"paddle"`
	Gameplay BreakoutGameplay    `yaml:"gameplay"`
	Scaling  progression.Scaling `yaml:"scaling"`
	Rules    progression.Rules   `yaml:"rules"`
	Levels   []LevelLayout       `yaml:"levels"` // replaces the built-in levels when set
}

// LevelLayout is a brick map drawn in ASCII, one string per row.
type LevelLayout struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// BreakoutPhysics defines ball behavior.
type BreakoutPhysics struct {
	BallRadius    float64 `yaml:"ball_radius"`
	ConeDegrees   float64 `yaml:"cone_degrees"`
	SpeedUpEveryN int     `yaml:"speed_up_every_n"` // bricks between speed-ups
	SpeedUpAmount float64 `yaml:"speed_up_amount"`
}

// BreakoutPaddle defines the player paddle.
type BreakoutPaddle struct {
	Speed     float64 `yaml:"speed"`
	BottomGap int     `yaml:"bottom_gap"` // rows between paddle and the open bottom
}

// BreakoutGameplay defines scoring and layout.
type BreakoutGameplay struct {
	BrickTop   int `yaml:"brick_top"` // first brick row
	ServeDelay int `yaml:"serve_delay"`
}

// CyclesConfig contains all configuration for the light-cycle duel.
type CyclesConfig struct {
	Grid     CyclesGrid          `yaml:"grid"`
	AI       CyclesAI            `yaml:"ai"`
	Gameplay CyclesGameplay      `yaml:"gameplay"`
	Scaling  progression.Scaling `yaml:"scaling"`
	Rules    progression.Rules   `yaml:"rules"`
}

// CyclesGrid defines the trail grid.
type CyclesGrid struct {
	TickRate int `yaml:"tick_rate"` // cycle moves per second
}

// CyclesAI defines opponent behavior.
type CyclesAI struct {
	TurnChance float64 `yaml:"turn_chance"`
}

// CyclesGameplay defines round flow.
type CyclesGameplay struct {
	ServeDelay int `yaml:"serve_delay"` // ticks before the cycles start moving
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
