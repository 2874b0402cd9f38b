// Package progression tracks score, level and lives of a run and derives
// difficulty from the level number alone.
package progression

import "math"

// Scaling maps a level number to difficulty parameters. Every method is a
// pure function of the level. Zero caps mean "no cap".
type Scaling struct {
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	MaxSpeed       float64 `yaml:"max_speed"`

	BaseSize   float64 `yaml:"base_size"`
	SizeShrink float64 `yaml:"size_shrink"`
	MinSize    float64 `yaml:"min_size"`

	BaseOpponents     int `yaml:"base_opponents"`
	OpponentsPerLevel int `yaml:"opponents_per_level"`
	MaxOpponents      int `yaml:"max_opponents"`

	ReactionDelay    float64 `yaml:"reaction_delay"`
	ReactionStep     float64 `yaml:"reaction_step"`
	MinReactionDelay float64 `yaml:"min_reaction_delay"`

	AIMaxStep      float64 `yaml:"ai_max_step"`
	AIStepIncrease float64 `yaml:"ai_step_increase"`
	AIMaxStepCap   float64 `yaml:"ai_max_step_cap"`
}

// Params is the difficulty of one level.
type Params struct {
	Level         int
	Speed         float64
	Size          float64
	Opponents     int
	ReactionDelay float64
	AIMaxStep     float64
}

func steps(level int) float64 {
	if level < 1 {
		level = 1
	}
	return float64(level - 1)
}

// Speed returns base + increment × (level − 1), capped.
func (s Scaling) Speed(level int) float64 {
	v := s.BaseSpeed + s.SpeedIncrement*steps(level)
	if s.MaxSpeed > 0 {
		v = math.Min(v, s.MaxSpeed)
	}
	return v
}

// Size returns base − shrink × (level − 1), floored.
func (s Scaling) Size(level int) float64 {
	return math.Max(s.BaseSize-s.SizeShrink*steps(level), s.MinSize)
}

// Opponents returns min(base + perLevel × (level − 1), max).
func (s Scaling) Opponents(level int) int {
	n := s.BaseOpponents + s.OpponentsPerLevel*int(steps(level))
	if s.MaxOpponents > 0 && n > s.MaxOpponents {
		n = s.MaxOpponents
	}
	return n
}

// Reaction returns the AI reaction delay, shrinking with level.
func (s Scaling) Reaction(level int) float64 {
	return math.Max(s.ReactionDelay-s.ReactionStep*steps(level), s.MinReactionDelay)
}

// AIStep returns the AI per-tick movement cap, growing with level.
func (s Scaling) AIStep(level int) float64 {
	v := s.AIMaxStep + s.AIStepIncrease*steps(level)
	if s.AIMaxStepCap > 0 {
		v = math.Min(v, s.AIMaxStepCap)
	}
	return v
}

// At collects every parameter of a level.
func (s Scaling) At(level int) Params {
	if level < 1 {
		level = 1
	}
	return Params{
		Level:         level,
		Speed:         s.Speed(level),
		Size:          s.Size(level),
		Opponents:     s.Opponents(level),
		ReactionDelay: s.Reaction(level),
		AIMaxStep:     s.AIStep(level),
	}
}
