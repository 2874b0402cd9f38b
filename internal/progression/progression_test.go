package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testScaling = Scaling{
	BaseSpeed: 0.5, SpeedIncrement: 0.1, MaxSpeed: 0.8,
	BaseSize: 12, SizeShrink: 2, MinSize: 5,
	BaseOpponents: 1, OpponentsPerLevel: 1, MaxOpponents: 3,
	ReactionDelay: 0.6, ReactionStep: 0.1, MinReactionDelay: 0.2,
	AIMaxStep: 0.4, AIStepIncrease: 0.1, AIMaxStepCap: 0.7,
}

func TestScalingByLevel(t *testing.T) {
	tests := []struct {
		level     int
		speed     float64
		size      float64
		opponents int
		reaction  float64
		step      float64
	}{
		{0, 0.5, 12, 1, 0.6, 0.4},
		{1, 0.5, 12, 1, 0.6, 0.4},
		{2, 0.6, 10, 2, 0.5, 0.5},
		{3, 0.7, 8, 3, 0.4, 0.6},
		{4, 0.8, 6, 3, 0.3, 0.7},
		{10, 0.8, 5, 3, 0.2, 0.7},
	}

	for _, tc := range tests {
		p := testScaling.At(tc.level)
		assert.InDelta(t, tc.speed, p.Speed, 1e-9, "speed at %d", tc.level)
		assert.InDelta(t, tc.size, p.Size, 1e-9, "size at %d", tc.level)
		assert.Equal(t, tc.opponents, p.Opponents, "opponents at %d", tc.level)
		assert.InDelta(t, tc.reaction, p.ReactionDelay, 1e-9, "reaction at %d", tc.level)
		assert.InDelta(t, tc.step, p.AIMaxStep, 1e-9, "step at %d", tc.level)
	}
}

func TestScalingIsDeterministic(t *testing.T) {
	for level := 1; level < 20; level++ {
		assert.Equal(t, testScaling.At(level), testScaling.At(level))
		assert.GreaterOrEqual(t, testScaling.Speed(level+1), testScaling.Speed(level), "speed never drops")
	}
}

func TestScalingUncapped(t *testing.T) {
	s := Scaling{BaseSpeed: 1, SpeedIncrement: 1, BaseOpponents: 2, OpponentsPerLevel: 2}
	assert.Equal(t, 10.0, s.Speed(10))
	assert.Equal(t, 20, s.Opponents(10))
}

func TestTrackerScoring(t *testing.T) {
	tr := NewTracker(Rules{Lives: 3, LevelBonus: 100, DefeatBonus: 25, SurvivalPoints: 1})

	assert.Equal(t, 0, tr.Score())
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 3, tr.Lives())

	tr.AddPoints(10)
	tr.AddPoints(-50)
	tr.Survive()
	assert.Equal(t, 11, tr.Score())

	before := tr.Score()
	assert.Equal(t, 100, tr.ClearLevel())
	assert.Equal(t, before+100, tr.Score())
	assert.Equal(t, 2, tr.Level())

	assert.Equal(t, 50, tr.Defeat(), "defeat bonus scales with level")
	before = tr.Score()
	assert.Equal(t, 200, tr.ClearLevel())
	assert.Equal(t, before+200, tr.Score())
}

func TestTrackerLives(t *testing.T) {
	tr := NewTracker(Rules{Lives: 2})
	assert.False(t, tr.LoseLife())
	assert.True(t, tr.LoseLife())
	assert.True(t, tr.Out())
	assert.True(t, tr.LoseLife(), "stays out")
	assert.Equal(t, 0, tr.Lives())

	tr.Reset()
	assert.Equal(t, 2, tr.Lives())
	assert.Equal(t, 1, tr.Level())
}
