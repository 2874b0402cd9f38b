// Package audio synthesizes every sound effect at the moment it is needed.
// There are no recorded assets: each event maps to a recipe of oscillator
// tones with a frequency ramp and an exponentially decaying gain, mixed onto
// a beep speaker. A single looped hum voice accompanies active play in
// titles that ask for it.
package audio

// SoundType identifies a discrete game event with its own recipe.
type SoundType int

const (
	SoundBounce SoundType = iota
	SoundPaddle
	SoundBreak
	SoundScore
	SoundLifeLost
	SoundCrash
	SoundLevelUp
	SoundGameOver
	SoundCountdown
	SoundServe
	SoundNavigate
	SoundConfirm
	SoundTopScore
)

func (s SoundType) String() string {
	switch s {
	case SoundBounce:
		return "bounce"
	case SoundPaddle:
		return "paddle"
	case SoundBreak:
		return "break"
	case SoundScore:
		return "score"
	case SoundLifeLost:
		return "life-lost"
	case SoundCrash:
		return "crash"
	case SoundLevelUp:
		return "level-up"
	case SoundGameOver:
		return "game-over"
	case SoundCountdown:
		return "countdown"
	case SoundServe:
		return "serve"
	case SoundNavigate:
		return "navigate"
	case SoundConfirm:
		return "confirm"
	case SoundTopScore:
		return "top-score"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// Ramp is the curve a tone's frequency follows from start to end.
type Ramp int

const (
	RampFixed Ramp = iota
	RampLinear
	RampExponential
)
