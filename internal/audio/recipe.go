package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Tone is one oscillator voice of a recipe.
type Tone struct {
	Wave     Wave
	From, To float64 // Hz; To is ignored for RampFixed
	Ramp     Ramp
	Gain     float64 // peak gain, decays to ~0.001 by the end
	Duration time.Duration
	Delay    time.Duration // start offset, used for arpeggios
}

// End returns when the tone finishes relative to the recipe start.
func (t Tone) End() time.Duration {
	return t.Delay + t.Duration
}

// Recipe is the set of tones played for one event.
type Recipe []Tone

// Duration returns the time until the last tone stops.
func (r Recipe) Duration() time.Duration {
	var d time.Duration
	for _, t := range r {
		if e := t.End(); e > d {
			d = e
		}
	}
	return d
}

// Streamer renders the recipe: every tone is delayed by its offset and the
// results are mixed.
func (r Recipe) Streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(r))
	for _, t := range r {
		var s beep.Streamer = newVoice(t, rate)
		if t.Delay > 0 {
			s = beep.Seq(beep.Silence(rate.N(t.Delay)), s)
		}
		parts = append(parts, s)
	}
	return beep.Mix(parts...)
}

// arpeggio builds sequential tones with staggered starts.
func arpeggio(w Wave, gain float64, length, stagger time.Duration, notes ...float64) Recipe {
	r := make(Recipe, 0, len(notes))
	for i, f := range notes {
		r = append(r, Tone{
			Wave:     w,
			From:     f,
			Ramp:     RampFixed,
			Gain:     gain,
			Duration: length,
			Delay:    time.Duration(i) * stagger,
		})
	}
	return r
}

const ms = time.Millisecond

// Note frequencies used by the arpeggios.
const (
	noteG3 = 196.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteE6 = 1318.51
)

// Recipes maps every event to its sound. Impact sounds stay under 150ms.
var Recipes = map[SoundType]Recipe{
	SoundBounce: {
		{Wave: WaveSine, From: 520, To: 380, Ramp: RampExponential, Gain: 0.25, Duration: 60 * ms},
	},
	SoundPaddle: {
		{Wave: WaveSquare, From: 660, To: 880, Ramp: RampLinear, Gain: 0.15, Duration: 70 * ms},
	},
	SoundBreak: {
		{Wave: WaveNoise, Gain: 0.18, Duration: 80 * ms},
		{Wave: WaveSine, From: 300, To: 120, Ramp: RampExponential, Gain: 0.2, Duration: 110 * ms},
	},
	SoundScore: {
		{Wave: WaveSine, From: 880, Ramp: RampFixed, Gain: 0.2, Duration: 120 * ms},
		{Wave: WaveSine, From: 1320, Ramp: RampFixed, Gain: 0.18, Duration: 120 * ms, Delay: 70 * ms},
	},
	SoundLifeLost: {
		{Wave: WaveSaw, From: 300, To: 80, Ramp: RampExponential, Gain: 0.2, Duration: 400 * ms},
	},
	SoundCrash: {
		{Wave: WaveNoise, Gain: 0.25, Duration: 250 * ms},
		{Wave: WaveSaw, From: 200, To: 50, Ramp: RampExponential, Gain: 0.2, Duration: 300 * ms},
	},
	SoundLevelUp:  arpeggio(WaveTriangle, 0.2, 120*ms, 90*ms, noteC5, noteE5, noteG5, noteC6),
	SoundGameOver: arpeggio(WaveSaw, 0.15, 220*ms, 180*ms, noteG4, noteE4, noteC4, noteG3),
	SoundCountdown: {
		{Wave: WaveSquare, From: 600, Ramp: RampFixed, Gain: 0.12, Duration: 50 * ms},
	},
	SoundServe: {
		{Wave: WaveSine, From: 440, To: 660, Ramp: RampLinear, Gain: 0.18, Duration: 80 * ms},
	},
	SoundNavigate: {
		{Wave: WaveSquare, From: 520, Ramp: RampFixed, Gain: 0.1, Duration: 40 * ms},
	},
	SoundConfirm: {
		{Wave: WaveSine, From: 660, Ramp: RampFixed, Gain: 0.18, Duration: 80 * ms},
		{Wave: WaveSine, From: 990, Ramp: RampFixed, Gain: 0.18, Duration: 80 * ms, Delay: 50 * ms},
	},
	SoundTopScore: arpeggio(WaveSine, 0.2, 150*ms, 100*ms, noteC5, noteE5, noteG5, noteC6, noteE6),
}
