package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// gainFloor is where every decay envelope ends before the voice stops.
const gainFloor = 0.001

// attack avoids a click at voice start.
const attack = 2 * time.Millisecond

// voice renders one Tone.
type voice struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	attack   int
}

func newVoice(t Tone, rate beep.SampleRate) *voice {
	return &voice{
		tone:   t,
		rate:   rate,
		total:  rate.N(t.Duration),
		attack: rate.N(attack),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.position >= v.total {
			return i, false
		}

		frac := float64(v.position) / float64(v.total)
		val := sample(v.tone.Wave, v.phase) * v.gain(frac)

		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq(frac) / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// freq follows the tone's ramp from From to To.
func (v *voice) freq(frac float64) float64 {
	t := v.tone
	switch t.Ramp {
	case RampLinear:
		return t.From + (t.To-t.From)*frac
	case RampExponential:
		if t.From > 0 && t.To > 0 {
			return t.From * math.Pow(t.To/t.From, frac)
		}
		return t.From + (t.To-t.From)*frac
	default:
		return t.From
	}
}

// gain decays exponentially from the peak to gainFloor over the tone.
func (v *voice) gain(frac float64) float64 {
	peak := v.tone.Gain
	if peak <= gainFloor {
		return peak
	}
	g := peak * math.Pow(gainFloor/peak, frac)
	if v.position < v.attack && v.attack > 0 {
		g *= float64(v.position) / float64(v.attack)
	}
	return g
}

func sample(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// humGenerator is the endless engine drone: a low saw whose pitch and level
// wobble slowly.
type humGenerator struct {
	rate  beep.SampleRate
	pos   int
	phase float64
	base  float64
}

func newHum(rate beep.SampleRate, base float64) *humGenerator {
	return &humGenerator{rate: rate, base: base}
}

func (h *humGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(h.pos) / float64(h.rate)
		lfo := math.Sin(2 * math.Pi * 0.5 * t)
		freq := h.base * (1 + 0.04*lfo)
		val := 0.12 * (0.8 + 0.2*lfo) * (0.6*sample(WaveSaw, h.phase) + 0.4*sample(WaveSine, h.phase))

		samples[i][0] = val
		samples[i][1] = val

		h.phase += freq / float64(h.rate)
		h.phase -= math.Floor(h.phase)
		h.pos++
	}
	return len(samples), true
}

func (h *humGenerator) Err() error { return nil }

// newVolume scales a stream linearly. Zero volume is silent since log2(0)
// is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
