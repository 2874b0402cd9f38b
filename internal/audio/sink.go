package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink is where voices are sent for playback.
type Sink interface {
	// Play starts a streamer. It returns immediately.
	Play(s beep.Streamer)
	// Do runs f while playback is locked, for mutating live streamers.
	Do(f func())
}

var errSpeakerClosed = errors.New("audio: speaker closed")

var (
	speakerOnce  sync.Once
	speakerErr   error
	speakerMixer *beep.Mixer
)

// OpenSpeaker initializes the process-wide speaker once and returns a sink
// mixing onto it. Later calls share the first sample rate.
func OpenSpeaker(rate beep.SampleRate) (Sink, error) {
	speakerOnce.Do(func() {
		if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			speakerErr = fmt.Errorf("audio: speaker init: %w", err)
			return
		}
		speakerMixer = &beep.Mixer{}
		speaker.Play(speakerMixer)
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return speakerSink{mixer: speakerMixer}, nil
}

// CloseSpeaker drops every voice and releases the audio device. Later
// OpenSpeaker calls fail. It is safe to call when no speaker was opened.
func CloseSpeaker() {
	if speakerMixer == nil {
		return
	}
	speaker.Lock()
	speakerMixer.Clear()
	speaker.Unlock()
	speaker.Close()
	speakerMixer = nil
	speakerErr = errSpeakerClosed
}

type speakerSink struct {
	mixer *beep.Mixer
}

func (s speakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s speakerSink) Do(f func()) {
	speaker.Lock()
	defer speaker.Unlock()
	f()
}

// Recorder is a Sink that keeps every streamer instead of playing it.
type Recorder struct {
	mu     sync.Mutex
	played []beep.Streamer
}

// Play records the streamer.
func (r *Recorder) Play(s beep.Streamer) {
	r.mu.Lock()
	r.played = append(r.played, s)
	r.mu.Unlock()
}

// Do runs f under the recorder's lock.
func (r *Recorder) Do(f func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f()
}

// Count returns how many voices were started.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.played)
}

// Played returns a copy of the recorded streamers.
func (r *Recorder) Played() []beep.Streamer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]beep.Streamer(nil), r.played...)
}

// Drain streams s to completion, or until limit samples, and returns the
// samples produced.
func Drain(s beep.Streamer, limit int) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
