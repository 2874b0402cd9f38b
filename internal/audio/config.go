package audio

import (
	"os"
	"strconv"
)

// Config controls the audio engine.
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int
	HumFreq      float64 // base pitch of the engine hum, Hz
}

// DefaultConfig returns audio settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.6,
		SampleRate:   44100,
		HumFreq:      55,
	}
}

// LoadConfig reads overrides from the environment on top of the defaults.
// Unparseable values are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("ARCADE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("ARCADE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if rate := os.Getenv("ARCADE_SAMPLE_RATE"); rate != "" {
		if val, err := strconv.Atoi(rate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
