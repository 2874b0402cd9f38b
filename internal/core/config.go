package core

// RuntimeConfig contains configuration passed to titles at initialization.
// Titles use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Display frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the host-facing summary of a running title.
type GameState struct {
	Phase    Phase
	Score    int
	Level    int
	Lives    int
	GameOver bool // Phase is GameOver, EnteringInitials or Submitted
	Paused   bool
	Closed   bool // The title requested to close (or was closed)
	Blocked  bool // An external overlay owns the keyboard
}

// StepResult is returned by the engine after each display frame.
type StepResult struct {
	State GameState
	Ticks int // Logical ticks simulated during this frame
}
