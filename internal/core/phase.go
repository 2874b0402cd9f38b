package core

// Phase is the engine-level game state. Exactly one phase is active at a time
// and only the loop driver moves between them.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseServing
	PhasePlaying
	PhaseLevelTransition
	PhaseGameOver
	PhaseEnteringInitials
	PhaseSubmitted
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "Countdown"
	case PhaseServing:
		return "Serving"
	case PhasePlaying:
		return "Playing"
	case PhaseLevelTransition:
		return "LevelTransition"
	case PhaseGameOver:
		return "GameOver"
	case PhaseEnteringInitials:
		return "EnteringInitials"
	case PhaseSubmitted:
		return "Submitted"
	default:
		return "Unknown"
	}
}

// Finished reports whether the run has ended.
func (p Phase) Finished() bool {
	return p == PhaseGameOver || p == PhaseEnteringInitials || p == PhaseSubmitted
}

// Active reports whether the simulation advances entities in this phase.
func (p Phase) Active() bool {
	return p == PhaseServing || p == PhasePlaying
}

var transitions = map[Phase][]Phase{
	PhaseCountdown:        {PhaseServing, PhasePlaying},
	PhaseServing:          {PhasePlaying},
	PhasePlaying:          {PhaseServing, PhaseLevelTransition, PhaseGameOver},
	PhaseLevelTransition:  {PhaseServing, PhasePlaying},
	PhaseGameOver:         {PhaseEnteringInitials, PhaseCountdown},
	PhaseEnteringInitials: {PhaseSubmitted},
	PhaseSubmitted:        {PhaseCountdown},
}

// CanTransition reports whether the driver may move from one phase to another.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
