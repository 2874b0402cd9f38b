// Package engine drives every title through one simulation loop. A title
// supplies its entities and behavior as a Rules strategy; the engine owns
// timing, phases, scoring, sound, effects, the leaderboard and teardown.
package engine

import (
	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/progression"
)

// Traits are the static properties of a title.
type Traits struct {
	// TickRate is the number of logical ticks per second. Zero runs one
	// tick per display frame.
	TickRate int
	// ServeDelay is the number of Serving ticks before an automatic
	// launch. Zero waits for the launch action.
	ServeDelay int
	// Hum keeps the ambient hum voice running during active play.
	Hum bool
	// LivesLabel names the lives counter in the HUD.
	LivesLabel string
	// MinW and MinH are the smallest playable field.
	MinW, MinH int
}

// Rules is the per-title strategy the engine calls every tick.
type Rules interface {
	// ID returns a unique identifier used for the CLI and leaderboard keys.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Traits returns the title's static properties.
	Traits() Traits

	// Progression returns the scoring constants of a run.
	Progression() progression.Rules

	// Setup builds the entities of level f.Level() from scratch.
	Setup(f *Frame)

	// Ready places entities for a serve: after Setup and after a point.
	Ready(f *Frame)

	// Hold runs each Serving tick, keeping the ball with its server.
	Hold(f *Frame)

	// Launch puts the ball in play.
	Launch(f *Frame)

	// ApplyInput applies one tick of player intent.
	ApplyInput(f *Frame, in core.InputFrame)

	// AIPolicy moves every computer-controlled entity.
	AIPolicy(f *Frame)

	// Integrate advances entity motion.
	Integrate(f *Frame)

	// ResolveCollisions handles contacts and reports outcomes through f.
	ResolveCollisions(f *Frame)

	// Render draws the playfield into dst, which is sized to the field and
	// pre-cleared.
	Render(f *Frame, dst *core.Screen)
}
