// Package physics implements entity integration and collision resolution
// shared by every title: circles bouncing inside a playfield, paddles that
// reflect within a bounded cone, axis-aligned bricks and grid trails.
package physics

import (
	"math"

	"github.com/vovakirdan/arcade-eggs/internal/core"
)

// Body is a simulated entity. Circles use Radius; rectangles use W and H.
// Pos is always the center of the shape.
type Body struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	W, H   float64
	Alive  bool
	Color  core.Color
	Tag    string
}

// NewCircle creates a live circular body.
func NewCircle(pos core.Vec, radius float64) *Body {
	return &Body{Pos: pos, Radius: radius, Alive: true}
}

// NewBox creates a live rectangular body centered at pos.
func NewBox(pos core.Vec, w, h float64) *Body {
	return &Body{Pos: pos, W: w, H: h, Alive: true}
}

// Integrate advances the body by one tick: position += velocity.
func (b *Body) Integrate() {
	b.Pos = b.Pos.Add(b.Vel)
}

// Speed returns the magnitude of the velocity.
func (b *Body) Speed() float64 {
	return b.Vel.Len()
}

// SetSpeed rescales the velocity to the given magnitude keeping its direction.
// A body at rest is left untouched.
func (b *Body) SetSpeed(speed float64) {
	cur := b.Vel.Len()
	if cur == 0 {
		return
	}
	b.Vel = b.Vel.Scale(speed / cur)
}

// Accelerate raises the speed to at least the given magnitude. It never
// slows the body down, so speed stays non-decreasing within a level.
func (b *Body) Accelerate(speed float64) {
	if b.Speed() < speed {
		b.SetSpeed(speed)
	}
}

// Launch sets the velocity from a speed and an angle in radians measured
// from the +X axis.
func (b *Body) Launch(speed, angle float64) {
	b.Vel = core.V(speed*math.Cos(angle), speed*math.Sin(angle))
}

// Left returns the left edge of a rectangular body.
func (b *Body) Left() float64 { return b.Pos.X - b.W/2 }

// Right returns the right edge of a rectangular body.
func (b *Body) Right() float64 { return b.Pos.X + b.W/2 }

// Top returns the top edge of a rectangular body.
func (b *Body) Top() float64 { return b.Pos.Y - b.H/2 }

// Bottom returns the bottom edge of a rectangular body.
func (b *Body) Bottom() float64 { return b.Pos.Y + b.H/2 }

// CellRect returns the rectangle of cells covered by a rectangular body.
func (b *Body) CellRect() core.Rect {
	x := int(math.Round(b.Left()))
	y := int(math.Round(b.Top()))
	return core.NewRect(x, y, int(math.Round(b.W)), int(math.Round(b.H)))
}
