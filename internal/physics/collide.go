package physics

import (
	"math"

	"github.com/vovakirdan/arcade-eggs/internal/core"
)

// DefaultCone is the reflection half-angle used when a title does not
// configure its own: 60 degrees either side of straight ahead.
const DefaultCone = math.Pi / 3

// Side is a bit set of playfield walls.
type Side uint8

const (
	SideTop Side = 1 << iota
	SideBottom
	SideLeft
	SideRight

	SideNone Side = 0
	SideAll       = SideTop | SideBottom | SideLeft | SideRight
)

// Has reports whether s contains every wall in o.
func (s Side) Has(o Side) bool {
	return s&o == o && o != 0
}

// BounceInside keeps a circle inside bounds for the walls in solid. The
// velocity component perpendicular to a wall that was crossed is reflected
// and the position clamped back inside. Walls not in solid are open; the
// caller decides what leaving through them means (a point, a lost ball).
// The returned set lists the walls that were hit this call.
func BounceInside(b *Body, bounds core.Bounds, solid Side) Side {
	hit := SideNone
	r := b.Radius

	if solid.Has(SideLeft) && b.Pos.X-r < bounds.Min.X {
		b.Pos.X = bounds.Min.X + r
		b.Vel.X = math.Abs(b.Vel.X)
		hit |= SideLeft
	}
	if solid.Has(SideRight) && b.Pos.X+r > bounds.Max.X {
		b.Pos.X = bounds.Max.X - r
		b.Vel.X = -math.Abs(b.Vel.X)
		hit |= SideRight
	}
	if solid.Has(SideTop) && b.Pos.Y-r < bounds.Min.Y {
		b.Pos.Y = bounds.Min.Y + r
		b.Vel.Y = math.Abs(b.Vel.Y)
		hit |= SideTop
	}
	if solid.Has(SideBottom) && b.Pos.Y+r > bounds.Max.Y {
		b.Pos.Y = bounds.Max.Y - r
		b.Vel.Y = -math.Abs(b.Vel.Y)
		hit |= SideBottom
	}
	return hit
}

// Escaped reports which open walls the circle has fully crossed.
func Escaped(b *Body, bounds core.Bounds) Side {
	out := SideNone
	if b.Pos.X+b.Radius < bounds.Min.X {
		out |= SideLeft
	}
	if b.Pos.X-b.Radius > bounds.Max.X {
		out |= SideRight
	}
	if b.Pos.Y+b.Radius < bounds.Min.Y {
		out |= SideTop
	}
	if b.Pos.Y-b.Radius > bounds.Max.Y {
		out |= SideBottom
	}
	return out
}

// ReflectionAngle maps an impact offset in [-1, 1] linearly to an angle in
// [-cone, cone]. Offsets outside the range are clamped first.
func ReflectionAngle(offset, cone float64) float64 {
	if math.IsNaN(offset) {
		offset = 0
	}
	return core.ClampF(offset, -1, 1) * math.Abs(cone)
}

// Face is the direction a paddle sends the ball back to.
type Face int

const (
	FaceUp    Face = iota // horizontal paddle at the bottom
	FaceDown              // horizontal paddle at the top
	FaceRight             // vertical paddle on the left
	FaceLeft              // vertical paddle on the right
)

// PaddleBounce resolves a circle against a paddle. It only reacts when the
// shapes overlap and the ball travels into the face, so a ball already
// leaving cannot be caught twice. The outgoing speed is max(current, speed).
// It returns the impact offset in [-1, 1] and whether a bounce happened.
func PaddleBounce(ball, paddle *Body, face Face, cone, speed float64) (float64, bool) {
	hit, ok := CircleAABB(ball, paddle)
	if !ok {
		return 0, false
	}

	var offset float64
	switch face {
	case FaceUp, FaceDown:
		if (face == FaceUp && ball.Vel.Y <= 0) || (face == FaceDown && ball.Vel.Y >= 0) {
			return 0, false
		}
		offset = (hit.Contact.X - paddle.Pos.X) / (paddle.W / 2)
	default:
		if (face == FaceRight && ball.Vel.X >= 0) || (face == FaceLeft && ball.Vel.X <= 0) {
			return 0, false
		}
		offset = (hit.Contact.Y - paddle.Pos.Y) / (paddle.H / 2)
	}
	offset = core.ClampF(offset, -1, 1)

	s := math.Max(ball.Speed(), speed)
	angle := ReflectionAngle(offset, cone)
	along, out := s*math.Sin(angle), s*math.Cos(angle)

	switch face {
	case FaceUp:
		ball.Vel = core.V(along, -out)
		ball.Pos.Y = paddle.Top() - ball.Radius
	case FaceDown:
		ball.Vel = core.V(along, out)
		ball.Pos.Y = paddle.Bottom() + ball.Radius
	case FaceRight:
		ball.Vel = core.V(out, along)
		ball.Pos.X = paddle.Right() + ball.Radius
	case FaceLeft:
		ball.Vel = core.V(-out, along)
		ball.Pos.X = paddle.Left() - ball.Radius
	}
	return offset, true
}

// Axis names the velocity component a collision reflected.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Hit describes a circle/box contact.
type Hit struct {
	Contact core.Vec // closest point on the box to the circle center
	Axis    Axis     // axis reflected by Bounce
}

// CircleAABB tests a circle against a rectangular body. The contact is the
// point of the box closest to the circle center; the shapes touch when the
// squared distance to it is below radius squared.
//
// The reported axis is the one the ball should reflect on: when the shapes
// overlap more along X than along Y the ball struck a horizontal face and
// its Y velocity flips, and the other way round.
func CircleAABB(ball, box *Body) (Hit, bool) {
	cx := core.ClampF(ball.Pos.X, box.Left(), box.Right())
	cy := core.ClampF(ball.Pos.Y, box.Top(), box.Bottom())
	d := core.V(ball.Pos.X-cx, ball.Pos.Y-cy)
	if d.LenSq() >= ball.Radius*ball.Radius {
		return Hit{}, false
	}

	overlapX := math.Min(ball.Pos.X+ball.Radius, box.Right()) - math.Max(ball.Pos.X-ball.Radius, box.Left())
	overlapY := math.Min(ball.Pos.Y+ball.Radius, box.Bottom()) - math.Max(ball.Pos.Y-ball.Radius, box.Top())

	axis := AxisX
	if overlapX >= overlapY {
		axis = AxisY
	}
	return Hit{Contact: core.V(cx, cy), Axis: axis}, true
}

// Bounce reflects the ball off a box after CircleAABB reported a hit and
// pushes it out of the box along the reflected axis.
func Bounce(ball, box *Body, hit Hit) {
	switch hit.Axis {
	case AxisY:
		if ball.Pos.Y < box.Pos.Y {
			ball.Vel.Y = -math.Abs(ball.Vel.Y)
			ball.Pos.Y = box.Top() - ball.Radius
		} else {
			ball.Vel.Y = math.Abs(ball.Vel.Y)
			ball.Pos.Y = box.Bottom() + ball.Radius
		}
	case AxisX:
		if ball.Pos.X < box.Pos.X {
			ball.Vel.X = -math.Abs(ball.Vel.X)
			ball.Pos.X = box.Left() - ball.Radius
		} else {
			ball.Vel.X = math.Abs(ball.Vel.X)
			ball.Pos.X = box.Right() + ball.Radius
		}
	}
}

// ClampBox keeps a rectangular body inside bounds.
func ClampBox(b *Body, bounds core.Bounds) {
	b.Pos.X = core.ClampF(b.Pos.X, bounds.Min.X+b.W/2, bounds.Max.X-b.W/2)
	b.Pos.Y = core.ClampF(b.Pos.Y, bounds.Min.Y+b.H/2, bounds.Max.Y-b.H/2)
}
