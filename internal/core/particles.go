package core

import (
	"math"
	"math/rand"
)

// Particle is a short-lived visual spark.
type Particle struct {
	Pos     Vec
	Vel     Vec
	Life    int // Remaining ticks
	MaxLife int
	Color   Color
}

// Glyph returns a rune that fades as the particle ages.
func (p Particle) Glyph() rune {
	if p.MaxLife <= 0 {
		return '.'
	}
	frac := float64(p.Life) / float64(p.MaxLife)
	switch {
	case frac > 0.66:
		return '*'
	case frac > 0.33:
		return '+'
	default:
		return '.'
	}
}

// ParticlePool owns all live particles for a run.
type ParticlePool struct {
	items []Particle
	limit int
}

// NewParticlePool creates a pool that never holds more than limit particles.
func NewParticlePool(limit int) *ParticlePool {
	if limit <= 0 {
		limit = 256
	}
	return &ParticlePool{
		items: make([]Particle, 0, limit),
		limit: limit,
	}
}

// Burst spawns n particles radiating from pos.
func (p *ParticlePool) Burst(rng *rand.Rand, pos Vec, n int, speed float64, life int, c Color) {
	for i := 0; i < n && len(p.items) < p.limit; i++ {
		angle := rng.Float64() * 2 * math.Pi
		s := speed * (0.4 + 0.6*rng.Float64())
		p.items = append(p.items, Particle{
			Pos:     pos,
			Vel:     V(math.Cos(angle)*s, math.Sin(angle)*s*0.5),
			Life:    life,
			MaxLife: life,
			Color:   c,
		})
	}
}

// Update advances particles one tick and drops the expired ones.
func (p *ParticlePool) Update() {
	alive := p.items[:0]
	for _, it := range p.items {
		it.Life--
		if it.Life <= 0 {
			continue
		}
		it.Pos = it.Pos.Add(it.Vel)
		it.Vel = it.Vel.Scale(0.92)
		alive = append(alive, it)
	}
	p.items = alive
}

// Items returns the live particles. The slice must not be retained.
func (p *ParticlePool) Items() []Particle {
	return p.items
}

// Len returns the number of live particles.
func (p *ParticlePool) Len() int {
	return len(p.items)
}

// Reset drops every particle.
func (p *ParticlePool) Reset() {
	p.items = p.items[:0]
}

// Render draws every particle onto dst.
func (p *ParticlePool) Render(dst *Screen) {
	for _, it := range p.items {
		x, y := it.Pos.Cell()
		dst.SetColor(x, y, it.Glyph(), it.Color)
	}
}
