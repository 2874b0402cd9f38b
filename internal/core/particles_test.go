package core

import (
	"math/rand"
	"testing"
)

func TestParticleLifetime(t *testing.T) {
	pool := NewParticlePool(64)
	rng := rand.New(rand.NewSource(1))

	pool.Burst(rng, V(10, 10), 8, 1.0, 5, ColorYellow)
	if pool.Len() != 8 {
		t.Fatalf("Len() = %d, expected 8", pool.Len())
	}

	for i := 0; i < 4; i++ {
		pool.Update()
	}
	if pool.Len() != 8 {
		t.Errorf("particles should survive 4 of 5 ticks, got %d", pool.Len())
	}

	pool.Update()
	if pool.Len() != 0 {
		t.Errorf("particles should expire after 5 ticks, got %d", pool.Len())
	}
}

func TestParticlePoolLimit(t *testing.T) {
	pool := NewParticlePool(10)
	rng := rand.New(rand.NewSource(2))

	pool.Burst(rng, V(0, 0), 25, 1.0, 30, ColorRed)
	if pool.Len() != 10 {
		t.Errorf("pool should cap at 10 particles, got %d", pool.Len())
	}

	pool.Reset()
	if pool.Len() != 0 {
		t.Error("Reset should drop all particles")
	}
}

func TestParticleGlyphFades(t *testing.T) {
	p := Particle{Life: 9, MaxLife: 9}
	if p.Glyph() != '*' {
		t.Errorf("fresh particle glyph = %q, expected '*'", p.Glyph())
	}
	p.Life = 1
	if p.Glyph() != '.' {
		t.Errorf("old particle glyph = %q, expected '.'", p.Glyph())
	}
}
