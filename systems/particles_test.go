package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParticlePoolReusesSlots(t *testing.T) {
	pp := NewParticlePool(4)

	for i := 0; i < 10; i++ {
		pp.Spawn(Particle{Kind: ParticleConfetti, Life: 2})
	}
	if pp.Count() != 10 || pp.Capacity() != 10 {
		t.Fatalf("expected 10 active in 10 slots, got %d in %d", pp.Count(), pp.Capacity())
	}

	pp.Update(1)
	pp.Update(1)
	if pp.Count() != 0 {
		t.Fatalf("expected all particles expired, %d active", pp.Count())
	}

	// A second burst fits in the released slots without growing the arena.
	for i := 0; i < 10; i++ {
		pp.Spawn(Particle{Kind: ParticleConfetti, Life: 5})
	}
	if pp.Capacity() != 10 {
		t.Errorf("arena grew to %d, expected reuse of 10 slots", pp.Capacity())
	}
}

func TestParticlePoolActiveAlwaysAlive(t *testing.T) {
	pp := NewParticlePool(8)
	lives := []float64{1, 3, 2, 5, 0.5, 4}
	for _, l := range lives {
		pp.Spawn(Particle{Life: l})
	}

	for tick := 0; tick < 6; tick++ {
		pp.Update(1)
		pp.Each(func(p *Particle) {
			if p.Life <= 0 {
				t.Fatalf("tick %d: active particle with life %f", tick, p.Life)
			}
		})
	}
	if pp.Count() != 0 {
		t.Errorf("expected empty pool, got %d", pp.Count())
	}
}

func TestParticleIDGoesStale(t *testing.T) {
	pp := NewParticlePool(1)

	id := pp.Spawn(Particle{Life: 1, Pos: r2.Vec{X: 1}})
	if p, ok := pp.Get(id); !ok || p.Pos.X != 1 {
		t.Fatal("expected live handle")
	}

	pp.Update(1)
	if _, ok := pp.Get(id); ok {
		t.Error("handle should be stale after expiry")
	}

	// Slot is reused; the old handle must not see the new particle.
	newID := pp.Spawn(Particle{Life: 3, Pos: r2.Vec{X: 2}})
	if _, ok := pp.Get(id); ok {
		t.Error("old handle resolved to a recycled slot")
	}
	if p, ok := pp.Get(newID); !ok || p.Pos.X != 2 {
		t.Error("new handle should resolve")
	}

	if _, ok := pp.Get(pp.Spawn(Particle{Life: 0})); ok {
		t.Error("zero-life spawn should not produce a live handle")
	}
}

func TestParticleMotion(t *testing.T) {
	pp := NewParticlePool(1)
	id := pp.Spawn(Particle{
		Kind: ParticleConfetti,
		Vel:  r2.Vec{X: 10},
		Life: 10,
		Spin: 0.5,
		Drag: 0.9,
	})

	pp.Update(1)
	p, _ := pp.Get(id)
	// Drag applies before integration: 10 * 0.9 = 9
	if p.Pos.X != 9 || p.Vel.X != 9 {
		t.Errorf("pos %v vel %v, want 9/9", p.Pos.X, p.Vel.X)
	}
	if p.Angle != 0.5 {
		t.Errorf("angle %v, want 0.5", p.Angle)
	}
	if p.Fade() != 0.9 {
		t.Errorf("fade %v, want 0.9", p.Fade())
	}
}

func TestParticlePoolClear(t *testing.T) {
	pp := NewParticlePool(4)
	for i := 0; i < 4; i++ {
		pp.Spawn(Particle{Life: 100})
	}
	pp.Clear()
	if pp.Count() != 0 {
		t.Errorf("expected 0 active after clear, got %d", pp.Count())
	}
	pp.Spawn(Particle{Life: 1})
	if pp.Capacity() != 4 {
		t.Errorf("expected slot reuse after clear, capacity %d", pp.Capacity())
	}
}
