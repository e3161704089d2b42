package systems

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ParticleKind identifies how a particle moves and is drawn.
type ParticleKind uint8

const (
	ParticleConfetti ParticleKind = iota
	ParticleGhost                 // Fading outline left behind by a teleport
	ParticleTeleportLine          // Streak from the old to the new position
	ParticleDataBit               // Small square debris
)

// Particle is a pooled visual effect. Only active slots are simulated.
type Particle struct {
	Kind    ParticleKind
	Pos     r2.Vec
	Vel     r2.Vec
	End     r2.Vec // Teleport line target
	Life    float64
	MaxLife float64
	Color   color.RGBA
	W, H    float64 // Confetti strip size
	Size    float64 // Ghost radius / data bit size
	Angle   float64
	Spin    float64
	Drag    float64 // Velocity multiplier per tick, 0 = none

	gen    uint32
	active bool
}

// Fade returns the remaining life fraction in [0, 1].
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return Clamp(p.Life/p.MaxLife, 0, 1)
}

// ParticleID is a handle to a pool slot. It goes stale once the particle
// expires, even if the slot is reused.
type ParticleID struct {
	idx int32
	gen uint32
}

// ParticlePool is an arena of particle slots with a free list. Spawning
// reuses released slots before growing the arena.
type ParticlePool struct {
	slots  []Particle
	free   []int32
	active []int32
}

// NewParticlePool creates a pool with room for capacity particles before growing.
func NewParticlePool(capacity int) *ParticlePool {
	return &ParticlePool{
		slots:  make([]Particle, 0, capacity),
		free:   make([]int32, 0, capacity),
		active: make([]int32, 0, capacity),
	}
}

// Spawn activates a particle initialized from p and returns its handle.
// Life <= 0 is ignored and returns a zero handle.
func (pp *ParticlePool) Spawn(p Particle) ParticleID {
	if p.Life <= 0 {
		return ParticleID{idx: -1}
	}
	if p.MaxLife <= 0 {
		p.MaxLife = p.Life
	}

	var idx int32
	if n := len(pp.free); n > 0 {
		idx = pp.free[n-1]
		pp.free = pp.free[:n-1]
	} else {
		pp.slots = append(pp.slots, Particle{})
		idx = int32(len(pp.slots) - 1)
	}

	slot := &pp.slots[idx]
	p.gen = slot.gen + 1
	p.active = true
	*slot = p
	pp.active = append(pp.active, idx)
	return ParticleID{idx: idx, gen: p.gen}
}

// Get returns the particle for a live handle.
func (pp *ParticlePool) Get(id ParticleID) (*Particle, bool) {
	if id.idx < 0 || int(id.idx) >= len(pp.slots) {
		return nil, false
	}
	p := &pp.slots[id.idx]
	if !p.active || p.gen != id.gen {
		return nil, false
	}
	return p, true
}

// Update advances every active particle by dt ticks and releases expired ones.
func (pp *ParticlePool) Update(dt float64) {
	for i := len(pp.active) - 1; i >= 0; i-- {
		idx := pp.active[i]
		p := &pp.slots[idx]

		if p.Drag > 0 {
			p.Vel = r2.Scale(math.Pow(p.Drag, dt), p.Vel)
		}
		if p.Kind == ParticleConfetti {
			p.Angle += p.Spin * dt
		}
		p.Pos = r2.Add(p.Pos, r2.Scale(dt, p.Vel))
		p.Life -= dt

		if p.Life <= 0 {
			pp.release(i)
		}
	}
}

// release returns the particle at active position i to the free list
// (swap-remove from the active list).
func (pp *ParticlePool) release(i int) {
	idx := pp.active[i]
	pp.slots[idx].active = false
	pp.free = append(pp.free, idx)

	last := len(pp.active) - 1
	pp.active[i] = pp.active[last]
	pp.active = pp.active[:last]
}

// Clear releases every active particle.
func (pp *ParticlePool) Clear() {
	for i := len(pp.active) - 1; i >= 0; i-- {
		pp.release(i)
	}
}

// Each calls fn for every active particle.
func (pp *ParticlePool) Each(fn func(p *Particle)) {
	for _, idx := range pp.active {
		fn(&pp.slots[idx])
	}
}

// Count returns the number of active particles.
func (pp *ParticlePool) Count() int {
	return len(pp.active)
}

// Capacity returns the number of allocated slots.
func (pp *ParticlePool) Capacity() int {
	return len(pp.slots)
}
