package camera

import (
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultShakeDecay is the number of ticks a kick takes to settle.
const DefaultShakeDecay = 30

// Shake is a decaying screen shake amplitude in arena units. Every kick
// restarts an eased fall from the new amplitude to zero.
type Shake struct {
	amount float64
	decay  float32
	tween  *gween.Tween
}

// NewShake creates a shake that settles over decayTicks.
func NewShake(decayTicks float64) *Shake {
	if decayTicks <= 0 {
		decayTicks = DefaultShakeDecay
	}
	return &Shake{decay: float32(decayTicks)}
}

// Kick adds v to the current amplitude.
func (s *Shake) Kick(v float64) {
	s.Set(s.amount + v)
}

// Set replaces the current amplitude with v.
func (s *Shake) Set(v float64) {
	if v <= 0 {
		s.amount = 0
		s.tween = nil
		return
	}
	s.amount = v
	s.tween = gween.New(float32(v), 0, s.decay, ease.OutQuad)
}

// Floor raises the amplitude to at least v.
func (s *Shake) Floor(v float64) {
	if s.amount < v {
		s.Set(v)
	}
}

// Update advances the decay by dt ticks.
func (s *Shake) Update(dt float64) {
	if s.tween == nil || dt <= 0 {
		return
	}
	v, done := s.tween.Update(float32(dt))
	s.amount = float64(v)
	if done {
		s.amount = 0
		s.tween = nil
	}
}

// Amount returns the current amplitude.
func (s *Shake) Amount() float64 { return s.amount }

// Offset returns a random displacement for the current amplitude.
func (s *Shake) Offset(rng *rand.Rand) (dx, dy float64) {
	return ShakeOffset(s.amount, rng)
}

// ShakeOffset returns a random displacement within +/- amount/2 on each axis.
func ShakeOffset(amount float64, rng *rand.Rand) (dx, dy float64) {
	if amount <= 0 {
		return 0, 0
	}
	return (rng.Float64() - 0.5) * amount, (rng.Float64() - 0.5) * amount
}
