package systems

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/spatial/r2"
)

// Shockwave is an expanding colored ring drawn over the lattice.
type Shockwave struct {
	Pos       r2.Vec
	Radius    float64 // Current ring radius
	MaxRadius float64
	Hue       float64 // Degrees; negative means white
	Width     float64
	Life      float64
	MaxLife   float64

	grow *gween.Tween
}

// newShockwave creates a ring that reaches its full radius after two thirds
// of its life and holds there while fading.
func newShockwave(pos r2.Vec, radius, hue, life, width float64) Shockwave {
	return Shockwave{
		Pos:       pos,
		MaxRadius: radius,
		Hue:       hue,
		Width:     width,
		Life:      life,
		MaxLife:   life,
		grow:      gween.New(0, float32(radius), float32(life/1.5), ease.Linear),
	}
}

// advance ages the ring by dt ticks. Returns false once expired.
func (s *Shockwave) advance(dt float64) bool {
	s.Life -= dt
	if s.Life <= 0 {
		return false
	}
	r, _ := s.grow.Update(float32(dt))
	s.Radius = float64(r)
	return true
}

// Fade returns the remaining life fraction in [0, 1].
func (s *Shockwave) Fade() float64 {
	if s.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, s.Life/s.MaxLife))
}

// RingIntensity returns how strongly the ring covers point p: 1 on the ring,
// falling linearly to 0 at Width away from it.
func (s *Shockwave) RingIntensity(p r2.Vec) float64 {
	if s.Width <= 0 {
		return 0
	}
	diff := math.Abs(r2.Norm(r2.Sub(p, s.Pos)) - s.Radius)
	if diff >= s.Width {
		return 0
	}
	return 1 - diff/s.Width
}
