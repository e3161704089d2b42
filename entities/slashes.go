package entities

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SlashLine is the trail a dash leaves behind. Lethal lines keep cutting
// enemies while their life is above the configured minimum.
type SlashLine struct {
	A, B    r2.Vec
	Life    float64
	MaxLife float64
	Width   float64
	Lethal  bool
}

// Midpoint returns the center of the line.
func (s *SlashLine) Midpoint() r2.Vec {
	return r2.Scale(0.5, r2.Add(s.A, s.B))
}

// AddSlash records a new trail.
func (m *Manager) AddSlash(line SlashLine) {
	if line.Life <= 0 {
		return
	}
	if line.MaxLife <= 0 {
		line.MaxLife = line.Life
	}
	m.slashes = append(m.slashes, line)
}

// Slashes returns the live trails. Callers may mutate entries in place but
// must not retain the slice across AgeSlashes.
func (m *Manager) Slashes() []SlashLine { return m.slashes }

// AgeSlashes shortens every trail's life by dt, narrows it and drops
// expired ones.
func (m *Manager) AgeSlashes(dt float64) {
	decay := math.Pow(m.cfg.Dash.LineWidthDecay, dt)
	alive := 0
	for i := range m.slashes {
		s := m.slashes[i]
		s.Life -= dt
		s.Width *= decay
		if s.Life <= 0 {
			continue
		}
		m.slashes[alive] = s
		alive++
	}
	m.slashes = m.slashes[:alive]
}
