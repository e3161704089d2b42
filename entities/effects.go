package entities

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/systems"
)

// Confetti strip dimensions and spin.
const (
	confettiMinW   = 4
	confettiSpanW  = 8
	confettiMinH   = 2
	confettiSpanH  = 4
	confettiSpin   = 0.5
	dataBitMinSize = 2
	dataBitSpan    = 3
	textSize       = 30
)

// SpawnConfetti bursts count confetti strips from p.
func (m *Manager) SpawnConfetti(p r2.Vec, col color.RGBA, count int) {
	pc := &m.cfg.Particles
	m.confetti(p, count, pc.ConfettiSpeedMin, pc.ConfettiSpeedMax, pc.ConfettiLifeMin, pc.ConfettiLifeMax, func() color.RGBA {
		return col
	})
}

// SpawnCelebration bursts count rainbow confetti strips that outlive
// regular confetti.
func (m *Manager) SpawnCelebration(p r2.Vec, count int) {
	pc := &m.cfg.Particles
	m.confetti(p, count, pc.ConfettiSpeedMin, pc.ConfettiSpeedMax, pc.ConfettiLifeMin*1.5, pc.ConfettiLifeMax*2.4, func() color.RGBA {
		return components.HueColor(m.rng.Float64() * 360)
	})
}

func (m *Manager) confetti(p r2.Vec, count int, speedMin, speedMax, lifeMin, lifeMax float64, pick func() color.RGBA) {
	drag := m.cfg.Particles.ConfettiDrag
	for i := 0; i < count; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		speed := speedMin + m.rng.Float64()*(speedMax-speedMin)
		m.particles.Spawn(systems.Particle{
			Kind:  systems.ParticleConfetti,
			Pos:   p,
			Vel:   r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:  lifeMin + m.rng.Float64()*(lifeMax-lifeMin),
			Color: pick(),
			W:     confettiMinW + m.rng.Float64()*confettiSpanW,
			H:     confettiMinH + m.rng.Float64()*confettiSpanH,
			Angle: m.rng.Float64() * 10,
			Spin:  (m.rng.Float64() - 0.5) * confettiSpin,
			Drag:  drag,
		})
	}
}

// SpawnDataBits scatters small square debris from p.
func (m *Manager) SpawnDataBits(p r2.Vec, col color.RGBA, count int) {
	pc := &m.cfg.Particles
	for i := 0; i < count; i++ {
		angle := m.rng.Float64() * 2 * math.Pi
		speed := pc.ConfettiSpeedMin * (0.5 + m.rng.Float64())
		m.particles.Spawn(systems.Particle{
			Kind:  systems.ParticleDataBit,
			Pos:   p,
			Vel:   r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:  pc.ConfettiLifeMin + m.rng.Float64()*pc.ConfettiLifeMin,
			Color: col,
			Size:  dataBitMinSize + m.rng.Float64()*dataBitSpan,
			Drag:  pc.ConfettiDrag,
		})
	}
}

// SpawnGhost leaves a fading outline of radius at p.
func (m *Manager) SpawnGhost(p r2.Vec, col color.RGBA, radius float64) {
	m.particles.Spawn(systems.Particle{
		Kind:  systems.ParticleGhost,
		Pos:   p,
		Life:  m.cfg.Particles.GhostLife,
		Color: col,
		Size:  radius,
	})
}

// SpawnTeleportLine draws a fading streak from a to b.
func (m *Manager) SpawnTeleportLine(a, b r2.Vec, col color.RGBA) {
	m.particles.Spawn(systems.Particle{
		Kind:  systems.ParticleTeleportLine,
		Pos:   a,
		End:   b,
		Life:  m.cfg.Particles.TeleportLineLife,
		Color: col,
	})
}

// SpawnText adds a rising label at p.
func (m *Manager) SpawnText(p r2.Vec, text string, col color.RGBA) {
	life := m.cfg.Particles.TextLife
	m.texts = append(m.texts, Text{Pos: p, Text: text, Color: col, Life: life, MaxLife: life, Size: textSize})
}

// ClearTexts drops every floating label.
func (m *Manager) ClearTexts() {
	m.texts = m.texts[:0]
}
