package entities

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/systems"
)

// Singularities spawn on a ring around the arena center.
const (
	singularityRingMin    = 75
	singularityRingSpread = 150
	singularityMargin     = 100
)

// MineInfo is a read-only copy of a mine.
type MineInfo struct {
	E      ecs.Entity
	Pos    r2.Vec
	Radius float64
}

// IsLocationSafe reports whether p is far enough from the player and, while
// aiming, from the projected dash endpoint.
func (m *Manager) IsLocationSafe(p r2.Vec, player PlayerView) bool {
	if r2.Norm2(r2.Sub(p, player.Pos)) < m.cfg.Derived.SafeDistSq {
		return false
	}
	if player.Aiming && r2.Norm2(r2.Sub(p, player.DashEnd)) < m.cfg.Derived.AimExclusionSq {
		return false
	}
	return true
}

// samplePos rejection-samples a spawn position for kind. The last sample is
// returned even if it is unsafe.
func (m *Manager) samplePos(kind components.Kind, player PlayerView) (r2.Vec, bool) {
	w, h := m.cfg.Derived.ScreenW, m.cfg.Derived.ScreenH
	attempts := m.cfg.Spawn.QueueAttempts
	if attempts < 1 {
		attempts = 1
	}

	var p r2.Vec
	for i := 0; i < attempts; i++ {
		if kind == components.KindSingularity {
			angle := m.rng.Float64() * 2 * math.Pi
			dist := singularityRingMin + m.rng.Float64()*singularityRingSpread
			p = r2.Vec{
				X: m.cfg.Derived.CenterX + math.Cos(angle)*dist,
				Y: m.cfg.Derived.CenterY + math.Sin(angle)*dist,
			}
			p = systems.ClampToArena(p, w, h, singularityMargin)
		} else {
			p = r2.Vec{X: m.rng.Float64() * w, Y: m.rng.Float64() * h}
		}
		if m.IsLocationSafe(p, player) {
			return p, true
		}
	}
	return p, false
}

// QueueSpawn telegraphs count spawns of kind. Nothing is queued while a
// boss or the ritual is active.
func (m *Manager) QueueSpawn(count int, kind components.Kind, player PlayerView) {
	if player.BossActive || player.RitualActive {
		return
	}
	for i := 0; i < count; i++ {
		p, _ := m.samplePos(kind, player)
		m.queue = append(m.queue, SpawnEntry{Pos: p, Timer: m.cfg.Spawn.QueueTimer, Kind: kind})
	}
}

// updateQueue counts down queued spawns, pulsing the grid at each one, and
// materializes those that expire.
func (m *Manager) updateQueue(dt float64) int {
	sc := &m.cfg.Spawn
	materialized := 0
	alive := 0
	for i := range m.queue {
		s := m.queue[i]
		prev := s.Timer
		s.Timer -= dt
		if s.Timer > 0 {
			// Pulse once each time the countdown crosses an interval boundary
			if n := float64(sc.PulseInterval); n > 0 && math.Floor(prev/n) != math.Floor(s.Timer/n) {
				m.grid.ApplyGridForce(s.Pos.X, s.Pos.Y, sc.PulseRadius, sc.PulseForce)
			}
			m.queue[alive] = s
			alive++
			continue
		}
		m.SpawnEnemy(s.Pos, s.Kind)
		m.grid.ApplyGridForce(s.Pos.X, s.Pos.Y, sc.MaterializeRadius, sc.MaterializeForce)
		materialized++
	}
	m.queue = m.queue[:alive]
	return materialized
}

// SpawnEnemy creates an enemy of kind at p with its per-kind defaults.
// KindShielded creates a basic enemy carrying a shield.
func (m *Manager) SpawnEnemy(p r2.Vec, kind components.Kind) ecs.Entity {
	if kind == components.KindWarden {
		return m.SpawnBoss(p, 0)
	}
	ec := &m.cfg.Enemies
	m.nextID++

	pos := components.Position{X: p.X, Y: p.Y}
	vel := components.Velocity{}
	en := components.Enemy{
		ID:      m.nextID,
		Kind:    kind,
		Color:   components.KindColor(kind),
		Opacity: 1,
	}

	var e ecs.Entity
	switch kind {
	case components.KindBasic:
		en.Radius, en.Speed = ec.Basic.Radius, ec.Basic.Speed
		e = m.basicMapper.NewEntity(&pos, &vel, &en)

	case components.KindShielded:
		en.Kind = components.KindBasic
		en.Radius, en.Speed = ec.Shielded.Radius, ec.Shielded.Speed
		en.HasShield = true
		en.ShieldAngle = m.rng.Float64() * 2 * math.Pi
		e = m.basicMapper.NewEntity(&pos, &vel, &en)

	case components.KindShooter:
		en.Radius, en.Speed = ec.Shooter.Radius, ec.Shooter.Speed
		s := components.Shooter{FireTimer: ec.Shooter.FirstShot}
		e = m.shooterMapper.NewEntity(&pos, &vel, &en, &s)

	case components.KindPhantom:
		en.Radius, en.Speed = ec.Phantom.Radius, ec.Phantom.Speed
		ph := components.Phantom{Phase: m.rng.Float64() * 2 * math.Pi}
		en.Opacity = math.Max(ec.Phantom.MinOpacity, (math.Sin(ph.Phase)+1)/2)
		e = m.phantomMapper.NewEntity(&pos, &vel, &en, &ph)

	case components.KindSingularity:
		en.Radius, en.Speed = ec.Singularity.Radius, ec.Singularity.Speed
		s := components.Singularity{Warmup: ec.Singularity.Warmup}
		e = m.singularityMapper.NewEntity(&pos, &vel, &en, &s)

	case components.KindGlitch:
		en.Radius, en.Speed = ec.Glitch.Radius, ec.Glitch.Speed
		g := components.Glitch{Lives: ec.Glitch.Lives}
		e = m.glitchMapper.NewEntity(&pos, &vel, &en, &g)

	case components.KindJouster:
		en.Radius, en.Speed = ec.Jouster.Radius, ec.Jouster.Speed
		j := components.Jouster{State: components.JousterTrack}
		e = m.jousterMapper.NewEntity(&pos, &vel, &en, &j)

	default:
		panic("entities: cannot spawn kind " + kind.String())
	}

	m.count(&en)
	m.indexDirty = true
	return e
}

// SpawnBoss creates a warden at p. Shield count and speed scale with the
// wardens already killed.
func (m *Manager) SpawnBoss(p r2.Vec, wardensKilled int) ecs.Entity {
	wc := &m.cfg.Enemies.Warden
	m.nextID++

	n := 0
	for i, step := range wc.ShieldSteps {
		if wardensKilled >= step {
			n = wc.Shields[i]
		}
	}
	shields := make([]float64, n)
	for i := range shields {
		shields[i] = 2 * math.Pi / float64(n) * float64(i)
	}

	pos := components.Position{X: p.X, Y: p.Y}
	vel := components.Velocity{}
	en := components.Enemy{
		ID:        m.nextID,
		Kind:      components.KindWarden,
		Radius:    wc.Radius,
		Speed:     wc.Speed + float64(wardensKilled)*wc.SpeedPerWarden,
		Color:     components.ColorWarden,
		Opacity:   1,
		HasShield: n > 0,
	}
	w := components.Warden{Shields: shields, ShootTimer: wc.FirstShot}

	e := m.wardenMapper.NewEntity(&pos, &vel, &en, &w)
	m.count(&en)
	m.indexDirty = true
	return e
}

// QueueMine places a mine at a safe random position. It is skipped when the
// mine cap is reached (outside the ritual) or no safe spot is found.
func (m *Manager) QueueMine(player PlayerView) bool {
	if !player.RitualActive {
		limit := systems.SpeciesCap(m.cfg.Spawn.Mines, 0, 1, m.enemies)
		if float64(m.mines) >= limit {
			return false
		}
	}
	p, ok := m.samplePos(components.KindBasic, player)
	if !ok {
		return false
	}
	m.SpawnMine(p)
	return true
}

// SpawnMine creates a mine at p.
func (m *Manager) SpawnMine(p r2.Vec) ecs.Entity {
	pos := components.Position{X: p.X, Y: p.Y}
	mine := components.Mine{Radius: m.cfg.Enemies.Mine.Radius}
	m.mines++
	return m.mineMapper.NewEntity(&pos, &mine)
}

// Mines appends every live mine to dst.
func (m *Manager) Mines(dst []MineInfo) []MineInfo {
	query := m.mineFilter.Query()
	for query.Next() {
		pos, mine := query.Get()
		dst = append(dst, MineInfo{E: query.Entity(), Pos: pos.Vec(), Radius: mine.Radius})
	}
	return dst
}

// RemoveMine deletes a mine.
func (m *Manager) RemoveMine(e ecs.Entity) {
	if !m.world.Alive(e) || !m.mineMap.Has(e) {
		return
	}
	m.world.RemoveEntity(e)
	m.mines--
}
