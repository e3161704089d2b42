package entities

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/systems"
)

// shotRequest is a shot decided during the enemy pass. Projectiles are
// created after the query finishes.
type shotRequest struct {
	from   r2.Vec
	volley bool // Homing volley from a warden
}

// ProjectileInfo is a read-only copy of a projectile.
type ProjectileInfo struct {
	E        ecs.Entity
	Pos      r2.Vec
	Vel      r2.Vec
	Radius   float64
	Life     float64
	Tracking bool
}

func (m *Manager) flushShots(player PlayerView, res *UpdateResult) {
	for _, s := range m.shots {
		if s.volley {
			res.Shots += m.FireVolley(s.from, player.Encounters)
		} else if m.FireProjectile(s.from, player.Pos) {
			res.Shots++
		}
	}
	m.shots = m.shots[:0]
}

// FireProjectile launches a straight shot from from toward target.
func (m *Manager) FireProjectile(from, target r2.Vec) bool {
	pc := &m.cfg.Enemies.Projectile
	dir, _, ok := systems.Direction(from, target)
	if !ok {
		return false
	}
	pos := components.Position{X: from.X, Y: from.Y}
	var vel components.Velocity
	vel.Set(r2.Scale(pc.Speed, dir))
	proj := components.Projectile{Radius: pc.Radius, Life: pc.Life}
	m.projMapper.NewEntity(&pos, &vel, &proj)
	m.projectiles++
	return true
}

// FireVolley launches 3*2^(encounters-1) homing projectiles around from and
// returns how many were fired.
func (m *Manager) FireVolley(from r2.Vec, encounters int) int {
	tc := &m.cfg.Enemies.Tracking
	n := m.cfg.Enemies.Warden.VolleyBase << max(0, encounters-1)

	for i := 0; i < n; i++ {
		pos := components.Position{
			X: from.X + (m.rng.Float64()-0.5)*2*tc.Spread,
			Y: from.Y + (m.rng.Float64()-0.5)*2*tc.Spread,
		}
		vel := components.Velocity{
			X: (m.rng.Float64() - 0.5) * 2 * tc.VelocityJitter,
			Y: (m.rng.Float64() - 0.5) * 2 * tc.VelocityJitter,
		}
		proj := components.Projectile{Radius: tc.Radius, Life: tc.Life, Tracking: true, MaxSpeed: tc.Speed}
		m.projMapper.NewEntity(&pos, &vel, &proj)
	}
	m.projectiles += n
	return n
}

// updateProjectiles moves shots, detects player hits and expires old ones.
// Tracking projectiles home on the player in unscaled time.
func (m *Manager) updateProjectiles(dt, realDt float64, player PlayerView, res *UpdateResult) {
	homing := m.cfg.Enemies.Tracking.Homing
	m.toRemove = m.toRemove[:0]

	query := m.projFilter.Query()
	for query.Next() {
		pos, vel, proj := query.Get()

		pdt := dt
		if proj.Tracking {
			pdt = realDt
			v := vel.Vec()
			if dir, _, ok := systems.Direction(pos.Vec(), player.Pos); ok {
				v = r2.Add(v, r2.Scale(homing*pdt, dir))
				if speed := r2.Norm(v); speed > proj.MaxSpeed {
					v = r2.Scale(proj.MaxSpeed/speed, v)
				}
			}
			vel.Set(v)
		}

		pos.Set(r2.Add(pos.Vec(), r2.Scale(pdt, vel.Vec())))
		proj.Life -= pdt

		reach := proj.Radius + player.Radius
		if res.Death == nil && r2.Norm2(r2.Sub(pos.Vec(), player.Pos)) < reach*reach {
			res.Death = &Death{Reason: components.ReasonProjectile, Pos: pos.Vec()}
		}
		if proj.Life <= 0 {
			m.toRemove = append(m.toRemove, query.Entity())
		}
	}

	for _, e := range m.toRemove {
		m.world.RemoveEntity(e)
		m.projectiles--
	}
	m.toRemove = m.toRemove[:0]
}

// Projectiles appends every live projectile to dst.
func (m *Manager) Projectiles(dst []ProjectileInfo) []ProjectileInfo {
	query := m.projFilter.Query()
	for query.Next() {
		pos, vel, proj := query.Get()
		dst = append(dst, ProjectileInfo{
			E:        query.Entity(),
			Pos:      pos.Vec(),
			Vel:      vel.Vec(),
			Radius:   proj.Radius,
			Life:     proj.Life,
			Tracking: proj.Tracking,
		})
	}
	return dst
}

// RemoveProjectile deletes a projectile.
func (m *Manager) RemoveProjectile(e ecs.Entity) {
	if !m.world.Alive(e) || !m.projMap.Has(e) {
		return
	}
	m.world.RemoveEntity(e)
	m.projectiles--
}

// ClearProjectiles removes every projectile within radius of center and
// returns how many were removed. Each removed shot leaves sparks confetti
// pieces when sparks > 0.
func (m *Manager) ClearProjectiles(center r2.Vec, radius float64, sparks int) int {
	radiusSq := radius * radius
	m.toRemove = m.toRemove[:0]
	query := m.projFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		if r2.Norm2(r2.Sub(pos.Vec(), center)) < radiusSq {
			m.toRemove = append(m.toRemove, query.Entity())
		}
	}
	return m.removeProjectiles(sparks)
}

// ClearTracking removes every homing projectile.
func (m *Manager) ClearTracking(sparks int) int {
	m.toRemove = m.toRemove[:0]
	query := m.projFilter.Query()
	for query.Next() {
		_, _, proj := query.Get()
		if proj.Tracking {
			m.toRemove = append(m.toRemove, query.Entity())
		}
	}
	return m.removeProjectiles(sparks)
}

func (m *Manager) removeProjectiles(sparks int) int {
	n := len(m.toRemove)
	for _, e := range m.toRemove {
		if sparks > 0 {
			p := m.posMap.Get(e).Vec()
			m.SpawnConfetti(p, components.ColorSpark, sparks)
		}
		m.world.RemoveEntity(e)
	}
	m.projectiles -= n
	m.toRemove = m.toRemove[:0]
	return n
}

