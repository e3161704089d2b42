package entities

import (
	"fmt"
	"image/color"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/systems"
)

// EnemyView is a read-only copy of an enemy's state.
type EnemyView struct {
	E           ecs.Entity
	ID          uint32
	Kind        components.Kind
	Pos         r2.Vec
	Vel         r2.Vec
	HitPos      r2.Vec // Visual position for warping kinds, else Pos
	Radius      float64
	Color       color.RGBA
	Opacity     float64
	Stunned     float64
	Invuln      float64
	HasShield   bool
	ShieldAngle float64
	Shields     []float64 // Warden arc starts; aliases live state
	Lives       int
	Warmup      float64
	Jouster     components.JousterState
	JousterDir  r2.Vec
}

// Enemies appends a view of every live enemy to dst.
func (m *Manager) Enemies(dst []EnemyView) []EnemyView {
	query := m.enemyFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, en := query.Get()
		dst = append(dst, m.view(e, pos, vel, en))
	}
	return dst
}

// EnemyView returns a view of one enemy.
func (m *Manager) EnemyView(e ecs.Entity) (EnemyView, bool) {
	if !m.world.Alive(e) || !m.enemyMap.Has(e) {
		return EnemyView{}, false
	}
	return m.view(e, m.posMap.Get(e), m.velMap.Get(e), m.enemyMap.Get(e)), true
}

func (m *Manager) view(e ecs.Entity, pos *components.Position, vel *components.Velocity, en *components.Enemy) EnemyView {
	v := EnemyView{
		E:           e,
		ID:          en.ID,
		Kind:        en.Kind,
		Pos:         pos.Vec(),
		Vel:         vel.Vec(),
		HitPos:      en.HitPos(*pos),
		Radius:      en.Radius,
		Color:       en.Color,
		Opacity:     en.Opacity,
		Stunned:     en.Stunned,
		Invuln:      en.Invuln,
		HasShield:   en.HasShield,
		ShieldAngle: en.ShieldAngle,
	}
	switch en.Kind {
	case components.KindWarden:
		v.Shields = m.wardenMap.Get(e).Shields
	case components.KindGlitch:
		v.Lives = m.glitchMap.Get(e).Lives
	case components.KindSingularity:
		v.Warmup = m.singularityMap.Get(e).Warmup
	case components.KindJouster:
		j := m.jousterMap.Get(e)
		v.Jouster = j.State
		v.JousterDir = j.Dir
	}
	return v
}

// Enemy returns the mutable shared state of an enemy.
func (m *Manager) Enemy(e ecs.Entity) (*components.Position, *components.Velocity, *components.Enemy) {
	return m.posMap.Get(e), m.velMap.Get(e), m.enemyMap.Get(e)
}

// MoveEnemy places an enemy at p and invalidates the neighbor index.
func (m *Manager) MoveEnemy(e ecs.Entity, p r2.Vec) {
	m.posMap.Get(e).Set(p)
	m.indexDirty = true
}

// Glitch returns the glitch payload of an enemy.
func (m *Manager) Glitch(e ecs.Entity) *components.Glitch { return m.glitchMap.Get(e) }

// Singularity returns the singularity payload of an enemy.
func (m *Manager) Singularity(e ecs.Entity) *components.Singularity {
	return m.singularityMap.Get(e)
}

// Warden returns the warden payload of an enemy.
func (m *Manager) Warden(e ecs.Entity) *components.Warden { return m.wardenMap.Get(e) }

// Jouster returns the jouster payload of an enemy.
func (m *Manager) Jouster(e ecs.Entity) *components.Jouster { return m.jousterMap.Get(e) }

// Inspect returns the shared state and payload of a live enemy as component
// pointers, in that order. It returns nil for dead or non-enemy entities.
func (m *Manager) Inspect(e ecs.Entity) []any {
	if !m.world.Alive(e) || !m.enemyMap.Has(e) {
		return nil
	}
	out := []any{m.enemyMap.Get(e)}
	switch m.enemyMap.Get(e).Kind {
	case components.KindShooter:
		out = append(out, m.shooterMap.Get(e))
	case components.KindPhantom:
		out = append(out, m.phantomMap.Get(e))
	case components.KindSingularity:
		out = append(out, m.singularityMap.Get(e))
	case components.KindGlitch:
		out = append(out, m.glitchMap.Get(e))
	case components.KindWarden:
		out = append(out, m.wardenMap.Get(e))
	case components.KindJouster:
		out = append(out, m.jousterMap.Get(e))
	}
	return out
}

// RemoveEnemy deletes an enemy and updates the population counters.
func (m *Manager) RemoveEnemy(e ecs.Entity) {
	if !m.world.Alive(e) || !m.enemyMap.Has(e) {
		return
	}
	en := m.enemyMap.Get(e)
	m.uncount(en)
	m.world.RemoveEntity(e)
	m.indexDirty = true
}

func (m *Manager) count(en *components.Enemy) {
	m.enemies++
	if en.Kind == components.KindBasic && en.HasShield {
		m.shielded++
		return
	}
	m.counts[en.Kind]++
}

func (m *Manager) uncount(en *components.Enemy) {
	m.enemies--
	if en.Kind == components.KindBasic && en.HasShield {
		m.shielded--
		return
	}
	m.counts[en.Kind]--
}

// updateEnemies runs per-kind behavior and contact detection.
func (m *Manager) updateEnemies(dt, realDt float64, player PlayerView, res *UpdateResult) {
	ecfg := &m.cfg.Enemies
	speedMult := m.speedMultiplier(player.Progress)

	query := m.enemyFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos, vel, en := query.Get()

		// The warden ignores time dilation for all of its behavior.
		edt := dt
		if en.Kind == components.KindWarden {
			edt = realDt
		}

		switch en.Kind {
		case components.KindBasic, components.KindGlitch:
			m.steer(pos, vel, en.Speed*speedMult, player.Pos, edt)

		case components.KindShooter:
			m.steer(pos, vel, en.Speed*speedMult, player.Pos, edt)
			s := m.shooterMap.Get(e)
			s.FireTimer -= edt
			if s.FireTimer <= 0 {
				m.shots = append(m.shots, shotRequest{from: pos.Vec()})
				s.FireTimer = m.shooterInterval(player.Encounters)
			}

		case components.KindPhantom:
			ph := m.phantomMap.Get(e)
			ph.Phase += ecfg.Phantom.PhaseSpeed * edt
			en.Opacity = math.Max(ecfg.Phantom.MinOpacity, (math.Sin(ph.Phase)+1)/2)
			m.steer(pos, vel, en.Speed*speedMult, player.Pos, edt)

		case components.KindSingularity:
			m.updateSingularity(e, pos, vel, en, player, edt, res)

		case components.KindWarden:
			m.updateWarden(e, pos, vel, en, player, edt)

		case components.KindJouster:
			m.updateJouster(e, pos, vel, en, player, edt, speedMult)

		default:
			panic(fmt.Sprintf("entities: unhandled enemy kind %d", en.Kind))
		}

		if en.Invuln > 0 {
			en.Invuln -= edt
		}
		if en.Stunned > 0 {
			en.Stunned -= edt
		}
		if en.HitCooldown > 0 {
			en.HitCooldown -= edt
		}

		if en.HasShield && en.Kind != components.KindWarden && en.Stunned <= 0 {
			target := systems.AngleTo(pos.Vec(), player.Pos)
			en.ShieldAngle = systems.TurnToward(en.ShieldAngle, target, ecfg.Shielded.TurnRate*edt)
		}

		if res.Death == nil {
			m.checkContact(pos, en, player, res)
		}
	}
}

// steer accelerates toward the player with smoothing.
func (m *Manager) steer(pos *components.Position, vel *components.Velocity, speed float64, target r2.Vec, dt float64) {
	p := pos.Vec()
	v := vel.Vec()
	if dir, _, ok := systems.Direction(p, target); ok {
		want := r2.Scale(speed, dir)
		accel := math.Min(1, m.cfg.Enemies.Steering*dt)
		v = r2.Add(v, r2.Scale(accel, r2.Sub(want, v)))
	}
	vel.Set(v)
	pos.Set(r2.Add(p, r2.Scale(dt, v)))
}

func (m *Manager) shooterInterval(encounters int) float64 {
	sc := &m.cfg.Enemies.Shooter
	idx := 0
	for i, step := range sc.EncounterStep {
		if encounters > step {
			idx = i + 1
		}
	}
	return sc.FireIntervals[idx]
}

func (m *Manager) updateSingularity(e ecs.Entity, pos *components.Position, vel *components.Velocity, en *components.Enemy, player PlayerView, dt float64, res *UpdateResult) {
	sc := &m.cfg.Enemies.Singularity
	s := m.singularityMap.Get(e)
	if s.Warmup > 0 {
		s.Warmup -= dt
		en.HasVisual = false
		return
	}

	p := pos.Vec()
	visual := m.grid.DistortedPoint(p.X, p.Y)
	en.Visual = visual
	en.HasVisual = true
	m.grid.ApplyGridForce(visual.X, visual.Y, sc.PullRadius, sc.GridForce)

	// Range uses the true position; the pull aims at what the player sees.
	if r2.Norm2(r2.Sub(player.Pos, p)) < sc.PullRadius*sc.PullRadius {
		if dir, _, ok := systems.Direction(player.Pos, visual); ok {
			res.Impulse = r2.Add(res.Impulse, r2.Scale(sc.Pull*dt, dir))
		}
	}

	v := vel.Vec()
	if dir, _, ok := systems.Direction(p, player.Pos); ok {
		v = r2.Add(v, r2.Scale(sc.Drift*dt, dir))
		p = r2.Add(p, r2.Scale(dt, v))
		v = r2.Scale(math.Pow(sc.Damping, dt), v)
	}
	pos.Set(p)
	vel.Set(v)
}

func (m *Manager) updateWarden(e ecs.Entity, pos *components.Position, vel *components.Velocity, en *components.Enemy, player PlayerView, dt float64) {
	wc := &m.cfg.Enemies.Warden
	w := m.wardenMap.Get(e)

	p := pos.Vec()
	if dir, _, ok := systems.Direction(p, player.Pos); ok {
		v := r2.Scale(en.Speed, dir)
		vel.Set(v)
		pos.Set(r2.Add(p, r2.Scale(dt, v)))
	}

	for i := range w.Shields {
		spin := wc.ShieldSpin * dt
		if i%2 == 1 {
			spin = -spin
		}
		w.Shields[i] = systems.NormalizeAngle(w.Shields[i] + spin)
	}

	w.ShootTimer -= dt
	if w.ShootTimer <= 0 {
		m.shots = append(m.shots, shotRequest{from: pos.Vec(), volley: true})
		w.ShootTimer = wc.ShootInterval
	}
}

func (m *Manager) updateJouster(e ecs.Entity, pos *components.Position, vel *components.Velocity, en *components.Enemy, player PlayerView, dt, speedMult float64) {
	jc := &m.cfg.Enemies.Jouster
	j := m.jousterMap.Get(e)
	j.Timer += dt

	switch j.State {
	case components.JousterTrack:
		m.steer(pos, vel, en.Speed*speedMult, player.Pos, dt)
		if j.Timer >= jc.TrackTicks {
			j.State = components.JousterTelegraph
			j.Timer = 0
			if dir, _, ok := systems.Direction(pos.Vec(), player.Pos); ok {
				j.Dir = dir
			} else {
				j.Dir = r2.Vec{X: 1}
			}
			vel.Set(r2.Vec{})
			en.Invuln = jc.TelegraphTicks
		}

	case components.JousterTelegraph:
		vel.Set(r2.Vec{})
		if j.Timer >= jc.TelegraphTicks {
			j.State = components.JousterDash
			j.Timer = 0
			en.Invuln = 0
			vel.Set(r2.Scale(jc.DashSpeed, j.Dir))
		}

	case components.JousterDash:
		p := r2.Add(pos.Vec(), r2.Scale(dt, vel.Vec()))
		clamped := systems.ClampToArena(p, m.cfg.Derived.ScreenW, m.cfg.Derived.ScreenH, en.Radius)
		pos.Set(clamped)
		if clamped != p || j.Timer >= jc.DashTicks {
			j.State = components.JousterTrack
			j.Timer = 0
			vel.Set(r2.Scale(en.Speed, j.Dir))
		}
	}
}

// checkContact records a lethal touch between the player and an enemy.
func (m *Manager) checkContact(pos *components.Position, en *components.Enemy, player PlayerView, res *UpdateResult) {
	if en.Stunned > 0 {
		return
	}
	if en.Kind == components.KindPhantom && en.Opacity < m.cfg.Enemies.Phantom.ContactOpacity {
		return
	}
	reach := en.Radius + player.Radius
	if r2.Norm2(r2.Sub(pos.Vec(), player.Pos)) >= reach*reach {
		return
	}
	res.Death = &Death{Reason: en.Kind.DeathReason(), Pos: pos.Vec()}
}

// JousterTelegraphing reports whether e is a jouster winding up its charge.
func (m *Manager) JousterTelegraphing(e ecs.Entity) bool {
	if !m.jousterMap.Has(e) {
		return false
	}
	return m.jousterMap.Get(e).State == components.JousterTelegraph
}
