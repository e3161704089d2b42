package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/systems"
)

// Snapshot is everything a renderer needs for one frame. Slices are reused
// between frames; renderers must not keep them. Grid and Particles point at
// live state and are read only.
type Snapshot struct {
	Status Status
	Player Player

	Aiming    bool
	Cursor    r2.Vec
	DashEnd   r2.Vec
	DashRange float64

	Frame     float64 // Scaled game time, drives color cycling
	TimeScale float64
	Level     float64 // Grid distortion level
	Shake     float64
	Center    r2.Vec

	Grid      *systems.WarpGrid
	Particles *systems.ParticlePool

	Enemies     []entities.EnemyView
	Mines       []entities.MineInfo
	Projectiles []entities.ProjectileInfo
	Slashes     []entities.SlashLine
	Queue       []entities.SpawnEntry
	Texts       []entities.Text

	Stars []StarNode
	Zone  float64

	BossWarningPos   r2.Vec
	BossWarningTimer float64
}

// buildSnapshot refreshes the reusable frame snapshot.
func (g *Game) buildSnapshot() *Snapshot {
	s := &g.snapshot
	s.Status = g.status()
	s.Player = g.player

	s.Aiming = g.aiming
	s.Cursor = g.cursor
	s.DashEnd, _ = g.dashTarget()
	s.DashRange = g.dashRange()

	s.Frame = g.frame
	s.TimeScale = g.timeScale
	s.Level = g.level
	s.Shake = g.shake.Amount()
	s.Center = g.center()

	s.Grid = g.grid
	s.Particles = g.em.Particles()

	s.Enemies = g.em.Enemies(s.Enemies[:0])
	s.Mines = g.em.Mines(s.Mines[:0])
	s.Projectiles = g.em.Projectiles(s.Projectiles[:0])
	s.Slashes = append(s.Slashes[:0], g.em.Slashes()...)
	s.Queue = append(s.Queue[:0], g.em.Queue()...)
	s.Texts = append(s.Texts[:0], g.em.Texts()...)

	s.Stars = append(s.Stars[:0], g.stars...)
	s.Zone = 0
	if g.ritualActive && g.state == StatePlaying {
		s.Zone = g.zone
	}

	s.BossWarningPos = g.bossWarningPos
	s.BossWarningTimer = 0
	if g.bossWarning {
		s.BossWarningTimer = g.bossWarningTimer
	}
	return s
}

// Snapshot builds the frame snapshot without drawing it.
func (g *Game) Snapshot() *Snapshot { return g.buildSnapshot() }
