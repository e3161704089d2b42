// Package entities owns every transient arena object: enemies, mines and
// projectiles in an ark ECS world, plus the spawn queue, slash trails,
// pooled particles and floating texts.
package entities

import (
	"image/color"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/systems"
)

// indexCellSize is the spatial index bucket size in arena units.
const indexCellSize = 100

// Progress is the run progression the manager needs for spawn gating and
// kind scaling.
type Progress struct {
	WardensKilled int
	Encounters    int // Wardens spawned so far
	BossActive    bool
	RitualActive  bool
}

// PlayerView is the per-tick read-only view of the player passed into the
// manager. It is a value; the manager never keeps it across ticks.
type PlayerView struct {
	Pos     r2.Vec
	Radius  float64
	Aiming  bool
	DashEnd r2.Vec // Projected dash endpoint while aiming
	Progress
}

// GridForcer lets entities disturb the warp grid in screen space.
type GridForcer interface {
	ApplyGridForce(x, y, radius, force float64)
	DistortedPoint(x, y float64) r2.Vec
}

// Death describes a lethal contact found during Update.
type Death struct {
	Reason string
	Pos    r2.Vec
}

// UpdateResult is what one manager tick hands back to the controller.
type UpdateResult struct {
	Impulse      r2.Vec // Player velocity change (singularity pull)
	Death        *Death // First lethal contact, nil if none
	Shots        int    // Projectiles fired
	Materialized int    // Queued spawns that became enemies
}

// SpawnEntry is a telegraphed spawn waiting to materialize.
type SpawnEntry struct {
	Pos   r2.Vec
	Timer float64
	Kind  components.Kind
}

// Text is a floating label.
type Text struct {
	Pos     r2.Vec
	Text    string
	Color   color.RGBA
	Life    float64
	MaxLife float64
	Size    float64
}

// Manager owns the arena population.
type Manager struct {
	cfg  *config.Config
	grid GridForcer
	rng  *rand.Rand

	world *ecs.World

	// Per-kind archetypes
	basicMapper       *ecs.Map3[components.Position, components.Velocity, components.Enemy]
	shooterMapper     *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Shooter]
	phantomMapper     *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Phantom]
	singularityMapper *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Singularity]
	glitchMapper      *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Glitch]
	wardenMapper      *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Warden]
	jousterMapper     *ecs.Map4[components.Position, components.Velocity, components.Enemy, components.Jouster]
	mineMapper        *ecs.Map2[components.Position, components.Mine]
	projMapper        *ecs.Map3[components.Position, components.Velocity, components.Projectile]

	enemyFilter *ecs.Filter3[components.Position, components.Velocity, components.Enemy]
	mineFilter  *ecs.Filter2[components.Position, components.Mine]
	projFilter  *ecs.Filter3[components.Position, components.Velocity, components.Projectile]

	posMap         *ecs.Map[components.Position]
	velMap         *ecs.Map[components.Velocity]
	enemyMap       *ecs.Map[components.Enemy]
	mineMap        *ecs.Map[components.Mine]
	projMap        *ecs.Map[components.Projectile]
	shooterMap     *ecs.Map[components.Shooter]
	phantomMap     *ecs.Map[components.Phantom]
	singularityMap *ecs.Map[components.Singularity]
	glitchMap      *ecs.Map[components.Glitch]
	wardenMap      *ecs.Map[components.Warden]
	jousterMap     *ecs.Map[components.Jouster]

	counts      [components.NumKinds]int
	shielded    int
	enemies     int
	mines       int
	projectiles int
	nextID      uint32

	queue     []SpawnEntry
	slashes   []SlashLine
	texts     []Text
	particles *systems.ParticlePool

	index      *systems.SpatialGrid
	indexDirty bool

	// Scratch buffers reused across ticks
	toRemove []ecs.Entity
	shots    []shotRequest
}

// New creates an empty manager.
func New(cfg *config.Config, grid GridForcer, rng *rand.Rand) *Manager {
	world := ecs.NewWorld()

	m := &Manager{
		cfg:   cfg,
		grid:  grid,
		rng:   rng,
		world: world,

		basicMapper:       ecs.NewMap3[components.Position, components.Velocity, components.Enemy](world),
		shooterMapper:     ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Shooter](world),
		phantomMapper:     ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Phantom](world),
		singularityMapper: ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Singularity](world),
		glitchMapper:      ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Glitch](world),
		wardenMapper:      ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Warden](world),
		jousterMapper:     ecs.NewMap4[components.Position, components.Velocity, components.Enemy, components.Jouster](world),
		mineMapper:        ecs.NewMap2[components.Position, components.Mine](world),
		projMapper:        ecs.NewMap3[components.Position, components.Velocity, components.Projectile](world),

		enemyFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Enemy](world),
		mineFilter:  ecs.NewFilter2[components.Position, components.Mine](world),
		projFilter:  ecs.NewFilter3[components.Position, components.Velocity, components.Projectile](world),

		posMap:         ecs.NewMap[components.Position](world),
		velMap:         ecs.NewMap[components.Velocity](world),
		enemyMap:       ecs.NewMap[components.Enemy](world),
		mineMap:        ecs.NewMap[components.Mine](world),
		projMap:        ecs.NewMap[components.Projectile](world),
		shooterMap:     ecs.NewMap[components.Shooter](world),
		phantomMap:     ecs.NewMap[components.Phantom](world),
		singularityMap: ecs.NewMap[components.Singularity](world),
		glitchMap:      ecs.NewMap[components.Glitch](world),
		wardenMap:      ecs.NewMap[components.Warden](world),
		jousterMap:     ecs.NewMap[components.Jouster](world),

		queue:     make([]SpawnEntry, 0, 16),
		slashes:   make([]SlashLine, 0, 8),
		texts:     make([]Text, 0, 16),
		particles: systems.NewParticlePool(cfg.Particles.Capacity),
		index:     systems.NewSpatialGrid(cfg.Derived.ScreenW, cfg.Derived.ScreenH, indexCellSize),
	}
	return m
}

// Reset removes every entity and clears all transient collections.
func (m *Manager) Reset() {
	m.toRemove = m.toRemove[:0]

	eq := m.enemyFilter.Query()
	for eq.Next() {
		m.toRemove = append(m.toRemove, eq.Entity())
	}
	mq := m.mineFilter.Query()
	for mq.Next() {
		m.toRemove = append(m.toRemove, mq.Entity())
	}
	pq := m.projFilter.Query()
	for pq.Next() {
		m.toRemove = append(m.toRemove, pq.Entity())
	}
	for _, e := range m.toRemove {
		m.world.RemoveEntity(e)
	}
	m.toRemove = m.toRemove[:0]

	m.counts = [components.NumKinds]int{}
	m.shielded = 0
	m.enemies = 0
	m.mines = 0
	m.projectiles = 0

	m.queue = m.queue[:0]
	m.slashes = m.slashes[:0]
	m.texts = m.texts[:0]
	m.particles.Clear()
	m.index.Clear()
	m.indexDirty = false
}

// Update advances the spawn queue, effects, enemies and projectiles by one
// tick. scaledDt follows the game time scale; realDt ignores it and drives
// the time-immune warden and tracking projectiles.
func (m *Manager) Update(scaledDt, realDt float64, player PlayerView) UpdateResult {
	var res UpdateResult

	res.Materialized = m.updateQueue(scaledDt)
	m.UpdateEffects(scaledDt)
	m.updateEnemies(scaledDt, realDt, player, &res)
	m.flushShots(player, &res)
	m.updateProjectiles(scaledDt, realDt, player, &res)

	m.indexDirty = true
	return res
}

// UpdateEffects advances particles and floating texts only.
func (m *Manager) UpdateEffects(dt float64) {
	m.particles.Update(dt)

	rise := m.cfg.Particles.TextRise
	alive := 0
	for i := range m.texts {
		t := &m.texts[i]
		t.Pos.Y -= rise * dt
		t.Life -= dt
		if t.Life <= 0 {
			continue
		}
		m.texts[alive] = *t
		alive++
	}
	m.texts = m.texts[:alive]
}

// Count returns the live population of a kind. KindShielded counts basic
// enemies carrying a shield; KindBasic excludes them.
func (m *Manager) Count(kind components.Kind) int {
	if kind == components.KindShielded {
		return m.shielded
	}
	if kind >= components.NumKinds {
		return 0
	}
	return m.counts[kind]
}

// ShieldedCount returns the number of shielded basic enemies.
func (m *Manager) ShieldedCount() int { return m.shielded }

// EnemyCount returns the number of live enemies.
func (m *Manager) EnemyCount() int { return m.enemies }

// MineCount returns the number of live mines.
func (m *Manager) MineCount() int { return m.mines }

// ProjectileCount returns the number of live projectiles.
func (m *Manager) ProjectileCount() int { return m.projectiles }

// QueueLen returns the number of pending spawns.
func (m *Manager) QueueLen() int { return len(m.queue) }

// Queue returns the pending spawns. Read only.
func (m *Manager) Queue() []SpawnEntry { return m.queue }

// Texts returns the floating texts. Read only.
func (m *Manager) Texts() []Text { return m.texts }

// Particles returns the particle pool.
func (m *Manager) Particles() *systems.ParticlePool { return m.particles }

// Alive reports whether an entity handle still refers to a live entity.
func (m *Manager) Alive(e ecs.Entity) bool { return m.world.Alive(e) }

// Near appends the enemies within radius of origin to dst.
func (m *Manager) Near(dst []systems.Neighbor, origin r2.Vec, radius float64) []systems.Neighbor {
	if m.indexDirty {
		m.rebuildIndex()
	}
	return m.index.QueryRadiusInto(dst, origin, radius)
}

func (m *Manager) rebuildIndex() {
	m.index.Clear()
	query := m.enemyFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		m.index.Insert(query.Entity(), pos.Vec())
	}
	m.indexDirty = false
}

func (m *Manager) speedMultiplier(p Progress) float64 {
	return 1 + float64(p.WardensKilled)*m.cfg.Enemies.SpeedPerWarden
}
