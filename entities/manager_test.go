package entities

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
)

type gridCall struct {
	x, y, r, f float64
}

// fakeGrid records grid forces and maps points through a fixed offset.
type fakeGrid struct {
	calls  []gridCall
	offset r2.Vec
}

func (g *fakeGrid) ApplyGridForce(x, y, r, f float64) {
	g.calls = append(g.calls, gridCall{x, y, r, f})
}

func (g *fakeGrid) DistortedPoint(x, y float64) r2.Vec {
	return r2.Vec{X: x + g.offset.X, Y: y + g.offset.Y}
}

func newTestManager(t *testing.T) (*Manager, *fakeGrid, *config.Config) {
	t.Helper()
	return newTestManagerSeed(t, 7)
}

func newTestManagerSeed(t *testing.T, seed int64) (*Manager, *fakeGrid, *config.Config) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	grid := &fakeGrid{}
	return New(cfg, grid, rand.New(rand.NewSource(seed))), grid, cfg
}

func playerAt(x, y float64) PlayerView {
	return PlayerView{Pos: r2.Vec{X: x, Y: y}, Radius: 10}
}

func TestSpawnCountsAndRemove(t *testing.T) {
	m, _, _ := newTestManager(t)

	basic := m.SpawnEnemy(r2.Vec{X: 100, Y: 100}, components.KindBasic)
	m.SpawnEnemy(r2.Vec{X: 200, Y: 100}, components.KindShielded)
	m.SpawnEnemy(r2.Vec{X: 300, Y: 100}, components.KindShooter)
	glitch := m.SpawnEnemy(r2.Vec{X: 400, Y: 100}, components.KindGlitch)

	if m.EnemyCount() != 4 {
		t.Fatalf("enemy count = %d, want 4", m.EnemyCount())
	}
	if m.Count(components.KindBasic) != 1 || m.ShieldedCount() != 1 || m.Count(components.KindShielded) != 1 {
		t.Errorf("basic=%d shielded=%d", m.Count(components.KindBasic), m.ShieldedCount())
	}

	views := m.Enemies(nil)
	if len(views) != 4 {
		t.Fatalf("views = %d", len(views))
	}
	for _, v := range views {
		if v.HasShield && v.Kind != components.KindBasic {
			t.Errorf("shielded enemy has kind %s", v.Kind)
		}
	}

	if v, ok := m.EnemyView(glitch); !ok || v.Lives != 1 {
		t.Errorf("glitch view = %+v, ok %v", v, ok)
	}

	m.RemoveEnemy(basic)
	m.RemoveEnemy(basic) // second removal is a no-op
	if m.EnemyCount() != 3 || m.Count(components.KindBasic) != 0 {
		t.Errorf("after remove: enemies=%d basic=%d", m.EnemyCount(), m.Count(components.KindBasic))
	}
	if m.Alive(basic) {
		t.Error("removed enemy still alive")
	}
}

func TestSpawnUnknownKindPanics(t *testing.T) {
	m, _, _ := newTestManager(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind")
		}
	}()
	m.SpawnEnemy(r2.Vec{}, components.KindShielded+1)
}

func TestResetClearsEverything(t *testing.T) {
	m, _, _ := newTestManager(t)
	player := playerAt(640, 400)

	m.SpawnEnemy(r2.Vec{X: 100, Y: 100}, components.KindBasic)
	m.SpawnMine(r2.Vec{X: 50, Y: 50})
	m.FireProjectile(r2.Vec{X: 10, Y: 10}, player.Pos)
	m.QueueSpawn(2, components.KindBasic, player)
	m.AddSlash(SlashLine{B: r2.Vec{X: 10}, Life: 30, Width: 15})
	m.SpawnConfetti(r2.Vec{}, components.ColorBasic, 5)
	m.SpawnText(r2.Vec{}, "+100", components.ColorBasic)

	m.Reset()

	if m.EnemyCount() != 0 || m.MineCount() != 0 || m.ProjectileCount() != 0 {
		t.Errorf("counts after reset: %d %d %d", m.EnemyCount(), m.MineCount(), m.ProjectileCount())
	}
	if len(m.Enemies(nil)) != 0 || len(m.Mines(nil)) != 0 || len(m.Projectiles(nil)) != 0 {
		t.Error("entities remain in the world after reset")
	}
	if m.QueueLen() != 0 || len(m.Slashes()) != 0 || len(m.Texts()) != 0 || m.Particles().Count() != 0 {
		t.Error("transient collections not cleared")
	}
}

func TestIsLocationSafe(t *testing.T) {
	m, _, _ := newTestManager(t)

	aiming := playerAt(100, 100)
	aiming.Aiming = true
	aiming.DashEnd = r2.Vec{X: 700, Y: 100}

	tests := []struct {
		name   string
		p      r2.Vec
		player PlayerView
		want   bool
	}{
		{"too close to player", r2.Vec{X: 250, Y: 100}, playerAt(100, 100), false},
		{"at safe distance", r2.Vec{X: 300, Y: 100}, playerAt(100, 100), true},
		{"near dash end while aiming", r2.Vec{X: 750, Y: 100}, aiming, false},
		{"near dash end not aiming", r2.Vec{X: 750, Y: 100}, playerAt(100, 100), true},
		{"clear of both", r2.Vec{X: 700, Y: 400}, aiming, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsLocationSafe(tt.p, tt.player); got != tt.want {
				t.Errorf("IsLocationSafe(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestQueueSpawnMaterializes(t *testing.T) {
	m, grid, cfg := newTestManager(t)
	player := playerAt(640, 400)

	blocked := player
	blocked.BossActive = true
	m.QueueSpawn(3, components.KindBasic, blocked)
	if m.QueueLen() != 0 {
		t.Fatal("queue must stay empty while a boss is active")
	}

	m.QueueSpawn(2, components.KindBasic, player)
	for _, s := range m.Queue() {
		if r2.Norm(r2.Sub(s.Pos, player.Pos)) < cfg.Player.SafeDistance {
			t.Errorf("queued spawn %v inside safe distance", s.Pos)
		}
	}

	// Park the player far away so the new enemies cannot touch it.
	materialized := 0
	for tick := 0; tick < int(cfg.Spawn.QueueTimer)+1; tick++ {
		res := m.Update(1, 1, player)
		materialized += res.Materialized
	}
	if materialized != 2 || m.EnemyCount() != 2 || m.QueueLen() != 0 {
		t.Errorf("materialized=%d enemies=%d queue=%d", materialized, m.EnemyCount(), m.QueueLen())
	}

	pulses, pops := 0, 0
	for _, c := range grid.calls {
		switch c.r {
		case cfg.Spawn.PulseRadius:
			pulses++
		case cfg.Spawn.MaterializeRadius:
			pops++
		}
	}
	if pulses == 0 || pops != 2 {
		t.Errorf("pulses=%d materialize forces=%d", pulses, pops)
	}
}

func TestQueuePulseOncePerInterval(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		ticks int
		want  int
	}{
		{"full speed", 1, 25, 3},
		{"aim slow motion", 0.02, 600, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, grid, cfg := newTestManager(t)
			player := playerAt(40, 40)
			m.QueueSpawn(1, components.KindBasic, player)
			if m.QueueLen() != 1 {
				t.Fatalf("queue = %d", m.QueueLen())
			}

			for i := 0; i < tt.ticks; i++ {
				m.Update(tt.dt, 1, player)
			}

			pulses := 0
			for _, c := range grid.calls {
				if c.r == cfg.Spawn.PulseRadius {
					pulses++
				}
			}
			if pulses != tt.want {
				t.Errorf("pulses = %d, want %d", pulses, tt.want)
			}
		})
	}
}

func TestSingularityQueueUsesCenterRing(t *testing.T) {
	m, _, cfg := newTestManager(t)
	player := playerAt(40, 40)
	m.QueueSpawn(10, components.KindSingularity, player)

	center := r2.Vec{X: cfg.Derived.CenterX, Y: cfg.Derived.CenterY}
	for _, s := range m.Queue() {
		d := r2.Norm(r2.Sub(s.Pos, center))
		if d < singularityRingMin-1e-9 || d > singularityRingMin+singularityRingSpread+1e-9 {
			t.Errorf("singularity queued at distance %.1f from center", d)
		}
	}
}

func TestQueueMineCap(t *testing.T) {
	m, _, cfg := newTestManager(t)
	player := playerAt(640, 400)

	placed := 0
	for i := 0; i < 10; i++ {
		if m.QueueMine(player) {
			placed++
		}
	}
	if placed != int(cfg.Spawn.Mines.CapBase) {
		t.Errorf("placed %d mines with no enemies, want %v", placed, cfg.Spawn.Mines.CapBase)
	}

	ritual := player
	ritual.RitualActive = true
	if !m.QueueMine(ritual) {
		t.Error("mine cap must not apply during the ritual")
	}
	if got := len(m.Mines(nil)); got != m.MineCount() {
		t.Errorf("Mines() = %d, MineCount = %d", got, m.MineCount())
	}
}

func TestWardenShieldScaling(t *testing.T) {
	m, _, cfg := newTestManager(t)

	tests := []struct {
		wardensKilled int
		wantShields   int
	}{
		{0, 2},
		{1, 3},
		{2, 4},
	}
	for _, tt := range tests {
		e := m.SpawnBoss(r2.Vec{X: 100, Y: 100}, tt.wardensKilled)
		v, _ := m.EnemyView(e)
		if len(v.Shields) != tt.wantShields {
			t.Errorf("wardens killed %d: shields = %d, want %d", tt.wardensKilled, len(v.Shields), tt.wantShields)
		}
		_, _, en := m.Enemy(e)
		wantSpeed := cfg.Enemies.Warden.Speed + float64(tt.wardensKilled)*cfg.Enemies.Warden.SpeedPerWarden
		if math.Abs(en.Speed-wantSpeed) > 1e-9 {
			t.Errorf("speed = %v, want %v", en.Speed, wantSpeed)
		}
	}
	if m.Count(components.KindWarden) != 3 {
		t.Errorf("warden count = %d", m.Count(components.KindWarden))
	}
}

func TestFireVolleySize(t *testing.T) {
	m, _, _ := newTestManager(t)
	for _, tt := range []struct{ encounters, want int }{{0, 3}, {1, 3}, {2, 6}, {3, 12}} {
		if got := m.FireVolley(r2.Vec{X: 100, Y: 100}, tt.encounters); got != tt.want {
			t.Errorf("encounters %d: volley = %d, want %d", tt.encounters, got, tt.want)
		}
	}
	for _, p := range m.Projectiles(nil) {
		if !p.Tracking {
			t.Error("volley projectile is not tracking")
		}
	}
}

func TestSlashAging(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.AddSlash(SlashLine{A: r2.Vec{}, B: r2.Vec{X: 100}, Life: 3, Width: 15})
	m.AddSlash(SlashLine{Life: 0})
	if len(m.Slashes()) != 1 {
		t.Fatalf("slashes = %d, want 1", len(m.Slashes()))
	}
	m.AgeSlashes(1)
	s := m.Slashes()[0]
	if s.Life != 2 || s.Width >= 15 || s.MaxLife != 3 {
		t.Errorf("after one tick: %+v", s)
	}
	if mid := s.Midpoint(); mid.X != 50 || mid.Y != 0 {
		t.Errorf("midpoint = %v", mid)
	}
	m.AgeSlashes(2)
	if len(m.Slashes()) != 0 {
		t.Error("expired slash not removed")
	}
}

func TestTextsRiseAndExpire(t *testing.T) {
	m, _, cfg := newTestManager(t)
	m.SpawnText(r2.Vec{X: 10, Y: 100}, "+100", components.ColorBasic)
	m.UpdateEffects(10)
	if got := m.Texts()[0].Pos.Y; math.Abs(got-(100-10*cfg.Particles.TextRise)) > 1e-9 {
		t.Errorf("text y = %v", got)
	}
	m.UpdateEffects(cfg.Particles.TextLife)
	if len(m.Texts()) != 0 {
		t.Error("text did not expire")
	}
}

func TestInspectReturnsPayload(t *testing.T) {
	m, _, _ := newTestManager(t)

	tests := []struct {
		kind components.Kind
		want int
	}{
		{components.KindBasic, 1},
		{components.KindGlitch, 2},
		{components.KindJouster, 2},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := m.SpawnEnemy(r2.Vec{X: 100, Y: 100}, tt.kind)
			got := m.Inspect(e)
			if len(got) != tt.want {
				t.Fatalf("Inspect returned %d components, want %d", len(got), tt.want)
			}
			if _, ok := got[0].(*components.Enemy); !ok {
				t.Errorf("first component is %T, want *components.Enemy", got[0])
			}
			m.RemoveEnemy(e)
			if m.Inspect(e) != nil {
				t.Error("Inspect on a removed enemy should return nil")
			}
		})
	}
}
