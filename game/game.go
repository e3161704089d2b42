// Package game runs one arena session: input, dash and kill resolution,
// combo tiers, spawning, warden and ritual sequencing, and the frame loop.
// It talks to rendering, audio, UI and persistence only through the
// interfaces in hooks.go.
package game

import (
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/camera"
	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/storage"
	"github.com/pthm-cable/warpdash/systems"
	"github.com/pthm-cable/warpdash/telemetry"
)

// bookmarkHistory is the number of windows bookmarks compare against.
const bookmarkHistory = 6

// State is the session phase.
type State uint8

const (
	StateReady State = iota
	StatePlaying
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	}
	return "unknown"
}

// Player is the dashing node.
type Player struct {
	Pos      r2.Vec
	Vel      r2.Vec
	Radius   float64
	Ram      int
	MaxRam   int
	Overheat float64
}

// Game holds the complete session state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	grid      *systems.WarpGrid
	em        *entities.Manager
	scheduler *systems.Scheduler
	species   []species
	shake     *camera.Shake

	audio    Audio
	ui       UI
	store    Store
	renderer Renderer

	player Player
	state  State
	reason string

	score      float64
	highScore  int
	combo      int
	comboTimer float64
	tier       int
	attempt    int
	level      float64 // Grid distortion level in [0, 1]

	totalKills      int
	wardensKilled   int
	encounters      int
	nextWardenKills int
	bossActive      bool

	bossWarning      bool
	bossWarningTimer float64
	bossWarningPos   r2.Vec

	ritualActive bool
	stars        []StarNode
	nextStar     int
	zone         float64

	timeScale       float64
	targetTimeScale float64
	frame           float64 // Scaled game time in ticks
	tick            int32

	aiming      bool
	pointerDown bool
	cursor      r2.Vec
	nukeCharge  float64
	headless    bool

	autopilot *Autopilot

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	runCallback   func(telemetry.RunRecord)
	logStats      bool
	run           runCounters

	// Scratch buffers reused across ticks
	enemyBuf  []entities.EnemyView
	nearBuf   []systems.Neighbor
	mineBuf   []entities.MineInfo
	projBuf   []entities.ProjectileInfo
	spawnBuf  []int
	speciesTk []systems.SpeciesTick
	snapshot  Snapshot
}

// runCounters accumulate per-attempt totals for the run record.
type runCounters struct {
	dashes    int
	hits      int
	blocks    int
	maxCombo  int
	maxTier   int
	startTick int32
}

// NewGame creates a session in the ready state. Call Start to begin.
func NewGame(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:             cfg,
		rng:             rand.New(rand.NewSource(opts.Seed)),
		seed:            opts.Seed,
		audio:           opts.Audio,
		ui:              opts.UI,
		store:           opts.Store,
		renderer:        opts.Renderer,
		statsCallback:   opts.StatsCallback,
		runCallback:     opts.RunCallback,
		logStats:        opts.LogStats,
		headless:        opts.Headless,
		timeScale:       1,
		targetTimeScale: 1,
		shake:           camera.NewShake(camera.DefaultShakeDecay),
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.ui == nil {
		g.ui = nopUI{}
	}
	if g.store == nil {
		g.store = storage.NewMemoryStore()
	}
	if g.renderer == nil {
		g.renderer = nopRenderer{}
	}

	g.grid = systems.NewWarpGrid(cfg.Derived.ScreenW, cfg.Derived.ScreenH, systems.GridParamsFrom(cfg.Grid))
	g.em = entities.New(cfg, g, g.rng)
	g.species = newSpeciesTable(cfg)
	g.scheduler = systems.NewScheduler(len(g.species))
	if opts.Autopilot {
		g.autopilot = NewAutopilot(cfg.Autopilot)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarks = telemetry.NewBookmarkDetector(bookmarkHistory)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	if high, err := g.store.HighScore(); err != nil {
		slog.Error("failed to read high score", "error", err)
	} else {
		g.highScore = high
	}

	g.player.Radius = cfg.Player.Radius
	g.player.MaxRam = cfg.Player.MaxRam
	g.player.Pos = g.center()
	return g
}

// config returns the configuration of this session.
func (g *Game) config() *config.Config {
	return g.cfg
}

// Start begins a new attempt: bumps the persisted attempt counter, resets
// every piece of run state and queues the opening spawns.
func (g *Game) Start() {
	if g.state == StatePlaying {
		g.finishRun(telemetry.OutcomeAbandoned, "")
	}

	n, err := g.store.IncrementAttempts()
	if err != nil {
		slog.Error("failed to save attempt counter", "error", err)
	}
	if n > g.attempt {
		g.attempt = n
	} else {
		g.attempt++
	}

	g.reset()
	g.state = StatePlaying
	g.em.QueueSpawn(g.config().Spawn.Initial, components.KindBasic, g.playerView())

	slog.Info("run_started", "attempt", g.attempt, "seed", g.seed)
	g.refreshUI()
}

// reset restores every per-attempt field.
func (g *Game) reset() {
	cfg := g.config()

	g.player = Player{
		Pos:    g.center(),
		Radius: cfg.Player.Radius,
		Ram:    cfg.Player.MaxRam,
		MaxRam: cfg.Player.MaxRam,
	}
	g.reason = ""
	g.score = 0
	g.combo = 0
	g.comboTimer = 0
	g.tier = 0
	g.level = 0

	g.totalKills = 0
	g.wardensKilled = 0
	g.encounters = 0
	g.nextWardenKills = cfg.Boss.FirstKills
	g.bossActive = false
	g.bossWarning = false
	g.bossWarningTimer = 0

	g.ritualActive = false
	g.stars = g.stars[:0]
	g.nextStar = 0
	g.zone = 0

	g.timeScale = 1
	g.targetTimeScale = 1
	g.frame = 0
	g.aiming = false
	g.pointerDown = false
	g.nukeCharge = 0

	g.em.Reset()
	g.grid.Reset()
	g.shake.Set(0)
	g.scheduler.Reset()
	if g.autopilot != nil {
		g.autopilot.Reset()
	}

	g.run = runCounters{startTick: g.tick}
}

// ApplyGridForce pushes the lattice around a screen-space point. The point
// and radius are mapped back through the fisheye first.
func (g *Game) ApplyGridForce(x, y, radius, force float64) {
	c := g.center()
	inv, scale := g.grid.InverseDistortedPoint(x, y, c.X, c.Y, g.level)
	g.grid.ApplyForce(inv.X, inv.Y, radius*scale, force)
}

// DistortedPoint maps an arena point to where the fisheye shows it.
func (g *Game) DistortedPoint(x, y float64) r2.Vec {
	c := g.center()
	return g.grid.DistortedPoint(x, y, c.X, c.Y, g.level)
}

// addShockwave starts a colored ring at a screen-space point. Negative hue
// is white.
func (g *Game) addShockwave(p r2.Vec, radius, hue, life, width float64) {
	c := g.center()
	inv, scale := g.grid.InverseDistortedPoint(p.X, p.Y, c.X, c.Y, g.level)
	g.grid.AddColorShockwave(inv.X, inv.Y, radius*scale, hue, life, width)
}

func (g *Game) center() r2.Vec {
	return r2.Vec{X: g.config().Derived.CenterX, Y: g.config().Derived.CenterY}
}

// playerView is the read-only player state handed to the entity manager.
func (g *Game) playerView() entities.PlayerView {
	v := entities.PlayerView{
		Pos:    g.player.Pos,
		Radius: g.player.Radius,
		Aiming: g.aiming,
		Progress: entities.Progress{
			WardensKilled: g.wardensKilled,
			Encounters:    g.encounters,
			BossActive:    g.bossActive,
			RitualActive:  g.ritualActive,
		},
	}
	if g.aiming {
		v.DashEnd, _ = g.dashTarget()
	}
	return v
}

// status builds the HUD snapshot.
func (g *Game) status() Status {
	s := Status{
		Score:         int(g.score),
		HighScore:     g.highScore,
		Combo:         g.combo,
		Tier:          g.tier,
		Ram:           g.player.Ram,
		MaxRam:        g.player.MaxRam,
		Overheat:      g.player.Overheat,
		NukeCharge:    g.nukeCharge,
		Attempt:       g.attempt,
		State:         g.state,
		Reason:        g.reason,
		WardensKilled: g.wardensKilled,
		BossWarning:   g.bossWarning,
		RitualActive:  g.ritualActive,
	}
	if g.ritualActive {
		s.NextStar = g.nextStar
	}
	return s
}

func (g *Game) refreshUI() {
	g.ui.Refresh(g.status())
}

// Status returns the current HUD values.
func (g *Game) Status() Status { return g.status() }

// State returns the session phase.
func (g *Game) State() State { return g.state }

// Player returns a copy of the player.
func (g *Game) Player() Player { return g.player }

// Score returns the current score.
func (g *Game) Score() int { return int(g.score) }

// Combo returns the current combo.
func (g *Game) Combo() int { return g.combo }

// Tier returns the current power tier.
func (g *Game) Tier() int { return g.tier }

// Attempt returns the attempt number.
func (g *Game) Attempt() int { return g.attempt }

// Tick returns the number of frames simulated.
func (g *Game) Tick() int32 { return g.tick }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

// Aiming reports whether an aim is armed.
func (g *Game) Aiming() bool { return g.aiming }

// Manager returns the entity manager.
func (g *Game) Manager() *entities.Manager { return g.em }

// Grid returns the warp grid.
func (g *Game) Grid() *systems.WarpGrid { return g.grid }

// Level returns the grid distortion level.
func (g *Game) Level() float64 { return g.level }

// WardensKilled returns the wardens defeated this attempt.
func (g *Game) WardensKilled() int { return g.wardensKilled }

// Stars returns the ritual star nodes. Read only.
func (g *Game) Stars() []StarNode { return g.stars }

// PerfStats returns frame timings over the current perf window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

// Unload records an unfinished run and closes telemetry output.
func (g *Game) Unload() {
	if g.state == StatePlaying {
		g.finishRun(telemetry.OutcomeAbandoned, "")
		g.state = StateGameOver
	}
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.output = nil
	}
}
