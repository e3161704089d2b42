package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warpdash/audio"
	"github.com/pthm-cable/warpdash/camera"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/game"
	"github.com/pthm-cable/warpdash/storage"
	"github.com/pthm-cable/warpdash/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run autopilot attempts without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	savePath := flag.String("save", "warpdash_save.yaml", "Attempt counter and high score file (empty = in memory)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Headless tick limit per attempt (0 = autopilot.max_ticks)")
	runs := flag.Int("runs", 1, "Headless attempts to play")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var store game.Store = storage.NewMemoryStore()
	if *savePath != "" {
		fs, err := storage.OpenFileStore(*savePath)
		if err != nil {
			slog.Error("failed to open save file, scores will not persist", "path", *savePath, "error", err)
		} else {
			store = fs
		}
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Store:          store,
	}

	if *headless {
		runHeadless(opts, *runs, *maxTicks)
		return
	}
	runWindow(cfg, opts)
}

// runHeadless plays autopilot attempts back to back and logs a summary.
func runHeadless(opts game.Options, runs, maxTicks int) {
	if maxTicks <= 0 {
		maxTicks = opts.Config.Autopilot.MaxTicks
	}

	var records []telemetry.RunRecord
	opts.Autopilot = true
	opts.RunCallback = func(r telemetry.RunRecord) {
		records = append(records, r)
	}

	g := game.NewGame(opts)

	slog.Info("starting headless runs",
		"seed", opts.Seed,
		"runs", runs,
		"max_ticks", maxTicks,
	)

	for i := 0; i < runs; i++ {
		g.Start()
		start := g.Tick()
		for g.State() == game.StatePlaying && int(g.Tick()-start) < maxTicks {
			g.Step()
		}
		if g.State() == game.StatePlaying {
			slog.Info("max ticks reached", "tick", g.Tick())
		}
	}
	// The last attempt is only recorded once it is closed out
	g.Unload()

	telemetry.SummarizeRuns(records).LogStats()
}

// runWindow opens the raylib window and plays interactively.
func runWindow(cfg *config.Config, opts game.Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Warp Dash")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	player := audio.NewCuePlayer(cfg.Audio)
	if err := player.Init(); err != nil {
		slog.Warn("audio disabled", "error", err)
	}
	defer player.Close()

	cam := camera.New(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	scr := newScreen(cfg, cam)

	opts.Audio = player
	opts.UI = scr.hud
	opts.Renderer = scr
	g := game.NewGame(opts)
	defer g.Unload()
	scr.game = g

	g.Start()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			scr.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}
		if scr.handleKeys() {
			break
		}
		scr.handlePointer()

		dt := rl.GetFrameTime()
		scr.hud.Update(dt)

		rl.BeginDrawing()
		g.Frame(float64(dt))
		rl.EndDrawing()

		if scr.retry {
			scr.retry = false
			scr.inspector.Deselect()
			g.Start()
		}
	}
}
