package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warpdash/camera"
	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/entities"
	"github.com/pthm-cable/warpdash/game"
	"github.com/pthm-cable/warpdash/inspector"
	"github.com/pthm-cable/warpdash/renderer"
	"github.com/pthm-cable/warpdash/ui"
)

// screen composes the arena, debug overlays, HUD and inspector into the
// game's renderer and routes window input to the game.
type screen struct {
	cfg  *config.Config
	cam  *camera.Camera
	game *game.Game

	arena     *renderer.Arena
	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	perf      *ui.PerfPanel
	inspector *inspector.Inspector

	enemies []entities.EnemyView
	retry   bool
}

func newScreen(cfg *config.Config, cam *camera.Camera) *screen {
	w := int32(cam.ViewportW)
	return &screen{
		cfg:      cfg,
		cam:      cam,
		arena:    renderer.NewArena(cfg, cam),
		hud:      ui.NewHUD(cfg.Ritual.WardensNeeded),
		overlays: ui.NewOverlayRegistry(),
		controls: ui.NewControlsPanel(16, 150, 260,
			ui.KeyHint{Key: "LMB", Text: "Aim, release to dash"},
			ui.KeyHint{Key: "RMB", Text: "Inspect enemy"},
			ui.KeyHint{Key: "R", Text: "Restart after a run"},
			ui.KeyHint{Key: "Tab", Text: "Toggle this panel"},
			ui.KeyHint{Key: "Esc", Text: "Deselect / quit"},
		),
		perf:      ui.NewPerfPanel(w-270, 100),
		inspector: inspector.NewInspector(w),
	}
}

func (s *screen) resize(w, h int32) {
	s.cam.Resize(float32(w), float32(h))
	s.inspector.Resize(w)
	s.perf = ui.NewPerfPanel(w-270, 100)
}

// handleKeys processes keyboard input and reports whether to quit.
func (s *screen) handleKeys() bool {
	if rl.IsKeyPressed(rl.KeyEscape) {
		if _, ok := s.inspector.Selected(); !ok {
			return true
		}
		s.inspector.Deselect()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		s.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		switch s.game.State() {
		case game.StateGameOver, game.StateVictory:
			s.retry = true
		}
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := s.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay_toggled", "overlay", id, "enabled", on)
		}
	}
	return false
}

// handlePointer maps the mouse into arena space and feeds the aim.
func (s *screen) handlePointer() {
	m := rl.GetMousePosition()
	wx, wy := s.cam.ScreenToWorld(m.X, m.Y)
	x := min(max(float64(wx), 0), s.cfg.Derived.ScreenW)
	y := min(max(float64(wy), 0), s.cfg.Derived.ScreenH)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		s.game.AimStart(x, y)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		s.game.AimMove(x, y)
		s.game.AimRelease()
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		s.game.AimMove(x, y)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		s.enemies = s.game.Manager().Enemies(s.enemies[:0])
		s.inspector.HandleClick(int32(m.X), int32(m.Y), x, y, s.enemies)
	}
}

// Draw renders one frame. It implements game.Renderer.
func (s *screen) Draw(snap *game.Snapshot) {
	s.arena.Draw(snap)

	rl.BeginMode2D(s.arena.View())
	ui.DrawWorldOverlays(s.overlays, snap, s.cfg)
	s.inspector.DrawSelectionHighlight(s.game.Manager())
	rl.EndMode2D()

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if s.hud.Draw(w, h) {
		s.retry = true
	}
	s.controls.Draw(s.overlays)
	if s.overlays.IsEnabled(ui.OverlayPerf) {
		s.perf.Draw(s.game.PerfStats())
	}
	s.inspector.Draw(s.game.Manager())
}
