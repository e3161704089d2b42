package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/warpdash/game"
)

// bannerSeconds is how long the tier-up banner takes to fade.
const bannerSeconds = 1.5

// HUD renders the heads-up display and implements game.UI. Refresh only
// stores the status; drawing happens once per frame.
type HUD struct {
	renderer *Renderer
	status   game.Status

	// Tier banner
	lastTier    int
	banner      string
	bannerTween *gween.Tween
	bannerAlpha float32

	wardensNeeded int
}

// NewHUD creates a HUD. wardensNeeded is shown as the warden goal.
func NewHUD(wardensNeeded int) *HUD {
	return &HUD{
		renderer:      NewRenderer(),
		wardensNeeded: wardensNeeded,
	}
}

// Refresh records the latest status and starts the banner on a tier rise.
func (h *HUD) Refresh(s game.Status) {
	if s.Tier > h.lastTier {
		h.banner = game.TierLabel(s.Tier)
		h.bannerTween = gween.New(1, 0, bannerSeconds, ease.InQuad)
		h.bannerAlpha = 1
	}
	if s.State != game.StatePlaying && s.State != game.StateVictory {
		h.bannerTween = nil
		h.bannerAlpha = 0
	}
	h.lastTier = s.Tier
	h.status = s
}

// Status returns the last refreshed status.
func (h *HUD) Status() game.Status { return h.status }

// Update advances the banner fade by dt seconds.
func (h *HUD) Update(dt float32) {
	if h.bannerTween == nil {
		return
	}
	v, done := h.bannerTween.Update(dt)
	h.bannerAlpha = v
	if done {
		h.bannerTween = nil
		h.bannerAlpha = 0
	}
}

// BannerAlpha returns the current banner opacity.
func (h *HUD) BannerAlpha() float32 { return h.bannerAlpha }

// Draw renders the HUD. It returns true when the player asked for a new
// attempt from the game-over or victory screen.
func (h *HUD) Draw(screenW, screenH int32) bool {
	r := h.renderer
	t := r.Theme
	s := h.status

	// Score column
	rl.DrawText(fmt.Sprintf("%d", s.Score), 16, 12, 32, t.ValueColor)
	rl.DrawText(fmt.Sprintf("HI %d | RUN #%d", s.HighScore, s.Attempt), 16, 48, t.FontSize, t.LabelColor)

	// Meters
	x, y, w := int32(16), int32(72), int32(260)
	y = r.DrawRamBar(x, y, s.Ram, s.MaxRam, w)
	if s.Overheat > 0 {
		rl.DrawText("OVERHEAT", x+t.LabelWidth, y, t.FontSize, t.Danger)
		y += t.LineHeight
	}
	y = r.DrawBar(x, y, "NUKE", float32(s.NukeCharge), w, t.Accent)
	y = r.DrawLabelValue(x, y, "WARDENS", fmt.Sprintf("%d/%d", s.WardensKilled, h.wardensNeeded))

	// Combo on the right
	if s.Combo > 0 {
		combo := fmt.Sprintf("x%d", s.Combo)
		cw := rl.MeasureText(combo, 40)
		rl.DrawText(combo, screenW-cw-16, 12, 40, t.Accent)
	}
	if label := game.TierLabel(s.Tier); label != "" {
		lw := rl.MeasureText(label, t.HeaderFontSize)
		rl.DrawText(label, screenW-lw-16, 56, t.HeaderFontSize, t.SectionHeader)
	}

	if s.BossWarning {
		DrawCentered("WARNING: WARDEN INBOUND", screenW/2, 24, 24, t.Danger)
	}
	if s.RitualActive && s.State == game.StatePlaying {
		DrawCentered(fmt.Sprintf("SEQUENCE NODE %d", s.NextStar), screenW/2, 24, 20, t.Accent)
	}

	if h.bannerAlpha > 0 {
		DrawCentered(h.banner, screenW/2, screenH/3, 56, rl.Fade(t.SectionHeader, h.bannerAlpha))
	}

	switch s.State {
	case game.StateGameOver:
		return h.drawEnd(screenW, screenH, "SYSTEM FAILURE", s.Reason, t.Danger)
	case game.StateVictory:
		return h.drawEnd(screenW, screenH, "CORE PURGED", "YOU WIN", t.BarFillHigh)
	}
	return false
}

// drawEnd draws the end-of-run panel with a retry button.
func (h *HUD) drawEnd(screenW, screenH int32, title, detail string, col rl.Color) bool {
	r := h.renderer
	pw, ph := int32(420), int32(200)
	px, py := (screenW-pw)/2, (screenH-ph)/2
	r.DrawPanel(px, py, pw, ph)

	cx := screenW / 2
	DrawCentered(title, cx, py+20, 32, col)
	DrawCentered(detail, cx, py+62, 20, r.Theme.ValueColor)
	DrawCentered(fmt.Sprintf("SCORE %d", h.status.Score), cx, py+92, 20, r.Theme.LabelColor)

	return gui.Button(rl.Rectangle{X: float32(cx - 70), Y: float32(py + ph - 56), Width: 140, Height: 36}, "RETRY")
}
