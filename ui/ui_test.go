package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/warpdash/game"
)

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()
	if len(reg.EnabledOverlays()) != 0 {
		t.Fatal("overlays should start disabled")
	}

	id, on, ok := reg.HandleKeyPress(rl.KeyH)
	if !ok || id != OverlayHitboxes || !on {
		t.Fatalf("HandleKeyPress(H) = %q, %v, %v", id, on, ok)
	}
	if !reg.IsEnabled(OverlayHitboxes) {
		t.Error("hitboxes should be enabled")
	}

	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}

	reg.Toggle(OverlayHitboxes)
	if reg.IsEnabled(OverlayHitboxes) {
		t.Error("second toggle should disable")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "a", Category: "test", Exclusive: []OverlayID{"b"}})
	reg.Register(OverlayDescriptor{ID: "b", Category: "test"})

	reg.SetEnabled("b", true)
	reg.SetEnabled("a", true)
	if reg.IsEnabled("b") {
		t.Error("enabling a should disable b")
	}
	if got := len(reg.ByCategory("test")); got != 2 {
		t.Errorf("ByCategory(test) = %d overlays, want 2", got)
	}
}

func TestCategoriesInOrder(t *testing.T) {
	reg := NewOverlayRegistry()
	got := reg.Categories()
	want := []string{"grid", "combat", "debug"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTierBannerFades(t *testing.T) {
	h := NewHUD(3)
	h.Refresh(game.Status{State: game.StatePlaying, Tier: 0})
	if h.BannerAlpha() != 0 {
		t.Fatal("no banner before a tier rise")
	}

	h.Refresh(game.Status{State: game.StatePlaying, Tier: 1})
	if h.BannerAlpha() != 1 {
		t.Fatalf("banner alpha = %v, want 1", h.BannerAlpha())
	}
	if h.banner != "ECHO" {
		t.Errorf("banner = %q, want ECHO", h.banner)
	}

	h.Update(bannerSeconds / 2)
	mid := h.BannerAlpha()
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid-fade alpha = %v, want in (0, 1)", mid)
	}

	h.Update(bannerSeconds)
	if h.BannerAlpha() != 0 {
		t.Errorf("alpha after fade = %v, want 0", h.BannerAlpha())
	}

	// Same tier again does not restart
	h.Refresh(game.Status{State: game.StatePlaying, Tier: 1})
	if h.BannerAlpha() != 0 {
		t.Error("refresh at the same tier should not show the banner")
	}
}

func TestBannerClearsOnGameOver(t *testing.T) {
	h := NewHUD(3)
	h.Refresh(game.Status{State: game.StatePlaying, Tier: 2})
	h.Refresh(game.Status{State: game.StateGameOver, Tier: 2, Reason: "DATA MINE"})
	if h.BannerAlpha() != 0 {
		t.Error("game over should hide the banner")
	}
	if h.Status().Reason != "DATA MINE" {
		t.Errorf("status reason = %q", h.Status().Reason)
	}
}

func TestRamColorThresholds(t *testing.T) {
	r := NewRenderer()
	tests := []struct {
		cur, total int
		want       rl.Color
	}{
		{1, 5, r.Theme.BarFillLow},
		{2, 5, r.Theme.BarFillMedium},
		{5, 5, r.Theme.BarFillHigh},
	}
	for _, tt := range tests {
		if got := r.ramColor(tt.cur, tt.total); got != tt.want {
			t.Errorf("ramColor(%d, %d) = %v, want %v", tt.cur, tt.total, got, tt.want)
		}
	}
}
