package components

import (
	"image/color"
	"testing"
)

func TestKindNamesCoverAllKinds(t *testing.T) {
	if len(KindNames()) != int(NumKinds) {
		t.Fatalf("KindNames has %d entries, want %d", len(KindNames()), NumKinds)
	}
	seen := map[string]bool{}
	for k := KindBasic; k < NumKinds; k++ {
		name := k.String()
		if name == "unknown" || seen[name] {
			t.Errorf("kind %d has bad or duplicate name %q", k, name)
		}
		seen[name] = true
		if k.DeathReason() == "UNKNOWN PROCESS" {
			t.Errorf("kind %s has no death reason", name)
		}
	}
	if KindShielded.String() != "shielded" {
		t.Errorf("KindShielded name = %q", KindShielded.String())
	}
}

func TestDeathReasons(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindBasic, "CORRUPTED SECTOR"},
		{KindShooter, "VIRUS SHOOTER"},
		{KindWarden, "THE WARDEN"},
		{KindGlitch, "RUNTIME ERROR"},
	}
	for _, tt := range tests {
		if got := tt.kind.DeathReason(); got != tt.want {
			t.Errorf("%s reason = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestHueColor(t *testing.T) {
	tests := []struct {
		hue  float64
		want color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}},
		{120, color.RGBA{0, 255, 0, 255}},
		{240, color.RGBA{0, 0, 255, 255}},
		{360, color.RGBA{255, 0, 0, 255}},
		{-120, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := HueColor(tt.hue); got != tt.want {
			t.Errorf("HueColor(%v) = %v, want %v", tt.hue, got, tt.want)
		}
	}
}

func TestEnemyHitPos(t *testing.T) {
	e := Enemy{}
	pos := Position{X: 10, Y: 20}
	if got := e.HitPos(pos); got.X != 10 || got.Y != 20 {
		t.Errorf("HitPos without visual = %v", got)
	}
	e.HasVisual = true
	e.Visual.X, e.Visual.Y = 30, 40
	if got := e.HitPos(pos); got.X != 30 || got.Y != 40 {
		t.Errorf("HitPos with visual = %v", got)
	}
}
