package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Dash.Range != 600 {
		t.Errorf("dash range = %v, want 600", cfg.Dash.Range)
	}
	if cfg.Grid.Spacing != 30 {
		t.Errorf("grid spacing = %v, want 30", cfg.Grid.Spacing)
	}
	if cfg.Ritual.WardensNeeded != 3 {
		t.Errorf("wardens needed = %d, want 3", cfg.Ritual.WardensNeeded)
	}
	if got := cfg.Derived.TierThresholds; len(got) != 3 || got[0] != 15 || got[1] != 30 || got[2] != 50 {
		t.Errorf("tier thresholds = %v, want [15 30 50]", got)
	}
	if cfg.Derived.SafeDistSq != 40000 {
		t.Errorf("safe dist sq = %v, want 40000", cfg.Derived.SafeDistSq)
	}
	if cfg.Derived.CenterX != float64(cfg.Screen.Width)/2 {
		t.Errorf("center x = %v", cfg.Derived.CenterX)
	}
	if !cfg.Spawn.Basic.Enabled || cfg.Spawn.Basic.CapBase != 12 {
		t.Errorf("basic species = %+v", cfg.Spawn.Basic)
	}
	if cfg.Enemies.Shooter.Radius != 25 {
		t.Errorf("inline kind config not decoded: shooter radius = %v", cfg.Enemies.Shooter.Radius)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	overlay := []byte("dash:\n  range: 450\ncombo:\n  tier_thresholds: [40, 10, 20]\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dash.Range != 450 {
		t.Errorf("dash range = %v, want 450", cfg.Dash.Range)
	}
	// Fields absent from the overlay keep their defaults.
	if cfg.Dash.LineLife != 30 {
		t.Errorf("line life = %v, want default 30", cfg.Dash.LineLife)
	}
	want := []int{10, 20, 40}
	for i, v := range want {
		if cfg.Derived.TierThresholds[i] != v {
			t.Fatalf("derived thresholds = %v, want %v", cfg.Derived.TierThresholds, want)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "dash: [unterminated"},
		{"zero screen", "screen:\n  width: 0\n"},
		{"zero spacing", "grid:\n  spacing: 0\n"},
		{"warden shields mismatch", "enemies:\n  warden:\n    shields: [1]\n"},
		{"teleport fallback inside exclusion", "enemies:\n  teleport:\n    fallback: 100\n"},
		{"teleport exclusion fills arena", "enemies:\n  teleport:\n    min_player_dist: 900\n    fallback: 900\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Spawn.Basic.Rate = 33

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Spawn.Basic.Rate != 33 {
		t.Errorf("basic rate = %v, want 33", loaded.Spawn.Basic.Rate)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestCloneIsDeep(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	c, err := cfg.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	c.Combo.TierThresholds[0] = 99
	c.Spawn.Basic.Rate = 1
	if cfg.Combo.TierThresholds[0] == 99 {
		t.Error("clone shares tier thresholds")
	}
	if cfg.Spawn.Basic.Rate == 1 {
		t.Error("clone shares species config")
	}
	if c.Derived.DT != cfg.Derived.DT || c.Derived.MaxTier != cfg.Derived.MaxTier {
		t.Errorf("derived not recomputed: %+v", c.Derived)
	}
}
