package systems

import (
	"testing"

	"github.com/pthm-cable/warpdash/config"
)

func TestSchedulerFiresIndependently(t *testing.T) {
	s := NewScheduler(3)
	species := []SpeciesTick{
		{Rate: 2, Cap: 10, Open: true},
		{Rate: 4, Cap: 10, Open: true},
		{Rate: 1, Cap: 10, Open: false},
	}

	fired := map[int]int{}
	var buf []int
	for tick := 0; tick < 15; tick++ {
		buf = s.Advance(1, species, buf[:0])
		for _, i := range buf {
			fired[i]++
		}
	}

	// Timer must exceed the rate: fires every 3rd tick for rate 2, every 5th for rate 4.
	if fired[0] != 5 {
		t.Errorf("species 0 fired %d times, want 5", fired[0])
	}
	if fired[1] != 3 {
		t.Errorf("species 1 fired %d times, want 3", fired[1])
	}
	if fired[2] != 0 {
		t.Errorf("gated species fired %d times", fired[2])
	}
	if s.Timer(2) != 0 {
		t.Errorf("gated timer advanced to %v", s.Timer(2))
	}
}

func TestSchedulerHoldsAtCap(t *testing.T) {
	s := NewScheduler(1)
	species := []SpeciesTick{{Rate: 3, Cap: 2, Count: 2, Open: true}}

	for i := 0; i < 10; i++ {
		if got := s.Advance(1, species, nil); len(got) != 0 {
			t.Fatal("species at cap must not spawn")
		}
	}
	if s.Timer(0) != 0 {
		t.Errorf("timer advanced at cap: %v", s.Timer(0))
	}

	// Dropping below cap resumes from where it held.
	species[0].Count = 1
	s.Advance(2, species, nil)
	if s.Timer(0) != 2 {
		t.Errorf("timer = %v, want 2", s.Timer(0))
	}
	if got := s.Advance(2, species, nil); len(got) != 1 || s.Timer(0) != 0 {
		t.Errorf("expected fire and reset, got %v timer %v", got, s.Timer(0))
	}

	s.Advance(1, species, nil)
	s.Reset()
	if s.Timer(0) != 0 {
		t.Error("reset should zero timers")
	}
}

func TestSpeciesFormulas(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	sp := cfg.Spawn

	tests := []struct {
		name    string
		c       config.SpeciesConfig
		score   float64
		density float64
		enemies int
		wantCap float64
	}{
		{"basic at zero", sp.Basic, 0, 2, 0, 24},
		{"basic with score", sp.Basic, 3000, 3, 0, 66},
		{"shooter floors score term", sp.Shooter, 9999, 2, 0, 6},
		{"singularity fixed", sp.Singularity, 1e6, 3, 0, 9},
		{"mines floor", sp.Mines, 0, 2, 4, 3},
		{"mines scale with enemies", sp.Mines, 0, 2, 20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpeciesCap(tt.c, tt.score, tt.density, tt.enemies); got != tt.wantCap {
				t.Errorf("cap = %v, want %v", got, tt.wantCap)
			}
		})
	}

	if r := SpeciesRate(sp.Basic, 0); r != 25 {
		t.Errorf("basic rate at 0 = %v, want 25", r)
	}
	if r := SpeciesRate(sp.Basic, 100000); r != 15 {
		t.Errorf("basic rate at 100k = %v, want 15", r)
	}
	if r := SpeciesRate(sp.Basic, 1e7); r != 5 {
		t.Errorf("basic rate floor = %v, want 5", r)
	}
	if r := SpeciesRate(sp.Shooter, 1e7); r != 40 {
		t.Errorf("shooter rate = %v, want fixed 40", r)
	}
}

func TestSpeciesGates(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	sp := cfg.Spawn

	tests := []struct {
		name    string
		c       config.SpeciesConfig
		wardens int
		score   float64
		want    bool
	}{
		{"basic always", sp.Basic, 0, 0, true},
		{"shooter locked", sp.Shooter, 0, 1e6, false},
		{"shooter unlocked", sp.Shooter, 1, 0, true},
		{"glitch needs two", sp.Glitch, 1, 0, false},
		{"jouster unlocked", sp.Jouster, 2, 0, true},
		{"shielded at threshold", sp.Shielded, 0, 125, false},
		{"shielded past threshold", sp.Shielded, 0, 126, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpeciesOpen(tt.c, tt.wardens, tt.score); got != tt.want {
				t.Errorf("open = %v, want %v", got, tt.want)
			}
		})
	}

	disabled := sp.Basic
	disabled.Enabled = false
	if SpeciesOpen(disabled, 5, 1e6) {
		t.Error("disabled species must stay closed")
	}
}
