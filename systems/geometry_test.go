package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestLineCircleCollide(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Vec
		c    r2.Vec
		r    float64
		want bool
	}{
		{"center on segment", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: 50}, 5, true},
		{"just inside", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: 50, Y: 9.9}, 10, true},
		{"touching is a miss", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: 50, Y: 10}, 10, false},
		{"beyond end clamps", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: 108}, 10, true},
		{"far beyond end", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: 120}, 10, false},
		{"behind start clamps", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: -8}, 10, true},
		{"far behind start", r2.Vec{}, r2.Vec{X: 100}, r2.Vec{X: -20, Y: 5}, 10, false},
		{"diagonal", r2.Vec{}, r2.Vec{X: 100, Y: 100}, r2.Vec{X: 60, Y: 50}, 8, true},
		{"zero length hit", r2.Vec{X: 5, Y: 5}, r2.Vec{X: 5, Y: 5}, r2.Vec{X: 8, Y: 5}, 5, true},
		{"zero length miss", r2.Vec{X: 5, Y: 5}, r2.Vec{X: 5, Y: 5}, r2.Vec{X: 20, Y: 5}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineCircleCollide(tt.a, tt.b, tt.c, tt.r); got != tt.want {
				t.Errorf("LineCircleCollide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShieldBlocks(t *testing.T) {
	tests := []struct {
		name        string
		bearer      float64
		half        float64
		threat      float64
		wantBlocked bool
	}{
		{"head on", 0, math.Pi / 2, 0, true},
		{"edge inside", 0, math.Pi / 2, math.Pi/2 - 0.01, true},
		{"edge outside", 0, math.Pi / 2, math.Pi/2 + 0.01, false},
		{"behind", 0, math.Pi / 2, math.Pi, false},
		{"wraps across pi", 3, 0.5, -3, true},
		{"wraps across zero", 6.2, 0.2, 0.05, true},
		{"blast arc wider", 0, 0.7 * math.Pi, 0.6 * math.Pi, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShieldBlocks(tt.bearer, tt.half, tt.threat); got != tt.wantBlocked {
				t.Errorf("ShieldBlocks(%v, %v, %v) = %v, want %v", tt.bearer, tt.half, tt.threat, got, tt.wantBlocked)
			}
		})
	}
}

func TestArcShieldBlocks(t *testing.T) {
	arc := 0.4 * math.Pi
	shields := []float64{0, math.Pi}

	tests := []struct {
		threat float64
		want   bool
	}{
		{0.2 * math.Pi, true},  // middle of first arc
		{0.01, true},           // just past the first arc start
		{-0.01, false},         // just before it
		{0.39 * math.Pi, true}, // near the end
		{0.5 * math.Pi, false}, // gap between arcs
		{1.2 * math.Pi, true},  // middle of second arc
		{-0.7 * math.Pi, true}, // same as 1.3pi
	}
	for _, tt := range tests {
		if got := ArcShieldBlocks(shields, arc, tt.threat); got != tt.want {
			t.Errorf("ArcShieldBlocks(threat=%.3f) = %v, want %v", tt.threat, got, tt.want)
		}
	}

	if ArcShieldBlocks(nil, arc, 0) {
		t.Error("no shields must never block")
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if math.Abs(math.Abs(got)-math.Abs(tt.want)) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < -math.Pi-1e-12 || got > math.Pi+1e-12 {
			t.Errorf("NormalizeAngle(%v) = %v out of range", tt.in, got)
		}
	}
}

func TestDirection(t *testing.T) {
	dir, dist, ok := Direction(r2.Vec{}, r2.Vec{X: 3, Y: 4})
	if !ok || dist != 5 || math.Abs(dir.X-0.6) > 1e-12 || math.Abs(dir.Y-0.8) > 1e-12 {
		t.Errorf("Direction = %v %v %v", dir, dist, ok)
	}

	if _, _, ok := Direction(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1}); ok {
		t.Error("coincident points must report no direction")
	}
}

func TestTurnToward(t *testing.T) {
	tests := []struct {
		cur, target, step, want float64
	}{
		{0, 1, 0.1, 0.1},
		{0, -1, 0.1, -0.1},
		{0, 0.05, 0.1, 0.05},
		{3.1, -3.1, 0.1, 3.1 + (2*math.Pi - 6.2)}, // short way across pi
	}
	for _, tt := range tests {
		if got := TurnToward(tt.cur, tt.target, tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TurnToward(%v, %v, %v) = %v, want %v", tt.cur, tt.target, tt.step, got, tt.want)
		}
	}
}

func TestClampToArena(t *testing.T) {
	got := ClampToArena(r2.Vec{X: -10, Y: 900}, 800, 600, 50)
	if got != (r2.Vec{X: 50, Y: 550}) {
		t.Errorf("ClampToArena = %v", got)
	}
}
