package camera

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewFitsArena(t *testing.T) {
	tests := []struct {
		name             string
		vw, vh           float32
		wantZoom         float32
		wantOffX, wantOY float32
	}{
		{"exact", 1280, 800, 1, 0, 0},
		{"wide window", 1920, 800, 1, 320, 0},
		{"tall window", 640, 800, 0.5, 0, 200},
		{"double", 2560, 1600, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(tt.vw, tt.vh, 1280, 800)
			if cam.Zoom != tt.wantZoom {
				t.Errorf("zoom = %v, want %v", cam.Zoom, tt.wantZoom)
			}
			if cam.OffsetX != tt.wantOffX || cam.OffsetY != tt.wantOY {
				t.Errorf("offset = (%v, %v), want (%v, %v)", cam.OffsetX, cam.OffsetY, tt.wantOffX, tt.wantOY)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1920, 1080, 1280, 800)

	testCases := []struct{ sx, sy float32 }{
		{960, 540},
		{100, 100},
		{1800, 1000},
	}
	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestArenaCenterMapsToScreenCenter(t *testing.T) {
	cam := New(1920, 1080, 1280, 800)
	sx, sy := cam.WorldToScreen(640, 400)
	if math.Abs(float64(sx-960)) > 0.01 || math.Abs(float64(sy-540)) > 0.01 {
		t.Errorf("expected screen center (960, 540), got (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	if !cam.IsVisible(-5, 400, 10) {
		t.Error("circle overlapping the left edge should be visible")
	}
	if cam.IsVisible(-50, 400, 10) {
		t.Error("circle outside the arena should not be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 800, 1280, 800)
	cam.Resize(640, 400)
	if cam.Zoom != 0.5 {
		t.Errorf("zoom after resize = %v, want 0.5", cam.Zoom)
	}
	if got := cam.Scale(100); got != 50 {
		t.Errorf("Scale(100) = %v, want 50", got)
	}
}

func TestShakeDecays(t *testing.T) {
	s := NewShake(30)
	s.Set(20)
	s.Kick(10)
	if s.Amount() != 30 {
		t.Fatalf("amount = %v, want 30", s.Amount())
	}

	prev := s.Amount()
	for i := 0; i < 10; i++ {
		s.Update(1)
		if s.Amount() > prev {
			t.Fatalf("shake grew at tick %d: %v > %v", i, s.Amount(), prev)
		}
		prev = s.Amount()
	}
	for i := 0; i < 30; i++ {
		s.Update(1)
	}
	if s.Amount() != 0 {
		t.Errorf("shake did not settle: %v", s.Amount())
	}
}

func TestShakeFloorAndOffset(t *testing.T) {
	s := NewShake(0)
	rng := rand.New(rand.NewSource(1))
	if dx, dy := s.Offset(rng); dx != 0 || dy != 0 {
		t.Errorf("idle offset = (%v, %v)", dx, dy)
	}

	s.Floor(4)
	s.Floor(2)
	if s.Amount() != 4 {
		t.Errorf("floor lowered amplitude: %v", s.Amount())
	}
	for i := 0; i < 50; i++ {
		dx, dy := s.Offset(rng)
		if math.Abs(dx) > 2 || math.Abs(dy) > 2 {
			t.Fatalf("offset (%v, %v) exceeds half amplitude", dx, dy)
		}
	}
}
