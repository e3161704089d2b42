package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
)

func TestSpatialGridQuery(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)

	grid := NewSpatialGrid(1280, 800, 100)
	positions := []r2.Vec{
		{X: 100, Y: 100},
		{X: 150, Y: 100},
		{X: 400, Y: 100},
		{X: 1270, Y: 790},
		{X: -20, Y: 50}, // Outside the arena, clamped into an edge cell
	}
	entities := make([]ecs.Entity, len(positions))
	for i, p := range positions {
		entities[i] = mapper.NewEntity(&components.Position{X: p.X, Y: p.Y})
		grid.Insert(entities[i], p)
	}

	tests := []struct {
		name   string
		origin r2.Vec
		radius float64
		want   int
	}{
		{"pair", r2.Vec{X: 120, Y: 100}, 60, 2},
		{"wide", r2.Vec{X: 120, Y: 100}, 300, 4},
		{"corner", r2.Vec{X: 1200, Y: 750}, 100, 1},
		{"empty", r2.Vec{X: 700, Y: 500}, 50, 0},
		{"zero radius", r2.Vec{X: 100, Y: 100}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.QueryRadiusInto(nil, tt.origin, tt.radius)
			if len(got) != tt.want {
				t.Fatalf("got %d neighbors, want %d", len(got), tt.want)
			}
			for _, n := range got {
				if n.DistSq > tt.radius*tt.radius {
					t.Errorf("neighbor at distSq %v outside radius", n.DistSq)
				}
				if d := r2.Sub(n.Pos, tt.origin); d != n.Delta {
					t.Errorf("delta = %v, want %v", n.Delta, d)
				}
			}
		})
	}

	near, ok := grid.Nearest(r2.Vec{X: 390, Y: 100}, 200, nil)
	if !ok || near.E != entities[2] {
		t.Errorf("nearest = %+v, ok %v", near, ok)
	}

	grid.Clear()
	if got := grid.QueryRadiusInto(nil, r2.Vec{X: 120, Y: 100}, 1000); len(got) != 0 {
		t.Errorf("cleared grid returned %d neighbors", len(got))
	}
}
