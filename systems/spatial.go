// Package systems provides the simulation building blocks shared by the
// entity manager and the game controller: the warp grid, geometry, pooled
// particles, spatial queries and the spawn scheduler.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Pos    r2.Vec
	Delta  r2.Vec  // Pos minus the query origin
	DistSq float64 // Squared distance (avoid sqrt in hot path)
}

type cellEntry struct {
	e   ecs.Entity
	pos r2.Vec
}

// SpatialGrid buckets entities into square cells for radius queries.
// The arena is bounded; positions outside it are clamped into edge cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]cellEntry
}

// NewSpatialGrid creates a spatial grid covering the given arena size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]cellEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]cellEntry, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, pos r2.Vec) {
	col, row := g.cellCoords(pos)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], cellEntry{e: e, pos: pos})
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius of origin and appends them to
// dst, up to MaxQueryResults. Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, origin r2.Vec, radius float64) []Neighbor {
	if radius <= 0 {
		return dst
	}
	minCol, minRow := g.cellCoords(r2.Vec{X: origin.X - radius, Y: origin.Y - radius})
	maxCol, maxRow := g.cellCoords(r2.Vec{X: origin.X + radius, Y: origin.Y + radius})
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, ce := range g.cells[row*g.cols+col] {
				d := r2.Sub(ce.pos, origin)
				distSq := r2.Norm2(d)
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{E: ce.e, Pos: ce.pos, Delta: d, DistSq: distSq})
				if len(dst) >= MaxQueryResults {
					return dst
				}
			}
		}
	}
	return dst
}

// Nearest returns the closest entity to origin within radius.
func (g *SpatialGrid) Nearest(origin r2.Vec, radius float64, buf []Neighbor) (Neighbor, bool) {
	buf = g.QueryRadiusInto(buf[:0], origin, radius)
	best := -1
	bestSq := math.Inf(1)
	for i := range buf {
		if buf[i].DistSq < bestSq {
			best, bestSq = i, buf[i].DistSq
		}
	}
	if best < 0 {
		return Neighbor{}, false
	}
	return buf[best], true
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(p r2.Vec) (int, int) {
	col := int(math.Floor(p.X / g.cellSize))
	row := int(math.Floor(p.Y / g.cellSize))

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
