package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/config"
)

// GridParams holds warp grid tuning.
type GridParams struct {
	Spacing   float64
	Spring    float64 // Pull toward origin per step
	Damping   float64 // Velocity multiplier per step, must be < 1
	KBase     float64 // Distortion strength at level 0
	KPerLevel float64 // Distortion strength added per unit level
}

// GridParamsFrom extracts grid parameters from the config section.
func GridParamsFrom(cfg config.GridConfig) GridParams {
	return GridParams{
		Spacing:   cfg.Spacing,
		Spring:    cfg.Spring,
		Damping:   cfg.Damping,
		KBase:     cfg.DistortionBase,
		KPerLevel: cfg.DistortionPerLevel,
	}
}

// GridPoint is a lattice node tethered to its origin by a damped spring.
type GridPoint struct {
	Origin r2.Vec
	Pos    r2.Vec
	Vel    r2.Vec
}

// Displacement returns the distance from the point to its rest position.
func (p GridPoint) Displacement() float64 {
	return r2.Norm(r2.Sub(p.Pos, p.Origin))
}

// WarpGrid is a deformable spring-mass lattice covering the arena.
// Positions are in true (undistorted) lattice space; the fisheye mapping
// converts between lattice space and screen space.
type WarpGrid struct {
	params GridParams
	width  float64
	height float64
	cols   int
	rows   int
	points []GridPoint
	waves  []Shockwave
}

// NewWarpGrid creates a lattice covering w x h with one extra column and row
// so the far edges are always covered.
func NewWarpGrid(w, h float64, p GridParams) *WarpGrid {
	cols := int(math.Ceil(w/p.Spacing)) + 1
	rows := int(math.Ceil(h/p.Spacing)) + 1

	points := make([]GridPoint, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			o := r2.Vec{X: float64(x) * p.Spacing, Y: float64(y) * p.Spacing}
			points = append(points, GridPoint{Origin: o, Pos: o})
		}
	}

	return &WarpGrid{
		params: p,
		width:  w,
		height: h,
		cols:   cols,
		rows:   rows,
		points: points,
		waves:  make([]Shockwave, 0, 16),
	}
}

// ApplyForce pushes every point within radius of (x, y) away from the source
// with linear falloff: (1 - dist/radius) * force. Negative force pulls inward.
// Points at the source itself have no direction and are left alone.
func (g *WarpGrid) ApplyForce(x, y, radius, force float64) {
	if radius <= 0 || force == 0 {
		return
	}
	src := r2.Vec{X: x, Y: y}
	radiusSq := radius * radius

	for i := range g.points {
		p := &g.points[i]
		d := r2.Sub(p.Pos, src)
		distSq := r2.Norm2(d)
		if distSq >= radiusSq {
			continue
		}
		dist := math.Sqrt(distSq)
		if dist <= 0.001 {
			continue
		}
		f := (1 - dist/radius) * force
		p.Vel = r2.Add(p.Vel, r2.Scale(f/dist, d))
	}
}

// AddColorShockwave registers an expanding ring. Hue < 0 draws white.
func (g *WarpGrid) AddColorShockwave(x, y, radius, hue, life, width float64) {
	if life <= 0 || radius <= 0 {
		return
	}
	g.waves = append(g.waves, newShockwave(r2.Vec{X: x, Y: y}, radius, hue, life, width))
}

// Update advances the lattice one fixed spring step per frame; dt only ages
// the shockwaves. The lattice keeps its own pace through aim slow motion.
func (g *WarpGrid) Update(dt float64) {
	spring := g.params.Spring
	damping := g.params.Damping
	for i := range g.points {
		p := &g.points[i]
		p.Vel = r2.Add(p.Vel, r2.Scale(spring, r2.Sub(p.Origin, p.Pos)))
		p.Vel = r2.Scale(damping, p.Vel)
		p.Pos = r2.Add(p.Pos, p.Vel)
	}

	// Compact live shockwaves in place
	alive := 0
	for i := range g.waves {
		if !g.waves[i].advance(dt) {
			continue
		}
		g.waves[alive] = g.waves[i]
		alive++
	}
	g.waves = g.waves[:alive]
}

// Reset returns every point to rest and drops all shockwaves.
func (g *WarpGrid) Reset() {
	for i := range g.points {
		g.points[i].Pos = g.points[i].Origin
		g.points[i].Vel = r2.Vec{}
	}
	g.waves = g.waves[:0]
}

// Strength returns the distortion coefficient k for a level in [0, 1].
func (g *WarpGrid) Strength(level float64) float64 {
	return g.params.KBase + level*g.params.KPerLevel
}

// DistortedPoint maps a lattice-space point to where it appears on screen.
func (g *WarpGrid) DistortedPoint(x, y, cx, cy, level float64) r2.Vec {
	return Distort(r2.Vec{X: x, Y: y}, r2.Vec{X: cx, Y: cy}, g.Strength(level))
}

// InverseDistortedPoint maps a screen point back to lattice space. The scale
// factor converts screen-space lengths near that point to lattice-space lengths.
func (g *WarpGrid) InverseDistortedPoint(sx, sy, cx, cy, level float64) (r2.Vec, float64) {
	return Undistort(r2.Vec{X: sx, Y: sy}, r2.Vec{X: cx, Y: cy}, g.Strength(level))
}

// DisplayPoints writes the distorted position of every lattice point into dst,
// growing it as needed, and returns it.
func (g *WarpGrid) DisplayPoints(dst []r2.Vec, cx, cy, level float64) []r2.Vec {
	if cap(dst) < len(g.points) {
		dst = make([]r2.Vec, len(g.points))
	}
	dst = dst[:len(g.points)]
	c := r2.Vec{X: cx, Y: cy}
	k := g.Strength(level)
	for i := range g.points {
		dst[i] = Distort(g.points[i].Pos, c, k)
	}
	return dst
}

// Displacement returns the largest point displacement from rest.
func (g *WarpGrid) Displacement() float64 {
	maxD := 0.0
	for i := range g.points {
		if d := g.points[i].Displacement(); d > maxD {
			maxD = d
		}
	}
	return maxD
}

// Points returns the lattice points in row-major order. Read only.
func (g *WarpGrid) Points() []GridPoint { return g.points }

// Shockwaves returns the live shockwaves. Read only.
func (g *WarpGrid) Shockwaves() []Shockwave { return g.waves }

// Cols returns the number of lattice columns.
func (g *WarpGrid) Cols() int { return g.cols }

// Rows returns the number of lattice rows.
func (g *WarpGrid) Rows() int { return g.rows }

// Params returns the grid tuning.
func (g *WarpGrid) Params() GridParams { return g.params }

// Distort applies the radial fisheye p' = c + d*(1 + |d|*k).
func Distort(p, c r2.Vec, k float64) r2.Vec {
	d := r2.Sub(p, c)
	return r2.Add(c, r2.Scale(1+r2.Norm(d)*k, d))
}

// Undistort inverts Distort by solving k*r^2 + r - rs = 0 for the lattice
// radius r. It returns the lattice point and the ratio r/rs.
func Undistort(s, c r2.Vec, k float64) (r2.Vec, float64) {
	d := r2.Sub(s, c)
	rs := r2.Norm(d)
	if rs < 0.001 {
		return c, 1
	}
	if k <= 0 {
		return s, 1
	}
	r := (-1 + math.Sqrt(1+4*k*rs)) / (2 * k)
	scale := r / rs
	return r2.Add(c, r2.Scale(scale, d)), scale
}
