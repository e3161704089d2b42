// Package components defines ECS components for arena entities.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind tags an enemy with exactly one behavior.
type Kind uint8

const (
	KindBasic Kind = iota
	KindShooter
	KindPhantom
	KindSingularity
	KindWarden
	KindGlitch
	KindJouster
	NumKinds
)

// KindShielded requests a basic enemy carrying a shield. It is a spawn
// species, never the kind of a live enemy.
const KindShielded = NumKinds

// Position represents an entity's arena position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Set overwrites the position.
func (p *Position) Set(v r2.Vec) { p.X, p.Y = v.X, v.Y }

// Velocity represents an entity's velocity in arena units per tick.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// Set overwrites the velocity.
func (v *Velocity) Set(u r2.Vec) { v.X, v.Y = u.X, u.Y }

// Enemy holds the state shared by every enemy kind. Kind-specific state
// lives in a payload component.
type Enemy struct {
	ID          uint32     `inspect:"label"`
	Kind        Kind       `inspect:"skip"`
	Radius      float64    `inspect:"label,fmt:%.0f"`
	Speed       float64    `inspect:"bar,max:8"`
	Color       color.RGBA `inspect:"skip"`
	Stunned     float64    `inspect:"bar,max:120"`
	Invuln      float64    `inspect:"bar,max:30"`
	HitCooldown float64    `inspect:"skip"`
	HasShield   bool       `inspect:"bool"`
	ShieldAngle float64    `inspect:"angle"`
	Opacity     float64    `inspect:"bar,max:1"`
	Visual      r2.Vec     `inspect:"skip"` // Forward-distorted position, set by kinds that warp the grid
	HasVisual   bool       `inspect:"skip"`
	LastBlock   float64    `inspect:"skip"` // Frame of the last echo deflect cue
}

// HitPos returns the position used for hit tests.
func (e *Enemy) HitPos(pos Position) r2.Vec {
	if e.HasVisual {
		return e.Visual
	}
	return pos.Vec()
}

// Mine is a static hazard.
type Mine struct {
	Radius float64
}

// Projectile is an enemy shot.
type Projectile struct {
	Radius   float64
	Life     float64
	Tracking bool    // Homes on the player using unscaled time
	MaxSpeed float64 // Tracking speed cap
}
