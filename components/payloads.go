package components

import "gonum.org/v1/gonum/spatial/r2"

// Shooter fires aimed shots on a timer.
type Shooter struct {
	FireTimer float64 `inspect:"bar,max:100"`
}

// Phantom fades in and out; it is harmless and undashable while faded.
type Phantom struct {
	Phase float64 `inspect:"angle"`
}

// Singularity warps the grid and drags the player after warming up.
type Singularity struct {
	Warmup float64 `inspect:"bar,max:60"`
}

// Glitch survives hits by teleporting while it has lives left.
type Glitch struct {
	Lives int `inspect:"label"`
}

// Warden is the boss: rotating shield arcs and homing volleys.
type Warden struct {
	Shields    []float64 `inspect:"label,fmt:%.2f"` // Arc start angles
	ShootTimer float64   `inspect:"bar,max:120"`
}

// JousterState is a step in the jouster's attack cycle.
type JousterState uint8

const (
	JousterTrack     JousterState = iota // Steer toward the player
	JousterTelegraph                     // Hold still with a locked direction, invulnerable
	JousterDash                          // Charge along the locked direction
)

// String returns the state name.
func (s JousterState) String() string {
	switch s {
	case JousterTrack:
		return "track"
	case JousterTelegraph:
		return "telegraph"
	case JousterDash:
		return "dash"
	}
	return "unknown"
}

// Jouster cycles track -> telegraph -> dash.
type Jouster struct {
	State JousterState `inspect:"label"`
	Timer float64      `inspect:"bar,max:120"`
	Dir   r2.Vec       `inspect:"vec"`
}
