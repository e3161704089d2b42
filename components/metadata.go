package components

import (
	"image/color"
	"math"
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	if k == KindShielded {
		return "shielded"
	}
	return "unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"basic", "shooter", "phantom", "singularity", "warden", "glitch", "jouster"}
}

// DeathReason returns the game over cause shown when an enemy of this kind
// touches the player.
func (k Kind) DeathReason() string {
	switch k {
	case KindBasic:
		return "CORRUPTED SECTOR"
	case KindShooter:
		return "VIRUS SHOOTER"
	case KindPhantom:
		return "PHANTOM PROCESS"
	case KindSingularity:
		return "SINGULARITY"
	case KindWarden:
		return "THE WARDEN"
	case KindGlitch:
		return "RUNTIME ERROR"
	case KindJouster:
		return "LANCE PROTOCOL"
	}
	return "UNKNOWN PROCESS"
}

// Fixed causes that do not come from enemy contact.
const (
	ReasonProjectile  = "LOGIC BOMB"
	ReasonMine        = "DATA MINE"
	ReasonContainment = "CONTAINMENT FIELD"
)

// Palette colors shared by the simulation (confetti) and the renderer.
var (
	ColorBasic       = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	ColorShooter     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ColorPhantom     = color.RGBA{R: 120, G: 160, B: 255, A: 255}
	ColorSingularity = color.RGBA{R: 255, G: 136, B: 0, A: 255}
	ColorWarden      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorGlitch      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorJouster     = color.RGBA{R: 0, G: 136, B: 255, A: 255}
	ColorShielded    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorMine        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorSpark       = color.RGBA{R: 255, G: 170, B: 0, A: 255} // Destroyed projectiles
	ColorStun        = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// KindColor returns the base color of a kind.
func KindColor(k Kind) color.RGBA {
	switch k {
	case KindBasic:
		return ColorBasic
	case KindShooter:
		return ColorShooter
	case KindPhantom:
		return ColorPhantom
	case KindSingularity:
		return ColorSingularity
	case KindWarden:
		return ColorWarden
	case KindGlitch:
		return ColorGlitch
	case KindJouster:
		return ColorJouster
	case KindShielded:
		return ColorShielded
	}
	return ColorShielded
}

// HueColor converts a hue in degrees to a saturated color.
func HueColor(hue float64) color.RGBA {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	x := 1 - math.Abs(math.Mod(h/60, 2)-1)
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = 1, x, 0
	case h < 120:
		r, g, b = x, 1, 0
	case h < 180:
		r, g, b = 0, 1, x
	case h < 240:
		r, g, b = 0, x, 1
	case h < 300:
		r, g, b = x, 0, 1
	default:
		r, g, b = 1, 0, x
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
