package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp limits v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampToArena keeps p inside [margin, w-margin] x [margin, h-margin].
func ClampToArena(p r2.Vec, w, h, margin float64) r2.Vec {
	return r2.Vec{
		X: Clamp(p.X, margin, w-margin),
		Y: Clamp(p.Y, margin, h-margin),
	}
}

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// distanceSq returns the squared distance between two points.
func distanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(a, b))
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}
