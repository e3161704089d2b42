package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// minDirLen is the shortest vector that still has a usable direction.
const minDirLen = 1e-9

// LineCircleCollide reports whether the segment a-b passes within r of c.
// The projection of c onto the segment is clamped to [0, 1]; a zero-length
// segment degrades to a point test at a.
func LineCircleCollide(a, b, c r2.Vec, r float64) bool {
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)

	closest := a
	if lenSq := r2.Norm2(ab); lenSq > minDirLen {
		t := r2.Dot(ac, ab) / lenSq
		switch {
		case t > 1:
			closest = b
		case t > 0:
			closest = r2.Add(a, r2.Scale(t, ab))
		}
	}
	return distanceSq(c, closest) < r*r
}

// Direction returns the unit vector from a to b and the distance between
// them. ok is false when the points coincide.
func Direction(a, b r2.Vec) (dir r2.Vec, dist float64, ok bool) {
	d := r2.Sub(b, a)
	dist = r2.Norm(d)
	if dist < minDirLen {
		return r2.Vec{}, 0, false
	}
	return r2.Scale(1/dist, d), dist, true
}

// AngleTo returns the bearing from a to b.
func AngleTo(a, b r2.Vec) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// ShieldBlocks reports whether a shield centered on bearerAngle with the
// given half-width covers a threat arriving from threatAngle.
func ShieldBlocks(bearerAngle, halfWidth, threatAngle float64) bool {
	return math.Abs(NormalizeAngle(threatAngle-bearerAngle)) < halfWidth
}

// ArcShieldBlocks checks warden-style shields: each start angle s spans
// [s, s+arc], so its center is s + arc/2. Any arc covering the threat blocks.
func ArcShieldBlocks(starts []float64, arc, threatAngle float64) bool {
	half := arc / 2
	for _, s := range starts {
		if ShieldBlocks(s+half, half, threatAngle) {
			return true
		}
	}
	return false
}

// TurnToward rotates current toward target by at most maxStep radians.
func TurnToward(current, target, maxStep float64) float64 {
	diff := NormalizeAngle(target - current)
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	return current + diff
}
