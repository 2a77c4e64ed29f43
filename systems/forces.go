package systems

// Force model: pure vector-valued functions, each returning a 2D acceleration
// contribution. The net acceleration for an orb in a frame is the sum of all
// applicable terms. Every inverse-square term clamps its distance to a floor
// before dividing, so NaN/Inf never enters position or velocity state.

// Spring returns the acceleration pulling a point toward a target,
// proportional to displacement: -k * (current - target).
func Spring(px, py, tx, ty, k float32) (ax, ay float32) {
	return -k * (px - tx), -k * (py - ty)
}

// Gravity returns the inverse-square acceleration attracting a point toward
// the center. strength scales the product of masses; the distance is clamped
// to minDist to avoid the singularity at the center.
func Gravity(px, py, cx, cy, mass, centerMass, strength, minDist float32) (ax, ay float32) {
	dx := cx - px
	dy := cy - py
	d := velocityMagnitude(dx, dy)
	if d < minDist {
		d = minDist
	}
	// a = G * M / d^2 along the unit vector toward the center; the orb's own
	// mass cancels but is kept for non-unit masses feeding collision response.
	a := strength * centerMass * mass / (d * d * mass)
	return a * dx / d, a * dy / d
}

// Repulsion returns the inverse-square acceleration pushing a point away from
// an interaction source. The caller decides whether the source is still within
// its effect window; this function only shapes the field.
func Repulsion(px, py, sx, sy, strength, minDist float32) (ax, ay float32) {
	dx := px - sx
	dy := py - sy
	d := velocityMagnitude(dx, dy)
	if d < minDist {
		d = minDist
	}
	a := strength / (d * d)
	return a * dx / d, a * dy / d
}
