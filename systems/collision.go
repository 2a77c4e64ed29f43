package systems

import "github.com/Angleito/seiron-orbs/components"

// Elastic two-body collision response. Pairs are only ever evaluated when the
// spatial grid reported them as neighbors, so this stays O(n) in practice.

// Colliding reports whether two orbs overlap: center distance below the sum
// of their radii.
func Colliding(p1, p2 *components.Position, b1, b2 *components.Body) bool {
	r := b1.Radius + b2.Radius
	return distanceSq(p1.X, p1.Y, p2.X, p2.Y) < r*r
}

// ResolveCollision applies an elastic collision response to two overlapping
// orbs: the velocity components along the collision normal are exchanged
// (mass-weighted when masses differ) and the bodies are separated so they do
// not re-collide next frame. Total momentum is conserved.
func ResolveCollision(p1, p2 *components.Position, v1, v2 *components.Velocity, b1, b2 *components.Body) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	d := velocityMagnitude(dx, dy)
	if d == 0 {
		// Coincident centers: pick a stable axis rather than dividing by zero.
		dx, dy, d = 1, 0, 1
	}
	nx := dx / d
	ny := dy / d

	// Relative velocity along the normal; separating pairs need no response.
	rvn := (v2.X-v1.X)*nx + (v2.Y-v1.Y)*ny
	if rvn > 0 {
		return
	}

	m1 := b1.Mass
	m2 := b2.Mass
	// Elastic impulse magnitude for a head-on exchange along the normal.
	j := -2 * rvn / (1/m1 + 1/m2)

	v1.X -= j / m1 * nx
	v1.Y -= j / m1 * ny
	v2.X += j / m2 * nx
	v2.Y += j / m2 * ny

	// Positional correction: push both orbs out of overlap along the normal,
	// split by inverse mass.
	overlap := (b1.Radius + b2.Radius) - d
	if overlap > 0 {
		total := 1/m1 + 1/m2
		p1.X -= nx * overlap * (1 / m1) / total
		p1.Y -= ny * overlap * (1 / m1) / total
		p2.X += nx * overlap * (1 / m2) / total
		p2.Y += ny * overlap * (1 / m2) / total
	}
}
