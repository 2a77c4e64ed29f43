package systems

import (
	"math"

	"github.com/Angleito/seiron-orbs/components"
)

// Semi-implicit Euler integration: velocity is advanced first, then position
// uses the new velocity. Exactly one step runs per rendered frame.

// ClampDT bounds a frame delta to [0, maxDT] seconds. Tab-resume and
// frame-drop spikes arrive as huge deltas; clamping absorbs them without
// producing positional discontinuities.
func ClampDT(dt, maxDT float32) float32 {
	return clampFloat(dt, 0, maxDT)
}

// Integrate advances one orb by one step under the summed acceleration
// (ax, ay). dt must already be clamped by the caller. Velocity is damped
// exponentially and clamped to maxSpeed.
func Integrate(pos *components.Position, vel *components.Velocity, ax, ay, dt, damping, maxSpeed float32) {
	vel.X += ax * dt
	vel.Y += ay * dt

	if damping > 0 {
		f := float32(math.Exp(-float64(damping * dt)))
		vel.X *= f
		vel.Y *= f
	}

	speed := velocityMagnitude(vel.X, vel.Y)
	if speed > maxSpeed {
		scale := maxSpeed / speed
		vel.X *= scale
		vel.Y *= scale
	}

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// AdvanceAngle advances a kinematic (non-physics) orb: the angle moves by
// angular velocity directly and the position is not touched here.
func AdvanceAngle(rot *components.Rotation, dt float32) {
	rot.Angle += rot.AngVel * dt
	const twoPi = 2 * math.Pi
	for rot.Angle >= twoPi {
		rot.Angle -= twoPi
	}
	for rot.Angle < 0 {
		rot.Angle += twoPi
	}
}

// Corrupted reports whether an orb's state has left the finite domain.
// A corrupted orb must be reset in isolation; its state would otherwise
// poison every later frame it participates in.
func Corrupted(pos *components.Position, vel *components.Velocity) bool {
	return !Finite2(pos.X, pos.Y) || !Finite2(vel.X, vel.Y)
}
