package game

import (
	"log/slog"
	"time"

	"github.com/Angleito/seiron-orbs/systems"
)

// Tick advances the simulation by one rendered frame, deriving dt from the
// monotonic clock. No-op while hidden or stopped.
func (l *Loop) Tick() {
	if l.state == loopStopped || l.run == nil {
		return
	}

	now := time.Now()
	if l.run.lastFrame.IsZero() {
		// Fresh runner: no baseline yet, establish one and skip the step so a
		// resume never integrates across the hidden gap.
		l.run.lastFrame = now
		return
	}

	dt := float32(now.Sub(l.run.lastFrame).Seconds())
	l.run.lastFrame = now
	l.Step(dt)
}

// Step advances the simulation by a raw frame delta in seconds. The delta is
// sampled for metrics as-is and clamped for integration. Exactly one
// integration step runs per call.
//
// Phase ordering is fixed: metrics update strictly before the performance
// mode is re-derived, which is strictly before this frame's force
// computation. A tier change is therefore visible no earlier than the frame
// after the metrics window that produced it.
func (l *Loop) Step(dt float32) {
	if l.state == loopStopped {
		return
	}

	// 1. Feed the monitor the raw delta; on a window boundary re-derive mode.
	if l.monitor.Sample(time.Duration(float64(dt) * float64(time.Second))) {
		l.onMetricsWindow()
	}

	// 2. Advance simulation time under the clamped step. The orbit clock runs
	// faster under excitation, which is what speeds the ideal orbit targets up.
	step := systems.ClampDT(dt, l.cfg.Derived.MaxDT32)
	l.simTime += step
	l.orbitClock += step * l.excitation.speedMultiplier()

	// 3. Expire interaction sources whose window has elapsed.
	l.pruneRepulsions()

	features := FeaturesFor(l.controller.Mode())

	if l.cfg.Physics.Enabled {
		l.stepPhysics(step, features)
	} else {
		l.stepKinematic(step, features)
	}

	l.frame++
}

// onMetricsWindow runs once per completed metrics window: quality tier
// re-derivation, orb cap application, and telemetry output.
func (l *Loop) onMetricsWindow() {
	m := l.monitor.Metrics()
	prev, changed := l.controller.Update(m.QualityScore)
	mode := l.controller.Mode()

	if changed {
		l.applyOrbCap(FeaturesFor(mode).MaxOrbs)
		slog.Info("quality tier change",
			"score", m.QualityScore,
			"from", prev.String(),
			"to", mode.String(),
		)
		if err := l.output.WriteModeChange(l.frame, m.QualityScore, prev.String(), mode.String()); err != nil {
			slog.Warn("failed to write mode change", "error", err)
		}
	}

	if l.logStats {
		slog.Info("perf", "metrics", m, "mode", mode.String())
	}
	if err := l.output.WriteMetrics(m, l.frame, mode.String()); err != nil {
		slog.Warn("failed to write metrics", "error", err)
	}
}

// stepPhysics runs the force-based simulation phases for one clamped step.
func (l *Loop) stepPhysics(dt float32, features Features) {
	cfg := l.cfg
	speedMult := l.excitation.speedMultiplier()
	gravMult := l.excitation.gravityMultiplier()

	// Rebuild the spatial grid before anything queries it this frame.
	l.grid.Clear()
	for _, entity := range l.orbs {
		if l.interMap.Get(entity).Dormant {
			continue
		}
		pos := l.posMap.Get(entity)
		l.grid.Add(entity, pos.X, pos.Y)
	}

	// Force summation + integration, one step per orb.
	for _, entity := range l.orbs {
		inter := l.interMap.Get(entity)
		if inter.Dormant {
			continue
		}

		pos := l.posMap.Get(entity)
		vel := l.velMap.Get(entity)
		rot := l.rotMap.Get(entity)
		body := l.bodyMap.Get(entity)
		orbit := l.orbitMap.Get(entity)

		// Ideal orbit position advances with excitation-scaled speed.
		rot.AngVel = orbit.Speed * speedMult
		tx, ty := systems.OrbitPosition(*orbit, cfg.Orbs.Pattern, l.orbitClock)
		tx += cfg.Derived.CenterX
		ty += cfg.Derived.CenterY

		var ax, ay float32

		// Orbital spring, suspended while hovered so lift is not fought.
		if !inter.Hovered {
			sx, sy := systems.Spring(pos.X, pos.Y, tx, ty, float32(cfg.Forces.SpringStiffness))
			ax += sx
			ay += sy
		} else {
			ay -= float32(cfg.Forces.HoverLift)
		}

		// Center gravity engages with excitation.
		if gravMult > 0 {
			gx, gy := systems.Gravity(
				pos.X, pos.Y,
				cfg.Derived.CenterX, cfg.Derived.CenterY,
				body.Mass, float32(cfg.Forces.CenterMass),
				float32(cfg.Forces.GravityStrength)*gravMult,
				cfg.Derived.MinDistance32,
			)
			ax += gx
			ay += gy
		}

		// Live pointer repulsion sources.
		for _, src := range l.repulsions {
			rx, ry := systems.Repulsion(pos.X, pos.Y, src.x, src.y, src.strength, cfg.Derived.MinDistance32)
			ax += rx
			ay += ry
		}

		systems.Integrate(pos, vel, ax, ay, dt, float32(cfg.Physics.Damping), cfg.Derived.MaxSpeed32)
	}

	// Non-finite state is repaired before it can reach collision response.
	l.recoverCorrupted()

	if features.Collision {
		l.resolveCollisions()
	}

	if features.Trails {
		l.pushTrails()
	}
}

// stepKinematic advances orbs along their circular paths directly: angle
// moves by angular velocity, no forces, no collisions.
func (l *Loop) stepKinematic(dt float32, features Features) {
	cfg := l.cfg
	speedMult := l.excitation.speedMultiplier()

	for _, entity := range l.orbs {
		if l.interMap.Get(entity).Dormant {
			continue
		}

		pos := l.posMap.Get(entity)
		rot := l.rotMap.Get(entity)
		orbit := l.orbitMap.Get(entity)

		rot.AngVel = orbit.Speed * speedMult
		systems.AdvanceAngle(rot, dt)

		kin := *orbit
		kin.Phase = rot.Angle
		kin.Speed = 0
		x, y := systems.OrbitPosition(kin, cfg.Orbs.Pattern, 0)
		pos.X = cfg.Derived.CenterX + x
		pos.Y = cfg.Derived.CenterY + y
	}

	if features.Trails {
		l.pushTrails()
	}
}

// resolveCollisions runs elastic collision response for grid-nearby pairs.
// Each unordered pair is processed at most once per frame.
func (l *Loop) resolveCollisions() {
	for _, entity := range l.orbs {
		if l.interMap.Get(entity).Dormant {
			continue
		}
		pos := l.posMap.Get(entity)

		l.neighborBuf = l.neighborBuf[:0]
		l.neighborBuf = l.grid.QueryNearbyInto(l.neighborBuf, pos.X, pos.Y, entity)

		for _, other := range l.neighborBuf {
			// Process each pair once: lower entity id owns the pair.
			if other.ID() <= entity.ID() {
				continue
			}
			oPos := l.posMap.Get(other)
			body := l.bodyMap.Get(entity)
			oBody := l.bodyMap.Get(other)

			if !systems.Colliding(pos, oPos, body, oBody) {
				continue
			}
			systems.ResolveCollision(pos, oPos, l.velMap.Get(entity), l.velMap.Get(other), body, oBody)
		}
	}
}

// pushTrails records the frame's final positions into each active orb's trail.
func (l *Loop) pushTrails() {
	for _, entity := range l.orbs {
		if l.interMap.Get(entity).Dormant {
			continue
		}
		pos := l.posMap.Get(entity)
		l.trailMap.Get(entity).Push(pos.X, pos.Y)
	}
}
