package game

import (
	"log/slog"

	"github.com/Angleito/seiron-orbs/components"
	"github.com/Angleito/seiron-orbs/systems"
)

// baseAngularSpeed converts the configured speed multiplier into radians per
// second for the innermost orb.
const baseAngularSpeed = 1.0

// orbMass is uniform across the cluster; collision response still carries
// masses so a future non-uniform cluster only changes this spot.
const orbMass = 1.0

// spawnOrbs creates the configured orb cluster. Orbits are deterministic in
// (index, count); no randomness enters the cluster.
func (l *Loop) spawnOrbs() {
	cfg := l.cfg
	count := cfg.Orbs.Count

	for i := 0; i < count; i++ {
		orbit := systems.GenerateOrbit(
			i, count,
			cfg.Derived.OrbitRadius32,
			float32(cfg.Orbs.Speed)*baseAngularSpeed,
			cfg.Orbs.Pattern,
		)

		ox, oy := systems.OrbitPosition(orbit, cfg.Orbs.Pattern, 0)
		pos := components.Position{X: cfg.Derived.CenterX + ox, Y: cfg.Derived.CenterY + oy}
		vel := components.Velocity{}
		rot := components.Rotation{Angle: orbit.Phase, AngVel: orbit.Speed}
		body := components.Body{Radius: cfg.Derived.OrbRadius32, Mass: orbMass}
		trail := components.Trail{}
		inter := components.Interaction{}

		e := l.orbMapper.NewEntity(&pos, &vel, &rot, &body, &orbit, &trail, &inter)
		l.orbs = append(l.orbs, e)
	}
}

// resetOrb deterministically rebuilds one orb's state from its orbit
// parameters at the current simulation time. Used when a non-finite value is
// detected and when a dormant orb rejoins the cluster; only this orb is
// touched, the rest of the simulation is unaffected.
func (l *Loop) resetOrb(e int) {
	cfg := l.cfg
	entity := l.orbs[e]

	orbit := l.orbitMap.Get(entity)
	pos := l.posMap.Get(entity)
	vel := l.velMap.Get(entity)
	rot := l.rotMap.Get(entity)
	trail := l.trailMap.Get(entity)

	ox, oy := systems.OrbitPosition(*orbit, cfg.Orbs.Pattern, l.orbitClock)
	pos.X = cfg.Derived.CenterX + ox
	pos.Y = cfg.Derived.CenterY + oy
	vel.X = 0
	vel.Y = 0
	rot.Angle = orbit.Phase + orbit.Speed*l.orbitClock
	rot.AngVel = orbit.Speed
	trail.Reset()
}

// applyOrbCap parks orbs beyond the tier's cap instead of destroying them:
// a later tier upgrade restores each orb onto its own orbit. Highest-index
// orbs go dormant first.
func (l *Loop) applyOrbCap(maxOrbs int) {
	for i, entity := range l.orbs {
		inter := l.interMap.Get(entity)
		dormant := i >= maxOrbs
		if inter.Dormant == dormant {
			continue
		}
		inter.Dormant = dormant
		inter.Hovered = false
		if dormant {
			l.trailMap.Get(entity).Reset()
		} else {
			l.resetOrb(i)
		}
	}
}

// Reconfigure regenerates every orb's orbit from a new base radius and speed
// multiplier. Orbit identity (index, phase) is preserved; orbs spring to the
// resized paths instead of teleporting.
func (l *Loop) Reconfigure(orbitRadius, speed float64) {
	if l.state == loopStopped {
		return
	}
	cfg := l.cfg
	if orbitRadius > 0 {
		cfg.Orbs.OrbitRadius = orbitRadius
		cfg.Derived.OrbitRadius32 = float32(orbitRadius)
	}
	if speed > 0 {
		cfg.Orbs.Speed = speed
	}

	count := len(l.orbs)
	for i, entity := range l.orbs {
		orbit := l.orbitMap.Get(entity)
		*orbit = systems.GenerateOrbit(
			i, count,
			cfg.Derived.OrbitRadius32,
			float32(cfg.Orbs.Speed)*baseAngularSpeed,
			cfg.Orbs.Pattern,
		)
		l.rotMap.Get(entity).AngVel = orbit.Speed
	}
}

// recoverCorrupted scans for non-finite orb state after integration and
// resets affected orbs in isolation.
func (l *Loop) recoverCorrupted() {
	for i, entity := range l.orbs {
		pos := l.posMap.Get(entity)
		vel := l.velMap.Get(entity)
		if systems.Corrupted(pos, vel) {
			slog.Warn("resetting corrupted orb", "orb", i, "frame", l.frame)
			l.resetOrb(i)
		}
	}
}
