package systems

import (
	"math"

	"github.com/Angleito/seiron-orbs/components"
	"github.com/Angleito/seiron-orbs/config"
)

// Orbit parameter generation. GenerateOrbit is pure and deterministic in
// (index, total): the same inputs always produce the same orbit, which is what
// lets a corrupted orb be rebuilt from its index alone.

const (
	// orbitNesting spaces successive orbits outward from the base radius.
	orbitNesting = 0.12
	// orbitSpeedSpread desynchronizes angular speeds so nested orbits drift
	// apart visually instead of rotating as a rigid ring.
	orbitSpeedSpread = 0.08
)

// GenerateOrbit assigns the orbit for orb index out of total (total in [1,7]).
// Phase offsets are distinct for every index below total, giving each orb of a
// cluster visually distinct motion without randomness.
func GenerateOrbit(index, total int, baseRadius, baseSpeed float32, pattern config.Pattern) components.Orbit {
	if total < 1 {
		total = 1
	}

	phase := 2 * math.Pi * float64(index) / float64(total)

	var ecc float32
	switch pattern {
	case config.PatternElliptical:
		ecc = 0.25 + 0.04*float32(index)
	case config.PatternChaotic:
		ecc = 0.15 + 0.05*float32(index%3)
	default:
		// circular and figure-eight paths carry no eccentricity
	}

	return components.Orbit{
		Index:         index,
		SemiMajorAxis: baseRadius * (1 + orbitNesting*float32(index)),
		Eccentricity:  ecc,
		Phase:         float32(phase),
		Speed:         baseSpeed * (1 + orbitSpeedSpread*float32(index)),
	}
}

// OrbitPosition returns the ideal orbit position relative to the cluster
// center at simulation time t, for the given pattern.
func OrbitPosition(o components.Orbit, pattern config.Pattern, t float32) (x, y float32) {
	theta := float64(o.Phase + o.Speed*t)
	a := float64(o.SemiMajorAxis)

	switch pattern {
	case config.PatternElliptical:
		b := a * math.Sqrt(1-float64(o.Eccentricity)*float64(o.Eccentricity))
		return float32(a * math.Cos(theta)), float32(b * math.Sin(theta))

	case config.PatternFigureEight:
		// Lissajous 1:2 lobe through the center
		return float32(a * math.Sin(theta)), float32(a * math.Sin(2*theta) / 2)

	case config.PatternChaotic:
		// Superpose an incommensurate harmonic on the base ellipse; the golden
		// ratio keeps the path from ever closing.
		const phi = 1.618033988749895
		b := a * math.Sqrt(1-float64(o.Eccentricity)*float64(o.Eccentricity))
		x := a*math.Cos(theta) + 0.25*a*math.Cos(phi*theta+float64(o.Phase))
		y := b*math.Sin(theta) + 0.25*b*math.Sin(phi*theta)
		return float32(x), float32(y)

	default: // circular
		return float32(a * math.Cos(theta)), float32(a * math.Sin(theta))
	}
}

// OrbitPeriod returns the time for one full revolution of the base harmonic.
func OrbitPeriod(o components.Orbit) float32 {
	speed := o.Speed
	if speed < 0 {
		speed = -speed
	}
	if speed == 0 {
		return 0
	}
	return float32(2 * math.Pi / float64(speed))
}
