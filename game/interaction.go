package game

// Excitation is the opaque excitation state supplied by the host's mascot
// behavior layer. It only scales gravity and orbit speed here.
type Excitation int

// Excitation states, calmest first.
const (
	ExcitationIdle Excitation = iota
	ExcitationReady
	ExcitationActive
	ExcitationPoweringUp
)

// String returns the excitation state name.
func (e Excitation) String() string {
	switch e {
	case ExcitationIdle:
		return "idle"
	case ExcitationReady:
		return "ready"
	case ExcitationActive:
		return "active"
	case ExcitationPoweringUp:
		return "powering-up"
	default:
		return "unknown"
	}
}

// speedMultiplier scales orbital speed by excitation.
func (e Excitation) speedMultiplier() float32 {
	switch e {
	case ExcitationReady:
		return 1.25
	case ExcitationActive:
		return 1.6
	case ExcitationPoweringUp:
		return 2.0
	default:
		return 1.0
	}
}

// gravityMultiplier scales the pull toward the center. Gravity only engages
// at active excitation and above.
func (e Excitation) gravityMultiplier() float32 {
	switch e {
	case ExcitationActive:
		return 1.0
	case ExcitationPoweringUp:
		return 1.5
	default:
		return 0
	}
}

// repulsionSource is a short-lived pointer/tap repulsion point. Sources are
// written by event handlers via AddRepulsion, read once per frame by the loop,
// and expired by the loop itself after the effect window elapses. The event
// handler never clears them, so event delivery cannot race the frame that
// consumes the source.
type repulsionSource struct {
	x, y      float32
	strength  float32
	expiresAt float32 // simulation time in seconds
}

// SetExcitation updates the excitation state used from the next frame on.
func (l *Loop) SetExcitation(e Excitation) {
	l.excitation = e
}

// Excitation returns the current excitation state.
func (l *Loop) Excitation() Excitation {
	return l.excitation
}

// AddRepulsion registers a repulsion source at the given position. The source
// stays live for the configured effect window (~500ms) of simulation time.
// Ignored when interaction is disabled.
func (l *Loop) AddRepulsion(x, y float32) {
	if !l.cfg.Orbs.Interaction || l.state == loopStopped {
		return
	}
	l.repulsions = append(l.repulsions, repulsionSource{
		x:         x,
		y:         y,
		strength:  float32(l.cfg.Forces.RepulsionStrength),
		expiresAt: l.simTime + l.cfg.Derived.RepulsionTTL32,
	})
}

// SetHovered marks one orb as hovered. Hover suspends the spring term so the
// external lift is not fought, and applies the lift acceleration. Ignored for
// out-of-range indices.
func (l *Loop) SetHovered(index int, hovered bool) {
	if !l.cfg.Orbs.Interaction || index < 0 || index >= len(l.orbs) {
		return
	}
	if inter := l.interMap.Get(l.orbs[index]); inter != nil {
		inter.Hovered = hovered
	}
}

// pruneRepulsions drops sources whose effect window has elapsed. Runs once
// per frame before forces are computed; retains live sources in place.
func (l *Loop) pruneRepulsions() {
	live := l.repulsions[:0]
	for _, src := range l.repulsions {
		if src.expiresAt > l.simTime {
			live = append(live, src)
		}
	}
	l.repulsions = live
}
