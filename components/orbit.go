package components

// Body holds physical properties of an orb.
type Body struct {
	Radius float32
	Mass   float32 // always > 0
}

// Orbit holds the parameters of an orb's ideal orbital path.
// Generated once from (index, total) at spawn and never mutated,
// so a corrupted orb can always be reset from them.
type Orbit struct {
	Index         int     // orb index within the cluster
	SemiMajorAxis float32 // pixels
	Eccentricity  float32 // 0 = circular
	Phase         float32 // radians, unique per orb within a cluster
	Speed         float32 // base angular speed (radians per second)
}

// Interaction holds per-orb interaction state set by the host.
type Interaction struct {
	Hovered bool // suspends the orbital spring so lift is not fought
	Dormant bool // parked by the quality tier orb cap; skipped entirely
}
