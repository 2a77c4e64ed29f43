package components

// Position represents an orb's position in screen space.
type Position struct {
	X, Y float32
}

// Velocity represents an orb's velocity.
type Velocity struct {
	X, Y float32
}

// Rotation represents an orb's orbital angle and angular velocity.
type Rotation struct {
	Angle  float32 // radians along the orbit path
	AngVel float32 // radians per second
}
