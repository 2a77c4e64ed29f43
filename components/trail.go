package components

// TrailCap is the maximum number of retained trail points per orb.
const TrailCap = 24

// TrailPoint is a single recorded trail position.
type TrailPoint struct {
	X, Y float32
}

// Trail is a bounded ring buffer of recent orb positions, oldest first.
// The zero value is an empty trail.
type Trail struct {
	points [TrailCap]TrailPoint
	head   int
	count  int
}

// Push records a position, evicting the oldest point once full.
func (t *Trail) Push(x, y float32) {
	t.points[(t.head+t.count)%TrailCap] = TrailPoint{X: x, Y: y}
	if t.count < TrailCap {
		t.count++
	} else {
		t.head = (t.head + 1) % TrailCap
	}
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	return t.count
}

// At returns the i-th point, oldest first. i must be in [0, Len()).
func (t *Trail) At(i int) TrailPoint {
	return t.points[(t.head+i)%TrailCap]
}

// Reset discards all recorded points.
func (t *Trail) Reset() {
	t.head = 0
	t.count = 0
}

// AppendTo appends all points oldest-first to dst and returns it.
// Reuse dst across frames to avoid allocations.
func (t *Trail) AppendTo(dst []TrailPoint) []TrailPoint {
	for i := 0; i < t.count; i++ {
		dst = append(dst, t.At(i))
	}
	return dst
}
