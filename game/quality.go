package game

// PerformanceMode is the active quality tier gating simulation and rendering
// features.
type PerformanceMode int

// Quality tiers, best first.
const (
	ModeQuality PerformanceMode = iota
	ModeBalanced
	ModePerformance
)

// String returns the tier name used in logs and CSV output.
func (m PerformanceMode) String() string {
	switch m {
	case ModeQuality:
		return "quality"
	case ModeBalanced:
		return "balanced"
	case ModePerformance:
		return "performance"
	default:
		return "unknown"
	}
}

// ParseMode maps a tier name to its PerformanceMode.
// Returns ModeBalanced, false for unknown names.
func ParseMode(s string) (PerformanceMode, bool) {
	switch s {
	case "quality":
		return ModeQuality, true
	case "balanced":
		return ModeBalanced, true
	case "performance":
		return ModePerformance, true
	}
	return ModeBalanced, false
}

// GlowTier selects how much filter work the renderer spends per orb.
type GlowTier int

// Glow tiers.
const (
	GlowNone GlowTier = iota
	GlowSimple
	GlowFull
)

// Features is one row of the capability table: everything a quality tier
// enables. Adding a tier means adding one row here, not auditing call sites.
type Features struct {
	MaxOrbs         int
	Collision       bool
	Trails          bool
	Glow            GlowTier
	RotationEffects bool
}

// featureTable maps each PerformanceMode to its fixed feature set.
var featureTable = map[PerformanceMode]Features{
	ModeQuality:     {MaxOrbs: 7, Collision: true, Trails: true, Glow: GlowFull, RotationEffects: true},
	ModeBalanced:    {MaxOrbs: 5, Collision: true, Trails: true, Glow: GlowSimple, RotationEffects: false},
	ModePerformance: {MaxOrbs: 3, Collision: false, Trails: false, Glow: GlowNone, RotationEffects: false},
}

// FeaturesFor returns the capability row for a tier.
func FeaturesFor(mode PerformanceMode) Features {
	return featureTable[mode]
}

// Hysteresis thresholds. The enter-performance floor sits well below the
// leave-performance ceiling so a score oscillating around either bound cannot
// flap the tier every window.
const (
	scoreEnterPerformance = 40 // any tier drops to performance below this
	scoreLeavePerformance = 80 // performance recovers to balanced above this
	scoreEnterQuality     = 95 // balanced promotes to quality above this
	scoreLeaveQuality     = 60 // quality demotes to balanced below this
)

// QualityController is the hysteresis state machine mapping quality scores to
// performance modes. Evaluated once per metrics window, never per frame.
type QualityController struct {
	mode PerformanceMode
	auto bool
}

// NewQualityController creates a controller in the initial balanced tier with
// automatic transitions enabled.
func NewQualityController() *QualityController {
	return &QualityController{mode: ModeBalanced, auto: true}
}

// Mode returns the active tier.
func (c *QualityController) Mode() PerformanceMode {
	return c.mode
}

// Auto reports whether automatic transitions are enabled.
func (c *QualityController) Auto() bool {
	return c.auto
}

// Force pins the controller to a tier and disables automatic transitions
// until Release is called.
func (c *QualityController) Force(mode PerformanceMode) {
	c.mode = mode
	c.auto = false
}

// Release re-enables automatic transitions from the current tier.
func (c *QualityController) Release() {
	c.auto = true
}

// Update applies one metrics window's score. Returns the previous tier and
// whether the tier changed. At most one transition happens per update: a
// score of 85 seen from performance lands on balanced, never jumps straight
// to quality.
func (c *QualityController) Update(score int) (prev PerformanceMode, changed bool) {
	prev = c.mode
	if !c.auto {
		return prev, false
	}

	switch {
	case score < scoreEnterPerformance:
		c.mode = ModePerformance
	case c.mode == ModePerformance && score > scoreLeavePerformance:
		c.mode = ModeBalanced
	case c.mode == ModeBalanced && score > scoreEnterQuality:
		c.mode = ModeQuality
	case c.mode == ModeQuality && score < scoreLeaveQuality:
		c.mode = ModeBalanced
	}

	return prev, c.mode != prev
}

// SetMode pins the loop to a quality tier (manual override). Automatic
// transitions stay disabled until SetAuto. The orb cap applies immediately.
func (l *Loop) SetMode(mode PerformanceMode) {
	if l.state == loopStopped {
		return
	}
	l.controller.Force(mode)
	l.applyOrbCap(FeaturesFor(mode).MaxOrbs)
}

// SetAuto re-enables automatic quality transitions.
func (l *Loop) SetAuto() {
	l.controller.Release()
}
