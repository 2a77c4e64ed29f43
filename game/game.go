// Package game owns the animation loop: the ECS world holding the orb
// cluster, the per-frame physics phases, and the adaptive quality control
// wiring them to real-time performance.
package game

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/Angleito/seiron-orbs/components"
	"github.com/Angleito/seiron-orbs/config"
	"github.com/Angleito/seiron-orbs/systems"
	"github.com/Angleito/seiron-orbs/telemetry"
)

// loopState is the lifecycle of a Loop. Stopped is terminal.
type loopState int

const (
	loopRunning loopState = iota
	loopStopped
)

// runner holds the wall-clock frame state of a visible, running loop.
// Resuming after a visibility loss swaps in a fresh runner instead of
// reusing timing state from before the gap.
type runner struct {
	lastFrame time.Time
}

// Options configures loop construction beyond the config file.
type Options struct {
	LogStats  bool   // emit a structured perf record per metrics window
	OutputDir string // write metrics.csv/modes.csv/config.yaml here; empty = disabled
}

// OrbFrame is one orb's render handoff: identity, final position, and trail.
type OrbFrame struct {
	ID    int
	X, Y  float32
	Trail []components.TrailPoint
}

// Loop is the per-mount simulation context. It exclusively owns the ECS
// world, the spatial grid, and all monitoring state; nothing here is shared
// across instances, so no locking is needed.
type Loop struct {
	cfg   *config.Config
	world *ecs.World

	// Entity spawn mapper and per-component lookup mappers
	orbMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Body,
		components.Orbit,
		components.Trail,
		components.Interaction,
	]
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	rotMap   *ecs.Map1[components.Rotation]
	bodyMap  *ecs.Map1[components.Body]
	orbitMap *ecs.Map1[components.Orbit]
	trailMap *ecs.Map1[components.Trail]
	interMap *ecs.Map1[components.Interaction]

	// Orb entities in index order; the renderer handoff preserves this order.
	orbs []ecs.Entity

	grid       *systems.SpatialGrid
	monitor    *telemetry.FrameMonitor
	controller *QualityController
	output     *telemetry.OutputManager

	state      loopState
	run        *runner // nil while hidden or stopped
	excitation Excitation
	repulsions []repulsionSource

	simTime    float32 // accumulated clamped simulation time in seconds
	orbitClock float32 // simTime warped by the excitation speed multiplier
	frame      int64
	logStats   bool

	// Front-end state (graphical mode only)
	paused    bool
	showPanel bool

	// Per-frame scratch, reused to avoid allocations in the hot path
	neighborBuf []ecs.Entity
	frameBuf    []OrbFrame
	trailBuf    []components.TrailPoint
}

// Paused reports whether the graphical front end has paused stepping.
func (l *Loop) Paused() bool {
	return l.paused
}

// SetPaused pauses or resumes stepping. Resuming re-baselines the runner so
// the pause duration never reaches the monitor as one giant frame.
func (l *Loop) SetPaused(paused bool) {
	if l.state == loopStopped || l.paused == paused {
		return
	}
	l.paused = paused
	if !paused && l.run != nil {
		l.run.lastFrame = time.Time{}
	}
}

// NewLoop constructs a simulation loop from the given configuration.
// The configuration is assumed normalized (config.Load guarantees it).
func NewLoop(cfg *config.Config, opts Options) (*Loop, error) {
	world := ecs.NewWorld()

	l := &Loop{
		cfg:   cfg,
		world: world,
		orbMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Body,
			components.Orbit,
			components.Trail,
			components.Interaction,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		rotMap:     ecs.NewMap1[components.Rotation](world),
		bodyMap:    ecs.NewMap1[components.Body](world),
		orbitMap:   ecs.NewMap1[components.Orbit](world),
		trailMap:   ecs.NewMap1[components.Trail](world),
		interMap:   ecs.NewMap1[components.Interaction](world),
		controller: NewQualityController(),
		state:      loopRunning,
		run:        &runner{},
		logStats:   opts.LogStats,
	}

	l.grid = systems.NewSpatialGrid(
		float32(cfg.Screen.Width),
		float32(cfg.Screen.Height),
		cfg.Derived.GridCellSize,
	)

	weights := telemetry.ScoreWeights{
		FPS:    cfg.Quality.FPSWeight,
		Memory: cfg.Quality.MemoryWeight,
		Drops:  cfg.Quality.DropsWeight,
	}
	l.monitor = telemetry.NewFrameMonitor(cfg.Telemetry.WindowSize, cfg.Telemetry.DropThresholdMS, weights)

	if cfg.Quality.Force != "" {
		mode, ok := ParseMode(cfg.Quality.Force)
		if !ok {
			slog.Warn("unknown forced quality tier, staying automatic", "force", cfg.Quality.Force)
		} else {
			l.controller.Force(mode)
		}
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	l.output = om
	if err := l.output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	l.spawnOrbs()
	l.applyOrbCap(FeaturesFor(l.controller.Mode()).MaxOrbs)

	return l, nil
}

// Mode returns the active performance mode.
func (l *Loop) Mode() PerformanceMode {
	return l.controller.Mode()
}

// Controller returns the quality controller for manual override wiring.
func (l *Loop) Controller() *QualityController {
	return l.controller
}

// Metrics returns the latest performance metrics window.
func (l *Loop) Metrics() telemetry.Metrics {
	return l.monitor.Metrics()
}

// Frame returns the current render handoff: one entry per active orb in
// index order. The returned slice and its trails are valid until the next
// Step; the renderer must not retain them.
func (l *Loop) Frame() []OrbFrame {
	l.frameBuf = l.frameBuf[:0]
	l.trailBuf = l.trailBuf[:0]

	for _, e := range l.orbs {
		inter := l.interMap.Get(e)
		if inter == nil || inter.Dormant {
			continue
		}
		pos := l.posMap.Get(e)
		orbit := l.orbitMap.Get(e)
		trail := l.trailMap.Get(e)

		start := len(l.trailBuf)
		l.trailBuf = trail.AppendTo(l.trailBuf)

		l.frameBuf = append(l.frameBuf, OrbFrame{
			ID:    orbit.Index,
			X:     pos.X,
			Y:     pos.Y,
			Trail: l.trailBuf[start:len(l.trailBuf):len(l.trailBuf)],
		})
	}
	return l.frameBuf
}

// TrackingError returns the mean distance between active orbs and their
// ideal orbit positions at the current orbit clock. Dormant orbs are ignored.
func (l *Loop) TrackingError() float64 {
	cfg := l.cfg
	var sum float64
	var n int
	for _, entity := range l.orbs {
		if l.interMap.Get(entity).Dormant {
			continue
		}
		pos := l.posMap.Get(entity)
		orbit := l.orbitMap.Get(entity)
		tx, ty := systems.OrbitPosition(*orbit, cfg.Orbs.Pattern, l.orbitClock)
		dx := float64(pos.X - (cfg.Derived.CenterX + tx))
		dy := float64(pos.Y - (cfg.Derived.CenterY + ty))
		sum += math.Sqrt(dx*dx + dy*dy)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// FrameCount returns the number of completed simulation steps.
func (l *Loop) FrameCount() int64 {
	return l.frame
}

// SimTime returns accumulated simulation time in seconds.
func (l *Loop) SimTime() float32 {
	return l.simTime
}

// SetVisible reflects host visibility. Hiding pauses frame sampling and
// stepping; restoring visibility constructs a fresh runner so the hidden gap
// never reaches the integrator as a giant dt. Safe to call repeatedly in
// either direction.
func (l *Loop) SetVisible(visible bool) {
	if l.state == loopStopped {
		return
	}
	l.monitor.SetVisible(visible)
	if visible {
		if l.run == nil {
			l.run = &runner{}
		}
	} else {
		l.run = nil
	}
}

// Stop terminates the loop and releases output resources. Terminal and
// idempotent: a stopped loop ignores further Tick/Step/Stop calls. Pending
// repulsion sources are dropped with the loop.
func (l *Loop) Stop() {
	if l.state == loopStopped {
		return
	}
	l.state = loopStopped
	l.run = nil
	l.repulsions = nil
	if err := l.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}

// Stopped reports whether the loop has terminated.
func (l *Loop) Stopped() bool {
	return l.state == loopStopped
}
