// Package telemetry provides frame timing collection and the quality score
// feeding the adaptive performance controller.
package telemetry

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds the aggregated performance picture for one sampling window.
type Metrics struct {
	FPS          float64
	FrameDrops   int     // samples above the drop threshold
	AvgFrameMS   float64 // mean frame time in milliseconds
	FrameJitter  float64 // frame time standard deviation in milliseconds
	MemoryUsage  float64 // heap-in-use / heap-goal ratio, [0, 1]
	QualityScore int     // composite score, [0, 100]
	LastUpdated  time.Time
}

// LogValue implements slog.LogValuer for structured logging.
func (m Metrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("fps", m.FPS),
		slog.Float64("avg_frame_ms", m.AvgFrameMS),
		slog.Float64("jitter_ms", m.FrameJitter),
		slog.Int("frame_drops", m.FrameDrops),
		slog.Float64("memory_usage", m.MemoryUsage),
		slog.Int("quality_score", m.QualityScore),
	)
}

// ScoreWeights holds the composite quality score weighting. The 0.5/0.3/0.2
// defaults are empirical; they are tunable constants, not a contract.
type ScoreWeights struct {
	FPS    float64
	Memory float64
	Drops  float64
}

// DefaultScoreWeights returns the standard score weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{FPS: 0.5, Memory: 0.3, Drops: 0.2}
}

// QualityScore computes the composite 0-100 score from raw metrics.
// Monotonically non-decreasing in fps with memory and drops held fixed.
func QualityScore(w ScoreWeights, fps, memoryUsage float64, frameDrops int) int {
	fpsTerm := math.Min(fps/60, 1)
	memTerm := math.Max(1-memoryUsage, 0.1)
	dropTerm := math.Max(1-float64(frameDrops)/100, 0.1)

	score := int(math.Round(100 * (w.FPS*fpsTerm + w.Memory*memTerm + w.Drops*dropTerm)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// FrameMonitor samples per-frame delta times into a rolling window and
// recomputes Metrics once per full window (~1s at 60fps with the default
// window of 60), not every frame, so the downstream controller cannot thrash.
//
// Sampling pauses while the monitor is marked hidden: frames produced under
// background throttling would otherwise read as poor performance.
type FrameMonitor struct {
	windowSize    int
	dropThreshold float64 // milliseconds
	weights       ScoreWeights

	samples     []float64 // frame times in ms, ring buffer
	writeIndex  int
	sampleCount int
	sinceUpdate int

	visible bool
	metrics Metrics
	fresh   bool // metrics recomputed since the last Updated() call

	memProbe func() float64 // swappable for tests
}

// NewFrameMonitor creates a frame monitor.
// windowSize: samples per metrics window (e.g. 60 for 1s at 60fps).
// dropThresholdMS: frame time counted as a dropped frame.
func NewFrameMonitor(windowSize int, dropThresholdMS float64, weights ScoreWeights) *FrameMonitor {
	if windowSize < 1 {
		windowSize = 60
	}
	if dropThresholdMS <= 0 {
		dropThresholdMS = 20
	}
	return &FrameMonitor{
		windowSize:    windowSize,
		dropThreshold: dropThresholdMS,
		weights:       weights,
		samples:       make([]float64, windowSize),
		visible:       true,
		memProbe:      heapUsageRatio,
	}
}

// SetVisible marks the hosting surface visible or hidden. Hiding pauses
// sampling; restoring visibility resumes it. Both directions are idempotent.
func (m *FrameMonitor) SetVisible(visible bool) {
	m.visible = visible
}

// Visible reports whether sampling is active.
func (m *FrameMonitor) Visible() bool {
	return m.visible
}

// Sample records one frame delta. Returns true when the sample completed a
// window and Metrics were recomputed.
func (m *FrameMonitor) Sample(dt time.Duration) bool {
	if !m.visible {
		return false
	}

	ms := float64(dt) / float64(time.Millisecond)
	m.samples[m.writeIndex] = ms
	m.writeIndex = (m.writeIndex + 1) % m.windowSize
	if m.sampleCount < m.windowSize {
		m.sampleCount++
	}

	m.sinceUpdate++
	if m.sinceUpdate < m.windowSize {
		return false
	}
	m.sinceUpdate = 0
	m.recompute()
	return true
}

// Metrics returns the most recently computed window metrics.
func (m *FrameMonitor) Metrics() Metrics {
	return m.metrics
}

// Updated reports whether Metrics changed since the previous Updated call and
// clears the flag. The loop uses this to re-derive the performance mode
// strictly once per metrics window.
func (m *FrameMonitor) Updated() bool {
	fresh := m.fresh
	m.fresh = false
	return fresh
}

// recompute aggregates the current window into Metrics.
func (m *FrameMonitor) recompute() {
	window := m.samples[:m.sampleCount]

	avg := stat.Mean(window, nil)
	jitter := stat.StdDev(window, nil)
	if math.IsNaN(jitter) {
		jitter = 0
	}

	var fps float64
	if avg > 0 {
		fps = 1000 / avg
	}

	drops := 0
	for _, ms := range window {
		if ms > m.dropThreshold {
			drops++
		}
	}

	mem := m.memProbe()

	m.metrics = Metrics{
		FPS:          fps,
		FrameDrops:   drops,
		AvgFrameMS:   avg,
		FrameJitter:  jitter,
		MemoryUsage:  mem,
		QualityScore: QualityScore(m.weights, fps, mem, drops),
		LastUpdated:  time.Now(),
	}
	m.fresh = true
}

// heapUsageRatio reports heap-in-use against the current GC goal, clamped to
// [0, 1]. Before the first GC cycle establishes a goal this reads as 0.
func heapUsageRatio() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.NextGC == 0 {
		return 0
	}
	ratio := float64(ms.HeapAlloc) / float64(ms.NextGC)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
