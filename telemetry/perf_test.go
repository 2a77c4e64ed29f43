package telemetry

import (
	"testing"
	"time"
)

func TestQualityScore(t *testing.T) {
	w := DefaultScoreWeights()

	tests := []struct {
		name  string
		fps   float64
		mem   float64
		drops int
		want  int
	}{
		{"ideal", 60, 0, 0, 100},
		{"half fps", 30, 0, 0, 75},
		{"fps above target capped", 144, 0, 0, 100},
		{"full memory floor", 60, 1, 0, 73},
		{"all drops floor", 60, 0, 100, 82},
		{"worst case floored", 0, 1, 1000, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := QualityScore(w, tc.fps, tc.mem, tc.drops); got != tc.want {
				t.Errorf("QualityScore(%f, %f, %d) = %d, want %d", tc.fps, tc.mem, tc.drops, got, tc.want)
			}
		})
	}
}

func TestQualityScore_MonotonicInFPS(t *testing.T) {
	w := DefaultScoreWeights()
	prev := -1
	for fps := 0.0; fps <= 120; fps += 5 {
		got := QualityScore(w, fps, 0.4, 10)
		if got < prev {
			t.Errorf("score dropped from %d to %d as fps rose to %f", prev, got, fps)
		}
		prev = got
	}
}

func TestQualityScore_Bounds(t *testing.T) {
	w := DefaultScoreWeights()
	for _, fps := range []float64{0, 30, 60, 500} {
		for _, mem := range []float64{0, 0.5, 1} {
			for _, drops := range []int{0, 50, 200} {
				got := QualityScore(w, fps, mem, drops)
				if got < 0 || got > 100 {
					t.Errorf("score %d outside [0, 100] for fps=%f mem=%f drops=%d", got, fps, mem, drops)
				}
			}
		}
	}
}

func TestFrameMonitor_WindowCadence(t *testing.T) {
	m := NewFrameMonitor(60, 20, DefaultScoreWeights())
	m.memProbe = func() float64 { return 0 }

	updates := 0
	for i := 0; i < 180; i++ {
		if m.Sample(16 * time.Millisecond) {
			updates++
			if !m.Updated() {
				t.Error("window boundary did not mark metrics fresh")
			}
		} else if m.Updated() {
			t.Errorf("metrics marked fresh mid-window at sample %d", i)
		}
	}
	if updates != 3 {
		t.Errorf("expected 3 window updates over 180 samples, got %d", updates)
	}
}

func TestFrameMonitor_SteadyFrameMetrics(t *testing.T) {
	m := NewFrameMonitor(60, 20, DefaultScoreWeights())
	m.memProbe = func() float64 { return 0.3 }

	for i := 0; i < 60; i++ {
		m.Sample(20 * time.Millisecond)
	}

	got := m.Metrics()
	if got.FPS < 49.9 || got.FPS > 50.1 {
		t.Errorf("expected ~50 fps from 20ms frames, got %f", got.FPS)
	}
	if got.FrameJitter != 0 {
		t.Errorf("expected zero jitter for constant frame times, got %f", got.FrameJitter)
	}
	if got.FrameDrops != 0 {
		t.Errorf("20ms frames at a 20ms threshold should not count as drops, got %d", got.FrameDrops)
	}
	if got.MemoryUsage != 0.3 {
		t.Errorf("expected probed memory usage 0.3, got %f", got.MemoryUsage)
	}
}

func TestFrameMonitor_CountsDrops(t *testing.T) {
	m := NewFrameMonitor(60, 20, DefaultScoreWeights())
	m.memProbe = func() float64 { return 0 }

	for i := 0; i < 60; i++ {
		dt := 16 * time.Millisecond
		if i%10 == 0 {
			dt = 40 * time.Millisecond
		}
		m.Sample(dt)
	}

	if got := m.Metrics().FrameDrops; got != 6 {
		t.Errorf("expected 6 dropped frames, got %d", got)
	}
}

func TestFrameMonitor_HiddenPausesSampling(t *testing.T) {
	m := NewFrameMonitor(10, 20, DefaultScoreWeights())
	m.memProbe = func() float64 { return 0 }

	m.SetVisible(false)
	for i := 0; i < 50; i++ {
		if m.Sample(16 * time.Millisecond) {
			t.Fatal("hidden monitor produced a metrics window")
		}
	}

	// Resuming picks up where sampling left off; hidden frames never entered
	// the window.
	m.SetVisible(true)
	updated := false
	for i := 0; i < 10; i++ {
		if m.Sample(16 * time.Millisecond) {
			updated = true
		}
	}
	if !updated {
		t.Error("expected a metrics window after resuming visibility")
	}
}

func TestFrameMonitor_DegenerateConfig(t *testing.T) {
	m := NewFrameMonitor(0, -5, DefaultScoreWeights())
	if m.windowSize != 60 {
		t.Errorf("expected window size fallback 60, got %d", m.windowSize)
	}
	if m.dropThreshold != 20 {
		t.Errorf("expected drop threshold fallback 20, got %f", m.dropThreshold)
	}
}
