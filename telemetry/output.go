package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Angleito/seiron-orbs/config"
)

// MetricsCSV is a flat struct for CSV export of window metrics.
type MetricsCSV struct {
	Frame        int64   `csv:"frame"`
	FPS          float64 `csv:"fps"`
	AvgFrameMS   float64 `csv:"avg_frame_ms"`
	JitterMS     float64 `csv:"jitter_ms"`
	FrameDrops   int     `csv:"frame_drops"`
	MemoryUsage  float64 `csv:"memory_usage"`
	QualityScore int     `csv:"quality_score"`
	Mode         string  `csv:"mode"`
}

// ToCSV converts Metrics to a flat CSV-friendly struct.
func (m Metrics) ToCSV(frame int64, mode string) MetricsCSV {
	return MetricsCSV{
		Frame:        frame,
		FPS:          m.FPS,
		AvgFrameMS:   m.AvgFrameMS,
		JitterMS:     m.FrameJitter,
		FrameDrops:   m.FrameDrops,
		MemoryUsage:  m.MemoryUsage,
		QualityScore: m.QualityScore,
		Mode:         mode,
	}
}

// ModeChangeCSV records one quality tier transition.
type ModeChangeCSV struct {
	Frame int64  `csv:"frame"`
	Score int    `csv:"score"`
	From  string `csv:"from"`
	To    string `csv:"to"`
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	metricsFile *os.File
	modesFile   *os.File

	// Track if headers have been written
	metricsHeaderWritten bool
	modesHeaderWritten   bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled); a nil manager is
// safe to call.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating metrics.csv: %w", err)
	}
	om.metricsFile = f

	f, err = os.Create(filepath.Join(dir, "modes.csv"))
	if err != nil {
		om.metricsFile.Close()
		return nil, fmt.Errorf("creating modes.csv: %w", err)
	}
	om.modesFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteMetrics appends a window metrics record to metrics.csv.
func (om *OutputManager) WriteMetrics(m Metrics, frame int64, mode string) error {
	if om == nil {
		return nil
	}

	records := []MetricsCSV{m.ToCSV(frame, mode)}

	if !om.metricsHeaderWritten {
		if err := gocsv.Marshal(records, om.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		om.metricsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	return nil
}

// WriteModeChange appends a quality transition record to modes.csv.
func (om *OutputManager) WriteModeChange(frame int64, score int, from, to string) error {
	if om == nil {
		return nil
	}

	records := []ModeChangeCSV{{Frame: frame, Score: score, From: from, To: to}}

	if !om.modesHeaderWritten {
		if err := gocsv.Marshal(records, om.modesFile); err != nil {
			return fmt.Errorf("writing mode change: %w", err)
		}
		om.modesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.modesFile); err != nil {
			return fmt.Errorf("writing mode change: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.metricsFile != nil {
		if err := om.metricsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.modesFile != nil {
		if err := om.modesFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
