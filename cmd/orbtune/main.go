// Package main provides an offline parameter sweep for the orbital spring
// model: it grids spring stiffness against damping and scores each pair by
// how tightly orbs track their ideal orbits in a headless run.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/Angleito/seiron-orbs/config"
	"github.com/Angleito/seiron-orbs/game"
)

// sweepResult holds the tracking-error summary for one parameter pair.
type sweepResult struct {
	Stiffness float64
	Damping   float64
	MeanErr   float64
	StdErr    float64
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	frames := flag.Int("frames", 1800, "Frames simulated per parameter pair")
	warmup := flag.Int("warmup", 300, "Frames discarded before error sampling begins")
	outputDir := flag.String("output", "", "Output directory for sweep results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	stiffnesses := []float64{6, 10, 14, 18, 22, 28}
	dampings := []float64{0.6, 1.0, 1.4, 1.8, 2.4}

	var results []sweepResult
	for _, k := range stiffnesses {
		for _, d := range dampings {
			res, err := evaluate(*configPath, k, d, *frames, *warmup)
			if err != nil {
				log.Fatalf("evaluating k=%.1f d=%.1f: %v", k, d, err)
			}
			results = append(results, res)
			fmt.Printf("k=%5.1f  damping=%4.1f  mean_err=%7.2f  std=%6.2f\n",
				res.Stiffness, res.Damping, res.MeanErr, res.StdErr)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].MeanErr < results[j].MeanErr
	})

	if err := writeResults(filepath.Join(*outputDir, "sweep.csv"), results); err != nil {
		log.Fatalf("writing results: %v", err)
	}

	best := results[0]
	fmt.Printf("\nbest: spring_stiffness=%.1f damping=%.1f (mean_err=%.2f)\n",
		best.Stiffness, best.Damping, best.MeanErr)
}

// evaluate runs one headless simulation with the given parameters and
// summarizes orbit tracking error after warmup.
func evaluate(configPath string, stiffness, damping float64, frames, warmup int) (sweepResult, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return sweepResult{}, err
	}
	cfg.Forces.SpringStiffness = stiffness
	cfg.Physics.Damping = damping
	cfg.Physics.Enabled = true

	l, err := game.NewLoop(cfg, game.Options{})
	if err != nil {
		return sweepResult{}, err
	}
	defer l.Stop()

	dt := cfg.Derived.FixedDT
	errs := make([]float64, 0, frames-warmup)
	for i := 0; i < frames; i++ {
		l.Step(dt)
		if i >= warmup {
			errs = append(errs, l.TrackingError())
		}
	}

	return sweepResult{
		Stiffness: stiffness,
		Damping:   damping,
		MeanErr:   stat.Mean(errs, nil),
		StdErr:    stat.StdDev(errs, nil),
	}, nil
}

// writeResults writes the sorted sweep results as CSV.
func writeResults(path string, results []sweepResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"spring_stiffness", "damping", "mean_err", "std_err"}); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			strconv.FormatFloat(r.Stiffness, 'f', 1, 64),
			strconv.FormatFloat(r.Damping, 'f', 1, 64),
			strconv.FormatFloat(r.MeanErr, 'f', 3, 64),
			strconv.FormatFloat(r.StdErr, 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
