package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Angleito/seiron-orbs/config"
	"github.com/Angleito/seiron-orbs/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics at a fixed step")
	logStats := flag.Bool("log-stats", false, "Output per-window perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited; headless requires > 0)")
	quality := flag.String("quality", "", "Force quality tier (quality/balanced/performance, empty = auto)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI quality override takes precedence over the config file
	if *quality != "" {
		cfg.Quality.Force = *quality
	}

	opts := game.Options{
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(cfg, opts, *maxFrames)
		return
	}

	runGraphical(cfg, opts, *maxFrames)
}

// runHeadless steps the simulation at the configured fixed dt with no window.
func runHeadless(cfg *config.Config, opts game.Options, maxFrames int) {
	if maxFrames <= 0 {
		slog.Error("headless mode requires -max-frames > 0")
		os.Exit(1)
	}

	l, err := game.NewLoop(cfg, opts)
	if err != nil {
		slog.Error("failed to create loop", "error", err)
		os.Exit(1)
	}
	defer l.Stop()

	slog.Info("starting headless run",
		"orbs", cfg.Orbs.Count,
		"pattern", cfg.Orbs.Pattern,
		"max_frames", maxFrames,
	)

	dt := cfg.Derived.FixedDT
	for i := 0; i < maxFrames; i++ {
		l.Step(dt)
	}

	slog.Info("headless run complete", "frames", l.FrameCount(), "mode", l.Mode().String())
}

// runGraphical opens a raylib window and drives the loop at display cadence.
func runGraphical(cfg *config.Config, opts game.Options, maxFrames int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Orb Cluster")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	l, err := game.NewLoop(cfg, opts)
	if err != nil {
		slog.Error("failed to create loop", "error", err)
		os.Exit(1)
	}
	defer l.Stop()

	for !rl.WindowShouldClose() {
		l.HandleInput()
		if !l.Paused() {
			l.Tick()
		}
		l.Draw()

		if maxFrames > 0 && l.FrameCount() >= int64(maxFrames) {
			break
		}
	}
}
